// This file is part of GopherZ80.
//
// GopherZ80 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherZ80 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherZ80.  If not, see <https://www.gnu.org/licenses/>.

package z80

import (
	"fmt"

	"github.com/jetsetilly/gopherz80/hardware/z80/alu"
	"github.com/jetsetilly/gopherz80/hardware/z80/instructions"
	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
)

// the flag masks as plain bytes, for the arithmetic below.
const (
	cf = uint8(registers.FlagC)
	nf = uint8(registers.FlagN)
	pf = uint8(registers.FlagP)
	xf = uint8(registers.FlagX)
	hf = uint8(registers.FlagH)
	yf = uint8(registers.FlagY)
	zf = uint8(registers.FlagZ)
	sf = uint8(registers.FlagS)
)

// reg8 resolves a register identifier from a step. failure means the
// instruction tables are damaged.
func (mc *CPU) reg8(r registers.Reg8) (*uint8, error) {
	p, ok := mc.Regs.Ptr8(r)
	if !ok {
		return nil, fmt.Errorf("z80: %s: no such register %s (opcode %#02x)",
			mc.defn.Mnemonic, r, mc.defn.OpCode)
	}
	return p, nil
}

// pair16 resolves a register pair identifier from a step.
func (mc *CPU) pair16(p registers.Reg16) (*registers.Pair, error) {
	pr, ok := mc.Regs.Pair16(p)
	if !ok {
		return nil, fmt.Errorf("z80: %s: no such register pair %s (opcode %#02x)",
			mc.defn.Mnemonic, p, mc.defn.OpCode)
	}
	return pr, nil
}

func (mc *CPU) cond(c instructions.Cond) bool {
	f := mc.Regs.AF.Lo
	switch c {
	case instructions.CondNZ:
		return f&zf == 0
	case instructions.CondZ:
		return f&zf != 0
	case instructions.CondNC:
		return f&cf == 0
	case instructions.CondC:
		return f&cf != 0
	case instructions.CondPO:
		return f&pf == 0
	case instructions.CondPE:
		return f&pf != 0
	case instructions.CondP:
		return f&sf == 0
	}
	return f&sf != 0
}

func (mc *CPU) beginMemRead(addr uint16, kind pendingTransaction, cycles int) {
	mc.Sig.BeginMemRead(addr)
	mc.pending = kind
	mc.stall = cycles
}

func (mc *CPU) beginMemWrite(addr uint16, data uint8, cycles int) {
	mc.Sig.BeginMemWrite(addr, data)
	mc.pending = pendingMemWrite
	mc.stall = cycles
}

func (mc *CPU) beginIORead(port uint16, cycles int) {
	mc.Sig.BeginIORead(port)
	mc.pending = pendingIORead
	mc.stall = cycles
}

func (mc *CPU) beginIOWrite(port uint16, data uint8, cycles int) {
	mc.Sig.BeginIOWrite(port, data)
	mc.pending = pendingIOWrite
	mc.stall = cycles
}

// signedOffset widens the latch for displacement arithmetic.
func signedOffset(v uint8) uint16 {
	return uint16(int16(int8(v)))
}

// execute performs one micro operation. The returned bool is true when the
// operation ends the instruction early, the mechanism behind the two cycle
// counts of conditional instructions.
func (mc *CPU) execute(s instructions.Step) (bool, error) {
	switch s.Op {
	// bus transactions. state changes happen at assertion; the data
	// transfer itself happens when the transaction completes
	case instructions.MemRead:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		mc.beginMemRead(p.Word(), pendingMemRead, s.Cycles)

	case instructions.MemReadInc:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		kind := pendingMemRead
		if s.P == registers.PC {
			kind = pendingMemReadPC
		}
		mc.beginMemRead(p.Word(), kind, s.Cycles)
		p.Inc()

	case instructions.MemReadWZ1:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		addr := p.Word()
		mc.Regs.WZ.SetWord(addr + 1)
		mc.beginMemRead(addr, pendingMemRead, s.Cycles)

	case instructions.MemWrite:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		mc.beginMemWrite(p.Word(), *r, s.Cycles)

	case instructions.MemWriteInc:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		mc.beginMemWrite(p.Word(), *r, s.Cycles)
		p.Inc()

	case instructions.MemWriteData:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		mc.beginMemWrite(p.Word(), mc.latch, s.Cycles)

	case instructions.MemWriteAWZ:
		// the address register spills into WZ: low byte of the successor
		// address, accumulator in the high byte
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		addr := p.Word()
		a := mc.Regs.AF.Hi
		mc.Regs.WZ.Lo = uint8(addr + 1)
		mc.Regs.WZ.Hi = a
		mc.beginMemWrite(addr, a, s.Cycles)

	case instructions.Push:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		mc.Regs.SP.Dec()
		mc.beginMemWrite(mc.Regs.SP.Word(), *r, s.Cycles)

	case instructions.IORead:
		mc.beginIORead(mc.Regs.BC.Word(), s.Cycles)

	case instructions.IOReadImm:
		addr := uint16(mc.Regs.AF.Hi)<<8 | uint16(mc.latch)
		mc.Regs.WZ.SetWord(addr + 1)
		mc.beginIORead(addr, s.Cycles)

	case instructions.IOWrite:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		addr := mc.Regs.BC.Word()
		mc.Regs.WZ.SetWord(addr + 1)
		mc.beginIOWrite(addr, *r, s.Cycles)

	case instructions.IOWriteZero:
		addr := mc.Regs.BC.Word()
		mc.Regs.WZ.SetWord(addr + 1)
		mc.beginIOWrite(addr, 0, s.Cycles)

	case instructions.IOWriteImm:
		a := mc.Regs.AF.Hi
		addr := uint16(a)<<8 | uint16(mc.latch)
		mc.Regs.WZ.Lo = mc.latch + 1
		mc.Regs.WZ.Hi = a
		mc.beginIOWrite(addr, a, s.Cycles)

	case instructions.IntAck:
		mc.Sig.BeginIntAck(mc.Regs.PC.Word())
		mc.pending = pendingIntAck
		mc.stall = s.Cycles

	case instructions.NmiFetch:
		mc.Sig.BeginOpcodeFetch(mc.Regs.PC.Word())
		mc.pending = pendingNMIOpcode
		mc.stall = s.Cycles

	// loads and register traffic
	case instructions.StoreData:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		*r = mc.latch

	case instructions.Ld:
		dst, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		src, err := mc.reg8(s.R2)
		if err != nil {
			return false, err
		}
		*dst = *src

	case instructions.Ld16:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		p.SetWord(mc.Regs.WZ.Word())

	case instructions.LdSP16:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		mc.Regs.SP.SetWord(p.Word())
		mc.stall = s.Cycles

	case instructions.JumpIdx:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		mc.Regs.PC.SetWord(p.Word())

	case instructions.SwapAF:
		mc.Regs.SwapAF()

	case instructions.SwapAll:
		mc.Regs.SwapBCDEHL()

	case instructions.SwapDEHL:
		mc.Regs.DE, mc.Regs.HL = mc.Regs.HL, mc.Regs.DE

	// eight bit arithmetic
	case instructions.Alu:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		mc.alu8(instructions.AluOp(s.V), *r)

	case instructions.AluData:
		mc.alu8(instructions.AluOp(s.V), mc.latch)

	case instructions.IncR8:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		*r++
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & cf) | alu.Inc[*r]

	case instructions.DecR8:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		*r--
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & cf) | alu.Dec[*r]

	case instructions.IncData:
		mc.latch++
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & cf) | alu.Inc[mc.latch]
		mc.stall = s.Cycles

	case instructions.DecData:
		mc.latch--
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & cf) | alu.Dec[mc.latch]
		mc.stall = s.Cycles

	// sixteen bit arithmetic
	case instructions.Inc16:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		p.Inc()
		mc.stall = s.Cycles

	case instructions.Dec16:
		p, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		p.Dec()
		mc.stall = s.Cycles

	case instructions.Add16:
		dst, err := mc.pair16(registers.IdxHL)
		if err != nil {
			return false, err
		}
		src, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		d := dst.Word()
		v := src.Word()
		mc.Regs.WZ.SetWord(d + 1)
		res := uint32(d) + uint32(v)
		f := mc.Regs.AF.Lo & (sf | zf | pf)
		if (uint32(d)^res^uint32(v))&0x1000 != 0 {
			f |= hf
		}
		if res&0x10000 != 0 {
			f |= cf
		}
		f |= uint8(res>>8) & (yf | xf)
		mc.Regs.AF.Lo = f
		dst.SetWord(uint16(res))
		mc.stall = s.Cycles

	case instructions.Adc16:
		src, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		d := mc.Regs.HL.Word()
		v := src.Word()
		var carry uint32
		if mc.Regs.AF.Lo&cf != 0 {
			carry = 1
		}
		mc.Regs.WZ.SetWord(d + 1)
		res := uint32(d) + uint32(v) + carry
		var f uint8
		if (uint32(d)^res^uint32(v))&0x1000 != 0 {
			f |= hf
		}
		if res&0x10000 != 0 {
			f |= cf
		}
		if uint16(res) == 0 {
			f |= zf
		}
		f |= uint8(res>>8) & (sf | yf | xf)
		if (v^d^0x8000)&(v^uint16(res))&0x8000 != 0 {
			f |= pf
		}
		mc.Regs.AF.Lo = f
		mc.Regs.HL.SetWord(uint16(res))
		mc.stall = s.Cycles

	case instructions.Sbc16:
		src, err := mc.pair16(s.P)
		if err != nil {
			return false, err
		}
		d := mc.Regs.HL.Word()
		v := src.Word()
		var carry uint32
		if mc.Regs.AF.Lo&cf != 0 {
			carry = 1
		}
		mc.Regs.WZ.SetWord(d + 1)
		res := uint32(d) - uint32(v) - carry
		f := nf
		if (uint32(d)^res^uint32(v))&0x1000 != 0 {
			f |= hf
		}
		if res&0x10000 != 0 {
			f |= cf
		}
		if uint16(res) == 0 {
			f |= zf
		}
		f |= uint8(res>>8) & (sf | yf | xf)
		if (v^d)&(d^uint16(res))&0x8000 != 0 {
			f |= pf
		}
		mc.Regs.AF.Lo = f
		mc.Regs.HL.SetWord(uint16(res))
		mc.stall = s.Cycles

	// rotates and shifts
	case instructions.RotA:
		a := mc.Regs.AF.Hi
		f := mc.Regs.AF.Lo
		var r, c uint8
		switch instructions.RotOp(s.V) {
		case instructions.RotRLC:
			c = a >> 7
			r = a<<1 | c
		case instructions.RotRRC:
			c = a & 1
			r = a>>1 | c<<7
		case instructions.RotRL:
			c = a >> 7
			r = a<<1 | f&cf
		case instructions.RotRR:
			c = a & 1
			r = a>>1 | (f&cf)<<7
		}
		mc.Regs.AF.Hi = r
		mc.Regs.AF.Lo = (f & (sf | zf | pf)) | c | (r & (yf | xf))

	case instructions.Rot:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		*r, mc.Regs.AF.Lo = rot8(instructions.RotOp(s.V), *r, mc.Regs.AF.Lo)

	case instructions.RotData:
		mc.latch, mc.Regs.AF.Lo = rot8(instructions.RotOp(s.V), mc.latch, mc.Regs.AF.Lo)
		mc.stall = s.Cycles

	// bit manipulation
	case instructions.Bit:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & cf) | hf | alu.SZBit[*r&(1<<s.V)]

	case instructions.BitData:
		// the 5 and 3 flags of the memory forms leak from the internal
		// address register, not from the tested byte
		f := (mc.Regs.AF.Lo & cf) | hf | (alu.SZBit[mc.latch&(1<<s.V)] &^ (yf | xf))
		mc.Regs.AF.Lo = f | (mc.Regs.WZ.Hi & (yf | xf))
		mc.stall = s.Cycles

	case instructions.SetBit:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		*r |= 1 << s.V

	case instructions.SetBitData:
		mc.latch |= 1 << s.V
		mc.stall = s.Cycles

	case instructions.ResBit:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		*r &^= 1 << s.V

	case instructions.ResBitData:
		mc.latch &^= 1 << s.V
		mc.stall = s.Cycles

	// IO results
	case instructions.In:
		r, err := mc.reg8(s.R)
		if err != nil {
			return false, err
		}
		mc.Regs.WZ.SetWord(mc.Regs.BC.Word() + 1)
		*r = mc.latch
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & cf) | alu.SZP[mc.latch]

	case instructions.InF:
		mc.Regs.WZ.SetWord(mc.Regs.BC.Word() + 1)
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & cf) | alu.SZP[mc.latch]

	// accumulator and flag instructions
	case instructions.Daa:
		a := mc.Regs.AF.Hi
		f := mc.Regs.AF.Lo
		v := a
		if f&nf != 0 {
			if f&hf != 0 || a&0x0f > 9 {
				v -= 6
			}
			if f&cf != 0 || a > 0x99 {
				v -= 0x60
			}
		} else {
			if f&hf != 0 || a&0x0f > 9 {
				v += 6
			}
			if f&cf != 0 || a > 0x99 {
				v += 0x60
			}
		}
		g := f & (cf | nf)
		if a > 0x99 {
			g |= cf
		}
		g |= (a ^ v) & hf
		mc.Regs.AF.Lo = g | alu.SZP[v]
		mc.Regs.AF.Hi = v

	case instructions.Cpl:
		a := ^mc.Regs.AF.Hi
		mc.Regs.AF.Hi = a
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & (sf | zf | pf | cf)) | hf | nf | (a & (yf | xf))

	case instructions.Neg:
		r := uint8(0) - mc.Regs.AF.Hi
		mc.Regs.AF.Hi = r
		mc.Regs.AF.Lo = alu.Sub[uint16(r)]

	case instructions.Scf:
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & (sf | zf | pf)) | cf | (mc.Regs.AF.Hi & (yf | xf))

	case instructions.Ccf:
		f := mc.Regs.AF.Lo
		mc.Regs.AF.Lo = ((f & (sf | zf | pf | cf)) | (f&cf)<<4 | (mc.Regs.AF.Hi & (yf | xf))) ^ cf

	case instructions.Rrd:
		a := mc.Regs.AF.Hi
		v := mc.latch
		mc.latch = a<<4 | v>>4
		a = a&0xf0 | v&0x0f
		mc.Regs.AF.Hi = a
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & cf) | alu.SZP[a]
		mc.Regs.WZ.SetWord(mc.Regs.HL.Word() + 1)
		mc.stall = s.Cycles

	case instructions.Rld:
		a := mc.Regs.AF.Hi
		v := mc.latch
		mc.latch = v<<4 | a&0x0f
		a = a&0xf0 | v>>4
		mc.Regs.AF.Hi = a
		mc.Regs.AF.Lo = (mc.Regs.AF.Lo & cf) | alu.SZP[a]
		mc.Regs.WZ.SetWord(mc.Regs.HL.Word() + 1)
		mc.stall = s.Cycles

	// interrupt control
	case instructions.Di:
		mc.IFF1 = false
		mc.IFF2 = false

	case instructions.Ei:
		mc.IFF1 = true
		mc.IFF2 = true
		mc.afterEI = true

	case instructions.Im:
		mc.IM = s.V

	case instructions.Halt:
		mc.Halted = true
		if mc.OnHalt != nil {
			mc.OnHalt(true)
		}

	case instructions.LdAI:
		a := mc.Regs.I
		mc.Regs.AF.Hi = a
		f := (mc.Regs.AF.Lo & cf) | alu.SZ[a]
		if mc.IFF2 {
			f |= pf
		}
		mc.Regs.AF.Lo = f
		mc.afterLDAIR = true
		mc.stall = s.Cycles

	case instructions.LdAR:
		a := mc.Regs.R
		mc.Regs.AF.Hi = a
		f := (mc.Regs.AF.Lo & cf) | alu.SZ[a]
		if mc.IFF2 {
			f |= pf
		}
		mc.Regs.AF.Lo = f
		mc.afterLDAIR = true
		mc.stall = s.Cycles

	case instructions.LdIA:
		mc.Regs.I = mc.Regs.AF.Hi
		mc.stall = s.Cycles

	case instructions.LdRA:
		mc.Regs.R = mc.Regs.AF.Hi
		mc.stall = s.Cycles

	case instructions.Retn:
		mc.Regs.PC.SetWord(mc.Regs.WZ.Word())
		mc.IFF1 = mc.IFF2

	case instructions.Reti:
		mc.Regs.PC.SetWord(mc.Regs.WZ.Word())
		mc.IFF1 = mc.IFF2
		if mc.Reti != nil {
			mc.Reti()
		}

	// flow control
	case instructions.AddDispWZ:
		idx, err := mc.pair16(registers.IdxHL)
		if err != nil {
			return false, err
		}
		mc.Regs.WZ.SetWord(idx.Word() + signedOffset(mc.latch))
		mc.stall = s.Cycles

	case instructions.RelJump:
		pc := mc.Regs.PC.Word() + signedOffset(mc.latch)
		mc.Regs.PC.SetWord(pc)
		mc.Regs.WZ.SetWord(pc)
		mc.stall = s.Cycles

	case instructions.Rst:
		mc.Regs.PC.SetWord(uint16(s.V))
		mc.Regs.WZ.SetWord(uint16(s.V))

	case instructions.EndIfNot:
		taken := mc.cond(instructions.Cond(s.V))
		mc.LastResult.BranchSuccess = taken
		return !taken, nil

	case instructions.DecBEndIfZero:
		mc.Regs.BC.Hi--
		taken := mc.Regs.BC.Hi != 0
		mc.LastResult.BranchSuccess = taken
		return !taken, nil

	case instructions.EndIfBCZero:
		done := mc.Regs.BC.Word() == 0
		mc.LastResult.BranchSuccess = !done
		return done, nil

	case instructions.EndIfBZero:
		done := mc.Regs.BC.Hi == 0
		mc.LastResult.BranchSuccess = !done
		return done, nil

	case instructions.EndSearch:
		done := mc.Regs.BC.Word() == 0 || mc.Regs.AF.Lo&zf != 0
		mc.LastResult.BranchSuccess = !done
		return done, nil

	case instructions.Loop:
		pc := mc.Regs.PC.Word() - 2
		mc.Regs.PC.SetWord(pc)
		if s.V != 0 {
			mc.Regs.WZ.SetWord(pc + 1)
		}
		mc.stall = s.Cycles

	case instructions.Internal:
		mc.stall = s.Cycles

	// decoding
	case instructions.DecodeIndexCB:
		d := mc.set.IndexCB[mc.latch]
		mc.defn = d
		mc.stepIdx = 0
		mc.LastResult.Defn = d

	case instructions.Im0Dispatch:
		b := mc.latch
		if b&0xc7 != 0xc7 {
			return false, fmt.Errorf("z80: interrupt mode 0 with opcode %#02x on the bus: %w",
				b, UnimplementedFeature)
		}
		d := mc.set.IM0Rst[(b>>3)&0x07]
		mc.defn = d
		mc.stepIdx = 0
		mc.LastResult.Defn = d

	// block instructions
	case instructions.BlockLd:
		mc.beginMemWrite(mc.Regs.DE.Word(), mc.latch, s.Cycles)
		if s.V < 0 {
			mc.Regs.DE.Dec()
			mc.Regs.HL.Dec()
		} else {
			mc.Regs.DE.Inc()
			mc.Regs.HL.Inc()
		}
		mc.Regs.BC.Dec()
		n := mc.Regs.AF.Hi + mc.latch
		f := mc.Regs.AF.Lo & (sf | zf | cf)
		if mc.Regs.BC.Word() != 0 {
			f |= pf
		}
		if n&0x02 != 0 {
			f |= yf
		}
		mc.Regs.AF.Lo = f | n&xf

	case instructions.BlockCp:
		a := mc.Regs.AF.Hi
		v := mc.latch
		res := a - v
		f := (mc.Regs.AF.Lo & cf) | nf
		if a&0x0f < v&0x0f {
			f |= hf
		}
		if res&0x80 != 0 {
			f |= sf
		}
		if res == 0 {
			f |= zf
		}
		if s.V < 0 {
			mc.Regs.HL.Dec()
			mc.Regs.WZ.Dec()
		} else {
			mc.Regs.HL.Inc()
			mc.Regs.WZ.Inc()
		}
		mc.Regs.BC.Dec()
		if mc.Regs.BC.Word() != 0 {
			f |= pf
		}
		n := res
		if f&hf != 0 {
			n--
		}
		if n&0x02 != 0 {
			f |= yf
		}
		mc.Regs.AF.Lo = f | n&xf
		mc.stall = s.Cycles

	case instructions.BlockIn:
		// the address register takes the port address before B was
		// decremented, moved in the direction of travel
		if s.V < 0 {
			mc.Regs.WZ.SetWord(mc.Regs.BC.Word() - 1)
		} else {
			mc.Regs.WZ.SetWord(mc.Regs.BC.Word() + 1)
		}
		mc.beginMemWrite(mc.Regs.HL.Word(), mc.latch, s.Cycles)
		if s.V < 0 {
			mc.Regs.HL.Dec()
		} else {
			mc.Regs.HL.Inc()
		}
		mc.Regs.BC.Hi--
		b := mc.Regs.BC.Hi
		t := uint16(mc.latch) + uint16(uint8(int(mc.Regs.BC.Lo)+s.V))
		f := alu.SZ[b]
		if mc.latch&0x80 != 0 {
			f |= nf
		}
		if t > 0xff {
			f |= hf | cf
		}
		mc.Regs.AF.Lo = f | alu.SZP[uint8(t)&0x07^b]&pf

	case instructions.BlockOut:
		mc.Regs.BC.Hi--
		b := mc.Regs.BC.Hi
		port := mc.Regs.BC.Word()
		if s.V < 0 {
			mc.Regs.WZ.SetWord(port - 1)
		} else {
			mc.Regs.WZ.SetWord(port + 1)
		}
		mc.beginIOWrite(port, mc.latch, s.Cycles)
		if s.V < 0 {
			mc.Regs.HL.Dec()
		} else {
			mc.Regs.HL.Inc()
		}
		t := uint16(mc.latch) + uint16(mc.Regs.HL.Lo)
		f := alu.SZ[b]
		if mc.latch&0x80 != 0 {
			f |= nf
		}
		if t > 0xff {
			f |= hf | cf
		}
		mc.Regs.AF.Lo = f | alu.SZP[uint8(t)&0x07^b]&pf

	default:
		return false, fmt.Errorf("z80: %s: unserviceable micro operation %s (opcode %#02x)",
			mc.defn.Mnemonic, s.Op, mc.defn.OpCode)
	}

	return false, nil
}

// alu8 applies an eight bit arithmetic or logic operation to the
// accumulator. The large tables in the alu package supply the flags for the
// carry group.
func (mc *CPU) alu8(op instructions.AluOp, v uint8) {
	a := mc.Regs.AF.Hi
	f := mc.Regs.AF.Lo

	switch op {
	case instructions.AluAdd:
		r := a + v
		mc.Regs.AF.Hi = r
		mc.Regs.AF.Lo = alu.Add[uint16(a)<<8|uint16(r)]
	case instructions.AluAdc:
		if f&cf != 0 {
			r := a + v + 1
			mc.Regs.AF.Hi = r
			mc.Regs.AF.Lo = alu.Adc[uint16(a)<<8|uint16(r)]
		} else {
			r := a + v
			mc.Regs.AF.Hi = r
			mc.Regs.AF.Lo = alu.Add[uint16(a)<<8|uint16(r)]
		}
	case instructions.AluSub:
		r := a - v
		mc.Regs.AF.Hi = r
		mc.Regs.AF.Lo = alu.Sub[uint16(a)<<8|uint16(r)]
	case instructions.AluSbc:
		if f&cf != 0 {
			r := a - v - 1
			mc.Regs.AF.Hi = r
			mc.Regs.AF.Lo = alu.Sbc[uint16(a)<<8|uint16(r)]
		} else {
			r := a - v
			mc.Regs.AF.Hi = r
			mc.Regs.AF.Lo = alu.Sub[uint16(a)<<8|uint16(r)]
		}
	case instructions.AluAnd:
		r := a & v
		mc.Regs.AF.Hi = r
		mc.Regs.AF.Lo = alu.SZP[r] | hf
	case instructions.AluXor:
		r := a ^ v
		mc.Regs.AF.Hi = r
		mc.Regs.AF.Lo = alu.SZP[r]
	case instructions.AluOr:
		r := a | v
		mc.Regs.AF.Hi = r
		mc.Regs.AF.Lo = alu.SZP[r]
	case instructions.AluCp:
		// the comparison discards the result but the 5 and 3 flags come
		// from the operand
		r := a - v
		mc.Regs.AF.Lo = alu.Sub[uint16(a)<<8|uint16(r)]&^(yf|xf) | v&(yf|xf)
	}
}

// rot8 applies a rotate or shift and returns the result and the new flags.
func rot8(op instructions.RotOp, v uint8, f uint8) (uint8, uint8) {
	var r, c uint8
	switch op {
	case instructions.RotRLC:
		c = v >> 7
		r = v<<1 | c
	case instructions.RotRRC:
		c = v & 1
		r = v>>1 | c<<7
	case instructions.RotRL:
		c = v >> 7
		r = v<<1 | f&cf
	case instructions.RotRR:
		c = v & 1
		r = v>>1 | (f&cf)<<7
	case instructions.RotSLA:
		c = v >> 7
		r = v << 1
	case instructions.RotSRA:
		c = v & 1
		r = v>>1 | v&0x80
	case instructions.RotSLL:
		c = v >> 7
		r = v<<1 | 1
	case instructions.RotSRL:
		c = v & 1
		r = v >> 1
	}
	return r, alu.SZP[r] | c
}
