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

package instructions

import (
	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
)

// newEDTable builds the extended instruction table reached through the ED
// prefix. The DD and FD prefixes have no effect in this context so register
// identifiers are concrete.
//
// Slots with no assigned instruction behave as two-byte NOPs. They are given
// real entries rather than nil so that execution of an undefined ED sequence
// proceeds without complaint, as it does on hardware.
func newEDTable() [256]*Defn {
	var t [256]*Defn

	def := func(opcode uint8, mnemonic string, operand Operand, bytes int, cycles int, steps ...Step) {
		t[opcode] = &Defn{
			OpCode:   opcode,
			Prefix:   PrefixED,
			Mnemonic: mnemonic,
			Operand:  operand,
			Bytes:    bytes,
			Cycles:   cycles,
			Steps:    steps,
		}
	}

	brn := func(opcode uint8, mnemonic string, operand Operand, bytes int, cycles int, cyclesBranch int, steps ...Step) {
		def(opcode, mnemonic, operand, bytes, cycles, steps...)
		t[opcode].CyclesBranch = cyclesBranch
	}

	for o := 0; o < 256; o++ {
		def(uint8(o), "NOP*", OperandNone, 2, 8)
	}

	rp := [4]registers.Reg16{rpBC, rpDE, rpHL, rpSP}
	rpLo := [4]registers.Reg8{rC, rE, rL, rSPL}
	rpHi := [4]registers.Reg8{rB, rD, rH, rSPH}
	rpName := [4]string{"BC", "DE", "HL", "SP"}

	edReg8 := [8]registers.Reg8{rB, rC, rD, rE, rH, rL, 0, rA}

	for y := 0; y < 8; y++ {
		o := uint8(0x40 + y*8)
		if y == 6 {
			def(o, "IN F,(C)", OperandNone, 2, 12, ioRead(), Step{Op: InF})
			def(o+1, "OUT (C),0", OperandNone, 2, 12, ioWriteZero())
		} else {
			def(o, "IN "+colName8[y]+",(C)", OperandNone, 2, 12, ioRead(), in(edReg8[y]))
			def(o+1, "OUT (C),"+colName8[y], OperandNone, 2, 12, ioWrite(edReg8[y]))
		}
		def(o+4, "NEG", OperandNone, 2, 8, Step{Op: Neg})
		if y == 1 {
			def(o+5, "RETI", OperandNone, 2, 14,
				memReadInc(rpSP, 3), store(rZ), memReadInc(rpSP, 3), store(rW), Step{Op: Reti})
		} else {
			def(o+5, "RETN", OperandNone, 2, 14,
				memReadInc(rpSP, 3), store(rZ), memReadInc(rpSP, 3), store(rW), Step{Op: Retn})
		}
	}

	for p := 0; p < 4; p++ {
		o := uint8(0x40 + p*16)
		def(o+0x02, "SBC HL,"+rpName[p], OperandNone, 2, 15, internal(4), sbc16(rp[p]))
		def(o+0x0a, "ADC HL,"+rpName[p], OperandNone, 2, 15, internal(4), adc16(rp[p]))
		def(o+0x03, "LD (nn),"+rpName[p], OperandImm16, 4, 20,
			readPC(), store(rZ), readPC(), store(rW),
			memWriteInc(rpWZ, rpLo[p]), memWrite(rpWZ, rpHi[p]))
		def(o+0x0b, "LD "+rpName[p]+",(nn)", OperandImm16, 4, 20,
			readPC(), store(rZ), readPC(), store(rW),
			memReadInc(rpWZ, 3), store(rpLo[p]), memRead(rpWZ, 3), store(rpHi[p]))
	}

	// the interrupt mode group repeats through the undocumented slots. modes
	// 0/1 from the datasheet behave as mode 0 here.
	imMode := [4]int{0, 0, 1, 2}
	imName := [4]string{"IM 0", "IM 0/1", "IM 1", "IM 2"}
	for y := 0; y < 8; y++ {
		def(uint8(0x46+y*8), imName[y%4], OperandNone, 2, 8, im(imMode[y%4]))
	}

	def(0x47, "LD I,A", OperandNone, 2, 9, Step{Op: LdIA, Cycles: 1})
	def(0x4f, "LD R,A", OperandNone, 2, 9, Step{Op: LdRA, Cycles: 1})
	def(0x57, "LD A,I", OperandNone, 2, 9, Step{Op: LdAI, Cycles: 1})
	def(0x5f, "LD A,R", OperandNone, 2, 9, Step{Op: LdAR, Cycles: 1})
	def(0x67, "RRD", OperandNone, 2, 18,
		memRead(rpHL, 3), Step{Op: Rrd, Cycles: 4}, memWriteData(rpHL))
	def(0x6f, "RLD", OperandNone, 2, 18,
		memRead(rpHL, 3), Step{Op: Rld, Cycles: 4}, memWriteData(rpHL))

	// block transfer, search and IO. the block step moves HL in the
	// direction carried by its value field so the same program shape serves
	// the incrementing and decrementing forms.
	def(0xa0, "LDI", OperandNone, 2, 16, memRead(rpHL, 3), blockLd(1))
	def(0xa1, "CPI", OperandNone, 2, 16, memRead(rpHL, 3), blockCp(1))
	def(0xa2, "INI", OperandNone, 2, 16, internal(1), ioRead(), blockIn(1))
	def(0xa3, "OUTI", OperandNone, 2, 16, internal(1), memRead(rpHL, 3), blockOut(1))
	def(0xa8, "LDD", OperandNone, 2, 16, memRead(rpHL, 3), blockLd(-1))
	def(0xa9, "CPD", OperandNone, 2, 16, memRead(rpHL, 3), blockCp(-1))
	def(0xaa, "IND", OperandNone, 2, 16, internal(1), ioRead(), blockIn(-1))
	def(0xab, "OUTD", OperandNone, 2, 16, internal(1), memRead(rpHL, 3), blockOut(-1))

	brn(0xb0, "LDIR", OperandNone, 2, 16, 21,
		memRead(rpHL, 3), blockLd(1), Step{Op: EndIfBCZero}, loopWZ())
	brn(0xb1, "CPIR", OperandNone, 2, 16, 21,
		memRead(rpHL, 3), blockCp(1), Step{Op: EndSearch}, loopWZ())
	brn(0xb2, "INIR", OperandNone, 2, 16, 21,
		internal(1), ioRead(), blockIn(1), Step{Op: EndIfBZero}, loop())
	brn(0xb3, "OTIR", OperandNone, 2, 16, 21,
		internal(1), memRead(rpHL, 3), blockOut(1), Step{Op: EndIfBZero}, loop())
	brn(0xb8, "LDDR", OperandNone, 2, 16, 21,
		memRead(rpHL, 3), blockLd(-1), Step{Op: EndIfBCZero}, loopWZ())
	brn(0xb9, "CPDR", OperandNone, 2, 16, 21,
		memRead(rpHL, 3), blockCp(-1), Step{Op: EndSearch}, loopWZ())
	brn(0xba, "INDR", OperandNone, 2, 16, 21,
		internal(1), ioRead(), blockIn(-1), Step{Op: EndIfBZero}, loop())
	brn(0xbb, "OTDR", OperandNone, 2, 16, 21,
		internal(1), memRead(rpHL, 3), blockOut(-1), Step{Op: EndIfBZero}, loop())

	return t
}
