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

import "github.com/jetsetilly/gopherz80/hardware/z80/registers"

// shorthand for the register identifiers. the tables mention registers
// hundreds of times and fully qualified names would drown the shape of the
// programs.
const (
	rA    = registers.A
	rF    = registers.F
	rB    = registers.B
	rC    = registers.C
	rD    = registers.D
	rE    = registers.E
	rH    = registers.H
	rL    = registers.L
	rW    = registers.W
	rZ    = registers.Z
	rI    = registers.I
	rSPL  = registers.SPL
	rSPH  = registers.SPH
	rPCL  = registers.PCL
	rPCH  = registers.PCH
	rIdxH = registers.IdxH
	rIdxL = registers.IdxL
)

const (
	rpBC    = registers.BC
	rpDE    = registers.DE
	rpHL    = registers.HL
	rpSP    = registers.SP
	rpPC    = registers.PC
	rpWZ    = registers.WZ
	rpIdxHL = registers.IdxHL
)

// step constructors. constructors whose T-state cost never varies carry it
// here; the rest take the cost for the position they appear in.

func readPC() Step {
	return Step{Op: MemReadInc, P: rpPC, Cycles: 3}
}

func memRead(p registers.Reg16, cycles int) Step {
	return Step{Op: MemRead, P: p, Cycles: cycles}
}

func memReadInc(p registers.Reg16, cycles int) Step {
	return Step{Op: MemReadInc, P: p, Cycles: cycles}
}

func memReadWZ1(p registers.Reg16) Step {
	return Step{Op: MemReadWZ1, P: p, Cycles: 3}
}

func memWrite(p registers.Reg16, r registers.Reg8) Step {
	return Step{Op: MemWrite, P: p, R: r, Cycles: 3}
}

func memWriteInc(p registers.Reg16, r registers.Reg8) Step {
	return Step{Op: MemWriteInc, P: p, R: r, Cycles: 3}
}

func memWriteData(p registers.Reg16) Step {
	return Step{Op: MemWriteData, P: p, Cycles: 3}
}

func memWriteAWZ(p registers.Reg16) Step {
	return Step{Op: MemWriteAWZ, P: p, Cycles: 3}
}

func push(r registers.Reg8, cycles int) Step {
	return Step{Op: Push, R: r, Cycles: cycles}
}

func ioRead() Step {
	return Step{Op: IORead, Cycles: 4}
}

func ioReadImm() Step {
	return Step{Op: IOReadImm, Cycles: 4}
}

func ioWrite(r registers.Reg8) Step {
	return Step{Op: IOWrite, R: r, Cycles: 4}
}

func ioWriteZero() Step {
	return Step{Op: IOWriteZero, Cycles: 4}
}

func ioWriteImm() Step {
	return Step{Op: IOWriteImm, Cycles: 4}
}

func store(r registers.Reg8) Step {
	return Step{Op: StoreData, R: r}
}

func ld(dst registers.Reg8, src registers.Reg8) Step {
	return Step{Op: Ld, R: dst, R2: src}
}

func ld16(p registers.Reg16) Step {
	return Step{Op: Ld16, P: p}
}

func alu8(op AluOp, r registers.Reg8) Step {
	return Step{Op: Alu, V: int(op), R: r}
}

func aluData(op AluOp) Step {
	return Step{Op: AluData, V: int(op)}
}

func incR8(r registers.Reg8) Step {
	return Step{Op: IncR8, R: r}
}

func decR8(r registers.Reg8) Step {
	return Step{Op: DecR8, R: r}
}

func incData() Step {
	return Step{Op: IncData, Cycles: 1}
}

func decData() Step {
	return Step{Op: DecData, Cycles: 1}
}

func inc16(p registers.Reg16) Step {
	return Step{Op: Inc16, P: p, Cycles: 2}
}

func dec16(p registers.Reg16) Step {
	return Step{Op: Dec16, P: p, Cycles: 2}
}

func add16(p registers.Reg16) Step {
	return Step{Op: Add16, P: p, Cycles: 3}
}

func adc16(p registers.Reg16) Step {
	return Step{Op: Adc16, P: p, Cycles: 3}
}

func sbc16(p registers.Reg16) Step {
	return Step{Op: Sbc16, P: p, Cycles: 3}
}

func rotA(op RotOp) Step {
	return Step{Op: RotA, V: int(op)}
}

func rot(op RotOp, r registers.Reg8) Step {
	return Step{Op: Rot, V: int(op), R: r}
}

func rotData(op RotOp) Step {
	return Step{Op: RotData, V: int(op), Cycles: 1}
}

func bit(b int, r registers.Reg8) Step {
	return Step{Op: Bit, V: b, R: r}
}

func bitData(b int) Step {
	return Step{Op: BitData, V: b, Cycles: 1}
}

func setBit(b int, r registers.Reg8) Step {
	return Step{Op: SetBit, V: b, R: r}
}

func setBitData(b int) Step {
	return Step{Op: SetBitData, V: b, Cycles: 1}
}

func resBit(b int, r registers.Reg8) Step {
	return Step{Op: ResBit, V: b, R: r}
}

func resBitData(b int) Step {
	return Step{Op: ResBitData, V: b, Cycles: 1}
}

func in(r registers.Reg8) Step {
	return Step{Op: In, R: r}
}

func addDispWZ(cycles int) Step {
	return Step{Op: AddDispWZ, Cycles: cycles}
}

func relJump() Step {
	return Step{Op: RelJump, Cycles: 5}
}

func rst(target int) Step {
	return Step{Op: Rst, V: target}
}

func endIfNot(c Cond) Step {
	return Step{Op: EndIfNot, V: int(c)}
}

func loop() Step {
	return Step{Op: Loop, Cycles: 5}
}

// loopWZ is loop for the memory block instructions, which also deposit the
// resumption address in WZ.
func loopWZ() Step {
	return Step{Op: Loop, V: 1, Cycles: 5}
}

func internal(cycles int) Step {
	return Step{Op: Internal, Cycles: cycles}
}

func blockLd(dir int) Step {
	return Step{Op: BlockLd, V: dir, Cycles: 5}
}

func blockCp(dir int) Step {
	return Step{Op: BlockCp, V: dir, Cycles: 5}
}

func blockIn(dir int) Step {
	return Step{Op: BlockIn, V: dir, Cycles: 3}
}

func blockOut(dir int) Step {
	return Step{Op: BlockOut, V: dir, Cycles: 4}
}

func im(mode int) Step {
	return Step{Op: Im, V: mode}
}

func intAck() Step {
	return Step{Op: IntAck, Cycles: 7}
}

func nmiFetch() Step {
	return Step{Op: NmiFetch, Cycles: 5}
}
