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
	"fmt"

	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
)

// the register column shared by the aligned opcode groups. index 6 is the
// (HL) column and never resolves to a register; the builders special-case it.
//
// the virtual identifiers mean the same table entries serve the DD and FD
// contexts, where H and L become halves of the index register.
var colReg8 = [8]registers.Reg8{rB, rC, rD, rE, rIdxH, rIdxL, 0, rA}

var colName8 = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// mnemonic prefixes for the arithmetic group. Zilog writes the accumulator
// operand for half of them and omits it for the other half.
var aluName = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

// newBaseTable builds the unprefixed instruction table. The four slots
// occupied by prefix bytes (CB, DD, ED, FD) are left nil; the decoder handles
// prefixes before consulting the table.
func newBaseTable() [256]*Defn {
	var t [256]*Defn

	def := func(opcode uint8, mnemonic string, operand Operand, bytes int, cycles int, steps ...Step) {
		t[opcode] = &Defn{
			OpCode:   opcode,
			Prefix:   PrefixNone,
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

	rp := [4]registers.Reg16{rpBC, rpDE, rpIdxHL, rpSP}
	rpLo := [4]registers.Reg8{rC, rE, rIdxL, rSPL}
	rpHi := [4]registers.Reg8{rB, rD, rIdxH, rSPH}
	rpName := [4]string{"BC", "DE", "HL", "SP"}

	// the 16-bit immediate loads, increments, decrements and additions
	for p := 0; p < 4; p++ {
		o := uint8(p * 16)
		def(o+0x01, "LD "+rpName[p]+",nn", OperandImm16, 3, 10,
			readPC(), store(rpLo[p]), readPC(), store(rpHi[p]))
		def(o+0x03, "INC "+rpName[p], OperandNone, 1, 6, inc16(rp[p]))
		def(o+0x09, "ADD HL,"+rpName[p], OperandNone, 1, 11, internal(4), add16(rp[p]))
		def(o+0x0b, "DEC "+rpName[p], OperandNone, 1, 6, dec16(rp[p]))
	}

	// the 8-bit increments, decrements and immediate loads
	for y := 0; y < 8; y++ {
		o := uint8(y * 8)
		if y == 6 {
			def(0x34, "INC (HL)", OperandNone, 1, 11,
				memRead(rpIdxHL, 3), incData(), memWriteData(rpIdxHL))
			def(0x35, "DEC (HL)", OperandNone, 1, 11,
				memRead(rpIdxHL, 3), decData(), memWriteData(rpIdxHL))
			def(0x36, "LD (HL),n", OperandImm8, 2, 10,
				readPC(), memWriteData(rpIdxHL))
			continue
		}
		def(o+0x04, "INC "+colName8[y], OperandNone, 1, 4, incR8(colReg8[y]))
		def(o+0x05, "DEC "+colName8[y], OperandNone, 1, 4, decR8(colReg8[y]))
		def(o+0x06, "LD "+colName8[y]+",n", OperandImm8, 2, 7, readPC(), store(colReg8[y]))
	}

	// the 8x8 load block
	for y := 0; y < 8; y++ {
		for z := 0; z < 8; z++ {
			o := uint8(0x40 + y*8 + z)
			switch {
			case y == 6 && z == 6:
				def(o, "HALT", OperandNone, 1, 4, Step{Op: Halt})
			case y == 6:
				def(o, "LD (HL),"+colName8[z], OperandNone, 1, 7, memWrite(rpIdxHL, colReg8[z]))
			case z == 6:
				def(o, "LD "+colName8[y]+",(HL)", OperandNone, 1, 7,
					memRead(rpIdxHL, 3), store(colReg8[y]))
			default:
				def(o, "LD "+colName8[y]+","+colName8[z], OperandNone, 1, 4,
					ld(colReg8[y], colReg8[z]))
			}
		}
	}

	// the arithmetic block and its immediate column
	for a := 0; a < 8; a++ {
		op := AluOp(a)
		for z := 0; z < 8; z++ {
			o := uint8(0x80 + a*8 + z)
			if z == 6 {
				def(o, aluName[a]+"(HL)", OperandNone, 1, 7,
					memRead(rpIdxHL, 3), aluData(op))
				continue
			}
			def(o, aluName[a]+colName8[z], OperandNone, 1, 4, alu8(op, colReg8[z]))
		}
		def(uint8(0xc6+a*8), aluName[a]+"n", OperandImm8, 2, 7, readPC(), aluData(op))
	}

	// the conditional groups
	for c := 0; c < 8; c++ {
		cond := Cond(c)
		brn(uint8(0xc0+c*8), "RET "+cond.String(), OperandNone, 1, 5, 11,
			internal(1), endIfNot(cond),
			memReadInc(rpSP, 3), store(rZ), memReadInc(rpSP, 3), store(rW), ld16(rpPC))
		brn(uint8(0xc2+c*8), "JP "+cond.String()+",nn", OperandImm16, 3, 10, 10,
			readPC(), store(rZ), readPC(), store(rW), endIfNot(cond), ld16(rpPC))
		brn(uint8(0xc4+c*8), "CALL "+cond.String()+",nn", OperandImm16, 3, 10, 17,
			readPC(), store(rZ), readPC(), store(rW), endIfNot(cond),
			internal(1), push(rPCH, 3), push(rPCL, 3), ld16(rpPC))
		def(uint8(0xc7+c*8), fmt.Sprintf("RST %02XH", c*8), OperandNone, 1, 11,
			internal(1), push(rPCH, 3), push(rPCL, 3), rst(c*8))
	}
	for c := 0; c < 4; c++ {
		cond := Cond(c)
		brn(uint8(0x20+c*8), "JR "+cond.String()+",e", OperandRel8, 2, 7, 12,
			readPC(), endIfNot(cond), relJump())
	}

	// the stack group
	rp2Lo := [4]registers.Reg8{rC, rE, rIdxL, rF}
	rp2Hi := [4]registers.Reg8{rB, rD, rIdxH, rA}
	rp2Name := [4]string{"BC", "DE", "HL", "AF"}
	for p := 0; p < 4; p++ {
		o := uint8(p * 16)
		def(o+0xc1, "POP "+rp2Name[p], OperandNone, 1, 10,
			memReadInc(rpSP, 3), store(rp2Lo[p]), memReadInc(rpSP, 3), store(rp2Hi[p]))
		def(o+0xc5, "PUSH "+rp2Name[p], OperandNone, 1, 11,
			internal(1), push(rp2Hi[p], 3), push(rp2Lo[p], 3))
	}

	// everything else
	def(0x00, "NOP", OperandNone, 1, 4)
	def(0x02, "LD (BC),A", OperandNone, 1, 7, memWriteAWZ(rpBC))
	def(0x07, "RLCA", OperandNone, 1, 4, rotA(RotRLC))
	def(0x08, "EX AF,AF'", OperandNone, 1, 4, Step{Op: SwapAF})
	def(0x0a, "LD A,(BC)", OperandNone, 1, 7, memReadWZ1(rpBC), store(rA))
	def(0x0f, "RRCA", OperandNone, 1, 4, rotA(RotRRC))
	brn(0x10, "DJNZ e", OperandRel8, 2, 8, 13,
		internal(1), readPC(), Step{Op: DecBEndIfZero}, relJump())
	def(0x12, "LD (DE),A", OperandNone, 1, 7, memWriteAWZ(rpDE))
	def(0x17, "RLA", OperandNone, 1, 4, rotA(RotRL))
	def(0x18, "JR e", OperandRel8, 2, 12, readPC(), relJump())
	def(0x1a, "LD A,(DE)", OperandNone, 1, 7, memReadWZ1(rpDE), store(rA))
	def(0x1f, "RRA", OperandNone, 1, 4, rotA(RotRR))
	def(0x22, "LD (nn),HL", OperandImm16, 3, 16,
		readPC(), store(rZ), readPC(), store(rW),
		memWriteInc(rpWZ, rIdxL), memWrite(rpWZ, rIdxH))
	def(0x27, "DAA", OperandNone, 1, 4, Step{Op: Daa})
	def(0x2a, "LD HL,(nn)", OperandImm16, 3, 16,
		readPC(), store(rZ), readPC(), store(rW),
		memReadInc(rpWZ, 3), store(rIdxL), memRead(rpWZ, 3), store(rIdxH))
	def(0x2f, "CPL", OperandNone, 1, 4, Step{Op: Cpl})
	def(0x32, "LD (nn),A", OperandImm16, 3, 13,
		readPC(), store(rZ), readPC(), store(rW), memWriteAWZ(rpWZ))
	def(0x37, "SCF", OperandNone, 1, 4, Step{Op: Scf})
	def(0x3a, "LD A,(nn)", OperandImm16, 3, 13,
		readPC(), store(rZ), readPC(), store(rW), memReadWZ1(rpWZ), store(rA))
	def(0x3f, "CCF", OperandNone, 1, 4, Step{Op: Ccf})
	def(0xc3, "JP nn", OperandImm16, 3, 10,
		readPC(), store(rZ), readPC(), store(rW), ld16(rpPC))
	def(0xc9, "RET", OperandNone, 1, 10,
		memReadInc(rpSP, 3), store(rZ), memReadInc(rpSP, 3), store(rW), ld16(rpPC))
	def(0xcd, "CALL nn", OperandImm16, 3, 17,
		readPC(), store(rZ), readPC(), store(rW),
		internal(1), push(rPCH, 3), push(rPCL, 3), ld16(rpPC))
	def(0xd3, "OUT (n),A", OperandImm8, 2, 11, readPC(), ioWriteImm())
	def(0xd9, "EXX", OperandNone, 1, 4, Step{Op: SwapAll})
	def(0xdb, "IN A,(n)", OperandImm8, 2, 11, readPC(), ioReadImm(), store(rA))
	def(0xe3, "EX (SP),HL", OperandNone, 1, 19,
		memReadInc(rpSP, 3), store(rZ), memRead(rpSP, 4), store(rW),
		memWrite(rpSP, rIdxH), push(rIdxL, 5), ld16(rpIdxHL))
	def(0xe9, "JP (HL)", OperandNone, 1, 4, Step{Op: JumpIdx, P: rpIdxHL})
	def(0xeb, "EX DE,HL", OperandNone, 1, 4, Step{Op: SwapDEHL})
	def(0xf3, "DI", OperandNone, 1, 4, Step{Op: Di})
	def(0xf9, "LD SP,HL", OperandNone, 1, 6, Step{Op: LdSP16, P: rpIdxHL, Cycles: 2})
	def(0xfb, "EI", OperandNone, 1, 4, Step{Op: Ei})

	return t
}
