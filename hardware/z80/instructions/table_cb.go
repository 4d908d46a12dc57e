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

// the CB context never substitutes the index registers so the register
// column here uses the concrete H and L identifiers.
var cbReg8 = [8]registers.Reg8{rB, rC, rD, rE, rH, rL, 0, rA}

// newCBTable builds the bit manipulation table reached through the CB prefix.
// All 256 slots are populated. The quadrants are perfectly regular: rotates
// and shifts, BIT, RES, SET, each over the eight register columns.
func newCBTable() [256]*Defn {
	var t [256]*Defn

	def := func(opcode uint8, mnemonic string, cycles int, steps ...Step) {
		t[opcode] = &Defn{
			OpCode:   opcode,
			Prefix:   PrefixCB,
			Mnemonic: mnemonic,
			Operand:  OperandNone,
			Bytes:    2,
			Cycles:   cycles,
			Steps:    steps,
		}
	}

	for a := 0; a < 8; a++ {
		op := RotOp(a)
		for z := 0; z < 8; z++ {
			o := uint8(a*8 + z)
			if z == 6 {
				def(o, op.String()+" (HL)", 15,
					memRead(rpHL, 3), rotData(op), memWriteData(rpHL))
				continue
			}
			def(o, op.String()+" "+colName8[z], 8, rot(op, cbReg8[z]))
		}
	}

	for b := 0; b < 8; b++ {
		for z := 0; z < 8; z++ {
			if z == 6 {
				def(uint8(0x46+b*8), fmt.Sprintf("BIT %d,(HL)", b), 12,
					memRead(rpHL, 3), bitData(b))
				def(uint8(0x86+b*8), fmt.Sprintf("RES %d,(HL)", b), 15,
					memRead(rpHL, 3), resBitData(b), memWriteData(rpHL))
				def(uint8(0xc6+b*8), fmt.Sprintf("SET %d,(HL)", b), 15,
					memRead(rpHL, 3), setBitData(b), memWriteData(rpHL))
				continue
			}
			def(uint8(0x40+b*8+z), fmt.Sprintf("BIT %d,%s", b, colName8[z]), 8,
				bit(b, cbReg8[z]))
			def(uint8(0x80+b*8+z), fmt.Sprintf("RES %d,%s", b, colName8[z]), 8,
				resBit(b, cbReg8[z]))
			def(uint8(0xc0+b*8+z), fmt.Sprintf("SET %d,%s", b, colName8[z]), 8,
				setBit(b, cbReg8[z]))
		}
	}

	return t
}
