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
)

// newIndexCBPrologue builds the program that runs between the CB byte of a
// DDCB or FDCB sequence and the operation itself. The displacement and the
// final opcode follow the CB byte as plain memory reads, not opcode fetches.
// The last step hands the opcode just read to the decoder, which swaps in
// the table entry that finishes the instruction.
//
// The entry is identified by the index prefix and the CB opcode, a pairing
// that no real instruction occupies.
func newIndexCBPrologue() *Defn {
	return &Defn{
		OpCode:   PrefixByteCB,
		Prefix:   PrefixIndex,
		Mnemonic: "PREFIX CB",
		Operand:  OperandDisp,
		Bytes:    4,
		Cycles:   20,
		Steps: []Step{
			readPC(),
			addDispWZ(0),
			memReadInc(rpPC, 5),
			{Op: DecodeIndexCB},
		},
	}
}

// newIndexCBTable builds the table for the final byte of a DDCB or FDCB
// sequence. Every entry operates on the memory byte at the address already
// computed from the displacement. The register columns of the rotate, RES
// and SET rows additionally copy the written value to the register, an
// undocumented behaviour the table represents directly. The BIT row has no
// register variants, just eight copies of the memory test.
func newIndexCBTable() [256]*Defn {
	var t [256]*Defn

	def := func(opcode uint8, mnemonic string, cycles int, steps ...Step) {
		t[opcode] = &Defn{
			OpCode:   opcode,
			Prefix:   PrefixIndexCB,
			Mnemonic: mnemonic,
			Operand:  OperandDisp,
			Bytes:    4,
			Cycles:   cycles,
			Steps:    steps,
		}
	}

	for a := 0; a < 8; a++ {
		op := RotOp(a)
		for z := 0; z < 8; z++ {
			o := uint8(a*8 + z)
			if z == 6 {
				def(o, op.String()+" (IXY+d)", 23,
					memRead(rpWZ, 3), rotData(op), memWriteData(rpWZ))
				continue
			}
			def(o, op.String()+" (IXY+d),"+colName8[z], 23,
				memRead(rpWZ, 3), rotData(op), memWriteData(rpWZ), store(cbReg8[z]))
		}
	}

	for b := 0; b < 8; b++ {
		for z := 0; z < 8; z++ {
			def(uint8(0x40+b*8+z), fmt.Sprintf("BIT %d,(IXY+d)", b), 20,
				memRead(rpWZ, 3), bitData(b))
			if z == 6 {
				def(uint8(0x86+b*8), fmt.Sprintf("RES %d,(IXY+d)", b), 23,
					memRead(rpWZ, 3), resBitData(b), memWriteData(rpWZ))
				def(uint8(0xc6+b*8), fmt.Sprintf("SET %d,(IXY+d)", b), 23,
					memRead(rpWZ, 3), setBitData(b), memWriteData(rpWZ))
				continue
			}
			def(uint8(0x80+b*8+z), fmt.Sprintf("RES %d,(IXY+d),%s", b, colName8[z]), 23,
				memRead(rpWZ, 3), resBitData(b), memWriteData(rpWZ), store(cbReg8[z]))
			def(uint8(0xc0+b*8+z), fmt.Sprintf("SET %d,(IXY+d),%s", b, colName8[z]), 23,
				memRead(rpWZ, 3), setBitData(b), memWriteData(rpWZ), store(cbReg8[z]))
		}
	}

	return t
}
