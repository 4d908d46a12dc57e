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
	"strings"

	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
)

// newIndexTable derives the DD/FD context from the base table. One table
// serves both prefixes. The register selector decides at execution time
// whether the virtual identifiers resolve to IX or IY, so most entries are
// shallow clones of the base entry with adjusted byte and cycle counts. the
// clones share the base entry's step list.
//
// The entries that address memory through HL are different instructions in
// this context. They take a displacement byte and, for the two-operand
// loads, the other operand is the real H or L register, not the index half.
// These entries are patched with their own step lists.
func newIndexTable(base *[256]*Defn) [256]*Defn {
	var t [256]*Defn

	for o := 0; o < 256; o++ {
		d := base[o]
		if d == nil {
			continue
		}
		c := *d
		c.Prefix = PrefixIndex
		c.Bytes++
		c.Cycles += 4
		if c.CyclesBranch != 0 {
			c.CyclesBranch += 4
		}
		if uint8(o) != 0xeb {
			// EX DE,HL pairs DE with the real HL whatever the prefix
			c.Mnemonic = indexMnemonic(d.Mnemonic)
		}
		t[o] = &c
	}

	patch := func(opcode uint8, mnemonic string, operand Operand, bytes int, cycles int, steps ...Step) {
		d := t[opcode]
		d.Mnemonic = mnemonic
		d.Operand = operand
		d.Bytes = bytes
		d.Cycles = cycles
		d.Steps = steps
	}

	patch(0x34, "INC (IXY+d)", OperandDisp, 3, 23,
		readPC(), addDispWZ(5), memRead(rpWZ, 3), incData(), memWriteData(rpWZ))
	patch(0x35, "DEC (IXY+d)", OperandDisp, 3, 23,
		readPC(), addDispWZ(5), memRead(rpWZ, 3), decData(), memWriteData(rpWZ))

	// the displacement and the value to write arrive back to back. the
	// address calculation overlaps the second operand read, leaving only two
	// cycles of stretch.
	patch(0x36, "LD (IXY+d),n", OperandDispImm8, 4, 19,
		readPC(), addDispWZ(2), readPC(), memWriteData(rpWZ))

	dispReg8 := [8]registers.Reg8{rB, rC, rD, rE, rH, rL, 0, rA}

	for y := 0; y < 8; y++ {
		if y == 6 {
			continue
		}
		patch(uint8(0x46+y*8), "LD "+colName8[y]+",(IXY+d)", OperandDisp, 3, 19,
			readPC(), addDispWZ(5), memRead(rpWZ, 3), store(dispReg8[y]))
		patch(uint8(0x70+y), "LD (IXY+d),"+colName8[y], OperandDisp, 3, 19,
			readPC(), addDispWZ(5), memWrite(rpWZ, dispReg8[y]))
	}

	for a := 0; a < 8; a++ {
		patch(uint8(0x86+a*8), aluName[a]+"(IXY+d)", OperandDisp, 3, 19,
			readPC(), addDispWZ(5), memRead(rpWZ, 3), aluData(AluOp(a)))
	}

	return t
}

// indexMnemonic rewrites a base mnemonic for the index context. HL and its
// halves become the IXY placeholder forms. only whole tokens are rewritten,
// so the L in HALT or the H in CALL are left alone.
func indexMnemonic(m string) string {
	var out strings.Builder
	var tok strings.Builder

	flush := func() {
		s := tok.String()
		switch s {
		case "HL":
			s = "IXY"
		case "H":
			s = "IXYH"
		case "L":
			s = "IXYL"
		case "(HL)":
			s = "(IXY)"
		}
		out.WriteString(s)
		tok.Reset()
	}

	for _, r := range m {
		if r == ' ' || r == ',' {
			flush()
			out.WriteRune(r)
			continue
		}
		tok.WriteRune(r)
	}
	flush()

	return out.String()
}
