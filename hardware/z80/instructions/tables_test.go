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

package instructions_test

import (
	"testing"

	"github.com/jetsetilly/gopherz80/hardware/z80/instructions"
	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
	"github.com/jetsetilly/gopherz80/test"
)

func TestTableCompleteness(t *testing.T) {
	s := instructions.NewSet()

	prefixBytes := map[uint8]bool{
		instructions.PrefixByteCB: true,
		instructions.PrefixByteDD: true,
		instructions.PrefixByteED: true,
		instructions.PrefixByteFD: true,
	}

	for o := 0; o < 256; o++ {
		if prefixBytes[uint8(o)] {
			if s.Base[o] != nil {
				t.Errorf("base table should leave prefix byte %02x empty", o)
			}
			if s.Index[o] != nil {
				t.Errorf("index table should leave prefix byte %02x empty", o)
			}
			continue
		}
		if s.Base[o] == nil {
			t.Errorf("base table missing opcode %02x", o)
		}
		if s.Index[o] == nil {
			t.Errorf("index table missing opcode %02x", o)
		}
	}

	for o := 0; o < 256; o++ {
		if s.CB[o] == nil {
			t.Errorf("CB table missing opcode %02x", o)
		}
		if s.ED[o] == nil {
			t.Errorf("ED table missing opcode %02x", o)
		}
		if s.IndexCB[o] == nil {
			t.Errorf("index CB table missing opcode %02x", o)
		}
	}
}

// stepSum adds the cycle costs of a definition's steps. endSum is the cost
// up to and including the step that can end the instruction early, or the
// full sum when no step can.
func stepSum(d *instructions.Defn) (sum int, endSum int) {
	ended := false
	for _, s := range d.Steps {
		sum += s.Cycles
		if !ended {
			endSum += s.Cycles
		}
		switch s.Op {
		case instructions.EndIfNot, instructions.DecBEndIfZero,
			instructions.EndIfBCZero, instructions.EndIfBZero,
			instructions.EndSearch:
			ended = true
		}
	}
	return sum, endSum
}

// every definition's step costs must add up to the documented cycle count
// once the opcode and prefix fetches are accounted for.
func TestCycleAccounting(t *testing.T) {
	s := instructions.NewSet()

	check := func(d *instructions.Defn, overhead int) {
		t.Helper()
		if d == nil {
			return
		}
		sum, endSum := stepSum(d)
		if d.Conditional() {
			if overhead+sum != d.CyclesBranch {
				t.Errorf("%s: taken path is %d cycles, documented %d",
					d.Mnemonic, overhead+sum, d.CyclesBranch)
			}
			if overhead+endSum != d.Cycles {
				t.Errorf("%s: untaken path is %d cycles, documented %d",
					d.Mnemonic, overhead+endSum, d.Cycles)
			}
			return
		}
		if overhead+sum != d.Cycles {
			t.Errorf("%s (%02x): steps total %d cycles, documented %d",
				d.Mnemonic, d.OpCode, overhead+sum, d.Cycles)
		}
	}

	for o := 0; o < 256; o++ {
		check(s.Base[o], 4)
		check(s.CB[o], 8)
		check(s.ED[o], 8)
		check(s.Index[o], 8)
	}

	// the index CB entries complete the prologue, which runs after two
	// prefix fetches
	prologue, _ := stepSum(s.IndexCBPrologue)
	for o := 0; o < 256; o++ {
		check(s.IndexCB[o], 8+prologue)
	}

	// service programs have no fetch overhead of their own
	check(s.NMI, 0)
	check(s.IM1, 0)
	check(s.IM2, 0)

	// mode 0 is completed by one of the restart tails
	im0, _ := stepSum(s.IM0)
	for _, d := range s.IM0Rst {
		check(d, im0)
	}
}

// the CPU executes steps from a fixed-size array. nothing may exceed it.
func TestStepCount(t *testing.T) {
	s := instructions.NewSet()

	check := func(d *instructions.Defn) {
		t.Helper()
		if d == nil {
			return
		}
		if len(d.Steps) > 10 {
			t.Errorf("%s: %d steps", d.Mnemonic, len(d.Steps))
		}
	}

	for o := 0; o < 256; o++ {
		check(s.Base[o])
		check(s.CB[o])
		check(s.ED[o])
		check(s.Index[o])
		check(s.IndexCB[o])
	}
	check(s.IndexCBPrologue)
	check(s.NMI)
	check(s.IM0)
	check(s.IM1)
	check(s.IM2)
	for _, d := range s.IM0Rst {
		check(d)
	}
}

func TestDocumentedCycles(t *testing.T) {
	s := instructions.NewSet()

	test.Equate(t, s.Base[0x00].Cycles, 4)   // NOP
	test.Equate(t, s.Base[0x41].Cycles, 4)   // LD B,C
	test.Equate(t, s.Base[0x06].Cycles, 7)   // LD B,n
	test.Equate(t, s.Base[0x36].Cycles, 10)  // LD (HL),n
	test.Equate(t, s.Base[0x34].Cycles, 11)  // INC (HL)
	test.Equate(t, s.Base[0x09].Cycles, 11)  // ADD HL,BC
	test.Equate(t, s.Base[0xc5].Cycles, 11)  // PUSH BC
	test.Equate(t, s.Base[0xc1].Cycles, 10)  // POP BC
	test.Equate(t, s.Base[0xcd].Cycles, 17)  // CALL nn
	test.Equate(t, s.Base[0xc9].Cycles, 10)  // RET
	test.Equate(t, s.Base[0xc7].Cycles, 11)  // RST 00H
	test.Equate(t, s.Base[0xe3].Cycles, 19)  // EX (SP),HL
	test.Equate(t, s.Base[0x18].Cycles, 12)  // JR e
	test.Equate(t, s.Base[0xdb].Cycles, 11)  // IN A,(n)
	test.Equate(t, s.Base[0xf9].Cycles, 6)   // LD SP,HL
	test.Equate(t, s.Base[0x32].Cycles, 13)  // LD (nn),A
	test.Equate(t, s.Base[0x22].Cycles, 16)  // LD (nn),HL

	test.Equate(t, s.Base[0x10].Cycles, 8)        // DJNZ untaken
	test.Equate(t, s.Base[0x10].CyclesBranch, 13) // DJNZ taken
	test.Equate(t, s.Base[0x20].Cycles, 7)        // JR NZ untaken
	test.Equate(t, s.Base[0x20].CyclesBranch, 12) // JR NZ taken
	test.Equate(t, s.Base[0xc0].Cycles, 5)        // RET NZ untaken
	test.Equate(t, s.Base[0xc0].CyclesBranch, 11) // RET NZ taken
	test.Equate(t, s.Base[0xc4].Cycles, 10)       // CALL NZ untaken
	test.Equate(t, s.Base[0xc4].CyclesBranch, 17) // CALL NZ taken

	test.Equate(t, s.CB[0x00].Cycles, 8)  // RLC B
	test.Equate(t, s.CB[0x06].Cycles, 15) // RLC (HL)
	test.Equate(t, s.CB[0x46].Cycles, 12) // BIT 0,(HL)
	test.Equate(t, s.CB[0xc6].Cycles, 15) // SET 0,(HL)

	test.Equate(t, s.ED[0x44].Cycles, 8)        // NEG
	test.Equate(t, s.ED[0x40].Cycles, 12)       // IN B,(C)
	test.Equate(t, s.ED[0x4a].Cycles, 15)       // ADC HL,BC
	test.Equate(t, s.ED[0x43].Cycles, 20)       // LD (nn),BC
	test.Equate(t, s.ED[0x45].Cycles, 14)       // RETN
	test.Equate(t, s.ED[0x57].Cycles, 9)        // LD A,I
	test.Equate(t, s.ED[0x67].Cycles, 18)       // RRD
	test.Equate(t, s.ED[0xa0].Cycles, 16)       // LDI
	test.Equate(t, s.ED[0xb0].Cycles, 16)       // LDIR terminal
	test.Equate(t, s.ED[0xb0].CyclesBranch, 21) // LDIR repeating
	test.Equate(t, s.ED[0xa2].Cycles, 16)       // INI
	test.Equate(t, s.ED[0xa3].Cycles, 16)       // OUTI

	test.Equate(t, s.Index[0x21].Cycles, 14)   // LD IXY,nn
	test.Equate(t, s.Index[0x46].Cycles, 19)   // LD B,(IXY+d)
	test.Equate(t, s.Index[0x70].Cycles, 19)   // LD (IXY+d),B
	test.Equate(t, s.Index[0x86].Cycles, 19)   // ADD A,(IXY+d)
	test.Equate(t, s.Index[0x34].Cycles, 23)   // INC (IXY+d)
	test.Equate(t, s.Index[0x36].Cycles, 19)   // LD (IXY+d),n
	test.Equate(t, s.Index[0xe3].Cycles, 23)   // EX (SP),IXY
	test.Equate(t, s.Index[0xe9].Cycles, 8)    // JP (IXY)
	test.Equate(t, s.Index[0x00].Cycles, 8)    // prefixed NOP

	test.Equate(t, s.IndexCB[0x46].Cycles, 20) // BIT 0,(IXY+d)
	test.Equate(t, s.IndexCB[0xc6].Cycles, 23) // SET 0,(IXY+d)
	test.Equate(t, s.IndexCB[0x06].Cycles, 23) // RLC (IXY+d)

	test.Equate(t, s.NMI.Cycles, 11)
	test.Equate(t, s.IM1.Cycles, 13)
	test.Equate(t, s.IM2.Cycles, 19)
}

func TestIndexMnemonics(t *testing.T) {
	s := instructions.NewSet()

	test.Equate(t, s.Index[0x29].Mnemonic, "ADD IXY,IXY")
	test.Equate(t, s.Index[0x26].Mnemonic, "LD IXYH,n")
	test.Equate(t, s.Index[0x2e].Mnemonic, "LD IXYL,n")
	test.Equate(t, s.Index[0x65].Mnemonic, "LD IXYH,IXYL")
	test.Equate(t, s.Index[0xe9].Mnemonic, "JP (IXY)")
	test.Equate(t, s.Index[0xe3].Mnemonic, "EX (SP),IXY")
	test.Equate(t, s.Index[0xf9].Mnemonic, "LD SP,IXY")

	// EX DE,HL is immune to the prefix
	test.Equate(t, s.Index[0xeb].Mnemonic, "EX DE,HL")

	// displacement forms
	test.Equate(t, s.Index[0x66].Mnemonic, "LD H,(IXY+d)")
	test.Equate(t, s.Index[0x6e].Mnemonic, "LD L,(IXY+d)")
	test.Equate(t, s.Index[0x74].Mnemonic, "LD (IXY+d),H")
	test.Equate(t, s.Index[0xbe].Mnemonic, "CP (IXY+d)")

	// tokens inside words are not rewritten
	test.Equate(t, s.Index[0x76].Mnemonic, "HALT")
	test.Equate(t, s.Index[0xcd].Mnemonic, "CALL nn")
}

// the displacement loads operate on the real H and L registers, not the
// index register halves. the register forms elsewhere in the index table use
// the virtual identifiers so that the selector substitutes IX or IY.
func TestIndexRegisterSubstitution(t *testing.T) {
	s := instructions.NewSet()

	// LD H,(IXY+d) stores to the real H
	steps := s.Index[0x66].Steps
	last := steps[len(steps)-1]
	test.Equate(t, last.Op == instructions.StoreData, true)
	test.Equate(t, last.R == registers.H, true)

	// LD (IXY+d),L writes the real L
	steps = s.Index[0x75].Steps
	test.Equate(t, steps[len(steps)-1].R == registers.L, true)

	// LD H,B away from memory goes through the virtual identifier
	steps = s.Index[0x60].Steps
	test.Equate(t, steps[0].R == registers.IdxH, true)

	// non-displacement entries share their step storage with the base table
	test.Equate(t, &s.Index[0x60].Steps[0] == &s.Base[0x60].Steps[0], true)

	// patched entries have their own
	test.Equate(t, &s.Index[0x66].Steps[0] == &s.Base[0x66].Steps[0], false)
}

func TestPrologueLookup(t *testing.T) {
	s := instructions.NewSet()

	d := s.Lookup(instructions.PrefixIndex, instructions.PrefixByteCB)
	test.Equate(t, d == s.IndexCBPrologue, true)

	// the base context never resolves a prefix byte
	test.Equate(t, s.Lookup(instructions.PrefixNone, instructions.PrefixByteCB) == nil, true)
	test.Equate(t, s.Lookup(instructions.PrefixNone, instructions.PrefixByteDD) == nil, true)

	// ED followed by CB is not a prefix chain. it resolves to the two-byte
	// NOP in the ED table
	d = s.Lookup(instructions.PrefixED, instructions.PrefixByteCB)
	test.Equate(t, d != nil, true)
	test.Equate(t, d.Mnemonic, "NOP*")
}
