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

// the bytes that shift decoding into another table.
const (
	PrefixByteCB = 0xcb
	PrefixByteDD = 0xdd
	PrefixByteED = 0xed
	PrefixByteFD = 0xfd
)

// Set is the complete collection of instruction definitions. The five tables
// correspond to the five decoding contexts. The remaining entries are the
// programs the CPU runs when it accepts an interrupt, which have no encoding
// of their own.
//
// A Set is immutable once built. The CPU is the only intended consumer but
// the disassembler reads the tables too.
type Set struct {
	Base    [256]*Defn
	CB      [256]*Defn
	ED      [256]*Defn
	Index   [256]*Defn
	IndexCB [256]*Defn

	// the program that carries a DDCB/FDCB sequence from the CB byte to the
	// point where the final byte has been read and decoded
	IndexCBPrologue *Defn

	// interrupt service programs. IM0 ends in a dispatch step that selects
	// one of the IM0Rst tails from the byte placed on the bus
	NMI *Defn
	IM0 *Defn
	IM1 *Defn
	IM2 *Defn

	IM0Rst [8]*Defn
}

// NewSet is the preferred method of initialisation for the Set type. Table
// construction is deterministic and involves no IO, so a failure to build is
// impossible and the function returns no error.
func NewSet() *Set {
	s := &Set{}

	s.Base = newBaseTable()
	s.CB = newCBTable()
	s.ED = newEDTable()
	s.Index = newIndexTable(&s.Base)
	s.IndexCB = newIndexCBTable()
	s.IndexCBPrologue = newIndexCBPrologue()

	// the non-maskable sequence performs a full opcode fetch, discards the
	// byte and restarts at 0066h
	s.NMI = &Defn{
		Mnemonic: "NMI",
		Cycles:   11,
		Steps: []Step{
			nmiFetch(),
			push(rPCH, 3),
			push(rPCL, 3),
			rst(0x0066),
		},
	}

	// mode 0 acknowledges the interrupt and executes whatever the device
	// placed on the bus. the dispatch step selects the tail
	s.IM0 = &Defn{
		Mnemonic: "INT (IM 0)",
		Cycles:   13,
		Steps: []Step{
			intAck(),
			{Op: Im0Dispatch},
		},
	}

	for y := 0; y < 8; y++ {
		s.IM0Rst[y] = &Defn{
			OpCode:   uint8(0xc7 + y*8),
			Mnemonic: fmt.Sprintf("INT (IM 0) RST %02XH", y*8),
			Cycles:   13,
			Steps: []Step{
				push(rPCH, 3),
				push(rPCL, 3),
				rst(y * 8),
			},
		}
	}

	// mode 1 ignores the acknowledged byte and restarts at 0038h
	s.IM1 = &Defn{
		Mnemonic: "INT (IM 1)",
		Cycles:   13,
		Steps: []Step{
			intAck(),
			push(rPCH, 3),
			push(rPCL, 3),
			rst(0x0038),
		},
	}

	// mode 2 pairs the acknowledged byte with the I register and fetches the
	// handler address from the resulting table entry. PC doubles as the
	// table pointer between the pushes and the final assignment, which also
	// leaves WZ holding the handler address
	s.IM2 = &Defn{
		Mnemonic: "INT (IM 2)",
		Cycles:   19,
		Steps: []Step{
			intAck(),
			push(rPCH, 3),
			push(rPCL, 3),
			ld(rPCH, rI),
			store(rPCL),
			memReadInc(rpPC, 3),
			store(rZ),
			memRead(rpPC, 3),
			store(rW),
			ld16(rpPC),
		},
	}

	return s
}

// Lookup returns the definition for an opcode in the given decoding context.
// A nil return means the byte is a prefix in that context, or the context
// was reached through an inconsistent prefix sequence. the CPU treats a nil
// from a non-prefix byte as an internal error.
func (s *Set) Lookup(prefix Prefix, opcode uint8) *Defn {
	switch prefix {
	case PrefixNone:
		return s.Base[opcode]
	case PrefixCB:
		return s.CB[opcode]
	case PrefixED:
		return s.ED[opcode]
	case PrefixIndex:
		if opcode == PrefixByteCB {
			return s.IndexCBPrologue
		}
		return s.Index[opcode]
	case PrefixIndexCB:
		return s.IndexCB[opcode]
	}
	return nil
}
