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

// Step is a single micro-operation. Which of the R, R2, P and V fields are
// meaningful depends on the Op; the unused fields are zero and ignored.
// Cycles is the number of T-states consumed the moment the step executes. A
// zero-cycle step piggybacks on the cycles of the step before it.
type Step struct {
	Op     Op
	R      registers.Reg8
	R2     registers.Reg8
	P      registers.Reg16
	V      int
	Cycles int
}

func (s Step) String() string {
	return fmt.Sprintf("%v[r=%v r2=%v p=%v v=%d +%d]", s.Op, s.R, s.R2, s.P, s.V, s.Cycles)
}

// Prefix identifies the decode context an instruction belongs to.
type Prefix int

// The Prefix values. PrefixIndex covers both DD and FD; PrefixIndexCB covers
// both DDCB and FDCB. Which index register applies is not a property of the
// instruction but of the register file's Selector.
const (
	PrefixNone Prefix = iota
	PrefixCB
	PrefixED
	PrefixIndex
	PrefixIndexCB
)

func (p Prefix) String() string {
	switch p {
	case PrefixNone:
		return ""
	case PrefixCB:
		return "CB"
	case PrefixED:
		return "ED"
	case PrefixIndex:
		return "DD/FD"
	case PrefixIndexCB:
		return "DDCB/FDCB"
	}
	return fmt.Sprintf("Prefix(%d)", int(p))
}

// Operand describes the bytes that follow an opcode and how the mnemonic's
// operand token should be rendered.
type Operand int

// The Operand values.
const (
	OperandNone     Operand = iota
	OperandImm8             // one byte, mnemonic token "n"
	OperandImm16            // two bytes little-endian, mnemonic token "nn"
	OperandRel8             // one byte relative displacement, mnemonic token "e"
	OperandDisp             // one byte index displacement, mnemonic token "d"
	OperandDispImm8         // index displacement followed by an immediate, tokens "d" and "n"
)

// ByteCount returns the number of operand bytes the encoding carries.
func (o Operand) ByteCount() int {
	switch o {
	case OperandImm8, OperandRel8, OperandDisp:
		return 1
	case OperandImm16, OperandDispImm8:
		return 2
	}
	return 0
}

// Defn describes one instruction. The Steps slice is the implementation; the
// remaining fields are bookkeeping for the decoder, the disassembler and the
// cycle validity check.
type Defn struct {
	OpCode   uint8
	Prefix   Prefix
	Mnemonic string
	Operand  Operand

	// Bytes is the total instruction length, prefix and operand bytes
	// included
	Bytes int

	// Cycles is the documented T-state count for the whole instruction.
	// CyclesBranch is the count when a conditional's condition holds or a
	// block instruction repeats; it is zero for everything else
	Cycles       int
	CyclesBranch int

	Steps []Step
}

// Conditional returns true if the instruction has two documented cycle
// counts.
func (d Defn) Conditional() bool {
	return d.CyclesBranch != 0
}

func (d Defn) String() string {
	p := d.Prefix.String()
	if p != "" {
		p += " "
	}
	if d.Conditional() {
		return fmt.Sprintf("%s%02x %s +%d/%d", p, d.OpCode, d.Mnemonic, d.Cycles, d.CyclesBranch)
	}
	return fmt.Sprintf("%s%02x %s +%d", p, d.OpCode, d.Mnemonic, d.Cycles)
}
