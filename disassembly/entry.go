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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherz80/hardware/z80/instructions"
)

// Entry is a single disassembled instruction.
type Entry struct {
	// the disassembly the entry belongs to. nil for entries returned by an
	// ad hoc Decode()
	dsm *Disassembly

	// the address of the first byte of the instruction, prefix bytes
	// included
	Addr uint16

	// the instruction definition. nil when the bytes at the address do not
	// resolve to an instruction, which only happens when an unbroken run of
	// index prefixes exceeds the decoder's patience
	Defn *instructions.Defn

	// the raw bytes of the instruction. prefixes and operands included
	Raw []uint8

	// string representations. use GetField() for white space padding
	// suitable for columnation
	Address  string
	Bytecode string
	Operator string
	Operand  string
}

// finalise builds the string representations that depend on the raw bytes.
func (e *Entry) finalise() {
	var b strings.Builder
	for i, v := range e.Raw {
		if i > 0 {
			b.WriteRune(' ')
		}
		fmt.Fprintf(&b, "%02x", v)
	}
	e.Bytecode = b.String()
}

// Cycles returns the documented cycle count for the entry. Instructions with
// two documented counts, the conditionals and the repeating block
// instructions, are reported in the form "7/12".
func (e *Entry) Cycles() string {
	if e.Defn == nil {
		return "?"
	}
	if e.Defn.Conditional() {
		return fmt.Sprintf("%d/%d", e.Defn.Cycles, e.Defn.CyclesBranch)
	}
	return fmt.Sprintf("%d", e.Defn.Cycles)
}

// String returns a very basic representation of an Entry. Provided for
// convenience. Probably not of any use except for the simplest of tools.
//
// See StringColumnated() for a fancier option.
func (e *Entry) String() string {
	if e.Operand == "" {
		return fmt.Sprintf("%s %s", e.Address, e.Operator)
	}
	return fmt.Sprintf("%s %s %s", e.Address, e.Operator, e.Operand)
}

// ColumnAttr controls what is included in the string returned by
// Entry.StringColumnated().
type ColumnAttr struct {
	ByteCode bool
	Cycles   bool
}

// StringColumnated returns a columnated string representation of the Entry.
// Trailing newline is not included.
func (e *Entry) StringColumnated(attr ColumnAttr) string {
	if e == nil {
		return ""
	}

	b := &strings.Builder{}

	if attr.ByteCode {
		b.WriteString(e.GetField(FldBytecode))
		b.WriteString(" ")
	}

	b.WriteString(e.GetField(FldAddress))
	b.WriteString(" ")
	b.WriteString(e.GetField(FldOperator))
	b.WriteString(" ")
	b.WriteString(e.GetField(FldOperand))

	if attr.Cycles {
		b.WriteString(" ")
		b.WriteString(e.GetField(FldCycles))
	}

	return strings.TrimRight(b.String(), " ")
}
