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

import "fmt"

type widths struct {
	bytecode int
	address  int
	operator int
	operand  int
	cycles   int
}

type fields struct {
	widths widths
}

// update width information with the fields of a new entry.
func (fld *fields) update(e *Entry) {
	fld.widths.bytecode = max(fld.widths.bytecode, len(e.Bytecode))
	fld.widths.address = max(fld.widths.address, len(e.Address))
	fld.widths.operator = max(fld.widths.operator, len(e.Operator))
	fld.widths.operand = max(fld.widths.operand, len(e.Operand))
	fld.widths.cycles = max(fld.widths.cycles, len(e.Cycles()))
}

// Field identifies which part of the disassembly entry is of interest.
type Field int

// List of valid fields.
const (
	FldBytecode Field = iota
	FldAddress
	FldOperator
	FldOperand
	FldCycles
)

// GetField returns the requested field of the entry, padded to the widest
// example of that field in the disassembly. Entries from an ad hoc Decode()
// belong to no disassembly and are returned without padding.
func (e *Entry) GetField(field Field) string {
	var s string
	var w int

	switch field {
	case FldBytecode:
		s = e.Bytecode
		if e.dsm != nil {
			w = e.dsm.fields.widths.bytecode
		}
	case FldAddress:
		s = e.Address
		if e.dsm != nil {
			w = e.dsm.fields.widths.address
		}
	case FldOperator:
		s = e.Operator
		if e.dsm != nil {
			w = e.dsm.fields.widths.operator
		}
	case FldOperand:
		s = e.Operand
		if e.dsm != nil {
			w = e.dsm.fields.widths.operand
		}
	case FldCycles:
		s = e.Cycles()
		if e.dsm != nil {
			w = e.dsm.fields.widths.cycles
		}
	}

	return fmt.Sprintf("%-*s", w, s)
}
