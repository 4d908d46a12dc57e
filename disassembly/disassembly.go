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

	"github.com/jetsetilly/gopherz80/hardware/bus"
	"github.com/jetsetilly/gopherz80/hardware/memory"
	"github.com/jetsetilly/gopherz80/hardware/z80/instructions"
	"github.com/jetsetilly/gopherz80/romloader"
)

// Disassembly represents the disassembled contents of a block of memory.
type Disassembly struct {
	// entries in address order, one per decoded instruction
	Entries []*Entry

	// formatting information for the entries found during the decode pass
	fields fields
}

// FromLoader loads a program image and returns its disassembly. Useful for
// one-shot disassemblies, like the gopherz80 "disasm" mode.
func FromLoader(ld romloader.Loader) (*Disassembly, error) {
	if !ld.HasLoaded() {
		if err := ld.Load(); err != nil {
			return nil, fmt.Errorf("disassembly: %w", err)
		}
	}

	mem := memory.NewMemory()
	if err := mem.LoadImage(ld.Origin, ld.Data); err != nil {
		return nil, fmt.Errorf("disassembly: %w", err)
	}

	return FromMemory(mem, ld.Origin, len(ld.Data)), nil
}

// FromMemory disassembles length bytes of an existing memory implementation,
// starting at the origin address.
func FromMemory(mem bus.Memory, origin uint16, length int) *Disassembly {
	dsm := &Disassembly{}
	set := instructions.NewSet()

	// the cursor is wider than an address so the top of memory ends the loop
	// rather than wrapping it
	end := min(int(origin)+length, memory.Size)
	for a := int(origin); a < end; {
		e := Decode(set, mem, uint16(a))
		e.dsm = dsm
		dsm.Entries = append(dsm.Entries, e)
		dsm.fields.update(e)
		a += len(e.Raw)
	}

	return dsm
}
