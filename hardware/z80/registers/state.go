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

package registers

import (
	"fmt"

	"github.com/jetsetilly/gopherz80/state"
)

// Save appends every register to the snapshot, shadow set and internal
// latches included.
func (f *File) Save(s *state.State) {
	s.Write16(f.AF.Word())
	s.Write16(f.BC.Word())
	s.Write16(f.DE.Word())
	s.Write16(f.HL.Word())
	s.Write16(f.AF2.Word())
	s.Write16(f.BC2.Word())
	s.Write16(f.DE2.Word())
	s.Write16(f.HL2.Word())
	s.Write16(f.IX.Word())
	s.Write16(f.IY.Word())
	s.Write16(f.SP.Word())
	s.Write16(f.PC.Word())
	s.Write16(f.WZ.Word())
	s.Write8(f.I)
	s.Write8(f.R)
	s.Write8(uint8(f.Selector))
}

// Load restores every register from the snapshot.
func (f *File) Load(s *state.State) error {
	f.AF.SetWord(s.Read16())
	f.BC.SetWord(s.Read16())
	f.DE.SetWord(s.Read16())
	f.HL.SetWord(s.Read16())
	f.AF2.SetWord(s.Read16())
	f.BC2.SetWord(s.Read16())
	f.DE2.SetWord(s.Read16())
	f.HL2.SetWord(s.Read16())
	f.IX.SetWord(s.Read16())
	f.IY.SetWord(s.Read16())
	f.SP.SetWord(s.Read16())
	f.PC.SetWord(s.Read16())
	f.WZ.SetWord(s.Read16())
	f.I = s.Read8()
	f.R = s.Read8()

	sel := Selector(s.Read8())
	switch sel {
	case SelHL, SelIX, SelIY:
		f.Selector = sel
	default:
		return fmt.Errorf("registers: bad index selector in snapshot (%d)", sel)
	}

	return s.Err()
}
