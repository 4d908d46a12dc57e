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

import "strings"

// Flags is the contents of the F register. Unlike the other registers the
// individual bits have meaning, including the undocumented bits 5 and 3
// (FlagY and FlagX) which shadow the corresponding bits of whatever value
// last passed through the flag logic.
type Flags uint8

// Flag bits in the order they appear in the F register.
const (
	FlagC Flags = 0x01 // carry
	FlagN Flags = 0x02 // add/subtract
	FlagP Flags = 0x04 // parity/overflow
	FlagX Flags = 0x08 // undocumented copy of result bit 3
	FlagH Flags = 0x10 // half carry
	FlagY Flags = 0x20 // undocumented copy of result bit 5
	FlagZ Flags = 0x40 // zero
	FlagS Flags = 0x80 // sign
)

// Has returns true if every flag in mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// String returns the flags in the pattern "SZYHXPNC". An uppercase letter
// means the flag is set, lowercase means it is not. Y and X are the
// undocumented bits 5 and 3.
func (f Flags) String() string {
	s := strings.Builder{}
	for _, b := range []struct {
		mask Flags
		r    rune
	}{
		{FlagS, 's'}, {FlagZ, 'z'}, {FlagY, 'y'}, {FlagH, 'h'},
		{FlagX, 'x'}, {FlagP, 'p'}, {FlagN, 'n'}, {FlagC, 'c'},
	} {
		if f&b.mask == b.mask {
			s.WriteRune(b.r - 0x20)
		} else {
			s.WriteRune(b.r)
		}
	}
	return s.String()
}
