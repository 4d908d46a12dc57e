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

import "fmt"

// Pair is a 16-bit register composed of two separately addressable 8-bit
// halves.
type Pair struct {
	Hi uint8
	Lo uint8
}

func (p Pair) String() string {
	return fmt.Sprintf("%02x%02x", p.Hi, p.Lo)
}

// Word returns the pair as a single 16-bit value.
func (p Pair) Word() uint16 {
	return uint16(p.Hi)<<8 | uint16(p.Lo)
}

// SetWord splits a 16-bit value across the two halves of the pair.
func (p *Pair) SetWord(v uint16) {
	p.Hi = uint8(v >> 8)
	p.Lo = uint8(v)
}

// Inc adds one to the pair. wraps at 0xffff.
func (p *Pair) Inc() {
	p.SetWord(p.Word() + 1)
}

// Dec subtracts one from the pair. wraps at 0x0000.
func (p *Pair) Dec() {
	p.SetWord(p.Word() - 1)
}
