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

package execution

// The Z80 has some quirks of the silicon that can catch people out
type Quirk string

const (
	NoQuirk Quirk = ""

	// LD A,I and LD A,R copy IFF2 to the parity flag. when a maskable
	// interrupt is accepted at the boundary that ends the instruction the
	// flag has already been overwritten by the acceptance and reads false
	IFF2ReadQuirk Quirk = "interrupt during IFF2 read"
)
