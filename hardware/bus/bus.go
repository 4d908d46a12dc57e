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

package bus

// Memory is an address space of 64k bytes. The CPU uses it for opcode
// fetches, operand fetches and data transfers alike, unless a separate
// opcode space has been attached.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// IO is the port address space reached through the IN and OUT instruction
// groups. The full 16-bit value placed on the address bus is passed on;
// implementations that decode only the low byte can mask it themselves.
type IO interface {
	Read(port uint16) uint8
	Write(port uint16, data uint8)
}
