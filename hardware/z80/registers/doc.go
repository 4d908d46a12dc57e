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

// Package registers implements the Z80 register file. Registers are stored as
// 16-bit pairs, the way the silicon groups them, with both halves of each pair
// directly addressable. The file includes the programmer-visible set (AF, BC,
// DE, HL, IX, IY, SP, PC), the shadow set reachable through EX AF,AF' and EXX,
// the interrupt vector and memory refresh bytes (I and R), and the internal
// address latch WZ which never appears in documentation but which leaks into
// the undocumented flag bits of several instructions.
//
// Instruction descriptors refer to registers by the Reg8 and Reg16
// identifiers defined here. Most identifiers name a fixed register. The three
// virtual identifiers - IdxH, IdxL and IdxHL - resolve through the file's
// Selector, which records which of HL, IX or IY the current instruction
// prefix has nominated. An instruction sequence that would address H in an
// unprefixed context addresses IXH after a DD prefix without the descriptor
// changing, which is how the hardware itself implements the index registers.
package registers
