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

// Package instructions defines every instruction in the Z80 instruction set,
// documented and undocumented, as pure data. A Defn describes one opcode: its
// mnemonic, operand shape, documented timing, and the ordered list of Steps
// that implement it. A Step is a tagged micro-operation; the cpu package
// interprets the tags in a single dispatch switch. There is deliberately no
// executable behaviour in this package - definitions can be compared,
// serialised and inspected without touching an emulated machine.
//
// Instructions live in five tables, one for each prefix context the decoder
// can be in: unprefixed, CB, ED, DD/FD and DDCB/FDCB. The DD and FD contexts
// share a single table; which of IX and IY an entry touches is resolved by
// the register file's Selector, exactly as the silicon resolves it. The
// tables are built once by NewSet and never written to afterwards.
//
// Each Step carries its own T-state cost. The cost of a micro-operation is
// not implied by its tag: the same memory read tag costs three T-states in
// most positions and four in the read-modify-write instructions, and the
// table is the authority in every case. An instruction's Cycles field is the
// documented total for the whole instruction, including all of its fetch and
// prefix cycles, which is what makes the timing testable against the Zilog
// documentation.
package instructions
