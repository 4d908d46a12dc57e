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

// Package alu provides the precomputed flag tables used by the instruction
// dispatch. Computing the F register after an 8-bit operation is by far the
// hottest path in the emulation so rather than deriving the five or six
// affected flags bit by bit on every instruction, the result of every
// possible operation is tabulated once when the package loads.
//
// The four large tables cover the binary arithmetic group and are indexed by
// (accumulator<<8)|result. The carry-in variants are separate tables rather
// than a third index dimension. The small tables cover the unary groups:
// plain sign/zero, sign/zero/parity, the BIT instruction's peculiar zero and
// parity doubling, and the INC and DEC groups which preserve carry.
//
// All tables include the undocumented bits 5 and 3 and are bit-for-bit
// compatible with the behaviour described in Sean Young's "The Undocumented
// Z80 Documented". They must never be written to after initialisation.
package alu
