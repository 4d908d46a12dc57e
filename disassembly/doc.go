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

// Package disassembly produces assembly listings of Z80 machine code. The
// disassembler is static: it walks memory from a starting address, decoding
// each instruction from the same tables the CPU executes from and moving on
// by the decoded length. Code reached by jumping into the middle of another
// instruction, and code written at run time, will not be represented.
//
// For quick disassemblies of a program file the FromLoader() function can be
// used. Debuggers will find it more useful to call Decode() against the
// memory of a live machine, which follows self modifying code correctly.
//
// Every byte sequence decodes to something. The Z80 has no illegal opcodes
// as such, only undocumented ones, which are disassembled with the same
// confidence as the documented set. Mnemonics for instructions with no
// official spelling follow common usage: NOP* for the do-nothing ED codes
// and the trailing register form, like "RES 3,(IX+$05),B", for the DDCB
// store variants.
package disassembly
