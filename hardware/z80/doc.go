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

// Package z80 emulates the Zilog Z80 to the T-state level. The CPU advances
// with the Run() function, which executes an exact number of T-states, or
// with StepInstruction(), which runs to the next instruction boundary. An
// instruction suspended in the middle of its execution by the end of a Run()
// budget resumes where it left off on the next call, and the suspension
// survives the serialisation offered by the Snapshot() and Serialise()
// mechanisms.
//
// Instruction behaviour lives in the instructions sub-package as pure data.
// Each definition is a short program of micro operations and the CPU is the
// machine that runs those programs, one bus transaction or internal period
// at a time. Every memory and IO transaction is visible on the Signals
// field as it happens, with the control signals asserted and released in
// hardware order.
//
// Interrupts are accepted at instruction boundaries. the maskable line is
// level sensitive and honours the EI delay, the non-maskable line is edge
// triggered. All three interrupt modes, the HALT state and the R refresh
// counter behave as they do on the NMOS part, including the undocumented
// flag effects catalogued by the usual references.
package z80
