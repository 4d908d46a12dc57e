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

// Package debugger implements a terminal debugger for the emulated machine.
// Features include:
//
//	- program disassembly
//	- memory inspection and poking
//	- instruction and T-state stepping
//	- breakpoints, traps and watches
//	- tracing of bus activity
//	- control of the INT and NMI lines
//	- machine state save and restore, in memory and on disk
//
// Some of these features come courtesy of other packages, described
// elsewhere, but all are exposed through the debugger package.
//
// Initialisation of the debugger is done with the New() function.
//
//	dbg, _ := debugger.New(machine, term)
//
// The machine argument is an instance of hardware.Machine with a program
// already attached. The term argument can be an instance of any type that
// satisfies the Terminal interface, defined in the terminal package. The
// colorterm and plainterm sub-packages provide good reference
// implementations.
//
// Once initialised, the debugger is started with the Start() function, which
// returns when the user quits.
//
// Because watches and traces observe the control bus at T-state resolution,
// the emulation can be halted in the middle of an instruction. The prompt
// indicates this state and the TICK command can then be used to walk the
// remaining T-states one at a time.
package debugger
