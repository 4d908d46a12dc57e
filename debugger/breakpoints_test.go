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

package debugger_test

func (trm *mockTerm) testBreakpoints() {
	trm.sndInput("LIST BREAKS")
	trm.cmpOutput("no breakpoints")

	// a bare address breaks on the PC
	trm.sndInput("BREAK $1000")
	trm.cmpOutput("")

	trm.sndInput("LIST BREAKS")
	trm.cmpOutput(" 0: PC->0x1000")

	trm.sndInput("BREAK $1000")
	trm.cmpOutput("breakpoint already exists (PC->0x1000)")

	// breaking on a target other than the PC
	trm.sndInput("BREAK A 255")
	trm.cmpOutput("")

	trm.sndInput("LIST BREAKS")
	trm.cmpOutput(" 1: A->0xff")

	// conditions separated by ampersands must all match at once
	trm.sndInput("BREAK A 16 & TSTATES 100")
	trm.cmpOutput("")

	trm.sndInput("LIST BREAKS")
	trm.cmpOutput(" 2: A->0x10 & TSTATES->100")

	// the same conditions in a different order are the same breakpoint. the
	// existing breakpoint is reported, in its original order
	trm.sndInput("BREAK TSTATES 100 & A 16")
	trm.cmpOutput("breakpoint already exists (A->0x10 & TSTATES->100)")

	// a target with nothing to compare against is not a breakpoint
	trm.sndInput("BREAK SP")
	trm.cmpOutput("need a value (int) to break on (SP)")

	trm.sndInput("DROP BREAK 0")
	trm.cmpOutput("breakpoint #0 dropped")

	trm.sndInput("LIST BREAKS")
	trm.cmpOutput(" 1: A->0x10 & TSTATES->100")

	trm.sndInput("DROP BREAK 5")
	trm.cmpOutput("breakpoint #5 is not defined")

	trm.sndInput("CLEAR BREAKS")
	trm.cmpOutput("breakpoints cleared")

	trm.sndInput("LIST BREAKS")
	trm.cmpOutput("no breakpoints")
}
