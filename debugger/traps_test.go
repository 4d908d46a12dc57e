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

func (trm *mockTerm) testTraps() {
	trm.sndInput("LIST TRAPS")
	trm.cmpOutput("no traps")

	trm.sndInput("TRAP HL")
	trm.cmpOutput("")

	trm.sndInput("LIST TRAPS")
	trm.cmpOutput(" 0: HL")

	// duplicate traps are reported but the rest of the command still runs
	trm.sndInput("TRAP HL")
	trm.cmpOutput("trap already exists (HL)")

	// several targets can be trapped with one command
	trm.sndInput("TRAP SP IFF1")
	trm.cmpOutput("")

	trm.sndInput("LIST TRAPS")
	trm.cmpOutput(" 2: IFF1")

	trm.sndInput("TRAP XYZ")
	trm.cmpOutput("invalid target (XYZ)")

	trm.sndInput("DROP TRAP 0")
	trm.cmpOutput("trap #0 dropped")

	trm.sndInput("LIST TRAPS")
	trm.cmpOutput(" 1: IFF1")

	trm.sndInput("CLEAR TRAPS")
	trm.cmpOutput("traps cleared")

	trm.sndInput("LIST TRAPS")
	trm.cmpOutput("no traps")
}
