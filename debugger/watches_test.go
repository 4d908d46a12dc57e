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

func (trm *mockTerm) testWatches() {
	trm.sndInput("LIST WATCHES")
	trm.cmpOutput("no watches")

	// the default is to watch for both reads and writes
	trm.sndInput("WATCH $2000")
	trm.cmpOutput("")

	trm.sndInput("LIST WATCHES")
	trm.cmpOutput(" 0: 0x2000 read/write")

	trm.sndInput("WATCH $2000")
	trm.cmpOutput("already being watched (0x2000 read/write)")

	// the event type distinguishes watches on the same address
	trm.sndInput("WATCH READ $2000")
	trm.cmpOutput("")

	trm.sndInput("LIST WATCHES")
	trm.cmpOutput(" 1: 0x2000 read")

	// port watches monitor the IO space rather than memory
	trm.sndInput("WATCH WRITE PORT $fe")
	trm.cmpOutput("")

	trm.sndInput("LIST WATCHES")
	trm.cmpOutput(" 2: port 0xfe write")

	// watching for a specific value
	trm.sndInput("WATCH WRITE $3000 $ff")
	trm.cmpOutput("")

	trm.sndInput("LIST WATCHES")
	trm.cmpOutput(" 3: 0x3000 write (value=0xff)")

	// the command template requires an address
	trm.sndInput("WATCH")
	trm.cmpOutput("ADDRESS required")

	trm.sndInput("DROP WATCH 0")
	trm.cmpOutput("watch #0 dropped")

	trm.sndInput("LIST WATCHES")
	trm.cmpOutput(" 2: 0x3000 write (value=0xff)")

	trm.sndInput("CLEAR WATCHES")
	trm.cmpOutput("watches cleared")

	trm.sndInput("LIST WATCHES")
	trm.cmpOutput("no watches")
}
