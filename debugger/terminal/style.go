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

package terminal

// Style is used by the Output interface to decorate the output in some way.
// How the decoration manifests itself is dependent on the implementation.
type Style int

// List of terminal styles.
const (
	// input normalised by the commandline system, echoed for the user's
	// benefit. terminal implementations that already echo input as it is
	// typed can ignore lines printed with this style.
	StyleEcho Style = iota

	// help text
	StyleHelp

	// terminal's reaction to a command
	StyleFeedback

	// like StyleFeedback but for output that happens while the emulation is
	// running and so is not in response to a command
	StyleFeedbackNonInteractive

	// disassembly output at an instruction boundary
	StyleCPUStep

	// disassembly output mid-instruction
	StyleTStateStep

	// information about the machine (registers, memory, tstate counts)
	StyleInstrument

	// information from the logging system
	StyleLog

	// error messages
	StyleError
)
