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

import (
	"errors"
	"os"

	"github.com/jetsetilly/gopherz80/debugger/terminal/commandline"
)

// Input defines the operations required by an interface that allows input.
type Input interface {
	// TermRead returns the next line of input, when completed.
	//
	// If possible the TermRead() implementation should check the ReadEvents
	// channels for activity whilst waiting for input. Not all implementations
	// will be able to do so because of the context in which they operate.
	TermRead(prompt Prompt, events *ReadEvents) (string, error)

	// TermReadCheck() returns true if there is input to be read. Not all
	// implementations will be able return anything meaningful in which case a
	// return value of false is fine.
	//
	// Note that TermReadCheck() does not check for events like TermRead().
	TermReadCheck() bool

	// IsRealTerminal returns true if the terminal is connected to a real
	// terminal on the host machine. Implementations that work with piped
	// input or output should return false.
	IsRealTerminal() bool
}

// UserInterrupt is returned by TermRead() if an interrupt is caught whilst
// waiting for input. Not all terminal implementations will return this error
// because of the context in which they operate and in those instances signals
// should be caught by the Signal channel found in the ReadEvents type.
var UserInterrupt = errors.New("user interrupt")

// UserQuit is returned by a ReadEvents.SignalHandler if the signal should
// cause the debugger to quit without confirmation.
var UserQuit = errors.New("user quit")

// ReadEvents *must* be monitored during a TermRead().
type ReadEvents struct {
	// interrupt signals from the operating system
	Signal        chan os.Signal
	SignalHandler func(sig os.Signal) error
}

// Output defines the operations required by an interface that allows output.
type Output interface {
	TermPrintLine(Style, string)
}

// Terminal defines the operations required by the debugger's command line interface.
type Terminal interface {
	// Terminal implementations also implement the Input and Output interfaces.
	Input
	Output

	// Initialise the terminal. not all terminal implementations will need to
	// do anything.
	Initialise() error

	// Restore the terminal to its original state, if possible. for example,
	// we could use this to make sure the terminal is returned to canonical
	// mode. not all terminal implementations will need to do anything.
	CleanUp()

	// Register a tab completion implementation to use with the terminal. Not
	// all implementations need to respond meaningfully to this.
	RegisterTabCompletion(*commandline.TabCompletion)

	// Silence all input and output except error messages. In other words,
	// TermPrintLine() should display error messages even if silenced is true.
	Silence(silenced bool)
}
