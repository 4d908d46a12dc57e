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

package debugger

import (
	"errors"
	"io"
	"strings"

	"github.com/jetsetilly/gopherz80/debugger/terminal"
	"github.com/jetsetilly/gopherz80/hardware"
)

// errStepHalt is returned by the T-state callback when a halt condition
// matches in the middle of an instruction. it never escapes the step
// function.
var errStepHalt = errors.New("step halt")

// the number of passes around the input loop between polls of the event
// channels while the emulation is running freely. polling costs enough that
// doing it every T-state would dominate the loop.
const inputCtDelay = 50

func (dbg *Debugger) inputLoop(inputter terminal.Terminal) error {
	var inputCt int

	// the function to call after every T-state of the emulation. halt
	// conditions are checked at T-state resolution so a watch or a trap can
	// stop the emulation in the middle of an instruction.
	tstateStep := func() error {
		dbg.halting.check()

		if trace := dbg.traces.check(); trace != "" {
			for _, l := range strings.Split(trace, "\n") {
				dbg.printLine(terminal.StyleInstrument, " <trace> %s", l)
			}
		}

		if dbg.halting.halt {
			return errStepHalt
		}
		return nil
	}

	for dbg.running {
		var checkTerm bool

		if dbg.runUntilHalt {
			inputCt++
			if inputCt%inputCtDelay == 0 {
				inputCt = 0

				var err error
				checkTerm, err = dbg.checkEvents(inputter)
				if err != nil {
					return err
				}

				// checkEvents() may have cleared the running flag
				if !dbg.running {
					break // for loop
				}
			}
		}

		// the emulation halts when a halt condition has matched, when the
		// previous step ended in error, on user demand, or when the step
		// just gone was a single one
		haltEmulation := dbg.halting.halt || dbg.lastStepError ||
			dbg.haltImmediately || !dbg.runUntilHalt

		dbg.lastStepError = false

		if haltEmulation || checkTerm {
			if haltEmulation {
				// breakpoints planted by RUN TO expire on any halt
				dbg.halting.volatileBreakpoints.clear()

				if dbg.commandOnHalt != "" && (dbg.halting.halt || dbg.haltImmediately) {
					if err := dbg.parseInput(dbg.commandOnHalt); err != nil {
						dbg.printLine(terminal.StyleError, "%s", err)
					}
				}

				dbg.halting.reset()
				dbg.runUntilHalt = false
				dbg.haltImmediately = false
				dbg.continueEmulation = false
			}

			input, err := inputter.TermRead(dbg.buildPrompt(), dbg.events)
			if err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, terminal.UserQuit) {
					// the end of piped input means there is nothing left for
					// the debugger to do
					dbg.running = false
					continue // for loop
				}
				if errors.Is(err, terminal.UserInterrupt) {
					dbg.handleInterrupt(inputter)
					continue // for loop
				}
				return err
			}

			input = strings.TrimSpace(input)
			if input != "" {
				if err := dbg.parseInput(input); err != nil {
					dbg.printLine(terminal.StyleError, "%s", err)
					continue // for loop
				}
			} else if !checkTerm {
				// an empty line repeats the step just gone
				dbg.continueEmulation = true
			}

			// if the emulation was paused only to check the terminal then it
			// should continue as before
			if checkTerm {
				dbg.continueEmulation = true
				dbg.runUntilHalt = true
			}
		}

		if dbg.continueEmulation {
			if err := dbg.step(tstateStep); err != nil {
				return err
			}
		}
	}

	return nil
}

// step the emulation by the current quantum. errors from the machine are
// reported to the user and the emulation halted, rather than returned.
func (dbg *Debugger) step(tstateStep func() error) error {
	var stepErr error

	switch dbg.quantum {
	case QuantumInstruction:
		stepErr = dbg.m.Step(tstateStep)
	case QuantumTState:
		stepErr = dbg.m.Tick()
		if stepErr == nil {
			stepErr = tstateStep()
		}
	default:
		return errors.New("unknown quantum")
	}

	if stepErr != nil {
		// a halt condition in the middle of an instruction ends the step
		// early but is not an error. the halting coordinator has the details
		if errors.Is(stepErr, errStepHalt) {
			return nil
		}

		if errors.Is(stepErr, hardware.ProgramEnded) {
			dbg.printLine(terminal.StyleFeedback, "%s", stepErr)
			dbg.runUntilHalt = false
			return nil
		}

		dbg.lastStepError = true
		dbg.printLine(terminal.StyleError, "%s", stepErr)
		return nil
	}

	// onstep commands run when the emulation is being stepped by hand.
	// running them when the emulation is running freely would flood the
	// terminal
	if dbg.commandOnStep != "" && !dbg.runUntilHalt {
		if err := dbg.parseInput(dbg.commandOnStep); err != nil {
			dbg.printLine(terminal.StyleError, "%s", err)
		}
	}

	return nil
}

// handleInterrupt processes a UserInterrupt event. the user is asked for
// confirmation before the debugger quits, when it is possible to ask.
func (dbg *Debugger) handleInterrupt(inputter terminal.Input) {
	if !inputter.IsRealTerminal() {
		// there is nobody to ask for confirmation
		dbg.running = false
		return
	}

	confirm, err := inputter.TermRead(terminal.Prompt{
		Type:    terminal.PromptTypeConfirm,
		Content: "really quit (y/n) ",
	}, dbg.events)

	if err != nil {
		// another interrupt at the confirmation prompt counts as a yes
		if errors.Is(err, terminal.UserInterrupt) || errors.Is(err, terminal.UserQuit) || errors.Is(err, io.EOF) {
			dbg.running = false
		}
		return
	}

	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(confirm)), "y") {
		dbg.running = false
	}
}
