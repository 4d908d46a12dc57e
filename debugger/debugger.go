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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jetsetilly/gopherz80/debugger/terminal"
	"github.com/jetsetilly/gopherz80/debugger/terminal/commandline"
	"github.com/jetsetilly/gopherz80/disassembly"
	"github.com/jetsetilly/gopherz80/hardware"
)

// Debugger is the basic debugging frontend for the emulation.
type Debugger struct {
	m *hardware.Machine

	// the terminal the debugger is connected to
	term terminal.Terminal

	// events is polled while the emulation is running and monitored by the
	// terminal while it waits for input
	events *terminal.ReadEvents

	// halt conditions and the coordination of them
	halting *haltCoordination

	// traced bus activity is reported but never halts the emulation
	traces *traces

	// static disassembly of the attached program. the DISASM command decodes
	// live memory instead when given an explicit address
	dsm *disassembly.Disassembly

	// the amount the emulation moves forward by on every step
	quantum Quantum

	// is the debugger running. the QUIT command clears this flag, as does a
	// second ctrl-c at the confirmation prompt
	running bool

	// emulation is running freely until a halt condition matches
	runUntilHalt bool

	// continue emulation on the current pass of the input loop
	continueEmulation bool

	// halt the emulation at the next opportunity. set by the HALT command
	// and by ctrl-c while the emulation is running
	haltImmediately bool

	// the previous step ended in error. the input loop will not continue
	// execution until the user has intervened
	lastStepError bool

	// commands that run automatically whenever the emulation halts or
	// completes a step. the stored copies allow ONHALT/ONSTEP with no
	// arguments to reinstate a previous command
	commandOnHalt       string
	commandOnHaltStored string
	commandOnStep       string
	commandOnStepStored string

	// machine states kept by the SAVESTATE command. the slot number reported
	// on save is the index into this slice
	states []*hardware.State

	// the byte the CPU sees on the data bus during an interrupt acknowledge
	// cycle. changed with the INT command. 0xff is what an open bus reads
	// and conveniently corresponds to RST 38h in mode 0
	intVector uint8
}

// New is the preferred method of initialisation for the Debugger type. The
// machine should have a program attached before the debugger starts.
func New(m *hardware.Machine, term terminal.Terminal) (*Debugger, error) {
	dbg := &Debugger{
		m:    m,
		term: term,

		// the LAST command after every step is a good default. ONSTEP OFF
		// disables it
		commandOnStep:       cmdLast,
		commandOnStepStored: cmdLast,

		intVector: 0xff,
	}

	// the Signal channel is buffered so a ctrl-c arriving while the
	// emulation is mid-step is not lost
	dbg.events = &terminal.ReadEvents{
		Signal: make(chan os.Signal, 1),
		SignalHandler: func(sig os.Signal) error {
			switch sig {
			case os.Interrupt:
				return terminal.UserInterrupt
			case syscall.SIGQUIT:
				return terminal.UserQuit
			}
			return nil
		},
	}
	signal.Notify(dbg.events.Signal, os.Interrupt, syscall.SIGQUIT)

	dbg.halting = newHaltCoordination(dbg)
	dbg.traces = newTraces(dbg)

	// the interrupt acknowledge vector is under the control of the INT
	// command
	dbg.m.CPU.IntAck = func() uint8 {
		return dbg.intVector
	}

	// report movement in and out of the HALT state. halting the emulation
	// when the CPU halts means a runaway program hands control back to the
	// user rather than spinning silently
	dbg.m.CPU.OnHalt = func(halted bool) {
		if halted {
			dbg.printLine(terminal.StyleFeedback, "CPU has halted")
			dbg.haltImmediately = true
		} else {
			dbg.printLine(terminal.StyleFeedback, "CPU has resumed")
		}
	}

	dbg.installBusTaps()

	var err error

	dbg.dsm, err = disassembly.FromLoader(m.Loader())
	if err != nil {
		return nil, fmt.Errorf("debugger: %w", err)
	}

	return dbg, nil
}

// installBusTaps hooks the watch and trace lists into the control bus. The
// hooks capture the current Signals instance so they must be installed again
// whenever a Plumb() gives the CPU a new one.
func (dbg *Debugger) installBusTaps() {
	sig := dbg.m.CPU.Sig

	// reads are recorded on the trailing edge of RD, when the data latch is
	// valid. opcode fetches are not interesting to watch so M1 cycles are
	// filtered out
	sig.Hooks.RD = func(v bool) {
		if v || sig.M1 {
			return
		}
		ev := busEvent{
			address: sig.Addr,
			data:    sig.Data,
			port:    sig.IORQ,
		}
		dbg.halting.watches.tap(ev)
		dbg.traces.tap(ev)
	}

	// writes are recorded on the leading edge of WR. the data latch is valid
	// from the start of a write transaction
	sig.Hooks.WR = func(v bool) {
		if !v {
			return
		}
		ev := busEvent{
			address: sig.Addr,
			data:    sig.Data,
			write:   true,
			port:    sig.IORQ,
		}
		dbg.halting.watches.tap(ev)
		dbg.traces.tap(ev)
	}
}

// Start the debugger and the input loop. Returns when the user has quit.
func (dbg *Debugger) Start() error {
	if err := dbg.term.Initialise(); err != nil {
		return fmt.Errorf("debugger: %w", err)
	}
	defer dbg.term.CleanUp()

	dbg.term.RegisterTabCompletion(commandline.NewTabCompletion(debuggerCommands))

	dbg.running = true

	if err := dbg.inputLoop(dbg.term); err != nil {
		return fmt.Errorf("debugger: %w", err)
	}
	return nil
}

// checkEvents polls the event channels while the emulation is running. The
// returned boolean indicates that the terminal has input waiting and the
// input loop should pause to read it.
func (dbg *Debugger) checkEvents(inputter terminal.Input) (bool, error) {
	select {
	case sig := <-dbg.events.Signal:
		err := dbg.events.SignalHandler(sig)
		switch {
		case err == nil:
		case err == terminal.UserInterrupt:
			// ctrl-c while the emulation is running halts the emulation
			// rather than quitting the debugger
			dbg.haltImmediately = true
		case err == terminal.UserQuit:
			dbg.running = false
			dbg.haltImmediately = true
		default:
			return false, err
		}
		return false, nil
	default:
	}

	return inputter.TermReadCheck(), nil
}
