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
	"github.com/jetsetilly/gopherz80/debugger/terminal"
)

// haltCoordination ties together all the mechanisms that can interrupt the
// normal running of the emulation.
//
// reset() and check() control the coordination itself. updating of the
// breakpoints, etc. is done directly on those fields.
type haltCoordination struct {
	dbg *Debugger

	// has a halt condition been met since halt was last reset(). once halt
	// is true it remains set until reset() is called
	halt bool

	// halt conditions
	breakpoints *breakpoints
	traps       *traps
	watches     *watches

	// volatile conditions. if these are non-empty they take precedence over
	// the regular breakpoints and traps. volatile conditions are cleared by
	// the input loop whenever the emulation halts
	volatileBreakpoints *breakpoints
}

func newHaltCoordination(dbg *Debugger) *haltCoordination {
	h := &haltCoordination{dbg: dbg}

	h.breakpoints = newBreakpoints(dbg)
	h.traps = newTraps(dbg)
	h.watches = newWatches(dbg)

	h.volatileBreakpoints = newBreakpoints(dbg)

	return h
}

// reset halt condition.
func (h *haltCoordination) reset() {
	h.halt = false
}

// check for a halt condition and set the halt flag if one is found.
func (h *haltCoordination) check() {
	// watches are driven by bus events so they are reported at T-state
	// resolution, whether or not volatile breakpoints are in place
	if watchMessage := h.watches.check(); watchMessage != "" {
		h.dbg.printLine(terminal.StyleFeedback, watchMessage)
		h.halt = true
	}

	// breakpoints and traps observe the machine state proper and are only
	// checked at instruction boundaries, when that state is consistent. an
	// operand fetch part way through an instruction advances the PC, for
	// example, and must not match a PC breakpoint
	if !h.dbg.m.CPU.AtBoundary() {
		return
	}

	// volatile breakpoints halt silently. the prompt that follows is report
	// enough
	if !h.volatileBreakpoints.isEmpty() {
		breakMessage := h.volatileBreakpoints.check()
		h.halt = h.halt || breakMessage != ""
		return
	}

	breakMessage := h.breakpoints.check()
	trapMessage := h.traps.check()

	if breakMessage != "" {
		h.dbg.printLine(terminal.StyleFeedback, breakMessage)
		h.halt = true
	}

	if trapMessage != "" {
		h.dbg.printLine(terminal.StyleFeedback, trapMessage)
		h.halt = true
	}
}
