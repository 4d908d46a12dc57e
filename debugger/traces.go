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
	"strings"

	"github.com/jetsetilly/gopherz80/debugger/terminal"
	"github.com/jetsetilly/gopherz80/debugger/terminal/commandline"
)

// traces record activity on an address without halting execution. a trace
// line is printed for every access to the traced address.
type traces struct {
	dbg    *Debugger
	traces []tracer

	// accesses recorded by tap() since the last check()
	activity []string
}

// tracer defines a specific trace condition.
type tracer struct {
	address uint16

	// address refers to the IO space rather than memory
	port bool
}

func (t tracer) String() string {
	if t.port {
		return fmt.Sprintf("port %#02x", uint8(t.address))
	}
	return fmt.Sprintf("%#04x", t.address)
}

func newTraces(dbg *Debugger) *traces {
	trc := &traces{dbg: dbg}
	trc.clear()
	return trc
}

// clear all traces.
func (trc *traces) clear() {
	trc.traces = make([]tracer, 0, 10)
	trc.activity = trc.activity[:0]
}

// drop a specific trace by position in list.
func (trc *traces) drop(num int) error {
	if num < 0 || num >= len(trc.traces) {
		return fmt.Errorf("trace #%d is not defined", num)
	}

	h := trc.traces[:num]
	t := trc.traces[num+1:]
	trc.traces = make([]tracer, len(h)+len(t), cap(trc.traces))
	copy(trc.traces, h)
	copy(trc.traces[len(h):], t)

	return nil
}

// tap records a bus event against the list of traces.
func (trc *traces) tap(ev busEvent) {
	for _, t := range trc.traces {
		if t.port != ev.port {
			continue
		}
		if t.port {
			if uint8(t.address) != uint8(ev.address) {
				continue
			}
		} else if t.address != ev.address {
			continue
		}

		rw := "read"
		if ev.write {
			rw = "write"
		}
		trc.activity = append(trc.activity, fmt.Sprintf("%04x: %s %s [%#02x]",
			trc.dbg.m.CPU.LastResult.Address, rw, t, ev.data))
	}
}

// check returns a string listing every traced access recorded since the last
// check (separated by \n). the list is emptied.
func (trc *traces) check() string {
	if len(trc.activity) == 0 {
		return ""
	}

	checkString := strings.Builder{}
	for _, a := range trc.activity {
		checkString.WriteString(a)
		checkString.WriteString("\n")
	}
	trc.activity = trc.activity[:0]

	return strings.TrimRight(checkString.String(), "\n")
}

// list currently defined traces.
func (trc traces) list() {
	if len(trc.traces) == 0 {
		trc.dbg.printLine(terminal.StyleFeedback, "no traces")
	} else {
		trc.dbg.printLine(terminal.StyleFeedback, "traces:")
		for i := range trc.traces {
			trc.dbg.printLine(terminal.StyleFeedback, "% 2d: %s", i, trc.traces[i])
		}
	}
}

// parse tokens and add new trace. with no address the current trace list is
// printed instead.
func (trc *traces) parseTrace(tokens *commandline.Tokens) error {
	var port bool

	arg, present := tokens.Get()
	if present && strings.ToUpper(arg) == "PORT" {
		port = true
		arg, present = tokens.Get()
	}

	if !present {
		trc.list()
		return nil
	}

	addr, err := parseAddress(arg)
	if err != nil {
		return err
	}

	nt := tracer{address: addr, port: port}

	// check new trace against existing traces
	for _, t := range trc.traces {
		if t == nt {
			return fmt.Errorf("already being traced (%s)", t)
		}
	}

	trc.traces = append(trc.traces, nt)

	return nil
}
