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
	"strconv"
	"strings"

	"github.com/jetsetilly/gopherz80/debugger/terminal"
	"github.com/jetsetilly/gopherz80/debugger/terminal/commandline"
)

// watchEvent defines the bus events a watcher responds to.
type watchEvent int

// list of valid watchEvent values.
const (
	watchEventAny watchEvent = iota
	watchEventRead
	watchEventWrite
)

func (ev watchEvent) String() string {
	switch ev {
	case watchEventRead:
		return "read"
	case watchEventWrite:
		return "write"
	case watchEventAny:
		return "read/write"
	}
	return ""
}

// busEvent records a single read or write on the memory or IO bus, as seen
// by the signal hooks installed with installBusTaps().
type busEvent struct {
	address uint16
	data    uint8
	write   bool
	port    bool
}

// watches are used to halt execution when a watched address is accessed on
// the bus. hits are recorded by the bus tap at the moment of access, which
// may be in the middle of an instruction, and reported at the next halt
// check.
type watches struct {
	dbg     *Debugger
	watches []watcher

	// hits recorded by tap() since the last check()
	hits []string
}

// watcher defines a specific watch condition.
type watcher struct {
	address uint16

	// the address refers to the IO space rather than memory. only the low
	// byte of the address is significant, matching the 8-bit decode used by
	// the ports implementation
	port bool

	event watchEvent

	matchValue bool
	value      uint8
}

func (wtr watcher) String() string {
	val := ""
	if wtr.matchValue {
		val = fmt.Sprintf(" (value=%#02x)", wtr.value)
	}
	if wtr.port {
		return fmt.Sprintf("port %#02x %s%s", uint8(wtr.address), wtr.event, val)
	}
	return fmt.Sprintf("%#04x %s%s", wtr.address, wtr.event, val)
}

func newWatches(dbg *Debugger) *watches {
	wtc := &watches{dbg: dbg}
	wtc.clear()
	return wtc
}

// clear all watches.
func (wtc *watches) clear() {
	wtc.watches = make([]watcher, 0, 10)
	wtc.hits = wtc.hits[:0]
}

func (wtc *watches) isEmpty() bool {
	return len(wtc.watches) == 0
}

// drop a specific watch by position in list.
func (wtc *watches) drop(num int) error {
	if num < 0 || num >= len(wtc.watches) {
		return fmt.Errorf("watch #%d is not defined", num)
	}

	h := wtc.watches[:num]
	t := wtc.watches[num+1:]
	wtc.watches = make([]watcher, len(h)+len(t), cap(wtc.watches))
	copy(wtc.watches, h)
	copy(wtc.watches[len(h):], t)

	return nil
}

// tap records a bus event against the list of watches.
func (wtc *watches) tap(ev busEvent) {
	for i := range wtc.watches {
		w := &wtc.watches[i]

		if w.port != ev.port {
			continue
		}
		if w.port {
			if uint8(w.address) != uint8(ev.address) {
				continue
			}
		} else if w.address != ev.address {
			continue
		}

		if ev.write {
			if w.event == watchEventRead {
				continue
			}
		} else if w.event == watchEventWrite {
			continue
		}

		if w.matchValue && w.value != ev.data {
			continue
		}

		rw := "read"
		if ev.write {
			rw = "write"
		}
		wtc.hits = append(wtc.hits, fmt.Sprintf("watch on %s [%s %#02x]", w, rw, ev.data))
	}
}

// check returns a string listing every watch hit recorded since the last
// check (separated by \n). the hit list is emptied.
func (wtc *watches) check() string {
	if len(wtc.hits) == 0 {
		return ""
	}

	checkString := strings.Builder{}
	for _, h := range wtc.hits {
		checkString.WriteString(h)
		checkString.WriteString("\n")
	}
	wtc.hits = wtc.hits[:0]

	return strings.TrimRight(checkString.String(), "\n")
}

// list currently defined watches.
func (wtc watches) list() {
	if len(wtc.watches) == 0 {
		wtc.dbg.printLine(terminal.StyleFeedback, "no watches")
	} else {
		wtc.dbg.printLine(terminal.StyleFeedback, "watches:")
		for i := range wtc.watches {
			wtc.dbg.printLine(terminal.StyleFeedback, "% 2d: %s", i, wtc.watches[i])
		}
	}
}

// parse tokens and add new watch. for example:
//
//	WATCH WRITE 0x8000
//
// watches the memory address 0x8000 for writes. the PORT keyword moves the
// watch to the IO space:
//
//	WATCH READ PORT 0xfe
func (wtc *watches) parseWatch(tokens *commandline.Tokens) error {
	var event watchEvent

	// event type
	arg, _ := tokens.Get()
	switch strings.ToUpper(arg) {
	case "READ":
		event = watchEventRead
	case "WRITE":
		event = watchEventWrite
	default:
		event = watchEventAny
		tokens.Unget()
	}

	// port qualifier
	var port bool
	arg, _ = tokens.Get()
	if strings.ToUpper(arg) == "PORT" {
		port = true
	} else {
		tokens.Unget()
	}

	// get address
	a, present := tokens.Get()
	if !present {
		return fmt.Errorf("watch address required")
	}
	addr, err := parseAddress(a)
	if err != nil {
		return err
	}

	// get value if possible
	var matchValue bool
	var value uint8
	if v, ok := tokens.Get(); ok {
		u, err := strconv.ParseUint(v, 0, 8)
		if err != nil {
			return fmt.Errorf("invalid watch value (%s)", v)
		}
		matchValue = true
		value = uint8(u)
	}

	nw := watcher{
		address:    addr,
		port:       port,
		event:      event,
		matchValue: matchValue,
		value:      value,
	}

	// check new watch against existing watches
	for _, w := range wtc.watches {
		if w == nw {
			return fmt.Errorf("already being watched (%s)", w)
		}
	}

	wtc.watches = append(wtc.watches, nw)

	return nil
}
