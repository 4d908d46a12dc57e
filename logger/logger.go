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

// Package logger is the central log for the whole application. Packages add
// entries with Log and Logf and whatever user interface is running decides
// when and how to show them, either by draining the log with Write or Tail
// or by attaching an echo writer with SetEcho.
//
// Consecutive identical entries fold into one entry with a repeat count.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry is a single line in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string

	repeated int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// maximum number of entries kept. older entries fall off the front.
const maxEntries = 256

type log struct {
	crit    sync.Mutex
	entries []Entry
	echo    io.Writer
}

// one central log for the entire application
var central log

// Log adds an entry to the central log.
func Log(tag, detail string) {
	central.crit.Lock()
	defer central.crit.Unlock()

	// newlines would break the one-line-per-entry contract
	tag = strings.ReplaceAll(tag, "\n", " ")
	detail = strings.ReplaceAll(detail, "\n", " ")

	if len(central.entries) > 0 {
		e := &central.entries[len(central.entries)-1]
		if e.Tag == tag && e.Detail == detail {
			e.repeated++
			e.Timestamp = time.Now()
			return
		}
	}

	e := Entry{Timestamp: time.Now(), Tag: tag, Detail: detail}
	central.entries = append(central.entries, e)

	if len(central.entries) > maxEntries {
		central.entries = central.entries[len(central.entries)-maxEntries:]
	}

	if central.echo != nil {
		io.WriteString(central.echo, e.String())
	}
}

// Logf adds a formatted entry to the central log.
func Logf(tag, format string, args ...interface{}) {
	Log(tag, fmt.Sprintf(format, args...))
}

// Clear empties the central log.
func Clear() {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.entries = central.entries[:0]
}

// Write the contents of the central log to the io.Writer.
func Write(output io.Writer) {
	central.crit.Lock()
	defer central.crit.Unlock()
	for _, e := range central.entries {
		io.WriteString(output, e.String())
	}
}

// Tail writes the last number of entries to the io.Writer.
func Tail(output io.Writer, number int) {
	central.crit.Lock()
	defer central.crit.Unlock()

	if number > len(central.entries) {
		number = len(central.entries)
	}
	for _, e := range central.entries[len(central.entries)-number:] {
		io.WriteString(output, e.String())
	}
}

// SetEcho forwards future entries to the io.Writer as they arrive. A nil
// writer turns echoing off. If writeRecent is true the current contents are
// written out first.
func SetEcho(output io.Writer, writeRecent bool) {
	central.crit.Lock()
	defer central.crit.Unlock()

	central.echo = output
	if output != nil && writeRecent {
		for _, e := range central.entries {
			io.WriteString(output, e.String())
		}
	}
}

// BorrowLog gives the provided function access to the entries under the
// critical section. The slice must not be kept after the function returns.
func BorrowLog(f func([]Entry)) {
	central.crit.Lock()
	defer central.crit.Unlock()
	f(central.entries)
}
