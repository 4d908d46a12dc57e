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

package bus

import (
	"fmt"
	"strings"
)

// Hooks are the callbacks a device can register against the control bus. All
// fields are optional. The level callbacks fire on every change of the
// corresponding signal; Addr fires whenever a new address is latched; Refresh
// fires once per opcode fetch with the refresh address.
//
// Hooks run synchronously inside the CPU's cycle loop. They must not call
// back into the CPU.
type Hooks struct {
	MREQ func(bool)
	IORQ func(bool)
	RD   func(bool)
	WR   func(bool)
	M1   func(bool)
	RFSH func(bool)

	Addr    func(address uint16)
	Refresh func(address uint16)
}

// Signals is the control bus. The CPU drives every field except WAIT, which
// is an input that external hardware asserts to stretch the current bus
// transaction.
//
// The exported fields should be treated as read-only outside this package,
// WAIT through SetWait excepted.
type Signals struct {
	// address and data latches. Addr is valid from signal assertion until
	// de-assertion. Data is valid for a read transaction once the transfer
	// has completed and for a write transaction from assertion onwards.
	Addr uint16
	Data uint8

	MREQ bool
	IORQ bool
	RD   bool
	WR   bool
	M1   bool
	RFSH bool
	WAIT bool

	Hooks Hooks
}

// NewSignals is the preferred method of initialisation for the Signals type.
func NewSignals() *Signals {
	return &Signals{}
}

// SetWait asserts or releases the WAIT input. While WAIT is asserted the CPU
// makes no progress at all; the signal is level-sensed so the bus transaction
// resumes as soon as it is released.
func (s *Signals) SetWait(wait bool) {
	s.WAIT = wait
}

// Reset releases every control signal and clears the address and data pins.
// Observers see the releases through their hooks. WAIT is an input and is
// cleared silently.
func (s *Signals) Reset() {
	s.rd(false)
	s.wr(false)
	s.mreq(false)
	s.iorq(false)
	s.m1(false)
	s.rfsh(false)
	s.Addr = 0
	s.Data = 0
	s.WAIT = false
}

func (s *Signals) String() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("addr=%04x data=%02x", s.Addr, s.Data))
	for _, l := range []struct {
		set  bool
		name string
	}{
		{s.M1, "M1"}, {s.MREQ, "MREQ"}, {s.IORQ, "IORQ"},
		{s.RD, "RD"}, {s.WR, "WR"}, {s.RFSH, "RFSH"}, {s.WAIT, "WAIT"},
	} {
		if l.set {
			b.WriteString(" ")
			b.WriteString(l.name)
		}
	}
	return b.String()
}

func (s *Signals) latch(address uint16) {
	s.Addr = address
	if s.Hooks.Addr != nil {
		s.Hooks.Addr(address)
	}
}

func (s *Signals) mreq(v bool) {
	if s.MREQ == v {
		return
	}
	s.MREQ = v
	if s.Hooks.MREQ != nil {
		s.Hooks.MREQ(v)
	}
}

func (s *Signals) iorq(v bool) {
	if s.IORQ == v {
		return
	}
	s.IORQ = v
	if s.Hooks.IORQ != nil {
		s.Hooks.IORQ(v)
	}
}

func (s *Signals) rd(v bool) {
	if s.RD == v {
		return
	}
	s.RD = v
	if s.Hooks.RD != nil {
		s.Hooks.RD(v)
	}
}

func (s *Signals) wr(v bool) {
	if s.WR == v {
		return
	}
	s.WR = v
	if s.Hooks.WR != nil {
		s.Hooks.WR(v)
	}
}

func (s *Signals) m1(v bool) {
	if s.M1 == v {
		return
	}
	s.M1 = v
	if s.Hooks.M1 != nil {
		s.Hooks.M1(v)
	}
}

func (s *Signals) rfsh(v bool) {
	if s.RFSH == v {
		return
	}
	s.RFSH = v
	if s.Hooks.RFSH != nil {
		s.Hooks.RFSH(v)
	}
}

// BeginOpcodeFetch asserts the signals for the start of an M1 cycle.
func (s *Signals) BeginOpcodeFetch(address uint16) {
	s.latch(address)
	s.m1(true)
	s.mreq(true)
	s.rd(true)
}

// BeginIntAck asserts the signals for an interrupt acknowledge cycle, an M1
// cycle that addresses the IO space rather than memory.
func (s *Signals) BeginIntAck(address uint16) {
	s.latch(address)
	s.m1(true)
	s.iorq(true)
}

// BeginMemRead asserts the signals for a memory read.
func (s *Signals) BeginMemRead(address uint16) {
	s.latch(address)
	s.mreq(true)
	s.rd(true)
}

// BeginMemWrite asserts the signals for a memory write. The data latch is
// valid immediately.
func (s *Signals) BeginMemWrite(address uint16, data uint8) {
	s.latch(address)
	s.Data = data
	s.mreq(true)
	s.wr(true)
}

// BeginIORead asserts the signals for an IO port read.
func (s *Signals) BeginIORead(port uint16) {
	s.latch(port)
	s.iorq(true)
	s.rd(true)
}

// BeginIOWrite asserts the signals for an IO port write. The data latch is
// valid immediately.
func (s *Signals) BeginIOWrite(port uint16, data uint8) {
	s.latch(port)
	s.Data = data
	s.iorq(true)
	s.wr(true)
}

// CompleteRead places the transferred value on the data latch.
func (s *Signals) CompleteRead(data uint8) {
	s.Data = data
}

// End de-asserts whichever transaction signals are currently active.
func (s *Signals) End() {
	s.rd(false)
	s.wr(false)
	s.mreq(false)
	s.iorq(false)
	s.m1(false)
}

// RefreshCycle reports the refresh portion of an opcode fetch as a single
// pulse: RFSH and MREQ assert with the refresh address latched, the Refresh
// hook fires, and the signals clear again.
func (s *Signals) RefreshCycle(address uint16) {
	s.latch(address)
	s.rfsh(true)
	s.mreq(true)
	if s.Hooks.Refresh != nil {
		s.Hooks.Refresh(address)
	}
	s.mreq(false)
	s.rfsh(false)
}
