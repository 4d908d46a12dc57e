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

package hardware

import (
	"github.com/jetsetilly/gopherz80/crunched"
	"github.com/jetsetilly/gopherz80/hardware/z80"
)

// State stores the machine sub-systems. It is produced by the Snapshot()
// function and restored with the Plumb() function. RAM is held in
// compressed form.
//
// Port attachments are runtime wiring, not machine state, and are not part
// of the snapshot.
type State struct {
	CPU     *z80.CPU
	Mem     crunched.Data
	TStates int64
}

// Snapshot the state of the machine sub-systems. The snapshot includes any
// instruction in flight, so a machine stopped between T-states is captured
// exactly.
func (m *Machine) Snapshot() *State {
	return &State{
		CPU:     m.CPU.Snapshot(),
		Mem:     m.Mem.Snapshot(),
		TStates: m.TStates,
	}
}

// Plumb a previously snapshotted state back into the machine.
func (m *Machine) Plumb(s *State) {
	if s == nil {
		panic("machine: cannot plumb in a nil state")
	}

	// take another copy of the state before plumbing. we don't want the
	// running machine to change what the caller has stored
	m.CPU = s.CPU.Snapshot()
	m.Mem.Plumb(s.Mem.Snapshot())
	m.CPU.Plumb(m.Mem, m.Ports)
	m.TStates = s.TStates
}
