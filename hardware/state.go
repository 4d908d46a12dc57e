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
	"fmt"

	"github.com/jetsetilly/gopherz80/state"
)

// the snapshot file format: a four byte tag and a version byte followed by
// the machine state.
const (
	stateMagic   = "GZ80"
	stateVersion = 1
)

// Save the complete machine state to the snapshot, suitable for writing to
// disk and restoring with Load(), including into a different process.
func (m *Machine) Save(s *state.State) {
	s.WriteData([]byte(stateMagic))
	s.Write8(stateVersion)
	m.CPU.Save(s)
	m.Mem.Save(s)
	s.Write64(uint64(m.TStates))
}

// Load the machine state from a snapshot. On error the machine may be
// partially restored and should be Reset before further use.
func (m *Machine) Load(s *state.State) error {
	magic := make([]byte, len(stateMagic))
	s.ReadData(magic)
	if s.Err() == nil && string(magic) != stateMagic {
		return fmt.Errorf("machine: not a machine snapshot")
	}
	if v := s.Read8(); s.Err() == nil && v != stateVersion {
		return fmt.Errorf("machine: unsupported snapshot version (%d)", v)
	}

	if err := m.CPU.Load(s); err != nil {
		return err
	}
	if err := m.Mem.Load(s); err != nil {
		return err
	}
	m.TStates = int64(s.Read64())

	return s.Err()
}
