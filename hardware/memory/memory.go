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

// Package memory implements the address space of the reference machine: a
// flat 64k of RAM with no mapping hardware. Program images are copied in
// with LoadImage() and the machine is free to write anywhere, including over
// the program.
package memory

import (
	"fmt"

	"github.com/jetsetilly/gopherz80/crunched"
	"github.com/jetsetilly/gopherz80/state"
)

// Size of the address space in bytes.
const Size = 0x10000

// Memory is the flat RAM of the reference machine. It implements the
// bus.Memory interface.
type Memory struct {
	ram []uint8
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{
		ram: make([]uint8, Size),
	}
}

// Read implements the bus.Memory interface.
func (m *Memory) Read(address uint16) uint8 {
	return m.ram[address]
}

// Write implements the bus.Memory interface.
func (m *Memory) Write(address uint16, data uint8) {
	m.ram[address] = data
}

// Clear the entire address space to zero.
func (m *Memory) Clear() {
	for i := range m.ram {
		m.ram[i] = 0
	}
}

// LoadImage copies a program image into memory starting at the origin
// address. Memory outside the image is not disturbed.
func (m *Memory) LoadImage(origin uint16, data []uint8) error {
	if int(origin)+len(data) > Size {
		return fmt.Errorf("memory: image does not fit (%d bytes at %#04x)", len(data), origin)
	}
	copy(m.ram[origin:], data)
	return nil
}

// Snapshot returns a compressed copy of the RAM contents. Restore with
// Plumb().
func (m *Memory) Snapshot() crunched.Data {
	d := crunched.NewQuick(Size)
	copy(*d.Data(), m.ram)
	return d.Snapshot()
}

// Plumb a previously snapshotted RAM image back into memory.
func (m *Memory) Plumb(d crunched.Data) {
	copy(m.ram, *d.Data())
}

// Save appends the RAM contents to the snapshot.
func (m *Memory) Save(s *state.State) {
	s.WriteData(m.ram)
}

// Load restores the RAM contents from the snapshot.
func (m *Memory) Load(s *state.State) error {
	s.ReadData(m.ram)
	return s.Err()
}
