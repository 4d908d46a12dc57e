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

package digest

import (
	"fmt"
	"hash"

	"github.com/cespare/xxhash"
	"github.com/jetsetilly/gopherz80/hardware/bus"
)

// tags distinguishing the four transaction types in the hash stream.
const (
	tagMemoryRead uint8 = iota
	tagMemoryWrite
	tagPortRead
	tagPortWrite
)

// Bus wraps a memory and an IO implementation, folding every transaction
// that passes through into a running hash. Each transaction contributes the
// transaction type, the address and the data value, so the hash fingerprints
// not just what the program computed but how it went about it.
//
// Plumb the Mem and IO fields into the CPU to start recording.
type Bus struct {
	hash hash.Hash64

	// the wrapped buses
	mem bus.Memory
	io  bus.IO

	// the tapped buses. these are what the CPU should be connected to
	Mem bus.Memory
	IO  bus.IO
}

// NewBus is the preferred method of initialisation for the Bus type. The io
// argument can be nil, in which case port reads return 0xff and port writes
// are discarded (still contributing to the hash either way).
func NewBus(mem bus.Memory, io bus.IO) *Bus {
	dig := &Bus{
		hash: xxhash.New(),
		mem:  mem,
		io:   io,
	}
	dig.Mem = &memTap{dig: dig}
	dig.IO = &ioTap{dig: dig}
	return dig
}

func (dig *Bus) record(tag uint8, address uint16, data uint8) {
	rec := [4]byte{tag, uint8(address), uint8(address >> 8), data}

	// hash.Hash documents Write as never returning an error
	_, _ = dig.hash.Write(rec[:])
}

// Hash implements the digest.Digest interface.
func (dig *Bus) Hash() string {
	return fmt.Sprintf("%016x", dig.hash.Sum64())
}

// ResetDigest implements the digest.Digest interface.
func (dig *Bus) ResetDigest() {
	dig.hash.Reset()
}

// memTap implements the bus.Memory interface.
type memTap struct {
	dig *Bus
}

func (tap *memTap) Read(address uint16) uint8 {
	data := tap.dig.mem.Read(address)
	tap.dig.record(tagMemoryRead, address, data)
	return data
}

func (tap *memTap) Write(address uint16, data uint8) {
	tap.dig.mem.Write(address, data)
	tap.dig.record(tagMemoryWrite, address, data)
}

// ioTap implements the bus.IO interface.
type ioTap struct {
	dig *Bus
}

func (tap *ioTap) Read(port uint16) uint8 {
	data := uint8(0xff)
	if tap.dig.io != nil {
		data = tap.dig.io.Read(port)
	}
	tap.dig.record(tagPortRead, port, data)
	return data
}

func (tap *ioTap) Write(port uint16, data uint8) {
	if tap.dig.io != nil {
		tap.dig.io.Write(port, data)
	}
	tap.dig.record(tagPortWrite, port, data)
}
