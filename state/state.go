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

// Package state provides the flat byte buffer used for machine snapshots.
// Components append their fields with the Write functions and restore them,
// in the same order, with the Read functions.
//
// Values are stored little-endian with no framing. A State is therefore only
// readable by the code that wrote it; versioning, when needed, is the
// responsibility of whatever puts the buffer on disk.
//
// Reads past the end of the buffer do not panic. They return zero values and
// set a sticky error, so a component can load all of its fields and check
// Err once at the end.
package state

import (
	"errors"
	"os"
)

// Stater is implemented by components that can save themselves to a State
// and restore themselves from one.
type Stater interface {
	Save(*State)
	Load(*State) error
}

// State is an accumulating snapshot buffer. The zero value is not usable,
// use NewState or FromBytes.
type State struct {
	raw []byte
	pos int
	err error
}

// ErrTruncated is the sticky error set by a read past the end of the buffer.
var ErrTruncated = errors.New("state: snapshot truncated")

// NewState is the preferred method of initialisation for an empty State,
// ready for writing.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 64),
	}
}

// FromBytes wraps an existing snapshot, ready for reading.
func FromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// FromFile reads a snapshot from disk.
func FromFile(filename string) (*State, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return FromBytes(raw), nil
}

// Rewind moves the read position back to the start of the buffer and clears
// any sticky error.
func (s *State) Rewind() {
	s.pos = 0
	s.err = nil
}

// Err returns the sticky error, if any read so far went past the end of the
// buffer.
func (s *State) Err() error {
	return s.err
}

// Bytes returns the accumulated snapshot.
func (s *State) Bytes() []byte {
	return s.raw
}

// WriteToFile stores the accumulated snapshot on disk.
func (s *State) WriteToFile(filename string) error {
	return os.WriteFile(filename, s.raw, 0644)
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
}

func (s *State) Write64(value uint64) {
	s.Write32(uint32(value))
	s.Write32(uint32(value >> 32))
}

// WriteInt stores an int as a 32 bit two's complement value.
func (s *State) WriteInt(value int) {
	s.Write32(uint32(int32(value)))
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

func (s *State) Read8() uint8 {
	if s.pos+1 > len(s.raw) {
		s.err = ErrTruncated
		return 0
	}
	value := s.raw[s.pos]
	s.pos++
	return value
}

func (s *State) Read16() uint16 {
	if s.pos+2 > len(s.raw) {
		s.err = ErrTruncated
		return 0
	}
	value := uint16(s.raw[s.pos]) | uint16(s.raw[s.pos+1])<<8
	s.pos += 2
	return value
}

func (s *State) Read32() uint32 {
	if s.pos+4 > len(s.raw) {
		s.err = ErrTruncated
		return 0
	}
	value := uint32(s.raw[s.pos]) | uint32(s.raw[s.pos+1])<<8 |
		uint32(s.raw[s.pos+2])<<16 | uint32(s.raw[s.pos+3])<<24
	s.pos += 4
	return value
}

func (s *State) Read64() uint64 {
	lo := s.Read32()
	hi := s.Read32()
	return uint64(hi)<<32 | uint64(lo)
}

// ReadInt recovers an int stored with WriteInt.
func (s *State) ReadInt() int {
	return int(int32(s.Read32()))
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	if s.pos+len(p) > len(s.raw) {
		s.err = ErrTruncated
		return
	}
	copy(p, s.raw[s.pos:])
	s.pos += len(p)
}
