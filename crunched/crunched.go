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

// Package crunched provides compressed storage for blocks of memory that
// are copied often but read rarely, RAM images held in machine snapshots
// being the motivating case.
package crunched

// Data provides the interface to a crunched data type.
type Data interface {
	// IsCrunched returns true if data is currently crunched
	IsCrunched() bool

	// Size returns the uncrunched size and the current size of the data. if
	// the data is not currently crunched the two values will be the same
	Size() (int, int)

	// Data returns a pointer to the uncrunched data
	Data() *[]byte

	// Snapshot makes a copy of the data, crunching it if possible. the copy
	// is uncrunched automatically when its Data() function is called
	Snapshot() Data
}

// Inspection provides the ability to examine the data in its current form.
type Inspection interface {
	Data

	// Inspect returns the data in its current state. in other words, the
	// data will not be decrunched as it would be with the Data() function
	Inspect() *[]byte
}
