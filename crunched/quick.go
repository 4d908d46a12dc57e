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

package crunched

type quick struct {
	crunched       bool
	data           []byte
	uncrunchedSize int
}

// NewQuick returns an implementation of the Data interface that is intended
// to perform quickly on both crunching and decrunching.
//
// For simplicity, the minimum amount of data allocated will be 4 bytes.
func NewQuick(size int) Data {
	size = max(size, 4)
	return &quick{
		data:           make([]byte, size),
		uncrunchedSize: size,
	}
}

// IsCrunched returns true if data is currently crunched.
//
// This function implements the Data interface.
func (c *quick) IsCrunched() bool {
	return c.crunched
}

// Size returns the uncrunched size and the current size of the data.
//
// This function implements the Data interface.
func (c *quick) Size() (int, int) {
	return c.uncrunchedSize, len(c.data)
}

// Data returns a pointer to the uncrunched data.
//
// This function implements the Data interface.
func (c *quick) Data() *[]byte {
	if c.crunched {
		// the RLE stream is value and count pairs, so a crunched block
		// always holds an even number of bytes
		if len(c.data)&0x01 == 0x01 {
			panic("crunched data should have an even number of bytes")
		}

		// keep hold of the crunched stream while the uncrunched data is
		// rebuilt over the top of it
		working := c.data
		c.data = make([]byte, c.uncrunchedSize)

		// undo the RLE process. the count byte is the number of additional
		// repeats of the value
		var idx int
		for i := 0; i < len(working); i += 2 {
			for r := 0; r <= int(working[i+1]); r++ {
				c.data[idx] = working[i]
				idx++
			}
		}

		c.crunched = false
	}

	return &c.data
}

// Snapshot makes a copy of the data, crunching it if possible.
//
// This function implements the Data interface.
func (c *quick) Snapshot() Data {
	d := *c

	if !d.crunched {
		working := make([]byte, d.uncrunchedSize)

		var ct int
		var idx int
		working[idx] = c.data[0]

		// assume crunching will succeed unless told otherwise
		d.crunched = true

		// very basic RLE algorithm:
		// 1) each byte is followed by a count value
		// 2) maximum count value is 255
		for _, v := range c.data[1:] {
			if v == working[idx] && ct < 255 {
				ct++
			} else {
				// two bytes are about to be added to the crunch stream.
				// if that would overflow the working array the data is
				// not worth crunching
				if idx >= len(working)-2 {
					d.crunched = false
					break // for loop
				}

				// output count for the run that has just ended
				idx++
				working[idx] = byte(ct)

				// output the byte that starts the new run
				idx++
				working[idx] = v

				ct = 0
			}
		}

		// allocate just enough memory to store the crunched stream
		if d.crunched {
			idx++
			working[idx] = byte(ct)
			d.data = make([]byte, idx+1)
			copy(d.data, working[:idx+1])
			return &d
		}

		// data could not be crunched. fall through to the plain copy
	}

	// copy data as it exists now. this may be crunched or uncrunched data,
	// it doesn't matter either way
	d.data = make([]byte, len(c.data))
	copy(d.data, c.data)

	return &d
}

// Inspect returns the data in its current state.
//
// This function implements the Inspection interface.
func (c *quick) Inspect() *[]byte {
	return &c.data
}
