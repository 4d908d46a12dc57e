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

package alu_test

import (
	"math/bits"
	"testing"

	"github.com/jetsetilly/gopherz80/hardware/z80/alu"
	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
	"github.com/jetsetilly/gopherz80/test"
)

const (
	cf = uint8(registers.FlagC)
	nf = uint8(registers.FlagN)
	pf = uint8(registers.FlagP)
	xf = uint8(registers.FlagX)
	hf = uint8(registers.FlagH)
	yf = uint8(registers.FlagY)
	zf = uint8(registers.FlagZ)
	sf = uint8(registers.FlagS)
)

// szyx computes the sign, zero and undocumented bits longhand.
func szyx(res uint8) uint8 {
	f := res & (sf | yf | xf)
	if res == 0 {
		f |= zf
	}
	return f
}

// The following tests derive the expected flags for every accumulator and
// operand pairing from the first-principles definition of each flag and
// compare them with the table content. Every index of every binary table is
// visited exactly once: the operand recovers a unique result for a given
// accumulator.

func TestAddTable(t *testing.T) {
	for a := 0; a < 0x100; a++ {
		for v := 0; v < 0x100; v++ {
			res := uint8(a + v)
			expected := szyx(res)
			if (a&0x0f)+(v&0x0f) > 0x0f {
				expected |= hf
			}
			if a+v > 0xff {
				expected |= cf
			}
			if ^(a^v)&(a^int(res))&0x80 != 0 {
				expected |= pf
			}
			if got := alu.Add[a<<8|int(res)]; got != expected {
				t.Fatalf("ADD %#02x+%#02x: flags %v - wanted %v",
					a, v, registers.Flags(got), registers.Flags(expected))
			}
		}
	}
}

func TestAdcTable(t *testing.T) {
	for a := 0; a < 0x100; a++ {
		for v := 0; v < 0x100; v++ {
			res := uint8(a + v + 1)
			expected := szyx(res)
			if (a&0x0f)+(v&0x0f)+1 > 0x0f {
				expected |= hf
			}
			if a+v+1 > 0xff {
				expected |= cf
			}
			if ^(a^v)&(a^int(res))&0x80 != 0 {
				expected |= pf
			}
			if got := alu.Adc[a<<8|int(res)]; got != expected {
				t.Fatalf("ADC %#02x+%#02x+1: flags %v - wanted %v",
					a, v, registers.Flags(got), registers.Flags(expected))
			}
		}
	}
}

func TestSubTable(t *testing.T) {
	for a := 0; a < 0x100; a++ {
		for v := 0; v < 0x100; v++ {
			res := uint8(a - v)
			expected := szyx(res) | nf
			if a&0x0f < v&0x0f {
				expected |= hf
			}
			if a < v {
				expected |= cf
			}
			if (a^v)&(a^int(res))&0x80 != 0 {
				expected |= pf
			}
			if got := alu.Sub[a<<8|int(res)]; got != expected {
				t.Fatalf("SUB %#02x-%#02x: flags %v - wanted %v",
					a, v, registers.Flags(got), registers.Flags(expected))
			}
		}
	}
}

func TestSbcTable(t *testing.T) {
	for a := 0; a < 0x100; a++ {
		for v := 0; v < 0x100; v++ {
			res := uint8(a - v - 1)
			expected := szyx(res) | nf
			if a&0x0f < (v&0x0f)+1 {
				expected |= hf
			}
			if a < v+1 {
				expected |= cf
			}
			if (a^v)&(a^int(res))&0x80 != 0 {
				expected |= pf
			}
			if got := alu.Sbc[a<<8|int(res)]; got != expected {
				t.Fatalf("SBC %#02x-%#02x-1: flags %v - wanted %v",
					a, v, registers.Flags(got), registers.Flags(expected))
			}
		}
	}
}

func TestUnaryTables(t *testing.T) {
	for i := 0; i < 0x100; i++ {
		v := uint8(i)

		test.Equate(t, alu.SZ[i], szyx(v))

		expected := szyx(v)
		if bits.OnesCount8(v)%2 == 0 {
			expected |= pf
		}
		test.Equate(t, alu.SZP[i], expected)

		// INC overflows only at 0x80, half-carries out of a clean low nybble
		expected = szyx(v)
		if v == 0x80 {
			expected |= pf
		}
		if v&0x0f == 0x00 {
			expected |= hf
		}
		test.Equate(t, alu.Inc[i], expected)

		// DEC overflows only at 0x7f
		expected = szyx(v) | nf
		if v == 0x7f {
			expected |= pf
		}
		if v&0x0f == 0x0f {
			expected |= hf
		}
		test.Equate(t, alu.Dec[i], expected)
	}
}

func TestBitTable(t *testing.T) {
	// a zero result from BIT claims even parity as well as zero
	test.Equate(t, alu.SZBit[0], zf|pf)

	// a set bit 7 shows as sign
	test.Equate(t, alu.SZBit[0x80], sf)

	// bits 5 and 3 shine through
	test.Equate(t, alu.SZBit[0x20], yf)
	test.Equate(t, alu.SZBit[0x08], xf)

	for i := 1; i < 0x100; i++ {
		if alu.SZBit[i]&zf != 0 {
			t.Fatalf("SZBit[%#02x] claims zero for a non-zero result", i)
		}
	}
}
