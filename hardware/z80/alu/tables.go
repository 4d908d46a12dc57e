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

package alu

import (
	"math/bits"

	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
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

// The binary arithmetic tables, indexed by (accumulator<<8)|result. Add and
// Sub serve ADD/CP and the carry-clear halves of ADC/SBC; Adc and Sbc serve
// the carry-set halves.
var (
	Add [0x10000]uint8
	Adc [0x10000]uint8
	Sub [0x10000]uint8
	Sbc [0x10000]uint8
)

// The unary tables, indexed by result.
var (
	SZ    [0x100]uint8 // sign, zero and the undocumented bits
	SZP   [0x100]uint8 // as SZ with parity
	SZBit [0x100]uint8 // BIT semantics. zero doubles as parity
	Inc   [0x100]uint8 // INC r. carry must be merged by the caller
	Dec   [0x100]uint8 // DEC r. carry must be merged by the caller
)

func init() {
	for oldval := 0; oldval < 0x100; oldval++ {
		for newval := 0; newval < 0x100; newval++ {
			szyx := zf
			if newval != 0 {
				szyx = uint8(newval) & sf
			}
			szyx |= uint8(newval) & (yf | xf)

			// add without carry-in. operand recovered from the result
			val := newval - oldval
			f := szyx
			if newval&0x0f < oldval&0x0f {
				f |= hf
			}
			if newval < oldval {
				f |= cf
			}
			if (val^oldval^0x80)&(val^newval)&0x80 != 0 {
				f |= pf
			}
			Add[oldval<<8|newval] = f

			// add with carry-in
			val = newval - oldval - 1
			f = szyx
			if newval&0x0f <= oldval&0x0f {
				f |= hf
			}
			if newval <= oldval {
				f |= cf
			}
			if (val^oldval^0x80)&(val^newval)&0x80 != 0 {
				f |= pf
			}
			Adc[oldval<<8|newval] = f

			// subtract without carry-in
			val = oldval - newval
			f = nf | szyx
			if newval&0x0f > oldval&0x0f {
				f |= hf
			}
			if newval > oldval {
				f |= cf
			}
			if (val^oldval)&(oldval^newval)&0x80 != 0 {
				f |= pf
			}
			Sub[oldval<<8|newval] = f

			// subtract with carry-in
			val = oldval - newval - 1
			f = nf | szyx
			if newval&0x0f >= oldval&0x0f {
				f |= hf
			}
			if newval >= oldval {
				f |= cf
			}
			if (val^oldval)&(oldval^newval)&0x80 != 0 {
				f |= pf
			}
			Sbc[oldval<<8|newval] = f
		}
	}

	for i := 0; i < 0x100; i++ {
		if i != 0 {
			SZ[i] = uint8(i) & sf
			SZBit[i] = uint8(i) & sf
		} else {
			SZ[i] = zf
			SZBit[i] = zf | pf
		}
		SZ[i] |= uint8(i) & (yf | xf)
		SZBit[i] |= uint8(i) & (yf | xf)

		SZP[i] = SZ[i]
		if bits.OnesCount8(uint8(i))&1 == 0 {
			SZP[i] |= pf
		}

		Inc[i] = SZ[i]
		if i == 0x80 {
			Inc[i] |= pf
		}
		if i&0x0f == 0x00 {
			Inc[i] |= hf
		}

		Dec[i] = SZ[i] | nf
		if i == 0x7f {
			Dec[i] |= pf
		}
		if i&0x0f == 0x0f {
			Dec[i] |= hf
		}
	}
}
