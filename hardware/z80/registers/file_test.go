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

package registers_test

import (
	"testing"

	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
	"github.com/jetsetilly/gopherz80/test"
)

func TestPair(t *testing.T) {
	p := registers.Pair{}
	p.SetWord(0x1234)
	test.Equate(t, p.Hi, 0x12)
	test.Equate(t, p.Lo, 0x34)
	test.Equate(t, p.Word(), 0x1234)

	p.Inc()
	test.Equate(t, p.Word(), 0x1235)

	p.SetWord(0xffff)
	p.Inc()
	test.Equate(t, p.Word(), 0x0000)

	p.Dec()
	test.Equate(t, p.Word(), 0xffff)

	test.Equate(t, p.String(), "ffff")
}

func TestSelectorResolution(t *testing.T) {
	f := registers.NewFile()
	f.HL.SetWord(0x1111)
	f.IX.SetWord(0x2222)
	f.IY.SetWord(0x3333)

	v, ok := f.Get16(registers.IdxHL)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, v, 0x1111)

	f.Selector = registers.SelIX
	v, _ = f.Get16(registers.IdxHL)
	test.Equate(t, v, 0x2222)

	v8, _ := f.Get8(registers.IdxH)
	test.Equate(t, v8, 0x22)

	f.Selector = registers.SelIY
	v8, _ = f.Get8(registers.IdxL)
	test.Equate(t, v8, 0x33)

	// concrete identifiers bypass the selector
	v, _ = f.Get16(registers.HL)
	test.Equate(t, v, 0x1111)
	v8, _ = f.Get8(registers.H)
	test.Equate(t, v8, 0x11)

	// writing through a virtual identifier reaches the selected register
	f.Set8(registers.IdxH, 0x99)
	test.Equate(t, f.IY.Hi, 0x99)
	test.Equate(t, f.HL.Hi, 0x11)
}

func TestInvalidIdentifiers(t *testing.T) {
	f := registers.NewFile()

	_, ok := f.Get8(registers.Reg8(100))
	test.ExpectedFailure(t, ok)

	_, ok = f.Get16(registers.Reg16(100))
	test.ExpectedFailure(t, ok)

	test.ExpectedFailure(t, f.Set8(registers.Reg8(-1), 0))
}

func TestSwaps(t *testing.T) {
	f := registers.NewFile()
	f.AF.SetWord(0x1234)
	f.AF2.SetWord(0x5678)
	f.BC.SetWord(0x1111)
	f.DE.SetWord(0x2222)
	f.HL.SetWord(0x3333)
	f.BC2.SetWord(0x4444)
	f.DE2.SetWord(0x5555)
	f.HL2.SetWord(0x6666)

	f.SwapAF()
	test.Equate(t, f.AF.Word(), 0x5678)
	test.Equate(t, f.AF2.Word(), 0x1234)

	f.SwapBCDEHL()
	test.Equate(t, f.BC.Word(), 0x4444)
	test.Equate(t, f.DE.Word(), 0x5555)
	test.Equate(t, f.HL.Word(), 0x6666)

	// a second application restores the original arrangement
	f.SwapAF()
	f.SwapBCDEHL()
	test.Equate(t, f.AF.Word(), 0x1234)
	test.Equate(t, f.BC.Word(), 0x1111)
	test.Equate(t, f.DE.Word(), 0x2222)
	test.Equate(t, f.HL.Word(), 0x3333)
}

func TestRefreshCounter(t *testing.T) {
	f := registers.NewFile()

	f.R = 0x7f
	f.IncR()
	test.Equate(t, f.R, 0x00)

	// bit 7 is not part of the counter
	f.R = 0xff
	f.IncR()
	test.Equate(t, f.R, 0x80)

	f.I = 0x40
	f.R = 0x12
	test.Equate(t, f.Refresh(), 0x4012)
}

func TestReset(t *testing.T) {
	f := registers.NewFile()
	f.PC.SetWord(0x1234)
	f.I = 0x56
	f.R = 0x78
	f.Selector = registers.SelIX
	f.BC.SetWord(0xabcd)

	f.Reset()
	test.Equate(t, f.PC.Word(), 0x0000)
	test.Equate(t, f.AF.Word(), 0xffff)
	test.Equate(t, f.SP.Word(), 0xffff)
	test.Equate(t, f.I, 0x00)
	test.Equate(t, f.R, 0x00)
	test.Equate(t, f.Selector == registers.SelHL, true)

	// registers that are unspecified on real hardware are left alone
	test.Equate(t, f.BC.Word(), 0xabcd)
}
