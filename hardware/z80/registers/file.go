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

package registers

import (
	"fmt"
	"strings"
)

// Reg8 identifies one of the 8-bit registers in the file. IdxH and IdxL are
// virtual identifiers that resolve through the file's Selector.
type Reg8 int

// The 8-bit register identifiers.
const (
	A Reg8 = iota
	F
	B
	C
	D
	E
	H
	L
	IXH
	IXL
	IYH
	IYL
	W
	Z
	I
	R
	SPH
	SPL
	PCH
	PCL
	IdxH
	IdxL
)

func (r Reg8) String() string {
	switch r {
	case A:
		return "A"
	case F:
		return "F"
	case B:
		return "B"
	case C:
		return "C"
	case D:
		return "D"
	case E:
		return "E"
	case H:
		return "H"
	case L:
		return "L"
	case IXH:
		return "IXH"
	case IXL:
		return "IXL"
	case IYH:
		return "IYH"
	case IYL:
		return "IYL"
	case W:
		return "W"
	case Z:
		return "Z"
	case I:
		return "I"
	case R:
		return "R"
	case SPH:
		return "SPH"
	case SPL:
		return "SPL"
	case PCH:
		return "PCH"
	case PCL:
		return "PCL"
	case IdxH:
		return "IdxH"
	case IdxL:
		return "IdxL"
	}
	return fmt.Sprintf("Reg8(%d)", int(r))
}

// Reg16 identifies one of the 16-bit register pairs in the file. IdxHL is a
// virtual identifier that resolves through the file's Selector.
type Reg16 int

// The 16-bit register identifiers.
const (
	AF Reg16 = iota
	BC
	DE
	HL
	IX
	IY
	SP
	PC
	WZ
	IdxHL
)

func (r Reg16) String() string {
	switch r {
	case AF:
		return "AF"
	case BC:
		return "BC"
	case DE:
		return "DE"
	case HL:
		return "HL"
	case IX:
		return "IX"
	case IY:
		return "IY"
	case SP:
		return "SP"
	case PC:
		return "PC"
	case WZ:
		return "WZ"
	case IdxHL:
		return "IdxHL"
	}
	return fmt.Sprintf("Reg16(%d)", int(r))
}

// Selector records which register the virtual identifiers IdxHL, IdxH and
// IdxL currently resolve to. It is switched by the DD and FD instruction
// prefixes and reset at every instruction boundary.
type Selector int

// Valid Selector values.
const (
	SelHL Selector = iota
	SelIX
	SelIY
)

func (s Selector) String() string {
	switch s {
	case SelHL:
		return "HL"
	case SelIX:
		return "IX"
	case SelIY:
		return "IY"
	}
	return fmt.Sprintf("Selector(%d)", int(s))
}

// File is the complete Z80 register set.
type File struct {
	AF Pair
	BC Pair
	DE Pair
	HL Pair

	// the shadow set. only ever accessed wholesale, through SwapAF and
	// SwapBCDEHL.
	AF2 Pair
	BC2 Pair
	DE2 Pair
	HL2 Pair

	IX Pair
	IY Pair
	SP Pair
	PC Pair

	// WZ is the internal address latch, sometimes referred to as memptr. the
	// undocumented flag bits of BIT n,(HL) are taken from its high byte.
	WZ Pair

	// interrupt vector base and memory refresh counter
	I uint8
	R uint8

	// Selector resolves the virtual Idx identifiers
	Selector Selector
}

// NewFile is the preferred method of initialisation for the register file.
func NewFile() *File {
	f := &File{}
	f.Reset()
	return f
}

// Reset puts the file into the state the silicon guarantees after a reset
// pulse. AF and SP reset high, the program counter and interrupt registers
// reset to zero and the prefix selector reverts to HL. The remaining
// registers are unspecified on real hardware and are left untouched here.
func (f *File) Reset() {
	f.AF.SetWord(0xffff)
	f.SP.SetWord(0xffff)
	f.PC.SetWord(0x0000)
	f.WZ.SetWord(0x0000)
	f.I = 0
	f.R = 0
	f.Selector = SelHL
}

// Ptr8 returns a pointer to the storage for an 8-bit register, resolving the
// virtual identifiers through the Selector. Returns false if the identifier
// is not a valid register.
func (f *File) Ptr8(r Reg8) (*uint8, bool) {
	switch r {
	case A:
		return &f.AF.Hi, true
	case F:
		return &f.AF.Lo, true
	case B:
		return &f.BC.Hi, true
	case C:
		return &f.BC.Lo, true
	case D:
		return &f.DE.Hi, true
	case E:
		return &f.DE.Lo, true
	case H:
		return &f.HL.Hi, true
	case L:
		return &f.HL.Lo, true
	case IXH:
		return &f.IX.Hi, true
	case IXL:
		return &f.IX.Lo, true
	case IYH:
		return &f.IY.Hi, true
	case IYL:
		return &f.IY.Lo, true
	case W:
		return &f.WZ.Hi, true
	case Z:
		return &f.WZ.Lo, true
	case I:
		return &f.I, true
	case R:
		return &f.R, true
	case SPH:
		return &f.SP.Hi, true
	case SPL:
		return &f.SP.Lo, true
	case PCH:
		return &f.PC.Hi, true
	case PCL:
		return &f.PC.Lo, true
	case IdxH:
		p, _ := f.Pair16(IdxHL)
		return &p.Hi, true
	case IdxL:
		p, _ := f.Pair16(IdxHL)
		return &p.Lo, true
	}
	return nil, false
}

// Get8 returns the value of an 8-bit register. Returns false if the
// identifier is not a valid register.
func (f *File) Get8(r Reg8) (uint8, bool) {
	p, ok := f.Ptr8(r)
	if !ok {
		return 0, false
	}
	return *p, true
}

// Set8 sets the value of an 8-bit register. Returns false if the identifier
// is not a valid register.
func (f *File) Set8(r Reg8, v uint8) bool {
	p, ok := f.Ptr8(r)
	if !ok {
		return false
	}
	*p = v
	return true
}

// Pair16 returns a pointer to the Pair backing a 16-bit register, resolving
// IdxHL through the Selector. Returns false if the identifier is not a valid
// register.
func (f *File) Pair16(r Reg16) (*Pair, bool) {
	switch r {
	case AF:
		return &f.AF, true
	case BC:
		return &f.BC, true
	case DE:
		return &f.DE, true
	case HL:
		return &f.HL, true
	case IX:
		return &f.IX, true
	case IY:
		return &f.IY, true
	case SP:
		return &f.SP, true
	case PC:
		return &f.PC, true
	case WZ:
		return &f.WZ, true
	case IdxHL:
		switch f.Selector {
		case SelIX:
			return &f.IX, true
		case SelIY:
			return &f.IY, true
		}
		return &f.HL, true
	}
	return nil, false
}

// Get16 returns the value of a 16-bit register. Returns false if the
// identifier is not a valid register.
func (f *File) Get16(r Reg16) (uint16, bool) {
	p, ok := f.Pair16(r)
	if !ok {
		return 0, false
	}
	return p.Word(), true
}

// Set16 sets the value of a 16-bit register. Returns false if the identifier
// is not a valid register.
func (f *File) Set16(r Reg16, v uint16) bool {
	p, ok := f.Pair16(r)
	if !ok {
		return false
	}
	p.SetWord(v)
	return true
}

// Flags returns the F register as a Flags value.
func (f *File) Flags() Flags {
	return Flags(f.AF.Lo)
}

// SetFlags sets the F register from a Flags value.
func (f *File) SetFlags(fl Flags) {
	f.AF.Lo = uint8(fl)
}

// SwapAF exchanges AF with its shadow. the EX AF,AF' instruction.
func (f *File) SwapAF() {
	f.AF, f.AF2 = f.AF2, f.AF
}

// SwapBCDEHL exchanges BC, DE and HL with their shadows. the EXX instruction.
func (f *File) SwapBCDEHL() {
	f.BC, f.BC2 = f.BC2, f.BC
	f.DE, f.DE2 = f.DE2, f.DE
	f.HL, f.HL2 = f.HL2, f.HL
}

// IncR advances the refresh counter. only the low seven bits count; bit 7
// keeps whatever LD R,A last put there.
func (f *File) IncR() {
	f.R = (f.R & 0x80) | ((f.R + 1) & 0x7f)
}

// Refresh returns the address placed on the bus during the refresh portion of
// an opcode fetch. the I register supplies the high byte and R the low.
func (f *File) Refresh() uint16 {
	return uint16(f.I)<<8 | uint16(f.R)
}

func (f *File) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("AF=%v BC=%v DE=%v HL=%v IX=%v IY=%v\n", f.AF, f.BC, f.DE, f.HL, f.IX, f.IY))
	s.WriteString(fmt.Sprintf("AF'%v BC'%v DE'%v HL'%v SP=%v PC=%v\n", f.AF2, f.BC2, f.DE2, f.HL2, f.SP, f.PC))
	s.WriteString(fmt.Sprintf("WZ=%v I=%02x R=%02x [%v] %v", f.WZ, f.I, f.R, f.Selector, f.Flags()))
	return s.String()
}
