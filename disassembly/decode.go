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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherz80/hardware/bus"
	"github.com/jetsetilly/gopherz80/hardware/z80/instructions"
)

// an unbroken run of index prefixes executes as one long instruction. the
// decoder gives up after a few of them rather than walk the whole address
// space looking for the end.
const prefixRunLimit = 8

// Decode disassembles the single instruction at the given address. The walk
// through the prefix bytes mirrors the CPU: the last index prefix before a
// non-prefix byte wins, ED cancels a preceding index prefix, and a CB in the
// index context takes its displacement byte before the operation byte.
func Decode(set *instructions.Set, mem bus.Memory, addr uint16) *Entry {
	prefix := instructions.PrefixNone
	var indexByte uint8
	var raw []uint8

	pc := addr
	read := func() uint8 {
		b := mem.Read(pc)
		pc++
		raw = append(raw, b)
		return b
	}

	var defn *instructions.Defn

	for len(raw) < prefixRunLimit {
		b := read()

		switch prefix {
		case instructions.PrefixNone:
			switch b {
			case instructions.PrefixByteCB:
				prefix = instructions.PrefixCB
				continue
			case instructions.PrefixByteED:
				prefix = instructions.PrefixED
				continue
			case instructions.PrefixByteDD, instructions.PrefixByteFD:
				prefix = instructions.PrefixIndex
				indexByte = b
				continue
			}

		case instructions.PrefixIndex:
			switch b {
			case instructions.PrefixByteDD, instructions.PrefixByteFD:
				indexByte = b
				continue
			case instructions.PrefixByteED:
				prefix = instructions.PrefixED
				indexByte = 0
				continue
			case instructions.PrefixByteCB:
				prefix = instructions.PrefixIndexCB
				_ = read()
				b = read()
			}
		}

		defn = set.Lookup(prefix, b)
		break
	}

	e := &Entry{
		Addr:    addr,
		Defn:    defn,
		Raw:     raw,
		Address: fmt.Sprintf("$%04x", addr),
	}

	// if the definition is nil the decoder gave up on a prefix run. the
	// entry covers just the first byte so that iteration can resume at the
	// next address
	if defn == nil {
		e.Raw = raw[:1]
		e.Operator = "???"
		e.finalise()
		return e
	}

	// operand bytes. in the DDCB form the displacement has already been read
	if prefix != instructions.PrefixIndexCB {
		for i := 0; i < defn.Operand.ByteCount(); i++ {
			read()
		}
	}

	e.Operator, e.Operand = splitMnemonic(defn.Mnemonic)
	e.Operand = e.substitute(indexByte)
	e.finalise()

	return e
}

// splitMnemonic divides a mnemonic into its operator and operand parts.
func splitMnemonic(m string) (string, string) {
	if i := strings.IndexRune(m, ' '); i != -1 {
		return m[:i], m[i+1:]
	}
	return m, ""
}

// substitute replaces the operand tokens in the mnemonic with the values
// read from memory. The tokens are the only lower case letters a mnemonic
// can contain so plain string replacement is safe.
func (e *Entry) substitute(indexByte uint8) string {
	s := e.Operand
	if s == "" {
		return s
	}

	var pairs []string

	if indexByte != 0 {
		xy := "IX"
		if indexByte == instructions.PrefixByteFD {
			xy = "IY"
		}
		pairs = append(pairs, "IXYH", xy+"H", "IXYL", xy+"L", "IXY", xy)
	}

	switch e.Defn.Operand {
	case instructions.OperandImm8:
		pairs = append(pairs, "n", fmt.Sprintf("$%02x", e.Raw[len(e.Raw)-1]))

	case instructions.OperandImm16:
		nn := uint16(e.Raw[len(e.Raw)-2]) | uint16(e.Raw[len(e.Raw)-1])<<8
		pairs = append(pairs, "nn", fmt.Sprintf("$%04x", nn))

	case instructions.OperandRel8:
		// relative jumps are shown with the destination address rather than
		// the offset. the offset is relative to the following instruction
		dest := e.Addr + uint16(len(e.Raw)) + uint16(int8(e.Raw[len(e.Raw)-1]))
		pairs = append(pairs, "e", fmt.Sprintf("$%04x", dest))

	case instructions.OperandDisp:
		// the displacement precedes the operation byte in the DDCB form
		d := e.Raw[len(e.Raw)-1]
		if e.Defn.Prefix == instructions.PrefixIndexCB {
			d = e.Raw[len(e.Raw)-2]
		}
		pairs = append(pairs, "+d", signedDisp(d))

	case instructions.OperandDispImm8:
		pairs = append(pairs, "+d", signedDisp(e.Raw[len(e.Raw)-2]),
			"n", fmt.Sprintf("$%02x", e.Raw[len(e.Raw)-1]))
	}

	if len(pairs) == 0 {
		return s
	}

	return strings.NewReplacer(pairs...).Replace(s)
}

// signedDisp formats an index displacement byte with its sign.
func signedDisp(d uint8) string {
	if d&0x80 == 0x80 {
		return fmt.Sprintf("-$%02x", uint8(-int8(d)))
	}
	return fmt.Sprintf("+$%02x", d)
}
