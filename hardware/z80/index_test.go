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

package z80_test

import (
	"testing"

	"github.com/jetsetilly/gopherz80/hardware/z80"
	"github.com/jetsetilly/gopherz80/hardware/z80/execution"
	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
	"github.com/jetsetilly/gopherz80/test"
)

// rawStep is step without the validity check. prefix chains execute
// correctly but their byte and cycle counts exceed the canonical encoding
// recorded in the definition.
func rawStep(t *testing.T, mc *z80.CPU) execution.Result {
	t.Helper()
	if err := mc.StepInstruction(); err != nil {
		t.Fatal(err)
	}
	return mc.LastResult
}

func TestIndexLoads(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD IX,4000h; LD A,(IX+2); LD HL,5000h; LD A,(HL)
	mem.putInstructions(0x0000,
		0xdd, 0x21, 0x00, 0x40,
		0xdd, 0x7e, 0x02,
		0x21, 0x00, 0x50,
		0x7e)
	mem.putInstructions(0x4002, 0x99)
	mem.putInstructions(0x5000, 0x77)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD IXY,nn")
	test.Equate(t, r.Cycles, 14)
	test.Equate(t, r.ByteCount, 4)
	test.Equate(t, mc.Regs.IX.Word(), 0x4000)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD A,(IXY+d)")
	test.Equate(t, r.Cycles, 19)
	test.Equate(t, r.ByteCount, 3)
	test.Equate(t, mc.Regs.AF.Hi, 0x99)
	test.Equate(t, mc.Regs.WZ.Word(), 0x4002)

	// the prefix does not leak into the following instructions
	test.Equate(t, mc.Regs.Selector == registers.SelHL, true)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 7)
	test.Equate(t, mc.Regs.AF.Hi, 0x77)
	test.Equate(t, mc.Regs.HL.Word(), 0x5000)
	test.Equate(t, mc.Regs.IX.Word(), 0x4000)
}

func TestIndexByteRegisters(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD IXH,11h; LD IXL,22h; LD A,IXH; LD B,IXH; ADD IX,IX; LD IY,1234h; LD A,IYL
	mem.putInstructions(0x0000,
		0xdd, 0x26, 0x11,
		0xdd, 0x2e, 0x22,
		0xdd, 0x7c,
		0xdd, 0x44,
		0xdd, 0x29,
		0xfd, 0x21, 0x34, 0x12,
		0xfd, 0x7d)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD IXYH,n")
	test.Equate(t, r.Cycles, 11)
	test.Equate(t, mc.Regs.IX.Hi, 0x11)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 11)
	test.Equate(t, mc.Regs.IX.Word(), 0x1122)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD A,IXYH")
	test.Equate(t, r.Cycles, 8)
	test.Equate(t, mc.Regs.AF.Hi, 0x11)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 8)
	test.Equate(t, mc.Regs.BC.Hi, 0x11)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "ADD IXY,IXY")
	test.Equate(t, r.Cycles, 15)
	test.Equate(t, mc.Regs.IX.Word(), 0x2244)
	test.Equate(t, mc.Regs.WZ.Word(), 0x1123)

	// the same table serves the FD prefix through the selector
	r = step(t, mc)
	test.Equate(t, r.Cycles, 14)
	test.Equate(t, mc.Regs.IY.Word(), 0x1234)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD A,IXYL")
	test.Equate(t, mc.Regs.AF.Hi, 0x34)
	test.Equate(t, mc.Regs.IX.Word(), 0x2244)
}

func TestIndexMemoryCells(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD IX,0200h; LD (IX+5),5Ah; INC (IX+5); SUB (IX+5)
	mem.putInstructions(0x0000,
		0xdd, 0x21, 0x00, 0x02,
		0xdd, 0x36, 0x05, 0x5a,
		0xdd, 0x34, 0x05,
		0xdd, 0x96, 0x05)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD (IXY+d),n")
	test.Equate(t, r.Cycles, 19)
	test.Equate(t, r.ByteCount, 4)
	mem.assert(t, 0x0205, 0x5a)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "INC (IXY+d)")
	test.Equate(t, r.Cycles, 23)
	mem.assert(t, 0x0205, 0x5b)
	test.Equate(t, mc.Regs.WZ.Word(), 0x0205)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 19)
	test.Equate(t, mc.Regs.AF.Hi, 0xa4)
}

func TestIndexStackAndExchange(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD IX,0200h; PUSH IX; POP IY; LD SP,IX; EX (SP),IX
	mem.putInstructions(0x0000,
		0xdd, 0x21, 0x00, 0x02,
		0xdd, 0xe5,
		0xfd, 0xe1,
		0xdd, 0xf9,
		0xdd, 0xe3)
	mem.putInstructions(0x0200, 0xcd, 0xab)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "PUSH IXY")
	test.Equate(t, r.Cycles, 15)
	test.Equate(t, mc.Regs.SP.Word(), 0xfffd)
	mem.assert(t, 0xfffe, 0x02)
	mem.assert(t, 0xfffd, 0x00)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "POP IXY")
	test.Equate(t, r.Cycles, 14)
	test.Equate(t, mc.Regs.IY.Word(), 0x0200)
	test.Equate(t, mc.Regs.SP.Word(), 0xffff)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 10)
	test.Equate(t, mc.Regs.SP.Word(), 0x0200)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "EX (SP),IXY")
	test.Equate(t, r.Cycles, 23)
	test.Equate(t, mc.Regs.IX.Word(), 0xabcd)
	test.Equate(t, mc.Regs.SP.Word(), 0x0200)
	mem.assert(t, 0x0200, 0x00)
	mem.assert(t, 0x0201, 0x02)
}

func TestIndexJump(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD IY,0040h; JP (IY)
	mem.putInstructions(0x0000, 0xfd, 0x21, 0x40, 0x00, 0xfd, 0xe9)
	mem.putInstructions(0x0040, 0x00)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "JP (IXY)")
	test.Equate(t, r.Cycles, 8)
	test.Equate(t, mc.Regs.PC.Word(), 0x0040)
}

func TestIndexBitOperations(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD IX,0300h; BIT 0,(IX+5); SET 7,(IX+5); RLC (IX+5); RES 2,(IX+5),B
	mem.putInstructions(0x0000,
		0xdd, 0x21, 0x00, 0x03,
		0xdd, 0xcb, 0x05, 0x46,
		0xdd, 0xcb, 0x05, 0xfe,
		0xdd, 0xcb, 0x05, 0x06,
		0xdd, 0xcb, 0x05, 0x90)
	mem.putInstructions(0x0305, 0x01)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "BIT 0,(IXY+d)")
	test.Equate(t, r.Cycles, 20)
	test.Equate(t, r.ByteCount, 4)
	test.Equate(t, mc.Regs.AF.Lo&0x40, 0x00)
	test.Equate(t, mc.Regs.WZ.Word(), 0x0305)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "SET 7,(IXY+d)")
	test.Equate(t, r.Cycles, 23)
	mem.assert(t, 0x0305, 0x81)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 23)
	mem.assert(t, 0x0305, 0x03)
	test.Equate(t, mc.Regs.AF.Lo&0x01, 0x01)

	// the register column variants copy the result to the register
	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "RES 2,(IXY+d),B")
	test.Equate(t, r.Cycles, 23)
	mem.assert(t, 0x0305, 0x03)
	test.Equate(t, mc.Regs.BC.Hi, 0x03)
}

func TestPrefixChains(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// repeated and mixed prefixes. the last one decides the register and
	// each extra prefix costs a fetch, so the canonical validity check
	// does not apply
	mem.putInstructions(0x0000,
		0xdd, 0x21, 0x00, 0x04, // LD IX,0400h
		0xfd, 0x21, 0x00, 0x05, // LD IY,0500h
		0xdd, 0xdd, 0x7e, 0x02, // DD DD: LD A,(IX+2)
		0xdd, 0xfd, 0x7e, 0x02, // DD FD: LD A,(IY+2)
		0xfd, 0xed, 0x44) // FD ED: plain NEG. ED forgets the index prefix
	mem.putInstructions(0x0402, 0x66)
	mem.putInstructions(0x0502, 0x88)

	step(t, mc)
	step(t, mc)

	r := rawStep(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD A,(IXY+d)")
	test.Equate(t, r.Cycles, 23)
	test.Equate(t, r.ByteCount, 4)
	test.Equate(t, mc.Regs.AF.Hi, 0x66)

	r = rawStep(t, mc)
	test.Equate(t, r.Cycles, 23)
	test.Equate(t, mc.Regs.AF.Hi, 0x88)

	r = rawStep(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "NEG")
	test.Equate(t, r.Cycles, 12)
	test.Equate(t, r.ByteCount, 3)
	test.Equate(t, mc.Regs.AF.Hi, 0x78)
	test.Equate(t, mc.Regs.Selector == registers.SelHL, true)
}
