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
	"github.com/jetsetilly/gopherz80/test"
)

type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	mem := &mockMem{}
	mem.internal = make([]uint8, 0x10000)
	return mem
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.Write(origin+uint16(i), b)
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) assert(t *testing.T, address uint16, value uint8) {
	t.Helper()
	test.Equate(t, mem.internal[address], int(value))
}

func (mem *mockMem) Read(address uint16) uint8 {
	return mem.internal[address]
}

func (mem *mockMem) Write(address uint16, data uint8) {
	mem.internal[address] = data
}

type portWrite struct {
	port uint16
	data uint8
}

// mockIO serves reads from a port table and records every write.
type mockIO struct {
	ports  map[uint16]uint8
	writes []portWrite
}

func newMockIO() *mockIO {
	return &mockIO{ports: make(map[uint16]uint8)}
}

func (io *mockIO) Read(port uint16) uint8 {
	if v, ok := io.ports[port]; ok {
		return v
	}
	return 0xff
}

func (io *mockIO) Write(port uint16, data uint8) {
	io.writes = append(io.writes, portWrite{port: port, data: data})
}

func newTestCPU() (*z80.CPU, *mockMem, *mockIO) {
	mem := newMockMem()
	io := newMockIO()
	return z80.New(mem, io), mem, io
}

func step(t *testing.T, mc *z80.CPU) execution.Result {
	t.Helper()
	if err := mc.StepInstruction(); err != nil {
		t.Fatal(err)
	}
	if err := mc.LastResult.IsValid(); err != nil {
		t.Fatal(err)
	}
	return mc.LastResult
}

func TestImmediateLoadAndAdd(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD A,5; ADD A,3
	mem.putInstructions(0x0000, 0x3e, 0x05, 0xc6, 0x03)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD A,n")
	test.Equate(t, r.Cycles, 7)
	test.Equate(t, r.ByteCount, 2)
	test.Equate(t, r.InstructionData, 0x05)
	test.Equate(t, mc.Regs.AF.Hi, 5)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "ADD A,n")
	test.Equate(t, r.Cycles, 7)
	test.Equate(t, mc.Regs.AF.Hi, 8)
	test.Equate(t, mc.Regs.AF.Lo, 0x08)
	test.Equate(t, mc.Regs.PC.Word(), 0x0004)
}

func TestRegisterTraffic(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD B,42h; LD C,B; LD HL,1000h; LD (HL),B; LD A,(HL)
	mem.putInstructions(0x0000, 0x06, 0x42, 0x48, 0x21, 0x00, 0x10, 0x70, 0x7e)

	r := step(t, mc)
	test.Equate(t, r.Cycles, 7)
	test.Equate(t, mc.Regs.BC.Hi, 0x42)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 4)
	test.Equate(t, mc.Regs.BC.Lo, 0x42)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 10)
	test.Equate(t, mc.Regs.HL.Word(), 0x1000)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD (HL),B")
	test.Equate(t, r.Cycles, 7)
	mem.assert(t, 0x1000, 0x42)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 7)
	test.Equate(t, mc.Regs.AF.Hi, 0x42)
}

func TestSixteenBitArithmetic(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD BC,1234h; INC BC; LD HL,00FFh; ADD HL,BC; LD SP,HL; INC SP; DEC BC
	mem.putInstructions(0x0000,
		0x01, 0x34, 0x12,
		0x03,
		0x21, 0xff, 0x00,
		0x09,
		0xf9,
		0x33,
		0x0b)

	r := step(t, mc)
	test.Equate(t, r.Cycles, 10)
	test.Equate(t, mc.Regs.BC.Word(), 0x1234)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 6)
	test.Equate(t, mc.Regs.BC.Word(), 0x1235)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "ADD HL,BC")
	test.Equate(t, r.Cycles, 11)
	test.Equate(t, mc.Regs.HL.Word(), 0x1334)
	test.Equate(t, mc.Regs.WZ.Word(), 0x0100)
	test.Equate(t, mc.Regs.AF.Lo, 0xc4)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 6)
	test.Equate(t, mc.Regs.SP.Word(), 0x1334)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 6)
	test.Equate(t, mc.Regs.SP.Word(), 0x1335)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 6)
	test.Equate(t, mc.Regs.BC.Word(), 0x1234)
}

func TestAbsoluteLoads(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD A,9Ah; LD (2834h),A; LD A,0; LD A,(2834h);
	// LD HL,1234h; LD (0300h),HL; LD HL,0; LD HL,(0300h)
	mem.putInstructions(0x0000,
		0x3e, 0x9a,
		0x32, 0x34, 0x28,
		0x3e, 0x00,
		0x3a, 0x34, 0x28,
		0x21, 0x34, 0x12,
		0x22, 0x00, 0x03,
		0x21, 0x00, 0x00,
		0x2a, 0x00, 0x03)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD (nn),A")
	test.Equate(t, r.Cycles, 13)
	mem.assert(t, 0x2834, 0x9a)

	// the address latch takes the accumulator in its high byte
	test.Equate(t, mc.Regs.WZ.Word(), 0x9a35)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 13)
	test.Equate(t, mc.Regs.AF.Hi, 0x9a)
	test.Equate(t, mc.Regs.WZ.Word(), 0x2835)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 16)
	mem.assert(t, 0x0300, 0x34)
	mem.assert(t, 0x0301, 0x12)
	test.Equate(t, mc.Regs.WZ.Word(), 0x0301)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 16)
	test.Equate(t, mc.Regs.HL.Word(), 0x1234)
}

func TestJumpsCallsAndReturns(t *testing.T) {
	mc, mem, _ := newTestCPU()

	mem.putInstructions(0x0000,
		0xaf, // 0000 XOR A
		0x20, 0x02, // 0001 JR NZ,+2 (not taken)
		0x28, 0x01, // 0003 JR Z,+1 (taken)
		0x00,             // 0005 skipped
		0xc3, 0x0c, 0x00, // 0006 JP 000Ch
	)
	mem.putInstructions(0x000c, 0xcd, 0x14, 0x00) // 000c CALL 0014h
	mem.putInstructions(0x0014, 0xc9)             // 0014 RET
	mem.putInstructions(0x000f, 0xe7)             // 000f RST 20H
	mem.putInstructions(0x0020, 0xc0, 0xc8)       // 0020 RET NZ; RET Z

	r := step(t, mc) // XOR A
	test.Equate(t, mc.Regs.AF.Hi, 0)
	test.Equate(t, mc.Regs.AF.Lo, 0x44)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 7)
	test.Equate(t, r.BranchSuccess, false)
	test.Equate(t, mc.Regs.PC.Word(), 0x0003)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 12)
	test.Equate(t, r.BranchSuccess, true)
	test.Equate(t, mc.Regs.PC.Word(), 0x0006)
	test.Equate(t, mc.Regs.WZ.Word(), 0x0006)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "JP nn")
	test.Equate(t, r.Cycles, 10)
	test.Equate(t, mc.Regs.PC.Word(), 0x000c)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "CALL nn")
	test.Equate(t, r.Cycles, 17)
	test.Equate(t, mc.Regs.PC.Word(), 0x0014)
	test.Equate(t, mc.Regs.SP.Word(), 0xfffd)
	mem.assert(t, 0xfffe, 0x00)
	mem.assert(t, 0xfffd, 0x0f)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 10)
	test.Equate(t, mc.Regs.PC.Word(), 0x000f)
	test.Equate(t, mc.Regs.SP.Word(), 0xffff)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "RST 20H")
	test.Equate(t, r.Cycles, 11)
	test.Equate(t, mc.Regs.PC.Word(), 0x0020)
	mem.assert(t, 0xfffd, 0x10)

	r = step(t, mc) // RET NZ with Z set
	test.Equate(t, r.Cycles, 5)
	test.Equate(t, r.BranchSuccess, false)
	test.Equate(t, mc.Regs.PC.Word(), 0x0021)

	r = step(t, mc) // RET Z
	test.Equate(t, r.Cycles, 11)
	test.Equate(t, r.BranchSuccess, true)
	test.Equate(t, mc.Regs.PC.Word(), 0x0010)
	test.Equate(t, mc.Regs.SP.Word(), 0xffff)
}

func TestDJNZ(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD B,2; DJNZ self
	mem.putInstructions(0x0000, 0x06, 0x02, 0x10, 0xfe)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "DJNZ e")
	test.Equate(t, r.Cycles, 13)
	test.Equate(t, r.BranchSuccess, true)
	test.Equate(t, mc.Regs.BC.Hi, 1)
	test.Equate(t, mc.Regs.PC.Word(), 0x0002)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 8)
	test.Equate(t, r.BranchSuccess, false)
	test.Equate(t, mc.Regs.BC.Hi, 0)
	test.Equate(t, mc.Regs.PC.Word(), 0x0004)
}

func TestConditionalCall(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// XOR A; CALL NZ,0020h (not taken); CALL Z,0020h (taken)
	mem.putInstructions(0x0000, 0xaf, 0xc4, 0x20, 0x00, 0xcc, 0x20, 0x00)
	mem.putInstructions(0x0020, 0x00)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Cycles, 10)
	test.Equate(t, r.BranchSuccess, false)
	test.Equate(t, mc.Regs.PC.Word(), 0x0004)
	test.Equate(t, mc.Regs.SP.Word(), 0xffff)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 17)
	test.Equate(t, r.BranchSuccess, true)
	test.Equate(t, mc.Regs.PC.Word(), 0x0020)
	mem.assert(t, 0xfffd, 0x07)
}

func TestStackAndExchanges(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD BC,1122h; PUSH BC; POP DE; LD HL,3344h; EX DE,HL
	mem.putInstructions(0x0000,
		0x01, 0x22, 0x11,
		0xc5,
		0xd1,
		0x21, 0x44, 0x33,
		0xeb)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Cycles, 11)
	test.Equate(t, mc.Regs.SP.Word(), 0xfffd)
	mem.assert(t, 0xfffe, 0x11)
	mem.assert(t, 0xfffd, 0x22)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 10)
	test.Equate(t, mc.Regs.DE.Word(), 0x1122)
	test.Equate(t, mc.Regs.SP.Word(), 0xffff)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 4)
	test.Equate(t, mc.Regs.DE.Word(), 0x3344)
	test.Equate(t, mc.Regs.HL.Word(), 0x1122)
}

func TestExchangeTopOfStack(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD SP,FFF0h; LD HL,AABBh; PUSH HL; LD HL,CCDDh; EX (SP),HL; POP BC
	mem.putInstructions(0x0000,
		0x31, 0xf0, 0xff,
		0x21, 0xbb, 0xaa,
		0xe5,
		0x21, 0xdd, 0xcc,
		0xe3,
		0xc1)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "EX (SP),HL")
	test.Equate(t, r.Cycles, 19)
	test.Equate(t, mc.Regs.HL.Word(), 0xaabb)
	test.Equate(t, mc.Regs.SP.Word(), 0xffee)
	mem.assert(t, 0xffee, 0xdd)
	mem.assert(t, 0xffef, 0xcc)

	r = step(t, mc)
	test.Equate(t, mc.Regs.BC.Word(), 0xccdd)
	test.Equate(t, mc.Regs.SP.Word(), 0xfff0)
}

func TestIndirectJumpAndStackPointer(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD HL,0040h; LD SP,HL; JP (HL)
	mem.putInstructions(0x0000, 0x21, 0x40, 0x00, 0xf9, 0xe9)
	mem.putInstructions(0x0040, 0x00)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Cycles, 6)
	test.Equate(t, mc.Regs.SP.Word(), 0x0040)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "JP (HL)")
	test.Equate(t, r.Cycles, 4)
	test.Equate(t, mc.Regs.PC.Word(), 0x0040)
}

func TestIndirectMemoryCells(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD HL,0500h; LD (HL),41h; INC (HL); DEC (HL);
	// LD BC,0501h; LD A,77h; LD (BC),A; LD A,(BC)
	mem.putInstructions(0x0000,
		0x21, 0x00, 0x05,
		0x36, 0x41,
		0x34,
		0x35,
		0x01, 0x01, 0x05,
		0x3e, 0x77,
		0x02,
		0x0a)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Cycles, 10)
	mem.assert(t, 0x0500, 0x41)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "INC (HL)")
	test.Equate(t, r.Cycles, 11)
	mem.assert(t, 0x0500, 0x42)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 11)
	mem.assert(t, 0x0500, 0x41)

	step(t, mc)
	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD (BC),A")
	test.Equate(t, r.Cycles, 7)
	mem.assert(t, 0x0501, 0x77)
	test.Equate(t, mc.Regs.WZ.Word(), 0x7702)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 7)
	test.Equate(t, mc.Regs.AF.Hi, 0x77)
	test.Equate(t, mc.Regs.WZ.Word(), 0x0502)
}

func TestRotateInstructions(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD A,81h; RLCA; RRCA; RLA; RRA
	mem.putInstructions(0x0000, 0x3e, 0x81, 0x07, 0x0f, 0x17, 0x1f)

	step(t, mc)

	r := step(t, mc) // RLCA: 81 -> 03, carry set
	test.Equate(t, r.Cycles, 4)
	test.Equate(t, mc.Regs.AF.Hi, 0x03)
	test.Equate(t, mc.Regs.AF.Lo&0x01, 0x01)

	step(t, mc) // RRCA: 03 -> 81, carry set
	test.Equate(t, mc.Regs.AF.Hi, 0x81)
	test.Equate(t, mc.Regs.AF.Lo&0x01, 0x01)

	step(t, mc) // RLA: 81 with carry in -> 03, carry set
	test.Equate(t, mc.Regs.AF.Hi, 0x03)
	test.Equate(t, mc.Regs.AF.Lo&0x01, 0x01)

	step(t, mc) // RRA: 03 with carry in -> 81, carry set
	test.Equate(t, mc.Regs.AF.Hi, 0x81)
	test.Equate(t, mc.Regs.AF.Lo&0x01, 0x01)
}

func TestCBRotatesAndBits(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD B,80h; RLC B; BIT 0,B; SET 7,B; RES 0,B
	mem.putInstructions(0x0000, 0x06, 0x80, 0xcb, 0x00, 0xcb, 0x40, 0xcb, 0xf8, 0xcb, 0x80)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "RLC B")
	test.Equate(t, r.Cycles, 8)
	test.Equate(t, r.ByteCount, 2)
	test.Equate(t, mc.Regs.BC.Hi, 0x01)
	test.Equate(t, mc.Regs.AF.Lo, 0x01)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 8)
	test.Equate(t, mc.Regs.AF.Lo, 0x11)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 8)
	test.Equate(t, mc.Regs.BC.Hi, 0x81)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 8)
	test.Equate(t, mc.Regs.BC.Hi, 0x80)
}

func TestCBMemoryForms(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD HL,0500h; LD (HL),01h; RLC (HL); BIT 1,(HL); SET 7,(HL); RES 1,(HL); SRL (HL)
	mem.putInstructions(0x0000,
		0x21, 0x00, 0x05,
		0x36, 0x01,
		0xcb, 0x06,
		0xcb, 0x4e,
		0xcb, 0xfe,
		0xcb, 0x8e,
		0xcb, 0x3e)

	step(t, mc)
	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "RLC (HL)")
	test.Equate(t, r.Cycles, 15)
	mem.assert(t, 0x0500, 0x02)

	r = step(t, mc) // BIT 1,(HL): bit set, Z clear
	test.Equate(t, r.Cycles, 12)
	test.Equate(t, mc.Regs.AF.Lo&0x40, 0x00)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 15)
	mem.assert(t, 0x0500, 0x82)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 15)
	mem.assert(t, 0x0500, 0x80)

	r = step(t, mc) // SRL (HL): 80 -> 40
	test.Equate(t, r.Cycles, 15)
	mem.assert(t, 0x0500, 0x40)
	test.Equate(t, mc.Regs.AF.Lo&0x01, 0x00)
}

func TestUndocumentedShifts(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD A,80h; SLL A; LD A,81h; SRA A
	mem.putInstructions(0x0000, 0x3e, 0x80, 0xcb, 0x37, 0x3e, 0x81, 0xcb, 0x2f)

	step(t, mc)

	r := step(t, mc) // SLL shifts a one in
	test.Equate(t, r.Defn.Mnemonic, "SLL A")
	test.Equate(t, mc.Regs.AF.Hi, 0x01)
	test.Equate(t, mc.Regs.AF.Lo, 0x01)

	step(t, mc)

	r = step(t, mc) // SRA keeps the sign bit
	test.Equate(t, mc.Regs.AF.Hi, 0xc0)
	test.Equate(t, mc.Regs.AF.Lo, 0x85)
}

func TestExtendedArithmetic(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// XOR A; LD HL,1000h; LD BC,0001h; SBC HL,BC; ADC HL,BC; LD A,1; NEG
	mem.putInstructions(0x0000,
		0xaf,
		0x21, 0x00, 0x10,
		0x01, 0x01, 0x00,
		0xed, 0x42,
		0xed, 0x4a,
		0x3e, 0x01,
		0xed, 0x44)

	step(t, mc)
	step(t, mc)
	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "SBC HL,BC")
	test.Equate(t, r.Cycles, 15)
	test.Equate(t, r.ByteCount, 2)
	test.Equate(t, mc.Regs.HL.Word(), 0x0fff)
	test.Equate(t, mc.Regs.AF.Lo, 0x1a)
	test.Equate(t, mc.Regs.WZ.Word(), 0x1001)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 15)
	test.Equate(t, mc.Regs.HL.Word(), 0x1000)
	test.Equate(t, mc.Regs.AF.Lo, 0x10)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "NEG")
	test.Equate(t, r.Cycles, 8)
	test.Equate(t, mc.Regs.AF.Hi, 0xff)
	test.Equate(t, mc.Regs.AF.Lo, 0xbb)
}

func TestExtendedSixteenBitLoads(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD BC,1234h; LD (0600h),BC; LD BC,0; LD BC,(0600h); LD SP,(0600h)
	mem.putInstructions(0x0000,
		0x01, 0x34, 0x12,
		0xed, 0x43, 0x00, 0x06,
		0x01, 0x00, 0x00,
		0xed, 0x4b, 0x00, 0x06,
		0xed, 0x7b, 0x00, 0x06)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Cycles, 20)
	test.Equate(t, r.ByteCount, 4)
	mem.assert(t, 0x0600, 0x34)
	mem.assert(t, 0x0601, 0x12)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 20)
	test.Equate(t, mc.Regs.BC.Word(), 0x1234)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 20)
	test.Equate(t, mc.Regs.SP.Word(), 0x1234)
}

func TestNibbleRotates(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD HL,0600h; LD (HL),20h; LD A,84h; RRD; RLD
	mem.putInstructions(0x0000,
		0x21, 0x00, 0x06,
		0x36, 0x20,
		0x3e, 0x84,
		0xed, 0x67,
		0xed, 0x6f)

	step(t, mc)
	step(t, mc)
	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "RRD")
	test.Equate(t, r.Cycles, 18)
	test.Equate(t, mc.Regs.AF.Hi, 0x80)
	mem.assert(t, 0x0600, 0x42)
	test.Equate(t, mc.Regs.WZ.Word(), 0x0601)

	// RLD undoes the RRD
	r = step(t, mc)
	test.Equate(t, r.Cycles, 18)
	test.Equate(t, mc.Regs.AF.Hi, 0x84)
	mem.assert(t, 0x0600, 0x20)
}

func TestIOPorts(t *testing.T) {
	mc, mem, io := newTestCPU()

	io.ports[0x1234] = 0x80
	io.ports[0x0599] = 0x77

	// LD BC,1234h; IN A,(C); OUT (C),A; LD A,5; IN A,(99h); LD A,12h; OUT (34h),A
	mem.putInstructions(0x0000,
		0x01, 0x34, 0x12,
		0xed, 0x78,
		0xed, 0x79,
		0x3e, 0x05,
		0xdb, 0x99,
		0x3e, 0x12,
		0xd3, 0x34)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "IN A,(C)")
	test.Equate(t, r.Cycles, 12)
	test.Equate(t, mc.Regs.AF.Hi, 0x80)
	test.Equate(t, mc.Regs.AF.Lo&0x80, 0x80)
	test.Equate(t, mc.Regs.WZ.Word(), 0x1235)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 12)
	test.Equate(t, len(io.writes), 1)
	test.Equate(t, io.writes[0].port, 0x1234)
	test.Equate(t, io.writes[0].data, 0x80)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "IN A,(n)")
	test.Equate(t, r.Cycles, 11)
	test.Equate(t, mc.Regs.AF.Hi, 0x77)
	test.Equate(t, mc.Regs.WZ.Word(), 0x059a)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 11)
	test.Equate(t, len(io.writes), 2)
	test.Equate(t, io.writes[1].port, 0x1234)
	test.Equate(t, io.writes[1].data, 0x12)
}

func TestUndocumentedIO(t *testing.T) {
	mc, mem, io := newTestCPU()

	io.ports[0x0105] = 0x00

	// LD BC,0105h; IN F,(C); OUT (C),0
	mem.putInstructions(0x0000, 0x01, 0x05, 0x01, 0xed, 0x70, 0xed, 0x71)

	step(t, mc)

	r := step(t, mc) // flags only, accumulator untouched
	test.Equate(t, r.Defn.Mnemonic, "IN F,(C)")
	test.Equate(t, r.Cycles, 12)
	test.Equate(t, mc.Regs.AF.Hi, 0xff)
	test.Equate(t, mc.Regs.AF.Lo&0x44, 0x44)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "OUT (C),0")
	test.Equate(t, len(io.writes), 1)
	test.Equate(t, io.writes[0].port, 0x0105)
	test.Equate(t, io.writes[0].data, 0x00)
}

func TestBlockTransfer(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD HL,1000h; LD DE,2000h; LD BC,0003h; LDIR
	mem.putInstructions(0x0000,
		0x21, 0x00, 0x10,
		0x11, 0x00, 0x20,
		0x01, 0x03, 0x00,
		0xed, 0xb0)
	mem.putInstructions(0x1000, 0xaa, 0xbb, 0xcc)

	step(t, mc)
	step(t, mc)
	step(t, mc)

	// each pass of a repeating block instruction is a complete execution
	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LDIR")
	test.Equate(t, r.Cycles, 21)
	test.Equate(t, r.BranchSuccess, true)
	test.Equate(t, r.Address, 0x0009)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 21)
	test.Equate(t, mc.Regs.WZ.Word(), 0x000a)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 16)
	test.Equate(t, r.BranchSuccess, false)

	mem.assert(t, 0x2000, 0xaa)
	mem.assert(t, 0x2001, 0xbb)
	mem.assert(t, 0x2002, 0xcc)
	test.Equate(t, mc.Regs.HL.Word(), 0x1003)
	test.Equate(t, mc.Regs.DE.Word(), 0x2003)
	test.Equate(t, mc.Regs.BC.Word(), 0x0000)
	test.Equate(t, mc.Regs.AF.Lo&0x04, 0x00)
	test.Equate(t, mc.Regs.PC.Word(), 0x000b)
}

func TestBlockSearch(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// LD A,BBh; LD HL,1000h; LD BC,0010h; CPIR
	mem.putInstructions(0x0000,
		0x3e, 0xbb,
		0x21, 0x00, 0x10,
		0x01, 0x10, 0x00,
		0xed, 0xb1)
	mem.putInstructions(0x1000, 0xaa, 0xbb, 0xcc)

	step(t, mc)
	step(t, mc)
	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "CPIR")
	test.Equate(t, r.Cycles, 21)

	r = step(t, mc) // match stops the search
	test.Equate(t, r.Cycles, 16)
	test.Equate(t, r.BranchSuccess, false)
	test.Equate(t, mc.Regs.HL.Word(), 0x1002)
	test.Equate(t, mc.Regs.BC.Word(), 0x000e)
	test.Equate(t, mc.Regs.AF.Lo&0x40, 0x40)
	test.Equate(t, mc.Regs.AF.Lo&0x04, 0x04)
}

func TestBlockIO(t *testing.T) {
	mc, mem, io := newTestCPU()

	io.ports[0x0210] = 0x5a

	// LD HL,0800h; LD BC,0210h; INI; LD (HL) holds the read byte.
	// then refill and OUTI from the same cell
	mem.putInstructions(0x0000,
		0x21, 0x00, 0x08,
		0x01, 0x10, 0x02,
		0xed, 0xa2,
		0x2b,       // DEC HL
		0xed, 0xa3) // OUTI

	step(t, mc)
	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "INI")
	test.Equate(t, r.Cycles, 16)
	mem.assert(t, 0x0800, 0x5a)
	test.Equate(t, mc.Regs.HL.Word(), 0x0801)
	test.Equate(t, mc.Regs.BC.Hi, 0x01)
	test.Equate(t, mc.Regs.WZ.Word(), 0x0211)

	step(t, mc)

	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "OUTI")
	test.Equate(t, r.Cycles, 16)
	test.Equate(t, len(io.writes), 1)

	// the port address carries the decremented B
	test.Equate(t, io.writes[0].port, 0x0010)
	test.Equate(t, io.writes[0].data, 0x5a)
	test.Equate(t, mc.Regs.BC.Hi, 0x00)
	test.Equate(t, mc.Regs.AF.Lo&0x40, 0x40)
}

func TestRefreshRegister(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// NOP; NOP; LD A,55h; LD I,A; LD A,I; LD A,R
	mem.putInstructions(0x0000, 0x00, 0x00, 0x3e, 0x55, 0xed, 0x47, 0xed, 0x57, 0xed, 0x5f)

	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.Regs.R, 2)

	step(t, mc)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD I,A")
	test.Equate(t, r.Cycles, 9)
	test.Equate(t, mc.Regs.I, 0x55)

	r = step(t, mc)
	test.Equate(t, r.Cycles, 9)
	test.Equate(t, mc.Regs.AF.Hi, 0x55)

	// every M1 cycle so far has bumped R, including both fetches of the
	// instruction doing the reading
	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD A,R")
	test.Equate(t, mc.Regs.AF.Hi, 9)
}

func TestRunGranularity(t *testing.T) {
	mc, mem, _ := newTestCPU()

	mem.putInstructions(0x0000, 0x00, 0x00) // NOP; NOP

	n, err := mc.Run(3)
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 3)
	test.Equate(t, mc.LastResult.Final, false)
	test.Equate(t, mc.LastResult.Cycles, 3)

	n, err = mc.Run(1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, mc.LastResult.Final, true)
	test.Equate(t, mc.LastResult.Cycles, 4)
	test.ExpectedSuccess(t, mc.LastResult.IsValid())

	// the boundary tick doubles as the first fetch tick of the next
	// instruction
	n, err = mc.Run(4)
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 4)
	test.Equate(t, mc.LastResult.Final, true)
	test.Equate(t, mc.LastResult.Address, 0x0001)
	test.Equate(t, mc.Regs.PC.Word(), 0x0002)
}

func TestWaitStates(t *testing.T) {
	mc, mem, _ := newTestCPU()

	mem.putInstructions(0x0000, 0x00) // NOP

	n, err := mc.Run(3)
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 3)

	// wait freezes the fetch just before its final cycle. machine time
	// passes but the instruction makes no progress
	mc.Sig.SetWait(true)
	n, err = mc.Run(5)
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 5)
	test.Equate(t, mc.LastResult.Final, false)
	test.Equate(t, mc.LastResult.Cycles, 3)

	mc.Sig.SetWait(false)
	_, err = mc.Run(1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, mc.LastResult.Final, true)
	test.Equate(t, mc.LastResult.Cycles, 4)
	test.ExpectedSuccess(t, mc.LastResult.IsValid())
}

func TestUndefinedExtendedOpcodes(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// gaps in the extended table behave as two-byte NOPs
	mem.putInstructions(0x0000, 0xed, 0x00)
	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "NOP*")
	test.Equate(t, r.Cycles, 8)
	test.Equate(t, r.ByteCount, 2)
}

func TestOpcodeSpace(t *testing.T) {
	mc, mem, _ := newTestCPU()

	// main memory holds HALT at the origin but the attached opcode space
	// presents LD A,n. the operand byte is not an M1 fetch and so comes
	// from main memory
	mem.putInstructions(0x0000, 0x76, 0x42)

	opcodes := newMockMem()
	opcodes.putInstructions(0x0000, 0x3e, 0x00)
	mc.AttachOpcodeSpace(opcodes)

	r := step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "LD A,n")
	test.Equate(t, mc.Regs.AF.Hi, 0x42)

	// detaching restores opcode fetches from main memory
	mc.AttachOpcodeSpace(nil)
	mem.putInstructions(0x0002, 0x76)
	r = step(t, mc)
	test.Equate(t, r.Defn.Mnemonic, "HALT")
	test.Equate(t, mc.Halted, true)
}
