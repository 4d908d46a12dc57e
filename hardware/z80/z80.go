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

package z80

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/gopherz80/hardware/bus"
	"github.com/jetsetilly/gopherz80/hardware/z80/execution"
	"github.com/jetsetilly/gopherz80/hardware/z80/instructions"
	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
)

// UnimplementedFeature is returned when the emulation is asked for behaviour
// that is deliberately not supported. Compare with errors.Is().
var UnimplementedFeature = errors.New("unimplemented feature")

// CPU implements the Z80. Register logic is implemented by the File type in
// the registers sub-package and instruction behaviour by the data in the
// instructions sub-package.
type CPU struct {
	Regs *registers.File

	// the state of the bus pins. transactions assert and release the control
	// signals here, and hooks on the type can be used to observe them
	Sig *bus.Signals

	mem       bus.Memory
	io        bus.IO
	opcodeMem bus.Memory

	set *instructions.Set

	// interrupt state. IFF1 is the interrupt enable proper, IFF2 its shadow
	// for the benefit of the non-maskable sequence
	IFF1 bool
	IFF2 bool
	IM   int

	// the levels of the two interrupt pins. the non-maskable pin latches its
	// rising edge into nmiPending
	intLine    bool
	nmiLine    bool
	nmiPending bool

	// an EI instruction holds off maskable interrupts for one further
	// instruction. a maskable interrupt accepted immediately after LD A,I or
	// LD A,R falsifies the parity flag those instructions produced
	afterEI    bool
	afterLDAIR bool

	// the CPU is executing the halt state. cleared by interrupt or reset
	Halted bool

	// IntAck supplies the byte placed on the data bus during the interrupt
	// acknowledge cycle, the vectoring mechanism of a daisy chained device.
	// when nil the bus reads 0xff, the value of an open bus
	IntAck func() uint8

	// Reti is called when a RETI instruction completes, the signal a daisy
	// chained device watches for to retire its interrupt
	Reti func()

	// OnHalt is called when the CPU enters (true) and leaves (false) the
	// halt state
	OnHalt func(halted bool)

	// sequencer state. see sequencer.go for the tick model. these fields
	// are all part of the serialisable machine state
	defn         *instructions.Defn
	prefix       instructions.Prefix
	service      serviceProgram
	stepIdx      int
	latch        uint8
	pending      pendingTransaction
	stall        int
	boundary     bool
	operandCount int

	// last result. the address field is guaranteed to be always valid except
	// when the CPU has just been reset. we use this fact to help us decide
	// whether the CPU has just been reset (see HasReset() function)
	LastResult execution.Result
}

// New is the preferred method of initialisation for the CPU type. The
// instruction tables are built here, so sharing a Set between instances is
// not required. an IO implementation is optional; without one, input
// transactions read an open bus and output transactions go nowhere.
func New(mem bus.Memory, io bus.IO) *CPU {
	mc := &CPU{
		Regs: registers.NewFile(),
		Sig:  bus.NewSignals(),
		mem:  mem,
		io:   io,
		set:  instructions.NewSet(),
	}
	mc.Reset()
	return mc
}

// Snapshot creates a copy of the CPU in its current state, including the
// progress of a partially executed instruction.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	r := *mc.Regs
	n.Regs = &r
	s := *mc.Sig
	n.Sig = &s
	return &n
}

// Plumb new memory and IO implementations into the CPU.
func (mc *CPU) Plumb(mem bus.Memory, io bus.IO) {
	mc.mem = mem
	mc.io = io
}

// AttachOpcodeSpace supplies a separate memory for opcode fetches. Systems
// with encrypted program ROM present decrypted bytes during M1 cycles while
// operand and data reads see the stored bytes. A nil argument detaches the
// space and opcode fetches read main memory again.
func (mc *CPU) AttachOpcodeSpace(mem bus.Memory) {
	mc.opcodeMem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s\niff1=%v iff2=%v im=%d halt=%v",
		mc.Regs, mc.IFF1, mc.IFF2, mc.IM, mc.Halted)
}

// Reset the CPU. the register file takes the values the NMOS part powers up
// with, interrupts are disabled and mode 0 selected. Memory is not touched.
func (mc *CPU) Reset() {
	mc.Regs.Reset()
	mc.Sig.Reset()

	mc.IFF1 = false
	mc.IFF2 = false
	mc.IM = 0

	mc.nmiPending = false
	mc.afterEI = false
	mc.afterLDAIR = false

	if mc.Halted && mc.OnHalt != nil {
		mc.OnHalt(false)
	}
	mc.Halted = false

	mc.defn = nil
	mc.prefix = instructions.PrefixNone
	mc.service = serviceNone
	mc.stepIdx = 0
	mc.latch = 0
	mc.pending = pendingNone
	mc.stall = 0
	mc.boundary = true
	mc.operandCount = 0

	mc.LastResult.Reset()
}

// HasReset checks whether the CPU has recently been reset.
func (mc *CPU) HasReset() bool {
	return mc.LastResult.Address == 0 && mc.LastResult.Defn == nil
}

// AtBoundary returns true when no instruction is in flight. The next T-state
// will begin a new instruction, or a halt cycle if the CPU is halted.
func (mc *CPU) AtBoundary() bool {
	return mc.boundary
}

// Set exposes the instruction tables the CPU was built with. The disassembly
// package uses this to share one copy of the tables.
func (mc *CPU) Set() *instructions.Set {
	return mc.set
}
