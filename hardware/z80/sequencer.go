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
	"fmt"

	"github.com/jetsetilly/gopherz80/hardware/z80/instructions"
	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
)

// pendingTransaction identifies the bus transaction the CPU has asserted and
// not yet completed. the zero value means the current activity is an
// internal period with nothing on the bus.
type pendingTransaction int

// The pendingTransaction values. an opcode fetch is completed by the
// decoder. a halt fetch and the fetch at the top of the non-maskable
// sequence read memory and discard the byte. a program counter read differs
// from a plain memory read only in the byte accounting for the current
// result.
const (
	pendingNone pendingTransaction = iota
	pendingOpcode
	pendingHaltOpcode
	pendingNMIOpcode
	pendingMemRead
	pendingMemReadPC
	pendingMemWrite
	pendingIORead
	pendingIOWrite
	pendingIntAck
)

// serviceProgram identifies which interrupt service program, if any, the
// CPU is running in place of a fetched instruction.
type serviceProgram int

// The serviceProgram values. the mode 0 restart tails share the serviceIM0
// identifier with the program that dispatches to them.
const (
	serviceNone serviceProgram = iota
	serviceNMI
	serviceIM0
	serviceIM1
	serviceIM2
)

// Run advances the emulation by the given number of T-states. An instruction
// that does not complete within the budget is left suspended and resumes on
// the next call.
//
// Wait states imposed through the WAIT signal consume budget like any other
// T-state, so a Run with WAIT held asserted throughout makes no progress.
// The returned count is the number of T-states consumed, which is less than
// the request only when an error curtails execution.
func (mc *CPU) Run(tstates int) (int, error) {
	for i := 0; i < tstates; i++ {
		if err := mc.tick(); err != nil {
			return i, err
		}
	}
	return tstates, nil
}

// StepInstruction runs to the next instruction boundary. An instruction left
// suspended by Run() is completed rather than restarted. During the halt
// state each four T-state halt cycle counts as a boundary, so a halted CPU
// still returns regularly.
//
// The function does not return while WAIT stalls a bus transaction. release
// the signal before calling.
func (mc *CPU) StepInstruction() error {
	for {
		if err := mc.tick(); err != nil {
			return err
		}
		if mc.boundary {
			return nil
		}
	}
}

// tick advances the CPU by one T-state.
func (mc *CPU) tick() error {
	if mc.boundary {
		if err := mc.nextInstruction(); err != nil {
			return err
		}
	}

	// a wait state freezes the transaction just before its final T-state.
	// machine time passes but instruction time does not
	if mc.pending != pendingNone && mc.stall == 1 && mc.Sig.WAIT {
		return nil
	}

	if mc.stall > 0 {
		mc.stall--
		if !mc.LastResult.Final {
			mc.LastResult.Cycles++
		}
		if mc.stall > 0 {
			return nil
		}
	}

	return mc.completeActivity()
}

// nextInstruction begins work at an instruction boundary: interrupt
// acceptance first, then the halt state, then a normal opcode fetch.
func (mc *CPU) nextInstruction() error {
	mc.boundary = false

	if mc.checkInterrupts() {
		return mc.dispatch()
	}

	mc.afterEI = false
	mc.afterLDAIR = false

	// the halt state performs opcode fetches that decode to nothing. PC is
	// not advanced, the refresh counter is
	if mc.Halted {
		mc.Sig.BeginOpcodeFetch(mc.Regs.PC.Word())
		mc.pending = pendingHaltOpcode
		mc.stall = 4
		return nil
	}

	mc.LastResult.Reset()
	mc.LastResult.Address = mc.Regs.PC.Word()
	mc.operandCount = 0
	mc.fetchOpcode()
	return nil
}

// fetchOpcode asserts an M1 cycle at PC and advances PC. used for the first
// byte of an instruction and for every prefix byte.
func (mc *CPU) fetchOpcode() {
	mc.Sig.BeginOpcodeFetch(mc.Regs.PC.Word())
	mc.Regs.PC.Inc()
	mc.pending = pendingOpcode
	mc.stall = 4
}

// completeActivity finishes the activity whose final T-state has just
// elapsed: transfer data for a bus transaction, release the control signals
// and carry on with the instruction.
func (mc *CPU) completeActivity() error {
	pending := mc.pending
	mc.pending = pendingNone

	switch pending {
	case pendingNone:
		// an internal period has ended

	case pendingOpcode:
		data := mc.readOpcode(mc.Sig.Addr)
		mc.Sig.CompleteRead(data)
		mc.Sig.End()
		mc.Regs.IncR()
		mc.Sig.RefreshCycle(mc.Regs.Refresh())
		return mc.decode(data)

	case pendingHaltOpcode:
		data := mc.readOpcode(mc.Sig.Addr)
		mc.Sig.CompleteRead(data)
		mc.Sig.End()
		mc.Regs.IncR()
		mc.Sig.RefreshCycle(mc.Regs.Refresh())
		mc.boundary = true
		return nil

	case pendingNMIOpcode:
		data := mc.readOpcode(mc.Sig.Addr)
		mc.Sig.CompleteRead(data)
		mc.Sig.End()
		mc.Regs.IncR()
		mc.Sig.RefreshCycle(mc.Regs.Refresh())

	case pendingMemRead:
		data := mc.mem.Read(mc.Sig.Addr)
		mc.latch = data
		mc.Sig.CompleteRead(data)
		mc.Sig.End()

	case pendingMemReadPC:
		data := mc.mem.Read(mc.Sig.Addr)
		mc.latch = data
		mc.Sig.CompleteRead(data)
		mc.Sig.End()
		mc.countProgramByte(data)

	case pendingMemWrite:
		mc.mem.Write(mc.Sig.Addr, mc.Sig.Data)
		mc.Sig.End()

	case pendingIORead:
		data := uint8(0xff)
		if mc.io != nil {
			data = mc.io.Read(mc.Sig.Addr)
		}
		mc.latch = data
		mc.Sig.CompleteRead(data)
		mc.Sig.End()

	case pendingIOWrite:
		if mc.io != nil {
			mc.io.Write(mc.Sig.Addr, mc.Sig.Data)
		}
		mc.Sig.End()

	case pendingIntAck:
		data := uint8(0xff)
		if mc.IntAck != nil {
			data = mc.IntAck()
		}
		mc.latch = data
		mc.Sig.CompleteRead(data)
		mc.Sig.End()
		mc.Regs.IncR()
		mc.Sig.RefreshCycle(mc.Regs.Refresh())
	}

	return mc.dispatch()
}

// readOpcode reads a byte for an M1 cycle, from the separate opcode space
// when one is attached.
func (mc *CPU) readOpcode(address uint16) uint8 {
	if mc.opcodeMem != nil {
		return mc.opcodeMem.Read(address)
	}
	return mc.mem.Read(address)
}

// countProgramByte accounts for a byte read from the program stream beyond
// the opcode and prefix bytes. service programs read through PC without
// consuming program bytes, so they are excluded.
func (mc *CPU) countProgramByte(data uint8) {
	if mc.service != serviceNone {
		return
	}
	mc.LastResult.ByteCount++
	if mc.defn != nil && mc.operandCount < mc.defn.Operand.ByteCount() {
		mc.LastResult.InstructionData |= uint16(data) << (8 * mc.operandCount)
		mc.operandCount++
	}
}

// decode installs the definition for a fetched opcode, or shifts the
// decoding context when the byte is a prefix and fetches again.
func (mc *CPU) decode(opcode uint8) error {
	mc.LastResult.ByteCount++

	switch mc.prefix {
	case instructions.PrefixNone:
		switch opcode {
		case instructions.PrefixByteCB:
			mc.prefix = instructions.PrefixCB
			mc.fetchOpcode()
			return nil
		case instructions.PrefixByteED:
			mc.prefix = instructions.PrefixED
			mc.fetchOpcode()
			return nil
		case instructions.PrefixByteDD:
			mc.prefix = instructions.PrefixIndex
			mc.Regs.Selector = registers.SelIX
			mc.fetchOpcode()
			return nil
		case instructions.PrefixByteFD:
			mc.prefix = instructions.PrefixIndex
			mc.Regs.Selector = registers.SelIY
			mc.fetchOpcode()
			return nil
		}

	case instructions.PrefixIndex:
		switch opcode {
		case instructions.PrefixByteDD:
			mc.Regs.Selector = registers.SelIX
			mc.fetchOpcode()
			return nil
		case instructions.PrefixByteFD:
			mc.Regs.Selector = registers.SelIY
			mc.fetchOpcode()
			return nil
		case instructions.PrefixByteED:
			// the index prefix is forgotten. the extended instruction that
			// follows uses the unprefixed registers
			mc.prefix = instructions.PrefixED
			mc.fetchOpcode()
			return nil
		}
	}

	d := mc.set.Lookup(mc.prefix, opcode)
	if d == nil {
		return fmt.Errorf("z80: no instruction for opcode %#02x in %s context (address %#04x)",
			opcode, mc.prefix, mc.LastResult.Address)
	}

	mc.defn = d
	mc.stepIdx = 0
	mc.LastResult.Defn = d
	return mc.dispatch()
}

// dispatch executes steps from the current definition until one begins a
// costed activity, one ends the instruction, or the step list runs out.
// Steps with no cost execute entirely within this call.
func (mc *CPU) dispatch() error {
	if mc.defn == nil {
		return fmt.Errorf("z80: no instruction in flight")
	}

	for {
		if mc.stepIdx >= len(mc.defn.Steps) {
			mc.finalize()
			return nil
		}

		s := mc.defn.Steps[mc.stepIdx]
		mc.stepIdx++

		ended, err := mc.execute(s)
		if err != nil {
			return err
		}
		if ended {
			mc.finalize()
			return nil
		}
		if mc.stall > 0 {
			return nil
		}
	}
}

// finalize marks the current instruction complete and returns the sequencer
// to the boundary state. the register selector returns to HL here, which is
// what confines an index prefix to a single instruction.
func (mc *CPU) finalize() {
	mc.LastResult.Final = true
	mc.defn = nil
	mc.prefix = instructions.PrefixNone
	mc.service = serviceNone
	mc.Regs.Selector = registers.SelHL
	mc.boundary = true
}
