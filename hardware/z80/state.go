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

	"github.com/jetsetilly/gopherz80/hardware/z80/execution"
	"github.com/jetsetilly/gopherz80/hardware/z80/instructions"
	"github.com/jetsetilly/gopherz80/state"
)

// identity tags locating an instruction definition inside the instruction
// set. table definitions are identified by their prefix and opcode; the
// service programs have no opcode and get their own tags. the opcode byte
// doubles as the restart index for defnIM0Rst.
const (
	defnNone uint8 = iota
	defnTable
	defnNMI
	defnIM0
	defnIM0Rst
	defnIM1
	defnIM2
)

func (mc *CPU) defnIdentity(d *instructions.Defn) (tag uint8, opcode uint8, prefix uint8) {
	switch {
	case d == nil:
		return defnNone, 0, 0
	case d == mc.set.NMI:
		return defnNMI, 0, 0
	case d == mc.set.IM0:
		return defnIM0, 0, 0
	case d == mc.set.IM1:
		return defnIM1, 0, 0
	case d == mc.set.IM2:
		return defnIM2, 0, 0
	}
	for i := range mc.set.IM0Rst {
		if d == mc.set.IM0Rst[i] {
			return defnIM0Rst, uint8(i), 0
		}
	}
	return defnTable, d.OpCode, uint8(d.Prefix)
}

func (mc *CPU) defnFromIdentity(tag uint8, opcode uint8, prefix uint8) (*instructions.Defn, error) {
	switch tag {
	case defnNone:
		return nil, nil
	case defnTable:
		d := mc.set.Lookup(instructions.Prefix(prefix), opcode)
		if d == nil {
			return nil, fmt.Errorf("z80: snapshot names an instruction that does not exist (opcode %#02x, prefix %d)",
				opcode, prefix)
		}
		return d, nil
	case defnNMI:
		return mc.set.NMI, nil
	case defnIM0:
		return mc.set.IM0, nil
	case defnIM0Rst:
		if opcode >= 8 {
			return nil, fmt.Errorf("z80: snapshot names restart %d of interrupt mode 0", opcode)
		}
		return mc.set.IM0Rst[opcode], nil
	case defnIM1:
		return mc.set.IM1, nil
	case defnIM2:
		return mc.set.IM2, nil
	}
	return nil, fmt.Errorf("z80: unrecognised instruction tag in snapshot (%d)", tag)
}

// Save appends the complete execution state of the CPU to the snapshot. The
// state includes any instruction in flight, so a suspended CPU resumes from
// the exact cycle it was saved at. The callback fields are runtime wiring
// and are not saved.
func (mc *CPU) Save(s *state.State) {
	mc.Regs.Save(s)
	mc.Sig.Save(s)

	s.WriteBool(mc.IFF1)
	s.WriteBool(mc.IFF2)
	s.Write8(uint8(mc.IM))
	s.WriteBool(mc.intLine)
	s.WriteBool(mc.nmiLine)
	s.WriteBool(mc.nmiPending)
	s.WriteBool(mc.afterEI)
	s.WriteBool(mc.afterLDAIR)
	s.WriteBool(mc.Halted)

	// the sequencer
	tag, opcode, prefix := mc.defnIdentity(mc.defn)
	s.Write8(tag)
	s.Write8(opcode)
	s.Write8(prefix)
	s.Write8(uint8(mc.prefix))
	s.Write8(uint8(mc.service))
	s.Write8(uint8(mc.stepIdx))
	s.Write8(mc.latch)
	s.Write8(uint8(mc.pending))
	s.Write8(uint8(mc.stall))
	s.WriteBool(mc.boundary)
	s.Write8(uint8(mc.operandCount))

	// the result of the current or most recent instruction
	tag, opcode, prefix = mc.defnIdentity(mc.LastResult.Defn)
	s.Write8(tag)
	s.Write8(opcode)
	s.Write8(prefix)
	s.Write16(mc.LastResult.Address)
	s.Write16(mc.LastResult.InstructionData)
	s.WriteInt(mc.LastResult.ByteCount)
	s.WriteInt(mc.LastResult.Cycles)
	s.WriteBool(mc.LastResult.BranchSuccess)
	s.WriteBool(mc.LastResult.Final)
	if mc.LastResult.Quirk == execution.IFF2ReadQuirk {
		s.Write8(1)
	} else {
		s.Write8(0)
	}
}

// Load restores the execution state of the CPU from the snapshot. On error
// the CPU may be partially restored and should be Reset before further use.
//
// Restoration is silent: the OnHalt callback does not fire for a restored
// halt state.
func (mc *CPU) Load(s *state.State) error {
	if err := mc.Regs.Load(s); err != nil {
		return err
	}
	if err := mc.Sig.Load(s); err != nil {
		return err
	}

	mc.IFF1 = s.ReadBool()
	mc.IFF2 = s.ReadBool()
	im := int(s.Read8())
	if im > 2 {
		return fmt.Errorf("z80: bad interrupt mode in snapshot (%d)", im)
	}
	mc.IM = im
	mc.intLine = s.ReadBool()
	mc.nmiLine = s.ReadBool()
	mc.nmiPending = s.ReadBool()
	mc.afterEI = s.ReadBool()
	mc.afterLDAIR = s.ReadBool()
	mc.Halted = s.ReadBool()

	tag := s.Read8()
	opcode := s.Read8()
	prefix := s.Read8()
	d, err := mc.defnFromIdentity(tag, opcode, prefix)
	if err != nil {
		return err
	}
	mc.defn = d
	mc.prefix = instructions.Prefix(s.Read8())
	mc.service = serviceProgram(s.Read8())
	mc.stepIdx = int(s.Read8())
	mc.latch = s.Read8()
	pending := pendingTransaction(s.Read8())
	if pending > pendingIntAck {
		return fmt.Errorf("z80: bad bus transaction in snapshot (%d)", pending)
	}
	mc.pending = pending
	mc.stall = int(s.Read8())
	mc.boundary = s.ReadBool()
	mc.operandCount = int(s.Read8())

	if mc.defn != nil && mc.stepIdx > len(mc.defn.Steps) {
		return fmt.Errorf("z80: snapshot suspends %s beyond its last step", mc.defn.Mnemonic)
	}

	tag = s.Read8()
	opcode = s.Read8()
	prefix = s.Read8()
	d, err = mc.defnFromIdentity(tag, opcode, prefix)
	if err != nil {
		return err
	}
	mc.LastResult.Defn = d
	mc.LastResult.Address = s.Read16()
	mc.LastResult.InstructionData = s.Read16()
	mc.LastResult.ByteCount = s.ReadInt()
	mc.LastResult.Cycles = s.ReadInt()
	mc.LastResult.BranchSuccess = s.ReadBool()
	mc.LastResult.Final = s.ReadBool()
	if s.Read8() != 0 {
		mc.LastResult.Quirk = execution.IFF2ReadQuirk
	} else {
		mc.LastResult.Quirk = execution.NoQuirk
	}

	return s.Err()
}
