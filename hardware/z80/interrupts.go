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
	"github.com/jetsetilly/gopherz80/hardware/z80/execution"
	"github.com/jetsetilly/gopherz80/hardware/z80/instructions"
	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
)

// SetNMI drives the non-maskable interrupt pin. The pin is edge triggered: a
// rising edge latches a pending interrupt which is accepted at the next
// instruction boundary regardless of the interrupt flip-flops.
func (mc *CPU) SetNMI(level bool) {
	if level && !mc.nmiLine {
		mc.nmiPending = true
	}
	mc.nmiLine = level
}

// SetINT drives the maskable interrupt pin. The pin is level sensed: it must
// still be asserted at an instruction boundary with interrupts enabled to be
// accepted, and remains asserted until the device is told otherwise.
func (mc *CPU) SetINT(level bool) {
	mc.intLine = level
}

// checkInterrupts is the boundary test for both interrupt pins. When an
// interrupt is accepted the corresponding service program is installed,
// ready for dispatch, and true is returned.
func (mc *CPU) checkInterrupts() bool {
	if mc.nmiPending {
		mc.nmiPending = false
		mc.exitHalt()
		mc.afterEI = false
		mc.afterLDAIR = false

		// IFF2 keeps the pre-interrupt enable state for RETN to restore
		mc.IFF1 = false

		mc.installService(serviceNMI, mc.set.NMI)
		return true
	}

	if mc.intLine && mc.IFF1 && !mc.afterEI {
		mc.exitHalt()

		quirk := mc.afterLDAIR
		mc.afterLDAIR = false

		mc.IFF1 = false
		mc.IFF2 = false

		switch mc.IM {
		case 1:
			mc.installService(serviceIM1, mc.set.IM1)
		case 2:
			mc.installService(serviceIM2, mc.set.IM2)
		default:
			mc.installService(serviceIM0, mc.set.IM0)
		}

		if quirk {
			// LD A,I and LD A,R copied IFF2 to the parity flag but the
			// acceptance that is happening now means the flag should read
			// false
			mc.Regs.SetFlags(mc.Regs.Flags() &^ registers.FlagP)
			mc.LastResult.Quirk = execution.IFF2ReadQuirk
		}
		return true
	}

	return false
}

func (mc *CPU) installService(id serviceProgram, d *instructions.Defn) {
	mc.LastResult.Reset()
	mc.LastResult.Address = mc.Regs.PC.Word()
	mc.LastResult.Defn = d
	mc.operandCount = 0
	mc.service = id
	mc.defn = d
	mc.stepIdx = 0
}

func (mc *CPU) exitHalt() {
	if !mc.Halted {
		return
	}
	mc.Halted = false
	if mc.OnHalt != nil {
		mc.OnHalt(false)
	}
}
