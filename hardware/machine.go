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

package hardware

import (
	"errors"
	"io"

	"github.com/jetsetilly/gopherz80/hardware/cpm"
	"github.com/jetsetilly/gopherz80/hardware/memory"
	"github.com/jetsetilly/gopherz80/hardware/ports"
	"github.com/jetsetilly/gopherz80/hardware/z80"
	"github.com/jetsetilly/gopherz80/romloader"
)

// ProgramEnded is returned by Run() and Step() when the attached program has
// finished: a CP/M warm boot or termination call, or (in Run only) the halt
// state with nothing attached that could raise an interrupt. Compare with
// errors.Is().
var ProgramEnded = errors.New("program ended")

// Clock is the reference machine's clock rate in T-states per second, the
// traditional 3.5MHz part.
const Clock = 3500000

// Machine is the main container for the emulated components of the
// reference machine.
type Machine struct {
	CPU   *z80.CPU
	Mem   *memory.Memory
	Ports *ports.Ports

	// the CP/M console layer. nil unless EnableCPM() has been called
	CPM *cpm.Console

	// machine time since the last reset, including wait states and halt
	// cycles
	TStates int64

	// the most recently attached program
	loader romloader.Loader
}

// NewMachine creates a new reference machine: the CPU, 64k of RAM and an
// empty IO port space. It is used for all aspects of emulation: debugging
// sessions, regression runs and regular execution.
func NewMachine() *Machine {
	m := &Machine{
		Mem:   memory.NewMemory(),
		Ports: ports.NewPorts(),
	}
	m.CPU = z80.New(m.Mem, m.Ports)
	return m
}

// EnableCPM attaches the CP/M console layer, with console output going to
// the supplied writer. The low page stubs are installed at the next
// Attach().
func (m *Machine) EnableCPM(out io.Writer) {
	m.CPM = cpm.NewConsole(out)
}

// Attach a program image to the machine. The image is loaded if it has not
// been already. Memory is cleared, the image copied in and the program
// counter set to the load origin.
func (m *Machine) Attach(ld romloader.Loader) error {
	if err := ld.Load(); err != nil {
		return err
	}

	m.Reset()
	m.Mem.Clear()

	if err := m.Mem.LoadImage(ld.Origin, ld.Data); err != nil {
		return err
	}
	if m.CPM != nil {
		m.CPM.Install(m.Mem)
	}
	m.CPU.Regs.PC.SetWord(ld.Origin)

	m.loader = ld
	return nil
}

// Loader returns the most recently attached program.
func (m *Machine) Loader() romloader.Loader {
	return m.loader
}

// Reset the machine. Memory contents and port attachments are preserved,
// the way a reset pulse on real hardware leaves them.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.TStates = 0
}

// boundaryTrap runs the CP/M layer at an instruction boundary.
func (m *Machine) boundaryTrap() error {
	if m.CPM == nil {
		return nil
	}
	ended, err := m.CPM.Trap(m.CPU, m.Mem)
	if err != nil {
		return err
	}
	if ended {
		return ProgramEnded
	}
	return nil
}
