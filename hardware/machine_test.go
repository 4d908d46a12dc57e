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

package hardware_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherz80/hardware"
	"github.com/jetsetilly/gopherz80/romloader"
	"github.com/jetsetilly/gopherz80/state"
	"github.com/jetsetilly/gopherz80/test"
)

func TestMachineRun(t *testing.T) {
	m := hardware.NewMachine()

	// LD A,5; ADD A,3; HALT
	err := m.Mem.LoadImage(0x0000, []uint8{0x3e, 0x05, 0xc6, 0x03, 0x76})
	test.ExpectedSuccess(t, err)

	// the halt state ends the run
	err = m.Run(nil)
	test.Equate(t, errors.Is(err, hardware.ProgramEnded), true)

	test.Equate(t, m.CPU.Regs.AF.Hi, 0x08)
	test.Equate(t, m.TStates, int64(18))
}

func TestMachineStepGranularity(t *testing.T) {
	m := hardware.NewMachine()

	err := m.Mem.LoadImage(0x0000, []uint8{0x3e, 0x05, 0xc6, 0x03, 0x76})
	test.ExpectedSuccess(t, err)

	// one instruction, with the callback seeing every T-state
	ticks := 0
	err = m.Step(func() error {
		ticks++
		return nil
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, ticks, 7)
	test.Equate(t, m.TStates, int64(7))
	test.Equate(t, m.CPU.Regs.AF.Hi, 0x05)

	// tick part way into the next instruction
	for i := 0; i < 3; i++ {
		test.ExpectedSuccess(t, m.Tick())
	}
	test.Equate(t, m.CPU.AtBoundary(), false)
	test.Equate(t, m.TStates, int64(10))

	// Run completes the suspended instruction without double counting
	err = m.Run(nil)
	test.Equate(t, errors.Is(err, hardware.ProgramEnded), true)
	test.Equate(t, m.CPU.Regs.AF.Hi, 0x08)
	test.Equate(t, m.TStates, int64(18))
}

func TestMachineCPMConsole(t *testing.T) {
	m := hardware.NewMachine()

	out := &bytes.Buffer{}
	m.EnableCPM(out)
	m.CPM.Install(m.Mem)

	// print "HI" through C_WRITESTR, then '!' through C_WRITE, then warm
	// boot
	err := m.Mem.LoadImage(0x0100, []uint8{
		0x0e, 0x09, // LD C,9
		0x11, 0x12, 0x01, // LD DE,0x0112
		0xcd, 0x05, 0x00, // CALL 5
		0x0e, 0x02, // LD C,2
		0x1e, 0x21, // LD E,'!'
		0xcd, 0x05, 0x00, // CALL 5
		0xc3, 0x00, 0x00, // JP 0
		'H', 'I', '$',
	})
	test.ExpectedSuccess(t, err)
	m.CPU.Regs.PC.SetWord(0x0100)

	err = m.Run(nil)
	test.Equate(t, errors.Is(err, hardware.ProgramEnded), true)
	test.Equate(t, out.String(), "HI!")
}

func TestMachineAttach(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prog.com")
	program := []byte{0x3e, 0x2a, 0xc3, 0x00, 0x00}
	if err := os.WriteFile(fn, program, 0o644); err != nil {
		t.Fatal(err)
	}

	m := hardware.NewMachine()
	m.EnableCPM(nil)

	ld, err := romloader.NewLoader(fn, "")
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, m.Attach(ld))

	// image is in place and the program counter points at it
	test.Equate(t, m.CPU.Regs.PC.Word(), 0x0100)
	test.Equate(t, m.Mem.Read(0x0100), 0x3e)

	// the CP/M entry vector has been installed
	test.Equate(t, m.Mem.Read(0x0005), 0xc3)

	// the loader has been through the fingerprinting process
	test.Equate(t, len(m.Loader().Hash), 16)

	// the program runs to the warm boot
	err = m.Run(nil)
	test.Equate(t, errors.Is(err, hardware.ProgramEnded), true)
	test.Equate(t, m.CPU.Regs.AF.Hi, 0x2a)
}

func TestMachineSnapshot(t *testing.T) {
	m := hardware.NewMachine()

	// LD A,5; INC A; INC A; HALT
	err := m.Mem.LoadImage(0x0000, []uint8{0x3e, 0x05, 0x3c, 0x3c, 0x76})
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, m.Step(nil))
	snap := m.Snapshot()

	// diverge from the snapshotted state
	test.ExpectedSuccess(t, m.Step(nil))
	m.Mem.Write(0x2000, 0xaa)
	test.Equate(t, m.CPU.Regs.AF.Hi, 0x06)

	// plumbing restores registers, counters and memory
	m.Plumb(snap)
	test.Equate(t, m.CPU.Regs.AF.Hi, 0x05)
	test.Equate(t, m.TStates, int64(7))
	test.Equate(t, m.Mem.Read(0x2000), 0x00)

	// the same state can be plumbed again after the machine has moved on
	test.ExpectedSuccess(t, m.Step(nil))
	test.Equate(t, m.CPU.Regs.AF.Hi, 0x06)
	m.Plumb(snap)
	test.Equate(t, m.CPU.Regs.AF.Hi, 0x05)

	// the restored machine continues correctly
	err = m.Run(nil)
	test.Equate(t, errors.Is(err, hardware.ProgramEnded), true)
	test.Equate(t, m.CPU.Regs.AF.Hi, 0x07)
}

func TestMachineSaveLoad(t *testing.T) {
	m := hardware.NewMachine()

	err := m.Mem.LoadImage(0x0000, []uint8{0x3e, 0x05, 0x3c, 0x3c, 0x76})
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, m.Step(nil))
	test.ExpectedSuccess(t, m.Step(nil))

	st := state.NewState()
	m.Save(st)

	// restore into a fresh machine
	m2 := hardware.NewMachine()
	st.Rewind()
	test.ExpectedSuccess(t, m2.Load(st))

	test.Equate(t, *m2.CPU.Regs == *m.CPU.Regs, true)
	test.Equate(t, m2.TStates, m.TStates)
	test.Equate(t, m2.Mem.Read(0x0004), 0x76)

	// both machines finish identically
	err = m.Run(nil)
	test.Equate(t, errors.Is(err, hardware.ProgramEnded), true)
	err = m2.Run(nil)
	test.Equate(t, errors.Is(err, hardware.ProgramEnded), true)
	test.Equate(t, m2.CPU.Regs.AF.Hi, m.CPU.Regs.AF.Hi)

	// a snapshot that is not a snapshot is refused
	bad := state.NewState()
	bad.WriteData([]byte("NOPE"))
	bad.Write8(1)
	bad.Rewind()
	test.ExpectedFailure(t, hardware.NewMachine().Load(bad))
}
