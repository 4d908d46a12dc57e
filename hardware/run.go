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

// The continueCheck() function passed to Run() only runs at the end of a CPU
// instruction but it can still be expensive to do a full check every time.
//
// It depends on context whether it is used or not but the PerformanceBrake
// is a standard value that can be used to filter out expensive code paths
// within a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return false, nil
//		}
//	}
//	return true, nil
const PerformanceBrake = 100

// Run sets the emulation running as quickly as possible. The continueCheck
// function is called after every instruction and returns false when the
// emulation should stop.
//
// Nothing attached to the machine can raise an interrupt while Run is in
// control, so the halt state is reported as the end of the program.
func (m *Machine) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	// complete any partially executed instruction before falling into the
	// instruction loop. the loop accounts for machine time an instruction at
	// a time and a suspended instruction would be counted twice
	if !m.CPU.AtBoundary() {
		if err := m.Step(nil); err != nil {
			return err
		}
	}

	for {
		if err := m.CPU.StepInstruction(); err != nil {
			return err
		}
		m.TStates += int64(m.CPU.LastResult.Cycles)

		if err := m.boundaryTrap(); err != nil {
			return err
		}
		if m.CPU.Halted {
			return ProgramEnded
		}

		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}
