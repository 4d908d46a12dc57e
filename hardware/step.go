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

// Tick the emulation forward one T-state. Machine time advances even when
// the WAIT signal is stalling the CPU.
func (m *Machine) Tick() error {
	if _, err := m.CPU.Run(1); err != nil {
		return err
	}
	m.TStates++

	// the CP/M layer watches for arrival at its entry points, so it has to
	// run at every boundary regardless of how the machine is being stepped
	if m.CPU.AtBoundary() {
		return m.boundaryTrap()
	}
	return nil
}

// Step the emulation forward one instruction, ticking the machine one
// T-state at a time. The callback, if given, runs after every T-state and
// can watch the instruction assemble itself through CPU.LastResult.
//
// An instruction left suspended by Tick() is completed rather than
// restarted. During the halt state a Step is one four T-state halt cycle.
func (m *Machine) Step(tstateCallback func() error) error {
	if tstateCallback == nil {
		tstateCallback = func() error { return nil }
	}

	for {
		if err := m.Tick(); err != nil {
			return err
		}
		if err := tstateCallback(); err != nil {
			return err
		}
		if m.CPU.AtBoundary() {
			return nil
		}
	}
}
