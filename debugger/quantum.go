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

package debugger

// Quantum defines the smallest unit of movement in the emulation. the STEP
// and TICK commands select the instruction and T state quantum respectively.
type Quantum int

// List of valid Quantum values.
const (
	QuantumInstruction Quantum = iota
	QuantumTState
)

func (q Quantum) String() string {
	switch q {
	case QuantumInstruction:
		return "INSTRUCTION"
	case QuantumTState:
		return "TSTATE"
	}
	return "unknown quantum"
}
