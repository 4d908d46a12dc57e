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

package execution

import (
	"fmt"
)

// IsValid checks whether the instance of Result contains information
// consistent with the instruction definition.
func (r Result) IsValid() error {
	if !r.Final {
		return fmt.Errorf("z80: execution not finalised (bad opcode?)")
	}

	if r.Defn == nil {
		return fmt.Errorf("z80: execution finalised without a definition")
	}

	// byte count. service program definitions have a count of zero because
	// they consume no program bytes
	if r.ByteCount != r.Defn.Bytes {
		return fmt.Errorf("z80: unexpected number of bytes read during decode (%d instead of %d)", r.ByteCount, r.Defn.Bytes)
	}

	if r.Defn.Conditional() {
		if r.BranchSuccess {
			if r.Cycles != r.Defn.CyclesBranch {
				return fmt.Errorf("z80: number of cycles wrong for opcode %#02x [%s] (%d instead of %d)",
					r.Defn.OpCode,
					r.Defn.Mnemonic,
					r.Cycles,
					r.Defn.CyclesBranch)
			}
		} else {
			if r.Cycles != r.Defn.Cycles {
				return fmt.Errorf("z80: number of cycles wrong for opcode %#02x [%s] (%d instead of %d)",
					r.Defn.OpCode,
					r.Defn.Mnemonic,
					r.Cycles,
					r.Defn.Cycles)
			}
		}
		return nil
	}

	if r.Cycles != r.Defn.Cycles {
		return fmt.Errorf("z80: number of cycles wrong for opcode %#02x [%s] (%d instead of %d)",
			r.Defn.OpCode,
			r.Defn.Mnemonic,
			r.Cycles,
			r.Defn.Cycles)
	}

	return nil
}
