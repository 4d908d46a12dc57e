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
	"github.com/jetsetilly/gopherz80/hardware/z80/instructions"
)

// Result records the execution details of the most recent instruction. It is
// built up as the instruction proceeds, so a Result is only complete, and
// only makes sense, once Final is true.
type Result struct {
	// the address the first byte of the instruction was fetched from,
	// including any prefix bytes
	Address uint16

	// a reference to the instruction definition. for an instruction that is
	// still being decoded this is the definition of the prefix context
	// reached so far, or nil before the first byte has arrived
	Defn *instructions.Defn

	// the operand bytes read so far, first byte in the low half. the
	// definition's Operand field says how many bytes are meaningful
	InstructionData uint16

	// the number of bytes read during decode, prefix and opcode bytes
	// included
	ByteCount int

	// the number of cycles taken so far. wait states imposed from outside
	// the CPU are not counted, so a completed Result is comparable with the
	// documented cycle count in the definition
	Cycles int

	// whether the condition of a conditional instruction held. for the
	// repeating block instructions this means another iteration follows
	BranchSuccess bool

	// a quirk of the silicon was triggered during execution
	Quirk Quirk

	// whether this is a complete record of the instruction
	Final bool
}

// Reset prepares the Result for a new instruction.
func (r *Result) Reset() {
	r.Address = 0
	r.Defn = nil
	r.InstructionData = 0
	r.ByteCount = 0
	r.Cycles = 0
	r.BranchSuccess = false
	r.Quirk = NoQuirk
	r.Final = false
}
