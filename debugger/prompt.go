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

import (
	"github.com/jetsetilly/gopherz80/debugger/terminal"
	"github.com/jetsetilly/gopherz80/disassembly"
)

// buildPrompt returns a prompt suitable for the next call to TermRead().
func (dbg *Debugger) buildPrompt() terminal.Prompt {
	// decide which address to use. if we're in the middle of an instruction
	// then the prompt should report the instruction the CPU is working on,
	// not the one about to be stepped into
	var promptAddress uint16
	if dbg.m.CPU.LastResult.Final || dbg.m.CPU.HasReset() {
		promptAddress = dbg.m.CPU.Regs.PC.Word()
	} else {
		promptAddress = dbg.m.CPU.LastResult.Address
	}

	// the prompt type distinguishes an instruction boundary from a partially
	// executed instruction
	t := terminal.PromptTypeCPUStep
	if !dbg.m.CPU.AtBoundary() {
		t = terminal.PromptTypeTStateStep
	}

	return terminal.Prompt{
		Content: disassembly.Decode(dbg.m.CPU.Set(), dbg.m.Mem, promptAddress).String(),
		Type:    t,
	}
}
