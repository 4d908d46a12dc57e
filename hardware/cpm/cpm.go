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

// Package cpm implements enough of the CP/M BDOS console interface for
// classic Z80 test programs to run unmodified. There is no disk system and
// no file functions: console output, console status and program termination
// are what the well known test binaries use.
//
// The BDOS is reached in the usual way, a CALL to address 0x0005. The
// machine checks for arrival at the entry point at every instruction
// boundary and services the call before the planted entry vector returns
// control to the program. A jump to the warm boot address ends the program.
package cpm

import (
	"fmt"
	"io"

	"github.com/jetsetilly/gopherz80/hardware/bus"
	"github.com/jetsetilly/gopherz80/hardware/z80"
	"github.com/jetsetilly/gopherz80/logger"
)

// The well known CP/M addresses.
const (
	// jumping to address zero performs a warm boot. for a machine with no
	// operating system underneath this is the end of the program
	WarmBoot = 0x0000

	// the BDOS function dispatcher is reached with CALL 5
	BDOSEntry = 0x0005
)

// the entry vector at 0x0005 is a real JP to this address, with a RET
// planted at the target. programs read the word at 0x0006 to find the top
// of usable memory so the vector has to point somewhere plausible.
const bdosTarget = 0xfe06

// the byte answered by console input functions. no input is attached so the
// console reads as an endless end-of-file
const eof = 0x1a

// Console services BDOS calls on behalf of a running program.
type Console struct {
	out io.Writer
}

// NewConsole is the preferred method of initialisation for the Console type.
// a nil writer discards console output.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Install the warm boot stub and the BDOS entry vector. Call after a program
// image has been loaded, the low page is overwritten.
func (c *Console) Install(mem bus.Memory) {
	// a HALT at the warm boot address stops a machine that jumps to zero
	// without anything checking for the warm boot condition
	mem.Write(WarmBoot, 0x76)

	mem.Write(BDOSEntry, 0xc3)
	mem.Write(BDOSEntry+1, uint8(bdosTarget&0xff))
	mem.Write(BDOSEntry+2, uint8(bdosTarget>>8))
	mem.Write(bdosTarget, 0xc9)
}

// Trap services a BDOS call if the CPU has just arrived at the entry point
// and recognises arrival at the warm boot address as the end of the program.
// Call at instruction boundaries. The returned flag is true when the
// program has ended.
func (c *Console) Trap(mc *z80.CPU, mem bus.Memory) (bool, error) {
	switch mc.Regs.PC.Word() {
	case WarmBoot:
		return true, nil
	case BDOSEntry:
		return c.bdos(mc, mem)
	}
	return false, nil
}

// bdos performs the function selected by the C register. single byte results
// follow the CP/M convention: the value in A and L, with B and H zeroed.
func (c *Console) bdos(mc *z80.CPU, mem bus.Memory) (bool, error) {
	switch fn := mc.Regs.BC.Lo; fn {
	case 0:
		// P_TERMCPM. terminate program
		return true, nil

	case 1, 3:
		// C_READ and A_READ. console input
		return false, c.result(mc, eof)

	case 2, 4, 5:
		// C_WRITE, A_WRITE and L_WRITE. write the character in E
		return false, c.write(mc.Regs.DE.Lo)

	case 6:
		// C_RAWIO. E of 0xff polls for input, any other value is output
		if mc.Regs.DE.Lo == 0xff {
			return false, c.result(mc, 0)
		}
		return false, c.write(mc.Regs.DE.Lo)

	case 9:
		// C_WRITESTR. write from DE until a terminating dollar. the scan is
		// bounded so a missing terminator cannot loop forever
		addr := mc.Regs.DE.Word()
		for i := 0; i < 0x10000; i++ {
			ch := mem.Read(addr)
			if ch == '$' {
				break
			}
			if err := c.write(ch); err != nil {
				return false, err
			}
			addr++
		}
		return false, nil

	case 11:
		// C_STAT. no character is ever waiting
		return false, c.result(mc, 0)

	case 12:
		// S_BDOSVER. report CP/M 2.2
		mc.Regs.HL.SetWord(0x0022)
		mc.Regs.AF.Hi = 0x22
		mc.Regs.BC.Hi = 0
		return false, nil

	default:
		logger.Logf("cpm", "unsupported BDOS function %d", fn)
		return false, c.result(mc, 0)
	}
}

func (c *Console) result(mc *z80.CPU, v uint8) error {
	mc.Regs.AF.Hi = v
	mc.Regs.HL.SetWord(uint16(v))
	mc.Regs.BC.Hi = 0
	return nil
}

func (c *Console) write(ch uint8) error {
	if c.out == nil {
		return nil
	}
	if _, err := c.out.Write([]byte{ch}); err != nil {
		return fmt.Errorf("cpm: %w", err)
	}
	return nil
}
