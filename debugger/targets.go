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
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherz80/debugger/terminal/commandline"
	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
)

// target is a part of the machine that can be monitored by a breakpoint or a
// trap. the value function is called afresh every time the condition is
// tested.
type target struct {
	label  string
	fmtStr string
	value  func() interface{}
}

// TargetValue returns the current value of the target.
func (trg *target) TargetValue() interface{} {
	return trg.value()
}

// FormatValue returns the string representation of a target value.
func (trg *target) FormatValue(val interface{}) string {
	if trg.fmtStr == "" {
		return fmt.Sprintf("%v", val)
	}
	return fmt.Sprintf(trg.fmtStr, val)
}

// parseTarget uses the next token in the queue to create a new target
// instance. targets read their values through the debugger's machine
// reference, rather than a copy of the CPU pointer, so that they remain
// valid after a state has been loaded.
func (dbg *Debugger) parseTarget(tokens *commandline.Tokens) (*target, error) {
	keyword, present := tokens.Get()
	if !present {
		return nil, fmt.Errorf("target required")
	}
	keyword = strings.ToUpper(keyword)

	reg16 := func(r registers.Reg16) *target {
		return &target{
			label:  r.String(),
			fmtStr: "%#04x",
			value: func() interface{} {
				v, _ := dbg.m.CPU.Regs.Get16(r)
				return int(v)
			},
		}
	}

	reg8 := func(r registers.Reg8) *target {
		return &target{
			label:  r.String(),
			fmtStr: "%#02x",
			value: func() interface{} {
				v, _ := dbg.m.CPU.Regs.Get8(r)
				return int(v)
			},
		}
	}

	var trg *target

	switch keyword {
	case "PC":
		trg = reg16(registers.PC)
	case "SP":
		trg = reg16(registers.SP)
	case "AF":
		trg = reg16(registers.AF)
	case "BC":
		trg = reg16(registers.BC)
	case "DE":
		trg = reg16(registers.DE)
	case "HL":
		trg = reg16(registers.HL)
	case "IX":
		trg = reg16(registers.IX)
	case "IY":
		trg = reg16(registers.IY)

	case "A":
		trg = reg8(registers.A)
	case "F":
		trg = reg8(registers.F)
	case "B":
		trg = reg8(registers.B)
	case "C":
		trg = reg8(registers.C)
	case "D":
		trg = reg8(registers.D)
	case "E":
		trg = reg8(registers.E)
	case "H":
		trg = reg8(registers.H)
	case "L":
		trg = reg8(registers.L)
	case "IXH":
		trg = reg8(registers.IXH)
	case "IXL":
		trg = reg8(registers.IXL)
	case "IYH":
		trg = reg8(registers.IYH)
	case "IYL":
		trg = reg8(registers.IYL)
	case "I":
		trg = reg8(registers.I)
	case "R":
		trg = reg8(registers.R)

	case "IM":
		trg = &target{
			label:  "IM",
			fmtStr: "%d",
			value: func() interface{} {
				return dbg.m.CPU.IM
			},
		}

	case "IFF1":
		trg = &target{
			label: "IFF1",
			value: func() interface{} {
				return dbg.m.CPU.IFF1
			},
		}

	case "IFF2":
		trg = &target{
			label: "IFF2",
			value: func() interface{} {
				return dbg.m.CPU.IFF2
			},
		}

	case "HALTED":
		trg = &target{
			label: "HALTED",
			value: func() interface{} {
				return dbg.m.CPU.Halted
			},
		}

	case "TSTATES":
		trg = &target{
			label:  "TSTATES",
			fmtStr: "%d",
			value: func() interface{} {
				return int(dbg.m.TStates)
			},
		}

	case "MNEMONIC":
		trg = &target{
			label: "MNEMONIC",
			value: func() interface{} {
				if dbg.m.CPU.LastResult.Defn == nil {
					return ""
				}
				return dbg.m.CPU.LastResult.Defn.Mnemonic
			},
		}

	default:
		return nil, fmt.Errorf("invalid target (%s)", keyword)
	}

	return trg, nil
}
