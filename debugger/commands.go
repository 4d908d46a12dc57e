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
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/gopherz80/debugger/terminal"
	"github.com/jetsetilly/gopherz80/debugger/terminal/commandline"
	"github.com/jetsetilly/gopherz80/disassembly"
	"github.com/jetsetilly/gopherz80/hardware/z80/registers"
	"github.com/jetsetilly/gopherz80/state"
)

// parseInput splits the input into individual commands and processes each in
// turn. commands are separated by semicolons.
func (dbg *Debugger) parseInput(input string) error {
	input = strings.TrimSpace(input)

	// ignore comments
	if strings.HasPrefix(input, "#") {
		return nil
	}

	for _, c := range strings.Split(input, ";") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if err := dbg.parseCommand(c); err != nil {
			return err
		}
	}

	return nil
}

// parseCommand tokenises the input, checks it against the command template
// and passes it to the relevant handler.
func (dbg *Debugger) parseCommand(input string) error {
	tokens := commandline.TokeniseInput(input)

	// validation normalises tokens as a side effect, numbers in particular,
	// so the handlers below see a cleaned up version of the input
	if err := debuggerCommands.ValidateTokens(tokens); err != nil {
		return err
	}

	tokens.Reset()
	command, ok := tokens.Get()
	if !ok {
		return nil
	}

	switch strings.ToUpper(command) {
	case cmdHelp:
		if keyword, ok := tokens.Get(); ok {
			dbg.printLine(terminal.StyleHelp, debuggerCommands.Help(keyword))
		} else {
			dbg.printLine(terminal.StyleHelp, debuggerCommands.HelpOverview())
		}

	case cmdReset:
		// reattaching the loader restores the program image as well as
		// resetting the CPU, so self-modified code does not survive
		if err := dbg.m.Attach(dbg.m.Loader()); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "machine reset")

	case cmdQuit:
		dbg.running = false

	case cmdRun:
		if _, ok := tokens.Get(); ok {
			// the option can only be TO. the address that follows becomes a
			// breakpoint that lasts until the emulation halts for any reason
			addr, _ := tokens.Get()
			dbg.halting.volatileBreakpoints.clear()
			if err := dbg.halting.volatileBreakpoints.parseBreakpoint(commandline.TokeniseInput(addr)); err != nil {
				return err
			}
		}
		dbg.runUntilHalt = true
		dbg.continueEmulation = true

	case cmdStep:
		dbg.quantum = QuantumInstruction
		dbg.continueEmulation = true

	case cmdTick:
		dbg.quantum = QuantumTState
		dbg.continueEmulation = true

	case cmdHalt:
		dbg.haltImmediately = true

	case cmdOnHalt:
		if tokens.Remaining() == 0 {
			dbg.commandOnHalt = dbg.commandOnHaltStored
		} else {
			option, _ := tokens.Peek()
			switch strings.ToUpper(option) {
			case "OFF":
				dbg.commandOnHalt = ""
				dbg.printLine(terminal.StyleFeedback, "no auto-command on halt")
				return nil
			case "ECHO":
				dbg.printLine(terminal.StyleFeedback, "auto-command on halt: %s", dbg.commandOnHalt)
				return nil
			}

			// the remainder of the line is the command sequence. commas can
			// be used in place of semicolons, which would otherwise have
			// been eaten by parseInput()
			dbg.commandOnHalt = strings.ReplaceAll(tokens.Remainder(), ",", ";")

			// store the new command so ONHALT with no arguments can
			// reinstate it
			dbg.commandOnHaltStored = dbg.commandOnHalt
		}

		dbg.printLine(terminal.StyleFeedback, "auto-command on halt: %s", dbg.commandOnHalt)

		// run the new onhalt command(s) once immediately
		return dbg.parseInput(dbg.commandOnHalt)

	case cmdOnStep:
		if tokens.Remaining() == 0 {
			dbg.commandOnStep = dbg.commandOnStepStored
		} else {
			option, _ := tokens.Peek()
			switch strings.ToUpper(option) {
			case "OFF":
				dbg.commandOnStep = ""
				dbg.printLine(terminal.StyleFeedback, "no auto-command on step")
				return nil
			case "ECHO":
				dbg.printLine(terminal.StyleFeedback, "auto-command on step: %s", dbg.commandOnStep)
				return nil
			}

			dbg.commandOnStep = strings.ReplaceAll(tokens.Remainder(), ",", ";")
			dbg.commandOnStepStored = dbg.commandOnStep
		}

		dbg.printLine(terminal.StyleFeedback, "auto-command on step: %s", dbg.commandOnStep)

		// run the new onstep command(s) once immediately
		return dbg.parseInput(dbg.commandOnStep)

	case cmdLast:
		if dbg.m.CPU.HasReset() {
			dbg.printLine(terminal.StyleFeedback, "no instruction executed yet")
			return nil
		}

		attr := disassembly.ColumnAttr{
			Cycles: true,
		}

		if option, ok := tokens.Get(); ok {
			switch strings.ToUpper(option) {
			case "DEFN":
				if dbg.m.CPU.LastResult.Defn == nil {
					dbg.printLine(terminal.StyleFeedback, "no instruction decoded yet")
					return nil
				}
				dbg.printLine(terminal.StyleFeedback, "%s", dbg.m.CPU.LastResult.Defn)
				return nil
			case "BYTECODE":
				attr.ByteCode = true
			}
		}

		e := disassembly.Decode(dbg.m.CPU.Set(), dbg.m.Mem, dbg.m.CPU.LastResult.Address)
		if dbg.m.CPU.LastResult.Final {
			dbg.printLine(terminal.StyleCPUStep, "%s", e.StringColumnated(attr))
		} else {
			dbg.printLine(terminal.StyleTStateStep, "%s", e.StringColumnated(attr))
		}

	case cmdReg:
		if _, ok := tokens.Get(); ok {
			// the option can only be SET
			name, _ := tokens.Get()
			value, _ := tokens.Get()
			if err := dbg.regSet(name, value); err != nil {
				return err
			}
		}
		dbg.printLine(terminal.StyleInstrument, "%s\ntstates=%d", dbg.m.CPU, dbg.m.TStates)

	case cmdMem:
		for tok, ok := tokens.Get(); ok; tok, ok = tokens.Get() {
			addr, err := parseAddress(tok)
			if err != nil {
				return err
			}
			dbg.printLine(terminal.StyleInstrument, "%#04x -> %#02x", addr, dbg.m.Mem.Read(addr))
		}

	case cmdDump:
		addr := dbg.m.CPU.Regs.PC.Word()
		lines := 8

		if tok, ok := tokens.Get(); ok {
			a, err := parseAddress(tok)
			if err != nil {
				return err
			}
			addr = a

			if tok, ok := tokens.Get(); ok {
				n, err := strconv.Atoi(tok)
				if err != nil || n < 1 {
					return fmt.Errorf("number of lines must be a positive number (%s)", tok)
				}
				lines = n
			}
		}

		// round down to the row boundary. sixteen bytes a row is how hex
		// dumps are usually presented
		addr &= 0xfff0

		for l := 0; l < lines; l++ {
			s := strings.Builder{}
			s.WriteString(fmt.Sprintf("%04x ", addr))
			for i := 0; i < 16; i++ {
				s.WriteString(fmt.Sprintf(" %02x", dbg.m.Mem.Read(addr+uint16(i))))
			}
			dbg.printLine(terminal.StyleInstrument, s.String())
			addr += 16
		}

	case cmdPoke:
		tok, _ := tokens.Get()
		addr, err := parseAddress(tok)
		if err != nil {
			return err
		}

		// successive values are poked into successive addresses
		for tok, ok := tokens.Get(); ok; tok, ok = tokens.Get() {
			v, err := strconv.ParseUint(tok, 0, 8)
			if err != nil {
				return fmt.Errorf("poke value must fit in a byte (%s)", tok)
			}
			dbg.m.Mem.Write(addr, uint8(v))
			dbg.printLine(terminal.StyleInstrument, "%#04x <- %#02x", addr, uint8(v))
			addr++
		}

	case cmdDisasm:
		attr := disassembly.ColumnAttr{
			Cycles: true,
		}

		tok, ok := tokens.Get()
		if ok && strings.ToUpper(tok) == "BYTECODE" {
			attr.ByteCode = true
			tok, ok = tokens.Get()
		}

		if !ok {
			// no address means the static disassembly of the whole program
			return dbg.dsm.Write(dbg.printStyle(terminal.StyleInstrument), attr)
		}

		addr, err := parseAddress(tok)
		if err != nil {
			return err
		}

		entries := 16
		if tok, ok := tokens.Get(); ok {
			n, err := strconv.Atoi(tok)
			if err != nil || n < 1 {
				return fmt.Errorf("number of entries must be a positive number (%s)", tok)
			}
			entries = n
		}

		// with an explicit address the decoding is from live memory, so the
		// listing reflects any pokes and any self modified code
		for i := 0; i < entries; i++ {
			e := disassembly.Decode(dbg.m.CPU.Set(), dbg.m.Mem, addr)
			dbg.printLine(terminal.StyleInstrument, "%s", e.StringColumnated(attr))
			addr += uint16(len(e.Raw))
		}

	case cmdInt:
		option, _ := tokens.Get()
		level := strings.ToUpper(option) == "ON"

		if tok, ok := tokens.Get(); ok {
			v, err := strconv.ParseUint(tok, 0, 8)
			if err != nil {
				return fmt.Errorf("interrupt vector must fit in a byte (%s)", tok)
			}
			dbg.intVector = uint8(v)
		}

		dbg.m.CPU.SetINT(level)
		if level {
			dbg.printLine(terminal.StyleFeedback, "INT asserted (vector %#02x)", dbg.intVector)
		} else {
			dbg.printLine(terminal.StyleFeedback, "INT released")
		}

	case cmdNmi:
		// the NMI line is edge triggered so a pulse is all that is needed
		dbg.m.CPU.SetNMI(true)
		dbg.m.CPU.SetNMI(false)
		dbg.printLine(terminal.StyleFeedback, "NMI latched")

	case cmdSaveState:
		if filename, ok := tokens.Get(); ok {
			st := state.NewState()
			dbg.m.Save(st)
			if err := st.WriteToFile(filename); err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "machine state written to %s", filename)
		} else {
			dbg.states = append(dbg.states, dbg.m.Snapshot())
			dbg.printLine(terminal.StyleFeedback, "machine state saved to slot %d", len(dbg.states)-1)
		}

	case cmdLoadState:
		arg, ok := tokens.Get()
		if !ok {
			// with no argument the most recent slot is restored
			if len(dbg.states) == 0 {
				return fmt.Errorf("no saved states")
			}
			arg = strconv.Itoa(len(dbg.states) - 1)
		}

		if slot, err := strconv.Atoi(arg); err == nil {
			if slot < 0 || slot >= len(dbg.states) {
				return fmt.Errorf("no state in slot %d", slot)
			}
			dbg.m.Plumb(dbg.states[slot])

			// plumbing gives the CPU a new set of bus signals so the taps
			// need installing again
			dbg.installBusTaps()

			dbg.printLine(terminal.StyleFeedback, "machine state restored from slot %d", slot)
			return nil
		}

		// not a slot number so the argument is a filename
		st, err := state.FromFile(arg)
		if err != nil {
			return err
		}
		if err := dbg.m.Load(st); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "machine state restored from %s", arg)

	case cmdMemViz:
		filename := "cpu.dot"
		if tok, ok := tokens.Get(); ok {
			filename = tok
		}

		buf := &bytes.Buffer{}
		memviz.Map(buf, dbg.m.CPU)
		if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
			return err
		}
		dbg.printLine(terminal.StyleFeedback, "CPU structure written to %s", filename)

	case cmdBreak:
		if err := dbg.halting.breakpoints.parseBreakpoint(tokens); err != nil {
			return err
		}

	case cmdTrap:
		if err := dbg.halting.traps.parseTrap(tokens); err != nil {
			return err
		}

	case cmdWatch:
		if err := dbg.halting.watches.parseWatch(tokens); err != nil {
			return err
		}

	case cmdTrace:
		if err := dbg.traces.parseTrace(tokens); err != nil {
			return err
		}

	case cmdList:
		option, _ := tokens.Get()
		switch strings.ToUpper(option) {
		case "BREAKS":
			dbg.halting.breakpoints.list()
		case "TRAPS":
			dbg.halting.traps.list()
		case "WATCHES":
			dbg.halting.watches.list()
		case "TRACES":
			dbg.traces.list()
		case "ALL":
			dbg.halting.breakpoints.list()
			dbg.halting.traps.list()
			dbg.halting.watches.list()
			dbg.traces.list()
		}

	case cmdDrop:
		option, _ := tokens.Get()
		s, _ := tokens.Get()
		num, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("drop attribute must be a decimal number (%s)", s)
		}

		switch strings.ToUpper(option) {
		case "BREAK":
			if err := dbg.halting.breakpoints.drop(num); err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "breakpoint #%d dropped", num)
		case "TRAP":
			if err := dbg.halting.traps.drop(num); err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "trap #%d dropped", num)
		case "WATCH":
			if err := dbg.halting.watches.drop(num); err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "watch #%d dropped", num)
		case "TRACE":
			if err := dbg.traces.drop(num); err != nil {
				return err
			}
			dbg.printLine(terminal.StyleFeedback, "trace #%d dropped", num)
		}

	case cmdClear:
		option, _ := tokens.Get()
		switch strings.ToUpper(option) {
		case "BREAKS":
			dbg.halting.breakpoints.clear()
			dbg.printLine(terminal.StyleFeedback, "breakpoints cleared")
		case "TRAPS":
			dbg.halting.traps.clear()
			dbg.printLine(terminal.StyleFeedback, "traps cleared")
		case "WATCHES":
			dbg.halting.watches.clear()
			dbg.printLine(terminal.StyleFeedback, "watches cleared")
		case "TRACES":
			dbg.traces.clear()
			dbg.printLine(terminal.StyleFeedback, "traces cleared")
		case "ALL":
			dbg.halting.breakpoints.clear()
			dbg.halting.traps.clear()
			dbg.halting.watches.clear()
			dbg.traces.clear()
			dbg.printLine(terminal.StyleFeedback, "breakpoints, traps, watches and traces cleared")
		}

	default:
		return fmt.Errorf("%s is not implemented", command)
	}

	return nil
}

// register names accepted by the REG SET command. the shadow pairs and the
// interrupt state are not in these maps and are handled separately.
var reg16ByName = map[string]registers.Reg16{
	"AF": registers.AF,
	"BC": registers.BC,
	"DE": registers.DE,
	"HL": registers.HL,
	"IX": registers.IX,
	"IY": registers.IY,
	"SP": registers.SP,
	"PC": registers.PC,
	"WZ": registers.WZ,
}

var reg8ByName = map[string]registers.Reg8{
	"A":   registers.A,
	"F":   registers.F,
	"B":   registers.B,
	"C":   registers.C,
	"D":   registers.D,
	"E":   registers.E,
	"H":   registers.H,
	"L":   registers.L,
	"IXH": registers.IXH,
	"IXL": registers.IXL,
	"IYH": registers.IYH,
	"IYL": registers.IYL,
	"I":   registers.I,
	"R":   registers.R,
}

// regSet changes the value of a register, including the shadow pairs and the
// interrupt state, none of which the instrumented Z80 treats as plain
// registers.
func (dbg *Debugger) regSet(name string, value string) error {
	name = strings.ToUpper(name)

	if r, ok := reg16ByName[name]; ok {
		v, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid value for %s (%s)", name, value)
		}
		dbg.m.CPU.Regs.Set16(r, uint16(v))
		return nil
	}

	if r, ok := reg8ByName[name]; ok {
		v, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return fmt.Errorf("invalid value for %s (%s)", name, value)
		}
		dbg.m.CPU.Regs.Set8(r, uint8(v))
		return nil
	}

	var shadow *registers.Pair
	switch name {
	case "AF'":
		shadow = &dbg.m.CPU.Regs.AF2
	case "BC'":
		shadow = &dbg.m.CPU.Regs.BC2
	case "DE'":
		shadow = &dbg.m.CPU.Regs.DE2
	case "HL'":
		shadow = &dbg.m.CPU.Regs.HL2
	}
	if shadow != nil {
		v, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid value for %s (%s)", name, value)
		}
		shadow.SetWord(uint16(v))
		return nil
	}

	switch name {
	case "IM":
		v, err := strconv.ParseUint(value, 0, 8)
		if err != nil || v > 2 {
			return fmt.Errorf("invalid interrupt mode (%s)", value)
		}
		dbg.m.CPU.IM = int(v)
		return nil

	case "IFF1", "IFF2":
		var v bool
		switch strings.ToUpper(value) {
		case "TRUE", "ON", "1":
			v = true
		case "FALSE", "OFF", "0":
			v = false
		default:
			return fmt.Errorf("invalid value for %s (%s)", name, value)
		}
		if name == "IFF1" {
			dbg.m.CPU.IFF1 = v
		} else {
			dbg.m.CPU.IFF2 = v
		}
		return nil
	}

	return fmt.Errorf("unknown register (%s)", name)
}

// parseAddress converts a token to a 16 bit address.
func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address (%s)", s)
	}
	return uint16(v), nil
}
