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
	"sort"

	"github.com/jetsetilly/gopherz80/debugger/terminal/commandline"
)

// debugger keywords
const (
	cmdHelp = "HELP"

	cmdReset = "RESET"
	cmdQuit  = "QUIT"

	cmdRun  = "RUN"
	cmdStep = "STEP"
	cmdTick = "TICK"
	cmdHalt = "HALT"

	cmdOnHalt = "ONHALT"
	cmdOnStep = "ONSTEP"
	cmdLast   = "LAST"
	cmdReg    = "REG"
	cmdMem    = "MEM"
	cmdDump   = "DUMP"
	cmdPoke   = "POKE"
	cmdDisasm = "DISASM"

	// interrupt lines
	cmdInt = "INT"
	cmdNmi = "NMI"

	// machine state
	cmdSaveState = "SAVESTATE"
	cmdLoadState = "LOADSTATE"
	cmdMemViz    = "MEMVIZ"

	// halt conditions
	cmdBreak = "BREAK"
	cmdTrap  = "TRAP"
	cmdWatch = "WATCH"
	cmdTrace = "TRACE"
	cmdList  = "LIST"
	cmdDrop  = "DROP"
	cmdClear = "CLEAR"
)

var commandTemplate = []string{
	cmdReset,
	cmdQuit,

	cmdRun + " (TO %<address>S)",
	cmdStep,
	cmdTick,
	cmdHalt,

	cmdOnHalt + " (OFF|ECHO|%<command>S {%<commands>S})",
	cmdOnStep + " (OFF|ECHO|%<command>S {%<commands>S})",
	cmdLast + " (DEFN|BYTECODE)",
	cmdReg + " (SET %<register>S %<value>S)",
	cmdMem + " [%<address>S] {%<addresses>S}",
	cmdDump + " (%<address>S) (%<lines>N)",
	cmdPoke + " %<address>S [%<value>N] {%<values>N}",
	cmdDisasm + " (BYTECODE) (%<address>S (%<entries>N))",

	// interrupt lines
	cmdInt + " [ON|OFF] (%<vector>S)",
	cmdNmi,

	// machine state
	cmdSaveState + " (%<file>S)",
	cmdLoadState + " (%<slot>S)",
	cmdMemViz + " (%<file>S)",

	// halt conditions
	cmdBreak + " [%<address>S|%<target>S %<value>S] {& %<address>S|%<target>S %<value>S}",
	cmdTrap + " [%<target>S] {%<target>S}",
	cmdWatch + " (READ|WRITE) (PORT) %<address>S (%<value>S)",
	cmdTrace + " (PORT) (%<address>S)",
	cmdList + " [BREAKS|TRAPS|WATCHES|TRACES|ALL]",
	cmdDrop + " [BREAK|TRAP|WATCH|TRACE] %<number>N",
	cmdClear + " [BREAKS|TRAPS|WATCHES|TRACES|ALL]",
}

// debuggerCommands is the tree of valid commands.
var debuggerCommands *commandline.Commands

// this init() function "compiles" the commandTemplate above into a more
// usable form. it will cause the program to fail early if the template is
// invalid.
func init() {
	var err error

	debuggerCommands, err = commandline.ParseCommandTemplate(commandTemplate)
	if err != nil {
		panic(err)
	}

	err = debuggerCommands.AddHelp(cmdHelp, help)
	if err != nil {
		panic(err)
	}
	sort.Stable(debuggerCommands)
}
