package debugger

// Help contains the help text for the debugger's top level commands
var help = map[string]string{
	cmdHelp:  "Lists commands and provides help for individual debugger commands",
	cmdReset: "Reset the machine to its initial state (and reload the program)",
	cmdQuit:  "Exits the emulator",

	cmdRun:  "Run emulator until next halt state. RUN TO sets a temporary breakpoint",
	cmdStep: "Step forward one instruction",
	cmdTick: "Step forward a single T state",
	cmdHalt: "Halt emulation",

	cmdOnHalt: "Commands to run whenever emulation is halted (separate commands with comma)",
	cmdOnStep: "Commands to run whenever emulation steps forward (separate commands with comma)",
	cmdLast:   "Prints the result of the last instruction",
	cmdReg:    "Display the CPU registers. REG SET modifies an individual register",
	cmdMem:    "Inspect individual memory addresses",
	cmdDump:   "Display a formatted page of memory",
	cmdPoke:   "Modify a sequence of memory addresses. Starting address must be numeric",
	cmdDisasm: "Disassemble memory from the specified address",

	cmdInt: "Set or clear the maskable interrupt line. Optional argument sets the data bus vector",
	cmdNmi: "Pulse the non-maskable interrupt line",

	cmdSaveState: "Save machine state to an in-memory slot, or to disk if a filename is given",
	cmdLoadState: "Restore machine state from an in-memory slot or from disk",
	cmdMemViz:    "Write a graphviz visualisation of the CPU state to a file",

	// halt conditions
	cmdBreak: "Cause emulator to halt when conditions are met",
	cmdTrap:  "Cause emulator to halt when specified machine component is touched",
	cmdWatch: "Watch a memory address or IO port for activity",
	cmdTrace: "Log activity on a memory address or IO port without halting",
	cmdList:  "List current entries for breaks, traps, watches and traces",
	cmdDrop:  "Drop a specific break, trap, watch or trace condition, using the number of the condition reported by LIST",
	cmdClear: "Clear all breaks, traps, watches and traces",
}
