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

package instructions

import "fmt"

// Op tags a micro-operation. The word "data" in the op descriptions refers
// to the CPU's internal data latch, filled by the most recent bus read.
// Unless an op says otherwise it costs whatever its Step's Cycles field says
// and touches nothing but what it names.
type Op int

// The micro-operation tags.
const (
	// bus transactions. each asserts its signals and address when executed;
	// the transfer completes at the start of the following cycle.
	MemRead     Op = iota // read memory at P into the data latch
	MemReadInc            // as MemRead, incrementing P after the address is taken
	MemReadWZ1            // as MemRead, latching P+1 into WZ
	MemWrite              // write register R to memory at P
	MemWriteInc           // as MemWrite, incrementing P after the address is taken
	MemWriteData          // write the data latch to memory at P
	MemWriteAWZ           // write A to memory at P; WZ low byte = P+1, WZ high byte = A
	Push                  // decrement SP, then write register R to memory at SP
	IORead                // read the port addressed by BC; WZ = BC+1
	IOReadImm             // read the port addressed by A<<8|data; WZ = port+1
	IOWrite               // write register R to the port addressed by BC; WZ = BC+1
	IOWriteZero           // write zero to the port addressed by BC; WZ = BC+1
	IOWriteImm            // write A to the port addressed by A<<8|data; WZ low byte = port+1, WZ high byte = A
	IntAck                // interrupt acknowledge M1 cycle; vector byte into the data latch
	NmiFetch              // the discarded opcode fetch of non-maskable interrupt entry

	// data movement
	StoreData // register R = data latch
	Ld        // register R = register R2
	Ld16      // pair P = WZ
	LdSP16    // SP = pair P
	JumpIdx   // PC = pair P, leaving WZ alone
	SwapAF    // exchange AF with its shadow
	SwapAll   // exchange BC, DE and HL with their shadows
	SwapDEHL  // exchange DE with HL

	// arithmetic and logic
	Alu        // A = A <AluOp V> register R
	AluData    // A = A <AluOp V> data latch
	IncR8      // increment register R
	DecR8      // decrement register R
	IncData    // increment the data latch
	DecData    // decrement the data latch
	Inc16      // increment pair P. no flags
	Dec16      // decrement pair P. no flags
	Add16      // IdxHL += pair P; WZ = IdxHL+1 beforehand
	Adc16      // HL += pair P + carry; WZ = HL+1 beforehand
	Sbc16      // HL -= pair P + carry; WZ = HL+1 beforehand
	RotA       // rotate A by RotOp V with the accumulator flag rules
	Rot        // rotate register R by RotOp V
	RotData    // rotate the data latch by RotOp V
	Bit        // test bit V of register R
	BitData    // test bit V of the data latch; flag bits 5 and 3 from W
	SetBit     // set bit V of register R
	SetBitData // set bit V of the data latch
	ResBit     // reset bit V of register R
	ResBitData // reset bit V of the data latch
	In         // register R = data latch, with the IN r,(C) flag rules
	InF        // the IN r,(C) flag rules without a destination
	Daa
	Cpl
	Neg
	Scf
	Ccf
	Rrd // low nybble rotate right through A and the data latch; WZ = HL+1
	Rld // low nybble rotate left through A and the data latch; WZ = HL+1

	// interrupt plumbing
	Di
	Ei   // enables with a one instruction shadow
	Im   // interrupt mode = V
	Halt // stop advancing PC until an interrupt or reset
	LdAI // A = I; parity flag from IFF2, corruptible by an interrupt at the next boundary
	LdAR // A = R; parity flag as LdAI
	LdIA // I = A
	LdRA // R = A, all eight bits
	Retn // PC = WZ; IFF1 = IFF2
	Reti // as Retn, also announcing end-of-interrupt to daisy-chained devices

	// flow control. the "end" family stops the instruction early, skipping
	// the remaining steps.
	AddDispWZ     // WZ = IdxHL + sign-extended data latch
	RelJump       // WZ = PC + sign-extended data latch; PC = WZ
	Rst           // PC = V; WZ = V
	EndIfNot      // end the instruction unless condition V holds
	DecBEndIfZero // B--; end the instruction if B is now zero
	EndIfBCZero   // end the instruction if BC is zero
	EndIfBZero    // end the instruction if B is zero
	EndSearch     // end the instruction if BC is zero or the last compare matched
	Loop          // PC -= 2, re-running the instruction from its first fetch; WZ = PC+1 when V is set
	Internal      // consume the cycles without bus activity
	DecodeIndexCB // hand the data latch to the DDCB/FDCB table for decoding
	Im0Dispatch   // decode the data latch as an interrupt mode 0 opcode

	// block transfers. V carries the direction, +1 or -1
	BlockLd  // write data latch to (DE); HL, DE advance; BC--
	BlockCp  // compare A with data latch; HL and WZ advance; BC--
	BlockIn  // B--; write data latch to (HL); HL advances; WZ = BC+direction
	BlockOut // B--; write data latch to port BC; HL advances; WZ = BC+direction
)

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

var opNames = map[Op]string{
	MemRead: "MemRead", MemReadInc: "MemReadInc", MemReadWZ1: "MemReadWZ1",
	MemWrite: "MemWrite", MemWriteInc: "MemWriteInc", MemWriteData: "MemWriteData",
	MemWriteAWZ: "MemWriteAWZ", Push: "Push",
	IORead: "IORead", IOReadImm: "IOReadImm", IOWrite: "IOWrite",
	IOWriteZero: "IOWriteZero", IOWriteImm: "IOWriteImm",
	IntAck: "IntAck", NmiFetch: "NmiFetch",
	StoreData: "StoreData", Ld: "Ld", Ld16: "Ld16", LdSP16: "LdSP16",
	JumpIdx: "JumpIdx", SwapAF: "SwapAF", SwapAll: "SwapAll", SwapDEHL: "SwapDEHL",
	Alu: "Alu", AluData: "AluData", IncR8: "IncR8", DecR8: "DecR8",
	IncData: "IncData", DecData: "DecData", Inc16: "Inc16", Dec16: "Dec16",
	Add16: "Add16", Adc16: "Adc16", Sbc16: "Sbc16",
	RotA: "RotA", Rot: "Rot", RotData: "RotData",
	Bit: "Bit", BitData: "BitData", SetBit: "SetBit", SetBitData: "SetBitData",
	ResBit: "ResBit", ResBitData: "ResBitData",
	In: "In", InF: "InF",
	Daa: "Daa", Cpl: "Cpl", Neg: "Neg", Scf: "Scf", Ccf: "Ccf",
	Rrd: "Rrd", Rld: "Rld",
	Di: "Di", Ei: "Ei", Im: "Im", Halt: "Halt",
	LdAI: "LdAI", LdAR: "LdAR", LdIA: "LdIA", LdRA: "LdRA",
	Retn: "Retn", Reti: "Reti",
	AddDispWZ: "AddDispWZ", RelJump: "RelJump", Rst: "Rst",
	EndIfNot: "EndIfNot", DecBEndIfZero: "DecBEndIfZero",
	EndIfBCZero: "EndIfBCZero", EndIfBZero: "EndIfBZero", EndSearch: "EndSearch",
	Loop: "Loop", Internal: "Internal",
	DecodeIndexCB: "DecodeIndexCB", Im0Dispatch: "Im0Dispatch",
	BlockLd: "BlockLd", BlockCp: "BlockCp", BlockIn: "BlockIn", BlockOut: "BlockOut",
}

// AluOp selects the operation performed by the Alu and AluData micro-ops. The
// ordering follows bits 5-3 of the arithmetic group opcodes.
type AluOp int

// The AluOp values.
const (
	AluAdd AluOp = iota
	AluAdc
	AluSub
	AluSbc
	AluAnd
	AluXor
	AluOr
	AluCp
)

func (op AluOp) String() string {
	return [...]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}[op]
}

// RotOp selects the operation performed by the rotate micro-ops. The ordering
// follows bits 5-3 of the CB rotate group, including the undocumented SLL.
type RotOp int

// The RotOp values.
const (
	RotRLC RotOp = iota
	RotRRC
	RotRL
	RotRR
	RotSLA
	RotSRA
	RotSLL
	RotSRL
)

func (op RotOp) String() string {
	return [...]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}[op]
}

// Cond identifies a branch condition. The ordering follows bits 5-3 of the
// conditional jump group.
type Cond int

// The Cond values.
const (
	CondNZ Cond = iota
	CondZ
	CondNC
	CondC
	CondPO
	CondPE
	CondP
	CondM
)

func (c Cond) String() string {
	return [...]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}[c]
}
