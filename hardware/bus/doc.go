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

// Package bus defines how the CPU sees the rest of the machine. The Memory
// and IO interfaces are the two address spaces the Z80 can reach; the
// embedding machine supplies implementations of both. Transfers cannot fail
// from the CPU's point of view so neither interface returns an error. A
// machine with unmapped areas decides for itself what an unmapped read
// returns (0xff on most real buses).
//
// The Signals type models the control bus. It records the levels of the
// signal pins the CPU drives (MREQ, IORQ, RD, WR, M1, RFSH), the address and
// data latches, and the WAIT input that external hardware can use to stretch
// a bus transaction. Devices that care about bus activity - a regression
// digest, a machine with side effects on specific cycles, a debugger watch -
// register Hooks rather than polling.
//
// The CPU guarantees hook ordering within a transaction: signal assertion
// (with the address latch already valid), then the data transfer, then
// de-assertion. Transactions are never reordered or combined. The refresh
// portion of an opcode fetch is reported as a single pulse at the end of the
// fetch; the sub-cycle placement within the machine cycle is not modelled.
package bus
