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

// Package regression facilitates the regression testing of emulation code.
// By adding test results to a database, the tests can be rerun automatically
// and checked for consistancy.
//
// The digest test runs a program for a set number of T-states, folding every
// bus transaction the CPU makes into a hash. The hash and the machine state
// at the end of the run are saved to the test database. Because the hash
// covers the address and data of every memory and port access, in order, a
// digest test is sensitive to the tiniest change in instruction behaviour.
// And because the run is bounded by a T-state count rather than an
// instruction count, it is just as sensitive to changes in instruction
// timing.
//
// Programs that signal completion through the CP/M console layer stop there
// and then, so exercisers like ZEXDOC make good digest tests with any
// sufficiently large T-state allowance.
package regression
