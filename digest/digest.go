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

// Package digest produces a hash of everything the CPU does on its buses.
// The hash can be used to compare output from subsequent emulation
// executions - if a new hash differs from a previously recorded value then
// something has changed. We use this as the basis for regression tests.
//
// Note that the hash is not cryptographic. It only needs to be sensitive to
// change, a task for which a fast non-cryptographic hash is fine.
package digest

// Digest implementations produce a hash in response to a Hash() request.
// Generation of the hash is achieved through other interfaces.
type Digest interface {
	Hash() string
	ResetDigest()
}
