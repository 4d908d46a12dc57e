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

package bus

import "github.com/jetsetilly/gopherz80/state"

// Save appends the bus pins to the snapshot. Hooks are runtime wiring and
// are not saved.
func (s *Signals) Save(st *state.State) {
	st.Write16(s.Addr)
	st.Write8(s.Data)
	st.WriteBool(s.MREQ)
	st.WriteBool(s.IORQ)
	st.WriteBool(s.RD)
	st.WriteBool(s.WR)
	st.WriteBool(s.M1)
	st.WriteBool(s.RFSH)
	st.WriteBool(s.WAIT)
}

// Load restores the bus pins from the snapshot. The restoration is silent:
// hooks report edges as they happen, not the recreation of old levels.
func (s *Signals) Load(st *state.State) error {
	s.Addr = st.Read16()
	s.Data = st.Read8()
	s.MREQ = st.ReadBool()
	s.IORQ = st.ReadBool()
	s.RD = st.ReadBool()
	s.WR = st.ReadBool()
	s.M1 = st.ReadBool()
	s.RFSH = st.ReadBool()
	s.WAIT = st.ReadBool()
	return st.Err()
}
