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

package performance

import "github.com/jetsetilly/gopherz80/hardware"

// CalcRate takes a number of T-states and a duration (in seconds) and
// returns the emulated clock rate and that rate as a percentage of the
// reference machine's clock.
func CalcRate(tstates int64, duration float64) (rate float64, speed float64) {
	rate = float64(tstates) / duration
	speed = 100 * rate / hardware.Clock
	return rate, speed
}
