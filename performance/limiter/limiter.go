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

// Package limiter provides a rough and ready way of limiting events to a
// fixed rate.
//
// A new Limiter can be created with:
//
//	lim := limiter.NewLimiter(50)
//
// Operations can then be stalled with the Wait() function. For example:
//
//	for {
//		lim.Wait()
//		runSlice()
//	}
package limiter

import (
	"time"
)

// this is a really rough attempt at rate limiting. probably only any good
// if base performance of the host is well above the required rate.

// Limiter triggers at a steady number of events per second.
type Limiter struct {
	eventsPerSecond int
	perEvent        time.Duration

	tick chan bool
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
func NewLimiter(eventsPerSecond int) *Limiter {
	lim := &Limiter{}
	lim.SetLimit(eventsPerSecond)

	lim.tick = make(chan bool)

	// run ticker concurrently
	go func() {
		adjustedPerEvent := lim.perEvent
		t := time.Now()
		for {
			lim.tick <- true
			time.Sleep(adjustedPerEvent)
			nt := time.Now()
			adjustedPerEvent -= nt.Sub(t) - lim.perEvent
			t = nt
		}
	}()

	return lim
}

// SetLimit changes the rate at which the Limiter triggers.
func (lim *Limiter) SetLimit(eventsPerSecond int) {
	lim.eventsPerSecond = eventsPerSecond
	lim.perEvent = time.Duration(float64(time.Second) / float64(eventsPerSecond))
}

// Wait blocks until the next trigger.
func (lim *Limiter) Wait() {
	<-lim.tick
}
