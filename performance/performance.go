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

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopherz80/hardware"
	"github.com/jetsetilly/gopherz80/performance/limiter"
	"github.com/jetsetilly/gopherz80/romloader"
)

// sentinel error returned by the Run() loop.
var timedOut = errors.New("performance timed out")

// capped runs are metered in slices small enough that the delivery of
// machine time feels continuous.
const sliceRate = 50
const sliceTStates = hardware.Clock / sliceRate

// Check the performance of the emulator using the supplied program.
//
// Emulation will run for the specified duration and will create a cpu
// profile, a memory profile, an execution trace (or a combination of those)
// as defined by the profile argument.
//
// A capped run is held to the reference machine's clock rate, which turns
// the check into a verification that the host can sustain realtime speed.
func Check(output io.Writer, profile Profile, ld romloader.Loader, cpm bool, capped bool, duration string) error {
	m := hardware.NewMachine()

	if cpm {
		m.EnableCPM(io.Discard)
	}

	if err := m.Attach(ld); err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	var lim *limiter.Limiter
	if capped {
		lim = limiter.NewLimiter(sliceRate)
	}

	// T-state count at the start of the measurement period
	startTStates := m.TStates

	// run for specified period of time
	runner := func() error {
		// setup trigger that expires when duration has elapsed. signals
		// false to indicate that performance measurement should start and
		// true when the duration has expired
		timerChan := make(chan bool)

		// force a two second leadtime to allow the host to settle down and
		// then restart the timer for the specified duration
		go func() {
			time.AfterFunc(2*time.Second, func() {
				timerChan <- false

				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		// only check the timer channel every PerformanceBrake CPU
		// instructions. checking it is relatively expensive
		performanceBrake := 0

		// the T-state count at which a capped run waits for the limiter
		nextSlice := int64(sliceTStates)

		return m.Run(func() (bool, error) {
			if lim != nil && m.TStates >= nextSlice {
				lim.Wait()
				nextSlice += sliceTStates
			}

			performanceBrake++
			if performanceBrake >= hardware.PerformanceBrake {
				performanceBrake = 0

				select {
				case v := <-timerChan:
					if v {
						return false, timedOut
					}

					// leadtime has concluded, measurement starts here
					startTStates = m.TStates
				default:
				}
			}

			return true, nil
		})
	}

	// launch runner directly or through the profiler, depending on supplied
	// arguments
	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		if errors.Is(err, hardware.ProgramEnded) {
			output.Write([]byte("program ended before the check completed\n"))
			return nil
		}
		if !errors.Is(err, timedOut) {
			return fmt.Errorf("performance: %w", err)
		}
	}

	// calculate performance
	numTStates := m.TStates - startTStates
	rate, speed := CalcRate(numTStates, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f MHz (%d T-states in %.2f seconds) %.1f%% of reference speed\n",
		rate/1e6, numTStates, dur.Seconds(), speed)))

	return nil
}
