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
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"
)

// Profile is used to specify the type of profiles to generate.
type Profile int

// List of valid Profile values. Values can be ORed together.
const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 1 << iota
	ProfileMem
	ProfileTrace
)

// ProfileAll requests every profile type at once.
const ProfileAll = ProfileCPU | ProfileMem | ProfileTrace

// ParseProfileString converts a profile request string to a Profile value.
// Requests can be combined with the plus sign, eg. "cpu+mem".
func ParseProfileString(request string) (Profile, error) {
	profile := ProfileNone

	for _, r := range strings.Split(request, "+") {
		switch strings.ToUpper(strings.TrimSpace(r)) {
		case "NONE", "":
			// adds nothing to the profile value
		case "CPU":
			profile |= ProfileCPU
		case "MEM":
			profile |= ProfileMem
		case "TRACE":
			profile |= ProfileTrace
		case "ALL":
			profile |= ProfileAll
		default:
			return ProfileNone, fmt.Errorf("performance: unrecognised profile (%s)", r)
		}
	}

	return profile, nil
}

// RunProfiler runs the supplied function with the requested profilers
// attached. Profiles are written to files named after the tag.
func RunProfiler(profile Profile, tag string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", tag))
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if profile&ProfileTrace == ProfileTrace {
		f, err := os.Create(fmt.Sprintf("%s_trace.profile", tag))
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer f.Close()

		if err := trace.Start(f); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer trace.Stop()
	}

	runErr := run()

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(fmt.Sprintf("%s_mem.profile", tag))
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("performance: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
	}

	return runErr
}
