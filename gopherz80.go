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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jetsetilly/gopherz80/debugger"
	"github.com/jetsetilly/gopherz80/debugger/terminal"
	"github.com/jetsetilly/gopherz80/debugger/terminal/colorterm"
	"github.com/jetsetilly/gopherz80/debugger/terminal/plainterm"
	"github.com/jetsetilly/gopherz80/disassembly"
	"github.com/jetsetilly/gopherz80/hardware"
	"github.com/jetsetilly/gopherz80/logger"
	"github.com/jetsetilly/gopherz80/modalflag"
	"github.com/jetsetilly/gopherz80/performance"
	"github.com/jetsetilly/gopherz80/performance/limiter"
	"github.com/jetsetilly/gopherz80/regression"
	"github.com/jetsetilly/gopherz80/romloader"
	"github.com/jetsetilly/gopherz80/statsview"
	"github.com/jetsetilly/gopherz80/version"
)

// the rate at which a capped run waits on the wall-clock limiter. small
// enough that the delivery of machine time feels continuous
const limiterRate = 50

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "DEBUG", "DISASM", "PERFORMANCE", "REGRESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "DEBUG":
		err = debug(md)
	case "DISASM":
		err = disasm(md)
	case "PERFORMANCE":
		err = perform(md)
	case "REGRESS":
		err = regress(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	rev := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	ver, revision, _ := version.Version()
	fmt.Fprintf(md.Output, "%s (%s)\n", version.ApplicationName, ver)
	if *rev {
		fmt.Fprintln(md.Output, revision)
	}

	return nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	org := md.AddString("org", "AUTO", "program load address. AUTO uses the file extension")
	cpm := md.AddBool("cpm", true, "enable the CP/M console layer")
	tstates := md.AddInt("tstates", 0, "the T-state allowance for the run. 0 means no limit")
	capped := md.AddBool("cap", false, "cap emulation to the reference clock rate")
	stats := md.AddBool("statsview", false, "run a statsview server while the program runs")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("Z80 program required for %s mode", md)
	case 1:
		ld, err := romloader.NewLoader(md.GetArg(0), *org)
		if err != nil {
			return err
		}

		m := hardware.NewMachine()
		if *cpm {
			m.EnableCPM(md.Output)
		}

		if err := m.Attach(ld); err != nil {
			return err
		}

		if *stats {
			if statsview.Available() {
				statsview.Launch(md.Output)
			} else {
				fmt.Fprintln(md.Output, "! statsview is not included in this build")
			}
		}

		// ctrl-c ends the run cleanly
		intChan := make(chan os.Signal, 1)
		signal.Notify(intChan, os.Interrupt)
		defer signal.Stop(intChan)

		var lim *limiter.Limiter
		nextSlice := int64(hardware.Clock / limiterRate)
		if *capped {
			lim = limiter.NewLimiter(limiterRate)
		}

		limit := int64(*tstates)
		limitReached := false

		// only check the interrupt channel every PerformanceBrake CPU
		// instructions. checking it is relatively expensive
		performanceBrake := 0

		err = m.Run(func() (bool, error) {
			if lim != nil && m.TStates >= nextSlice {
				lim.Wait()
				nextSlice += hardware.Clock / limiterRate
			}

			if limit > 0 && m.TStates >= limit {
				limitReached = true
				return false, nil
			}

			performanceBrake++
			if performanceBrake >= hardware.PerformanceBrake {
				performanceBrake = 0

				select {
				case <-intChan:
					return false, nil
				default:
				}
			}

			return true, nil
		})

		if err != nil && !errors.Is(err, hardware.ProgramEnded) {
			return err
		}

		if limitReached {
			fmt.Fprintf(md.Output, "! T-state allowance reached (%d)\n", limit)
		}

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	org := md.AddString("org", "AUTO", "program load address. AUTO uses the file extension")
	cpm := md.AddBool("cpm", false, "enable the CP/M console layer")
	termType := md.AddString("term", "COLOR", "terminal type to use in debug mode: COLOR, PLAIN")
	profile := md.AddBool("profile", false, "run debugger through cpu profiler")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	var term terminal.Terminal

	switch strings.ToUpper(*termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to plain\n", *termType)
		fallthrough
	case "PLAIN":
		term = &plainterm.PlainTerminal{}
	case "COLOR":
		term = &colorterm.ColorTerminal{}
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("Z80 program required for %s mode", md)

	case 1:
		ld, err := romloader.NewLoader(md.GetArg(0), *org)
		if err != nil {
			return err
		}

		m := hardware.NewMachine()
		if *cpm {
			m.EnableCPM(md.Output)
		}

		if err := m.Attach(ld); err != nil {
			return err
		}

		dbg, err := debugger.New(m, term)
		if err != nil {
			return err
		}

		// set up a running function
		dbgRun := func() error {
			return dbg.Start()
		}

		// if profile generation has been requested then pass the dbgRun()
		// function prepared above through the profiler
		if *profile {
			if err := performance.RunProfiler(performance.ProfileCPU, "debugger", dbgRun); err != nil {
				return err
			}
		} else {
			if err := dbgRun(); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	org := md.AddString("org", "AUTO", "program load address. AUTO uses the file extension")
	bytecode := md.AddBool("bytecode", false, "include bytecode in disassembly")
	cycles := md.AddBool("cycles", true, "include T-state counts in disassembly")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("Z80 program required for %s mode", md)
	case 1:
		ld, err := romloader.NewLoader(md.GetArg(0), *org)
		if err != nil {
			return err
		}

		dsm, err := disassembly.FromLoader(ld)
		if err != nil {
			return err
		}

		attr := disassembly.ColumnAttr{
			ByteCode: *bytecode,
			Cycles:   *cycles,
		}

		if err := dsm.Write(md.Output, attr); err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	org := md.AddString("org", "AUTO", "program load address. AUTO uses the file extension")
	cpm := md.AddBool("cpm", false, "enable the CP/M console layer")
	capped := md.AddBool("cap", false, "cap emulation to the reference clock rate")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "profile the run: CPU, MEM, TRACE or ALL. combine with +")
	stats := md.AddBool("statsview", false, "run a statsview server for the duration of the check")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
	} else {
		logger.SetEcho(nil, false)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("Z80 program required for %s mode", md)
	case 1:
		ld, err := romloader.NewLoader(md.GetArg(0), *org)
		if err != nil {
			return err
		}

		if *stats {
			if statsview.Available() {
				statsview.Launch(md.Output)
			} else {
				fmt.Fprintln(md.Output, "! statsview is not included in this build")
			}
		}

		err = performance.Check(md.Output, prf, ld, *cpm, *capped, *duration)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return nil
}

type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	p[0] = 'y'
	return 1, nil
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		verbose := md.AddBool("verbose", false, "output more detail (eg. error messages)")
		failOnError := md.AddBool("fail", false, "stop when a test fails")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		err = regression.RegressRunTests(md.Output, *verbose, *failOnError, md.RemainingArgs())
		if err != nil {
			return err
		}

	case "LIST":
		md.NewMode()

		// no additional arguments

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			err := regression.RegressList(md.Output)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

	case "DELETE":
		md.NewMode()

		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return fmt.Errorf("database key required for %s mode", md)
		case 1:
			// use stdin for confirmation unless "yes" flag has been sent
			var confirmation io.Reader
			if *answerYes {
				confirmation = &yesReader{}
			} else {
				confirmation = os.Stdin
			}

			err := regression.RegressDelete(md.Output, confirmation, md.GetArg(0))
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("only one entry can be deleted at at time")
		}

	case "ADD":
		return regressAdd(md)
	}

	return nil
}

func regressAdd(md *modalflag.Modes) error {
	md.NewMode()

	org := md.AddString("org", "AUTO", "program load address. AUTO uses the file extension")
	tstates := md.AddInt("tstates", 10000000, "the T-state allowance for the run")
	cpm := md.AddBool("cpm", false, "enable the CP/M console layer")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	md.AdditionalHelp(
		`The regression test to be added is the path to a Z80 program image. The program
runs for the specified T-state allowance with every bus transaction folded into a
digest. Adding the test stores the digest and the machine state at the end of the
run; re-running the test fails if either has changed.

Programs that exit through the CP/M console layer end their run early, so console
exercisers work well with a generous allowance.

The -log flag instructs the program to echo the log to the console. Note that
asking for log output will suppress regression progress meters.`)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		logger.SetEcho(os.Stdout, false)
		md.Output = &nopWriter{}
	} else {
		logger.SetEcho(nil, false)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("Z80 program required for %s mode", md)
	case 1:
		reg, err := regression.NewDigestRegression(md.GetArg(0), *org, int64(*tstates), *cpm)
		if err != nil {
			return err
		}

		err = regression.RegressAdd(md.Output, reg)
		if err != nil {
			// using carriage return (without newline) at beginning of error
			// message because we want to overwrite the last output from
			// RegressAdd()
			return fmt.Errorf("\rerror adding regression test: %w", err)
		}
	default:
		return fmt.Errorf("regression tests can only be added one at a time")
	}

	return nil
}

// nopWriter is an empty writer.
type nopWriter struct{}

func (*nopWriter) Write(p []byte) (n int, err error) {
	return 0, nil
}
