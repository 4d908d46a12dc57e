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

package regression

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jetsetilly/gopherz80/database"
	"github.com/jetsetilly/gopherz80/digest"
	"github.com/jetsetilly/gopherz80/hardware"
	"github.com/jetsetilly/gopherz80/romloader"
)

const digestEntryID = "digest"

const (
	digestFieldProgram int = iota
	digestFieldOrigin
	digestFieldTStates
	digestFieldCPM
	digestFieldDigest
	digestFieldState
	numDigestFields
)

// DigestRegression runs a program for a set number of T-states with a hash
// of all bus traffic being taken along the way. Programs that terminate
// through the CP/M console layer end the run early.
type DigestRegression struct {
	key int

	// path to the program image and the origin it loads at. the origin is
	// kept in its string form, "AUTO" meaning the extension decides
	Program string
	Origin  string

	// the T-state allowance for the run
	TStates int64

	// whether the CP/M console layer is enabled for the run
	CPM bool

	// hash of all bus traffic at the end of the run
	busDigest string

	// compact rendering of the machine state at the end of the run
	state string
}

// NewDigestRegression is the preferred method of initialisation for the
// DigestRegression type.
func NewDigestRegression(program string, origin string, tstates int64, cpm bool) (*DigestRegression, error) {
	if tstates <= 0 {
		return nil, fmt.Errorf("digest: tstates allowance must be a positive number")
	}

	// fail early on an unparseable origin
	if _, err := romloader.NewLoader(program, origin); err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}

	reg := &DigestRegression{
		Program: program,
		Origin:  origin,
		TStates: tstates,
		CPM:     cpm,
	}

	return reg, nil
}

func deserialiseDigestEntry(fields database.SerialisedEntry) (database.Entry, error) {
	reg := &DigestRegression{}

	if len(fields) != numDigestFields {
		return nil, fmt.Errorf("digest: wrong number of fields in database entry")
	}

	reg.Program = fields[digestFieldProgram]
	reg.Origin = fields[digestFieldOrigin]
	reg.busDigest = fields[digestFieldDigest]
	reg.state = fields[digestFieldState]

	var err error

	reg.TStates, err = strconv.ParseInt(fields[digestFieldTStates], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("digest: invalid tstates field (%s)", fields[digestFieldTStates])
	}

	reg.CPM, err = strconv.ParseBool(fields[digestFieldCPM])
	if err != nil {
		return nil, fmt.Errorf("digest: invalid cpm field (%s)", fields[digestFieldCPM])
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg DigestRegression) ID() string {
	return digestEntryID
}

// String implements the database.Entry interface.
func (reg DigestRegression) String() string {
	cpm := ""
	if reg.CPM {
		cpm = " [cpm]"
	}
	return fmt.Sprintf("[%s] %s tstates=%d%s", reg.ID(), filepath.Base(reg.Program), reg.TStates, cpm)
}

// Serialise implements the database.Entry interface.
func (reg *DigestRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
			reg.Program,
			reg.Origin,
			strconv.FormatInt(reg.TStates, 10),
			strconv.FormatBool(reg.CPM),
			reg.busDigest,
			reg.state,
		},
		nil
}

// CleanUp implements the database.Entry interface.
func (reg DigestRegression) CleanUp() error {
	return nil
}

// SetKey implements the database.Entry interface.
func (reg *DigestRegression) SetKey(key int) {
	reg.key = key
}

// GetKey implements the database.Entry interface.
func (reg DigestRegression) GetKey() int {
	return reg.key
}

// machineState renders the end-of-run state in a form that can live in a
// single database field. no commas, the database uses those.
func machineState(m *hardware.Machine) string {
	r := m.CPU.Regs
	return fmt.Sprintf("tstates=%d af=%04x bc=%04x de=%04x hl=%04x ix=%04x iy=%04x sp=%04x pc=%04x i=%02x im=%d iff1=%v halt=%v",
		m.TStates,
		r.AF.Word(), r.BC.Word(), r.DE.Word(), r.HL.Word(),
		r.IX.Word(), r.IY.Word(), r.SP.Word(), r.PC.Word(),
		r.I, m.CPU.IM, m.CPU.IFF1, m.CPU.Halted)
}

// regress implements the regression.Regressor interface.
func (reg *DigestRegression) regress(newRegression bool, output io.Writer, msg string) (bool, error) {
	output.Write([]byte(msg))

	ld, err := romloader.NewLoader(reg.Program, reg.Origin)
	if err != nil {
		return false, fmt.Errorf("digest: %w", err)
	}

	m := hardware.NewMachine()
	if reg.CPM {
		m.EnableCPM(io.Discard)
	}

	if err := m.Attach(ld); err != nil {
		return false, fmt.Errorf("digest: %w", err)
	}

	// interpose the digest tap between the CPU and the machine. the CP/M
	// layer works on the machine side of the tap so host activity does not
	// pollute the hash
	dig := digest.NewBus(m.Mem, m.Ports)
	m.CPU.Plumb(dig.Mem, dig.IO)

	// display ticker for progress meter
	tck := time.NewTicker(time.Second)
	defer tck.Stop()

	performanceFilter := 0
	err = m.Run(func() (bool, error) {
		performanceFilter++
		if performanceFilter >= hardware.PerformanceBrake {
			performanceFilter = 0
			select {
			case <-tck.C:
				output.Write([]byte(fmt.Sprintf("\r%s [%d/%d (%.1f%%)]", msg, m.TStates, reg.TStates, 100*(float64(m.TStates)/float64(reg.TStates)))))
			default:
			}
		}
		return m.TStates < reg.TStates, nil
	})
	if err != nil && !errors.Is(err, hardware.ProgramEnded) {
		return false, fmt.Errorf("digest: %w", err)
	}

	if newRegression {
		reg.busDigest = dig.Hash()
		reg.state = machineState(m)
		return true, nil
	}

	if dig.Hash() != reg.busDigest {
		return false, nil
	}
	if machineState(m) != reg.state {
		return false, nil
	}

	return true, nil
}
