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
	"sort"
	"strconv"

	"github.com/jetsetilly/gopherz80/database"
	"github.com/jetsetilly/gopherz80/debugger/terminal/colorterm/easyterm/ansi"
	"github.com/jetsetilly/gopherz80/resources"
)

// the location of the regressionDB file and the location of any regression
// scripts. subdirectory of the resources path.
const regressionPath = "regression"
const regressionDBFile = "db"
const fails = "fails"

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag causes the test return the successful result rather than compare
	// it with a previous result.
	//
	// message is the string to print during the regression. the writing of
	// success or failure messages however, is the responsibility of the
	// caller of the regress() function.
	regress(newRegression bool, output io.Writer, message string) (bool, error)
}

// when starting a database session we need to register what entries we will
// find in the database.
func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(digestEntryID, deserialiseDigestEntry)
}

func startSession(activity database.Activity) (*database.Session, error) {
	p, err := resources.JoinPath(regressionPath, regressionDBFile)
	if err != nil {
		return nil, fmt.Errorf("regression: %w", err)
	}

	db, err := database.StartSession(p, activity, initDBSession)
	if err != nil {
		return nil, fmt.Errorf("regression: %w", err)
	}

	return db, nil
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	if output == nil {
		return fmt.Errorf("regression: output should not be nil")
	}

	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	if err := db.List(output); err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	return nil
}

// RegressAdd adds a new regression test to the database.
func RegressAdd(output io.Writer, reg Regressor) error {
	if output == nil {
		return fmt.Errorf("regression: output should not be nil")
	}

	db, err := startSession(database.ActivityCreating)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	msg := fmt.Sprintf("adding: %s", reg)
	ok, err := reg.regress(true, output, msg)
	output.Write([]byte(ansi.ClearLine))
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}
	if !ok {
		return fmt.Errorf("regression: adding test failed")
	}

	if err := db.Add(reg); err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	output.Write([]byte(fmt.Sprintf("\radded: %s\n", reg)))

	return nil
}

// RegressDelete removes a test from the regression database. The
// confirmation reader is used to ask the user to confirm the deletion.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	if output == nil {
		return fmt.Errorf("regression: output should not be nil")
	}

	v, err := strconv.Atoi(key)
	if err != nil {
		return fmt.Errorf("regression: invalid key (%s)", key)
	}

	db, err := startSession(database.ActivityModifying)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	reg, err := db.SelectKeys(nil, v)
	if err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	output.Write([]byte(fmt.Sprintf("%s\ndelete? (y/n): ", reg)))

	confirm := make([]byte, 32)
	if _, err := confirmation.Read(confirm); err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		if err := db.Delete(v); err != nil {
			return fmt.Errorf("regression: %w", err)
		}
		output.Write([]byte(fmt.Sprintf("deleted test #%s from regression database\n", key)))
	}

	return nil
}

// sentinel error for the early end of a test run.
var errTestRunEnded = errors.New("test run ended")

// RegressRunTests runs the tests in the regression database. The filterKeys
// list specifies which entries to test. An empty list means that every entry
// should be tested. The keyword FAILS anywhere in the list stands for every
// key that failed on the previous run.
func RegressRunTests(output io.Writer, verbose bool, failOnError bool, filterKeys []string) error {
	if output == nil {
		return fmt.Errorf("regression: output should not be nil")
	}

	keys, err := addFailsToKeys(filterKeys)
	if err != nil {
		if errors.Is(err, noPreviousFails) {
			output.Write([]byte(fmt.Sprintf("%s\n", err.Error())))
			return nil
		}
		return fmt.Errorf("regression: %w", err)
	}

	// make sure the list of keys is numeric and in order
	keysV := make([]int, 0, len(keys))
	for _, key := range keys {
		v, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("regression: invalid key (%s)", key)
		}
		keysV = append(keysV, v)
	}
	sort.Ints(keysV)

	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	numSucceed := 0
	numFail := 0
	numError := 0

	// list of keys that failed this run. saved for the FAILS keyword
	newFails := make([]string, 0)

	defer func() {
		numSkipped := db.NumEntries() - numSucceed - numFail - numError
		output.Write([]byte(fmt.Sprintf("regression tests: %d succeed, %d fail, %d skipped", numSucceed, numFail, numSkipped)))
		if numError > 0 {
			output.Write([]byte(" [with errors]"))
		}
		output.Write([]byte("\n"))
	}()

	onSelect := func(ent database.Entry) error {
		// database entry should also satisfy the Regressor interface
		reg, ok := ent.(Regressor)
		if !ok {
			return fmt.Errorf("database entry does not satisfy the Regressor interface")
		}

		// run regress() function with message. message does not have a
		// trailing newline
		msg := fmt.Sprintf("running: %s", reg)
		ok, err := reg.regress(false, output, msg)

		// once regress() has completed we clear the line ready for the
		// completion message
		output.Write([]byte(ansi.ClearLine))

		if err != nil {
			numError++
			newFails = append(newFails, strconv.Itoa(ent.GetKey()))
			output.Write([]byte(fmt.Sprintf("\r ERROR: %s\n", reg)))
			if verbose {
				output.Write([]byte(fmt.Sprintf("  %s\n", err)))
			}
			if failOnError {
				return errTestRunEnded
			}
		} else if !ok {
			numFail++
			newFails = append(newFails, strconv.Itoa(ent.GetKey()))
			output.Write([]byte(fmt.Sprintf("\rfailure: %s\n", reg)))
		} else {
			numSucceed++
			output.Write([]byte(fmt.Sprintf("\rsucceed: %s\n", reg)))
		}

		return nil
	}

	if len(keysV) == 0 {
		_, err = db.SelectAll(onSelect)
	} else {
		_, err = db.SelectKeys(onSelect, keysV...)
	}
	if err != nil && !errors.Is(err, errTestRunEnded) {
		return fmt.Errorf("regression: %w", err)
	}

	// save list of failed tests to disk, even when the list is empty. a
	// fully successful run forgetting the previous fails is what makes the
	// FAILS keyword useful
	if err := saveFails(newFails); err != nil {
		return fmt.Errorf("regression: %w", err)
	}

	return nil
}
