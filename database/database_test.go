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

package database_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gopherz80/database"
	"github.com/jetsetilly/gopherz80/test"
)

const testEntryID = "test"

type testEntry struct {
	key   int
	label string
	value string
}

func deserialiseTestEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != 2 {
		return nil, fmt.Errorf("wrong number of fields in test entry")
	}
	return &testEntry{label: fields[0], value: fields[1]}, nil
}

func (ent testEntry) ID() string {
	return testEntryID
}

func (ent testEntry) String() string {
	return fmt.Sprintf("%s [%s]", ent.label, ent.value)
}

func (ent testEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{ent.label, ent.value}, nil
}

func (ent testEntry) CleanUp() error {
	return nil
}

func (ent *testEntry) SetKey(key int) {
	ent.key = key
}

func (ent testEntry) GetKey() int {
	return ent.key
}

func initTestSession(db *database.Session) error {
	return db.RegisterEntryType(testEntryID, deserialiseTestEntry)
}

func TestEmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testDB")

	// a database file that has never been written reads as empty
	db, err := database.StartSession(dbPath, database.ActivityReading, initTestSession)
	test.ExpectedSuccess(t, err)
	test.Equate(t, db.NumEntries(), 0)

	w := &test.CompareWriter{}
	test.ExpectedSuccess(t, db.List(w))
	test.ExpectedSuccess(t, w.Compare("database is empty\n"))

	// committing to a read-only session is refused
	test.ExpectedFailure(t, db.EndSession(true))
	test.ExpectedSuccess(t, db.EndSession(false))
}

func TestRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(dbPath, database.ActivityCreating, initTestSession)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, db.Add(&testEntry{label: "first", value: "one"}))
	test.ExpectedSuccess(t, db.Add(&testEntry{label: "second", value: "two"}))
	test.Equate(t, db.NumEntries(), 2)
	test.ExpectedSuccess(t, db.EndSession(true))

	// fresh session sees the same entries
	db, err = database.StartSession(dbPath, database.ActivityReading, initTestSession)
	test.ExpectedSuccess(t, err)
	test.Equate(t, db.NumEntries(), 2)

	w := &test.CompareWriter{}
	test.ExpectedSuccess(t, db.List(w))
	test.ExpectedSuccess(t, w.Compare("000 first [one]\n001 second [two]\nTotal: 2\n"))

	n := 0
	_, err = db.SelectAll(func(_ database.Entry) error {
		n++
		return nil
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, n, 2)

	ent, err := db.SelectKeys(nil, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "second [two]")
	test.Equate(t, ent.GetKey(), 1)

	// unknown keys are an error
	_, err = db.SelectKeys(nil, 100)
	test.ExpectedFailure(t, err)

	test.ExpectedSuccess(t, db.EndSession(false))
}

func TestDeletion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(dbPath, database.ActivityCreating, initTestSession)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, db.Add(&testEntry{label: "first", value: "one"}))
	test.ExpectedSuccess(t, db.Add(&testEntry{label: "second", value: "two"}))
	test.ExpectedSuccess(t, db.EndSession(true))

	db, err = database.StartSession(dbPath, database.ActivityModifying, initTestSession)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, db.Delete(0))
	test.ExpectedFailure(t, db.Delete(100))
	test.ExpectedSuccess(t, db.EndSession(true))

	// the remaining entry keeps its original key
	db, err = database.StartSession(dbPath, database.ActivityReading, initTestSession)
	test.ExpectedSuccess(t, err)
	test.Equate(t, db.NumEntries(), 1)

	ent, err := db.SelectKeys(nil, 1)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "second [two]")
	test.ExpectedSuccess(t, db.EndSession(false))
}

func TestSeparatorGuard(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(dbPath, database.ActivityCreating, initTestSession)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, db.Add(&testEntry{label: "first,second", value: "one"}))
	test.ExpectedFailure(t, db.EndSession(true))
	test.ExpectedSuccess(t, db.EndSession(false))
}
