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

package database

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Activity is used to describe the general purpose of the database session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityCreating
	ActivityModifying
)

// Session keeps track of a database connection.
type Session struct {
	path     string
	activity Activity

	dbfile *os.File

	entries    map[int]Entry
	entryTypes map[string]deserialiser
}

// StartSession starts/initialises a new database session. The initialisation
// function is used to register the entry types the database may contain.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		path:       path,
		activity:   activity,
		entries:    make(map[int]Entry),
		entryTypes: make(map[string]deserialiser),
	}

	if err := init(db); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var err error

	switch activity {
	case ActivityReading:
		db.dbfile, err = os.Open(path)
		if err != nil {
			// a database that has never been written to reads as empty
			if os.IsNotExist(err) {
				return db, nil
			}
			return nil, fmt.Errorf("database: %w", err)
		}

	case ActivityCreating:
		db.dbfile, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}

	case ActivityModifying:
		db.dbfile, err = os.OpenFile(path, os.O_RDWR, 0600)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
	}

	if err := db.readEntries(); err != nil {
		db.dbfile.Close()
		return nil, err
	}

	return db, nil
}

// EndSession closes the database. Changes made during the session are
// written back only if commitChanges is true, which requires the session to
// have been started with one of the writing activities.
func (db *Session) EndSession(commitChanges bool) error {
	if commitChanges {
		if db.activity == ActivityReading {
			return fmt.Errorf("database: cannot commit to a read-only session")
		}

		if err := db.dbfile.Truncate(0); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("database: %w", err)
		}

		for _, key := range db.SortedKeyList() {
			ent := db.entries[key]

			ser, err := ent.Serialise()
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}
			for _, f := range ser {
				if strings.Contains(f, fieldSep) || strings.Contains(f, entrySep) {
					return fmt.Errorf("database: field contains a separator (%s)", f)
				}
			}

			s := recordHeader(key, ent.ID())
			if len(ser) > 0 {
				s = s + fieldSep + strings.Join(ser, fieldSep)
			}

			if _, err := db.dbfile.WriteString(s + entrySep); err != nil {
				return fmt.Errorf("database: %w", err)
			}
		}
	}

	// end session by closing file
	if db.dbfile != nil {
		if err := db.dbfile.Close(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
		db.dbfile = nil
	}

	return nil
}

// readEntries deserialises every entry in the database file.
func (db *Session) readEntries() error {
	db.entries = make(map[int]Entry)

	if db.dbfile == nil {
		return nil
	}

	buffer, err := io.ReadAll(db.dbfile)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	for i, line := range strings.Split(string(buffer), entrySep) {
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) < numLeaderFields {
			return fmt.Errorf("database: malformed entry at line %d", i+1)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return fmt.Errorf("database: invalid key (%s) at line %d", fields[leaderFieldKey], i+1)
		}

		if _, ok := db.entries[key]; ok {
			return fmt.Errorf("database: duplicate key (%d) at line %d", key, i+1)
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return fmt.Errorf("database: unrecognised entry type (%s) at line %d", fields[leaderFieldID], i+1)
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}

		ent.SetKey(key)
		db.entries[key] = ent
	}

	return nil
}
