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

import "fmt"

// SelectAll entries in the database. onSelect can be nil.
//
// Selection stops on the first error returned by onSelect().
//
// Returns the last entry in the selection, or the entry for which onSelect()
// returned the error.
func (db Session) SelectAll(onSelect func(Entry) error) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ Entry) error { return nil }
	}

	for _, key := range db.SortedKeyList() {
		entry = db.entries[key]
		if err := onSelect(entry); err != nil {
			return entry, err
		}
	}

	return entry, nil
}

// SelectKeys matches entries with the specified key(s). keys can be singular.
// if the list of keys is empty then all keys are matched (SelectAll() maybe
// more appropriate in that case). onSelect can be nil.
//
// Selection stops on the first error returned by onSelect(). A key with no
// corresponding entry is itself an error.
//
// Returns the last entry in the selection, or the entry for which onSelect()
// returned the error.
func (db Session) SelectKeys(onSelect func(Entry) error, keys ...int) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ Entry) error { return nil }
	}

	keyList := keys
	if len(keys) == 0 {
		keyList = db.SortedKeyList()
	}

	for _, key := range keyList {
		e, ok := db.entries[key]
		if !ok {
			return entry, fmt.Errorf("database: key not available (%d)", key)
		}
		entry = e
		if err := onSelect(entry); err != nil {
			return entry, err
		}
	}

	if entry == nil {
		return nil, fmt.Errorf("database: select empty")
	}

	return entry, nil
}
