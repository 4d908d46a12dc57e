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

package disassembly

import (
	"fmt"
	"io"
)

// Write the entire disassembly to io.Writer, one line per entry.
func (dsm *Disassembly) Write(output io.Writer, attr ColumnAttr) error {
	for _, e := range dsm.Entries {
		if _, err := fmt.Fprintln(output, e.StringColumnated(attr)); err != nil {
			return fmt.Errorf("disassembly: %w", err)
		}
	}
	return nil
}
