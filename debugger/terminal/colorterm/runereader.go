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

//go:build !windows
// +build !windows

package colorterm

import (
	"bufio"
	"io"
)

type readRune struct {
	r   rune
	n   int
	err error
}

// runeReader is how TermRead() receives input. reading through a channel like
// this means TermRead() can service other events while waiting for the next
// keypress.
type runeReader chan readRune

func initRuneReader(input io.Reader) runeReader {
	reader := bufio.NewReader(input)

	// a buffer of one means TermReadCheck() can detect a keypress that
	// arrived while the emulation was running
	ch := make(chan readRune, 1)

	go func() {
		for {
			r, n, err := reader.ReadRune()
			ch <- readRune{r, n, err}
			if err != nil {
				return
			}
		}
	}()

	return runeReader(ch)
}
