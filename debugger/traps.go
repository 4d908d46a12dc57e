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

package debugger

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopherz80/debugger/terminal"
	"github.com/jetsetilly/gopherz80/debugger/terminal/commandline"
)

// traps are used to halt execution whenever the target *changes from* its
// current value. compare to breakpoints which are used to halt execution
// when the target is *changed to* a specific value.
type traps struct {
	dbg   *Debugger
	traps []trapper
}

// trapper defines a specific trap condition.
type trapper struct {
	target    *target
	origValue interface{}
}

func (tr trapper) String() string {
	return tr.target.label
}

func newTraps(dbg *Debugger) *traps {
	tr := &traps{dbg: dbg}
	tr.clear()
	return tr
}

// clear all traps.
func (tr *traps) clear() {
	tr.traps = make([]trapper, 0, 10)
}

func (tr *traps) isEmpty() bool {
	return len(tr.traps) == 0
}

// drop a specific trap by position in list.
func (tr *traps) drop(num int) error {
	if num < 0 || num >= len(tr.traps) {
		return fmt.Errorf("trap #%d is not defined", num)
	}

	h := tr.traps[:num]
	t := tr.traps[num+1:]
	tr.traps = make([]trapper, len(h)+len(t), cap(tr.traps))
	copy(tr.traps, h)
	copy(tr.traps[len(h):], t)

	return nil
}

// check compares the current state of the machine with every trap condition.
// returns a string listing every condition that matches (separated by \n).
func (tr *traps) check() string {
	if len(tr.traps) == 0 {
		return ""
	}

	checkString := strings.Builder{}
	for i := range tr.traps {
		trapValue := tr.traps[i].target.TargetValue()

		if trapValue != tr.traps[i].origValue {
			checkString.WriteString(fmt.Sprintf("trap on %s [%s->%s]\n",
				tr.traps[i].target.label,
				tr.traps[i].target.FormatValue(tr.traps[i].origValue),
				tr.traps[i].target.FormatValue(trapValue)))
			tr.traps[i].origValue = trapValue
		}
	}
	return strings.TrimRight(checkString.String(), "\n")
}

// list currently defined traps.
func (tr traps) list() {
	if len(tr.traps) == 0 {
		tr.dbg.printLine(terminal.StyleFeedback, "no traps")
	} else {
		tr.dbg.printLine(terminal.StyleFeedback, "traps:")
		for i := range tr.traps {
			tr.dbg.printLine(terminal.StyleFeedback, "% 2d: %s", i, tr.traps[i])
		}
	}
}

// parse tokens and add new trap(s). a trap is valid for any number of
// targets. for example:
//
//	TRAP HL SP
//
// traps changes to the HL and SP registers.
func (tr *traps) parseTrap(tokens *commandline.Tokens) error {
	_, present := tokens.Peek()
	for present {
		tgt, err := tr.dbg.parseTarget(tokens)
		if err != nil {
			return err
		}

		// check to see if target is already being trapped
		addNewTrap := true
		for _, t := range tr.traps {
			if t.target.label == tgt.label {
				addNewTrap = false
				tr.dbg.printLine(terminal.StyleError, "trap already exists (%s)", t)
				break // for loop
			}
		}

		if addNewTrap {
			tr.traps = append(tr.traps, trapper{
				target:    tgt,
				origValue: tgt.TargetValue(),
			})
		}

		_, present = tokens.Peek()
	}

	return nil
}
