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
	"strconv"
	"strings"

	"github.com/jetsetilly/gopherz80/debugger/terminal"
	"github.com/jetsetilly/gopherz80/debugger/terminal/commandline"
)

// breakpoints are used to halt execution when a target is *changed to* a
// specific value. compare to traps which are used to halt execution when the
// target *changes from* its current value *to* any other value.
type breakpoints struct {
	dbg *Debugger

	// array of breakers are ORed together
	breaks []breaker
}

// breaker defines a specific break condition.
type breaker struct {
	target      *target
	value       interface{}
	ignoreValue interface{}

	// single linked list ANDs breakers together
	next *breaker
}

func (bk breaker) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s->%s", bk.target.label, bk.target.FormatValue(bk.value)))
	n := bk.next
	for n != nil {
		s.WriteString(fmt.Sprintf(" & %s->%s", n.target.label, n.target.FormatValue(n.value)))
		n = n.next
	}
	return s.String()
}

// cmp compares two breakers. returns true if the two breakers are logically
// the same.
func (bk breaker) cmp(ck breaker) bool {
	// count number of nodes
	bn := 0
	b := &bk
	for b != nil {
		bn++
		b = b.next
	}

	cn := 0
	c := &ck
	for c != nil {
		cn++
		c = c.next
	}

	// if counts are different then the comparison has failed
	if cn != bn {
		return false
	}

	// compare all nodes with one another
	b = &bk
	for b != nil {
		c = &ck
		match := false
		for c != nil {
			match = b.target.label == c.target.label && b.value == c.value
			if match {
				break // inner for loop
			}
			c = c.next
		}

		if !match {
			return false
		}

		b = b.next
	}

	return true
}

// check the specific break condition against the current value of the break
// target.
func (bk *breaker) check() bool {
	currVal := bk.target.TargetValue()
	m := currVal == bk.value
	if !m {
		bk.ignoreValue = nil
		return false
	}

	if currVal == bk.ignoreValue {
		return false
	}

	if bk.next != nil {
		if !bk.next.check() {
			return false
		}
	}

	bk.ignoreValue = currVal

	return true
}

// add a new breaker by linking it to the end of an existing breaker.
func (bk *breaker) add(nbk *breaker) {
	n := bk
	for n.next != nil {
		n = n.next
	}
	n.next = nbk
}

func newBreakpoints(dbg *Debugger) *breakpoints {
	bp := &breakpoints{dbg: dbg}
	bp.clear()
	return bp
}

// clear all breakpoints.
func (bp *breakpoints) clear() {
	bp.breaks = make([]breaker, 0, 10)
}

func (bp *breakpoints) isEmpty() bool {
	return len(bp.breaks) == 0
}

// drop a specific breakpoint by position in list.
func (bp *breakpoints) drop(num int) error {
	if num < 0 || num >= len(bp.breaks) {
		return fmt.Errorf("breakpoint #%d is not defined", num)
	}

	h := bp.breaks[:num]
	t := bp.breaks[num+1:]
	bp.breaks = make([]breaker, len(h)+len(t), cap(bp.breaks))
	copy(bp.breaks, h)
	copy(bp.breaks[len(h):], t)

	return nil
}

// check compares the current state of the machine with every breakpoint
// condition. returns a string listing every condition that matches (separated
// by \n).
func (bp *breakpoints) check() string {
	if len(bp.breaks) == 0 {
		return ""
	}

	checkString := strings.Builder{}
	for i := range bp.breaks {
		// check current value of target with the requested value
		if bp.breaks[i].check() {
			checkString.WriteString(fmt.Sprintf("break on %s\n", bp.breaks[i]))
		}
	}
	return strings.TrimRight(checkString.String(), "\n")
}

// list currently defined breakpoints.
func (bp breakpoints) list() {
	if len(bp.breaks) == 0 {
		bp.dbg.printLine(terminal.StyleFeedback, "no breakpoints")
	} else {
		bp.dbg.printLine(terminal.StyleFeedback, "breakpoints:")
		for i := range bp.breaks {
			bp.dbg.printLine(terminal.StyleFeedback, "% 2d: %s", i, bp.breaks[i])
		}
	}
}

// parse tokens and add new breakpoint. for example:
//
//	PC 0x0100
//
// adds a new breakpoint on the PC. because breaking on the PC is the most
// common case a bare value is also a breakpoint on the PC:
//
//	0x0100
//
// the & symbol ANDs conditions together and the | symbol begins a new
// condition:
//
//	PC 0x0100 & IFF1 false
func (bp *breakpoints) parseBreakpoint(tokens *commandline.Tokens) error {
	andBreaks := false

	// default target of the PC. the target will change value when the input
	// string sees something appropriate
	tgt, err := bp.dbg.parseTarget(commandline.TokeniseInput("PC"))
	if err != nil {
		return fmt.Errorf("fatality while setting up breakpoint parser: %w", err)
	}

	// resolvedTarget keeps track of whether we have specified a target but
	// not yet given a value for it. it is true initially because we want to
	// be able to change the default target
	resolvedTarget := true

	// we don't add new breakpoints to the main list straight away. we append
	// them to newBreaks first and then check that we aren't adding duplicates
	newBreaks := make([]breaker, 0, 10)

	// loop over tokens:
	//  o if token is a valid value for the current target then add a breaker
	//  o if it is not, try to interpret it as a new target
	tok, present := tokens.Get()
	for present {
		var val interface{}
		var err error

		// try to interpret the token depending on the type of value the
		// target expects
		switch tgt.TargetValue().(type) {
		case string:
			// composition symbols are never values, even for string targets
			if tok == "&" || tok == "|" {
				err = fmt.Errorf("composition symbol")
			} else {
				val = strings.ToUpper(tok)
			}
		case int:
			var v int64
			v, err = strconv.ParseInt(tok, 0, 32)
			if err == nil {
				val = int(v)
			}
		case bool:
			switch strings.ToLower(tok) {
			case "true":
				val = true
			case "false":
				val = false
			default:
				err = fmt.Errorf("invalid value (%s) for target (%s)", tok, tgt.label)
			}
		default:
			return fmt.Errorf("unsupported value type (%T) for target (%s)", tgt.TargetValue(), tgt.label)
		}

		if err == nil {
			// special handling for PC. values are masked to the addressable
			// range
			if tgt.label == "PC" {
				val = int(uint16(val.(int)))
			}

			if andBreaks {
				newBreaks[len(newBreaks)-1].add(&breaker{target: tgt, value: val})
				resolvedTarget = true
			} else {
				newBreaks = append(newBreaks, breaker{target: tgt, value: val})
				resolvedTarget = true
			}
		} else {
			// make sure we've not left a previous target dangling without a
			// value
			if !resolvedTarget {
				return fmt.Errorf("need a value (%T) to break on (%s)", tgt.TargetValue(), tgt.label)
			}

			// possibly switch composition mode
			if tok == "&" {
				andBreaks = true
			} else if tok == "|" {
				andBreaks = false
			} else {
				// token is not a value or a composition symbol so try to
				// parse a new target
				tokens.Unget()
				tgt, err = bp.dbg.parseTarget(tokens)
				if err != nil {
					return err
				}
				resolvedTarget = false
			}
		}

		tok, present = tokens.Get()
	}

	if !resolvedTarget {
		return fmt.Errorf("need a value (%T) to break on (%s)", tgt.TargetValue(), tgt.label)
	}

	for _, nb := range newBreaks {
		if err := bp.checkBreaker(nb); err != nil {
			return err
		}
		bp.breaks = append(bp.breaks, nb)
	}

	return nil
}

// checkBreaker returns an error if the breaker already exists in the list.
func (bp *breakpoints) checkBreaker(nb breaker) error {
	for _, ob := range bp.breaks {
		if nb.cmp(ob) {
			return fmt.Errorf("breakpoint already exists (%s)", ob)
		}
	}

	return nil
}
