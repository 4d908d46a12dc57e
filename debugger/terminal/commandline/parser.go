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

package commandline

import (
	"fmt"
	"strings"
)

// ParseCommandTemplate turns a string representation of a command template
// into a machine friendly representation.
//
// Syntax
//
//	[ a ]	required grouping
//	( a )	optional grouping
//	{ a }	repeat grouping
//	|		alternative
//
// groups can be embedded in one another.
//
// Placeholders
//
//	%N		numeric value
//	%P		floating point value
//	%S		string
//	%F		file name
//
// placeholders can be labelled. for example:
//
//	%<first name>S
func ParseCommandTemplate(template []string) (*Commands, error) {
	cmds := &Commands{
		cmds:  make([]*node, 0, 10),
		Index: make(map[string]*node),
	}

	for t := range template {
		defn := template[t]

		// tidy up spaces in definition - we don't want more than one
		// consecutive space
		defn = strings.Join(strings.Fields(defn), " ")

		// normalise to upper case
		defn = strings.ToUpper(defn)

		// parse the definition for this command
		p, d, err := parseDefinition(defn, "")
		if err != nil {
			return nil, fmt.Errorf("parser: %s: %s (char %d)", defn, err, d)
		}

		// check that parsing was complete
		if d < len(defn)-1 {
			return nil, fmt.Errorf("parser: %s: unexpected syntax (char %d)", defn, d)
		}

		// command must begin with a keyword
		if p.tag == "" || p.isPlaceholder() {
			return nil, fmt.Errorf("parser: %s: command must begin with a keyword", defn)
		}

		// add to list of commands (order of commands is kept)
		cmds.cmds = append(cmds.cmds, p)

		// add to index
		cmds.Index[p.tag] = p
	}

	return cmds, nil
}

// parseDefinition parses the group of the definition opened by trigger. the
// root of a definition is treated as a group with the empty trigger. returns
// the start node of the group and the index of the last character processed.
func parseDefinition(defn string, trigger string) (*node, int, error) {
	// the type of node created inside this group
	var typ nodeType

	switch trigger {
	case "(", "{":
		typ = nodeOptional
	case "[":
		typ = nodeRequired
	case "":
		typ = nodeRoot
	default:
		return nil, 0, fmt.Errorf("unknown group type (%s)", trigger)
	}

	// the start node is the node returned to the caller. the anchor is the
	// node new sequence elements are attached to - it is the start node
	// until a branch begins
	sn := &node{typ: typ, repeatStart: trigger == "{"}
	anchor := sn

	// token accumulation
	tok := strings.Builder{}

	// commit the accumulated token to the anchor. the first token of a
	// sequence names the anchor itself, subsequent tokens (and all groups)
	// are appended to the anchor's next array
	commit := func() error {
		if tok.Len() == 0 {
			return nil
		}

		t := tok.String()
		tok.Reset()

		var label string

		if t[0] == '%' {
			// validate placeholder directives. labelled placeholders are of
			// the form %<label>S
			if len(t) > 1 && t[1] == '<' {
				k := strings.IndexRune(t, '>')
				if k == -1 || k != len(t)-2 {
					return fmt.Errorf("unrecognised placeholder directive (%s)", t)
				}
				label = t[2:k]
				t = fmt.Sprintf("%%%c", t[len(t)-1])
			}

			if len(t) != 2 || !strings.ContainsRune("%NPSF", rune(t[1])) {
				return fmt.Errorf("unrecognised placeholder directive (%s)", t)
			}
		} else if strings.ContainsRune(t, '%') {
			return fmt.Errorf("placeholder directives must be separated from other characters (%s)", t)
		}

		if anchor.tag == "" && len(anchor.next) == 0 {
			anchor.tag = t
			anchor.placeholderLabel = label
		} else {
			anchor.next = append(anchor.next, &node{
				tag:              t,
				placeholderLabel: label,
				typ:              typ,
			})
		}

		return nil
	}

	for i := 0; i < len(defn); i++ {
		switch c := defn[i]; c {
		case ' ':
			if err := commit(); err != nil {
				return nil, i, err
			}

		case '(', '[', '{':
			if err := commit(); err != nil {
				return nil, i, err
			}

			g, adv, err := parseDefinition(defn[i+1:], string(c))
			if err != nil {
				return nil, i + 1 + adv, err
			}
			anchor.next = append(anchor.next, g)

			// skip over the characters consumed by the group, including the
			// close delimiter
			i += adv + 1

		case ')', ']', '}':
			if err := commit(); err != nil {
				return nil, i, err
			}

			var expected byte
			switch trigger {
			case "(":
				expected = ')'
			case "[":
				expected = ']'
			case "{":
				expected = '}'
			}

			if c != expected {
				return nil, i, fmt.Errorf("unexpected group close (%c)", c)
			}

			if sn.tag == "" && len(sn.next) == 0 {
				return nil, i, fmt.Errorf("empty group")
			}

			// repeat groups loop back to the start of the group from the end
			// of every sequence in the group
			if trigger == "{" {
				linkRepeat(sn, sn)
			}

			return sn, i, nil

		case '|':
			if err := commit(); err != nil {
				return nil, i, err
			}
			nb := &node{typ: typ}
			sn.branch = append(sn.branch, nb)
			anchor = nb

		default:
			tok.WriteByte(c)
		}
	}

	// end of the definition. the root group is the only group allowed to end
	// this way
	if trigger != "" {
		return nil, len(defn) - 1, fmt.Errorf("unclosed group (%s)", trigger)
	}

	if err := commit(); err != nil {
		return nil, len(defn) - 1, err
	}

	return sn, len(defn) - 1, nil
}

// linkRepeat points the last node of every sequence in the group back to the
// start of the group. validation follows the pointer for as long as there are
// tokens to consume.
func linkRepeat(n *node, start *node) {
	e := n
	if len(n.next) > 0 {
		e = n.next[len(n.next)-1]
	}

	if e != n {
		linkRepeat(e, start)
	} else {
		e.repeat = start
	}

	for _, b := range n.branch {
		linkRepeat(b, start)
	}
}
