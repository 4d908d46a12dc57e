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
	"strconv"
	"strings"
)

// TabCompletion provides word completion for a set of parsed Commands.
type TabCompletion struct {
	cmds *Commands

	matches []string
	match   int

	// the tokens preceding the word being completed. spacing is collapsed but
	// the case of each token is preserved
	prefix string

	// the last string returned by Complete(). used to detect when the user is
	// cycling through the completion options
	lastCompletion string
}

// NewTabCompletion is the preferred method of initialisation for the
// TabCompletion type.
func NewTabCompletion(cmds *Commands) *TabCompletion {
	return &TabCompletion{cmds: cmds}
}

// Complete transforms the input such that the last word in the input is
// expanded to the next available completion option. Successive calls with the
// result of the previous call cycle through the options.
func (tc *TabCompletion) Complete(input string) string {
	// if the input hasn't changed since the last completion then the user is
	// cycling through the options
	if input == tc.lastCompletion && len(tc.matches) > 0 {
		tc.match = (tc.match + 1) % len(tc.matches)
		tc.lastCompletion = tc.build()
		return tc.lastCompletion
	}

	tc.Reset()

	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return input
	}

	// the last token is the word being completed. everything before it is
	// context and must match the command template
	partial := strings.ToUpper(tokens[len(tokens)-1])
	context := tokens[:len(tokens)-1]

	options := make([]string, 0, 10)

	if len(context) == 0 {
		// no context so the word being completed is the command itself
		for _, n := range tc.cmds.cmds {
			options = append(options, n.tag)
		}
	} else {
		cmd, ok := tc.cmds.Index[strings.ToUpper(context[0])]
		if !ok {
			return input
		}
		matchSeq(cmd.next, context[1:], 0, &options)
	}

	// filter options using the word being completed
	for _, opt := range options {
		if strings.HasPrefix(opt, partial) {
			tc.matches = append(tc.matches, opt)
		}
	}

	if len(tc.matches) == 0 {
		return input
	}

	tc.prefix = strings.Join(context, " ")
	tc.lastCompletion = tc.build()

	return tc.lastCompletion
}

// Reset is used to clear an outstanding completion session.
func (tc *TabCompletion) Reset() {
	tc.matches = tc.matches[:0]
	tc.match = 0
	tc.prefix = ""
	tc.lastCompletion = ""
}

func (tc *TabCompletion) build() string {
	s := strings.Builder{}
	if tc.prefix != "" {
		s.WriteString(tc.prefix)
		s.WriteString(" ")
	}
	s.WriteString(tc.matches[tc.match])
	s.WriteString(" ")
	return s.String()
}

// the result of matching a node (or sequence of nodes) against the context
// tokens
//
// traverseFail means the tokens do not satisfy the node. traverseMatch means
// they do. traverseExhausted means the tokens ran out while there were still
// nodes to consider - the point at which completion options are gathered.
type traverseResult int

const (
	traverseFail traverseResult = iota
	traverseMatch
	traverseExhausted
)

// matchSeq matches context tokens against a sequence of nodes, starting with
// token i. returns the index of the next unconsumed token.
func matchSeq(elements []*node, tokens []string, i int, options *[]string) (traverseResult, int) {
	exhausted := false

	for _, n := range elements {
		res, j := matchNode(n, tokens, i, options)

		switch res {
		case traverseMatch:
			i = j

			// a repeat group can soak up as many tokens as will match it
			if n.repeatStart {
				for {
					res, j = matchNode(n, tokens, i, options)
					if res == traverseExhausted {
						exhausted = true
						break
					}
					if res != traverseMatch || j == i {
						break
					}
					i = j
				}
			}

		case traverseExhausted:
			exhausted = true
			i = j
			if n.typ != nodeOptional {
				return traverseExhausted, i
			}

		case traverseFail:
			// a failed optional node is skipped over. a failed node of any
			// other type fails the whole sequence
			if n.typ != nodeOptional {
				return traverseFail, i
			}
		}
	}

	if exhausted {
		return traverseExhausted, i
	}

	return traverseMatch, i
}

// matchNode matches context tokens against a single node, following the
// node's next and branch arrays as appropriate.
func matchNode(n *node, tokens []string, i int, options *[]string) (traverseResult, int) {
	// no more tokens. the node is the position being completed
	if i >= len(tokens) {
		gatherNode(n, options)
		return traverseExhausted, i
	}

	// an empty tag is a wrapper around a nested group. try the group and any
	// branches, preferring whichever consumes the most tokens
	if n.tag == "" {
		res, j := matchSeq(n.next, tokens, i, options)

		br, bj := matchBranches(n, tokens, i, options)
		if br != traverseFail && (res == traverseFail || bj > j) {
			return br, bj
		}

		return res, j
	}

	match := false

	switch n.tag {
	case "%N":
		_, e := strconv.ParseInt(tokens[i], 0, 32)
		match = e == nil

	case "%P":
		_, e := strconv.ParseFloat(tokens[i], 32)
		match = e == nil

	case "%S", "%F", "%%":
		match = true

	default:
		match = strings.ToUpper(tokens[i]) == n.tag
	}

	if !match {
		return matchBranches(n, tokens, i, options)
	}

	return matchSeq(n.next, tokens, i+1, options)
}

// matchBranches tries every branch of the node, returning the result of the
// branch that consumed the most tokens.
func matchBranches(n *node, tokens []string, i int, options *[]string) (traverseResult, int) {
	res := traverseFail
	best := i

	for _, b := range n.branch {
		r, j := matchNode(b, tokens, i, options)
		if r != traverseFail && (res == traverseFail || j > best) {
			res = r
			best = j
		}
	}

	return res, best
}

// gatherNode adds the node's tag to the list of completion options, along
// with the tags of any branches. placeholders are never offered as options.
func gatherNode(n *node, options *[]string) {
	if n.tag == "" {
		// a group can only offer its leading nodes. an optional node means
		// the node following it is also a candidate
		for _, e := range n.next {
			gatherNode(e, options)
			if e.typ != nodeOptional {
				break
			}
		}
	} else if !n.isPlaceholder() {
		*options = append(*options, n.tag)
	}

	for _, b := range n.branch {
		gatherNode(b, options)
	}
}
