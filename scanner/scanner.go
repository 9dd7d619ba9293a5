/*
Package scanner defines the indentation scanner.

The scanner decides whether the text at the current position starts an indent, a dedent,
or a newline token, given the set of tokens the parser can accept at that point.
The scanner keeps a stack of indentation columns, the bottom entry is always 0.
Columns on the stack are 1-based, so the first line of a section body at column 0
opens level 1.

Lines starting with '#', '{', or '.' continue the current line and never produce tokens.

State may be saved with Serialize and restored with Deserialize, the parser uses this
to roll back a failed scan.
*/
package scanner

import (
	"strconv"
	"strings"

	"github.com/skinnyjames/hokusai-pocket"
)

// Token is a structural token emitted by Scanner.
type Token int

const (
	NoToken Token = iota
	Indent
	Dedent
	Newline
)

var tokenNames = [...]string{"no token", "indent", "dedent", "newline"}

func (t Token) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return "token(" + strconv.Itoa(int(t)) + ")"
	}
	return tokenNames[t]
}

// ValidSet is a set of symbols the parser can accept at current position.
type ValidSet uint8

const (
	IndentSymbol ValidSet = 1 << iota
	DedentSymbol
	NewlineSymbol

	// ErrorSentinel is set while the parser recovers from an error, scanner emits nothing.
	ErrorSentinel

	Structural = IndentSymbol | DedentSymbol | NewlineSymbol
)

// Has reports whether every symbol of o is in s.
func (s ValidSet) Has(o ValidSet) bool {
	return s&o == o
}

// Error codes used by scanner:
const (
	// BadStateError indicates that serialized state cannot be restored.
	BadStateError = pocket.LexicalErrors + iota
)

// Cursor is the input the scanner reads from.
// Advance never moves past the end of input.
type Cursor interface {
	// Lookahead returns the rune at current position or 0 at the end of input.
	Lookahead() rune
	// Advance moves to the next rune.
	Advance()
	// Column returns 0-based byte column of current position.
	Column() int
	// EOF reports whether current position is at the end of input.
	EOF() bool
}

// Scanner holds indentation state of a single parse; it is not safe for concurrent use.
type Scanner struct {
	levels []int
}

func New() *Scanner {
	return &Scanner{levels: []int{0}}
}

// Reset drops all indentation levels except the bottom one.
func (s *Scanner) Reset() {
	s.levels = s.levels[:1]
}

// Level returns current (topmost) indentation column.
func (s *Scanner) Level() int {
	return s.levels[len(s.levels)-1]
}

// Depth returns the number of open indentation levels.
func (s *Scanner) Depth() int {
	return len(s.levels) - 1
}

// Levels returns a copy of the stack, bottom first.
func (s *Scanner) Levels() []int {
	return append([]int(nil), s.levels...)
}

func (s *Scanner) push(col int) {
	s.levels = append(s.levels, col)
}

func (s *Scanner) pop() bool {
	if len(s.levels) == 1 {
		return false
	}
	s.levels = s.levels[:len(s.levels)-1]
	return true
}

// Scan tries to fetch a structural token at cursor position.
// Returns NoToken and true if the input is exhausted and all levels are closed.
// Returns NoToken and false if no structural token is valid here, cursor position is meaningless then.
// Cursor is left after skipped whitespace on success.
func (s *Scanner) Scan(c Cursor, valid ValidSet) (Token, bool) {
	if valid.Has(ErrorSentinel) {
		return NoToken, false
	}

	if (c.EOF() || (c.Lookahead() == '[' && c.Column() == 0)) && s.Level() != 0 {
		s.pop()
		return Dedent, true
	}

	if valid&Structural == 0 {
		return NoToken, false
	}

	for {
		if c.EOF() {
			return NoToken, s.Level() == 0
		}

		switch c.Lookahead() {
		case ' ', '\t', '\f', '\n':
			c.Advance()
		case '#', '{', '.':
			return NoToken, false
		default:
			return s.offside(c.Column()+1, valid)
		}
	}
}

func (s *Scanner) offside(col int, valid ValidSet) (Token, bool) {
	top := s.Level()
	switch {
	case col == top:
		return Newline, true

	case col > top && valid.Has(IndentSymbol):
		s.push(col)
		return Indent, true

	case len(s.levels) > 1 && s.levels[len(s.levels)-2] >= col:
		s.pop()
		return Dedent, true
	}

	// either an unexpected indent or a column between two open levels
	return NoToken, false
}

// Serialize returns levels bottom first, joined with colons, e.g. "0:2:4".
func (s *Scanner) Serialize() string {
	parts := make([]string, len(s.levels))
	for i, l := range s.levels {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ":")
}

// Deserialize replaces the stack with levels from a Serialize result.
// Empty state leaves the stack unchanged.
func (s *Scanner) Deserialize(state string) error {
	if state == "" {
		return nil
	}

	parts := strings.Split(state, ":")
	levels := make([]int, 0, len(parts))
	for i, part := range parts {
		l, e := strconv.Atoi(part)
		if e != nil || (i == 0 && l != 0) || (i > 0 && l <= levels[i-1]) {
			return pocket.FormatError(BadStateError, "bad scanner state %q", state)
		}
		levels = append(levels, l)
	}

	s.levels = levels
	return nil
}
