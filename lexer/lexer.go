// Package lexer defines context-sensitive lexical analyzer.
package lexer

import (
	"bytes"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/skinnyjames/hokusai-pocket"
	"github.com/skinnyjames/hokusai-pocket/source"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = pocket.LexicalErrors + 10 + iota
)

// TokenDef describes a token type matched by its own regular expression.
type TokenDef struct {
	// Type contains token type in range 0..63.
	Type int

	// TypeName contains token type name used in error messages.
	TypeName string

	re *regexp.Regexp
}

// Def creates a token definition, pattern is anchored at current position.
// Panics if pattern is not a valid regular expression or tokenType is out of range.
func Def(tokenType int, typeName, pattern string) TokenDef {
	if tokenType < 0 || tokenType > 63 {
		panic(fmt.Sprintf("token type %d out of range", tokenType))
	}
	return TokenDef{tokenType, typeName, regexp.MustCompile(`\A(?:` + pattern + `)`)}
}

// TokenTypeSet represents a set of expected token types, each one is coded as 1 << type.
type TokenTypeSet = uint64

const AllTokenTypes = TokenTypeSet(1<<64 - 1)

// Set returns a set containing given token types.
func Set(types ...int) TokenTypeSet {
	var result TokenTypeSet
	for _, t := range types {
		result |= 1 << t
	}
	return result
}

// Lexer splits a single source into tokens.
// The set of acceptable token types is given on every fetch, the longest match wins,
// the earliest definition wins among matches of the same length.
// Extras (whitespace, comments) are skipped before every token.
// Lexer is not safe for concurrent use.
type Lexer struct {
	src    *source.Source
	defs   []TokenDef
	extras *regexp.Regexp
	pos    int
}

// New creates new Lexer; extras may be nil.
func New(src *source.Source, defs []TokenDef, extras *regexp.Regexp) *Lexer {
	return &Lexer{src: src, defs: defs, extras: extras}
}

func (l *Lexer) Source() *source.Source {
	return l.src
}

// Pos returns current byte offset.
func (l *Lexer) Pos() int {
	return l.pos
}

// Seek moves to byte offset pos, offset is clamped.
func (l *Lexer) Seek(pos int) {
	l.pos = max(0, min(pos, l.src.Len()))
}

// EOF reports whether current position is at the end of source, extras are not skipped.
func (l *Lexer) EOF() bool {
	return l.pos >= l.src.Len()
}

// Rest returns unprocessed content.
func (l *Lexer) Rest() []byte {
	return l.src.Content()[l.pos:]
}

// SkipExtras skips all insignificant lexemes, returns true if position changed.
func (l *Lexer) SkipExtras() bool {
	if l.extras == nil {
		return false
	}

	start := l.pos
	for !l.EOF() {
		match := l.extras.FindIndex(l.Rest())
		if match == nil || match[0] != 0 || match[1] == 0 {
			break
		}
		l.pos += match[1]
	}
	return l.pos != start
}

// SkipUntil moves to the first byte contained in stop or to the end of source.
func (l *Lexer) SkipUntil(stop string) {
	i := bytes.IndexAny(l.Rest(), stop)
	if i < 0 {
		l.pos = l.src.Len()
	} else {
		l.pos += i
	}
}

// SkipUntilUnquoted is SkipUntil ignoring stop bytes between pairs of quote bytes.
// Falls back to SkipUntil if a quote is not closed before the end of source.
func (l *Lexer) SkipUntilUnquoted(stop string, quote byte) {
	quoted := false
	for i, c := range l.Rest() {
		switch {
		case c == quote:
			quoted = !quoted
		case !quoted && bytes.IndexByte([]byte(stop), c) >= 0:
			l.pos += i
			return
		}
	}
	l.SkipUntil(stop)
}

func (l *Lexer) match(tts TokenTypeSet) (*TokenDef, int) {
	content := l.Rest()
	var best *TokenDef
	bestLen := -1
	for i := range l.defs {
		def := &l.defs[i]
		if tts&(1<<def.Type) == 0 {
			continue
		}

		match := def.re.FindIndex(content)
		if match != nil && match[1] > bestLen {
			best = def
			bestLen = match[1]
		}
	}
	return best, bestLen
}

// NextOf skips extras and fetches token of one of specified types.
// Returns nil and makes no changes except skipping extras if no such token found.
// Returns EoF token at the end of source.
func (l *Lexer) NextOf(tts TokenTypeSet) *Token {
	l.SkipExtras()
	if l.EOF() {
		return EofToken(l.src)
	}

	def, size := l.match(tts)
	if def == nil {
		return nil
	}

	t := NewToken(def.Type, def.TypeName, l.src, l.pos, l.pos+size)
	l.pos += size
	return t
}

// PeekOf works like NextOf but does not change current position.
func (l *Lexer) PeekOf(tts TokenTypeSet) *Token {
	pos := l.pos
	t := l.NextOf(tts)
	l.pos = pos
	return t
}

// Next fetches token of any type.
// Returns nil token and pocket.Error and does not advance if there is a lexical error.
func (l *Lexer) Next() (*Token, error) {
	t := l.NextOf(AllTokenTypes)
	if t == nil {
		return nil, l.wrongCharError()
	}
	return t, nil
}

func (l *Lexer) wrongCharError() *pocket.Error {
	r, _ := utf8.DecodeRune(l.Rest())
	msg := fmt.Sprintf("wrong char %q (u+%x)", r, r)
	line, col := l.src.LineCol(l.pos)
	return pocket.NewError(WrongCharError, msg, l.src.Name(), line, col)
}

// Cursor returns a cursor at current position, the lexer is not affected until Commit.
func (l *Lexer) Cursor() *Cursor {
	content := l.src.Content()
	return &Cursor{
		content:   content,
		pos:       l.pos,
		lineStart: bytes.LastIndexByte(content[:l.pos], '\n') + 1,
	}
}

// Commit moves lexer to cursor position.
func (l *Lexer) Commit(c *Cursor) {
	l.Seek(c.pos)
}

// Cursor reads source rune by rune, implements scanner.Cursor.
type Cursor struct {
	content   []byte
	pos       int
	lineStart int
}

func (c *Cursor) Lookahead() rune {
	if c.EOF() {
		return 0
	}
	r, _ := utf8.DecodeRune(c.content[c.pos:])
	return r
}

func (c *Cursor) Advance() {
	if c.EOF() {
		return
	}

	r, size := utf8.DecodeRune(c.content[c.pos:])
	c.pos += size
	if r == '\n' {
		c.lineStart = c.pos
	}
}

func (c *Cursor) Column() int {
	return c.pos - c.lineStart
}

func (c *Cursor) EOF() bool {
	return c.pos >= len(c.content)
}

func (c *Cursor) Pos() int {
	return c.pos
}
