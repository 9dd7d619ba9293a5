package lexer

import (
	"github.com/skinnyjames/hokusai-pocket/source"
)

// Token is a lexeme fetched by Lexer, implements pocket.SourcePos.
type Token struct {
	tokenType  int
	typeName   string
	text       string
	source     *source.Source
	start, end int
	line, col  int
}

func (t *Token) Type() int {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Source() *source.Source {
	return t.source
}

func (t *Token) SourceName() string {
	if t.source == nil {
		return ""
	}
	return t.source.Name()
}

// Start returns byte offset of the first token byte.
func (t *Token) Start() int {
	return t.start
}

// End returns byte offset following the last token byte.
func (t *Token) End() int {
	return t.end
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Col() int {
	return t.col
}

// NewToken creates a token spanning bytes from start to end of src, src may be nil.
func NewToken(tokenType int, typeName string, src *source.Source, start, end int) *Token {
	t := &Token{tokenType: tokenType, typeName: typeName, source: src, start: start, end: end}
	if src != nil {
		t.text = src.Text(start, end)
		t.line, t.col = src.LineCol(start)
	}
	return t
}

const (
	EofTokenType = -1
	EofTokenName = "-end-of-file-"
)

// EofToken returns a token marking the end of src.
func EofToken(src *source.Source) *Token {
	l := 0
	if src != nil {
		l = src.Len()
	}
	return NewToken(EofTokenType, EofTokenName, src, l, l)
}

// IsEof reports whether t marks the end of source.
func (t *Token) IsEof() bool {
	return t.tokenType == EofTokenType
}
