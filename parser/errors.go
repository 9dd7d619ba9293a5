package parser

import (
	"github.com/skinnyjames/hokusai-pocket"
	"github.com/skinnyjames/hokusai-pocket/lexer"
)

// Error codes used by parser:
const (
	// UnexpectedEofError indicates that source ended in the middle of a construct.
	UnexpectedEofError = pocket.SyntaxErrors + iota

	// UnexpectedTokenError indicates that fetched token cannot be used at current position.
	UnexpectedTokenError

	// IndentationError indicates a line indented deeper than allowed or dedented to an unknown level.
	IndentationError

	// SectionError indicates duplicate or extra document sections.
	SectionError
)

func unexpectedEofError(t *lexer.Token, expected string) *pocket.Error {
	return pocket.FormatErrorPos(t, UnexpectedEofError, "unexpected end of file, expecting %s", expected)
}

func unexpectedTokenError(t *lexer.Token, expected string) *pocket.Error {
	return pocket.FormatErrorPos(t, UnexpectedTokenError, "unexpected %q, expecting %s", t.Text(), expected)
}

func indentationError(pos pocket.SourcePos) *pocket.Error {
	return pocket.FormatErrorPos(pos, IndentationError, "inconsistent indentation")
}

func sectionError(t *lexer.Token, name string) *pocket.Error {
	return pocket.FormatErrorPos(t, SectionError, "unexpected [%s] section", name)
}
