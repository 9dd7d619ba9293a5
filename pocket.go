/*
Package pocket is the front end of the hokusai-pocket component template compiler.

Consists of subpackages:
  - source: source text and position mapping;
  - scanner: indentation scanner emitting indent, dedent, and newline tokens;
  - lexer: context-sensitive lexical analyzer for primitive tokens;
  - cst: concrete syntax tree produced by the parser;
  - parser: template and style grammar, produces concrete syntax trees;
  - ast: component tree built from a concrete syntax tree;
  - style: style sheets with typed attribute values;
  - cmd/hmlc: console utility to check, dump, export, and generate code for templates.

Typical usage is:

	tree, e := ast.Parse(content)
	if e != nil {
		// either a syntax error or the first error recorded in the tree
	}
	tree.Dump(os.Stdout)
*/
package pocket

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LexicalErrors = 101 // used by scanner and lexer
	SyntaxErrors  = 201 // used by parser
	BuildErrors   = 301 // used by ast
	StyleErrors   = 401 // used by style
	ConfigErrors  = 501 // used by hmlc configuration
)

// Error is returned by all pocket packages.
// Code falls into one of the error classes above.
type Error struct {
	Code int

	// Message is never empty, it ends with position information when one is known.
	Message    string
	SourceName string

	// Line and Col are 1-based, both are 0 when position is unknown.
	Line, Col int
}

// SourcePos locates an error, see source.Pos and lexer.Token.
type SourcePos interface {
	SourceName() string
	Line() int
	Col() int
}

// NewError appends " in name at line L col C" to msg when line and col are known,
// name part is omitted for unnamed sources.
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		where := ""
		if name != "" {
			where = " in " + name
		}
		msg = fmt.Sprintf("%s%s at line %d col %d", msg, where, line, col)
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

func (e *Error) Error() string {
	return e.Message
}

// FormatError builds position-less error, msg is a fmt format when params are given.
func FormatError(code int, msg string, params ...any) *Error {
	return NewError(code, sprintf(msg, params), "", 0, 0)
}

// FormatErrorPos is FormatError with position taken from pos, which must not be nil.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	return NewError(code, sprintf(msg, params), pos.SourceName(), pos.Line(), pos.Col())
}

func sprintf(msg string, params []any) string {
	if len(params) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, params...)
}

// ErrorCode returns the code of the first *Error in the chain of e, 0 if there is none.
func ErrorCode(e error) int {
	var pe *Error
	if errors.As(e, &pe) {
		return pe.Code
	}
	return 0
}
