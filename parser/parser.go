/*
Package parser converts template sources to concrete syntax trees.

A document consists of a [template] section, a [style] section, or both in any order.
Template bodies are structured by indentation:

	[template]
	column#main.wide { :width="size" @click="grow(fast)" ...panel }
	  [for="item in items"]
	  [if="visible(item)"]
	    text { content="item" }
	  [else]
	    empty
	[style]
	panel@hover {
	  color: rgb(255, 0, 0);
	}

Whitespace and #! ... !# comments may appear between any two tokens.

Malformed attributes and unknown sections produce ERROR nodes in the tree,
all other errors abort parsing.
*/
package parser

import (
	"bytes"
	"log/slog"

	"github.com/skinnyjames/hokusai-pocket/cst"
	"github.com/skinnyjames/hokusai-pocket/internal/queue"
	"github.com/skinnyjames/hokusai-pocket/lexer"
	"github.com/skinnyjames/hokusai-pocket/scanner"
	"github.com/skinnyjames/hokusai-pocket/source"
)

// Parser is stateless and safe for concurrent use.
type Parser struct {
	logger *slog.Logger
}

type Option func(*Parser)

// WithLogger sets logger for parse tracing, default one discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a shortcut for New(opts...).Parse(name, content).
func Parse(name string, content []byte, opts ...Option) (*cst.Tree, error) {
	return New(opts...).Parse(name, content)
}

// Parse parses a document, name is used in error messages.
// Line breaks are normalized, node offsets refer to Tree.Content.
// Returned error is a *pocket.Error.
func (p *Parser) Parse(name string, content []byte) (*cst.Tree, error) {
	src := source.New(name, source.NormalizeNewlines(content))
	s := &state{
		src:     src,
		lex:     lexer.New(src, tokenDefs, extrasRe),
		scan:    scanner.New(),
		pending: queue.New[scanner.Token](),
		log:     p.logger.With("source", name),
	}

	root, e := s.document()
	if e != nil {
		s.log.Debug("parse failed", "error", e)
		return nil, e
	}

	return cst.NewTree(src, root), nil
}

var reportTypes = lexer.AllTokenTypes &^ lexer.Set(staticTok, anyTok)

type state struct {
	src     *source.Source
	lex     *lexer.Lexer
	scan    *scanner.Scanner
	pending *queue.Queue[scanner.Token]
	log     *slog.Logger
}

func (s *state) node(k cst.Kind, t *lexer.Token) *cst.Node {
	return cst.New(k, t.Start(), t.End())
}

// closeNode extends n to cover its last child.
func closeNode(n *cst.Node) *cst.Node {
	if last := n.Child(n.ChildCount() - 1); last != nil && last.EndByte() > n.EndByte() {
		n.SetEnd(last.EndByte())
	}
	return n
}

func (s *state) peekIs(types ...int) bool {
	t := s.lex.PeekOf(lexer.Set(types...))
	return t != nil && !t.IsEof()
}

func (s *state) peekKeyword(words ...string) bool {
	t := s.lex.PeekOf(lexer.Set(methodTok))
	if t == nil || t.IsEof() {
		return false
	}
	for _, w := range words {
		if t.Text() == w {
			return true
		}
	}
	return false
}

// expect fetches a token of one of given types, expected describes them for error message.
func (s *state) expect(expected string, types ...int) (*lexer.Token, error) {
	t := s.lex.NextOf(lexer.Set(types...))
	if t == nil {
		return nil, s.unexpected(expected)
	}
	if t.IsEof() {
		return nil, unexpectedEofError(t, expected)
	}
	return t, nil
}

func (s *state) expectType(tt int) (*lexer.Token, error) {
	return s.expect(typeName(tt), tt)
}

// expectAll fetches a sequence of tokens of given types.
func (s *state) expectAll(types ...int) error {
	for _, tt := range types {
		if _, e := s.expectType(tt); e != nil {
			return e
		}
	}
	return nil
}

func (s *state) expectKeyword(word string) (*lexer.Token, error) {
	t, e := s.expect(`"`+word+`"`, methodTok)
	if e == nil && t.Text() != word {
		e = unexpectedTokenError(t, `"`+word+`"`)
	}
	return t, e
}

// unexpected reports the token at current position, the result is never nil.
func (s *state) unexpected(expected string) error {
	s.lex.SkipExtras()
	if s.lex.EOF() {
		return unexpectedEofError(lexer.EofToken(s.src), expected)
	}

	// catch-all token types report the whole unexpected fragment
	t := s.lex.NextOf(reportTypes)
	if t == nil {
		var e error
		if t, e = s.lex.Next(); e != nil {
			return e
		}
	}
	return unexpectedTokenError(t, expected)
}

// structural fetches a scanner token suitable for valid or returns NoToken.
// Pending tokens are returned first.
// A failed scan is rolled back, then retried after skipping whitespace and comments.
func (s *state) structural(valid scanner.ValidSet) scanner.Token {
	if t, found := s.pending.Peek(); found {
		if !valid.Has(symbol(t)) {
			return scanner.NoToken
		}
		s.pending.First()
		return t
	}

	for {
		saved := s.scan.Serialize()
		c := s.lex.Cursor()
		t, ok := s.scan.Scan(c, valid)
		if ok {
			if t != scanner.NoToken {
				s.lex.Commit(c)
			}
			return t
		}

		if e := s.scan.Deserialize(saved); e != nil {
			s.log.Error("cannot restore scanner state", "state", saved, "error", e)
			return scanner.NoToken
		}
		if !s.lex.SkipExtras() {
			return scanner.NoToken
		}
	}
}

func symbol(t scanner.Token) scanner.ValidSet {
	switch t {
	case scanner.Indent:
		return scanner.IndentSymbol
	case scanner.Dedent:
		return scanner.DedentSymbol
	case scanner.Newline:
		return scanner.NewlineSymbol
	}
	return 0
}

func (s *state) requireStructural(t scanner.Token, expected string) error {
	if s.structural(symbol(t)) != t {
		return s.structuralError(expected)
	}
	return nil
}

func (s *state) structuralError(expected string) error {
	s.lex.SkipExtras()
	pos := s.lex.Pos()
	if !s.lex.EOF() && s.atLineStart(pos) {
		return indentationError(source.NewPos(s.src, pos))
	}
	return s.unexpected(expected)
}

func (s *state) atLineStart(pos int) bool {
	content := s.src.Content()
	lineStart := bytes.LastIndexByte(content[:pos], '\n') + 1
	return len(bytes.TrimLeft(content[lineStart:pos], " \t\f")) == 0
}

func (s *state) document() (*cst.Node, error) {
	s.lex.SkipExtras()
	if !s.peekIs(lbrackTok) {
		s.log.Debug("document has no sections")
		return cst.New(cst.Error, 0, s.src.Len()), nil
	}

	doc := cst.New(cst.Document, 0, s.src.Len())
	var kinds []cst.Kind
	for {
		s.lex.SkipExtras()
		if s.lex.EOF() {
			break
		}

		section, e := s.section(kinds)
		if e != nil {
			return nil, e
		}

		doc.Append(section)
		if section.IsError() {
			break
		}
		kinds = append(kinds, section.Kind())
	}

	return doc, nil
}

func (s *state) section(prev []cst.Kind) (*cst.Node, error) {
	lb, e := s.expectType(lbrackTok)
	if e != nil {
		return nil, e
	}
	key, e := s.expect("section name", methodTok)
	if e != nil {
		return nil, e
	}

	var kind cst.Kind
	switch key.Text() {
	case "template":
		kind = cst.Template
	case "style":
		kind = cst.StyleTemplate
	default:
		s.log.Warn("unknown section", "name", key.Text(), "line", key.Line())
		s.lex.Seek(s.src.Len())
		return cst.New(cst.Error, lb.Start(), s.src.Len()), nil
	}

	if len(prev) == 2 || (len(prev) == 1 && prev[0] == kind) {
		return nil, sectionError(key, key.Text())
	}

	rb, e := s.expectType(rbrackTok)
	if e != nil {
		return nil, e
	}

	n := cst.New(kind, lb.Start(), rb.End())
	if kind == cst.Template {
		s.log.Debug("parsing template section", "line", key.Line())
		e = s.block(n)
	} else {
		s.log.Debug("parsing style section", "line", key.Line())
		e = s.styleTemplate(n)
	}
	if e != nil {
		return nil, e
	}

	return closeNode(n), nil
}
