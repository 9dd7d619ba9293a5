package parser

import (
	"github.com/skinnyjames/hokusai-pocket/cst"
	"github.com/skinnyjames/hokusai-pocket/lexer"
	"github.com/skinnyjames/hokusai-pocket/scanner"
)

// block parses an indented statement list into container.
func (s *state) block(container *cst.Node) error {
	if e := s.requireStructural(scanner.Indent, "indented block"); e != nil {
		return e
	}
	return s.statements(container)
}

// statements parses statements separated by newlines up to a dedent, indent is already consumed.
func (s *state) statements(container *cst.Node) error {
	for {
		if e := s.statement(container); e != nil {
			return e
		}

		switch s.structural(scanner.NewlineSymbol | scanner.DedentSymbol) {
		case scanner.Dedent:
			closeNode(container)
			return nil

		case scanner.Newline:
			if !s.atStatement() {
				// a section header follows the last line
				if e := s.requireStructural(scanner.Dedent, "end of block"); e != nil {
					return e
				}
				closeNode(container)
				return nil
			}

		default:
			return s.structuralError("new line or end of block")
		}
	}
}

func (s *state) atStatement() bool {
	if s.peekIs(wordTok) {
		return true
	}

	pos := s.lex.Pos()
	defer s.lex.Seek(pos)
	return s.lex.NextOf(lexer.Set(lbrackTok)) != nil && s.peekKeyword("for", "if", "else")
}

func (s *state) statement(container *cst.Node) error {
	if !s.peekIs(lbrackTok) {
		return s.element(container)
	}

	lb, _ := s.expectType(lbrackTok)
	key, e := s.expect("for, if, or else", methodTok)
	if e != nil {
		return e
	}

	var n *cst.Node
	switch key.Text() {
	case "for":
		n, e = s.forMacro(lb)
	case "if":
		n, e = s.ifMacro(lb)
	case "else":
		n, e = s.elseMacro(lb)
	default:
		e = unexpectedTokenError(key, "for, if, or else")
	}
	if e != nil {
		return e
	}

	container.Append(closeNode(n))
	return nil
}

// children parses a block into a children node appended to n.
// An indent token is already consumed if indented is set.
func (s *state) children(n *cst.Node, indented bool) error {
	if !indented {
		if e := s.requireStructural(scanner.Indent, "indented block"); e != nil {
			return e
		}
	}

	pos := s.lex.Pos()
	children := cst.New(cst.Children, pos, pos)
	if e := s.statements(children); e != nil {
		return e
	}
	n.Append(children)
	return nil
}

func (s *state) forMacro(lb *lexer.Token) (*cst.Node, error) {
	n := cst.New(cst.ForMacro, lb.Start(), lb.End())
	if e := s.expectAll(equalTok, quoteTok); e != nil {
		return nil, e
	}

	name, e := s.expect("loop variable", methodTok)
	if e != nil {
		return nil, e
	}
	in, e := s.expectKeyword("in")
	if e != nil {
		return nil, e
	}
	list, e := s.expect("list name", methodTok)
	if e != nil {
		return nil, e
	}
	n.Append(s.node(cst.Name, name), s.node(cst.Literal, in), s.node(cst.ListName, list))
	if e = s.expectAll(quoteTok, rbrackTok); e != nil {
		return nil, e
	}

	switch s.structural(scanner.IndentSymbol | scanner.NewlineSymbol) {
	case scanner.Indent:
		s.log.Debug("for macro", "name", name.Text(), "list", list.Text(), "line", name.Line())
		return n, s.children(n, true)

	case scanner.Newline:
		n.SetKind(cst.ForIfMacro)
		if _, e = s.expectType(lbrackTok); e != nil {
			return nil, e
		}
		if _, e = s.expectKeyword("if"); e != nil {
			return nil, e
		}
		if e = s.expectAll(equalTok, quoteTok); e != nil {
			return nil, e
		}
		f, e := s.function(cst.IfFunction)
		if e != nil {
			return nil, e
		}
		n.Append(f)
		if e = s.expectAll(quoteTok, rbrackTok); e != nil {
			return nil, e
		}
		s.log.Debug("for/if macro", "name", name.Text(), "list", list.Text(), "line", name.Line())
		return n, s.children(n, false)
	}

	return nil, s.structuralError("indented block or [if]")
}

func (s *state) ifMacro(lb *lexer.Token) (*cst.Node, error) {
	n := cst.New(cst.IfMacro, lb.Start(), lb.End())
	if e := s.expectAll(equalTok, quoteTok); e != nil {
		return nil, e
	}
	f, e := s.function(cst.Function)
	if e != nil {
		return nil, e
	}
	n.Append(f)
	if e = s.expectAll(quoteTok, rbrackTok); e != nil {
		return nil, e
	}
	return n, s.children(n, false)
}

func (s *state) elseMacro(lb *lexer.Token) (*cst.Node, error) {
	n := cst.New(cst.ElseMacro, lb.Start(), lb.End())
	if _, e := s.expectType(rbrackTok); e != nil {
		return nil, e
	}
	return n, s.children(n, false)
}

func (s *state) element(container *cst.Node) error {
	name, e := s.expect("element name", wordTok)
	if e != nil {
		return e
	}

	el := s.node(cst.Element, name).Append(s.node(cst.Name, name))
	tok := s.structural(scanner.Structural)
	if tok == scanner.NoToken && s.peekIs(poundTok, dotTok) {
		if e = s.selectors(el); e != nil {
			return e
		}
		tok = s.structural(scanner.Structural)
	}
	if tok == scanner.NoToken && s.peekIs(attrStartTok) {
		if e = s.attributes(el); e != nil {
			return e
		}
		tok = s.structural(scanner.Structural)
	}

	switch tok {
	case scanner.Indent:
		if e = s.children(el, true); e != nil {
			return e
		}
	case scanner.Newline, scanner.Dedent:
		s.pending.Append(tok)
	default:
		return s.structuralError("selectors, attributes, or children")
	}

	container.Append(closeNode(el))
	return nil
}

func (s *state) selectors(el *cst.Node) error {
	var sel *cst.Node
	if s.peekIs(poundTok) {
		pound, _ := s.expectType(poundTok)
		id, e := s.expect("id", wordTok)
		if e != nil {
			return e
		}
		sel = s.node(cst.Selectors, pound).Append(s.node(cst.ID, id))
	}

	for s.peekIs(dotTok) {
		dot, _ := s.expectType(dotTok)
		class, e := s.expect("class name", wordTok)
		if e != nil {
			return e
		}
		if sel == nil {
			sel = s.node(cst.Selectors, dot)
		}
		sel.Append(s.node(cst.Class, class))
	}

	el.Append(closeNode(sel))
	return nil
}

func (s *state) attributes(el *cst.Node) error {
	open, e := s.expectType(attrStartTok)
	if e != nil {
		return e
	}

	attrs := s.node(cst.Attributes, open)
	for {
		if s.peekIs(attrEndTok) {
			end, _ := s.expectType(attrEndTok)
			attrs.SetEnd(end.End())
			break
		}

		s.lex.SkipExtras()
		if s.lex.EOF() {
			return unexpectedEofError(lexer.EofToken(s.src), `"}"`)
		}

		start := s.lex.Pos()
		item, e := s.attribute()
		if e != nil {
			if item, e = s.recoverAttribute(start, e); e != nil {
				return e
			}
		}
		attrs.Append(item)
		s.lex.NextOf(lexer.Set(commaTok))
	}

	el.Append(attrs)
	return nil
}

// recoverAttribute captures a malformed attribute up to the next comma or closing brace
// outside of quoted values.
func (s *state) recoverAttribute(start int, cause error) (*cst.Node, error) {
	s.lex.Seek(start)
	s.lex.SkipUntilUnquoted(",}", '"')
	if s.lex.EOF() {
		return nil, cause
	}

	content := s.src.Content()
	end := s.lex.Pos()
	for end > start && (content[end-1] == ' ' || content[end-1] == '\t' || content[end-1] == '\n') {
		end--
	}
	s.log.Debug("malformed attribute", "text", string(content[start:end]), "error", cause)
	return cst.New(cst.Error, start, end), nil
}

func (s *state) attribute() (*cst.Node, error) {
	switch {
	case s.peekIs(spreadTok):
		s.expectType(spreadTok)
		name, e := s.expect("style name", methodTok)
		if e != nil {
			return nil, e
		}
		return s.node(cst.Style, name).Append(s.node(cst.Name, name)), nil

	case s.peekIs(atTok):
		at, _ := s.expectType(atTok)
		n := s.node(cst.Event, at)
		return s.binding(n, "event name")
	}

	pos := s.lex.Pos()
	n := cst.New(cst.Prop, pos, pos)
	if s.peekIs(colonTok) {
		colon, _ := s.expectType(colonTok)
		n.Append(s.node(cst.Computed, colon))
	}
	return s.binding(n, "property name")
}

// binding parses `name="function"` into n.
func (s *state) binding(n *cst.Node, expected string) (*cst.Node, error) {
	name, e := s.expect(expected, methodTok)
	if e != nil {
		return nil, e
	}
	n.Append(s.node(cst.Name, name))
	if e = s.expectAll(equalTok, quoteTok); e != nil {
		return nil, e
	}

	f, e := s.function(cst.Function)
	if e != nil {
		return nil, e
	}
	n.Append(f)

	q, e := s.expectType(quoteTok)
	if e != nil {
		return nil, e
	}
	n.SetEnd(q.End())
	return n, nil
}

// function parses `name` or `name(arg, ...)` into a node of kind k.
func (s *state) function(k cst.Kind) (*cst.Node, error) {
	name, e := s.expect("function name", staticTok)
	if e != nil {
		return nil, e
	}

	f := s.node(k, name).Append(s.node(cst.Name, name))
	if !s.peekIs(lparenTok) {
		return f, nil
	}

	lp, _ := s.expectType(lparenTok)
	args := s.node(cst.Args, lp)
	for {
		arg, e := s.expect("argument", wordTok)
		if e != nil {
			return nil, e
		}
		args.Append(s.node(cst.Arg, arg))

		t, e := s.expect(`"," or ")"`, commaTok, rparenTok)
		if e != nil {
			return nil, e
		}
		if t.Type() == rparenTok {
			args.SetEnd(t.End())
			break
		}
	}

	f.Append(args)
	return closeNode(f), nil
}
