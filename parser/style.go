package parser

import (
	"github.com/skinnyjames/hokusai-pocket/cst"
	"github.com/skinnyjames/hokusai-pocket/lexer"
)

// styleTemplate parses style blocks up to the next section or the end of source.
func (s *state) styleTemplate(n *cst.Node) error {
	for {
		s.lex.SkipExtras()
		if s.lex.EOF() || s.peekIs(lbrackTok) {
			break
		}

		block, e := s.styleBlock()
		if e != nil {
			return e
		}
		n.Append(block)
	}

	if n.ChildCount() == 0 {
		return s.unexpected("style block")
	}
	return nil
}

func (s *state) styleBlock() (*cst.Node, error) {
	name, e := s.expect("style name", wordTok)
	if e != nil {
		return nil, e
	}

	block := s.node(cst.Style, name).Append(s.node(cst.Name, name))
	if s.peekIs(atTok) {
		s.expectType(atTok)
		event, e := s.expect("event name", methodTok)
		if e != nil {
			return nil, e
		}
		block.Append(s.node(cst.EventName, event))
	}

	open, e := s.expectType(attrStartTok)
	if e != nil {
		return nil, e
	}

	children := s.node(cst.Children, open)
	for !s.peekIs(attrEndTok) {
		el, e := s.styleElement()
		if e != nil {
			return nil, e
		}
		children.Append(el)
	}

	end, _ := s.expectType(attrEndTok)
	closeNode(children)
	block.Append(children)
	block.SetEnd(end.End())
	return block, nil
}

// styleElement parses `name: value;`.
func (s *state) styleElement() (*cst.Node, error) {
	name, e := s.expect(`attribute name or "}"`, methodTok)
	if e != nil {
		return nil, e
	}
	if _, e = s.expectType(colonTok); e != nil {
		return nil, e
	}

	value, e := s.styleValue()
	if e != nil {
		return nil, e
	}

	semi, e := s.expectType(semiTok)
	if e != nil {
		return nil, e
	}

	el := s.node(cst.Element, name).Append(s.node(cst.Name, name), value)
	el.SetEnd(semi.End())
	return el, nil
}

func (s *state) styleValue() (*cst.Node, error) {
	if s.peekIs(quoteTok) {
		s.expectType(quoteTok)
		pos := s.lex.Pos()
		str := cst.New(cst.StyleString, pos, pos)
		if t := s.lex.NextOf(lexer.Set(anyTok)); t != nil && !t.IsEof() {
			str = s.node(cst.StyleString, t)
		}
		if _, e := s.expectType(quoteTok); e != nil {
			return nil, e
		}
		return str, nil
	}

	if t := s.lex.NextOf(lexer.Set(floatTok, intTok)); t != nil && !t.IsEof() {
		if t.Type() == floatTok {
			return s.node(cst.StyleFloat, t), nil
		}
		return s.node(cst.StyleInt, t), nil
	}

	name, e := s.expect("style value", methodTok)
	if e != nil {
		return nil, e
	}
	if !s.peekIs(lparenTok) {
		if name.Text() != "true" && name.Text() != "false" {
			return nil, unexpectedTokenError(name, "style value")
		}
		return s.node(cst.StyleBool, name), nil
	}

	s.expectType(lparenTok)
	arg, e := s.expect("function argument", anyTok)
	if e != nil {
		return nil, e
	}
	rp, e := s.expectType(rparenTok)
	if e != nil {
		return nil, e
	}

	f := s.node(cst.StyleFunc, name).Append(s.node(cst.Function, name), s.node(cst.Value, arg))
	f.SetEnd(rp.End())
	return f, nil
}
