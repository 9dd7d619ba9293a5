// Package style builds style sheets from [style] sections of a template.
package style

import (
	"github.com/skinnyjames/hokusai-pocket"
	"github.com/skinnyjames/hokusai-pocket/cst"
	"github.com/skinnyjames/hokusai-pocket/parser"
)

// Error codes used by style:
const (
	// StructureError indicates a concrete syntax tree node of unexpected kind.
	StructureError = pocket.StyleErrors + iota

	// UnknownFunctionError indicates a function value with no registered constructor.
	UnknownFunctionError

	// BadValueError indicates a value that cannot be converted to its declared type.
	BadValueError
)

// DefaultEvent is the event name of blocks declared without one.
const DefaultEvent = "default"

// Type is the type tag of an attribute value.
type Type int

const (
	Int Type = iota
	Float
	Bool
	String
	Func
)

var typeNames = [...]string{"int", "float", "bool", "string", "func"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Attribute is a single `name: value;` declaration.
// Function is set for Func values only, Value holds the function argument then.
type Attribute struct {
	Name     string
	Value    string
	Type     Type
	Function string
}

// Block is a named set of attributes, optionally bound to an event.
type Block struct {
	Name       string
	Event      string
	Attributes []*Attribute
}

// EventName returns block event or DefaultEvent.
func (b *Block) EventName() string {
	if b.Event == "" {
		return DefaultEvent
	}
	return b.Event
}

// Attribute returns the last attribute with given name or nil.
func (b *Block) Attribute(name string) *Attribute {
	for i := len(b.Attributes) - 1; i >= 0; i-- {
		if b.Attributes[i].Name == name {
			return b.Attributes[i]
		}
	}
	return nil
}

// Sheet contains blocks in document order.
type Sheet struct {
	Blocks []*Block
}

// Block returns the last block with given name and event or nil.
// Empty event matches blocks with no event.
func (s *Sheet) Block(name, event string) *Block {
	if event == "" {
		event = DefaultEvent
	}
	for i := len(s.Blocks) - 1; i >= 0; i-- {
		b := s.Blocks[i]
		if b.Name == name && b.EventName() == event {
			return b
		}
	}
	return nil
}

// Names returns distinct block names in order of first appearance.
func (s *Sheet) Names() []string {
	seen := make(map[string]bool, len(s.Blocks))
	var result []string
	for _, b := range s.Blocks {
		if !seen[b.Name] {
			seen[b.Name] = true
			result = append(result, b.Name)
		}
	}
	return result
}

// Parse parses a document and builds its style section.
func Parse(src []byte, opts ...parser.Option) (*Sheet, error) {
	return ParseNamed("style", src, opts...)
}

// ParseNamed is Parse with the source name used in error messages.
func ParseNamed(name string, src []byte, opts ...parser.Option) (*Sheet, error) {
	tree, e := parser.Parse(name, src, opts...)
	if e != nil {
		return nil, e
	}

	root := tree.Root()
	if root.Kind() == cst.Document {
		for i := 0; i < root.NamedChildCount(); i++ {
			if n := root.NamedChild(i); n.Kind() == cst.StyleTemplate {
				return Build(n, tree.Content())
			}
		}
	}
	return nil, pocket.FormatError(StructureError, "document contains no [style] section")
}

// Build converts a style_template node to a sheet.
func Build(n *cst.Node, src []byte) (*Sheet, error) {
	if n.Kind() != cst.StyleTemplate {
		return nil, unexpectedNode(n, cst.StyleTemplate)
	}

	sheet := &Sheet{}
	for i := 0; i < n.NamedChildCount(); i++ {
		b, e := buildBlock(n.NamedChild(i), src)
		if e != nil {
			return nil, e
		}
		sheet.Blocks = append(sheet.Blocks, b)
	}
	return sheet, nil
}

func buildBlock(n *cst.Node, src []byte) (*Block, error) {
	if n.Kind() != cst.Style {
		return nil, unexpectedNode(n, cst.Style)
	}

	name := n.NamedChild(0)
	b := &Block{Name: name.Text(src)}
	children := name.NextNamedSibling()
	if children.Kind() == cst.EventName {
		b.Event = children.Text(src)
		children = children.NextNamedSibling()
	}
	if children.Kind() != cst.Children {
		return nil, unexpectedNode(children, cst.Children)
	}

	for i := 0; i < children.NamedChildCount(); i++ {
		a, e := buildAttribute(children.NamedChild(i), src)
		if e != nil {
			return nil, e
		}
		b.Attributes = append(b.Attributes, a)
	}
	return b, nil
}

var valueTypes = map[cst.Kind]Type{
	cst.StyleInt:    Int,
	cst.StyleFloat:  Float,
	cst.StyleBool:   Bool,
	cst.StyleString: String,
	cst.StyleFunc:   Func,
}

func buildAttribute(n *cst.Node, src []byte) (*Attribute, error) {
	name := n.NamedChild(0)
	value := name.NextNamedSibling()
	t, valid := valueTypes[value.Kind()]
	if n.Kind() != cst.Element || name.Kind() != cst.Name || !valid {
		return nil, unexpectedNode(value, cst.Element)
	}

	a := &Attribute{Name: name.Text(src), Type: t}
	if t == Func {
		f := value.NamedChild(0)
		a.Function = f.Text(src)
		a.Value = f.NextNamedSibling().Text(src)
	} else {
		a.Value = value.Text(src)
	}
	return a, nil
}

func unexpectedNode(n *cst.Node, expected cst.Kind) *pocket.Error {
	p := n.StartPoint()
	return pocket.NewError(StructureError, "unexpected "+n.Type()+" node, expecting "+expected.String(), "", p.Row+1, p.Column+1)
}
