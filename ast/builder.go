package ast

import (
	"fmt"
	"log/slog"

	"github.com/skinnyjames/hokusai-pocket"
	"github.com/skinnyjames/hokusai-pocket/cst"
	"github.com/skinnyjames/hokusai-pocket/parser"
	"github.com/skinnyjames/hokusai-pocket/style"
)

// DefaultRootType is the type of synthetic template roots.
const DefaultRootType = "root"

type config struct {
	log        *slog.Logger
	rootType   string
	sourceName string
}

type Option func(*config)

// WithLogger sets logger for build tracing, default one discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRootType sets the type of the synthetic root node.
func WithRootType(typ string) Option {
	return func(c *config) {
		c.rootType = typ
	}
}

// WithSourceName sets source name used in error messages.
func WithSourceName(name string) Option {
	return func(c *config) {
		c.sourceName = name
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		log:        slog.New(slog.DiscardHandler),
		rootType:   DefaultRootType,
		sourceName: "template",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parse parses and builds a template.
// Syntax errors are returned with nil tree.
// If the tree is built but contains an error node, both the tree and
// a StructureError carrying the first error message are returned.
func Parse(src []byte, opts ...Option) (*Tree, error) {
	c := newConfig(opts)
	doc, e := parser.Parse(c.sourceName, src, parser.WithLogger(c.log))
	if e != nil {
		return nil, e
	}

	t, e := build(doc, c)
	if e != nil {
		return nil, e
	}

	if id := t.FirstError(t.Root()); id != NoNode {
		c.log.Debug("tree has errors", "error", t.Node(id).Error)
		n := t.Node(id)
		line, col := doc.Source().LineCol(n.ErrorAt)
		return t, pocket.NewError(StructureError, n.Error, c.sourceName, line, col)
	}
	return t, nil
}

// Build converts a concrete syntax tree to a component tree.
// Structural errors are recorded in nodes, see Tree.FirstError.
// Returned error means the tree cannot be built at all.
func Build(doc *cst.Tree, opts ...Option) (*Tree, error) {
	return build(doc, newConfig(opts))
}

func build(doc *cst.Tree, c *config) (*Tree, error) {
	b := &builder{
		tree: NewTree(),
		src:  doc.Content(),
		log:  c.log.With("source", c.sourceName),
	}
	root, e := b.document(doc.Root(), c.rootType)
	if e != nil {
		return nil, e
	}

	b.tree.SetRoot(root)
	return b.tree, nil
}

type builder struct {
	tree *Tree
	src  []byte
	log  *slog.Logger
}

func (b *builder) text(n *cst.Node) string {
	return n.Text(b.src)
}

func (b *builder) node(id NodeID) *Node {
	return b.tree.Node(id)
}

func (b *builder) setError(id NodeID, reason string, n *cst.Node, got string) {
	p := n.StartPoint()
	b.node(id).Error = fmt.Sprintf("Error at row: %d col: %d - %s, got: \"%s\"", p.Row, p.Column, reason, got)
	b.node(id).ErrorAt = n.StartByte()
	b.log.Debug("error recorded", "reason", reason, "row", p.Row, "col", p.Column)
}

func (b *builder) document(n *cst.Node, rootType string) (NodeID, error) {
	root, e := b.tree.NewNode(rootType)
	if e != nil {
		return NoNode, e
	}
	b.node(root).Root = true

	if n.Kind() != cst.Document {
		b.setError(root, "Expecting document (starts with [template])", n, b.text(n))
		return root, nil
	}

	templ := n.NamedChild(0)
	switch templ.Kind() {
	case cst.Template:
	case cst.StyleTemplate:
		b.log.Debug("walking leading style template")
		if b.tree.Styles, e = style.Build(templ, b.src); e != nil {
			return NoNode, e
		}
		templ = templ.NextNamedSibling()
		if templ.Kind() != cst.Template {
			b.setError(root, "Expecting template, got only style template", templ, "ERROR")
			return root, nil
		}
	default:
		b.setError(root, "Expecting template", templ, b.text(templ))
		return root, nil
	}

	ids, e := b.statements(templ)
	if e != nil {
		return NoNode, e
	}
	b.node(root).ChildLen = templ.NamedChildCount()
	b.tree.AppendChild(root, b.chain(ids))

	// only a style template may follow, unknown sections are kept by the parser as errors
	for next := templ.NextNamedSibling(); next != nil; next = next.NextNamedSibling() {
		if next.Kind() != cst.StyleTemplate {
			b.setError(root, "Expecting style template", next, b.text(next))
			break
		}
		b.log.Debug("walking trailing style template")
		if b.tree.Styles, e = style.Build(next, b.src); e != nil {
			return NoNode, e
		}
	}
	return root, nil
}

// statements builds named children of n except else macros.
func (b *builder) statements(n *cst.Node) ([]NodeID, error) {
	var ids []NodeID
	for i := 0; i < n.NamedChildCount(); i++ {
		c := n.NamedChild(i)
		if c.Kind() == cst.ElseMacro {
			continue
		}

		b.log.Debug("walking statement", "kind", c.Type(), "index", i)
		id, e := b.walk(c)
		if e != nil {
			return nil, e
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// chain links ids as siblings and returns the first one or NoNode.
func (b *builder) chain(ids []NodeID) NodeID {
	if len(ids) == 0 {
		return NoNode
	}
	for i := 1; i < len(ids); i++ {
		b.node(ids[i-1]).NextSibling = ids[i]
	}
	return ids[0]
}

func (b *builder) walk(n *cst.Node) (NodeID, error) {
	switch n.Kind() {
	case cst.Name:
		return b.element(n)

	case cst.Element, cst.Children:
		first := n.Child(0)
		if first == nil {
			return NoNode, b.unsupported(n, "empty "+n.Type())
		}
		return b.walk(first)

	case cst.ForMacro:
		name := n.NamedChild(0)
		list := name.NextNamedSibling()
		id, e := b.walk(list.NextNamedSibling())
		if e != nil {
			return NoNode, e
		}
		b.node(id).Loop = &Loop{Name: b.text(name), ListName: b.text(list)}
		return id, nil

	case cst.IfMacro:
		fn := n.NamedChild(0)
		call, e := FuncCallFromNode(fn, b.src)
		if e != nil {
			return NoNode, e
		}
		id, e := b.walk(fn.NextNamedSibling())
		if e != nil {
			return NoNode, e
		}
		b.node(id).Cond = &Condition{Call: call}
		return id, b.elseBranch(n, id)

	case cst.ForIfMacro:
		name := n.NamedChild(0)
		list := name.NextNamedSibling()
		fn := list.NextNamedSibling()
		call, e := FuncCallFromNode(fn, b.src)
		if e != nil {
			return NoNode, e
		}
		id, e := b.walk(fn.NextNamedSibling())
		if e != nil {
			return NoNode, e
		}
		node := b.node(id)
		node.Loop = &Loop{Name: b.text(name), ListName: b.text(list)}
		node.Cond = &Condition{Call: call}
		return id, b.elseBranch(n, id)
	}

	return NoNode, b.unsupported(n, "unsupported node "+n.Type())
}

func (b *builder) unsupported(n *cst.Node, msg string) error {
	b.log.Warn(msg)
	p := n.StartPoint()
	return pocket.NewError(UnsupportedNodeError, msg, "", p.Row+1, p.Column+1)
}

// elseBranch attaches an else macro following n to id.
func (b *builder) elseBranch(n *cst.Node, id NodeID) error {
	next := n.NextNamedSibling()
	if next.Kind() != cst.ElseMacro {
		b.log.Debug("if macro has no else branch")
		return nil
	}

	body := next.NamedChild(0)
	if body == nil {
		return nil
	}
	eid, e := b.walk(body)
	if e != nil {
		return e
	}
	b.tree.SetElse(id, eid)
	return nil
}

// element builds a node for name n and its sibling selectors, attributes, and children.
func (b *builder) element(n *cst.Node) (NodeID, error) {
	id, e := b.tree.NewNode(b.text(n))
	if e != nil {
		return NoNode, e
	}
	b.node(id).Start = n.StartByte()

	for sib := n.NextNamedSibling(); sib != nil; sib = sib.NextNamedSibling() {
		switch sib.Kind() {
		case cst.Attributes:
			b.log.Debug("walking attributes", "type", b.node(id).Type)
			e = b.attributes(id, sib)
		case cst.Selectors:
			b.selectors(id, sib)
		case cst.Children:
			e = b.children(id, sib)
		}
		if e != nil {
			return NoNode, e
		}
	}
	return id, nil
}

func (b *builder) attributes(id NodeID, n *cst.Node) error {
	for i := 0; i < n.NamedChildCount(); i++ {
		a := n.NamedChild(i)
		node := b.node(id)
		switch a.Kind() {
		case cst.Prop:
			p, e := b.prop(a)
			if e != nil {
				return e
			}
			node.Props[p.Name] = p

		case cst.Event:
			name := a.NamedChild(0)
			call, e := FuncCallFromNode(name.NextNamedSibling(), b.src)
			if e != nil {
				return e
			}
			node.Events[b.text(name)] = &Event{Name: b.text(name), Call: call}

		case cst.Style:
			name := b.text(a)
			if c := a.NamedChild(0); c != nil {
				name = b.text(c)
			}
			node.Styles = append(node.Styles, name)

		default:
			b.setError(id, "Expecting `event` or `prop`", a, b.text(a))
		}
	}
	return nil
}

func (b *builder) prop(n *cst.Node) (*Prop, error) {
	name := n.NamedChild(0)
	computed := name.Kind() == cst.Computed
	if computed {
		name = name.NextNamedSibling()
	}

	call, e := FuncCallFromNode(name.NextNamedSibling(), b.src)
	if e != nil {
		return nil, e
	}
	return &Prop{Name: b.text(name), Computed: computed, Call: call}, nil
}

func (b *builder) selectors(id NodeID, n *cst.Node) {
	node := b.node(id)
	for i := 0; i < n.NamedChildCount(); i++ {
		s := n.NamedChild(i)
		switch s.Kind() {
		case cst.ID:
			node.ID = b.text(s)
		case cst.Class:
			node.Classes = append(node.Classes, b.text(s))
		}
	}
}

func (b *builder) children(id NodeID, n *cst.Node) error {
	ids, e := b.statements(n)
	if e != nil {
		return e
	}

	b.node(id).ChildLen = n.NamedChildCount()
	first := b.chain(ids)
	if first != NoNode {
		b.log.Debug("appending children", "type", b.node(id).Type, "count", len(ids))
	}
	b.tree.AppendChild(id, first)
	return nil
}

// FuncCallFromNode converts a function node: callee name followed by optional args node.
// Arguments are verbatim source text.
func FuncCallFromNode(n *cst.Node, src []byte) (*FuncCall, error) {
	name := n.Child(0)
	if name == nil {
		p := n.StartPoint()
		return nil, pocket.NewError(BadCallError, "function call has no name", "", p.Row+1, p.Column+1)
	}

	call := &FuncCall{Name: name.Text(src), Args: []string{}}
	if args := name.NextSibling(); args.Kind() == cst.Args {
		for i := 0; i < args.NamedChildCount(); i++ {
			call.Args = append(call.Args, args.NamedChild(i).Text(src))
		}
	}
	return call, nil
}
