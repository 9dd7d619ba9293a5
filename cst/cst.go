// Package cst defines concrete syntax trees produced by the parser.
package cst

import (
	"strings"

	"github.com/skinnyjames/hokusai-pocket/source"
)

// Kind is a closed set of concrete syntax node kinds.
type Kind int

const (
	Error Kind = iota
	Document
	Template
	StyleTemplate
	Element
	Name
	Selectors
	ID
	Class
	Attributes
	Prop
	Computed
	Event
	Function
	Args
	Arg
	Style
	Children
	ForMacro
	IfMacro
	ElseMacro
	ForIfMacro
	ListName
	IfFunction
	EventName
	StyleInt
	StyleFloat
	StyleBool
	StyleString
	StyleFunc
	Value

	// Literal is an anonymous keyword token, the only kind of unnamed nodes.
	Literal
)

var kindNames = [...]string{
	"ERROR", "document", "template", "style_template", "element", "name", "selectors", "id", "class",
	"attributes", "prop", "computed", "event", "function", "args", "arg", "style", "children",
	"for_macro", "if_macro", "else_macro", "for_if_macro", "list_name", "if_function", "event_name",
	"style_int", "style_float", "style_bool", "style_string", "style_func", "value", "literal",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "ERROR"
	}
	return kindNames[k]
}

// ParseKind returns the kind having given name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return Error, false
}

// Point is 0-based row and byte column.
type Point struct {
	Row, Column int
}

// Node is a concrete syntax tree node spanning bytes from StartByte to EndByte.
// All navigation methods are safe to call on nil and return nil or zero then.
type Node struct {
	kind       Kind
	start, end int
	point      Point
	parent     *Node
	index      int
	children   []*Node
}

// New creates a detached node.
func New(kind Kind, start, end int) *Node {
	return &Node{kind: kind, start: start, end: end}
}

// Append attaches children to n, returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		c.index = len(n.children)
		n.children = append(n.children, c)
	}
	return n
}

func (n *Node) SetKind(k Kind) {
	n.kind = k
}

func (n *Node) SetEnd(end int) {
	n.end = end
}

func (n *Node) Kind() Kind {
	if n == nil {
		return Error
	}
	return n.kind
}

// Type returns grammar name of the node kind.
func (n *Node) Type() string {
	return n.Kind().String()
}

func (n *Node) IsNamed() bool {
	return n != nil && n.kind != Literal
}

func (n *Node) IsError() bool {
	return n != nil && n.kind == Error
}

func (n *Node) StartByte() int {
	if n == nil {
		return 0
	}
	return n.start
}

func (n *Node) EndByte() int {
	if n == nil {
		return 0
	}
	return n.end
}

// StartPoint is valid for nodes of a Tree only.
func (n *Node) StartPoint() Point {
	if n == nil {
		return Point{}
	}
	return n.point
}

func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

func (n *Node) NamedChildCount() int {
	result := 0
	for _, c := range n.Children() {
		if c.IsNamed() {
			result++
		}
	}
	return result
}

func (n *Node) NamedChild(i int) *Node {
	for _, c := range n.Children() {
		if c.IsNamed() {
			if i == 0 {
				return c
			}
			i--
		}
	}
	return nil
}

// Children returns the child slice itself, it must not be modified.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

func (n *Node) NextSibling() *Node {
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent.Child(n.index + 1)
}

func (n *Node) PrevSibling() *Node {
	if n == nil || n.parent == nil {
		return nil
	}
	return n.parent.Child(n.index - 1)
}

func (n *Node) NextNamedSibling() *Node {
	s := n.NextSibling()
	for s != nil && !s.IsNamed() {
		s = s.NextSibling()
	}
	return s
}

// Text returns node source text.
func (n *Node) Text(content []byte) string {
	if n == nil {
		return ""
	}
	l := len(content)
	start := max(0, min(n.start, l))
	end := max(start, min(n.end, l))
	return string(content[start:end])
}

// Tree is a parsed source with its root node.
type Tree struct {
	src  *source.Source
	root *Node
}

// NewTree fills start points of all nodes of root.
func NewTree(src *source.Source, root *Node) *Tree {
	if root != nil {
		Walk(root, func(n *Node) bool {
			n.point.Row, n.point.Column = src.Point(n.start)
			return true
		})
	}
	return &Tree{src, root}
}

func (t *Tree) Root() *Node {
	return t.root
}

func (t *Tree) Source() *source.Source {
	return t.src
}

func (t *Tree) Content() []byte {
	return t.src.Content()
}

func (t *Tree) Text(n *Node) string {
	return n.Text(t.src.Content())
}

// Walk visits n and its descendants in document order.
// Descendants of a node are skipped if visit returns false for that node.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.children {
		Walk(c, visit)
	}
}

// Find returns the first node of kind k in n subtree, including n itself.
func Find(n *Node, k Kind) *Node {
	var result *Node
	Walk(n, func(c *Node) bool {
		if result == nil && c.kind == k {
			result = c
		}
		return result == nil
	})
	return result
}

// Sexp returns s-expression of named nodes, e.g. "(document (template (element (name))))".
func Sexp(n *Node) string {
	sb := &strings.Builder{}
	writeSexp(sb, n)
	return sb.String()
}

func writeSexp(sb *strings.Builder, n *Node) {
	if n == nil {
		return
	}

	sb.WriteString("(")
	sb.WriteString(n.Type())
	for _, c := range n.children {
		if c.IsNamed() {
			sb.WriteString(" ")
			writeSexp(sb, c)
		}
	}
	sb.WriteString(")")
}
