/*
Package ast builds component trees from parsed templates.

A component tree is an arena of nodes addressed by NodeID.
Every node links to its parent, first child, next sibling, and else branch;
links are indices, so subtrees can be shared by queries but are released only through Tree.
*/
package ast

import (
	"github.com/skinnyjames/hokusai-pocket"
	"github.com/skinnyjames/hokusai-pocket/style"
)

// Error codes used by ast:
const (
	// StructureError indicates a component tree containing an error node.
	StructureError = pocket.BuildErrors + iota

	// UnsupportedNodeError indicates a concrete syntax tree node that cannot be converted to a component.
	UnsupportedNodeError

	// InvalidNodeError indicates a node with no type or an unknown node id.
	InvalidNodeError

	// BadCallError indicates a malformed function call node.
	BadCallError
)

// NodeID addresses a node of a Tree.
type NodeID int

// NoNode is the null node id.
const NoNode NodeID = -1

// FuncCall is a function name with verbatim arguments.
type FuncCall struct {
	Name string
	Args []string
}

type Prop struct {
	Name     string
	Computed bool
	Call     *FuncCall
}

type Event struct {
	Name string
	Call *FuncCall
}

type Condition struct {
	Not  bool
	Call *FuncCall
}

type Loop struct {
	Name     string
	ListName string
}

// Node is a single component.
type Node struct {
	Type    string
	ID      string
	Classes []string // declaration order
	Styles  []string // declaration order
	Props   map[string]*Prop
	Events  map[string]*Event
	Cond    *Condition
	Loop    *Loop
	Error   string

	// ErrorAt is the source offset Error refers to.
	ErrorAt int

	// ChildLen is the number of statements declared in the children block.
	ChildLen int

	// Root is set for the synthetic root of a template.
	Root bool

	// ElseActive is toggled by the runtime, meaningful only if ElseChild is set.
	ElseActive bool

	// Start is the source offset of the element name.
	Start int

	Parent      NodeID
	FirstChild  NodeID
	NextSibling NodeID
	ElseChild   NodeID

	released bool
}

func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes {
		if c == name {
			return true
		}
	}
	return false
}

func (n *Node) HasIfCondition() bool {
	return n.Cond != nil
}

func (n *Node) HasElseCondition() bool {
	return n.ElseChild != NoNode
}

func (n *Node) IsElseActive() bool {
	return n.ElseChild != NoNode && n.ElseActive
}

func (n *Node) SetElseActive(active bool) {
	n.ElseActive = active
}

func (n *Node) IsLoop() bool {
	return n.Loop != nil
}

func (n *Node) IsSlot() bool {
	return n.Type == "slot"
}

func (n *Node) IsVirtual() bool {
	return n.Type == "virtual"
}

// Prop returns property by name or nil.
func (n *Node) Prop(name string) *Prop {
	return n.Props[name]
}

// Event returns event by name or nil.
func (n *Node) Event(name string) *Event {
	return n.Events[name]
}

func (n *Node) PropCount() int {
	return len(n.Props)
}

func (n *Node) EventCount() int {
	return len(n.Events)
}

// Tree owns all component nodes.
// Styles holds the style section of the template if any.
type Tree struct {
	nodes  []Node
	root   NodeID
	live   int
	Styles *style.Sheet
}

func NewTree() *Tree {
	return &Tree{root: NoNode}
}

// NewNode adds a detached node of given type.
func (t *Tree) NewNode(typ string) (NodeID, error) {
	if typ == "" {
		return NoNode, pocket.FormatError(InvalidNodeError, "node type is empty")
	}

	t.nodes = append(t.nodes, Node{
		Type:        typ,
		Props:       make(map[string]*Prop),
		Events:      make(map[string]*Event),
		Parent:      NoNode,
		FirstChild:  NoNode,
		NextSibling: NoNode,
		ElseChild:   NoNode,
	})
	t.live++
	return NodeID(len(t.nodes) - 1), nil
}

// Node returns node by id or nil for NoNode, unknown, and released ids.
// Returned pointer is valid until the next NewNode call.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) || t.nodes[id].released {
		return nil
	}
	return &t.nodes[id]
}

func (t *Tree) Root() NodeID {
	return t.root
}

func (t *Tree) SetRoot(id NodeID) {
	t.root = id
}

// Len returns the number of nodes not released.
func (t *Tree) Len() int {
	return t.live
}

func (t *Tree) setParent(first, parent NodeID) {
	for n := t.Node(first); n != nil; n = t.Node(n.NextSibling) {
		n.Parent = parent
	}
}

func (t *Tree) last(id NodeID) NodeID {
	for n := t.Node(id); n != nil && n.NextSibling != NoNode; n = t.Node(id) {
		id = n.NextSibling
	}
	return id
}

// AppendSibling links second chain after the last sibling of first.
// Nodes of second chain get the parent of first. NoNode arguments make it a no-op.
func (t *Tree) AppendSibling(first, second NodeID) {
	head, tail := t.Node(first), t.Node(second)
	if head == nil || tail == nil {
		return
	}

	t.setParent(second, head.Parent)
	t.Node(t.last(first)).NextSibling = second
}

// PrependSibling links second chain before first, returns the new head.
// A parent pointing to first as its first child is updated.
func (t *Tree) PrependSibling(first, second NodeID) NodeID {
	head, tail := t.Node(first), t.Node(second)
	switch {
	case tail == nil:
		return first
	case head == nil:
		return second
	}

	parent := head.Parent
	t.Node(t.last(second)).NextSibling = first
	t.setParent(second, parent)
	if p := t.Node(parent); p != nil && p.FirstChild == first {
		p.FirstChild = second
	}
	return second
}

// AppendChild adds child chain after the last child of parent.
func (t *Tree) AppendChild(parent, child NodeID) {
	p := t.Node(parent)
	if p == nil || t.Node(child) == nil {
		return
	}

	if p.FirstChild == NoNode {
		p.FirstChild = child
		t.setParent(child, parent)
	} else {
		t.AppendSibling(p.FirstChild, child)
	}
}

// PrependChild adds child chain before the first child of parent.
func (t *Tree) PrependChild(parent, child NodeID) {
	p := t.Node(parent)
	if p == nil || t.Node(child) == nil {
		return
	}

	if p.FirstChild == NoNode {
		p.FirstChild = child
		t.setParent(child, parent)
	} else {
		t.PrependSibling(p.FirstChild, child)
	}
}

// SetElse makes branch the else branch of id.
func (t *Tree) SetElse(id, branch NodeID) {
	n, b := t.Node(id), t.Node(branch)
	if n == nil || b == nil {
		return
	}
	n.ElseChild = branch
	b.Parent = id
}

// Children returns child chain of id.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return t.chain(n.FirstChild)
}

// Siblings returns siblings following id.
func (t *Tree) Siblings(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return t.chain(n.NextSibling)
}

// ElseBranch returns the else branch chain of id.
func (t *Tree) ElseBranch(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil {
		return nil
	}
	return t.chain(n.ElseChild)
}

func (t *Tree) chain(first NodeID) []NodeID {
	var result []NodeID
	for id := first; t.Node(id) != nil; id = t.nodes[id].NextSibling {
		result = append(result, id)
	}
	return result
}

// FirstError returns the first node carrying an error searching depth-first:
// node itself, its children, its siblings, then its else branch.
func (t *Tree) FirstError(id NodeID) NodeID {
	n := t.Node(id)
	if n == nil {
		return NoNode
	}
	if n.Error != "" {
		return id
	}

	for _, next := range [...]NodeID{n.FirstChild, n.NextSibling, n.ElseChild} {
		if found := t.FirstError(next); found != NoNode {
			return found
		}
	}
	return NoNode
}

// Release frees id with its children, following siblings, and else branch.
// Parent links are never followed. Returns the number of released nodes.
func (t *Tree) Release(id NodeID) int {
	count := 0
	stack := []NodeID{id}
	for len(stack) > 0 {
		id = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Node(id)
		if n == nil {
			continue
		}

		stack = append(stack, n.ElseChild, n.NextSibling, n.FirstChild)
		t.nodes[id] = Node{released: true}
		t.live--
		count++
		if id == t.root {
			t.root = NoNode
		}
	}
	return count
}
