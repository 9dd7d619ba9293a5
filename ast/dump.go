package ast

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Walk visits the subtree of the root in dump order: node, children one level deeper,
// following siblings, then else branch at the same level.
func (t *Tree) Walk(visit func(id NodeID, depth int)) {
	t.walk(t.root, 0, visit)
}

func (t *Tree) walk(id NodeID, depth int, visit func(NodeID, int)) {
	for ; t.Node(id) != nil; id = t.nodes[id].NextSibling {
		visit(id, depth)
		n := &t.nodes[id]
		t.walk(n.FirstChild, depth+1, visit)
		if n.ElseChild != NoNode {
			t.walk(n.ElseChild, depth, visit)
		}
	}
}

// Header returns node summary: type, #id, .classes, [props+events], (loop), (condition).
func (n *Node) Header() string {
	sb := &strings.Builder{}
	sb.WriteString(n.Type)
	if n.ID != "" {
		sb.WriteString("#" + n.ID)
	}
	for _, c := range n.Classes {
		sb.WriteString("." + c)
	}
	fmt.Fprintf(sb, " [%d]", len(n.Props)+len(n.Events))
	if n.Loop != nil {
		sb.WriteString(" (loop) ")
	}
	if n.Cond != nil {
		sb.WriteString(" (condition) ")
	}
	return sb.String()
}

// PropNames returns sorted property names.
func (n *Node) PropNames() []string {
	names := make([]string, 0, len(n.Props))
	for name := range n.Props {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// EventNames returns sorted event names.
func (n *Node) EventNames() []string {
	names := make([]string, 0, len(n.Events))
	for name := range n.Events {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (c *FuncCall) String() string {
	if c == nil {
		return "(nil)"
	}
	return fmt.Sprintf("%s(%d)", c.Name, len(c.Args))
}

// Dump writes an indented tree, two spaces per level,
// each node followed by its props and events sorted by name.
func (t *Tree) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	t.Walk(func(id NodeID, depth int) {
		n := t.Node(id)
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(bw, "%s%s\n", indent, n.Header())
		for _, name := range n.PropNames() {
			fmt.Fprintf(bw, "%s prop (%s = %s)\n", indent, name, n.Props[name].Call)
		}
		for _, name := range n.EventNames() {
			fmt.Fprintf(bw, "%s event (%s = %s)\n", indent, name, n.Events[name].Call)
		}
	})
	return bw.Flush()
}
