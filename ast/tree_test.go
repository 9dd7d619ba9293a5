package ast

import (
	"testing"

	"github.com/skinnyjames/hokusai-pocket/internal/test"
)

func newNodes(t *testing.T, tree *Tree, types ...string) []NodeID {
	ids := make([]NodeID, len(types))
	for i, typ := range types {
		id, e := tree.NewNode(typ)
		test.ExpectNoError(t, e)
		ids[i] = id
	}
	return ids
}

func types(tree *Tree, ids []NodeID) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = tree.Node(id).Type
	}
	return result
}

func TestNewNode(t *testing.T) {
	tree := NewTree()
	_, e := tree.NewNode("")
	test.ExpectErrorCode(t, InvalidNodeError, e)

	id, e := tree.NewNode("a")
	test.ExpectNoError(t, e)
	n := tree.Node(id)
	test.Assert(t, n.Parent == NoNode && n.FirstChild == NoNode && n.NextSibling == NoNode && n.ElseChild == NoNode, "node is linked")
	test.ExpectInt(t, 0, n.PropCount())
	test.ExpectInt(t, 1, tree.Len())
	test.Assert(t, tree.Node(NoNode) == nil && tree.Node(5) == nil, "unexpected node")
	test.Assert(t, tree.Root() == NoNode, "unexpected root")
}

func TestSiblings(t *testing.T) {
	tree := NewTree()
	ids := newNodes(t, tree, "p", "a", "b", "c", "d")
	p, a, b, c, d := ids[0], ids[1], ids[2], ids[3], ids[4]

	tree.AppendChild(p, a)
	tree.AppendSibling(a, b)
	tree.AppendSibling(a, NoNode)
	tree.AppendSibling(NoNode, c)
	test.ExpectStrings(t, []string{"a", "b"}, types(tree, tree.Children(p)))
	test.Assert(t, tree.Node(b).Parent == p, "wrong parent")

	head := tree.PrependSibling(a, c)
	test.Assert(t, head == c, "wrong head")
	test.ExpectStrings(t, []string{"c", "a", "b"}, types(tree, tree.Children(p)))
	test.Assert(t, tree.Node(c).Parent == p, "wrong parent")

	tree.PrependChild(p, d)
	test.ExpectStrings(t, []string{"d", "c", "a", "b"}, types(tree, tree.Children(p)))
	test.ExpectStrings(t, []string{"a", "b"}, types(tree, tree.Siblings(c)))
	test.Assert(t, tree.PrependSibling(a, NoNode) == a, "wrong head")
}

func TestChildren(t *testing.T) {
	tree := NewTree()
	ids := newNodes(t, tree, "p", "a", "b", "c")
	p, a, b, c := ids[0], ids[1], ids[2], ids[3]

	tree.AppendChild(p, NoNode)
	test.Assert(t, tree.Node(p).FirstChild == NoNode, "unexpected child")

	tree.AppendSibling(a, b)
	tree.AppendChild(p, a)
	for _, id := range []NodeID{a, b} {
		test.Assert(t, tree.Node(id).Parent == p, "wrong parent of %d", id)
	}

	tree.AppendChild(p, c)
	test.ExpectStrings(t, []string{"a", "b", "c"}, types(tree, tree.Children(p)))

	tree.PrependChild(NoNode, c)
	test.Assert(t, tree.Children(NoNode) == nil, "unexpected children")
}

func TestFirstError(t *testing.T) {
	tree := NewTree()
	ids := newNodes(t, tree, "root", "a", "b", "c", "d", "e")
	root, a, b, c, d, e := ids[0], ids[1], ids[2], ids[3], ids[4], ids[5]
	tree.AppendChild(root, a)
	tree.AppendSibling(a, b)
	tree.AppendChild(a, c)
	tree.SetElse(a, d)
	tree.AppendChild(b, e)
	test.Assert(t, tree.FirstError(root) == NoNode, "unexpected error")

	tree.Node(d).Error = "else"
	test.Assert(t, tree.FirstError(root) == d, "expecting else branch error")
	tree.Node(e).Error = "sibling"
	test.Assert(t, tree.FirstError(root) == e, "expecting sibling subtree error")
	tree.Node(c).Error = "child"
	test.Assert(t, tree.FirstError(root) == c, "expecting child error")
	tree.Node(root).Error = "root"
	test.Assert(t, tree.FirstError(root) == root, "expecting root error")
}

func TestRelease(t *testing.T) {
	tree := NewTree()
	ids := newNodes(t, tree, "root", "a", "b", "c", "d", "detached")
	root, a, b, c, d := ids[0], ids[1], ids[2], ids[3], ids[4]
	tree.SetRoot(root)
	tree.AppendChild(root, a)
	tree.AppendChild(a, b)
	tree.AppendSibling(a, c)
	tree.SetElse(a, d)

	test.ExpectInt(t, 1, tree.Release(b))
	test.Assert(t, tree.Node(b) == nil, "node is not released")
	test.ExpectInt(t, 0, tree.Release(b))

	test.ExpectInt(t, 4, tree.Release(root))
	test.Assert(t, tree.Root() == NoNode, "root is not reset")
	test.ExpectInt(t, 1, tree.Len())
	test.ExpectString(t, "detached", tree.Node(ids[5]).Type)
}

func TestReleaseParsed(t *testing.T) {
	tree := parseSample(t, componentSample)
	total := tree.Len()
	test.ExpectInt(t, total, tree.Release(tree.Root()))
	test.ExpectInt(t, 0, tree.Len())
}

func TestElseActive(t *testing.T) {
	n := &Node{ElseChild: NoNode}
	n.SetElseActive(true)
	test.ExpectBool(t, false, n.IsElseActive())
	n.ElseChild = 1
	test.ExpectBool(t, true, n.IsElseActive())
}
