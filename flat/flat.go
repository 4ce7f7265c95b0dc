// Package flat provides an index-addressed mirror of a newick.Tree. Nodes
// live in a single slice and refer to their parent and children by index,
// which makes it possible to walk up the tree and to restructure it in
// place without reference cycles.
package flat

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/TuftsBCB/extant/newick"
	"github.com/cockroachdb/errors"
)

// Index addresses a node in Tree.Nodes.
type Index int

// None is the Index of a missing parent or child.
const None Index = -1

func (i Index) String() string {
	if i == None {
		return "-"
	}
	return strconv.Itoa(int(i))
}

// Node is a single record of a flat tree. A node has either no children or
// both a left and a right child.
type Node struct {
	Label  string
	Length float64
	Depth  *float64

	Parent, Left, Right Index
}

// IsLeaf returns true if this node has neither child.
func (n *Node) IsLeaf() bool {
	return n.Left == None && n.Right == None
}

// Tree is a flat tree. Nodes that are not reachable from Root are orphans:
// they are kept in Nodes so that indices stay stable, but traversals never
// visit them.
type Tree struct {
	Nodes []Node
	Root  Index
}

// FromTree linearizes `t` in pre-order, so the root is at index 0 and the
// index of every node is its position in a pre-order traversal.
func FromTree(t *newick.Tree) *Tree {
	ft := &Tree{Root: 0}
	var add func(t *newick.Tree, parent Index) Index
	add = func(t *newick.Tree, parent Index) Index {
		i := Index(len(ft.Nodes))
		ft.Nodes = append(ft.Nodes, Node{
			Label:  t.Label,
			Length: t.Length,
			Depth:  copyDepth(t.Depth),
			Parent: parent,
			Left:   None,
			Right:  None,
		})
		if !t.IsLeaf() {
			left := add(t.Left, i)
			right := add(t.Right, i)
			ft.Nodes[i].Left, ft.Nodes[i].Right = left, right
		}
		return i
	}
	add(t, None)
	return ft
}

// ToTree rebuilds a newick.Tree starting from Root. Orphaned nodes are
// ignored.
func (ft *Tree) ToTree() *newick.Tree {
	var build func(i Index) *newick.Tree
	build = func(i Index) *newick.Tree {
		n := ft.At(i)
		t := &newick.Tree{
			Label:  n.Label,
			Length: n.Length,
			Depth:  copyDepth(n.Depth),
		}
		if !n.IsLeaf() {
			t.Left = build(n.Left)
			t.Right = build(n.Right)
		}
		return t
	}
	return build(ft.Root)
}

// At returns the node at index `i`. It panics if `i` does not address a
// node, since that can only happen in a corrupted tree.
func (ft *Tree) At(i Index) *Node {
	if i < 0 || int(i) >= len(ft.Nodes) {
		panic(errors.AssertionFailedf("flat: index %d out of range [0, %d)",
			int(i), len(ft.Nodes)))
	}
	return &ft.Nodes[i]
}

// Len returns the number of records, including orphans.
func (ft *Tree) Len() int {
	return len(ft.Nodes)
}

// Reachable returns the number of nodes reachable from Root.
func (ft *Tree) Reachable() int {
	count := 0
	for range ft.All() {
		count++
	}
	return count
}

// Leaves returns the indices of all reachable leaves in pre-order.
func (ft *Tree) Leaves() []Index {
	var leaves []Index
	for i, n := range ft.All() {
		if n.IsLeaf() {
			leaves = append(leaves, i)
		}
	}
	return leaves
}

// String lists every record, orphans included, one per line. The root's
// index is followed by a '*'.
func (ft *Tree) String() string {
	buf := new(bytes.Buffer)
	for i := range ft.Nodes {
		n := &ft.Nodes[i]
		mark := ""
		if Index(i) == ft.Root {
			mark = "*"
		}
		label := n.Label
		if len(label) == 0 {
			label = "N/A"
		}
		depth := "-"
		if n.Depth != nil {
			depth = strconv.FormatFloat(*n.Depth, 'f', -1, 64)
		}
		fmt.Fprintf(buf, "%d%s %s parent=%s left=%s right=%s length=%s depth=%s\n",
			i, mark, label, n.Parent, n.Left, n.Right,
			strconv.FormatFloat(n.Length, 'f', -1, 64), depth)
	}
	return buf.String()
}

func copyDepth(d *float64) *float64 {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
