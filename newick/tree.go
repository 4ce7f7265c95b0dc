package newick

import (
	"bytes"
	"fmt"
	"strings"
)

// Tree corresponds to any value representable in a binary Newick tree. Each
// tree value corresponds to a single node, which owns its children.
type Tree struct {
	// The children of this node. Either both are nil (a leaf) or both are
	// set.
	Left, Right *Tree

	// The label of this node. If it's empty, then this node does
	// not have a name.
	Label string

	// The branch length of this node corresponding to the distance between
	// it and its parent node. It is meaningless for the root.
	Length float64

	// The distance from the root baseline to this node. It is `nil` until
	// AssignDepths has been called.
	Depth *float64
}

// NewLeaf returns a childless node.
func NewLeaf(label string, length float64) *Tree {
	return &Tree{Label: label, Length: length}
}

// NewInternal returns a node with the two given children.
func NewInternal(label string, length float64, left, right *Tree) *Tree {
	return &Tree{Label: label, Length: length, Left: left, Right: right}
}

// IsLeaf returns true if this node has no children.
func (tree *Tree) IsLeaf() bool {
	return tree.Left == nil && tree.Right == nil
}

// Leaves returns the labels of every leaf, from left to right.
func (tree *Tree) Leaves() []string {
	var labels []string
	var walk func(t *Tree)
	walk = func(t *Tree) {
		if t.IsLeaf() {
			labels = append(labels, t.Label)
			return
		}
		walk(t.Left)
		walk(t.Right)
	}
	walk(tree)
	return labels
}

// String recursively converts a tree to a string, with whitespace indenting
// to indicate depth in the tree.
func (tree *Tree) String() string {
	buf := new(bytes.Buffer)
	pf := func(format string, v ...interface{}) {
		fmt.Fprintf(buf, format, v...)
	}

	var out func(t *Tree, level int)
	out = func(t *Tree, level int) {
		name := t.Label
		if len(name) == 0 {
			name = "N/A"
		}
		depth := ""
		if t.Depth != nil {
			depth = fmt.Sprintf(" depth=%s", formatFloat(*t.Depth))
		}
		pf("%s%s length=%s%s\n",
			strings.Repeat("  ", level), name, formatFloat(t.Length), depth)
		if !t.IsLeaf() {
			out(t.Left, level+1)
			out(t.Right, level+1)
		}
	}
	out(tree, 0)
	return buf.String()
}
