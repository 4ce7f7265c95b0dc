package newick

import "github.com/cockroachdb/errors"

// ErrMissingDepth is returned by DepthsToLengths when some node has no
// depth assigned.
var ErrMissingDepth = errors.New("newick: node has no depth")

// ZeroRootLength discards whatever branch length was parsed for the root,
// so that the root sits exactly at the depth baseline.
func (tree *Tree) ZeroRootLength() {
	tree.Length = 0
}

// AssignDepths sets the depth of this node to `start` and the depth of
// every descendant to the depth of its parent plus its own branch length.
// Branch lengths must be authoritative.
func (tree *Tree) AssignDepths(start float64) {
	depth := start
	tree.Depth = &depth
	if tree.IsLeaf() {
		return
	}
	tree.Left.AssignDepths(depth + tree.Left.Length)
	tree.Right.AssignDepths(depth + tree.Right.Length)
}

// DepthsToLengths is the inverse of AssignDepths. It recomputes every
// branch length as the difference between the depth of a node and the
// depth of its parent. The root's length is set to zero. Depths must be
// authoritative, so this is what restores branch lengths after the shape of
// a tree has changed.
func (tree *Tree) DepthsToLengths(rootDepth float64) error {
	if err := tree.depthsToLengths(rootDepth); err != nil {
		return err
	}
	tree.Length = 0
	return nil
}

func (tree *Tree) depthsToLengths(parentDepth float64) error {
	if tree.Depth == nil {
		return errors.Wrapf(ErrMissingDepth, "node %q", tree.Label)
	}
	tree.Length = *tree.Depth - parentDepth
	if tree.IsLeaf() {
		return nil
	}
	if err := tree.Left.depthsToLengths(*tree.Depth); err != nil {
		return err
	}
	return tree.Right.depthsToLengths(*tree.Depth)
}
