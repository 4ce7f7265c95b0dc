// Package prune reduces a flat tree to its deepest leaves.
//
// Leaves are ranked by depth and every leaf outside the requested number is
// spliced out together with its parent, promoting its sibling to take the
// parent's place. The tree stays binary throughout. Depths are left
// untouched, so branch lengths must be recomputed from them afterwards
// (see newick.Tree.DepthsToLengths).
package prune

import (
	"cmp"
	"slices"

	"github.com/TuftsBCB/extant/flat"
	"github.com/cockroachdb/errors"
)

// ErrEmptySample is returned when zero leaves are requested, since no tree
// would remain.
var ErrEmptySample = errors.New("prune: cannot sample zero leaves")

// Result describes a completed Prune.
type Result struct {
	// Kept holds the sampled leaves, deepest first.
	Kept []flat.Index

	// Removed holds the leaves that were spliced out, in pre-order.
	Removed []flat.Index
}

// Prune keeps the `n` deepest leaves of `ft` and splices out all others.
// When `n` is at least the number of leaves, nothing is removed. On
// return, ft.Root addresses the root of the pruned tree.
func Prune(ft *flat.Tree, n int) (*Result, error) {
	leaves := Leaves(ft)
	kept, err := Deepest(ft, n)
	if err != nil {
		return nil, err
	}
	removed := Complement(leaves, kept)
	RemoveAll(ft, removed)
	ft.Root = FindRoot(ft, kept[0])
	return &Result{Kept: kept, Removed: removed}, nil
}

// Leaves returns every leaf reachable from the root, in pre-order.
func Leaves(ft *flat.Tree) []flat.Index {
	return ft.Leaves()
}

// Deepest returns the `n` leaves with the greatest depth, deepest first.
// Leaves of equal depth keep their pre-order. If there are fewer than `n`
// leaves, all of them are returned.
func Deepest(ft *flat.Tree, n int) ([]flat.Index, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrEmptySample, "requested %d leaves", n)
	}
	type ranked struct {
		index flat.Index
		depth float64
	}
	var leaves []ranked
	for i, node := range ft.All() {
		if !node.IsLeaf() {
			continue
		}
		if node.Depth == nil {
			return nil, errors.Newf("prune: leaf %d (%q) has no depth",
				int(i), node.Label)
		}
		leaves = append(leaves, ranked{i, *node.Depth})
	}
	slices.SortStableFunc(leaves, func(a, b ranked) int {
		return cmp.Compare(b.depth, a.depth)
	})

	deepest := make([]flat.Index, 0, min(n, len(leaves)))
	for _, leaf := range leaves[:min(n, len(leaves))] {
		deepest = append(deepest, leaf.index)
	}
	return deepest, nil
}

// Complement returns the members of `leaves` that are not in `keep`,
// preserving the order of `leaves`.
func Complement(leaves, keep []flat.Index) []flat.Index {
	kept := make(map[flat.Index]struct{}, len(keep))
	for _, i := range keep {
		kept[i] = struct{}{}
	}
	var rest []flat.Index
	for _, i := range leaves {
		if _, ok := kept[i]; !ok {
			rest = append(rest, i)
		}
	}
	return rest
}

// RemoveAll splices out every leaf in `leaves`. The order does not matter.
// ft.Root is not updated; see FindRoot.
func RemoveAll(ft *flat.Tree, leaves []flat.Index) {
	for _, leaf := range leaves {
		Splice(ft, leaf)
	}
}

// Splice removes `leaf` and its parent from the tree. The leaf's sibling
// takes the parent's place under the grandparent, or becomes parentless if
// the parent was the root. The parent is left as an orphan with the leaf
// still attached. Depths and lengths are not updated.
//
// Splice panics if the tree is corrupted: `leaf` is not a leaf, has no
// parent, or is not one of its parent's children.
func Splice(ft *flat.Tree, leaf flat.Index) {
	l := ft.At(leaf)
	if !l.IsLeaf() {
		panic(errors.AssertionFailedf("prune: node %d is not a leaf", int(leaf)))
	}
	if l.Parent == flat.None {
		panic(errors.AssertionFailedf("prune: leaf %d is the root", int(leaf)))
	}
	parent := l.Parent
	p := ft.At(parent)

	var sibling flat.Index
	switch leaf {
	case p.Left:
		sibling = p.Right
	case p.Right:
		sibling = p.Left
	default:
		panic(errors.AssertionFailedf(
			"prune: leaf %d is not a child of its parent %d", int(leaf), int(parent)))
	}
	grandparent := p.Parent

	p.Parent = flat.None
	ft.At(sibling).Parent = grandparent

	if grandparent == flat.None {
		return
	}
	g := ft.At(grandparent)
	switch parent {
	case g.Left:
		g.Left = sibling
	case g.Right:
		g.Right = sibling
	default:
		panic(errors.AssertionFailedf(
			"prune: node %d is not a child of its parent %d", int(parent), int(grandparent)))
	}
}

// FindRoot follows parent links up from `i` and returns the first node
// without a parent.
func FindRoot(ft *flat.Tree, i flat.Index) flat.Index {
	for steps := 0; ; steps++ {
		parent := ft.At(i).Parent
		if parent == flat.None {
			return i
		}
		if steps > ft.Len() {
			panic(errors.AssertionFailedf("prune: cycle above node %d", int(i)))
		}
		i = parent
	}
}
