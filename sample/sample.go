// Package sample extracts the extant part of a species tree. The leaves
// furthest from the root are taken to be the extant species; every other
// leaf is pruned away and the branch lengths of the remaining tree are
// rebuilt from the original depths.
package sample

import (
	"log/slog"
	"os"
	"strings"

	"github.com/TuftsBCB/extant/flat"
	"github.com/TuftsBCB/extant/newick"
	"github.com/TuftsBCB/extant/prune"
	"github.com/cockroachdb/errors"
)

// Leaf is a leaf of the input tree together with its depth.
type Leaf struct {
	Name  string
	Depth float64
}

// Result is the outcome of sampling one tree.
type Result struct {
	// Newick is the pruned tree, terminated by a ';'.
	Newick string

	// Sampled lists the kept leaves, deepest first.
	Sampled []Leaf

	// Removed lists the pruned leaves in the order they appear in the
	// input.
	Removed []Leaf
}

// SampledNames returns the names of the kept leaves.
func (r *Result) SampledNames() []string {
	return names(r.Sampled)
}

// RemovedNames returns the names of the pruned leaves.
func (r *Result) RemovedNames() []string {
	return names(r.Removed)
}

func names(leaves []Leaf) []string {
	out := make([]string, len(leaves))
	for i, l := range leaves {
		out[i] = l.Name
	}
	return out
}

// Sample keeps the `n` deepest leaves of the Newick tree in `text` and
// returns the pruned tree. `n` must be positive; asking for more leaves than
// the tree has returns the whole tree.
func Sample(text string, n int) (*Result, error) {
	return sample(slog.New(slog.DiscardHandler), text, n)
}

func sample(logger *slog.Logger, text string, n int) (*Result, error) {
	tree, err := newick.Parse(strings.TrimSpace(text))
	if err != nil {
		return nil, errors.Wrap(err, "parsing species tree")
	}
	tree.ZeroRootLength()
	tree.AssignDepths(0)
	rootDepth := *tree.Depth

	ft := flat.FromTree(tree)
	logger.Debug("flattened species tree", "nodes", ft.Len())

	pruned, err := prune.Prune(ft, n)
	if err != nil {
		return nil, err
	}
	logger.Debug("pruned species tree",
		"kept", len(pruned.Kept), "removed", len(pruned.Removed),
		"root", int(ft.Root), "reachable", ft.Reachable())

	extant := ft.ToTree()
	if err := extant.DepthsToLengths(rootDepth); err != nil {
		return nil, errors.Wrap(err, "recomputing branch lengths")
	}
	return &Result{
		Newick:  extant.Newick(),
		Sampled: resolve(ft, pruned.Kept),
		Removed: resolve(ft, pruned.Removed),
	}, nil
}

// resolve looks leaves up in the flat tree, since removed leaves are no
// longer part of the pruned tree.
func resolve(ft *flat.Tree, indices []flat.Index) []Leaf {
	leaves := make([]Leaf, len(indices))
	for i, idx := range indices {
		n := ft.At(idx)
		leaves[i] = Leaf{Name: n.Label, Depth: *n.Depth}
	}
	return leaves
}

// Run reads the tree at cfg.TreePath, samples it and writes the pruned tree
// to cfg.OutputPath(). The output directory is created first, along with
// any missing parents.
func Run(logger *slog.Logger, cfg *Config) (*Result, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %q", cfg.OutputDir)
	}

	text, err := os.ReadFile(cfg.TreePath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading species tree %q", cfg.TreePath)
	}
	logger.Debug("read species tree", "path", cfg.TreePath, "bytes", len(text))

	res, err := sample(logger, string(text), cfg.NExtant)
	if err != nil {
		return nil, err
	}

	out := cfg.OutputPath()
	if err := os.WriteFile(out, []byte(res.Newick), 0o644); err != nil {
		return nil, errors.Wrapf(err, "writing extant species tree %q", out)
	}
	logger.Info("sampled species tree",
		"sampled", len(res.Sampled), "removed", len(res.Removed), "output", out)
	return res, nil
}
