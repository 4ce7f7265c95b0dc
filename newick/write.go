package newick

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Write renders `tree` in Newick format followed by a terminal ';'. The
// root's branch length is omitted when it is zero. Every other node gets
// an explicit length, written so that parsing it back yields the exact
// same float64.
func Write(w io.Writer, tree *Tree) error {
	buf := bufio.NewWriter(w)
	writeNode(buf, tree)
	if tree.Length != 0 {
		writeLength(buf, tree.Length)
	}
	buf.WriteByte(terminal)
	return errors.Wrap(buf.Flush(), "newick: writing tree")
}

// Newick returns the tree in Newick format, as written by Write.
func (tree *Tree) Newick() string {
	var sb strings.Builder
	// Writing to a strings.Builder cannot fail.
	_ = Write(&sb, tree)
	return sb.String()
}

// writeNode writes the subtree and label of `t`, but not its length.
func writeNode(w *bufio.Writer, t *Tree) {
	if !t.IsLeaf() {
		w.WriteByte(descStart)
		writeNode(w, t.Left)
		writeLength(w, t.Left.Length)
		w.WriteByte(descDelimiter)
		writeNode(w, t.Right)
		writeLength(w, t.Right.Length)
		w.WriteByte(descEnd)
	}
	w.WriteString(t.Label)
}

func writeLength(w *bufio.Writer, length float64) {
	w.WriteByte(lengthStart)
	w.WriteString(formatFloat(length))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
