package flat

import "iter"

// All returns a pre-order traversal of the nodes reachable from Root. The
// sequence is lazy and may be ranged over any number of times. Mutating the
// tree while ranging over it is not supported.
func (ft *Tree) All() iter.Seq2[Index, *Node] {
	return func(yield func(Index, *Node) bool) {
		if len(ft.Nodes) == 0 {
			return
		}
		stack := []Index{ft.Root}
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := ft.At(i)
			if !yield(i, n) {
				return
			}
			if !n.IsLeaf() {
				stack = append(stack, n.Right, n.Left)
			}
		}
	}
}
