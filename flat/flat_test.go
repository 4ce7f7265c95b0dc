package flat

import (
	"fmt"
	"testing"

	"github.com/TuftsBCB/extant/newick"
	"github.com/cockroachdb/datadriven"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

func parseWithDepths(t *testing.T, text string) *newick.Tree {
	tree, err := newick.Parse(text)
	require.NoError(t, err)
	tree.ZeroRootLength()
	tree.AssignDepths(0)
	return tree
}

func TestFlatten(t *testing.T) {
	datadriven.RunTest(t, "testdata/flatten", func(t *testing.T, td *datadriven.TestData) string {
		ft := FromTree(parseWithDepths(t, td.Input))
		switch td.Cmd {
		case "flatten":
			return ft.String()
		case "leaves":
			return fmt.Sprintln(ft.Leaves())
		case "reroot":
			var root int
			td.ScanArgs(t, "root", &root)
			ft.Root = Index(root)
			return fmt.Sprintf("%s\nreachable=%d len=%d\n",
				ft.ToTree().Newick(), ft.Reachable(), ft.Len())
		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}

func TestFlattenRoundTrip(t *testing.T) {
	for _, text := range []string{
		"(A:1,(B:2,C:3):1);",
		"(((a:1,b:2)ab:3,c:4)abc:5,(d:6,e:7)de:8)r;",
		"x;",
	} {
		tree := parseWithDepths(t, text)
		ft := FromTree(tree)
		require.Equal(t, tree.Newick(), ft.ToTree().Newick())
		require.Equal(t, tree.String(), ft.ToTree().String())

		again := FromTree(ft.ToTree())
		if diff := pretty.Diff(ft, again); diff != nil {
			t.Fatalf("%s: arena changed after a round trip:\n%v", text, diff)
		}
	}
}

func TestPreOrderMatchesIndices(t *testing.T) {
	ft := FromTree(parseWithDepths(t, "(((a,b),c),(d,(e,f)));"))
	want := Index(0)
	for i := range ft.All() {
		require.Equal(t, want, i)
		want++
	}
	require.Equal(t, ft.Len(), int(want))
}

func TestAllIsRestartable(t *testing.T) {
	ft := FromTree(parseWithDepths(t, "((a,b),(c,d));"))
	seq := ft.All()
	var first, second []string
	for _, n := range seq {
		first = append(first, n.Label)
	}
	for _, n := range seq {
		second = append(second, n.Label)
	}
	require.Equal(t, []string{"", "", "a", "b", "", "c", "d"}, first)
	require.Equal(t, first, second)

	// Stopping early must not break later traversals.
	for range seq {
		break
	}
	require.Equal(t, 7, ft.Reachable())
}

func TestOrphansIgnored(t *testing.T) {
	ft := FromTree(parseWithDepths(t, "(A:1,(B:2,C:3):1);"))
	// Detach the root and its first leaf, leaving (B,C) as the tree.
	ft.Nodes[2].Parent = None
	ft.Root = 2

	require.Equal(t, []Index{3, 4}, ft.Leaves())
	require.Equal(t, 3, ft.Reachable())
	require.Equal(t, 5, ft.Len())
	require.Equal(t, "(B:2,C:3):1;", ft.ToTree().Newick())
}

func TestDanglingIndexPanics(t *testing.T) {
	ft := FromTree(parseWithDepths(t, "(A,B);"))
	ft.Nodes[0].Right = 7
	require.Panics(t, func() { ft.ToTree() })
	require.Panics(t, func() { ft.Leaves() })
}
