package sample

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteReport prints the sampled and removed leaf names. With `table` set,
// it also prints every leaf with its depth and fate.
func (r *Result) WriteReport(w io.Writer, table bool) {
	fmt.Fprintf(w, "Sampled Leaves: %q\n", r.SampledNames())
	fmt.Fprintf(w, "Removed Leaves: %q\n", r.RemovedNames())
	if !table {
		return
	}

	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Leaf", "Depth", "Status"})
	for _, l := range r.Sampled {
		tbl.Append([]string{l.Name, strconv.FormatFloat(l.Depth, 'f', -1, 64), "sampled"})
	}
	for _, l := range r.Removed {
		tbl.Append([]string{l.Name, strconv.FormatFloat(l.Depth, 'f', -1, 64), "removed"})
	}
	tbl.Render()
}
