// Command extant samples the extant species of a species tree: it keeps the
// n leaves furthest from the root, prunes every other leaf and writes the
// resulting tree to <output_dir>/extant_species_tree.nwk.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/TuftsBCB/extant/sample"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// exitError carries the message to print and the process exit code.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

type options struct {
	logLevel   string
	logFormat  string
	outputName string
	table      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(stderr, exitErr.msg)
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "extant <species_tree_path> <n_extant_nodes> <output_dir>",
		Short: "keep the n most recent leaves of a species tree",
		Long: `Reads a binary species tree in Newick format, keeps the n leaves furthest
from the root and prunes all others. Branch lengths of the pruned tree are
recomputed so every kept leaf stays at its original depth. The result is
written to <output_dir>/` + sample.DefaultOutputName + `.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return &exitError{
					code: 2,
					msg: fmt.Sprintf("%s\nReceived arguments: %q",
						cmd.UsageString(), args),
				}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(opts, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.Flags().StringVar(
		&opts.logLevel, "log-level", "info", "logging level: debug, info, warn or error")
	cmd.Flags().StringVar(
		&opts.logFormat, "log-format", "text", "log output format: text or json")
	cmd.Flags().StringVar(
		&opts.outputName, "output-name", sample.DefaultOutputName,
		"file name of the pruned tree inside the output directory")
	cmd.Flags().BoolVar(
		&opts.table, "table", false, "print a table of every leaf with its depth")
	return cmd
}

func runSample(opts options, args []string, stdout, stderr io.Writer) error {
	treePath, outputDir := args[0], args[2]
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 0 {
		return &exitError{
			code: 2,
			msg: fmt.Sprintf("Error: n_extant_nodes must be a non-negative "+
				"integer. Received: %s\nAll arguments: %q", args[1], args),
		}
	}

	logger, err := newLogger(opts.logLevel, opts.logFormat, stderr)
	if err != nil {
		return &exitError{code: 2, msg: "Error: " + err.Error()}
	}

	cfg, err := sample.NewConfig(sample.Config{
		TreePath:   treePath,
		NExtant:    n,
		OutputDir:  outputDir,
		OutputName: opts.outputName,
	})
	if err != nil {
		return &exitError{code: 2, msg: "Error: " + err.Error()}
	}

	res, err := sample.Run(logger, cfg)
	if err != nil {
		return &exitError{
			code: 1,
			msg: fmt.Sprintf("Error during species tree sampling: %v\n"+
				"Species Tree Path: %s\n"+
				"Number of Sampled Nodes: %d\n"+
				"Output Directory: %s", err, treePath, n, outputDir),
		}
	}
	res.WriteReport(stdout, opts.table)
	return nil
}
