package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"specgraph/internal/callgraph"
	"specgraph/internal/diag"
	"specgraph/internal/diagfmt"
	"specgraph/internal/driver"
)

func newCyclesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycles [flags] <facts|directory>...",
		Short: "List the elementary cycles of the generic call graph",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCycles,
	}
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	return cmd
}

func runCycles(cmd *cobra.Command, args []string) error {
	settings, err := loadCheckSettings(cmd)
	if err != nil {
		return err
	}
	settings.opts.Instantiate = false
	res, err := runChecked(cmd, args, settings)
	if err != nil {
		return err
	}
	if err := reportFactErrors(cmd.ErrOrStderr(), res); err != nil {
		return err
	}

	invalid := make(map[string]bool)
	for _, f := range res.Findings {
		invalid[cycleKey(f.Cycle)] = true
	}
	nodes := make([][]string, len(res.Cycles))
	for i, c := range res.Cycles {
		nodes[i] = make([]string, len(c))
		for j, n := range c {
			nodes[i][j] = n.String()
		}
	}
	rows := diagfmt.CycleRows(nodes)
	for i := range rows {
		status := "ok"
		if invalid[cycleKey(res.Cycles[i])] {
			status = "invalid"
		}
		rows[i] = append(rows[i], status)
	}
	if len(rows) == 0 {
		if !settings.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no cycles")
		}
		return nil
	}
	return diagfmt.Table(cmd.OutOrStdout(), []string{"#", "LEN", "CYCLE", "STATUS"}, rows)
}

func cycleKey(cycle []callgraph.GenericNode) string {
	ids := make([]string, len(cycle))
	for i, n := range cycle {
		ids[i] = n.ID()
	}
	return strings.Join(ids, "\x00")
}

// reportFactErrors prints errors raised while loading and building the
// graph, which make the graph incomplete, and returns errHasErrors after
// printing them. Cycle findings are left to the caller.
func reportFactErrors(w io.Writer, res *driver.CheckResult) error {
	bag := diag.NewBag(int(res.Bag.Cap()))
	for _, d := range res.Bag.Items() {
		if d.Severity == diag.SevError && d.Code >= diag.FctInfo && d.Code < diag.MonoInfo {
			bag.Add(d)
		}
	}
	if !bag.HasErrors() {
		return nil
	}
	if err := diagfmt.Short(w, bag, res.FileSet, false); err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}
	return errHasErrors
}
