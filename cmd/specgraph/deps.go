package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"specgraph/internal/callgraph"
	"specgraph/internal/diag"
	"specgraph/internal/diagfmt"
	"specgraph/internal/names"
	"specgraph/internal/source"
)

func newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps [flags] <facts|directory>... <callable>",
		Short: "Show what a callable references",
		Long: `Without --all, list every reference site of the callable in the generic call graph
together with its type parameter resolutions. With --all, instantiate from the
callable and list every concrete specialization it transitively references.`,
		Args: cobra.MinimumNArgs(2),
		RunE: runDeps,
	}
	cmd.Flags().Bool("all", false, "list transitive concrete dependencies")
	cmd.Flags().Int("max-depth", 0, "max instantiation depth (0=default)")
	return cmd
}

func runDeps(cmd *cobra.Command, args []string) error {
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}
	callable, err := names.ParseQualifiedName(args[len(args)-1])
	if err != nil {
		return err
	}

	settings, err := loadCheckSettings(cmd)
	if err != nil {
		return err
	}
	settings.opts.Instantiate = all
	settings.opts.Entries = []string{callable.String()}
	res, err := runChecked(cmd, args[:len(args)-1], settings)
	if err != nil {
		return err
	}
	if err := reportFactErrors(cmd.ErrOrStderr(), res); err != nil {
		return err
	}
	node := callgraph.G(callable)
	if !res.Program.Graph.ContainsNode(node) {
		return fmt.Errorf("callable %s is not in the call graph", callable)
	}

	if !all {
		var rows [][]string
		for _, dep := range res.Program.Graph.DirectDependencies(node) {
			for _, e := range dep.Edges {
				rows = append(rows, []string{dep.To.String(), location(res.FileSet, e.Range), e.Resolutions.String()})
			}
		}
		return printDeps(cmd, settings.quiet, []string{"CALLEE", "SITE", "RESOLUTIONS"}, rows)
	}

	if res.Bag.Count(diag.MonoGenericEntry) > 0 {
		return fmt.Errorf("callable %s declares type parameters; instantiate from a non-generic caller", callable)
	}
	if res.Concrete == nil {
		return fmt.Errorf("no concrete graph for %s", callable)
	}
	var rows [][]string
	root := callgraph.NewConcreteNode(callable, names.Body, nil)
	for _, dep := range res.Concrete.AllDependencies(root) {
		sites := make([]string, len(dep.Edges))
		for i, e := range dep.Edges {
			sites[i] = location(res.FileSet, e.Range)
		}
		rows = append(rows, []string{dep.To.String(), strings.Join(sites, ", ")})
	}
	slices.SortFunc(rows, func(a, b []string) int { return strings.Compare(a[0], b[0]) })
	if err := printDeps(cmd, settings.quiet, []string{"SPECIALIZATION", "VIA"}, rows); err != nil {
		return err
	}
	if len(res.Issues) > 0 {
		if err := diagfmt.Short(cmd.ErrOrStderr(), res.Bag, res.FileSet, false); err != nil {
			return fmt.Errorf("write diagnostics: %w", err)
		}
		return errHasErrors
	}
	return nil
}

func printDeps(cmd *cobra.Command, quiet bool, header []string, rows [][]string) error {
	if len(rows) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "no dependencies")
		}
		return nil
	}
	return diagfmt.Table(cmd.OutOrStdout(), header, rows)
}

func location(fs *source.FileSet, sp source.Span) string {
	path := "<unknown>"
	if f := fs.Get(sp.File); f != nil {
		path = f.Path
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}
