package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"specgraph/internal/diagfmt"
	"specgraph/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <facts|directory>...",
		Short: "Validate generic resolutions along every call graph cycle",
		Long: `Load fact documents, build the generic call graph and validate the type parameter
resolutions along each of its elementary cycles. With --instantiate the concrete
specializations reachable from the entry callables are derived as well.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	cmd.Flags().Bool("instantiate", false, "derive concrete specializations from the entries")
	cmd.Flags().StringSlice("entry", nil, "entry callable (repeatable); overrides the entries of the facts")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Int("max-depth", 0, "max instantiation depth (0=default)")
	return cmd
}

// checkSettings are the driver options after flags and the project file
// were merged.
type checkSettings struct {
	opts  driver.CheckOptions
	quiet bool
}

func loadCheckSettings(cmd *cobra.Command) (checkSettings, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return checkSettings{}, err
	}
	root := cmd.Root().PersistentFlags()
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return checkSettings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := root.GetBool("timings")
	if err != nil {
		return checkSettings{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := root.GetBool("quiet")
	if err != nil {
		return checkSettings{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}

	opts := driver.CheckOptions{
		Jobs:           cfg.Check.Jobs,
		MaxDiagnostics: maxDiagnostics,
		MaxDepth:       cfg.Check.MaxDepth,
		Entries:        cfg.Check.Entries,
		Instantiate:    cfg.Check.Instantiate,
		LoadSources:    true,
		EnableTimings:  timings,
	}

	flags := cmd.Flags()
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return checkSettings{}, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Lookup("max-depth") != nil && flags.Changed("max-depth") {
		if opts.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
			return checkSettings{}, fmt.Errorf("failed to get max-depth flag: %w", err)
		}
	}
	if flags.Lookup("entry") != nil && flags.Changed("entry") {
		if opts.Entries, err = flags.GetStringSlice("entry"); err != nil {
			return checkSettings{}, fmt.Errorf("failed to get entry flag: %w", err)
		}
	}
	if flags.Lookup("instantiate") != nil && flags.Changed("instantiate") {
		if opts.Instantiate, err = flags.GetBool("instantiate"); err != nil {
			return checkSettings{}, fmt.Errorf("failed to get instantiate flag: %w", err)
		}
	}
	return checkSettings{opts: opts, quiet: quiet}, nil
}

// runChecked runs the driver with tracing set up around it.
func runChecked(cmd *cobra.Command, args []string, settings checkSettings) (*driver.CheckResult, error) {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return nil, err
	}
	defer stopProfiling()

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	paths, err := driver.ExpandPaths(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no fact documents in %s", strings.Join(args, ", "))
	}
	return driver.Check(cmd.Context(), paths, settings.opts)
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("unknown path mode %q", pathModeStr)
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format %q (must be pretty, short or json)", format)
	}
	colored, err := useColor(cmd)
	if err != nil {
		return err
	}

	settings, err := loadCheckSettings(cmd)
	if err != nil {
		return err
	}
	res, err := runChecked(cmd, args, settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.Pretty(out, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     colored,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	case "short":
		err = diagfmt.Short(out, res.Bag, res.FileSet, withNotes)
	case "json":
		err = diagfmt.JSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
	}
	if err != nil {
		return err
	}

	if !settings.quiet {
		printSummary(cmd.ErrOrStderr(), res)
		if res.Timer != nil {
			fmt.Fprint(cmd.ErrOrStderr(), res.Timer.Summary())
		}
	}
	if res.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

func printSummary(w io.Writer, res *driver.CheckResult) {
	nodes, edges := 0, 0
	if res.Program != nil {
		nodes, edges = res.Program.Graph.Len(), res.Program.Graph.EdgeCount()
	}
	fmt.Fprintf(w, "checked %s, %s, %s",
		plural(nodes, "callable"), plural(edges, "call"), plural(len(res.Cycles), "cycle"))
	if res.Concrete != nil {
		fmt.Fprintf(w, ", %s", plural(res.Concrete.Len(), "specialization"))
	}
	fmt.Fprintf(w, ": %s\n", plural(res.Bag.Len(), "diagnostic"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
