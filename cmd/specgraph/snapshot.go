package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"specgraph/internal/facts"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot [flags] <facts|directory>... -o <out>",
		Short: "Merge validated fact documents into one file",
		Long: `Merge fact documents into a single document. The output format follows the
extension of --output: .mp/.msgpack writes a binary snapshot, .toml and
.yaml/.yml write text documents.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSnapshot,
	}
	cmd.Flags().StringP("output", "o", "", "output file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	format := facts.DetectFormat(out)
	if format == facts.FormatUnknown {
		return fmt.Errorf("%s: unknown output format (use .mp, .toml or .yaml)", out)
	}

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

	merged := facts.Merge(out, res.Documents...)
	switch format {
	case facts.FormatSnapshot:
		err = facts.SaveSnapshot(out, []*facts.Document{merged})
	case facts.FormatTOML, facts.FormatYAML:
		var buf bytes.Buffer
		if format == facts.FormatTOML {
			err = facts.EncodeTOML(&buf, merged)
		} else {
			err = facts.EncodeYAML(&buf, merged)
		}
		if err == nil {
			err = os.WriteFile(out, buf.Bytes(), 0o600)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if !settings.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s: %s, %s\n", out,
			plural(len(merged.Callables), "callable"), plural(len(merged.Calls), "call"))
	}
	return nil
}
