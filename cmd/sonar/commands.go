package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/jd3600/sonar/internal/mcpserver"
	"github.com/jd3600/sonar/internal/report"
	"github.com/jd3600/sonar/internal/template"
	"github.com/jd3600/sonar/internal/types"
	"github.com/spf13/cobra"
)

func newCollectCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Merge pending records into the shared collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.collector.Collect(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d, duplicates %d, unreadable %d -> %s\n",
				res.Added, res.Duplicates, res.Failed, a.collection.Path())
			return nil
		},
	}
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List records waiting to be collected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			status, err := a.collector.Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(status) == 0 {
				fmt.Fprintln(out, "no pending records")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TYPE\tID\tFILE\tSPEAKERS\tTOPICS")
			for _, s := range status {
				if s.Error != "" {
					fmt.Fprintf(tw, "?\t-\t%s\t-\t%s\n", filepath.Base(s.Path), s.Error)
					continue
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%v\n", s.MediaKind, s.ID, s.Filename, s.Speakers, s.Topics)
			}
			return tw.Flush()
		},
	}
}

func newResetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard every pending record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.collector.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "discarded %d pending records\n", n)
			return nil
		},
	}
}

func newExtractCmd(flags *rootFlags) *cobra.Command {
	var (
		kindStr  string
		duration int
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "extract <analysis.txt>",
		Short: "Run extraction on a saved analysis text and print the record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := types.ParseMediaKind(kindStr)
			if err != nil {
				return err
			}
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read analysis: %w", err)
			}

			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			asm, ok := a.assemblers[kind]
			if !ok {
				return fmt.Errorf("pipeline %s is disabled", kind)
			}

			in := template.Input{Filename: filepath.Base(args[0]), Text: string(text), DurationSeconds: duration}
			var rec *types.Record
			if save {
				if rec, err = asm.Assemble(cmd.Context(), in); err != nil {
					return err
				}
			} else {
				rec = asm.Build(in)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}

	cmd.Flags().StringVarP(&kindStr, "type", "t", "audio", "media kind of the analysis: audio or video")
	cmd.Flags().IntVarP(&duration, "duration", "d", 0, "duration in seconds to put on the record")
	cmd.Flags().BoolVar(&save, "save", false, "also write the record to the pending directory")
	return cmd
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <out.xlsx>",
		Short: "Export the collection to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			recs, err := a.collection.Load()
			if err != nil {
				return err
			}
			if err := report.ExportXLSX(recs, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s\n", len(recs), args[0])
			return nil
		},
	}
}

func newMCPCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve SONAR tools over the Model Context Protocol (stdio)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol
			a, err := newApp(flags, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			return mcpserver.Serve(mcpserver.NewServer(mcpserver.Config{
				Version:    version,
				Collector:  a.collector,
				Records:    a.collection,
				Archive:    a.archive,
				Assemblers: a.assemblers,
			}))
		},
	}
}
