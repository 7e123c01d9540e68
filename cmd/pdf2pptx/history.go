// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2pptx/internal/history"
	"github.com/pdiddy/pdf2pptx/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export past conversions",
	Long: `History reads the local SQLite conversion log, newest first. Use
--status to show only converted or failed runs, --json for machine
readable output, or --export to dump the log as YAML or JSON.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	hc := historyConfig()
	if hc.DB == "" {
		return fmt.Errorf("%w: history.db is not set", types.ErrInvalidParameter)
	}

	store, err := history.Open(hc.DB, hc.MaxResults)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	status, _ := cmd.Flags().GetString("status")
	document, _ := cmd.Flags().GetString("document")
	opts := history.QueryOptions{
		Status:     types.ConversionStatus(status),
		Document:   document,
		MaxResults: limit,
	}
	if opts.Document != "" {
		if abs, err := filepath.Abs(opts.Document); err == nil {
			opts.Document = abs
		}
	}

	ctx := context.Background()
	out := cmd.OutOrStdout()

	format, _ := cmd.Flags().GetString("export")
	switch format {
	case "":
	case "yaml":
		return store.ExportYAML(ctx, out, opts)
	case "json":
		return store.ExportJSON(ctx, out, opts)
	default:
		return fmt.Errorf("%w: unsupported export format %q: use yaml or json", types.ErrInvalidParameter, format)
	}

	results, err := store.List(ctx, opts)
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(out, results, jsonOutput)
}

func formatHistory(w io.Writer, results []types.Conversion, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if results == nil {
			results = []types.Conversion{}
		}
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-19s  %-9s  %-5s  %-4s  %-8s  %s\n",
		"Started", "Status", "Pages", "DPI", "Took", "Document")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, c := range results {
		doc := c.DocumentPath
		if len(doc) > 40 {
			doc = "..." + doc[len(doc)-37:]
		}
		fmt.Fprintf(w, "%-19s  %-9s  %-5d  %-4d  %-8s  %s\n",
			c.StartedAt.Local().Format("2006-01-02 15:04:05"), c.Status, c.Pages, c.DPI,
			c.Duration.Round(10*time.Millisecond), doc)
		if c.Error != "" {
			fmt.Fprintf(w, "    error: %s\n", c.Error)
		}
		if c.CleanupWarning != "" {
			fmt.Fprintf(w, "    warning: %s\n", c.CleanupWarning)
		}
	}

	fmt.Fprintf(w, "\n%d conversions\n", len(results))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of conversions to show (default history.max_results)")
	historyCmd.Flags().String("status", "", "filter by status: converted or failed")
	historyCmd.Flags().String("document", "", "filter by source document")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().String("export", "", "export format: yaml or json")

	rootCmd.AddCommand(historyCmd)
}
