// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// exportLimit bounds the number of records in one export.
const exportLimit = 100000

// ExportEntry is one conversion as written by an export.
type ExportEntry struct {
	ID             string `json:"id" yaml:"id"`
	Document       string `json:"document" yaml:"document"`
	Output         string `json:"output,omitempty" yaml:"output,omitempty"`
	Backend        string `json:"backend" yaml:"backend"`
	DPI            int    `json:"dpi" yaml:"dpi"`
	Pages          int    `json:"pages" yaml:"pages"`
	Status         string `json:"status" yaml:"status"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
	CleanupWarning string `json:"cleanup_warning,omitempty" yaml:"cleanup_warning,omitempty"`
	StartedAt      string `json:"started_at" yaml:"started_at"`
	DurationMS     int64  `json:"duration_ms" yaml:"duration_ms"`
}

// ExportYAML writes the conversions matching opts to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the conversions matching opts to w as JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, opts QueryOptions) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	results, err := s.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, c := range results {
		entries[i] = ExportEntry{
			ID:             c.ID,
			Document:       c.DocumentPath,
			Output:         c.OutputPath,
			Backend:        c.Backend,
			DPI:            c.DPI,
			Pages:          c.Pages,
			Status:         string(c.Status),
			Error:          c.Error,
			CleanupWarning: c.CleanupWarning,
			StartedAt:      c.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
			DurationMS:     c.Duration.Milliseconds(),
		}
	}
	return entries, nil
}
