// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus is the terminal outcome of one conversion.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Conversion is the history record of one pipeline run.
type Conversion struct {
	// ID is a UUID assigned when the run starts.
	ID string `json:"id" yaml:"id"`

	// DocumentPath is the absolute path of the source document.
	DocumentPath string `json:"document_path" yaml:"document_path"`

	// OutputPath is the absolute artifact path (set even on failure).
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Backend names the rasterizer used (e.g. "mupdf", "poppler").
	Backend string `json:"backend" yaml:"backend"`

	DPI    int              `json:"dpi" yaml:"dpi"`
	Pages  int              `json:"pages" yaml:"pages"`
	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the originating error text for failed runs.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// CleanupWarning holds the workspace removal error, if any.
	CleanupWarning string `json:"cleanup_warning,omitempty" yaml:"cleanup_warning,omitempty"`

	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}
