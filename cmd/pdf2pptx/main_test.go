// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2pptx/internal/raster"
	"github.com/pdiddy/pdf2pptx/pkg/types"
)

func TestResolveCanvas(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.CanvasConfig
		want    types.Canvas
		wantErr error
	}{
		{name: "default", cfg: types.CanvasConfig{}, want: types.DefaultCanvas()},
		{name: "4:3", cfg: types.CanvasConfig{Width: 10, Height: 7.5}, want: types.Canvas{Width: 9144000, Height: 6858000}},
		{name: "width only", cfg: types.CanvasConfig{Width: 10}, wantErr: types.ErrInvalidParameter},
		{name: "height only", cfg: types.CanvasConfig{Height: 7.5}, wantErr: types.ErrInvalidParameter},
		{name: "negative", cfg: types.CanvasConfig{Width: -10, Height: 7.5}, wantErr: types.ErrInvalidParameter},
		{name: "too large", cfg: types.CanvasConfig{Width: 100, Height: 7.5}, wantErr: types.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveCanvas(tt.cfg)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := newLogger(&buf, types.LogConfig{Level: "warn", Format: "json"})
		require.NoError(t, err)

		l.Info().Msg("hidden")
		l.Warn().Str("workspace", "/tmp/x").Msg("cleanup failed")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 1)
		var event map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &event))
		assert.Equal(t, "warn", event["level"])
		assert.Equal(t, "/tmp/x", event["workspace"])
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := newLogger(&buf, types.LogConfig{Level: "DEBUG", Format: "console"})
		require.NoError(t, err)
		l.Debug().Msg("state")
		assert.Contains(t, buf.String(), "state")
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := newLogger(&bytes.Buffer{}, types.LogConfig{Level: "loud"})
		assert.True(t, errors.Is(err, types.ErrInvalidParameter))
		_, err = newLogger(&bytes.Buffer{}, types.LogConfig{Format: "xml"})
		assert.True(t, errors.Is(err, types.ErrInvalidParameter))
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(fmt.Errorf("wrap: %w", types.ErrInvalidParameter)))
	assert.Equal(t, 2, exitCode(types.ErrDocumentNotFound))
	assert.Equal(t, 1, exitCode(types.ErrConversion))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestDoctor(t *testing.T) {
	missing := fmt.Errorf("%w: pdftoppm not found", types.ErrDependencyUnavailable)
	detect := func(b types.RasterBackend) (raster.Rasterizer, error) {
		if b == types.BackendPoppler {
			return nil, missing
		}
		return raster.NewMuPDF(), nil
	}

	tests := []struct {
		name    string
		backend types.RasterBackend
		wantErr error
	}{
		{name: "default backend available", backend: ""},
		{name: "mupdf available", backend: types.BackendMuPDF},
		{name: "poppler missing", backend: types.BackendPoppler, wantErr: types.ErrDependencyUnavailable},
		{name: "unknown backend", backend: "ghostscript", wantErr: types.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := doctor(&buf, types.ConversionConfig{Backend: tt.backend, WorkspaceRoot: t.TempDir()}, detect)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			out := buf.String()
			assert.Contains(t, out, "mupdf     ok")
			assert.Contains(t, out, "poppler   unavailable")
			assert.Contains(t, out, "workspace")
		})
	}
}

func TestFormatHistory(t *testing.T) {
	results := []types.Conversion{
		{
			ID: "a", DocumentPath: "/docs/report.pdf", Status: types.ConversionDone,
			Pages: 12, DPI: 300, StartedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			Duration: 1500 * time.Millisecond, CleanupWarning: "device busy",
		},
		{
			ID: "b", DocumentPath: "/docs/empty.pdf", Status: types.ConversionFailed,
			DPI: 300, Error: "no content",
		},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatHistory(&buf, results, false))
		out := buf.String()
		assert.Contains(t, out, "/docs/report.pdf")
		assert.Contains(t, out, "warning: device busy")
		assert.Contains(t, out, "error: no content")
		assert.Contains(t, out, "2 conversions")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatHistory(&buf, results, true))
		var got []types.Conversion
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Len(t, got, 2)
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, formatHistory(&buf, nil, false))
		assert.Contains(t, buf.String(), "No conversions recorded.")

		buf.Reset()
		require.NoError(t, formatHistory(&buf, nil, true))
		assert.Equal(t, "[]\n", buf.String())
	})
}
