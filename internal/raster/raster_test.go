// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2pptx/pkg/types"
)

func TestPageName(t *testing.T) {
	tests := []struct {
		index, total int
		want         string
	}{
		{1, 1, "page_001.png"},
		{12, 99, "page_012.png"},
		{999, 999, "page_999.png"},
		{7, 1000, "page_0007.png"},
		{1000, 1000, "page_1000.png"},
		{42, 123456, "page_000042.png"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, PageName(tt.index, tt.total))
		})
	}
}

func TestPageName_LexicalOrderMatchesPageOrder(t *testing.T) {
	for _, total := range []int{9, 999, 1000, 1234} {
		names := make([]string, total)
		for i := range names {
			names[i] = PageName(i+1, total)
		}
		assert.True(t, sort.StringsAreSorted(names), "names for %d pages are not sorted", total)
	}
}

// fakeTool implements toolchain.Tool. Run calls runFunc with the output
// prefix passed to pdftoppm.
type fakeTool struct {
	availErr error
	runFunc  func(args []string) error
	calls    [][]string
}

func (f *fakeTool) Name() string { return "pdftoppm" }
func (f *fakeTool) Available() error { return f.availErr }
func (f *fakeTool) Run(ctx context.Context, args ...string) error {
	f.calls = append(f.calls, args)
	if f.runFunc != nil {
		return f.runFunc(args)
	}
	return nil
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		backend  types.RasterBackend
		tool     *fakeTool
		wantName string
		wantErr  error
	}{
		{name: "default is mupdf", backend: "", tool: &fakeTool{}, wantName: "mupdf"},
		{name: "explicit mupdf", backend: types.BackendMuPDF, tool: &fakeTool{}, wantName: "mupdf"},
		{name: "poppler available", backend: types.BackendPoppler, tool: &fakeTool{}, wantName: "poppler"},
		{
			name:    "poppler missing",
			backend: types.BackendPoppler,
			tool:    &fakeTool{availErr: fmt.Errorf("%w: pdftoppm not found on PATH", types.ErrDependencyUnavailable)},
			wantErr: types.ErrDependencyUnavailable,
		},
		{name: "unknown backend", backend: "ghostscript", tool: &fakeTool{}, wantErr: types.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := detect(tt.backend, tt.tool)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, r.Name())
		})
	}
}

// writePNG writes a w x h PNG to path.
func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
	require.NoError(t, f.Close())
}

// touchDoc creates a placeholder document file.
func touchDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644))
	return path
}

// popplerEmitting returns a runFunc that writes n pages the way pdftoppm
// names them: the pad width is the digit count of n.
func popplerEmitting(t *testing.T, n int, skip int) func(args []string) error {
	return func(args []string) error {
		prefix := args[len(args)-1]
		width := len(fmt.Sprint(n))
		for i := 1; i <= n; i++ {
			if i == skip {
				continue
			}
			writePNG(t, fmt.Sprintf("%s-%0*d.png", prefix, width, i), 10+i, 20)
		}
		return nil
	}
}

func TestPoppler_Rasterize(t *testing.T) {
	doc := touchDoc(t)
	dir := filepath.Join(t.TempDir(), "pages")
	tool := &fakeTool{runFunc: popplerEmitting(t, 12, 0)}

	pages, err := NewPoppler(tool).Rasterize(context.Background(), doc, dir, 150)
	require.NoError(t, err)
	require.Len(t, pages, 12)

	for i, p := range pages {
		assert.Equal(t, i+1, p.Index)
		assert.Equal(t, 10+i+1, p.PixelWidth, "page %d width", p.Index)
		assert.Equal(t, 20, p.PixelHeight)
		assert.Equal(t, filepath.Join(dir, PageName(i+1, 12)), p.Location)
		assert.FileExists(t, p.Location)
	}

	require.Len(t, tool.calls, 1)
	assert.Equal(t, []string{"-r", "150", "-png", doc, filepath.Join(dir, popplerPrefix)}, tool.calls[0])

	leftovers, err := filepath.Glob(filepath.Join(dir, popplerPrefix+"-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "pdftoppm output should be renamed")
}

func TestPoppler_Errors(t *testing.T) {
	t.Run("document not found", func(t *testing.T) {
		tool := &fakeTool{}
		_, err := NewPoppler(tool).Rasterize(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"), t.TempDir(), 300)
		assert.True(t, errors.Is(err, types.ErrDocumentNotFound), "got %v", err)
		assert.Empty(t, tool.calls, "tool must not run for a missing document")
	})

	t.Run("tool failure is a conversion error", func(t *testing.T) {
		tool := &fakeTool{runFunc: func([]string) error { return errors.New("running pdftoppm: exit status 1: Syntax Error") }}
		_, err := NewPoppler(tool).Rasterize(context.Background(), touchDoc(t), t.TempDir(), 300)
		assert.True(t, errors.Is(err, types.ErrConversion), "got %v", err)
		assert.ErrorContains(t, err, "Syntax Error")
	})

	t.Run("gap in output is a conversion error", func(t *testing.T) {
		tool := &fakeTool{runFunc: popplerEmitting(t, 4, 2)}
		_, err := NewPoppler(tool).Rasterize(context.Background(), touchDoc(t), t.TempDir(), 300)
		assert.True(t, errors.Is(err, types.ErrConversion), "got %v", err)
		assert.ErrorContains(t, err, "missing page 2")
	})

	t.Run("cancellation passes through", func(t *testing.T) {
		tool := &fakeTool{runFunc: func([]string) error { return context.Canceled }}
		_, err := NewPoppler(tool).Rasterize(context.Background(), touchDoc(t), t.TempDir(), 300)
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
		assert.False(t, errors.Is(err, types.ErrConversion))
	})
}

func TestPoppler_NoPages(t *testing.T) {
	tool := &fakeTool{}
	pages, err := NewPoppler(tool).Rasterize(context.Background(), touchDoc(t), t.TempDir(), 300)
	require.NoError(t, err)
	assert.Empty(t, pages)
}
