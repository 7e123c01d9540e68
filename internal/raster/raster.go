// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster renders the pages of a paginated document into PNG files.
// Different backends (MuPDF in-process, Poppler's pdftoppm) implement the
// Rasterizer interface; Detect picks one at startup.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/pdf2pptx/internal/toolchain"
	"github.com/pdiddy/pdf2pptx/pkg/types"
)

// Rasterizer turns a document into an ordered sequence of page images.
type Rasterizer interface {
	// Name returns the backend name ("mupdf" or "poppler").
	Name() string

	// Rasterize renders every page of docPath at dpi into targetDir,
	// creating targetDir if needed. Pages are returned in source order with
	// contiguous 1-based indexes. A document without pages yields an empty
	// slice and no error.
	Rasterize(ctx context.Context, docPath, targetDir string, dpi int) ([]types.RasterPage, error)
}

// minPad is the narrowest zero padding used in page file names.
const minPad = 3

// PageName returns the file name of page index in a document of total
// pages. The sequence number is padded to at least three digits and to the
// width of total, so lexical order always equals page order.
func PageName(index, total int) string {
	width := len(strconv.Itoa(total))
	if width < minPad {
		width = minPad
	}
	return fmt.Sprintf("page_%0*d.png", width, index)
}

// Detect returns the rasterizer for backend, or an error wrapping
// types.ErrDependencyUnavailable when the backend cannot run here. An empty
// backend selects MuPDF.
func Detect(backend types.RasterBackend) (Rasterizer, error) {
	return detect(backend, toolchain.Pdftoppm())
}

func detect(backend types.RasterBackend, pdftoppm toolchain.Tool) (Rasterizer, error) {
	switch backend {
	case "", types.BackendMuPDF:
		return NewMuPDF(), nil
	case types.BackendPoppler:
		if err := pdftoppm.Available(); err != nil {
			return nil, fmt.Errorf("poppler backend: %w", err)
		}
		return NewPoppler(pdftoppm), nil
	default:
		return nil, fmt.Errorf("%w: unknown rasterizer backend %q (want %s or %s)",
			types.ErrInvalidParameter, backend, types.BackendMuPDF, types.BackendPoppler)
	}
}

// Backends lists the supported backend names in preference order.
func Backends() []types.RasterBackend {
	return []types.RasterBackend{types.BackendMuPDF, types.BackendPoppler}
}

// checkDocument returns an ErrDocumentNotFound error when path does not
// name a regular file.
func checkDocument(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", types.ErrDocumentNotFound, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", types.ErrDocumentNotFound, path)
	}
	return nil
}

// writePage encodes img as PNG into dir under its sequential page name.
func writePage(dir string, index, total int, img image.Image) (types.RasterPage, error) {
	path := filepath.Join(dir, PageName(index, total))
	f, err := os.Create(path)
	if err != nil {
		return types.RasterPage{}, fmt.Errorf("creating page %d: %w", index, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return types.RasterPage{}, fmt.Errorf("encoding page %d: %w", index, err)
	}
	if err := f.Close(); err != nil {
		return types.RasterPage{}, fmt.Errorf("writing page %d: %w", index, err)
	}

	b := img.Bounds()
	return types.RasterPage{
		Index:       index,
		PixelWidth:  b.Dx(),
		PixelHeight: b.Dy(),
		Location:    path,
	}, nil
}
