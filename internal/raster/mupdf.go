// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"context"
	"fmt"
	"os"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/pdf2pptx/pkg/types"
)

// MuPDF renders pages in-process through go-fitz.
type MuPDF struct{}

// NewMuPDF creates a MuPDF rasterizer.
func NewMuPDF() *MuPDF {
	return &MuPDF{}
}

// Name returns "mupdf".
func (m *MuPDF) Name() string { return string(types.BackendMuPDF) }

// Rasterize renders each page at dpi and writes it as PNG into targetDir.
func (m *MuPDF) Rasterize(ctx context.Context, docPath, targetDir string, dpi int) ([]types.RasterPage, error) {
	if err := checkDocument(docPath); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating page directory: %w", err)
	}

	doc, err := fitz.New(docPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrConversion, docPath, err)
	}
	defer doc.Close()

	total := doc.NumPage()
	pages := make([]types.RasterPage, 0, total)
	for n := 0; n < total; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(n, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("%w: rendering page %d of %s: %v", types.ErrConversion, n+1, docPath, err)
		}

		page, err := writePage(targetDir, n+1, total, img)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}
