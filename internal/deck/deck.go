// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck assembles raster pages into a slide deck and persists it as
// a .pptx file.
package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf2pptx/internal/imageinfo"
	"github.com/pdiddy/pdf2pptx/internal/layout"
	"github.com/pdiddy/pdf2pptx/internal/pptx"
	"github.com/pdiddy/pdf2pptx/pkg/types"
)

// Assemble builds a deck with one slide per page, in input order, each page
// letterboxed onto canvas. Pages with unknown pixel dimensions are measured
// from their image file.
func Assemble(pages []types.RasterPage, canvas types.Canvas) (*types.Deck, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no page images to assemble", types.ErrNoContent)
	}

	d := &types.Deck{
		Canvas: canvas,
		Slides: make([]types.Slide, 0, len(pages)),
	}
	for i, page := range pages {
		if page.PixelWidth == 0 || page.PixelHeight == 0 {
			w, h, err := imageinfo.Size(page.Location)
			if err != nil {
				return nil, fmt.Errorf("measuring page %d: %w", page.Index, err)
			}
			page.PixelWidth, page.PixelHeight = w, h
		}

		placement, err := layout.Fit(page.PixelWidth, page.PixelHeight, canvas)
		if err != nil {
			return nil, fmt.Errorf("placing page %d: %w", page.Index, err)
		}

		d.Slides = append(d.Slides, types.Slide{
			Index:     i + 1,
			Page:      page,
			Placement: placement,
		})
	}
	return d, nil
}

// Save writes d to outputPath and returns the absolute artifact path. The
// package is written to a temporary file beside outputPath and renamed into
// place only once complete, so a failed save never leaves a partial file at
// outputPath. All failures wrap types.ErrWrite.
func Save(d *types.Deck, outputPath string) (string, error) {
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return "", fmt.Errorf("%w: resolving %s: %v", types.ErrWrite, outputPath, err)
	}

	pres := pptx.New(d.Canvas.Width, d.Canvas.Height)
	pres.Title = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	for _, s := range d.Slides {
		p := s.Placement
		if err := pres.AddBlankSlide().AddPicture(s.Page.Location, p.Left, p.Top, p.Width, p.Height); err != nil {
			return "", fmt.Errorf("%w: slide %d: %v", types.ErrWrite, s.Index, err)
		}
	}

	dir := filepath.Dir(abs)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(abs)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrWrite, err)
	}
	tmpPath := tmp.Name()

	if err := pres.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s: %v", types.ErrWrite, abs, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s: %v", types.ErrWrite, abs, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s: %v", types.ErrWrite, abs, err)
	}
	if err := os.Rename(tmpPath, abs); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %s: %v", types.ErrWrite, abs, err)
	}
	return abs, nil
}
