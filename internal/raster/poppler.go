// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/pdf2pptx/internal/imageinfo"
	"github.com/pdiddy/pdf2pptx/internal/toolchain"
	"github.com/pdiddy/pdf2pptx/pkg/types"
)

// popplerPrefix is the output root handed to pdftoppm. It writes
// <prefix>-<n>.png with a page-count dependent pad width.
const popplerPrefix = "pdftoppm"

// Poppler renders pages by running pdftoppm.
type Poppler struct {
	tool toolchain.Tool
}

// NewPoppler creates a rasterizer backed by the given pdftoppm tool. The
// caller is expected to have checked tool.Available.
func NewPoppler(tool toolchain.Tool) *Poppler {
	return &Poppler{tool: tool}
}

// Name returns "poppler".
func (p *Poppler) Name() string { return string(types.BackendPoppler) }

// Rasterize runs pdftoppm into targetDir, then renames its output to the
// sequential page scheme ordered by the integer page number.
func (p *Poppler) Rasterize(ctx context.Context, docPath, targetDir string, dpi int) ([]types.RasterPage, error) {
	if err := checkDocument(docPath); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating page directory: %w", err)
	}

	args := []string{"-r", strconv.Itoa(dpi), "-png", docPath, filepath.Join(targetDir, popplerPrefix)}
	if err := p.tool.Run(ctx, args...); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", types.ErrConversion, err)
	}

	found, err := collectPopplerPages(targetDir)
	if err != nil {
		return nil, err
	}

	total := len(found)
	pages := make([]types.RasterPage, 0, total)
	for i, f := range found {
		if f.index != i+1 {
			return nil, fmt.Errorf("%w: pdftoppm output is missing page %d", types.ErrConversion, i+1)
		}
		dst := filepath.Join(targetDir, PageName(f.index, total))
		if err := os.Rename(f.path, dst); err != nil {
			return nil, fmt.Errorf("renaming page %d: %w", f.index, err)
		}
		w, h, err := imageinfo.Size(dst)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", types.ErrConversion, f.index, err)
		}
		pages = append(pages, types.RasterPage{
			Index:       f.index,
			PixelWidth:  w,
			PixelHeight: h,
			Location:    dst,
		})
	}
	return pages, nil
}

type popplerPage struct {
	index int
	path  string
}

// collectPopplerPages lists pdftoppm output in dir sorted by page number.
func collectPopplerPages(dir string) ([]popplerPage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading page directory: %w", err)
	}

	var pages []popplerPage
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, popplerPrefix+"-") || !strings.HasSuffix(name, ".png") {
			continue
		}
		num := strings.TrimSuffix(strings.TrimPrefix(name, popplerPrefix+"-"), ".png")
		n, err := strconv.Atoi(num)
		if err != nil || n < 1 {
			continue
		}
		pages = append(pages, popplerPage{index: n, path: filepath.Join(dir, name)})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].index < pages[j].index })
	return pages, nil
}
