// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imageinfo reads pixel dimensions and format of image files
// without decoding the full image.
package imageinfo

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes an image file.
type Info struct {
	Width  int
	Height int
	// Format is the registered decoder name, e.g. "png" or "jpeg".
	Format string
}

// Read returns the dimensions and format of the image at path.
func Read(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("opening image %s: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("reading image header %s: %w", path, err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Size returns the pixel width and height of the image at path.
func Size(path string) (width, height int, err error) {
	info, err := Read(path)
	if err != nil {
		return 0, 0, err
	}
	return info.Width, info.Height, nil
}
