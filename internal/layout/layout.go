// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout computes where a page image sits on the slide canvas.
//
// Fit is a "contain" (letterbox) fit: the image is scaled to the largest
// size that fits the canvas with its aspect ratio intact and is centered
// on the axis with leftover space. All arithmetic is integer EMU. The
// fitted dimension and the centering offset are both floored, so the
// placement never leaves the canvas.
package layout

import (
	"fmt"

	"github.com/pdiddy/pdf2pptx/pkg/types"
)

// Axis names the canvas dimension an image was fitted to.
type Axis int

const (
	// ByHeight means the image spans the full canvas height.
	ByHeight Axis = iota
	// ByWidth means the image spans the full canvas width.
	ByWidth
)

func (a Axis) String() string {
	if a == ByWidth {
		return "width"
	}
	return "height"
}

// Fit places an imageWidth x imageHeight pixel image on canvas.
func Fit(imageWidth, imageHeight int, canvas types.Canvas) (types.Placement, error) {
	p, _, err := FitAxis(imageWidth, imageHeight, canvas)
	return p, err
}

// FitAxis is Fit that also reports which axis the image was fitted to.
// Equal aspect ratios take the by-height branch and fill the canvas exactly.
func FitAxis(imageWidth, imageHeight int, canvas types.Canvas) (types.Placement, Axis, error) {
	if imageWidth <= 0 || imageHeight <= 0 {
		return types.Placement{}, ByHeight, fmt.Errorf("%w: image %dx%d", types.ErrInvalidGeometry, imageWidth, imageHeight)
	}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return types.Placement{}, ByHeight, fmt.Errorf("%w: canvas %dx%d", types.ErrInvalidGeometry, canvas.Width, canvas.Height)
	}

	iw, ih := int64(imageWidth), int64(imageHeight)

	// imageAspect > canvasAspect  <=>  iw*canvasH > canvasW*ih
	if iw*canvas.Height > canvas.Width*ih {
		h := canvas.Width * ih / iw
		return types.Placement{
			Left:   0,
			Top:    (canvas.Height - h) / 2,
			Width:  canvas.Width,
			Height: h,
		}, ByWidth, nil
	}

	w := canvas.Height * iw / ih
	return types.Placement{
		Left:   (canvas.Width - w) / 2,
		Top:    0,
		Width:  w,
		Height: canvas.Height,
	}, ByHeight, nil
}
