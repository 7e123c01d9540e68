// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the conversion stages:
// raster pages, the slide canvas, placements, slides, and decks.
package types

import (
	"fmt"
	"math"
)

// EMUPerInch is the number of English Metric Units in one inch. Decks store
// every length in EMU.
const EMUPerInch = 914400

// Default canvas size in inches (16:9 widescreen).
const (
	DefaultCanvasWidthInches  = 13.333
	DefaultCanvasHeightInches = 7.5
)

// Slide size limits accepted by presentation software (1 to 56 inches).
const (
	MinCanvasEMU = 914400
	MaxCanvasEMU = 51206400
)

// Inches converts a length in inches to EMU, truncating toward zero.
func Inches(in float64) int64 {
	return int64(in * EMUPerInch)
}

// ToInches converts a length in EMU to inches.
func ToInches(emu int64) float64 {
	return float64(emu) / EMUPerInch
}

// Canvas is the fixed slide geometry shared by every slide in a deck.
type Canvas struct {
	// Width is the slide width in EMU.
	Width int64 `json:"width" yaml:"width"`

	// Height is the slide height in EMU.
	Height int64 `json:"height" yaml:"height"`
}

// DefaultCanvas returns the 13.333 x 7.5 inch widescreen canvas.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:  Inches(DefaultCanvasWidthInches),
		Height: Inches(DefaultCanvasHeightInches),
	}
}

// CanvasFromInches builds a canvas from a width and height in inches. Both
// dimensions must be positive.
func CanvasFromInches(width, height float64) (Canvas, error) {
	if width <= 0 || height <= 0 || math.IsNaN(width) || math.IsNaN(height) {
		return Canvas{}, fmt.Errorf("%w: canvas %gx%g in must be positive", ErrInvalidParameter, width, height)
	}
	c := Canvas{Width: Inches(width), Height: Inches(height)}
	if err := c.Validate(); err != nil {
		return Canvas{}, err
	}
	return c, nil
}

// Validate checks that both dimensions are within the slide size limits.
func (c Canvas) Validate() error {
	for _, d := range []int64{c.Width, c.Height} {
		if d < MinCanvasEMU || d > MaxCanvasEMU {
			return fmt.Errorf("%w: canvas %.3fx%.3f in outside 1-56 in", ErrInvalidParameter, ToInches(c.Width), ToInches(c.Height))
		}
	}
	return nil
}

// AspectRatio returns width/height, or 0 for a degenerate canvas.
func (c Canvas) AspectRatio() float64 {
	if c.Height == 0 {
		return 0
	}
	return float64(c.Width) / float64(c.Height)
}

// RasterPage is one rendered page persisted in a workspace. Index is 1-based
// and follows source page order.
type RasterPage struct {
	Index       int    `json:"index" yaml:"index"`
	PixelWidth  int    `json:"pixel_width" yaml:"pixel_width"`
	PixelHeight int    `json:"pixel_height" yaml:"pixel_height"`
	Location    string `json:"location" yaml:"location"`
}

// Placement is a rectangle on the canvas, in EMU.
type Placement struct {
	Left   int64 `json:"left" yaml:"left"`
	Top    int64 `json:"top" yaml:"top"`
	Width  int64 `json:"width" yaml:"width"`
	Height int64 `json:"height" yaml:"height"`
}

// Within reports whether p lies entirely inside c.
func (p Placement) Within(c Canvas) bool {
	return p.Left >= 0 && p.Top >= 0 &&
		p.Left+p.Width <= c.Width &&
		p.Top+p.Height <= c.Height
}

// Slide pairs a raster page with its placement on the canvas.
type Slide struct {
	Index     int        `json:"index" yaml:"index"`
	Page      RasterPage `json:"page" yaml:"page"`
	Placement Placement  `json:"placement" yaml:"placement"`
}

// Deck is the ordered set of slides sharing one canvas.
type Deck struct {
	Canvas Canvas  `json:"canvas" yaml:"canvas"`
	Slides []Slide `json:"slides" yaml:"slides"`
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.Slides)
}
