// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs a document-to-deck conversion end to end: validate
// input, rasterize into a private workspace, assemble slides, save the
// deck, and release the workspace on every exit path.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/pdf2pptx/internal/deck"
	"github.com/pdiddy/pdf2pptx/internal/raster"
	"github.com/pdiddy/pdf2pptx/internal/workspace"
	"github.com/pdiddy/pdf2pptx/pkg/types"
)

// State is a stage of one conversion.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating_input"
	StateRasterize  State = "rasterizing"
	StateAssemble   State = "assembling"
	StateSave       State = "saving"
	StateCleanup    State = "cleaning_up"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Recorder persists the outcome of each conversion. The history store
// implements it.
type Recorder interface {
	Record(ctx context.Context, c types.Conversion) error
}

// Request describes one conversion.
type Request struct {
	// DocumentPath is the source document (required).
	DocumentPath string
	// OutputPath is the deck to write; empty means the document's
	// directory and base name with the .pptx extension.
	OutputPath string
	// DPI is the rasterization resolution; it must be positive.
	DPI int
}

// Result describes a finished conversion.
type Result struct {
	ID       string
	Path     string // absolute artifact path
	Pages    int
	Duration time.Duration

	// CleanupErr is set when the workspace could not be removed. It never
	// turns a successful conversion into a failure.
	CleanupErr error
}

// Pipeline converts documents into decks. A Pipeline holds no per-run
// state and may be reused.
type Pipeline struct {
	rasterizer    raster.Rasterizer
	canvas        types.Canvas
	workspaceRoot string
	log           zerolog.Logger
	recorder      Recorder

	assemble func([]types.RasterPage, types.Canvas) (*types.Deck, error)
	save     func(*types.Deck, string) (string, error)
	release  func(*workspace.Workspace) error
	observe  func(State)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCanvas sets the slide canvas (default 13.333 x 7.5 in).
func WithCanvas(c types.Canvas) Option {
	return func(p *Pipeline) { p.canvas = c }
}

// WithWorkspaceRoot sets the parent directory for workspaces.
func WithWorkspaceRoot(dir string) Option {
	return func(p *Pipeline) { p.workspaceRoot = dir }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithRecorder records every conversion outcome.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// New creates a pipeline around an already detected rasterizer.
func New(r raster.Rasterizer, opts ...Option) *Pipeline {
	p := &Pipeline{
		rasterizer: r,
		canvas:     types.DefaultCanvas(),
		log:        zerolog.Nop(),
		assemble:   deck.Assemble,
		save:       deck.Save,
		release:    (*workspace.Workspace).Release,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Convert runs one conversion and returns the absolute artifact path in
// the result. Invalid parameters and a missing document fail before any
// workspace exists. Every later failure still releases the workspace
// before the originating error is returned.
func (p *Pipeline) Convert(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	res.ID = uuid.NewString()
	log := p.log.With().Str("conversion", res.ID).Logger()

	docPath := req.DocumentPath
	if abs, aerr := filepath.Abs(docPath); aerr == nil {
		docPath = abs
	}
	rec := types.Conversion{
		ID:           res.ID,
		DocumentPath: docPath,
		Backend:      p.rasterizer.Name(),
		DPI:          req.DPI,
		StartedAt:    start,
	}

	state := StateIdle
	enter := func(s State) {
		log.Debug().Str("from", string(state)).Str("to", string(s)).Msg("state")
		state = s
		if p.observe != nil {
			p.observe(s)
		}
	}

	enter(StateValidating)
	outPath, err := p.validate(req)
	if err != nil {
		enter(StateFailed)
		p.record(ctx, log, rec, start, err, nil)
		return res, err
	}
	rec.OutputPath = outPath

	log.Info().
		Str("document", req.DocumentPath).
		Str("output", outPath).
		Int("dpi", req.DPI).
		Str("backend", p.rasterizer.Name()).
		Msg("converting")

	ws, err := workspace.Acquire(p.workspaceRoot, stem(req.DocumentPath))
	if err != nil {
		enter(StateFailed)
		p.record(ctx, log, rec, start, err, nil)
		return res, err
	}
	log.Debug().Str("workspace", ws.Dir()).Msg("workspace acquired")

	// finished stays false when a stage panics.
	finished := false
	defer func() {
		if err == nil && !finished {
			err = fmt.Errorf("%w: conversion aborted", types.ErrConversion)
		}
		if err != nil {
			failedIn := state
			enter(StateFailed)
			log.Error().Err(err).Str("stage", string(failedIn)).Msg("conversion failed")
		}
		enter(StateCleanup)
		if cerr := p.release(ws); cerr != nil {
			log.Warn().Err(cerr).Msg("workspace cleanup failed")
			res.CleanupErr = cerr
		} else {
			log.Debug().Str("workspace", ws.Dir()).Msg("workspace removed")
		}
		if err == nil {
			enter(StateDone)
		}
		res.Duration = time.Since(start)
		rec.Pages = res.Pages
		p.record(ctx, log, rec, start, err, res.CleanupErr)
	}()

	enter(StateRasterize)
	pages, err := p.rasterizer.Rasterize(ctx, req.DocumentPath, ws.Dir(), req.DPI)
	if err != nil {
		return res, fmt.Errorf("rasterizing %s: %w", req.DocumentPath, err)
	}
	res.Pages = len(pages)
	log.Info().Int("pages", len(pages)).Msg("rasterized")

	if err := ctx.Err(); err != nil {
		return res, err
	}

	enter(StateAssemble)
	d, err := p.assemble(pages, p.canvas)
	if err != nil {
		return res, fmt.Errorf("assembling deck: %w", err)
	}
	log.Info().Int("slides", d.Len()).Msg("assembled")

	if err := ctx.Err(); err != nil {
		return res, err
	}

	enter(StateSave)
	path, err := p.save(d, outPath)
	if err != nil {
		return res, fmt.Errorf("saving deck: %w", err)
	}
	res.Path = path
	log.Info().Str("output", path).Msg("saved")
	finished = true
	return res, nil
}

// validate checks the request and resolves the output path.
func (p *Pipeline) validate(req Request) (string, error) {
	if req.DPI <= 0 {
		return "", fmt.Errorf("%w: dpi must be positive, got %d", types.ErrInvalidParameter, req.DPI)
	}
	if err := p.canvas.Validate(); err != nil {
		return "", err
	}

	info, err := os.Stat(req.DocumentPath)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", types.ErrDocumentNotFound, req.DocumentPath)
	}

	out := req.OutputPath
	if out == "" {
		out = DefaultOutputPath(req.DocumentPath)
	} else if err := ValidateOutputPath(out); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return "", fmt.Errorf("%w: output path %s: %v", types.ErrInvalidParameter, out, err)
	}
	return abs, nil
}

// ValidateOutputPath checks that path ends with the deck extension.
func ValidateOutputPath(path string) error {
	if !strings.EqualFold(filepath.Ext(path), types.DeckExtension) {
		return fmt.Errorf("%w: output file must end with %s: %s", types.ErrInvalidParameter, types.DeckExtension, path)
	}
	return nil
}

// DefaultOutputPath places the deck beside the document with the same base
// name.
func DefaultOutputPath(documentPath string) string {
	return filepath.Join(filepath.Dir(documentPath), stem(documentPath)+types.DeckExtension)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// record stores the outcome when a recorder is configured. Recording
// problems are logged and never change the outcome.
func (p *Pipeline) record(ctx context.Context, log zerolog.Logger, c types.Conversion, start time.Time, err, cleanupErr error) {
	if p.recorder == nil {
		return
	}
	c.Duration = time.Since(start)
	c.Status = types.ConversionDone
	if err != nil {
		c.Status = types.ConversionFailed
		c.Error = err.Error()
	}
	if cleanupErr != nil {
		c.CleanupWarning = cleanupErr.Error()
	}
	if rerr := p.recorder.Record(context.WithoutCancel(ctx), c); rerr != nil {
		log.Warn().Err(rerr).Msg("recording conversion history failed")
	}
}
