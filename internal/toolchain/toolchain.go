// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain detects and runs external command-line tools that the
// conversion backends depend on (e.g. Poppler's pdftoppm).
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pdiddy/pdf2pptx/pkg/types"
)

// Tool is an external binary that can be probed and run.
type Tool interface {
	// Name returns the binary name (e.g. "pdftoppm").
	Name() string

	// Available returns nil when the binary exists on PATH and answers its
	// version probe, or an error wrapping types.ErrDependencyUnavailable.
	Available() error

	// Run executes the binary with args. On failure the returned error
	// includes the tool's stderr.
	Run(ctx context.Context, args ...string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, stderr *bytes.Buffer, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, stderr *bytes.Buffer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

// tool implements Tool for one binary. Tools differ only in binary name and
// the arguments used to probe them.
type tool struct {
	bin       string
	probeArgs []string
	exec      executor
}

func (t *tool) Name() string { return t.bin }

func (t *tool) Available() error {
	if _, err := t.exec.LookPath(t.bin); err != nil {
		return fmt.Errorf("%w: %s not found on PATH", types.ErrDependencyUnavailable, t.bin)
	}
	var stderr bytes.Buffer
	if err := t.exec.Run(context.Background(), &stderr, t.bin, t.probeArgs...); err != nil {
		return fmt.Errorf("%w: %s %s: %v", types.ErrDependencyUnavailable, t.bin, strings.Join(t.probeArgs, " "), err)
	}
	return nil
}

func (t *tool) Run(ctx context.Context, args ...string) error {
	var stderr bytes.Buffer
	if err := t.exec.Run(ctx, &stderr, t.bin, args...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("running %s: %w", t.bin, err)
		}
		return fmt.Errorf("running %s: %w: %s", t.bin, err, msg)
	}
	return nil
}

const binPdftoppm = "pdftoppm"

func newPdftoppm(exec executor) *tool {
	// pdftoppm -v prints its version to stderr and exits 0.
	return &tool{bin: binPdftoppm, probeArgs: []string{"-v"}, exec: exec}
}

var defaultExec = &osExecutor{}

// Pdftoppm returns the Poppler page rasterizer tool.
func Pdftoppm() Tool {
	return newPdftoppm(defaultExec)
}
