// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace manages the uniquely named scratch directory that holds
// the intermediate page images of one conversion.
package workspace

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/pdiddy/pdf2pptx/pkg/types"
)

const (
	prefix     = "pdf2pptx_"
	maxNameLen = 40
)

// removeAll deletes a workspace tree. Tests override it to simulate
// removal failures.
var removeAll = os.RemoveAll

// Workspace is an exclusively owned scratch directory. Release it with a
// deferred call right after Acquire succeeds.
type Workspace struct {
	dir      string
	released bool
}

// Acquire creates a new workspace under root (the OS temp directory when
// root is empty). The directory name embeds a sanitized form of label and
// a random suffix, so concurrent conversions never share one.
func Acquire(root, label string) (*Workspace, error) {
	if root != "" {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("creating workspace root %s: %w", root, err)
		}
	}
	dir, err := os.MkdirTemp(root, prefix+sanitize(label)+"_")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Release removes the workspace recursively. It is safe to call more than
// once; only the first call does any work. Failures wrap types.ErrCleanup.
func (w *Workspace) Release() error {
	if w == nil || w.released {
		return nil
	}
	w.released = true
	if err := removeAll(w.dir); err != nil {
		return fmt.Errorf("%w: removing workspace %s: %v", types.ErrCleanup, w.dir, err)
	}
	return nil
}

// sanitize keeps letters, digits, '-' and '.', maps everything else to '_',
// and truncates to maxNameLen runes.
func sanitize(label string) string {
	var b strings.Builder
	n := 0
	for _, r := range label {
		if n == maxNameLen {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
		n++
	}
	if b.Len() == 0 {
		return "doc"
	}
	return b.String()
}
