// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2pptx/pkg/types"
)

func TestAcquireRelease(t *testing.T) {
	root := t.TempDir()

	ws, err := Acquire(root, "annual report")
	require.NoError(t, err)
	assert.DirExists(t, ws.Dir())
	assert.Equal(t, root, filepath.Dir(ws.Dir()))
	assert.True(t, strings.HasPrefix(filepath.Base(ws.Dir()), "pdf2pptx_annual_report_"), "got %s", ws.Dir())

	require.NoError(t, os.MkdirAll(filepath.Join(ws.Dir(), "pages"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.Dir(), "pages", "page_001.png"), []byte("x"), 0o644))

	require.NoError(t, ws.Release())
	assert.NoDirExists(t, ws.Dir())

	// Second release is a no-op.
	assert.NoError(t, ws.Release())
}

func TestAcquire_Unique(t *testing.T) {
	root := t.TempDir()
	a, err := Acquire(root, "same")
	require.NoError(t, err)
	b, err := Acquire(root, "same")
	require.NoError(t, err)
	assert.NotEqual(t, a.Dir(), b.Dir())
}

func TestAcquire_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "root")
	ws, err := Acquire(root, "doc")
	require.NoError(t, err)
	defer ws.Release()
	assert.DirExists(t, ws.Dir())
}

func TestRelease_Failure(t *testing.T) {
	orig := removeAll
	removeAll = func(string) error { return errors.New("device busy") }
	t.Cleanup(func() { removeAll = orig })

	ws, err := Acquire(t.TempDir(), "doc")
	require.NoError(t, err)

	err = ws.Release()
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCleanup), "got %v", err)
	assert.ErrorContains(t, err, "device busy")
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report", "report"},
		{"my deck v2.1", "my_deck_v2.1"},
		{"a/b\\c*?", "a_b_c__"},
		{"", "doc"},
		{"报告", "报告"},
		{strings.Repeat("x", 60), strings.Repeat("x", maxNameLen)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize(tt.in))
		})
	}
}

func TestReleaseNil(t *testing.T) {
	var ws *Workspace
	assert.NoError(t, ws.Release())
}
