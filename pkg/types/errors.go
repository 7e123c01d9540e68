// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Conversion error taxonomy. Stages wrap these with context using
// fmt.Errorf("...: %w", err); callers match them with errors.Is.
var (
	// ErrDocumentNotFound reports a missing source document.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidParameter reports a bad DPI, output extension, or canvas.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDependencyUnavailable reports a rasterization backend that is not
	// present in the runtime environment.
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrConversion reports a rasterization failure on the source document.
	ErrConversion = errors.New("conversion failed")

	// ErrInvalidGeometry reports degenerate image or canvas dimensions.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrNoContent reports a document that produced no pages.
	ErrNoContent = errors.New("no content")

	// ErrWrite reports an artifact that could not be persisted.
	ErrWrite = errors.New("write failed")

	// ErrCleanup reports a workspace that could not be removed. It is
	// logged and recorded, never returned from a conversion.
	ErrCleanup = errors.New("cleanup failed")
)
