package jsonview

import (
	"context"
	"errors"
)

// ErrUnresolved indicates that a link or image reference could not be resolved by a hook.
var ErrUnresolved = errors.New("unresolved link or image reference")

// ResolutionMode controls how unresolved hook results are handled.
type ResolutionMode string

const (
	// ResolutionBestEffort keeps the built-in rendering and records a warning.
	ResolutionBestEffort ResolutionMode = "best_effort"
	// ResolutionStrict fails the render when a hook returns ErrUnresolved.
	ResolutionStrict ResolutionMode = "strict"
)

// RenderOptions carries optional per-render context.
type RenderOptions struct {
	SourcePath string
}

// CellPosition locates a cell being rendered.
type CellPosition struct {
	Sheet  string
	Row    int
	Column string
}

// LinkRenderHook can rewrite link cells during rendering.
type LinkRenderHook func(ctx context.Context, in LinkRenderInput) (LinkRenderOutput, error)

// ImageRenderHook can rewrite image cells during rendering.
type ImageRenderHook func(ctx context.Context, in ImageRenderInput) (ImageRenderOutput, error)

// LinkRenderInput describes a link cell being rendered.
type LinkRenderInput struct {
	SourcePath string
	Position   CellPosition
	Path       string // the site-relative path as found in the payload
}

// LinkRenderOutput contains hook-provided link rendering data.
type LinkRenderOutput struct {
	Href     string
	Text     string // anchor text; defaults to the original path
	TextOnly bool   // render the text without an anchor
	Handled  bool
}

// ImageRenderInput describes an image cell being rendered.
type ImageRenderInput struct {
	SourcePath string
	Position   CellPosition
	Path       string // media path as found in the payload
	Src        string // built-in transcoding URL
}

// ImageRenderOutput contains hook-provided image rendering data.
type ImageRenderOutput struct {
	Src     string
	Alt     string
	Handled bool
}
