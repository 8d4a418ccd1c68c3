package jsonview

import (
	"context"
	"fmt"

	"golang.org/x/net/html"
)

// Renderer renders tabular JSON payloads as HTML tables.
// It is immutable after New and safe for concurrent use on distinct containers.
type Renderer struct {
	config   Config
	detector *Detector
}

type state struct {
	ctx      context.Context
	config   Config
	detector *Detector
	options  RenderOptions
	warnings []Warning
}

// New creates a new Renderer with the given config.
func New(config Config) (*Renderer, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Renderer{
		config:   cfg,
		detector: newDetector(cfg),
	}, nil
}

// Detector returns the cell classifier used by the renderer.
func (r *Renderer) Detector() *Detector {
	return r.detector
}

// Render replaces the children of container with one table per sheet in payload.
func (r *Renderer) Render(container *html.Node, payload []byte) (Result, error) {
	return r.RenderWithContext(context.Background(), container, payload, RenderOptions{})
}

// RenderWithContext is Render with a context passed to hooks and checked between rows.
//
// The container is always cleared first. The view is assembled detached and
// attached only when every sheet rendered, so on error the container is left
// empty rather than holding a partial table.
func (r *Renderer) RenderWithContext(ctx context.Context, container *html.Node, payload []byte, opts RenderOptions) (Result, error) {
	if container == nil {
		return Result{}, fmt.Errorf("render: container is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	clearChildren(container)

	sheets, err := Extract(payload)
	if err != nil {
		return Result{}, err
	}

	s := &state{
		ctx:      ctx,
		config:   r.config,
		detector: r.detector,
		options:  opts,
	}

	fragment := NewContainer()
	infos := make([]SheetInfo, 0, len(sheets))
	for _, sheet := range sheets {
		if sheet.Named {
			fragment.AppendChild(elementWithText(headingAtom(s.config.HeadingLevel), sheet.Name))
		}
		table, err := s.buildTable(sheet)
		if err != nil {
			return Result{}, err
		}
		fragment.AppendChild(table)

		infos = append(infos, SheetInfo{
			Name:    sheet.Name,
			Named:   sheet.Named,
			Rows:    len(sheet.Rows),
			Columns: len(sheet.Columns),
		})
	}

	moveChildren(container, fragment)

	return Result{
		Sheets:   infos,
		Warnings: s.warnings,
	}, nil
}

// RenderHTML renders payload into a fresh container and returns its markup in Result.HTML.
func (r *Renderer) RenderHTML(payload []byte) (Result, error) {
	return r.RenderHTMLWithContext(context.Background(), payload, RenderOptions{})
}

// RenderHTMLWithContext is RenderHTML with a context and per-render options.
func (r *Renderer) RenderHTMLWithContext(ctx context.Context, payload []byte, opts RenderOptions) (Result, error) {
	container := NewContainer()
	result, err := r.RenderWithContext(ctx, container, payload, opts)
	if err != nil {
		return Result{}, err
	}

	markup, err := InnerHTML(container)
	if err != nil {
		return Result{}, fmt.Errorf("failed to serialize HTML: %w", err)
	}
	if r.config.Sanitize {
		markup = SanitizeHTML(markup)
	}
	result.HTML = markup
	return result, nil
}

func (s *state) addWarning(warnType WarningType, pos CellPosition, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:    warnType,
		Sheet:   pos.Sheet,
		Row:     pos.Row,
		Column:  pos.Column,
		Message: message,
	})
}

func (s *state) checkContext() error {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Err()
}
