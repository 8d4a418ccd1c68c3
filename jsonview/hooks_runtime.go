package jsonview

import (
	"errors"
	"fmt"
	"strings"
)

func (s *state) applyLinkRenderHook(pos CellPosition, input LinkRenderInput) (LinkRenderOutput, bool, error) {
	if s.config.LinkHook == nil {
		return LinkRenderOutput{}, false, nil
	}

	if err := s.checkContext(); err != nil {
		return LinkRenderOutput{}, false, err
	}

	output, err := s.config.LinkHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return LinkRenderOutput{}, false, cellError(pos, fmt.Errorf("unresolved link reference %q: %w", input.Path, err))
			}
			s.addWarning(
				WarningUnresolvedReference,
				pos,
				fmt.Sprintf("unresolved link reference %q; using fallback rendering", input.Path),
			)
			return LinkRenderOutput{}, false, nil
		}
		return LinkRenderOutput{}, false, cellError(pos, fmt.Errorf("link hook failed: %w", err))
	}

	if !output.Handled {
		return LinkRenderOutput{}, false, nil
	}

	if err := validateLinkRenderOutput(output); err != nil {
		return LinkRenderOutput{}, false, cellError(pos, fmt.Errorf("invalid link hook output: %w", err))
	}

	output.Href = strings.TrimSpace(output.Href)
	return output, true, nil
}

func (s *state) applyImageRenderHook(pos CellPosition, input ImageRenderInput) (ImageRenderOutput, bool, error) {
	if s.config.ImageHook == nil {
		return ImageRenderOutput{}, false, nil
	}

	if err := s.checkContext(); err != nil {
		return ImageRenderOutput{}, false, err
	}

	output, err := s.config.ImageHook(s.ctx, input)
	if err != nil {
		if errors.Is(err, ErrUnresolved) {
			if s.config.ResolutionMode == ResolutionStrict {
				return ImageRenderOutput{}, false, cellError(pos, fmt.Errorf("unresolved image reference %q: %w", input.Path, err))
			}
			s.addWarning(
				WarningUnresolvedReference,
				pos,
				fmt.Sprintf("unresolved image reference %q; using fallback rendering", input.Path),
			)
			return ImageRenderOutput{}, false, nil
		}
		return ImageRenderOutput{}, false, cellError(pos, fmt.Errorf("image hook failed: %w", err))
	}

	if !output.Handled {
		return ImageRenderOutput{}, false, nil
	}

	if err := validateImageRenderOutput(output); err != nil {
		return ImageRenderOutput{}, false, cellError(pos, fmt.Errorf("invalid image hook output: %w", err))
	}

	output.Src = strings.TrimSpace(output.Src)
	return output, true, nil
}

func validateLinkRenderOutput(output LinkRenderOutput) error {
	if output.TextOnly {
		return nil
	}
	if strings.TrimSpace(output.Href) == "" {
		return fmt.Errorf("%w: handled link render output requires non-empty href unless textOnly is true", ErrUnrenderableCell)
	}
	return nil
}

func validateImageRenderOutput(output ImageRenderOutput) error {
	if strings.TrimSpace(output.Src) == "" {
		return fmt.Errorf("%w: handled image render output requires non-empty src", ErrUnrenderableCell)
	}
	return nil
}

func cellError(pos CellPosition, err error) *CellError {
	return &CellError{Sheet: pos.Sheet, Row: pos.Row, Column: pos.Column, Err: err}
}
