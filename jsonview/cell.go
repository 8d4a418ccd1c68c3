package jsonview

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// renderCell turns a descriptor into its <div class="kind"> fragment.
func (s *state) renderCell(desc Descriptor, pos CellPosition) (*html.Node, error) {
	switch desc.Kind {
	case KindDate, KindNumber:
		return elementWithText(atom.Div, desc.Text, attr("class", string(desc.Kind))), nil

	case KindImage:
		return s.renderImage(desc, pos)

	case KindLink:
		return s.renderLink(desc, pos)

	case KindList:
		return renderList(desc), nil

	case KindText:
		if desc.Raw.Type == ObjectValue {
			s.addWarning(WarningObjectCell, pos, "object value rendered as JSON text")
		}
		return s.textCell(desc.Text), nil

	default:
		return nil, cellError(pos, fmt.Errorf("%w: unknown kind %q", ErrUnrenderableCell, desc.Kind))
	}
}

func (s *state) textCell(text string) *html.Node {
	return elementWithText(atom.Div, text, attr("class", s.config.TextClass))
}

func (s *state) renderImage(desc Descriptor, pos CellPosition) (*html.Node, error) {
	src, alt := desc.Src, ""

	output, handled, err := s.applyImageRenderHook(pos, ImageRenderInput{
		SourcePath: s.options.SourcePath,
		Position:   pos,
		Path:       desc.Text,
		Src:        desc.Src,
	})
	if err != nil {
		return nil, err
	}
	if handled {
		src, alt = output.Src, output.Alt
	}

	div := element(atom.Div, attr("class", string(KindImage)))
	div.AppendChild(element(atom.Img, attr("src", src), attr("alt", alt)))
	return div, nil
}

func (s *state) renderLink(desc Descriptor, pos CellPosition) (*html.Node, error) {
	href, text := desc.Href, desc.Text

	output, handled, err := s.applyLinkRenderHook(pos, LinkRenderInput{
		SourcePath: s.options.SourcePath,
		Position:   pos,
		Path:       desc.Href,
	})
	if err != nil {
		return nil, err
	}
	if handled {
		if output.Text != "" {
			text = output.Text
		}
		if output.TextOnly {
			return elementWithText(atom.Div, text, attr("class", string(KindLink))), nil
		}
		href = output.Href
	}

	div := element(atom.Div, attr("class", string(KindLink)))
	div.AppendChild(elementWithText(atom.A, text, attr("href", href)))
	return div, nil
}

func renderList(desc Descriptor) *html.Node {
	div := element(atom.Div, attr("class", string(KindList)))
	ul := element(atom.Ul)
	for _, item := range desc.Items {
		ul.AppendChild(elementWithText(atom.Li, item))
	}
	div.AppendChild(ul)
	return div
}
