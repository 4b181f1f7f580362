package html2md

import (
	"fmt"
	"html"
)

// figureTemplate is the synthesized figure markup: image source, escaped
// alt text, and the caption fragment.
const figureTemplate = "<figure>\n  <img src=\"%s\" alt=\"%s\" />\n  <figcaption>%s</figcaption>\n</figure>"

// mergeFigures scans a sibling sequence once, left to right with one block
// of lookahead, and merges each strictly adjacent (image block, level-6
// header) pair into a single raw figure block. Blocks outside such a pair
// are emitted unchanged in their original order; pairs never overlap.
func (rw *Rewriter) mergeFigures(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for i := 0; i < len(blocks); {
		if img, ok := imageBlock(blocks[i]); ok && i+1 < len(blocks) {
			if h, ok := blocks[i+1].(*Header); ok && h.Level == 6 {
				out = append(out, rw.buildFigure(img, h))
				i += 2
				continue
			}
		}
		out = append(out, blocks[i])
		i++
	}
	return out
}

// imageBlock returns the image of a block whose sole inline is an image.
func imageBlock(b Block) (*Image, bool) {
	var inlines []Inline
	switch b := b.(type) {
	case *Para:
		inlines = b.Inlines
	case *Plain:
		inlines = b.Inlines
	default:
		return nil, false
	}
	if len(inlines) != 1 {
		return nil, false
	}
	img, ok := inlines[0].(*Image)
	return img, ok
}

// buildFigure synthesizes a raw figure block from an image and its caption
// header. Missing image fields degrade to empty strings; a caption render
// failure falls back to the escaped plain text of the caption inlines.
func (rw *Rewriter) buildFigure(img *Image, caption *Header) *RawBlock {
	alt := ""
	if len(img.Inlines) != 0 {
		alt = html.EscapeString(Stringify(img.Inlines))
	}
	text := rw.renderCaption(caption.Inlines)
	return &RawBlock{
		Format: FormatHTML,
		Text:   fmt.Sprintf(figureTemplate, img.Target, alt, text),
	}
}

func (rw *Rewriter) renderCaption(inlines []Inline) string {
	if rw.Captions != nil {
		if fragment, err := rw.Captions.RenderFragment(inlines); err == nil {
			return fragment
		}
	}
	return html.EscapeString(Stringify(inlines))
}
