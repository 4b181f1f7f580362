package html2md

import (
	"context"
	"fmt"
	"strings"
)

// classifyRawBlock disposes of a raw hypertext block. Figures and tables
// are kept verbatim (the tree cannot represent them losslessly), asides are
// reparsed into structured blocks and rewritten in place, and everything
// else is formatting debris and is discarded. Raw blocks in other formats
// pass through unchanged.
func (rw *Rewriter) classifyRawBlock(ctx context.Context, b *RawBlock, depth int) ([]Block, error) {
	if !isHTMLFormat(b.Format) {
		return []Block{b}, nil
	}
	text := strings.TrimLeft(b.Text, " \t\r\n")
	switch {
	case hasOpeningTag(text, "figure"), hasOpeningTag(text, "table"):
		return []Block{b}, nil
	case hasOpeningTag(text, "aside"):
		if depth >= maxReparseDepth {
			return nil, fmt.Errorf("%w: aside nesting exceeds depth %d", ErrReparse, maxReparseDepth)
		}
		if rw.Parser == nil {
			return nil, fmt.Errorf("%w: %v", ErrReparse, ErrNoParser)
		}
		parsed, err := rw.Parser.ParseFragment(ctx, b.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReparse, err)
		}
		// Reparsed blocks go back through the pipeline so the container
		// and aside passes see structured nodes instead of raw text.
		return rw.rewriteBlocks(ctx, parsed, depth+1)
	default:
		return nil, nil
	}
}

func isHTMLFormat(format string) bool {
	switch strings.ToLower(format) {
	case "html", "html4", "html5":
		return true
	}
	return false
}

// hasOpeningTag reports whether text starts with an opening tag of the
// given name, case-insensitively. The name must be followed by a tag
// delimiter or end of text, so "<tablefoot" does not count as "<table"
// but a truncated "<table" does.
func hasOpeningTag(text, name string) bool {
	if len(text) < len(name)+1 || text[0] != '<' {
		return false
	}
	if !strings.EqualFold(text[1:1+len(name)], name) {
		return false
	}
	rest := text[1+len(name):]
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ' ', '\t', '\r', '\n', '>', '/':
		return true
	}
	return false
}
