package html2md

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// goldmarkCaptions renders a caption inline run to an HTML fragment by
// serializing it to markdown and converting with goldmark. Captions are a
// single inline flow, so the paragraph wrapper goldmark emits is stripped.
type goldmarkCaptions struct {
	md goldmark.Markdown
}

func newGoldmarkCaptions() *goldmarkCaptions {
	return &goldmarkCaptions{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

// RenderFragment implements CaptionRenderer.
func (c *goldmarkCaptions) RenderFragment(inlines []Inline) (string, error) {
	source := inlinesToMarkdown(inlines)
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering caption: %w", err)
	}
	return stripParagraphWrapper(buf.String()), nil
}

// stripParagraphWrapper removes the leading <p> and trailing </p> tags from
// a one-paragraph fragment.
func stripParagraphWrapper(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	fragment = strings.TrimPrefix(fragment, "<p>")
	fragment = strings.TrimSuffix(fragment, "</p>")
	return fragment
}

// inlinesToMarkdown serializes an inline run to markdown source text.
// Only the inline constructs that survive the rewrite passes are emitted;
// raw HTML inlines pass through verbatim.
func inlinesToMarkdown(inlines []Inline) string {
	var sb strings.Builder
	writeInlineMarkdown(&sb, inlines)
	return sb.String()
}

func writeInlineMarkdown(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch in := in.(type) {
		case *Str:
			sb.WriteString(in.Text)
		case *Space:
			sb.WriteByte(' ')
		case *SoftBreak:
			sb.WriteByte('\n')
		case *LineBreak:
			sb.WriteString("\\\n")
		case *Code:
			sb.WriteByte('`')
			sb.WriteString(in.Text)
			sb.WriteByte('`')
		case *Emph:
			sb.WriteByte('*')
			writeInlineMarkdown(sb, in.Inlines)
			sb.WriteByte('*')
		case *Strong:
			sb.WriteString("**")
			writeInlineMarkdown(sb, in.Inlines)
			sb.WriteString("**")
		case *Superscript:
			writeInlineMarkdown(sb, in.Inlines)
		case *Link:
			sb.WriteByte('[')
			writeInlineMarkdown(sb, in.Inlines)
			sb.WriteString("](")
			sb.WriteString(in.Target)
			sb.WriteByte(')')
		case *Image:
			sb.WriteString("![")
			writeInlineMarkdown(sb, in.Inlines)
			sb.WriteString("](")
			sb.WriteString(in.Target)
			sb.WriteByte(')')
		case *Span:
			writeInlineMarkdown(sb, in.Inlines)
		case *RawInline:
			if isHTMLFormat(in.Format) {
				sb.WriteString(in.Text)
			}
		}
	}
}
