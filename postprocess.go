package html2md

import (
	"regexp"
	"strings"
)

// DefaultMediaFolder is the media directory name assumed by the numbered
// image marker rule when none is configured.
const DefaultMediaFolder = "assets"

// Precompiled patterns for the rendered-text substitution rules.
var (
	// ^([1](#anchor)) text -> footnote definition
	footnoteDef = regexp.MustCompile(`(?m)^\^\(\[([0-9]+)\]\(#[^)]+\)\)\s*(.*)`)

	// ###### Tip/Note/Caution/Warning admonition headers
	admonitionHeader = regexp.MustCompile(`(?m)^######\s*(Tip|Note|Caution|Warning)$`)

	// Header adjustment exceptions
	exampleHeader = regexp.MustCompile(`^(#####\s*)(Example\s+[0-9]+(?:-[0-9]+)?\..*)$`)
	chapterHeader = regexp.MustCompile(`^#\s+Chapter\s+[0-9.]+.*$`)
	shiftedHeader = regexp.MustCompile(`^(#{1,5})(\s+.*)$`)

	// Chapter anchor spans left behind by per-file concatenation
	chapterAnchorSpan = regexp.MustCompile(`(?i)<span\s+id="ch[0-9]+\.html"[^>]*>\s*</span>`)

	// Index term spans, content kept
	indexTermSpan = regexp.MustCompile(`(?is)<span\s+[^>]*?data-type="indexterm"[^>]*>(.*?)</span>`)

	// <sup>[1](#anchor)</sup> text -> footnote definition
	supFootnoteDef = regexp.MustCompile(`(?m)^<sup>\[([0-9]+)\]\(#[^)]+\)</sup>\s+(.*)`)

	// <figure> blocks and their h6 captions
	htmlFigure = regexp.MustCompile(`(?is)(<figure[^>]*>)(.*?)(</figure>)`)
	h6Open     = regexp.MustCompile(`(?i)<h6([^>]*)>`)
	h6Close    = regexp.MustCompile(`(?i)</h6>`)

	// Internal anchor links, content kept
	internalLink = regexp.MustCompile(`(?i)<a\s+(?:[^>]*?\s+)?href="#[^"]*"[^>]*>(.*?)</a>`)

	// Headers inside blockquotes
	quotedHeader = regexp.MustCompile(`(?m)^(>\s*)(#{1,6})(\s+.*)$`)

	// {#ref} attribute leftovers
	referenceTag = regexp.MustCompile(`\{#[a-zA-Z0-9_]+\}`)

	smartQuotes = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", `'`, "’", `'`,
	)
)

// Postprocess applies the line-oriented substitution rules to rendered
// markdown. The rules operate on text, not on the tree, and their order
// matters: footnote fixes and admonitions run before the header shift,
// span stripping before the figure and link rules.
func Postprocess(content, mediaFolder string) string {
	if mediaFolder == "" {
		mediaFolder = DefaultMediaFolder
	}
	content = straightenQuotes(content)
	content = fixFootnoteDefinitions(content)
	content = convertAdmonitionHeaders(content)
	content = adjustHeaders(content)
	content = stripUnwantedSpans(content)
	content = fixSuperscriptFootnotes(content)
	content = normalizeHTMLFigures(content)
	content = flattenInternalLinks(content)
	content = normalizeQuotedHeaders(content)
	content = convertNumberedImageMarkers(content, mediaFolder)
	content = stripReferenceTags(content)
	return content
}

// straightenQuotes replaces smart quotes with their straight forms.
func straightenQuotes(content string) string {
	return smartQuotes.Replace(content)
}

// fixFootnoteDefinitions rewrites ^([1](#anchor)) definitions to [^1]:.
func fixFootnoteDefinitions(content string) string {
	return footnoteDef.ReplaceAllString(content, "[^${1}]: ${2}")
}

// convertAdmonitionHeaders turns H6 Tip/Note/Caution/Warning markers into
// blockquote admonition tags.
func convertAdmonitionHeaders(content string) string {
	return admonitionHeader.ReplaceAllString(content, "[!${1}]")
}

// adjustHeaders demotes H1-H5 by one level, with three exceptions: example
// captions become italic lines, chapter headings stay at H1, and the
// "Chapter Goals" heading pins to H3.
func adjustHeaders(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if m := exampleHeader.FindStringSubmatch(line); m != nil {
			out = append(out, "*"+strings.TrimSpace(m[2])+"*")
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "# Chapter Goals" {
			out = append(out, "### Chapter Goals")
			continue
		}
		if chapterHeader.MatchString(trimmed) {
			out = append(out, line)
			continue
		}
		if m := shiftedHeader.FindStringSubmatch(line); m != nil {
			out = append(out, "#"+m[1]+m[2])
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// stripUnwantedSpans removes chapter anchor spans entirely and unwraps
// index term spans, keeping their content.
func stripUnwantedSpans(content string) string {
	content = chapterAnchorSpan.ReplaceAllString(content, "")
	return indexTermSpan.ReplaceAllString(content, "${1}")
}

// fixSuperscriptFootnotes rewrites <sup>[1](#anchor)</sup> definition
// lines to [^1]:.
func fixSuperscriptFootnotes(content string) string {
	return supFootnoteDef.ReplaceAllString(content, "[^${1}]: ${2}")
}

// normalizeHTMLFigures strips attributes from opening <figure> tags and
// converts inner h6 captions to figcaption, keeping the h6's attributes.
func normalizeHTMLFigures(content string) string {
	return htmlFigure.ReplaceAllStringFunc(content, func(m string) string {
		sub := htmlFigure.FindStringSubmatch(m)
		inner := h6Open.ReplaceAllString(sub[2], "<figcaption${1}>")
		inner = h6Close.ReplaceAllString(inner, "</figcaption>")
		return "<figure>\n" + strings.TrimSpace(inner) + "\n</figure>"
	})
}

// flattenInternalLinks replaces anchor links targeting in-document
// fragments with their visible text.
func flattenInternalLinks(content string) string {
	return internalLink.ReplaceAllString(content, "${1}")
}

// normalizeQuotedHeaders pins every header inside a blockquote to H3.
func normalizeQuotedHeaders(content string) string {
	return quotedHeader.ReplaceAllString(content, "${1}###${3}")
}

// convertNumberedImageMarkers replaces list-marker images, where the alt
// text and the numeric file name agree, with "N. " text.
func convertNumberedImageMarkers(content, mediaFolder string) string {
	pattern := regexp.MustCompile(
		`(?i)<img\s+(?:[^>]*?\s+)?src="\./` + regexp.QuoteMeta(mediaFolder) +
			`/[0-9]+\.png"(?:[^>]*?\s+)?alt="([0-9]+)"[^>]*?\s*/?>\s+\n`)
	return pattern.ReplaceAllString(content, "${1}. ")
}

// stripReferenceTags removes {#ref} attribute leftovers.
func stripReferenceTags(content string) string {
	return referenceTag.ReplaceAllString(content, "")
}
