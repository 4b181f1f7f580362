package html2md

import "regexp"

// noterefType marks an anchor that points at a footnote definition.
const noterefType = "noteref"

// noteLabel matches the visible text of a footnote reference.
var noteLabel = regexp.MustCompile(`^[0-9]+$`)

// rewriteNoteref replaces a superscripted note-reference link with a
// markdown footnote marker. The superscript must wrap exactly one link
// tagged data-type="noteref" whose visible text is all digits; anything
// else passes through unchanged.
func rewriteNoteref(s *Superscript) []Inline {
	if len(s.Inlines) != 1 {
		return []Inline{s}
	}
	link, ok := s.Inlines[0].(*Link)
	if !ok {
		return []Inline{s}
	}
	if v, ok := link.Get("data-type"); !ok || v != noterefType {
		return []Inline{s}
	}
	label := Stringify(link.Inlines)
	if !noteLabel.MatchString(label) {
		return []Inline{s}
	}
	return []Inline{&RawInline{Format: FormatMarkdown, Text: "[^" + label + "]"}}
}
