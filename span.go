package html2md

// unwrapSpan removes the wrapper of a span whose class list matches one of
// the configured unwrap classes, promoting its content into the parent
// inline run. Other spans are kept as they are.
func (rw *Rewriter) unwrapSpan(s *Span) []Inline {
	if len(rw.UnwrapSpans) != 0 && s.HasAnyClass(rw.UnwrapSpans...) {
		return s.Inlines
	}
	return []Inline{s}
}
