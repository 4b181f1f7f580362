package html2md

import (
	"regexp"
	"strings"
)

// Section is one split unit of a converted document.
type Section struct {
	// Title identifies the section. Taken from the pattern's first
	// capture group when present, otherwise the whole matching line.
	Title string

	// Content holds the section text, including the matching line.
	Content string
}

// Split cuts rendered markdown into sections at lines matching pattern.
// Text before the first match becomes an untitled preamble section.
// A nil pattern returns the whole content as a single section.
func Split(content string, pattern *regexp.Regexp) []Section {
	if pattern == nil {
		return []Section{{Content: content}}
	}

	var sections []Section
	var current strings.Builder
	var title string
	started := false

	flush := func() {
		text := current.String()
		if text == "" && !started {
			return
		}
		sections = append(sections, Section{Title: title, Content: text})
	}

	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		trimmed := strings.TrimRight(line, "\n")
		if m := pattern.FindStringSubmatch(trimmed); m != nil {
			flush()
			current.Reset()
			started = true
			if len(m) > 1 && m[1] != "" {
				title = m[1]
			} else {
				title = trimmed
			}
		}
		current.WriteString(line)
	}
	flush()

	if sections == nil {
		return []Section{{Content: content}}
	}
	return sections
}
