package html2md

import "strings"

// itemMarker prefixes each flattened list item. Ordered and bullet lists
// flatten identically; numbering is intentionally not preserved inside
// table cells.
const itemMarker = "- "

// flattenCell collapses a table cell's block sequence to exactly one Plain
// node holding a single inline run, regardless of original nesting depth.
// Cell content must be inline-flow only in the target dialect.
func flattenCell(blocks []Block) []Block {
	converted := flattenBlockSeq(blocks)
	if len(converted) == 1 {
		if _, ok := converted[0].(*Plain); ok {
			return converted
		}
	}
	return []Block{&Plain{Inlines: blocksToInlines(converted)}}
}

// flattenBlockSeq converts paragraphs to Plain nodes and folds lists,
// innermost first, leaving other block kinds for the final fold.
func flattenBlockSeq(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		switch b := b.(type) {
		case *Para:
			out = append(out, &Plain{Inlines: b.Inlines})
		case *BulletList:
			out = append(out, flattenList(b.Items))
		case *OrderedList:
			out = append(out, flattenList(b.Items))
		default:
			out = append(out, b)
		}
	}
	return out
}

// flattenList folds each item's block sequence into one inline run,
// prefixes it with the item marker, and joins successive items with a hard
// line break. An item that folds to empty still contributes its marker and
// its separator.
func flattenList(items [][]Block) *Plain {
	var run []Inline
	for i, item := range items {
		if i > 0 {
			run = append(run, &LineBreak{})
		}
		run = append(run, &Str{Text: itemMarker})
		run = append(run, blocksToInlines(flattenBlockSeq(item))...)
	}
	return &Plain{Inlines: run}
}

// blocksToInlines folds a block sequence into one inline run. Paragraph
// and Plain content is spliced directly, separated from the preceding
// block by a hard line break; any other block kind contributes its fully
// stringified text, preceded by a line break and, if the run does not
// already end in whitespace, a single space. Empty input yields an empty
// run.
func blocksToInlines(blocks []Block) []Inline {
	var run []Inline
	for i, b := range blocks {
		switch b := b.(type) {
		case *Plain:
			if i > 0 {
				run = append(run, &LineBreak{})
			}
			run = append(run, b.Inlines...)
		case *Para:
			if i > 0 {
				run = append(run, &LineBreak{})
			}
			run = append(run, b.Inlines...)
		default:
			if i > 0 {
				run = append(run, &LineBreak{})
			}
			if len(run) > 0 && !endsInWhitespace(run) {
				run = append(run, &Space{})
			}
			run = append(run, &Str{Text: stringifyBlock(b)})
		}
	}
	return run
}

func endsInWhitespace(run []Inline) bool {
	switch last := run[len(run)-1].(type) {
	case *Space, *SoftBreak, *LineBreak:
		return true
	case *Str:
		return last.Text != "" && strings.ContainsAny(last.Text[len(last.Text)-1:], " \t\n")
	}
	return false
}
