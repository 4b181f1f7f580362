package html2md

import "strings"

// Stringify folds an inline run to its plain visible text. Spaces and soft
// breaks become single spaces, hard breaks become newlines, raw markup is
// dropped.
func Stringify(inlines []Inline) string {
	var sb strings.Builder
	writeInlines(&sb, inlines)
	return sb.String()
}

func writeInlines(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch in := in.(type) {
		case *Str:
			sb.WriteString(in.Text)
		case *Space:
			sb.WriteByte(' ')
		case *SoftBreak:
			sb.WriteByte(' ')
		case *LineBreak:
			sb.WriteByte('\n')
		case *Code:
			sb.WriteString(in.Text)
		case *Emph:
			writeInlines(sb, in.Inlines)
		case *Strong:
			writeInlines(sb, in.Inlines)
		case *Superscript:
			writeInlines(sb, in.Inlines)
		case *Link:
			writeInlines(sb, in.Inlines)
		case *Image:
			writeInlines(sb, in.Inlines)
		case *Span:
			writeInlines(sb, in.Inlines)
		}
	}
}

// stringifyBlock folds one block to plain text. Container blocks contribute
// their children joined with newlines; items keep their order.
func stringifyBlock(b Block) string {
	switch b := b.(type) {
	case *Plain:
		return Stringify(b.Inlines)
	case *Para:
		return Stringify(b.Inlines)
	case *Header:
		return Stringify(b.Inlines)
	case *CodeBlock:
		return b.Text
	case *RawBlock:
		return ""
	case *Div:
		return stringifyBlocks(b.Blocks)
	case *Aside:
		return stringifyBlocks(b.Blocks)
	case *BlockQuote:
		return stringifyBlocks(b.Blocks)
	case *BulletList:
		return stringifyItems(b.Items)
	case *OrderedList:
		return stringifyItems(b.Items)
	case *Table:
		var parts []string
		for _, row := range append([]TableRow{b.Header}, b.Rows...) {
			for _, cell := range row.Cells {
				if s := stringifyBlocks(cell.Blocks); s != "" {
					parts = append(parts, s)
				}
			}
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

func stringifyBlocks(blocks []Block) string {
	var parts []string
	for _, b := range blocks {
		if s := stringifyBlock(b); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

func stringifyItems(items [][]Block) string {
	var parts []string
	for _, item := range items {
		if s := stringifyBlocks(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}
