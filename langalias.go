package html2md

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// canonicalLanguage resolves a language name or alias through the chroma
// lexer registry, lowercased ("py" -> "python", "Golang" -> "go").
// Unrecognized names are returned as given.
func canonicalLanguage(name string) string {
	lexer := lexers.Get(name)
	if lexer == nil {
		return name
	}
	return strings.ToLower(lexer.Config().Name)
}

// canonicalizeLanguages rewrites the language tag (first class entry) of
// every code block in the tree to its canonical chroma name. Applied after
// the normalization passes when language aliasing is enabled.
func canonicalizeLanguages(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = canonicalizeBlock(b)
	}
	return out
}

func canonicalizeBlock(b Block) Block {
	switch b := b.(type) {
	case *CodeBlock:
		if len(b.Classes) == 0 {
			return b
		}
		canonical := canonicalLanguage(b.Classes[0])
		if canonical == b.Classes[0] {
			return b
		}
		attr := b.Attr
		attr.Classes = append([]string{canonical}, b.Classes[1:]...)
		return &CodeBlock{Attr: attr, Text: b.Text}
	case *Div:
		return &Div{Attr: b.Attr, Blocks: canonicalizeLanguages(b.Blocks)}
	case *Aside:
		return &Aside{Blocks: canonicalizeLanguages(b.Blocks)}
	case *BlockQuote:
		return &BlockQuote{Blocks: canonicalizeLanguages(b.Blocks)}
	case *BulletList:
		return &BulletList{Items: canonicalizeItems(b.Items)}
	case *OrderedList:
		return &OrderedList{Start: b.Start, Items: canonicalizeItems(b.Items)}
	case *Table:
		t := &Table{Attr: b.Attr, Aligns: b.Aligns, Header: canonicalizeRow(b.Header)}
		t.Rows = make([]TableRow, len(b.Rows))
		for i, row := range b.Rows {
			t.Rows[i] = canonicalizeRow(row)
		}
		return t
	default:
		return b
	}
}

func canonicalizeItems(items [][]Block) [][]Block {
	out := make([][]Block, len(items))
	for i, item := range items {
		out[i] = canonicalizeLanguages(item)
	}
	return out
}

func canonicalizeRow(row TableRow) TableRow {
	cells := make([]*TableCell, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = &TableCell{Blocks: canonicalizeLanguages(cell.Blocks)}
	}
	return TableRow{Cells: cells}
}
