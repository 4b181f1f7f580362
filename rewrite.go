package html2md

import (
	"context"
)

// maxReparseDepth bounds recursion through the raw-markup reparse step so a
// parser that echoes its input back cannot loop forever.
const maxReparseDepth = 4

// FragmentParser re-parses an isolated raw-markup fragment into a block
// sequence. Implementations must be pure: same text in, same tree out, no
// observable I/O besides the parse itself.
type FragmentParser interface {
	ParseFragment(ctx context.Context, markup string) ([]Block, error)
}

// CaptionRenderer renders an inline run to a raw-markup fragment for use
// inside a synthesized figure.
type CaptionRenderer interface {
	RenderFragment(inlines []Inline) (string, error)
}

// Rewriter applies the normalization passes to a document tree. The zero
// value is usable: without a Parser, raw aside fragments are a rewrite
// error; without a Captions renderer, figure captions fall back to escaped
// plain text.
type Rewriter struct {
	// Parser reparses raw aside markup into structured blocks.
	Parser FragmentParser
	// Captions renders figure captions to their markup fragment form.
	Captions CaptionRenderer
	// UnwrapSpans lists span classes whose wrappers are removed, promoting
	// their content into the parent inline run.
	UnwrapSpans []string
}

// Document rewrites a top-level block sequence. The input tree is not
// modified; replaced nodes are freshly constructed.
func (rw *Rewriter) Document(ctx context.Context, blocks []Block) ([]Block, error) {
	return rw.rewriteBlocks(ctx, blocks, 0)
}

// rewriteBlocks applies the per-node passes to every block in the sequence,
// splicing each block's replacement slice into the output, then runs the
// figure merge once over the resulting sibling sequence.
func (rw *Rewriter) rewriteBlocks(ctx context.Context, blocks []Block, depth int) ([]Block, error) {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		repl, err := rw.rewriteBlock(ctx, b, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, repl...)
	}
	return rw.mergeFigures(out), nil
}

// rewriteBlock maps one block to its replacement sequence: empty for
// discard, multiple for unwrap, one for ordinary replacement.
func (rw *Rewriter) rewriteBlock(ctx context.Context, b Block, depth int) ([]Block, error) {
	switch b := b.(type) {
	case *RawBlock:
		return rw.classifyRawBlock(ctx, b, depth)
	case *Div:
		children, err := rw.rewriteBlocks(ctx, b.Blocks, depth)
		if err != nil {
			return nil, err
		}
		return normalizeContainer(&b.Attr, children), nil
	case *Aside:
		children, err := rw.rewriteBlocks(ctx, b.Blocks, depth)
		if err != nil {
			return nil, err
		}
		return []Block{&BlockQuote{Blocks: children}}, nil
	case *BlockQuote:
		children, err := rw.rewriteBlocks(ctx, b.Blocks, depth)
		if err != nil {
			return nil, err
		}
		return []Block{&BlockQuote{Blocks: children}}, nil
	case *CodeBlock:
		return normalizeCodeLanguage(b), nil
	case *Para:
		return []Block{&Para{Inlines: rw.rewriteInlines(b.Inlines)}}, nil
	case *Plain:
		return []Block{&Plain{Inlines: rw.rewriteInlines(b.Inlines)}}, nil
	case *Header:
		return []Block{&Header{Attr: b.Attr, Level: b.Level, Inlines: rw.rewriteInlines(b.Inlines)}}, nil
	case *BulletList:
		items, err := rw.rewriteItems(ctx, b.Items, depth)
		if err != nil {
			return nil, err
		}
		return []Block{&BulletList{Items: items}}, nil
	case *OrderedList:
		items, err := rw.rewriteItems(ctx, b.Items, depth)
		if err != nil {
			return nil, err
		}
		return []Block{&OrderedList{Start: b.Start, Items: items}}, nil
	case *Table:
		return rw.rewriteTable(ctx, b, depth)
	default:
		return []Block{b}, nil
	}
}

func (rw *Rewriter) rewriteItems(ctx context.Context, items [][]Block, depth int) ([][]Block, error) {
	out := make([][]Block, len(items))
	for i, item := range items {
		repl, err := rw.rewriteBlocks(ctx, item, depth)
		if err != nil {
			return nil, err
		}
		out[i] = repl
	}
	return out, nil
}

// rewriteTable rewrites every cell's content and then collapses it to a
// single flattened inline run.
func (rw *Rewriter) rewriteTable(ctx context.Context, t *Table, depth int) ([]Block, error) {
	header, err := rw.rewriteRow(ctx, t.Header, depth)
	if err != nil {
		return nil, err
	}
	rows := make([]TableRow, len(t.Rows))
	for i, row := range t.Rows {
		rows[i], err = rw.rewriteRow(ctx, row, depth)
		if err != nil {
			return nil, err
		}
	}
	return []Block{&Table{Attr: t.Attr, Aligns: t.Aligns, Header: header, Rows: rows}}, nil
}

func (rw *Rewriter) rewriteRow(ctx context.Context, row TableRow, depth int) (TableRow, error) {
	cells := make([]*TableCell, len(row.Cells))
	for i, cell := range row.Cells {
		blocks, err := rw.rewriteBlocks(ctx, cell.Blocks, depth)
		if err != nil {
			return TableRow{}, err
		}
		cells[i] = &TableCell{Blocks: flattenCell(blocks)}
	}
	return TableRow{Cells: cells}, nil
}

// rewriteInlines applies the inline passes, splicing replacement slices.
func (rw *Rewriter) rewriteInlines(inlines []Inline) []Inline {
	out := make([]Inline, 0, len(inlines))
	for _, in := range inlines {
		out = append(out, rw.rewriteInline(in)...)
	}
	return out
}

func (rw *Rewriter) rewriteInline(in Inline) []Inline {
	switch in := in.(type) {
	case *Superscript:
		return rewriteNoteref(&Superscript{Inlines: rw.rewriteInlines(in.Inlines)})
	case *Span:
		return rw.unwrapSpan(&Span{Attr: in.Attr, Inlines: rw.rewriteInlines(in.Inlines)})
	case *Emph:
		return []Inline{&Emph{Inlines: rw.rewriteInlines(in.Inlines)}}
	case *Strong:
		return []Inline{&Strong{Inlines: rw.rewriteInlines(in.Inlines)}}
	case *Link:
		return []Inline{&Link{Attr: in.Attr, Inlines: rw.rewriteInlines(in.Inlines), Target: in.Target, Title: in.Title}}
	case *Image:
		return []Inline{&Image{Attr: in.Attr, Inlines: rw.rewriteInlines(in.Inlines), Target: in.Target, Title: in.Title}}
	default:
		return []Inline{in}
	}
}
