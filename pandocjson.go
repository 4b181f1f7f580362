package html2md

import (
	"encoding/json"
	"fmt"
)

// apiVersion is the pandoc AST protocol version written into encoded
// documents.
var apiVersion = []int{1, 23, 1}

type jsonNode struct {
	T string          `json:"t"`
	C json.RawMessage `json:"c"`
}

type jsonDoc struct {
	Version []int             `json:"pandoc-api-version"`
	Meta    json.RawMessage   `json:"meta"`
	Blocks  []json.RawMessage `json:"blocks"`
}

// DecodeDocument decodes a pandoc JSON document into a block sequence.
// Node kinds the tree cannot represent are a structural error: the caller
// gets no partial tree.
func DecodeDocument(data []byte) ([]Block, error) {
	var doc jsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	blocks, err := decodeBlocks(doc.Blocks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return blocks, nil
}

// EncodeDocument encodes a block sequence as a pandoc JSON document with
// empty metadata.
func EncodeDocument(blocks []Block) ([]byte, error) {
	encoded, err := encodeBlocks(blocks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	data, err := json.Marshal(map[string]any{
		"pandoc-api-version": apiVersion,
		"meta":               map[string]any{},
		"blocks":             encoded,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

// ----- decoding -----

func decodeBlocks(raws []json.RawMessage) ([]Block, error) {
	blocks := make([]Block, 0, len(raws))
	for _, raw := range raws {
		b, err := decodeBlock(raw)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func decodeBlock(raw json.RawMessage) (Block, error) {
	var node jsonNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	switch node.T {
	case "Plain":
		inlines, err := decodeInlineList(node.C)
		if err != nil {
			return nil, err
		}
		return &Plain{Inlines: inlines}, nil
	case "Para":
		inlines, err := decodeInlineList(node.C)
		if err != nil {
			return nil, err
		}
		return &Para{Inlines: inlines}, nil
	case "Header":
		var level int
		var attrRaw, inlinesRaw json.RawMessage
		if err := decodeTuple(node.C, &level, &attrRaw, &inlinesRaw); err != nil {
			return nil, err
		}
		attr, err := decodeAttr(attrRaw)
		if err != nil {
			return nil, err
		}
		inlines, err := decodeInlineList(inlinesRaw)
		if err != nil {
			return nil, err
		}
		return &Header{Attr: attr, Level: level, Inlines: inlines}, nil
	case "CodeBlock":
		var attrRaw json.RawMessage
		var text string
		if err := decodeTuple(node.C, &attrRaw, &text); err != nil {
			return nil, err
		}
		attr, err := decodeAttr(attrRaw)
		if err != nil {
			return nil, err
		}
		return &CodeBlock{Attr: attr, Text: text}, nil
	case "RawBlock":
		var format, text string
		if err := decodeTuple(node.C, &format, &text); err != nil {
			return nil, err
		}
		return &RawBlock{Format: format, Text: text}, nil
	case "Div":
		var attrRaw, blocksRaw json.RawMessage
		if err := decodeTuple(node.C, &attrRaw, &blocksRaw); err != nil {
			return nil, err
		}
		attr, err := decodeAttr(attrRaw)
		if err != nil {
			return nil, err
		}
		blocks, err := decodeBlockList(blocksRaw)
		if err != nil {
			return nil, err
		}
		return &Div{Attr: attr, Blocks: blocks}, nil
	case "BlockQuote":
		blocks, err := decodeBlockList(node.C)
		if err != nil {
			return nil, err
		}
		return &BlockQuote{Blocks: blocks}, nil
	case "BulletList":
		items, err := decodeItems(node.C)
		if err != nil {
			return nil, err
		}
		return &BulletList{Items: items}, nil
	case "OrderedList":
		var attrsRaw, itemsRaw json.RawMessage
		if err := decodeTuple(node.C, &attrsRaw, &itemsRaw); err != nil {
			return nil, err
		}
		var start int
		var style, delim json.RawMessage
		if err := decodeTuple(attrsRaw, &start, &style, &delim); err != nil {
			return nil, err
		}
		items, err := decodeItems(itemsRaw)
		if err != nil {
			return nil, err
		}
		return &OrderedList{Start: start, Items: items}, nil
	case "HorizontalRule":
		return &HorizontalRule{}, nil
	case "Table":
		return decodeTable(node.C)
	case "Figure":
		return decodeFigure(node.C)
	default:
		return nil, fmt.Errorf("unsupported block %q", node.T)
	}
}

func decodeInlineList(raw json.RawMessage) ([]Inline, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, err
	}
	inlines := make([]Inline, 0, len(raws))
	for _, r := range raws {
		in, err := decodeInline(r)
		if err != nil {
			return nil, err
		}
		inlines = append(inlines, in)
	}
	return inlines, nil
}

func decodeInline(raw json.RawMessage) (Inline, error) {
	var node jsonNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	switch node.T {
	case "Str":
		var text string
		if err := json.Unmarshal(node.C, &text); err != nil {
			return nil, err
		}
		return &Str{Text: text}, nil
	case "Space":
		return &Space{}, nil
	case "SoftBreak":
		return &SoftBreak{}, nil
	case "LineBreak":
		return &LineBreak{}, nil
	case "Emph":
		inlines, err := decodeInlineList(node.C)
		if err != nil {
			return nil, err
		}
		return &Emph{Inlines: inlines}, nil
	case "Strong":
		inlines, err := decodeInlineList(node.C)
		if err != nil {
			return nil, err
		}
		return &Strong{Inlines: inlines}, nil
	case "Superscript":
		inlines, err := decodeInlineList(node.C)
		if err != nil {
			return nil, err
		}
		return &Superscript{Inlines: inlines}, nil
	case "Code":
		var attrRaw json.RawMessage
		var text string
		if err := decodeTuple(node.C, &attrRaw, &text); err != nil {
			return nil, err
		}
		attr, err := decodeAttr(attrRaw)
		if err != nil {
			return nil, err
		}
		return &Code{Attr: attr, Text: text}, nil
	case "Link", "Image":
		var attrRaw, inlinesRaw, targetRaw json.RawMessage
		if err := decodeTuple(node.C, &attrRaw, &inlinesRaw, &targetRaw); err != nil {
			return nil, err
		}
		attr, err := decodeAttr(attrRaw)
		if err != nil {
			return nil, err
		}
		inlines, err := decodeInlineList(inlinesRaw)
		if err != nil {
			return nil, err
		}
		var url, title string
		if err := decodeTuple(targetRaw, &url, &title); err != nil {
			return nil, err
		}
		if node.T == "Link" {
			return &Link{Attr: attr, Inlines: inlines, Target: url, Title: title}, nil
		}
		return &Image{Attr: attr, Inlines: inlines, Target: url, Title: title}, nil
	case "Span":
		var attrRaw, inlinesRaw json.RawMessage
		if err := decodeTuple(node.C, &attrRaw, &inlinesRaw); err != nil {
			return nil, err
		}
		attr, err := decodeAttr(attrRaw)
		if err != nil {
			return nil, err
		}
		inlines, err := decodeInlineList(inlinesRaw)
		if err != nil {
			return nil, err
		}
		return &Span{Attr: attr, Inlines: inlines}, nil
	case "RawInline":
		var format, text string
		if err := decodeTuple(node.C, &format, &text); err != nil {
			return nil, err
		}
		return &RawInline{Format: format, Text: text}, nil
	default:
		return nil, fmt.Errorf("unsupported inline %q", node.T)
	}
}

func decodeBlockList(raw json.RawMessage) ([]Block, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, err
	}
	return decodeBlocks(raws)
}

func decodeItems(raw json.RawMessage) ([][]Block, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, err
	}
	items := make([][]Block, 0, len(raws))
	for _, r := range raws {
		item, err := decodeBlockList(r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// decodeAttr decodes the [identifier, [classes], [[key, value]...]] triple.
func decodeAttr(raw json.RawMessage) (Attr, error) {
	var id string
	var classes []string
	var pairs [][2]string
	if err := decodeTuple(raw, &id, &classes, &pairs); err != nil {
		return Attr{}, err
	}
	attr := Attr{Identifier: id, Classes: classes}
	for _, kv := range pairs {
		attr.KeyVals = append(attr.KeyVals, KeyVal{Key: kv[0], Value: kv[1]})
	}
	return attr, nil
}

// decodeTuple unmarshals a fixed-length heterogeneous JSON array into the
// given destinations.
func decodeTuple(raw json.RawMessage, dst ...any) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return err
	}
	if len(raws) != len(dst) {
		return fmt.Errorf("expected %d-tuple, got %d elements", len(dst), len(raws))
	}
	for i, r := range raws {
		if err := json.Unmarshal(r, dst[i]); err != nil {
			return err
		}
	}
	return nil
}

// decodeTable maps pandoc's table (attr, caption, colspecs, head, bodies,
// foot) onto the simplified header-plus-rows model. The first head row
// becomes the header; remaining head rows, all body rows, and foot rows
// become body rows in order.
func decodeTable(raw json.RawMessage) (Block, error) {
	var attrRaw, captionRaw, specsRaw, headRaw, bodiesRaw, footRaw json.RawMessage
	if err := decodeTuple(raw, &attrRaw, &captionRaw, &specsRaw, &headRaw, &bodiesRaw, &footRaw); err != nil {
		return nil, err
	}
	attr, err := decodeAttr(attrRaw)
	if err != nil {
		return nil, err
	}

	var specs []json.RawMessage
	if err := json.Unmarshal(specsRaw, &specs); err != nil {
		return nil, err
	}
	aligns := make([]Alignment, 0, len(specs))
	for _, s := range specs {
		var alignNode jsonNode
		var widthRaw json.RawMessage
		if err := decodeTuple(s, &alignNode, &widthRaw); err != nil {
			return nil, err
		}
		aligns = append(aligns, Alignment(alignNode.T))
	}

	headRows, err := decodeHeadFoot(headRaw)
	if err != nil {
		return nil, err
	}
	footRows, err := decodeHeadFoot(footRaw)
	if err != nil {
		return nil, err
	}

	var bodies []json.RawMessage
	if err := json.Unmarshal(bodiesRaw, &bodies); err != nil {
		return nil, err
	}
	var bodyRows []TableRow
	for _, b := range bodies {
		var battrRaw json.RawMessage
		var rowHead int
		var intermediateRaw, rowsRaw json.RawMessage
		if err := decodeTuple(b, &battrRaw, &rowHead, &intermediateRaw, &rowsRaw); err != nil {
			return nil, err
		}
		for _, rowsPart := range []json.RawMessage{intermediateRaw, rowsRaw} {
			rows, err := decodeRows(rowsPart)
			if err != nil {
				return nil, err
			}
			bodyRows = append(bodyRows, rows...)
		}
	}

	t := &Table{Attr: attr, Aligns: aligns}
	if len(headRows) > 0 {
		t.Header = headRows[0]
		bodyRows = append(headRows[1:], bodyRows...)
	}
	t.Rows = append(bodyRows, footRows...)
	return t, nil
}

func decodeHeadFoot(raw json.RawMessage) ([]TableRow, error) {
	var attrRaw, rowsRaw json.RawMessage
	if err := decodeTuple(raw, &attrRaw, &rowsRaw); err != nil {
		return nil, err
	}
	return decodeRows(rowsRaw)
}

func decodeRows(raw json.RawMessage) ([]TableRow, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, err
	}
	rows := make([]TableRow, 0, len(raws))
	for _, r := range raws {
		var attrRaw, cellsRaw json.RawMessage
		if err := decodeTuple(r, &attrRaw, &cellsRaw); err != nil {
			return nil, err
		}
		var cellRaws []json.RawMessage
		if err := json.Unmarshal(cellsRaw, &cellRaws); err != nil {
			return nil, err
		}
		row := TableRow{Cells: make([]*TableCell, 0, len(cellRaws))}
		for _, c := range cellRaws {
			var cattrRaw, alignRaw json.RawMessage
			var rowSpan, colSpan int
			var blocksRaw json.RawMessage
			if err := decodeTuple(c, &cattrRaw, &alignRaw, &rowSpan, &colSpan, &blocksRaw); err != nil {
				return nil, err
			}
			blocks, err := decodeBlockList(blocksRaw)
			if err != nil {
				return nil, err
			}
			row.Cells = append(row.Cells, &TableCell{Blocks: blocks})
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// decodeFigure lowers a pandoc figure to a plain container: its content
// blocks followed by the caption paragraphs demoted to level-6 headers,
// which is the adjacency the figure merge pass consumes.
func decodeFigure(raw json.RawMessage) (Block, error) {
	var attrRaw, captionRaw, blocksRaw json.RawMessage
	if err := decodeTuple(raw, &attrRaw, &captionRaw, &blocksRaw); err != nil {
		return nil, err
	}
	attr, err := decodeAttr(attrRaw)
	if err != nil {
		return nil, err
	}
	blocks, err := decodeBlockList(blocksRaw)
	if err != nil {
		return nil, err
	}
	var shortRaw, longRaw json.RawMessage
	if err := decodeTuple(captionRaw, &shortRaw, &longRaw); err != nil {
		return nil, err
	}
	captionBlocks, err := decodeBlockList(longRaw)
	if err != nil {
		return nil, err
	}
	for _, cb := range captionBlocks {
		switch cb := cb.(type) {
		case *Para:
			blocks = append(blocks, &Header{Level: 6, Inlines: cb.Inlines})
		case *Plain:
			blocks = append(blocks, &Header{Level: 6, Inlines: cb.Inlines})
		default:
			blocks = append(blocks, cb)
		}
	}
	return &Div{Attr: attr, Blocks: blocks}, nil
}

// ----- encoding -----

func encodeBlocks(blocks []Block) ([]any, error) {
	out := make([]any, 0, len(blocks))
	for _, b := range blocks {
		e, err := encodeBlock(b)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func tagged(t string, c any) map[string]any {
	if c == nil {
		return map[string]any{"t": t}
	}
	return map[string]any{"t": t, "c": c}
}

func encodeAttr(a Attr) []any {
	classes := make([]any, 0, len(a.Classes))
	for _, c := range a.Classes {
		classes = append(classes, c)
	}
	pairs := make([]any, 0, len(a.KeyVals))
	for _, kv := range a.KeyVals {
		pairs = append(pairs, []any{kv.Key, kv.Value})
	}
	return []any{a.Identifier, classes, pairs}
}

func encodeBlock(b Block) (any, error) {
	switch b := b.(type) {
	case *Plain:
		inlines, err := encodeInlines(b.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged("Plain", inlines), nil
	case *Para:
		inlines, err := encodeInlines(b.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged("Para", inlines), nil
	case *Header:
		inlines, err := encodeInlines(b.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged("Header", []any{b.Level, encodeAttr(b.Attr), inlines}), nil
	case *CodeBlock:
		return tagged("CodeBlock", []any{encodeAttr(b.Attr), b.Text}), nil
	case *RawBlock:
		return tagged("RawBlock", []any{b.Format, b.Text}), nil
	case *Div:
		blocks, err := encodeBlocks(b.Blocks)
		if err != nil {
			return nil, err
		}
		return tagged("Div", []any{encodeAttr(b.Attr), blocks}), nil
	case *Aside:
		// Asides are folded away by the rewrite; a survivor encodes as a
		// plain container.
		blocks, err := encodeBlocks(b.Blocks)
		if err != nil {
			return nil, err
		}
		return tagged("Div", []any{encodeAttr(Attr{}), blocks}), nil
	case *BlockQuote:
		blocks, err := encodeBlocks(b.Blocks)
		if err != nil {
			return nil, err
		}
		return tagged("BlockQuote", blocks), nil
	case *BulletList:
		items, err := encodeItems(b.Items)
		if err != nil {
			return nil, err
		}
		return tagged("BulletList", items), nil
	case *OrderedList:
		items, err := encodeItems(b.Items)
		if err != nil {
			return nil, err
		}
		start := b.Start
		if start == 0 {
			start = 1
		}
		attrs := []any{start, tagged("Decimal", nil), tagged("Period", nil)}
		return tagged("OrderedList", []any{attrs, items}), nil
	case *HorizontalRule:
		return tagged("HorizontalRule", nil), nil
	case *Table:
		return encodeTable(b)
	default:
		return nil, fmt.Errorf("unsupported block %T", b)
	}
}

func encodeItems(items [][]Block) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		blocks, err := encodeBlocks(item)
		if err != nil {
			return nil, err
		}
		out = append(out, blocks)
	}
	return out, nil
}

func encodeInlines(inlines []Inline) ([]any, error) {
	out := make([]any, 0, len(inlines))
	for _, in := range inlines {
		e, err := encodeInline(in)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func encodeInline(in Inline) (any, error) {
	switch in := in.(type) {
	case *Str:
		return tagged("Str", in.Text), nil
	case *Space:
		return tagged("Space", nil), nil
	case *SoftBreak:
		return tagged("SoftBreak", nil), nil
	case *LineBreak:
		return tagged("LineBreak", nil), nil
	case *Emph:
		inlines, err := encodeInlines(in.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged("Emph", inlines), nil
	case *Strong:
		inlines, err := encodeInlines(in.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged("Strong", inlines), nil
	case *Superscript:
		inlines, err := encodeInlines(in.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged("Superscript", inlines), nil
	case *Code:
		return tagged("Code", []any{encodeAttr(in.Attr), in.Text}), nil
	case *Link:
		inlines, err := encodeInlines(in.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged("Link", []any{encodeAttr(in.Attr), inlines, []any{in.Target, in.Title}}), nil
	case *Image:
		inlines, err := encodeInlines(in.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged("Image", []any{encodeAttr(in.Attr), inlines, []any{in.Target, in.Title}}), nil
	case *Span:
		inlines, err := encodeInlines(in.Inlines)
		if err != nil {
			return nil, err
		}
		return tagged("Span", []any{encodeAttr(in.Attr), inlines}), nil
	case *RawInline:
		return tagged("RawInline", []any{in.Format, in.Text}), nil
	default:
		return nil, fmt.Errorf("unsupported inline %T", in)
	}
}

// encodeTable expands the simplified model back into pandoc's table shape:
// one head with the header row, a single body holding all rows, an empty
// foot, and default column widths.
func encodeTable(t *Table) (any, error) {
	cols := len(t.Aligns)
	if n := len(t.Header.Cells); n > cols {
		cols = n
	}
	for _, row := range t.Rows {
		if n := len(row.Cells); n > cols {
			cols = n
		}
	}
	specs := make([]any, 0, cols)
	for i := 0; i < cols; i++ {
		align := AlignDefault
		if i < len(t.Aligns) {
			align = t.Aligns[i]
		}
		specs = append(specs, []any{tagged(string(align), nil), tagged("ColWidthDefault", nil)})
	}

	emptyAttr := encodeAttr(Attr{})
	headRows := []any{}
	if len(t.Header.Cells) > 0 {
		row, err := encodeRow(t.Header)
		if err != nil {
			return nil, err
		}
		headRows = append(headRows, row)
	}
	bodyRows := make([]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		row, err := encodeRow(r)
		if err != nil {
			return nil, err
		}
		bodyRows = append(bodyRows, row)
	}

	caption := []any{nil, []any{}}
	head := []any{emptyAttr, headRows}
	body := []any{emptyAttr, 0, []any{}, bodyRows}
	foot := []any{emptyAttr, []any{}}
	return tagged("Table", []any{encodeAttr(t.Attr), caption, specs, head, []any{body}, foot}), nil
}

func encodeRow(row TableRow) (any, error) {
	cells := make([]any, 0, len(row.Cells))
	for _, cell := range row.Cells {
		blocks, err := encodeBlocks(cell.Blocks)
		if err != nil {
			return nil, err
		}
		cells = append(cells, []any{encodeAttr(Attr{}), tagged(string(AlignDefault), nil), 1, 1, blocks})
	}
	return []any{encodeAttr(Attr{}), cells}, nil
}
