package html2md

// Raw markup format tags.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// KeyVal is a single attribute key-value pair.
type KeyVal struct {
	Key   string
	Value string
}

// Attr holds element attributes: an identifier, an ordered class list,
// and key-value pairs with unique keys.
type Attr struct {
	Identifier string
	Classes    []string
	KeyVals    []KeyVal
}

// HasClass returns true if the class list contains c.
func (a *Attr) HasClass(c string) bool {
	for _, cl := range a.Classes {
		if cl == c {
			return true
		}
	}
	return false
}

// HasAnyClass returns true if the class list contains any of the given classes.
func (a *Attr) HasAnyClass(classes ...string) bool {
	for _, c := range classes {
		if a.HasClass(c) {
			return true
		}
	}
	return false
}

// Get returns the value for key, and whether the key is present.
func (a *Attr) Get(key string) (string, bool) {
	for _, kv := range a.KeyVals {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Without returns a copy of the attributes with the given key removed.
// The receiver is not modified.
func (a Attr) Without(key string) Attr {
	kvs := make([]KeyVal, 0, len(a.KeyVals))
	for _, kv := range a.KeyVals {
		if kv.Key != key {
			kvs = append(kvs, kv)
		}
	}
	a.KeyVals = kvs
	return a
}

// IsEmpty reports whether the attributes carry no information.
func (a *Attr) IsEmpty() bool {
	return a.Identifier == "" && len(a.Classes) == 0 && len(a.KeyVals) == 0
}

// Block is a structural document node occupying vertical space.
type Block interface {
	block()
}

// Inline is a node occupying horizontal flow within a block.
type Inline interface {
	inline()
}

// Plain is an inline run that is not a paragraph.
type Plain struct {
	Inlines []Inline
}

// Para is a paragraph.
type Para struct {
	Inlines []Inline
}

// Header is a section heading with level 1-6.
type Header struct {
	Attr
	Level   int
	Inlines []Inline
}

// CodeBlock is a literal code block.
type CodeBlock struct {
	Attr
	Text string
}

// RawBlock is verbatim markup in the named format.
type RawBlock struct {
	Format string
	Text   string
}

// Div is a generic block container with attributes.
type Div struct {
	Attr
	Blocks []Block
}

// Aside is supplementary off-main-flow content.
type Aside struct {
	Blocks []Block
}

// BlockQuote is a quoted block sequence.
type BlockQuote struct {
	Blocks []Block
}

// BulletList is an unordered list; each item is a block sequence.
type BulletList struct {
	Items [][]Block
}

// OrderedList is a numbered list; each item is a block sequence.
type OrderedList struct {
	Start int
	Items [][]Block
}

// Alignment is a table column alignment.
type Alignment string

// Table column alignments, matching the pandoc wire names.
const (
	AlignLeft    Alignment = "AlignLeft"
	AlignRight   Alignment = "AlignRight"
	AlignCenter  Alignment = "AlignCenter"
	AlignDefault Alignment = "AlignDefault"
)

// TableCell holds a block sequence.
type TableCell struct {
	Blocks []Block
}

// TableRow is an ordered sequence of cells.
type TableRow struct {
	Cells []*TableCell
}

// Table is a header row plus body rows. Column alignments are kept so a
// round trip through the renderer preserves them.
type Table struct {
	Attr
	Aligns []Alignment
	Header TableRow
	Rows   []TableRow
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

func (*Plain) block()          {}
func (*Para) block()           {}
func (*Header) block()         {}
func (*CodeBlock) block()      {}
func (*RawBlock) block()       {}
func (*Div) block()            {}
func (*Aside) block()          {}
func (*BlockQuote) block()     {}
func (*BulletList) block()     {}
func (*OrderedList) block()    {}
func (*Table) block()          {}
func (*HorizontalRule) block() {}

// Str is a text run.
type Str struct {
	Text string
}

// Space is an inter-word space.
type Space struct{}

// SoftBreak is a soft line break.
type SoftBreak struct{}

// LineBreak is a hard line break.
type LineBreak struct{}

// Emph is emphasized text.
type Emph struct {
	Inlines []Inline
}

// Strong is strongly emphasized text.
type Strong struct {
	Inlines []Inline
}

// Code is literal inline code.
type Code struct {
	Attr
	Text string
}

// Superscript is superscripted text.
type Superscript struct {
	Inlines []Inline
}

// Link is a hyperlink with visible content and a target URL.
type Link struct {
	Attr
	Inlines []Inline
	Target  string
	Title   string
}

// Image references a source URL; the inline content is the alt text.
type Image struct {
	Attr
	Inlines []Inline
	Target  string
	Title   string
}

// Span is a generic inline container with attributes.
type Span struct {
	Attr
	Inlines []Inline
}

// RawInline is verbatim markup in the named format.
type RawInline struct {
	Format string
	Text   string
}

func (*Str) inline()         {}
func (*Space) inline()       {}
func (*SoftBreak) inline()   {}
func (*LineBreak) inline()   {}
func (*Emph) inline()        {}
func (*Strong) inline()      {}
func (*Code) inline()        {}
func (*Superscript) inline() {}
func (*Link) inline()        {}
func (*Image) inline()       {}
func (*Span) inline()        {}
func (*RawInline) inline()   {}
