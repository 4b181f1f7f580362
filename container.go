package html2md

// Attribute values marking a container as side content in HTMLBook and
// EPUB markup.
const sidebarType = "sidebar"

// normalizeContainer resolves a generic container block that the driver has
// already rewritten the children of. Side content becomes a blockquote
// wrapping the same children; any other container carries no renderable
// semantics and is replaced by its children spliced into the parent
// sequence.
func normalizeContainer(attr *Attr, children []Block) []Block {
	if isSideContent(attr) {
		return []Block{&BlockQuote{Blocks: children}}
	}
	return children
}

// isSideContent classifies a container as supplementary off-main-flow
// content: a data-type or epub-type attribute of "sidebar", or a sidebar
// or aside class.
func isSideContent(attr *Attr) bool {
	if v, ok := attr.Get("data-type"); ok && v == sidebarType {
		return true
	}
	if v, ok := attr.Get("epub-type"); ok && v == sidebarType {
		return true
	}
	return attr.HasAnyClass("sidebar", "aside")
}
