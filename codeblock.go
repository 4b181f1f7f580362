package html2md

// languageAttr is the HTMLBook attribute carrying a code block's language.
const languageAttr = "code-language"

// normalizeCodeLanguage moves a code-language attribute into the class
// list so the renderer's language-tag derivation (first class entry) works.
// A block that already carries any class is returned untouched.
func normalizeCodeLanguage(b *CodeBlock) []Block {
	if len(b.Classes) != 0 {
		return []Block{b}
	}
	lang, ok := b.Get(languageAttr)
	if !ok {
		return []Block{b}
	}
	attr := b.Attr.Without(languageAttr)
	attr.Classes = []string{lang}
	return []Block{&CodeBlock{Attr: attr, Text: b.Text}}
}
