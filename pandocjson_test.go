package html2md

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleDoc = `{
  "pandoc-api-version": [1, 23, 1],
  "meta": {},
  "blocks": [
    {"t": "Header", "c": [2, ["intro", ["section"], [["data-type", "sect1"]]], [{"t": "Str", "c": "Intro"}]]},
    {"t": "Para", "c": [
      {"t": "Str", "c": "Hello"},
      {"t": "Space"},
      {"t": "Emph", "c": [{"t": "Str", "c": "world"}]}
    ]},
    {"t": "CodeBlock", "c": [["", [], [["code-language", "python"]]], "print(1)"]},
    {"t": "RawBlock", "c": ["html", "<figure>x</figure>"]},
    {"t": "BulletList", "c": [
      [{"t": "Plain", "c": [{"t": "Str", "c": "one"}]}],
      [{"t": "Plain", "c": [{"t": "Str", "c": "two"}]}]
    ]},
    {"t": "Div", "c": [["", ["sidebar"], []], [{"t": "Para", "c": [{"t": "Str", "c": "side"}]}]]},
    {"t": "HorizontalRule"}
  ]
}`

func TestDecodeDocument(t *testing.T) {
	t.Parallel()

	got, err := DecodeDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}

	expected := []Block{
		&Header{
			Attr:    Attr{Identifier: "intro", Classes: []string{"section"}, KeyVals: []KeyVal{{Key: "data-type", Value: "sect1"}}},
			Level:   2,
			Inlines: []Inline{&Str{Text: "Intro"}},
		},
		&Para{Inlines: []Inline{
			&Str{Text: "Hello"},
			&Space{},
			&Emph{Inlines: []Inline{&Str{Text: "world"}}},
		}},
		&CodeBlock{
			Attr: Attr{Classes: []string{}, KeyVals: []KeyVal{{Key: "code-language", Value: "python"}}},
			Text: "print(1)",
		},
		&RawBlock{Format: "html", Text: "<figure>x</figure>"},
		&BulletList{Items: [][]Block{
			{&Plain{Inlines: []Inline{&Str{Text: "one"}}}},
			{&Plain{Inlines: []Inline{&Str{Text: "two"}}}},
		}},
		&Div{
			Attr:   Attr{Classes: []string{"sidebar"}},
			Blocks: []Block{&Para{Inlines: []Inline{&Str{Text: "side"}}}},
		},
		&HorizontalRule{},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("DecodeDocument() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDocument_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{
			name: "malformed json",
			data: `{"blocks": [`,
		},
		{
			name: "unsupported block kind",
			data: `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"DefinitionList","c":[]}]}`,
		},
		{
			name: "unsupported inline kind",
			data: `{"pandoc-api-version":[1,23,1],"meta":{},"blocks":[{"t":"Para","c":[{"t":"Cite","c":[]}]}]}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeDocument([]byte(tt.data))
			if !errors.Is(err, ErrDecode) {
				t.Errorf("DecodeDocument() error = %v, want ErrDecode", err)
			}
		})
	}
}

func TestEncodeDocument(t *testing.T) {
	t.Parallel()

	blocks := []Block{
		&Para{Inlines: []Inline{&Str{Text: "Hi"}}},
		&CodeBlock{Attr: Attr{Classes: []string{"go"}}, Text: "x := 1"},
		&RawBlock{Format: "html", Text: "<figure>x</figure>"},
	}

	data, err := EncodeDocument(blocks)
	if err != nil {
		t.Fatalf("EncodeDocument() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`"pandoc-api-version"`,
		`"meta"`,
		`"Para"`,
		`"CodeBlock"`,
		`"RawBlock"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("EncodeDocument() output missing %s", want)
		}
	}
}

// Encoding a decoded tree and decoding it again must reproduce the tree.
func TestDocumentRoundTrip(t *testing.T) {
	t.Parallel()

	original, err := DecodeDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}

	encoded, err := EncodeDocument(original)
	if err != nil {
		t.Fatalf("EncodeDocument() error = %v", err)
	}

	decoded, err := DecodeDocument(encoded)
	if err != nil {
		t.Fatalf("DecodeDocument(encoded) error = %v", err)
	}

	if diff := cmp.Diff(original, decoded); diff != "" {
		t.Errorf("round trip mismatch (-original +decoded):\n%s", diff)
	}
}

func TestDecodeDocument_AsideEncodedAsContainer(t *testing.T) {
	t.Parallel()

	encoded, err := EncodeDocument([]Block{
		&Aside{Blocks: []Block{&Para{Inlines: []Inline{&Str{Text: "note"}}}}},
	})
	if err != nil {
		t.Fatalf("EncodeDocument() error = %v", err)
	}

	decoded, err := DecodeDocument(encoded)
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d blocks, want 1", len(decoded))
	}
	if _, ok := decoded[0].(*Div); !ok {
		t.Errorf("decoded block is %T, want *Div (asides have no wire representation)", decoded[0])
	}
}
