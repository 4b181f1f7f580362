package html2md

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlattenCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		blocks   []Block
		expected []Block
	}{
		{
			name:     "empty cell yields empty plain",
			blocks:   nil,
			expected: []Block{&Plain{}},
		},
		{
			name:     "single paragraph becomes plain",
			blocks:   []Block{&Para{Inlines: []Inline{&Str{Text: "x"}}}},
			expected: []Block{&Plain{Inlines: []Inline{&Str{Text: "x"}}}},
		},
		{
			name:     "single plain unchanged",
			blocks:   []Block{&Plain{Inlines: []Inline{&Str{Text: "x"}}}},
			expected: []Block{&Plain{Inlines: []Inline{&Str{Text: "x"}}}},
		},
		{
			name: "two paragraphs joined with hard break",
			blocks: []Block{
				&Para{Inlines: []Inline{&Str{Text: "a"}}},
				&Para{Inlines: []Inline{&Str{Text: "b"}}},
			},
			expected: []Block{&Plain{Inlines: []Inline{
				&Str{Text: "a"},
				&LineBreak{},
				&Str{Text: "b"},
			}}},
		},
		{
			name: "bullet list items get markers",
			blocks: []Block{&BulletList{Items: [][]Block{
				{&Plain{Inlines: []Inline{&Str{Text: "one"}}}},
				{&Plain{Inlines: []Inline{&Str{Text: "two"}}}},
				{&Plain{Inlines: []Inline{&Str{Text: "three"}}}},
			}}},
			expected: []Block{&Plain{Inlines: []Inline{
				&Str{Text: "- "}, &Str{Text: "one"},
				&LineBreak{},
				&Str{Text: "- "}, &Str{Text: "two"},
				&LineBreak{},
				&Str{Text: "- "}, &Str{Text: "three"},
			}}},
		},
		{
			name: "ordered list flattens with the same markers",
			blocks: []Block{&OrderedList{Start: 4, Items: [][]Block{
				{&Plain{Inlines: []Inline{&Str{Text: "one"}}}},
				{&Plain{Inlines: []Inline{&Str{Text: "two"}}}},
			}}},
			expected: []Block{&Plain{Inlines: []Inline{
				&Str{Text: "- "}, &Str{Text: "one"},
				&LineBreak{},
				&Str{Text: "- "}, &Str{Text: "two"},
			}}},
		},
		{
			name: "empty item keeps its marker and separator",
			blocks: []Block{&BulletList{Items: [][]Block{
				{},
				{&Plain{Inlines: []Inline{&Str{Text: "two"}}}},
			}}},
			expected: []Block{&Plain{Inlines: []Inline{
				&Str{Text: "- "},
				&LineBreak{},
				&Str{Text: "- "}, &Str{Text: "two"},
			}}},
		},
		{
			name:     "list without items yields empty plain",
			blocks:   []Block{&BulletList{}},
			expected: []Block{&Plain{}},
		},
		{
			name: "paragraph then list",
			blocks: []Block{
				&Para{Inlines: []Inline{&Str{Text: "intro"}}},
				&BulletList{Items: [][]Block{
					{&Plain{Inlines: []Inline{&Str{Text: "a"}}}},
				}},
			},
			expected: []Block{&Plain{Inlines: []Inline{
				&Str{Text: "intro"},
				&LineBreak{},
				&Str{Text: "- "}, &Str{Text: "a"},
			}}},
		},
		{
			name: "nested list folds innermost first",
			blocks: []Block{&BulletList{Items: [][]Block{
				{
					&Plain{Inlines: []Inline{&Str{Text: "outer"}}},
					&BulletList{Items: [][]Block{
						{&Plain{Inlines: []Inline{&Str{Text: "inner"}}}},
					}},
				},
			}}},
			expected: []Block{&Plain{Inlines: []Inline{
				&Str{Text: "- "}, &Str{Text: "outer"},
				&LineBreak{},
				&Str{Text: "- "}, &Str{Text: "inner"},
			}}},
		},
		{
			name:   "code block contributes stringified text",
			blocks: []Block{&CodeBlock{Text: "x = 1"}},
			expected: []Block{&Plain{Inlines: []Inline{
				&Str{Text: "x = 1"},
			}}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := flattenCell(tt.blocks)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("flattenCell() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Every flattened cell is exactly one Plain node, whatever goes in.
func TestFlattenCell_AlwaysSinglePlain(t *testing.T) {
	t.Parallel()

	inputs := [][]Block{
		nil,
		{&Para{Inlines: []Inline{&Str{Text: "a"}}}, &CodeBlock{Text: "b"}},
		{&BlockQuote{Blocks: []Block{&Para{Inlines: []Inline{&Str{Text: "q"}}}}}},
		{&Header{Level: 3, Inlines: []Inline{&Str{Text: "h"}}}},
	}

	for _, blocks := range inputs {
		got := flattenCell(blocks)
		if len(got) != 1 {
			t.Fatalf("flattenCell(%v) returned %d blocks, want 1", blocks, len(got))
		}
		if _, ok := got[0].(*Plain); !ok {
			t.Errorf("flattenCell(%v) returned %T, want *Plain", blocks, got[0])
		}
	}
}
