package hints

import (
	"strings"
	"testing"
)

func TestHintFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hint string
	}{
		{name: "pandoc missing", hint: ForPandocMissing()},
		{name: "timeout", hint: ForTimeout()},
		{name: "output directory", hint: ForOutputDirectory()},
		{name: "empty input dir", hint: ForEmptyInputDir()},
		{name: "split pattern", hint: ForSplitPattern()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, "\n  hint: ") {
				t.Errorf("hint %q missing standard prefix", tt.hint)
			}
			if strings.TrimSpace(strings.TrimPrefix(tt.hint, "\n  hint: ")) == "" {
				t.Error("hint has no content")
			}
		})
	}
}

func TestForPandocMissing(t *testing.T) {
	t.Parallel()

	hint := ForPandocMissing()
	if !strings.Contains(hint, "pandoc.org") {
		t.Errorf("hint %q should link the install page", hint)
	}
	if !strings.Contains(hint, "--pandoc") {
		t.Errorf("hint %q should mention the --pandoc flag", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains []string
	}{
		{
			name:     "no searched paths",
			paths:    nil,
			contains: []string{"--config"},
		},
		{
			name:     "suggests user config location",
			paths:    []string{"book.yaml", "/home/u/.config/go-html2md/book.yaml"},
			contains: []string{"--config", "/home/u/.config/go-html2md/book.yaml"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			for _, want := range tt.contains {
				if !strings.Contains(hint, want) {
					t.Errorf("hint %q should contain %q", hint, want)
				}
			}
		})
	}
}
