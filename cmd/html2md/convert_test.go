package main

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"
	"time"

	html2md "github.com/ebooklib/go-html2md"
	"github.com/ebooklib/go-html2md/internal/config"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title    string
		expected string
	}{
		{title: "Chapter 1. Getting Started", expected: "chapter-1-getting-started"},
		{title: "  Leading & Trailing!  ", expected: "leading-trailing"},
		{title: "ALL CAPS", expected: "all-caps"},
		{title: "---", expected: ""},
		{title: "", expected: ""},
	}

	for _, tt := range tests {
		tt := tt
		if got := slugify(tt.title); got != tt.expected {
			t.Errorf("slugify(%q) = %q, want %q", tt.title, got, tt.expected)
		}
	}
}

func TestSectionPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		index    int
		title    string
		expected string
	}{
		{
			name:     "titled section",
			base:     filepath.Join("out", "book.md"),
			index:    1,
			title:    "Chapter 1. Basics",
			expected: filepath.Join("out", "book-01-chapter-1-basics.md"),
		},
		{
			name:     "untitled section",
			base:     "book.md",
			index:    0,
			title:    "",
			expected: "book-00-section-00.md",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sectionPath(tt.base, tt.index, tt.title); got != tt.expected {
				t.Errorf("sectionPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	enabled := true
	cfg := &config.Config{
		Pandoc:  config.PandocConfig{Path: "/from/config"},
		Convert: config.ConvertConfig{MediaFolder: "cfg-media", Postprocess: &enabled},
		Workers: 2,
	}
	flags := &convertFlags{
		pandoc:        "/from/flag",
		mediaFolder:   "flag-media",
		unwrapSpans:   []string{"keep"},
		splitPattern:  `^#`,
		noPostprocess: true,
		langAliases:   true,
		workers:       8,
	}

	mergeFlags(flags, cfg)

	if cfg.Pandoc.Path != "/from/flag" {
		t.Errorf("Pandoc.Path = %q", cfg.Pandoc.Path)
	}
	if cfg.Convert.MediaFolder != "flag-media" {
		t.Errorf("MediaFolder = %q", cfg.Convert.MediaFolder)
	}
	if !reflect.DeepEqual(cfg.Convert.UnwrapSpans, []string{"keep"}) {
		t.Errorf("UnwrapSpans = %v", cfg.Convert.UnwrapSpans)
	}
	if cfg.Split.Pattern != `^#` {
		t.Errorf("Split.Pattern = %q", cfg.Split.Pattern)
	}
	if cfg.Convert.PostprocessEnabled() {
		t.Error("--no-postprocess should disable postprocessing")
	}
	if !cfg.Convert.LanguageAliases {
		t.Error("--lang-aliases should enable language aliases")
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
}

func TestMergeFlags_ConfigWinsWhenFlagsUnset(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Pandoc:  config.PandocConfig{Path: "/from/config"},
		Convert: config.ConvertConfig{MediaFolder: "cfg-media", UnwrapSpans: []string{"cfg"}},
		Workers: 2,
	}
	mergeFlags(&convertFlags{}, cfg)

	if cfg.Pandoc.Path != "/from/config" {
		t.Errorf("Pandoc.Path = %q", cfg.Pandoc.Path)
	}
	if cfg.Convert.MediaFolder != "cfg-media" {
		t.Errorf("MediaFolder = %q", cfg.Convert.MediaFolder)
	}
	if !reflect.DeepEqual(cfg.Convert.UnwrapSpans, []string{"cfg"}) {
		t.Errorf("UnwrapSpans = %v", cfg.Convert.UnwrapSpans)
	}
	if cfg.Convert.Postprocess != nil {
		t.Error("postprocess toggle should stay unset")
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
}

func TestBuildParams(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Convert: config.ConvertConfig{
			UnwrapSpans: []string{"keep"},
			MediaFolder: "images",
		},
		Split: config.SplitConfig{Pattern: `^# (.*)$`},
	}
	flags := &convertFlags{timeout: "45s"}

	params, opts, err := buildParams(flags, cfg)
	if err != nil {
		t.Fatalf("buildParams() error = %v", err)
	}

	if !reflect.DeepEqual(params.unwrapSpans, []string{"keep"}) {
		t.Errorf("unwrapSpans = %v", params.unwrapSpans)
	}
	if params.mediaFolder != "images" {
		t.Errorf("mediaFolder = %q", params.mediaFolder)
	}
	if params.splitPattern == nil || !params.splitPattern.MatchString("# Intro") {
		t.Errorf("splitPattern = %v", params.splitPattern)
	}
	if params.timeout != 45*time.Second {
		t.Errorf("timeout = %v", params.timeout)
	}
	if len(opts) == 0 {
		t.Error("expected service options")
	}
}

func TestBuildParams_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flags    *convertFlags
		cfg      *config.Config
		expected error
	}{
		{
			name:     "invalid split pattern",
			flags:    &convertFlags{},
			cfg:      &config.Config{Split: config.SplitConfig{Pattern: "("}},
			expected: html2md.ErrInvalidSplitPattern,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := buildParams(tt.flags, tt.cfg)
			if !errors.Is(err, tt.expected) {
				t.Errorf("buildParams() error = %v, want %v", err, tt.expected)
			}
		})
	}

	t.Run("invalid timeout", func(t *testing.T) {
		t.Parallel()

		_, _, err := buildParams(&convertFlags{timeout: "soon"}, config.DefaultConfig())
		if err == nil {
			t.Error("expected error for unparseable timeout")
		}
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		t.Parallel()

		_, _, err := buildParams(&convertFlags{timeout: "0s"}, config.DefaultConfig())
		if err == nil {
			t.Error("expected error for zero timeout")
		}
	})
}

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"ch01.html", "ch02.xhtml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("<p>x</p>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("directory input", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles(dir, "out", config.DefaultConfig())
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		expected := []FileToConvert{
			{InputPath: filepath.Join(dir, "ch01.html"), OutputPath: filepath.Join("out", "ch01.md")},
			{InputPath: filepath.Join(dir, "ch02.xhtml"), OutputPath: filepath.Join("out", "ch02.md")},
		}
		if !reflect.DeepEqual(files, expected) {
			t.Errorf("discoverFiles() = %v, want %v", files, expected)
		}
	})

	t.Run("single file next to input", func(t *testing.T) {
		t.Parallel()

		input := filepath.Join(dir, "ch01.html")
		files, err := discoverFiles(input, "", config.DefaultConfig())
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 1 || files[0].OutputPath != filepath.Join(dir, "ch01.md") {
			t.Errorf("discoverFiles() = %v", files)
		}
	})

	t.Run("explicit md output for single file", func(t *testing.T) {
		t.Parallel()

		input := filepath.Join(dir, "ch01.html")
		files, err := discoverFiles(input, "custom.md", config.DefaultConfig())
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 1 || files[0].OutputPath != "custom.md" {
			t.Errorf("discoverFiles() = %v", files)
		}
	})

	t.Run("config default dir", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Output.DefaultDir = "fromcfg"
		input := filepath.Join(dir, "ch01.html")
		files, err := discoverFiles(input, "", cfg)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if files[0].OutputPath != filepath.Join("fromcfg", "ch01.md") {
			t.Errorf("OutputPath = %q", files[0].OutputPath)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(dir, "gone.html"), "", config.DefaultConfig())
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("discoverFiles() error = %v, want %v", err, ErrNoInput)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(t.TempDir(), "", config.DefaultConfig())
		if err == nil {
			t.Error("expected error for directory without HTML files")
		}
	})
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	t.Run("single file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "out.md")
		if err := writeOutput(path, "# Title\n", nil); err != nil {
			t.Fatalf("writeOutput() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "# Title\n" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("split into sections", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "book.md")
		md := "intro\n# Chapter One\nbody\n# Chapter Two\nmore\n"
		pattern := regexp.MustCompile(`^# (.*)$`)

		if err := writeOutput(path, md, pattern); err != nil {
			t.Fatalf("writeOutput() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 3 {
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Fatalf("got files %v, want 3 section files", names)
		}

		data, err := os.ReadFile(filepath.Join(dir, "book-01-chapter-one.md"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "# Chapter One\nbody\n" {
			t.Errorf("section content = %q", data)
		}
	})
}
