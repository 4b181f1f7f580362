package main

import (
	"reflect"
	"testing"
)

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-o", "out",
		"-w", "4",
		"-t", "90s",
		"--pandoc", "/opt/pandoc",
		"--media-folder", "images",
		"--unwrap-span", "keep-together",
		"--unwrap-span", "preserve",
		"--split", `^# (Chapter .*)$`,
		"--no-postprocess",
		"--lang-aliases",
		"-c", "book",
		"-q",
		"book.html",
	}

	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if flags.output != "out" {
		t.Errorf("output = %q", flags.output)
	}
	if flags.workers != 4 {
		t.Errorf("workers = %d", flags.workers)
	}
	if flags.timeout != "90s" {
		t.Errorf("timeout = %q", flags.timeout)
	}
	if flags.pandoc != "/opt/pandoc" {
		t.Errorf("pandoc = %q", flags.pandoc)
	}
	if flags.mediaFolder != "images" {
		t.Errorf("mediaFolder = %q", flags.mediaFolder)
	}
	if !reflect.DeepEqual(flags.unwrapSpans, []string{"keep-together", "preserve"}) {
		t.Errorf("unwrapSpans = %v", flags.unwrapSpans)
	}
	if flags.splitPattern != `^# (Chapter .*)$` {
		t.Errorf("splitPattern = %q", flags.splitPattern)
	}
	if !flags.noPostprocess {
		t.Error("noPostprocess = false")
	}
	if !flags.langAliases {
		t.Error("langAliases = false")
	}
	if flags.common.config != "book" {
		t.Errorf("config = %q", flags.common.config)
	}
	if !flags.common.quiet {
		t.Error("quiet = false")
	}
	if flags.common.verbose {
		t.Error("verbose = true")
	}
	if !reflect.DeepEqual(positional, []string{"book.html"}) {
		t.Errorf("positional = %v", positional)
	}
}

func TestParseConvertFlags_Defaults(t *testing.T) {
	t.Parallel()

	flags, positional, err := parseConvertFlags([]string{"book.html"})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if flags.workers != 0 {
		t.Errorf("workers = %d, want 0 (auto)", flags.workers)
	}
	if flags.noPostprocess {
		t.Error("noPostprocess should default to false")
	}
	if len(flags.unwrapSpans) != 0 {
		t.Errorf("unwrapSpans = %v, want empty", flags.unwrapSpans)
	}
	if len(positional) != 1 || positional[0] != "book.html" {
		t.Errorf("positional = %v", positional)
	}
}

func TestParseConvertFlags_CommaSeparatedSpans(t *testing.T) {
	t.Parallel()

	flags, _, err := parseConvertFlags([]string{"--unwrap-span", "a,b", "book.html"})
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}
	if !reflect.DeepEqual(flags.unwrapSpans, []string{"a", "b"}) {
		t.Errorf("unwrapSpans = %v, want [a b]", flags.unwrapSpans)
	}
}

func TestParseConvertFlags_UnknownFlag(t *testing.T) {
	t.Parallel()

	if _, _, err := parseConvertFlags([]string{"--frobnicate"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}
