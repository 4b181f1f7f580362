package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	html2md "github.com/ebooklib/go-html2md"
	"github.com/ebooklib/go-html2md/internal/config"
	"github.com/ebooklib/go-html2md/internal/fileutil"
	"github.com/ebooklib/go-html2md/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
)

// conversionParams groups parameters shared across batch conversion.
type conversionParams struct {
	unwrapSpans  []string
	mediaFolder  string
	splitPattern *regexp.Regexp
	timeout      time.Duration
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if flags.workers < 0 {
		return fmt.Errorf("%w: %d", html2md.ErrInvalidWorkers, flags.workers)
	}

	// Load configuration
	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nil))
			}
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	params, opts, err := buildParams(flags, cfg)
	if err != nil {
		return err
	}

	// Resolve input path
	if len(positionalArgs) == 0 {
		return ErrNoInput
	}
	inputPath := positionalArgs[0]

	// Discover files to convert
	files, err := discoverFiles(inputPath, flags.output, cfg)
	if err != nil {
		return err
	}

	// Convert files through a bounded pool
	poolSize := html2md.ResolvePoolSize(flags.workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := html2md.NewServicePool(poolSize, opts...)

	results := convertBatch(ctx, pool, files, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		// Surface the first failure so the exit code reflects its kind
		for _, r := range results {
			if r.Err != nil {
				return fmt.Errorf("%d conversion(s) failed: %w", failedCount, r.Err)
			}
		}
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.pandoc != "" {
		cfg.Pandoc.Path = flags.pandoc
	}
	if flags.mediaFolder != "" {
		cfg.Convert.MediaFolder = flags.mediaFolder
	}
	if len(flags.unwrapSpans) > 0 {
		cfg.Convert.UnwrapSpans = flags.unwrapSpans
	}
	if flags.splitPattern != "" {
		cfg.Split.Pattern = flags.splitPattern
	}
	if flags.noPostprocess {
		disabled := false
		cfg.Convert.Postprocess = &disabled
	}
	if flags.langAliases {
		cfg.Convert.LanguageAliases = true
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
}

// buildParams turns merged config into conversion parameters and service
// options.
func buildParams(flags *convertFlags, cfg *config.Config) (*conversionParams, []html2md.Option, error) {
	pattern, err := cfg.Split.SplitPattern()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v%s", html2md.ErrInvalidSplitPattern, err, hints.ForSplitPattern())
	}

	params := &conversionParams{
		unwrapSpans:  cfg.Convert.UnwrapSpans,
		mediaFolder:  cfg.Convert.MediaFolder,
		splitPattern: pattern,
	}

	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, nil, fmt.Errorf("invalid timeout %q%s", flags.timeout, hints.ForTimeout())
		}
		params.timeout = d
	}

	var opts []html2md.Option
	if cfg.Pandoc.Path != "" {
		opts = append(opts, html2md.WithPandocPath(cfg.Pandoc.Path))
	}
	if params.timeout > 0 {
		opts = append(opts, html2md.WithTimeout(params.timeout))
	}
	opts = append(opts, html2md.WithPostprocess(cfg.Convert.PostprocessEnabled()))
	if cfg.Convert.LanguageAliases {
		opts = append(opts, html2md.WithLanguageAliases(true))
	}

	return params, opts, nil
}

// discoverFiles expands the input path into the files to convert with
// their output paths.
func discoverFiles(inputPath, output string, cfg *config.Config) ([]FileToConvert, error) {
	outDir := output
	if outDir == "" {
		outDir = cfg.Output.DefaultDir
	}

	if fileutil.DirExists(inputPath) {
		sources, err := fileutil.ListMarkupFiles(inputPath)
		if err != nil {
			return nil, err
		}
		if len(sources) == 0 {
			return nil, fmt.Errorf("no HTML files found in %s%s", inputPath, hints.ForEmptyInputDir())
		}
		files := make([]FileToConvert, 0, len(sources))
		for _, src := range sources {
			files = append(files, FileToConvert{
				InputPath:  src,
				OutputPath: fileutil.OutputPath(src, outDir),
			})
		}
		return files, nil
	}

	if !fileutil.FileExists(inputPath) {
		return nil, fmt.Errorf("%w: %s", ErrNoInput, inputPath)
	}

	outputPath := fileutil.OutputPath(inputPath, outDir)
	if output != "" && strings.HasSuffix(strings.ToLower(output), ".md") {
		// Explicit file output for single-file conversion
		outputPath = output
	}
	return []FileToConvert{{InputPath: inputPath, OutputPath: outputPath}}, nil
}

// sectionPath derives a per-section output path from the base output
// path and the section index and title.
func sectionPath(basePath string, index int, title string) string {
	dir := filepath.Dir(basePath)
	stem := strings.TrimSuffix(filepath.Base(basePath), filepath.Ext(basePath))
	slug := slugify(title)
	if slug == "" {
		slug = fmt.Sprintf("section-%02d", index)
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%02d-%s.md", stem, index, slug))
}

// slugify lowercases a title and reduces it to hyphen-separated words.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// printResults reports per-file outcomes and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAIL %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "OK   %s -> %s (%s)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "OK   %s -> %s\n", r.InputPath, r.OutputPath)
		}
	}
	return failed
}
