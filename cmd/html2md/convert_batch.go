package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	html2md "github.com/ebooklib/go-html2md"
	"github.com/ebooklib/go-html2md/internal/fileutil"
	"github.com/ebooklib/go-html2md/internal/hints"
)

// File permission constants.
const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() *html2md.Service
	Release(*html2md.Service)
	Size() int
}

// Compile-time interface implementation check.
var _ Pool = (*html2md.ServicePool)(nil)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the service pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, svc, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, svc *html2md.Service, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadInput, err)
		result.Duration = time.Since(start)
		return result
	}

	md, err := svc.Convert(ctx, html2md.Input{
		HTML:        string(content),
		UnwrapSpans: params.unwrapSpans,
		MediaFolder: params.mediaFolder,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Err = writeOutput(f.OutputPath, md, params.splitPattern)
	result.Duration = time.Since(start)
	return result
}

// writeOutput writes the markdown, split into per-section files when a
// pattern is configured.
func writeOutput(outputPath, md string, pattern *regexp.Regexp) error {
	if err := ensureParent(outputPath); err != nil {
		return err
	}

	if pattern == nil {
		if err := os.WriteFile(outputPath, []byte(md), filePermissions); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
		return nil
	}

	sections := html2md.Split(md, pattern)
	for i, section := range sections {
		path := sectionPath(outputPath, i, section.Title)
		if err := os.WriteFile(path, []byte(section.Content), filePermissions); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
	}
	return nil
}

// ensureParent creates the output file's directory if missing.
func ensureParent(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := fileutil.EnsureDir(dir); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	return nil
}
