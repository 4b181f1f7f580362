// Package html2md converts e-book HTML into clean markdown using pandoc.
//
// # Quick Start
//
// Create a service and convert:
//
//	svc := html2md.New()
//	md, err := svc.Convert(ctx, html2md.Input{
//	    HTML: source,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("chapter.md", []byte(md), 0644)
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. HTML parsing into a document tree via pandoc
//  2. Tree rewriting (raw block triage, sidebar and aside quoting,
//     code language normalization, footnote references, figure
//     assembly, table cell flattening)
//  3. Markdown rendering via pandoc (GFM, no wrapping)
//  4. Text-level cleanup of the rendered markdown
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := html2md.New(
//	    html2md.WithPandocPath("/opt/pandoc/bin/pandoc"),
//	    html2md.WithTimeout(2 * time.Minute),
//	    html2md.WithPostprocess(false),
//	)
//
// Per-conversion options are passed via Input:
//
//	md, err := svc.Convert(ctx, html2md.Input{
//	    HTML:        source,
//	    UnwrapSpans: []string{"keep-together"},
//	    MediaFolder: "assets",
//	})
//
// # Parallel Processing
//
// For batch conversion, use ServicePool to bound concurrent pandoc
// subprocesses:
//
//	pool := html2md.NewServicePool(html2md.ResolvePoolSize(0))
//	svc := pool.Acquire()
//	defer pool.Release(svc)
//
// # Requirements
//
// A pandoc executable must be on PATH or configured with WithPandocPath.
package html2md
