package html2md

import (
	"context"
	"fmt"
)

// Service orchestrates the HTML-to-markdown pipeline.
type Service struct {
	cfg      serviceConfig
	runner   CommandRunner
	parser   Parser
	renderer Renderer
	captions CaptionRenderer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithPandocPath).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:     defaultTimeout,
			pandocPath:  defaultPandocPath,
			postprocess: true,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.runner == nil {
		s.runner = &ExecRunner{}
	}
	// Create pandoc stages if not injected (e.g., by tests)
	if s.parser == nil {
		s.parser = newPandocParser(s.runner, s.cfg.pandocPath)
	}
	if s.renderer == nil {
		s.renderer = newPandocRenderer(s.runner, s.cfg.pandocPath)
	}
	if s.captions == nil {
		s.captions = newGoldmarkCaptions()
	}

	return s
}

// Convert runs the full pipeline and returns the markdown text.
// The context is used for cancellation; the configured timeout bounds
// the whole conversion.
func (s *Service) Convert(ctx context.Context, input Input) (string, error) {
	if input.HTML == "" {
		return "", ErrEmptyInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	blocks, err := s.parser.Parse(ctx, input.HTML)
	if err != nil {
		return "", fmt.Errorf("parsing input: %w", err)
	}

	rw := &Rewriter{
		Parser:      s.parser,
		Captions:    s.captions,
		UnwrapSpans: input.UnwrapSpans,
	}
	blocks, err = rw.Document(ctx, blocks)
	if err != nil {
		return "", fmt.Errorf("rewriting document: %w", err)
	}

	if s.cfg.languageAliases {
		blocks = canonicalizeLanguages(blocks)
	}

	md, err := s.renderer.Render(ctx, blocks)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	if s.cfg.postprocess {
		md = Postprocess(md, input.MediaFolder)
	}

	return md, nil
}
