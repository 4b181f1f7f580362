package html2md

import "time"

// Input holds a single conversion request.
type Input struct {
	// HTML is the source markup. Required.
	HTML string

	// UnwrapSpans lists span classes whose wrapper should be removed
	// while keeping the content.
	UnwrapSpans []string

	// MediaFolder is the directory name referenced by image markers in
	// the source. Defaults to DefaultMediaFolder.
	MediaFolder string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout         time.Duration
	pandocPath      string
	postprocess     bool
	languageAliases bool
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 60 * time.Second

// WithTimeout sets the per-conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2md: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithPandocPath sets the pandoc executable path.
func WithPandocPath(path string) Option {
	return func(s *Service) {
		s.cfg.pandocPath = path
	}
}

// WithRunner sets the subprocess runner (e.g., a fake in tests).
func WithRunner(r CommandRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithParser replaces the markup parser.
func WithParser(p Parser) Option {
	return func(s *Service) {
		s.parser = p
	}
}

// WithRenderer replaces the markdown renderer.
func WithRenderer(r Renderer) Option {
	return func(s *Service) {
		s.renderer = r
	}
}

// WithCaptionRenderer replaces the figure caption renderer.
func WithCaptionRenderer(cr CaptionRenderer) Option {
	return func(s *Service) {
		s.captions = cr
	}
}

// WithPostprocess toggles the text-level cleanup rules applied to the
// rendered markdown. Enabled by default.
func WithPostprocess(enabled bool) Option {
	return func(s *Service) {
		s.cfg.postprocess = enabled
	}
}

// WithLanguageAliases toggles canonicalization of code block language
// names through the highlighter's alias table. Disabled by default.
func WithLanguageAliases(enabled bool) Option {
	return func(s *Service) {
		s.cfg.languageAliases = enabled
	}
}
