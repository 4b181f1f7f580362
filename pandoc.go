package html2md

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Pandoc format names for the upstream parse and downstream render.
const (
	pandocInputFormat  = "html"
	pandocOutputFormat = "gfm"
	pandocASTFormat    = "json"

	defaultPandocPath = "pandoc"
)

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, stdin string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Parser supplies the initial document tree from source markup and
// re-parses isolated raw fragments.
type Parser interface {
	Parse(ctx context.Context, markup string) ([]Block, error)
	FragmentParser
}

// Renderer serializes a document tree to the target markup dialect.
type Renderer interface {
	Render(ctx context.Context, blocks []Block) (string, error)
}

// pandocParser parses HTML through the pandoc CLI's JSON AST output.
type pandocParser struct {
	runner CommandRunner
	pandoc string
}

func newPandocParser(runner CommandRunner, pandoc string) *pandocParser {
	if pandoc == "" {
		pandoc = defaultPandocPath
	}
	return &pandocParser{runner: runner, pandoc: pandoc}
}

// Parse converts HTML markup into a block sequence.
func (p *pandocParser) Parse(ctx context.Context, markup string) ([]Block, error) {
	if markup == "" {
		return nil, ErrEmptyInput
	}
	stdout, stderr, err := p.runner.Run(ctx, markup, p.pandoc,
		"-f", pandocInputFormat, "-t", pandocASTFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, strings.TrimSpace(stderr), err)
	}
	return DecodeDocument([]byte(stdout))
}

// ParseFragment parses an isolated raw-markup fragment. A fragment that
// parses to a single container is promoted to an aside, since fragments
// are only reparsed for aside-like markup and pandoc reads <aside> as a
// generic container.
func (p *pandocParser) ParseFragment(ctx context.Context, markup string) ([]Block, error) {
	blocks, err := p.Parse(ctx, markup)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 1 {
		if div, ok := blocks[0].(*Div); ok && !isSideContent(&div.Attr) {
			return []Block{&Aside{Blocks: div.Blocks}}, nil
		}
	}
	return blocks, nil
}

// pandocRenderer renders the tree to GitHub flavored markdown through the
// pandoc CLI.
type pandocRenderer struct {
	runner CommandRunner
	pandoc string
}

func newPandocRenderer(runner CommandRunner, pandoc string) *pandocRenderer {
	if pandoc == "" {
		pandoc = defaultPandocPath
	}
	return &pandocRenderer{runner: runner, pandoc: pandoc}
}

// Render serializes a block sequence to the target dialect.
func (r *pandocRenderer) Render(ctx context.Context, blocks []Block) (string, error) {
	doc, err := EncodeDocument(blocks)
	if err != nil {
		return "", err
	}
	stdout, stderr, err := r.runner.Run(ctx, string(doc), r.pandoc,
		"-f", pandocASTFormat, "-t", pandocOutputFormat, "--wrap=none")
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, strings.TrimSpace(stderr), err)
	}
	return stdout, nil
}
