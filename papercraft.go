// Package papercraft converts markdown documents into paginated PDF files
// through a custom layout engine: no browser, no external typesetter, just
// primitive drawing operations over estimated text metrics.
//
// The pipeline is markdown parsing (package markdown), layout (package
// render), and serialization (package writer). Service ties the three
// together for one document; ServicePool fans independent documents out
// across workers.
package papercraft

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/humaxai2025/Papercraft/markdown"
	"github.com/humaxai2025/Papercraft/observability"
	"github.com/humaxai2025/Papercraft/render"
	"github.com/humaxai2025/Papercraft/semantic"
	"github.com/humaxai2025/Papercraft/writer"
)

// Service converts one markdown document at a time. Safe for sequential
// reuse; use a ServicePool for parallel batches.
type Service struct {
	cfg    *Config
	parser *markdown.Parser
	loader render.ImageLoader
	log    observability.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithConfig sets the generation config. Invalid configs surface on the
// first Convert call.
func WithConfig(cfg *Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithLogger sets the logger.
func WithLogger(log observability.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithImageLoader overrides the image-embedding collaborator.
func WithImageLoader(l render.ImageLoader) Option {
	return func(s *Service) { s.loader = l }
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:    DefaultConfig(),
		parser: markdown.NewParser(),
		log:    observability.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convert renders the markdown source and writes the PDF to out. Image
// failures degrade to placeholders; parse and write failures propagate.
func (s *Service) Convert(source []byte, out io.Writer) error {
	doc, err := s.renderDocument(source)
	if err != nil {
		return err
	}
	return writer.Write(doc, out, writer.Config{Compress: s.cfg.Compress})
}

// ConvertFile reads a markdown file and writes the PDF to outputPath. A
// partial output file is removed on write failure.
func (s *Service) ConvertFile(inputPath, outputPath string) error {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	doc, err := s.renderDocument(source)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	s.log.Info("writing document",
		observability.String("input", inputPath),
		observability.String("output", outputPath),
		observability.Int("pages", len(doc.Pages)))
	return writer.WriteFile(doc, outputPath, writer.Config{Compress: s.cfg.Compress})
}

func (s *Service) renderDocument(source []byte) (*semantic.Document, error) {
	if len(bytes.TrimSpace(source)) == 0 {
		return nil, ErrEmptyMarkdown
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	elements, err := s.parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	s.log.Debug("parsed document", observability.Int("elements", len(elements)))

	opts := []render.Option{
		render.WithLayout(s.cfg.layout()),
		render.WithTitle(s.cfg.Title),
		render.WithBranding(s.cfg.Branding),
		render.WithSyntaxHighlighting(s.cfg.CodeHighlight),
		render.WithLogger(s.log),
	}
	if s.loader != nil {
		opts = append(opts, render.WithImageLoader(s.loader))
	}
	doc, err := render.New(opts...).Render(elements)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return doc, nil
}
