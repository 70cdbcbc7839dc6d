// Package render is the pagination and text-layout engine. It consumes an
// ordered sequence of semantic elements and drives the builder's drawing
// primitives to produce styled, paginated pages: greedy line wrapping,
// top-down vertical flow with page-break prediction, dynamic table row
// heights, and running headers and footers.
package render

import (
	"fmt"

	"github.com/humaxai2025/Papercraft/builder"
	"github.com/humaxai2025/Papercraft/element"
	"github.com/humaxai2025/Papercraft/images"
	"github.com/humaxai2025/Papercraft/observability"
	"github.com/humaxai2025/Papercraft/semantic"
)

// ImageLoader is the image-embedding collaborator. Failures are recovered
// per element; the renderer draws a placeholder instead of propagating.
type ImageLoader interface {
	Load(ref string) (*images.Decoded, error)
}

// Renderer lays out one document per Render call. Safe for sequential
// reuse, not for concurrent use.
type Renderer struct {
	b builder.PDFBuilder

	layout PageLayout
	fonts  FontSystem
	sizes  FontSizes
	colors ColorScheme

	title     string
	branding  string
	highlight bool
	loader    ImageLoader
	log       observability.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithBuilder substitutes the drawing backend, used by tests to record
// primitive calls.
func WithBuilder(b builder.PDFBuilder) Option {
	return func(r *Renderer) { r.b = b }
}

// WithLayout overrides the page geometry.
func WithLayout(l PageLayout) Option {
	return func(r *Renderer) { r.layout = l }
}

// WithTitle sets the header title.
func WithTitle(title string) Option {
	return func(r *Renderer) { r.title = title }
}

// WithBranding sets the footer branding string.
func WithBranding(branding string) Option {
	return func(r *Renderer) { r.branding = branding }
}

// WithFontSizes overrides the type scale.
func WithFontSizes(s FontSizes) Option {
	return func(r *Renderer) { r.sizes = s }
}

// WithColors overrides the palette.
func WithColors(c ColorScheme) Option {
	return func(r *Renderer) { r.colors = c }
}

// WithSyntaxHighlighting enables lexer-backed code block emphasis for
// blocks that carry a language tag.
func WithSyntaxHighlighting(on bool) Option {
	return func(r *Renderer) { r.highlight = on }
}

// WithImageLoader sets the image-embedding collaborator.
func WithImageLoader(l ImageLoader) Option {
	return func(r *Renderer) { r.loader = l }
}

// WithLogger sets the logger. Defaults to a no-op.
func WithLogger(log observability.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// New builds a Renderer with A4 defaults.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		b:        builder.NewBuilder(),
		layout:   DefaultLayout(),
		fonts:    DefaultFonts(),
		sizes:    DefaultFontSizes(),
		colors:   DefaultColors(),
		title:    "Professional Document",
		branding: "Generated by Papercraft",
		loader:   images.NewLoader(),
		log:      observability.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays out the elements and returns the finished document model.
func (r *Renderer) Render(elements []element.Element) (*semantic.Document, error) {
	for name, base := range r.fonts.baseFonts() {
		r.b.RegisterFont(name, base)
	}

	st := &RenderState{TotalPages: r.EstimatePages(elements)}
	r.newPage(st)

	for _, el := range elements {
		r.checkPageBreak(st, r.requiredHeight(el))
		r.applyListTransitions(st, el)
		r.renderElement(st, el)
	}
	r.flushFootnotes(st)

	if st.Page != nil {
		st.Page.Finish()
	}
	r.b.SetInfo(&semantic.DocumentInfo{Title: r.title, Producer: "Papercraft"})
	doc, err := r.b.Build()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	r.log.Debug("document rendered",
		observability.Int("pages", len(doc.Pages)),
		observability.Int("estimated_pages", st.TotalPages),
		observability.Int("elements", len(elements)))
	return doc, nil
}

// newPage opens a fresh page surface, draws its chrome, and resets the
// cursor to the content start.
func (r *Renderer) newPage(st *RenderState) {
	if st.Page != nil {
		st.Page.Finish()
	}
	st.PageNum++
	st.Page = r.b.NewPage(r.layout.Width, r.layout.Height)
	st.Y = r.layout.ContentStartY()
	r.renderHeaderFooter(st)
}

// checkPageBreak opens a new page when the projected remaining space for
// required would dip below the footer clearance. The estimate is
// deliberately conservative so tables and images are never split.
func (r *Renderer) checkPageBreak(st *RenderState, required float64) {
	if st.Y-required >= r.layout.floorY() {
		return
	}
	r.log.Debug("page break",
		observability.Int("page", st.PageNum),
		observability.Float64("cursor", st.Y),
		observability.Float64("required", required))
	r.newPage(st)
}

// applyListTransitions inserts the one-time spacing around list context:
// entering a list adds space before it, leaving adds space after and
// clears the ordinal counters. Consecutive items of the same list get
// neither.
func (r *Renderer) applyListTransitions(st *RenderState, el element.Element) {
	switch el.Kind {
	case element.ListItem, element.TaskListItem:
		if st.enterList() {
			st.Y -= 4 * mm
		}
	default:
		if st.leaveList() {
			st.Y -= 6 * mm
		}
	}
}

func (r *Renderer) renderElement(st *RenderState, el element.Element) {
	switch el.Kind {
	case element.Heading:
		r.renderHeading(st, el)
	case element.Paragraph:
		r.renderParagraph(st, el)
	case element.ListItem, element.TaskListItem:
		r.renderListItem(st, el)
	case element.BlockQuote:
		r.renderBlockQuote(st, el)
	case element.Table:
		r.renderTable(st, el)
	case element.Code:
		r.renderInlineCode(st, el)
	case element.CodeBlock:
		r.renderCodeBlock(st, el)
	case element.Link:
		r.renderLink(st, el)
	case element.Image:
		r.renderImage(st, el)
	case element.HorizontalRule:
		r.renderHorizontalRule(st)
	case element.Footnote:
		st.queueFootnote(el)
	case element.FootnoteReference:
		r.renderFootnoteReference(st, el)
	default:
		st.Y -= 4 * mm
	}
}

// fontFor selects the font resource matching the active inline formats.
func (r *Renderer) fontFor(formats element.Formats) string {
	switch {
	case formats.Has(element.CodeSpan):
		return r.fonts.Code
	case formats.Has(element.Bold) && formats.Has(element.Italic):
		return r.fonts.BoldItalic
	case formats.Has(element.Bold):
		return r.fonts.Bold
	case formats.Has(element.Italic):
		return r.fonts.Italic
	default:
		return r.fonts.Regular
	}
}
