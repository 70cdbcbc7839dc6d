package render

import (
	"github.com/humaxai2025/Papercraft/builder"
	"github.com/humaxai2025/Papercraft/semantic"
)

// recordingBuilder captures primitive calls so layout decisions can be
// asserted without a real PDF backend.
type recordingBuilder struct {
	pages    []*recordingPage
	outlines []builder.Outline
	fonts    map[string]string
	info     *semantic.DocumentInfo
}

type textCall struct {
	Text string
	X, Y float64
	Opts builder.TextOptions
}

type lineCall struct {
	X1, Y1, X2, Y2 float64
	Opts           builder.LineOptions
}

type rectCall struct {
	X, Y, W, H float64
	Opts       builder.RectOptions
}

type imageCall struct {
	Img        *semantic.Image
	X, Y, W, H float64
}

type linkCall struct {
	Rect semantic.Rectangle
	URI  string
}

type recordingPage struct {
	parent *recordingBuilder
	Texts  []textCall
	Lines  []lineCall
	Rects  []rectCall
	Images []imageCall
	Links  []linkCall
}

func newRecordingBuilder() *recordingBuilder {
	return &recordingBuilder{fonts: make(map[string]string)}
}

func (b *recordingBuilder) NewPage(w, h float64) builder.PageBuilder {
	p := &recordingPage{parent: b}
	b.pages = append(b.pages, p)
	return p
}

func (b *recordingBuilder) SetInfo(info *semantic.DocumentInfo) builder.PDFBuilder {
	b.info = info
	return b
}

func (b *recordingBuilder) AddOutline(out builder.Outline) builder.PDFBuilder {
	b.outlines = append(b.outlines, out)
	return b
}

func (b *recordingBuilder) RegisterFont(name, baseFont string) builder.PDFBuilder {
	b.fonts[name] = baseFont
	return b
}

func (b *recordingBuilder) PageCount() int { return len(b.pages) }

func (b *recordingBuilder) Build() (*semantic.Document, error) {
	doc := &semantic.Document{Info: b.info}
	for i := range b.pages {
		doc.Pages = append(doc.Pages, &semantic.Page{Index: i})
	}
	for _, out := range b.outlines {
		doc.Outlines = append(doc.Outlines, semantic.OutlineItem{
			Title:     out.Title,
			PageIndex: out.PageIndex,
			Y:         out.Y,
		})
	}
	return doc, nil
}

func (p *recordingPage) DrawText(text string, x, y float64, opts builder.TextOptions) builder.PageBuilder {
	p.Texts = append(p.Texts, textCall{Text: text, X: x, Y: y, Opts: opts})
	return p
}

func (p *recordingPage) DrawLine(x1, y1, x2, y2 float64, opts builder.LineOptions) builder.PageBuilder {
	p.Lines = append(p.Lines, lineCall{X1: x1, Y1: y1, X2: x2, Y2: y2, Opts: opts})
	return p
}

func (p *recordingPage) DrawRectangle(x, y, w, h float64, opts builder.RectOptions) builder.PageBuilder {
	p.Rects = append(p.Rects, rectCall{X: x, Y: y, W: w, H: h, Opts: opts})
	return p
}

func (p *recordingPage) DrawImage(img *semantic.Image, x, y, w, h float64) builder.PageBuilder {
	p.Images = append(p.Images, imageCall{Img: img, X: x, Y: y, W: w, H: h})
	return p
}

func (p *recordingPage) AddLink(rect semantic.Rectangle, uri string) builder.PageBuilder {
	p.Links = append(p.Links, linkCall{Rect: rect, URI: uri})
	return p
}

func (p *recordingPage) Finish() builder.PDFBuilder { return p.parent }

// allTexts flattens the drawn text across all pages, in order.
func (b *recordingBuilder) allTexts() []string {
	var out []string
	for _, p := range b.pages {
		for _, tc := range p.Texts {
			out = append(out, tc.Text)
		}
	}
	return out
}
