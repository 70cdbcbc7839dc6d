// Package builder exposes the drawing primitives the layout engine renders
// through: place a text run, draw a line, draw a rectangle, place an image.
// The interfaces are deliberately narrow so layout code can be exercised
// against a recording fake without any PDF serialization behind it.
package builder

import (
	"fmt"

	"github.com/humaxai2025/Papercraft/semantic"
)

// PDFBuilder accumulates pages and document-level state.
type PDFBuilder interface {
	NewPage(width, height float64) PageBuilder
	SetInfo(info *semantic.DocumentInfo) PDFBuilder
	AddOutline(out Outline) PDFBuilder
	RegisterFont(name, baseFont string) PDFBuilder
	PageCount() int
	Build() (*semantic.Document, error)
}

// PageBuilder draws onto a single page. Coordinates are PDF points with the
// origin at the lower-left corner.
type PageBuilder interface {
	DrawText(text string, x, y float64, opts TextOptions) PageBuilder
	DrawLine(x1, y1, x2, y2 float64, opts LineOptions) PageBuilder
	DrawRectangle(x, y, width, height float64, opts RectOptions) PageBuilder
	DrawImage(img *semantic.Image, x, y, width, height float64) PageBuilder
	AddLink(rect semantic.Rectangle, uri string) PageBuilder
	Finish() PDFBuilder
}

// TextOptions configures a text run.
type TextOptions struct {
	Font        string
	FontSize    float64
	Color       Color
	CharSpacing float64
	WordSpacing float64
	Rise        float64
}

// LineOptions configures a stroked line.
type LineOptions struct {
	StrokeColor Color
	LineWidth   float64
	DashPattern []float64
}

// RectOptions configures a rectangle. Defaults to stroke when neither fill
// nor stroke is set.
type RectOptions struct {
	StrokeColor Color
	FillColor   Color
	LineWidth   float64
	Fill        bool
	Stroke      bool
}

// Color is an RGB color with components in [0,1].
type Color struct {
	R, G, B float64
}

// Outline is a bookmark entry.
type Outline struct {
	Title     string
	PageIndex int
	Y         float64
}

// PaperSize names standard page dimensions in points.
type PaperSize struct {
	Width  float64
	Height float64
}

// Standard paper sizes.
var (
	A4     = PaperSize{Width: 595.28, Height: 841.89}
	Letter = PaperSize{Width: 612, Height: 792}
	Legal  = PaperSize{Width: 612, Height: 1008}
)

// Landscape returns the size rotated a quarter turn.
func (s PaperSize) Landscape() PaperSize {
	return PaperSize{Width: s.Height, Height: s.Width}
}

type builderImpl struct {
	pages    []*semantic.Page
	info     *semantic.DocumentInfo
	outlines []Outline
	fonts    map[string]*semantic.Font

	xobjectCount int
	xobjectNames map[*semantic.Image]string
}

type pageBuilderImpl struct {
	parent *builderImpl
	page   *semantic.Page
}

const (
	defaultFontResource = "F1"
	defaultBaseFont     = "Helvetica"
)

// NewBuilder constructs an empty PDFBuilder.
func NewBuilder() PDFBuilder {
	return &builderImpl{fonts: make(map[string]*semantic.Font)}
}

func (b *builderImpl) NewPage(w, h float64) PageBuilder {
	p := &semantic.Page{MediaBox: semantic.Rectangle{URX: w, URY: h}}
	b.pages = append(b.pages, p)
	return &pageBuilderImpl{parent: b, page: p}
}

func (b *builderImpl) SetInfo(info *semantic.DocumentInfo) PDFBuilder {
	b.info = info
	return b
}

func (b *builderImpl) AddOutline(out Outline) PDFBuilder {
	b.outlines = append(b.outlines, out)
	return b
}

func (b *builderImpl) RegisterFont(name, baseFont string) PDFBuilder {
	if name == "" || baseFont == "" {
		return b
	}
	b.fonts[name] = &semantic.Font{BaseFont: baseFont}
	return b
}

func (b *builderImpl) PageCount() int { return len(b.pages) }

func (b *builderImpl) Build() (*semantic.Document, error) {
	for i, p := range b.pages {
		p.Index = i
	}
	doc := &semantic.Document{
		Pages: b.pages,
		Info:  b.info,
	}
	for _, out := range b.outlines {
		if out.PageIndex < 0 || out.PageIndex >= len(b.pages) {
			return nil, fmt.Errorf("builder: outline %q references page %d of %d", out.Title, out.PageIndex, len(b.pages))
		}
		doc.Outlines = append(doc.Outlines, semantic.OutlineItem{
			Title:     out.Title,
			PageIndex: out.PageIndex,
			Y:         out.Y,
		})
	}
	return doc, nil
}

func (b *builderImpl) fontForName(name string) (*semantic.Font, string) {
	if name == "" {
		name = defaultFontResource
	}
	if f, ok := b.fonts[name]; ok {
		return f, name
	}
	f := &semantic.Font{BaseFont: defaultBaseFont}
	b.fonts[name] = f
	return f, name
}

func (b *builderImpl) imageName(img *semantic.Image) string {
	if b.xobjectNames == nil {
		b.xobjectNames = make(map[*semantic.Image]string)
	}
	if name, ok := b.xobjectNames[img]; ok {
		return name
	}
	b.xobjectCount++
	name := fmt.Sprintf("Im%d", b.xobjectCount)
	b.xobjectNames[img] = name
	return name
}

func (p *pageBuilderImpl) DrawText(text string, x, y float64, opts TextOptions) PageBuilder {
	ops := p.ensureContentOps()
	res := p.ensureResources()

	font, fontName := p.parent.fontForName(opts.Font)
	if _, ok := res.Fonts[fontName]; !ok {
		res.Fonts[fontName] = font
	}
	size := opts.FontSize
	if size <= 0 {
		size = 12
	}

	*ops = append(*ops, semantic.Operation{Operator: "BT"})
	*ops = append(*ops, semantic.Operation{
		Operator: "Tf",
		Operands: []semantic.Operand{semantic.Name(fontName), semantic.Number(size)},
	})
	if opts.CharSpacing != 0 {
		*ops = append(*ops, semantic.Operation{Operator: "Tc", Operands: []semantic.Operand{semantic.Number(opts.CharSpacing)}})
	}
	if opts.WordSpacing != 0 {
		*ops = append(*ops, semantic.Operation{Operator: "Tw", Operands: []semantic.Operand{semantic.Number(opts.WordSpacing)}})
	}
	if opts.Rise != 0 {
		*ops = append(*ops, semantic.Operation{Operator: "Ts", Operands: []semantic.Operand{semantic.Number(opts.Rise)}})
	}
	*ops = append(*ops, semantic.Operation{
		Operator: "Tm",
		Operands: []semantic.Operand{
			semantic.Number(1), semantic.Number(0),
			semantic.Number(0), semantic.Number(1),
			semantic.Number(x), semantic.Number(y),
		},
	})
	*ops = append(*ops, semantic.Operation{Operator: "rg", Operands: colorOperands(opts.Color)})
	*ops = append(*ops, semantic.Operation{
		Operator: "Tj",
		Operands: []semantic.Operand{semantic.Str(encodeWinAnsi(text))},
	})
	*ops = append(*ops, semantic.Operation{Operator: "ET"})
	return p
}

func (p *pageBuilderImpl) DrawLine(x1, y1, x2, y2 float64, opts LineOptions) PageBuilder {
	ops := p.ensureContentOps()
	*ops = append(*ops, semantic.Operation{Operator: "q"})
	*ops = append(*ops, semantic.Operation{Operator: "RG", Operands: colorOperands(opts.StrokeColor)})
	if opts.LineWidth > 0 {
		*ops = append(*ops, semantic.Operation{Operator: "w", Operands: []semantic.Operand{semantic.Number(opts.LineWidth)}})
	}
	if len(opts.DashPattern) > 0 {
		vals := make([]semantic.Operand, 0, len(opts.DashPattern))
		for _, v := range opts.DashPattern {
			vals = append(vals, semantic.Number(v))
		}
		*ops = append(*ops, semantic.Operation{
			Operator: "d",
			Operands: []semantic.Operand{semantic.ArrayOperand{Values: vals}, semantic.Number(0)},
		})
	}
	*ops = append(*ops, semantic.Operation{Operator: "m", Operands: []semantic.Operand{semantic.Number(x1), semantic.Number(y1)}})
	*ops = append(*ops, semantic.Operation{Operator: "l", Operands: []semantic.Operand{semantic.Number(x2), semantic.Number(y2)}})
	*ops = append(*ops, semantic.Operation{Operator: "S"})
	*ops = append(*ops, semantic.Operation{Operator: "Q"})
	return p
}

func (p *pageBuilderImpl) DrawRectangle(x, y, width, height float64, opts RectOptions) PageBuilder {
	if !opts.Fill && !opts.Stroke {
		opts.Stroke = true
	}
	ops := p.ensureContentOps()
	*ops = append(*ops, semantic.Operation{Operator: "q"})
	if opts.Fill {
		*ops = append(*ops, semantic.Operation{Operator: "rg", Operands: colorOperands(opts.FillColor)})
	}
	if opts.Stroke {
		*ops = append(*ops, semantic.Operation{Operator: "RG", Operands: colorOperands(opts.StrokeColor)})
		if opts.LineWidth > 0 {
			*ops = append(*ops, semantic.Operation{Operator: "w", Operands: []semantic.Operand{semantic.Number(opts.LineWidth)}})
		}
	}
	*ops = append(*ops, semantic.Operation{
		Operator: "re",
		Operands: []semantic.Operand{
			semantic.Number(x), semantic.Number(y),
			semantic.Number(width), semantic.Number(height),
		},
	})
	*ops = append(*ops, semantic.Operation{Operator: paintOperator(opts.Fill, opts.Stroke)})
	*ops = append(*ops, semantic.Operation{Operator: "Q"})
	return p
}

func (p *pageBuilderImpl) DrawImage(img *semantic.Image, x, y, width, height float64) PageBuilder {
	if img == nil {
		return p
	}
	res := p.ensureResources()
	name := p.parent.imageName(img)
	if _, exists := res.XObjects[name]; !exists {
		res.XObjects[name] = img
	}
	w := width
	if w == 0 {
		w = float64(img.Width)
	}
	h := height
	if h == 0 {
		h = float64(img.Height)
	}
	ops := p.ensureContentOps()
	*ops = append(*ops, semantic.Operation{Operator: "q"})
	*ops = append(*ops, semantic.Operation{
		Operator: "cm",
		Operands: []semantic.Operand{
			semantic.Number(w), semantic.Number(0),
			semantic.Number(0), semantic.Number(h),
			semantic.Number(x), semantic.Number(y),
		},
	})
	*ops = append(*ops, semantic.Operation{Operator: "Do", Operands: []semantic.Operand{semantic.Name(name)}})
	*ops = append(*ops, semantic.Operation{Operator: "Q"})
	return p
}

func (p *pageBuilderImpl) AddLink(rect semantic.Rectangle, uri string) PageBuilder {
	if uri == "" {
		return p
	}
	p.page.Annotations = append(p.page.Annotations, semantic.Annotation{Rect: rect, URI: uri})
	return p
}

func (p *pageBuilderImpl) Finish() PDFBuilder { return p.parent }

func (p *pageBuilderImpl) ensureResources() *semantic.Resources {
	if p.page.Resources == nil {
		p.page.Resources = &semantic.Resources{}
	}
	if p.page.Resources.Fonts == nil {
		p.page.Resources.Fonts = make(map[string]*semantic.Font)
	}
	if p.page.Resources.XObjects == nil {
		p.page.Resources.XObjects = make(map[string]*semantic.Image)
	}
	return p.page.Resources
}

func (p *pageBuilderImpl) ensureContentOps() *[]semantic.Operation {
	if len(p.page.Contents) == 0 {
		p.page.Contents = append(p.page.Contents, semantic.ContentStream{})
	}
	return &p.page.Contents[0].Operations
}

func colorOperands(c Color) []semantic.Operand {
	return []semantic.Operand{semantic.Number(c.R), semantic.Number(c.G), semantic.Number(c.B)}
}

func paintOperator(fill, stroke bool) string {
	switch {
	case fill && stroke:
		return "B"
	case fill:
		return "f"
	default:
		return "S"
	}
}

// encodeWinAnsi maps a UTF-8 string onto the WinAnsi code points the base-14
// fonts expose. Characters outside the encoding degrade to a close ASCII
// stand-in so list glyphs and typographic punctuation survive.
func encodeWinAnsi(text string) []byte {
	buf := make([]byte, 0, len(text))
	for _, r := range text {
		switch {
		case r < 0x80:
			buf = append(buf, byte(r))
		case r == '•': // bullet
			buf = append(buf, 0x95)
		case r == '–': // en dash
			buf = append(buf, 0x96)
		case r == '—': // em dash
			buf = append(buf, 0x97)
		case r == '‘':
			buf = append(buf, 0x91)
		case r == '’':
			buf = append(buf, 0x92)
		case r == '“':
			buf = append(buf, 0x93)
		case r == '”':
			buf = append(buf, 0x94)
		case r == '…': // ellipsis
			buf = append(buf, 0x85)
		case r <= 0xff:
			buf = append(buf, byte(r))
		default:
			if sub, ok := asciiFallback[r]; ok {
				buf = append(buf, sub...)
			} else {
				buf = append(buf, '?')
			}
		}
	}
	return buf
}

// asciiFallback substitutes glyphs the WinAnsi set lacks. List bullets and
// task-list boxes land here.
var asciiFallback = map[rune][]byte{
	'●': {0x95},          // black circle -> bullet
	'◦': {'o'},           // white bullet
	'▪': {0x95},          // small black square -> bullet
	'▫': {'-'},           // small white square
	'☐': {'[', ' ', ']'}, // unchecked box
	'☑': {'[', 'x', ']'}, // checked box
	'✓': {'x'},           // check mark
}
