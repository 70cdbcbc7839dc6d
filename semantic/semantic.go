// Package semantic holds the in-memory document model produced by the
// layout pass and consumed by the writer. It is deliberately small: pages,
// content operations, base-14 fonts, raster images, outlines and document
// info cover everything the layout engine emits.
package semantic

// Document is a finished, paginated document ready for serialization.
type Document struct {
	Pages    []*Page
	Info     *DocumentInfo
	Outlines []OutlineItem
	Lang     string
}

// Page is a single page: geometry, resources and a content stream.
type Page struct {
	Index       int
	MediaBox    Rectangle
	Resources   *Resources
	Contents    []ContentStream
	Annotations []Annotation
}

// Rectangle in PDF user space (lower-left, upper-right).
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rectangle) Width() float64 { return r.URX - r.LLX }

// Height returns the vertical extent of the rectangle.
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

// Resources maps resource names to fonts and image XObjects.
type Resources struct {
	Fonts    map[string]*Font
	XObjects map[string]*Image
}

// ContentStream is an ordered list of drawing operations.
type ContentStream struct {
	Operations []Operation
}

// Operation is one PDF content operator with its operands.
type Operation struct {
	Operator string
	Operands []Operand
}

// Operand is a type-safe operand value.
type Operand interface {
	operand()
}

// NumberOperand is a numeric operand.
type NumberOperand struct{ Value float64 }

func (NumberOperand) operand() {}

// NameOperand is a /Name operand.
type NameOperand struct{ Value string }

func (NameOperand) operand() {}

// StringOperand is a literal string operand.
type StringOperand struct{ Value []byte }

func (StringOperand) operand() {}

// ArrayOperand is an array of operands.
type ArrayOperand struct{ Values []Operand }

func (ArrayOperand) operand() {}

// Number wraps a float64 as an operand.
func Number(v float64) Operand { return NumberOperand{Value: v} }

// Name wraps a name as an operand.
func Name(v string) Operand { return NameOperand{Value: v} }

// Str wraps bytes as a literal string operand.
func Str(v []byte) Operand { return StringOperand{Value: v} }

// Font describes a base-14 (standard) font by its PostScript name.
// The layout engine never embeds font programs; width estimation is done
// by the metrics package, not from font data.
type Font struct {
	BaseFont string
}

// Image is a raster image XObject. Data holds either raw 8-bit RGB samples
// (Filter == "") or a complete JPEG stream (Filter == "DCTDecode").
type Image struct {
	Width       int
	Height      int
	Data        []byte
	Filter      string
	Interpolate bool
}

// Annotation is a clickable link region. Only URI link annotations are
// produced by the layout engine.
type Annotation struct {
	Rect Rectangle
	URI  string
}

// OutlineItem is a bookmark pointing at a page position.
type OutlineItem struct {
	Title     string
	PageIndex int
	Y         float64
	Children  []OutlineItem
}

// DocumentInfo carries the PDF info dictionary fields the engine sets.
type DocumentInfo struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
}
