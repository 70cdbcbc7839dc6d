package render

// Length conversion: millimetres to PDF points.
const mm = 72.0 / 25.4

// PageLayout fixes the page geometry in points. Content flows top-down
// between the header band and the footer band.
type PageLayout struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
	HeaderHeight float64
	FooterHeight float64
}

// DefaultLayout returns an A4 portrait layout with generous margins.
func DefaultLayout() PageLayout {
	return PageLayout{
		Width:        210 * mm,
		Height:       297 * mm,
		MarginTop:    30 * mm,
		MarginBottom: 30 * mm,
		MarginLeft:   25 * mm,
		MarginRight:  25 * mm,
		HeaderHeight: 18 * mm,
		FooterHeight: 18 * mm,
	}
}

// ContentWidth is the horizontal span available to content.
func (l PageLayout) ContentWidth() float64 {
	return l.Width - l.MarginLeft - l.MarginRight
}

// ContentStartY is the baseline where content starts on a fresh page.
func (l PageLayout) ContentStartY() float64 {
	return l.Height - l.MarginTop - l.HeaderHeight
}

// breakMargin is extra clearance kept above the footer when deciding page
// breaks.
const breakMargin = 10 * mm

// floorY is the lowest cursor position content may occupy.
func (l PageLayout) floorY() float64 {
	return l.MarginBottom + l.FooterHeight + breakMargin
}

// contentHeight is the usable vertical span per page, used by the page
// count estimator.
func (l PageLayout) contentHeight() float64 {
	return l.ContentStartY() - l.MarginBottom - l.FooterHeight
}
