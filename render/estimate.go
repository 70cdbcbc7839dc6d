package render

import (
	"math"
	"strings"

	"github.com/humaxai2025/Papercraft/element"
	"github.com/humaxai2025/Papercraft/metrics"
)

// Advisory per-kind heights used by the page count estimator. These are
// flat constants, not wrap-aware, so the estimate seeding "Page X of N"
// can legitimately differ from the real last page number.
var estimatedHeights = map[element.Kind]float64{
	element.Heading:        20 * mm,
	element.Paragraph:      15 * mm,
	element.ListItem:       8 * mm,
	element.TaskListItem:   8 * mm,
	element.BlockQuote:     20 * mm,
	element.Table:          50 * mm,
	element.CodeBlock:      30 * mm,
	element.Image:          100 * mm,
	element.HorizontalRule: 24 * mm,
}

const estimatedDefaultHeight = 10 * mm

// EstimatePages sums flat per-kind heights across all elements and divides
// by the usable page height, rounding up and flooring at one page.
func (r *Renderer) EstimatePages(elements []element.Element) int {
	var total float64
	for _, el := range elements {
		if h, ok := estimatedHeights[el.Kind]; ok {
			total += h
		} else {
			total += estimatedDefaultHeight
		}
	}
	pages := int(math.Ceil(total / r.layout.contentHeight()))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Conservative break-decision estimates for kinds whose real height is
// expensive or unknowable before drawing. Over-estimating keeps tables and
// images from being split across pages.
const (
	requiredTableHeight   = 60 * mm
	requiredImageHeight   = 120 * mm
	requiredDefaultHeight = 15 * mm
)

// requiredHeight returns the space that must remain on the page for el to
// be drawn there. Distinct from EstimatePages: this one gates page breaks
// and deliberately over-estimates.
func (r *Renderer) requiredHeight(el element.Element) float64 {
	switch el.Kind {
	case element.Heading:
		level := el.Level
		if level < 1 {
			level = 1
		}
		size := r.sizes.Heading(level)
		return metrics.HeadingSpacingBefore(level) + metrics.LineHeight(size) + metrics.HeadingSpacingAfter(level)
	case element.Paragraph:
		size := r.sizes.Body
		lines := metrics.WrapText(el.Content, r.layout.ContentWidth(), size)
		return metrics.LineHeight(size)*float64(len(lines)) + 8*mm
	case element.Table:
		return requiredTableHeight
	case element.Image:
		return requiredImageHeight
	case element.CodeBlock:
		n := len(strings.Split(strings.TrimRight(el.Content, "\n"), "\n"))
		return metrics.LineHeight(r.sizes.Code)*float64(n) + 20*mm
	default:
		return requiredDefaultHeight
	}
}
