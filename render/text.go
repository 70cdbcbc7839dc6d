package render

import (
	"fmt"
	"strings"

	"github.com/humaxai2025/Papercraft/builder"
	"github.com/humaxai2025/Papercraft/element"
	"github.com/humaxai2025/Papercraft/metrics"
	"github.com/humaxai2025/Papercraft/semantic"
)

// bulletGlyphs per nesting depth; deeper levels clamp to the last glyph.
var bulletGlyphs = []string{"●", "◦", "▪", "▫"}

var bulletColor = builder.Color{R: 0.3, G: 0.4, B: 0.6}

func (r *Renderer) renderHeading(st *RenderState, el element.Element) {
	level := el.Level
	if level < 1 {
		level = 1
	}
	size := r.sizes.Heading(level)
	st.Y -= metrics.HeadingSpacingBefore(level)

	r.b.AddOutline(builder.Outline{
		Title:     el.Content,
		PageIndex: r.b.PageCount() - 1,
		Y:         st.Y,
	})

	lines := metrics.WrapText(el.Content, r.layout.ContentWidth(), size)
	lh := metrics.LineHeight(size)
	y := st.Y
	for _, line := range lines {
		st.Page.DrawText(line, r.layout.MarginLeft, y, builder.TextOptions{
			Font:     r.fonts.Bold,
			FontSize: size,
			Color:    r.colors.Heading,
		})
		y -= lh
	}

	// Underline the top two levels, sized to the first line.
	if level <= 2 {
		underlineY := y + 2*mm
		width := metrics.TextWidth(lines[0], size)
		st.Page.DrawLine(r.layout.MarginLeft, underlineY, r.layout.MarginLeft+width, underlineY, builder.LineOptions{
			StrokeColor: r.colors.Heading,
			LineWidth:   0.5,
		})
	}

	st.Y -= lh*float64(len(lines)) + metrics.HeadingSpacingAfter(level)
}

func (r *Renderer) renderParagraph(st *RenderState, el element.Element) {
	spacing := metrics.ParagraphSpacing(r.sizes.Body)
	st.Y -= spacing
	h := r.renderFormattedText(st, el.Content, r.layout.MarginLeft, st.Y, r.layout.ContentWidth(), true, el.Formats, r.sizes.Body)
	st.Y -= h + spacing
}

// renderFormattedText wraps and draws text with the font variant and color
// implied by formats, optionally justifying every line but the last.
// Returns the vertical space consumed.
func (r *Renderer) renderFormattedText(st *RenderState, text string, x, y, maxWidth float64, justify bool, formats element.Formats, size float64) float64 {
	lh := metrics.LineHeight(size)
	lines := metrics.WrapText(text, maxWidth, size)

	font := r.fontFor(formats)
	color := r.colors.Text
	if formats.Has(element.CodeSpan) {
		color = r.colors.Code
	}

	curY := y
	for i, line := range lines {
		lastLine := i == len(lines)-1
		if justify && !lastLine && len(lines) > 1 {
			r.drawJustifiedLine(st, line, x, curY, maxWidth, size, font, color)
		} else {
			st.Page.DrawText(line, x, curY, builder.TextOptions{Font: font, FontSize: size, Color: color})
		}
		if formats.Has(element.Strikethrough) {
			strikeY := curY + size*0.3
			width := metrics.TextWidth(line, size)
			st.Page.DrawLine(x, strikeY, x+width, strikeY, builder.LineOptions{StrokeColor: color, LineWidth: 0.5})
		}
		curY -= lh
	}
	return lh * float64(len(lines))
}

// drawJustifiedLine redistributes inter-word spacing so the line fills
// maxWidth exactly. Lines of one word or with no slack fall back to plain
// placement.
func (r *Renderer) drawJustifiedLine(st *RenderState, line string, x, y, maxWidth, size float64, font string, color builder.Color) {
	words := strings.Fields(line)
	opts := builder.TextOptions{Font: font, FontSize: size, Color: color}
	if len(words) <= 1 {
		st.Page.DrawText(line, x, y, opts)
		return
	}
	wordsWidth := metrics.TextWidth(strings.Join(words, ""), size)
	slack := maxWidth - wordsWidth
	if slack <= 0 {
		st.Page.DrawText(line, x, y, opts)
		return
	}
	gap := slack / float64(len(words)-1)
	curX := x
	for _, word := range words {
		st.Page.DrawText(word, curX, y, opts)
		curX += metrics.TextWidth(word, size) + gap
	}
}

const (
	listIndentStep  = 16 * mm
	listBulletWidth = 12 * mm
)

func (r *Renderer) renderListItem(st *RenderState, el element.Element) {
	size := r.sizes.Body
	lh := metrics.LineHeight(size)
	indent := listIndentStep * float64(el.Indent)

	var bullet string
	switch {
	case el.Kind == element.TaskListItem:
		if el.Checked {
			bullet = "☑"
		} else {
			bullet = "☐"
		}
	case el.ListType == element.Ordered:
		bullet = fmt.Sprintf("%d.", st.nextOrdinal(el.Indent, el.OrderedStart))
	default:
		glyph := el.Indent
		if glyph >= len(bulletGlyphs) {
			glyph = len(bulletGlyphs) - 1
		}
		bullet = bulletGlyphs[glyph]
	}

	st.Page.DrawText(bullet, r.layout.MarginLeft+indent, st.Y+lh*0.15, builder.TextOptions{
		Font:     r.fonts.Bold,
		FontSize: size,
		Color:    bulletColor,
	})

	textX := r.layout.MarginLeft + indent + listBulletWidth
	textWidth := r.layout.ContentWidth() - indent - listBulletWidth - 4*mm
	h := r.renderFormattedText(st, el.Content, textX, st.Y, textWidth, false, el.Formats, size)
	st.Y -= h + 3*mm
}

func (r *Renderer) renderBlockQuote(st *RenderState, el element.Element) {
	st.Y -= 8 * mm

	size := r.sizes.Body * 0.95
	const (
		borderWidth = 4 * mm
		paddingLeft = 12 * mm
		paddingV    = 6 * mm
		bgPadding   = 8 * mm
	)
	textX := r.layout.MarginLeft + borderWidth + paddingLeft
	textWidth := r.layout.ContentWidth() - borderWidth - paddingLeft - bgPadding

	lines := metrics.WrapText(el.Content, textWidth, size)
	lh := metrics.LineHeight(size)
	totalHeight := lh*float64(len(lines)) + paddingV*2

	st.Page.DrawRectangle(r.layout.MarginLeft, st.Y-totalHeight, r.layout.ContentWidth(), totalHeight, builder.RectOptions{
		FillColor: builder.Color{R: 0.98, G: 0.98, B: 0.99},
		Fill:      true,
	})

	// Thick left border plus a thin accent line beside it.
	st.Page.DrawLine(
		r.layout.MarginLeft+borderWidth/2, st.Y+1*mm,
		r.layout.MarginLeft+borderWidth/2, st.Y-totalHeight+1*mm,
		builder.LineOptions{StrokeColor: r.colors.BlockQuoteBorder, LineWidth: borderWidth})
	st.Page.DrawLine(
		r.layout.MarginLeft+borderWidth+1*mm, st.Y+1*mm,
		r.layout.MarginLeft+borderWidth+1*mm, st.Y-totalHeight+1*mm,
		builder.LineOptions{StrokeColor: builder.Color{R: 0.6, G: 0.75, B: 0.9}, LineWidth: 1})

	// Leading quotation glyph.
	st.Page.DrawText("\"", r.layout.MarginLeft+borderWidth+2*mm, st.Y-2*mm, builder.TextOptions{
		Font:     r.fonts.Italic,
		FontSize: size * 1.8,
		Color:    builder.Color{R: 0.7, G: 0.7, B: 0.75},
	})

	formats := append(element.Formats{element.Italic}, el.Formats...)
	r.renderFormattedText(st, el.Content, textX, st.Y-paddingV, textWidth, false, formats, size)

	st.Y -= totalHeight + 4*mm + 8*mm
}

func (r *Renderer) renderInlineCode(st *RenderState, el element.Element) {
	size := r.sizes.Code
	st.Page.DrawText("`"+el.Content+"`", r.layout.MarginLeft, st.Y, builder.TextOptions{
		Font:     r.fonts.Code,
		FontSize: size,
		Color:    r.colors.Code,
	})
	st.Y -= metrics.LineHeight(size) + 2*mm
}

func (r *Renderer) renderLink(st *RenderState, el element.Element) {
	text := el.Content
	if el.URL != "" {
		text = fmt.Sprintf("%s (%s)", el.Content, el.URL)
	}
	size := r.sizes.Body
	st.Page.DrawText(text, r.layout.MarginLeft, st.Y, builder.TextOptions{
		Font:     r.fonts.Regular,
		FontSize: size,
		Color:    r.colors.Link,
	})
	width := metrics.TextWidth(text, size)
	st.Page.DrawLine(r.layout.MarginLeft, st.Y-2*mm, r.layout.MarginLeft+width, st.Y-2*mm, builder.LineOptions{
		StrokeColor: r.colors.Link,
		LineWidth:   0.5,
	})
	if el.URL != "" {
		st.Page.AddLink(semantic.Rectangle{
			LLX: r.layout.MarginLeft,
			LLY: st.Y - 2*mm,
			URX: r.layout.MarginLeft + width,
			URY: st.Y + size,
		}, el.URL)
	}
	st.Y -= metrics.LineHeight(size) + 2*mm
}

// renderFootnoteReference draws the inline marker slightly raised; it does
// not advance the cursor.
func (r *Renderer) renderFootnoteReference(st *RenderState, el element.Element) {
	st.Page.DrawText("["+el.Content+"]", r.layout.MarginLeft, st.Y+2*mm, builder.TextOptions{
		Font:     r.fonts.Regular,
		FontSize: r.sizes.Small,
		Color:    r.colors.Link,
	})
}

func (r *Renderer) renderHorizontalRule(st *RenderState) {
	st.Y -= 16 * mm

	ruleWidth := r.layout.ContentWidth() * 0.8
	ruleX := r.layout.MarginLeft + (r.layout.ContentWidth()-ruleWidth)/2
	ruleColor := builder.Color{R: 0.4, G: 0.5, B: 0.7}

	st.Page.DrawLine(ruleX, st.Y, ruleX+ruleWidth, st.Y, builder.LineOptions{
		StrokeColor: ruleColor,
		LineWidth:   1.5,
	})
	capOpts := builder.TextOptions{Font: r.fonts.Regular, FontSize: r.sizes.Small, Color: ruleColor}
	st.Page.DrawText("●", ruleX-4*mm, st.Y+1*mm, capOpts)
	st.Page.DrawText("●", ruleX+ruleWidth+1*mm, st.Y+1*mm, capOpts)

	st.Y -= 16 * mm
}

// flushFootnotes renders the deferred footnote definitions as a trailing
// labeled section.
func (r *Renderer) flushFootnotes(st *RenderState) {
	if len(st.footnotes) == 0 {
		return
	}
	r.checkPageBreak(st, 40*mm)
	st.Y -= 24 * mm

	st.Page.DrawLine(r.layout.MarginLeft, st.Y, r.layout.MarginLeft+r.layout.ContentWidth()*0.3, st.Y, builder.LineOptions{
		StrokeColor: r.colors.Text,
		LineWidth:   1,
	})
	st.Y -= 8 * mm

	st.Page.DrawText("References", r.layout.MarginLeft, st.Y, builder.TextOptions{
		Font:     r.fonts.Bold,
		FontSize: r.sizes.H6,
		Color:    r.colors.Heading,
	})
	st.Y -= 12 * mm

	for _, fn := range st.footnotes {
		if fn.URL == "" {
			continue
		}
		text := fmt.Sprintf("[%s]: %s", fn.URL, fn.Content)
		lines := metrics.WrapText(text, r.layout.ContentWidth(), r.sizes.Body)
		needed := metrics.LineHeight(r.sizes.Body)*float64(len(lines)) + 4*mm
		r.checkPageBreak(st, needed)
		h := r.renderFormattedText(st, text, r.layout.MarginLeft, st.Y, r.layout.ContentWidth(), false, nil, r.sizes.Body)
		st.Y -= h + 4*mm
	}
}
