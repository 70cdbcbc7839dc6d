package render

import (
	"fmt"

	"github.com/humaxai2025/Papercraft/builder"
	"github.com/humaxai2025/Papercraft/metrics"
)

var (
	headerTitleColor = builder.Color{R: 0.2, G: 0.3, B: 0.5}
	chromeRuleColor  = builder.Color{R: 0.3, G: 0.4, B: 0.6}
)

// renderHeaderFooter draws the fixed page chrome: header title with an
// underline rule, and a footer with branding, a rule, and "Page X of N".
// Called once per page, before any body content.
func (r *Renderer) renderHeaderFooter(st *RenderState) {
	l := r.layout

	headerY := l.Height - l.MarginTop + 8*mm
	st.Page.DrawText(r.title, l.MarginLeft, headerY, builder.TextOptions{
		Font:     r.fonts.Bold,
		FontSize: r.sizes.Small,
		Color:    headerTitleColor,
	})
	st.Page.DrawLine(l.MarginLeft, headerY-4*mm, l.Width-l.MarginRight, headerY-4*mm, builder.LineOptions{
		StrokeColor: chromeRuleColor,
		LineWidth:   1,
	})

	footerY := l.MarginBottom - 3*mm
	st.Page.DrawLine(l.MarginLeft, footerY+5*mm, l.Width-l.MarginRight, footerY+5*mm, builder.LineOptions{
		StrokeColor: chromeRuleColor,
		LineWidth:   1,
	})

	pageText := fmt.Sprintf("Page %d of %d", st.PageNum, st.TotalPages)
	pageWidth := metrics.TextWidth(pageText, r.sizes.Small)
	st.Page.DrawText(pageText, l.Width-l.MarginRight-pageWidth, footerY, builder.TextOptions{
		Font:     r.fonts.Regular,
		FontSize: r.sizes.Small,
		Color:    r.colors.Text,
	})
	st.Page.DrawText(r.branding, l.MarginLeft, footerY, builder.TextOptions{
		Font:     r.fonts.Italic,
		FontSize: r.sizes.Small * 0.85,
		Color:    r.colors.BlockQuote,
	})
}
