package render

import (
	"fmt"

	"github.com/humaxai2025/Papercraft/builder"
	"github.com/humaxai2025/Papercraft/element"
	"github.com/humaxai2025/Papercraft/images"
	"github.com/humaxai2025/Papercraft/metrics"
	"github.com/humaxai2025/Papercraft/observability"
)

const (
	imageMaxHeight     = 180 * mm
	imageWidthFraction = 0.85

	placeholderHeight        = 60 * mm
	placeholderWidthFraction = 0.7
)

// renderImage places a centered, aspect-fit image with an optional caption
// below it. Any load or decode failure degrades to a placeholder box; it
// never aborts the document.
func (r *Renderer) renderImage(st *RenderState, el element.Element) {
	if el.URL == "" {
		return
	}
	st.Y -= 16 * mm

	contentWidth := r.layout.ContentWidth()
	maxWidth := contentWidth * imageWidthFraction

	decoded, err := r.loader.Load(el.URL)
	if err != nil {
		r.log.Warn("image load failed",
			observability.String("ref", el.URL),
			observability.Error("err", err))
		r.renderImagePlaceholder(st, err)
		return
	}

	w, h := images.FitBox(decoded.Width, decoded.Height, maxWidth, imageMaxHeight)
	x := r.layout.MarginLeft + (contentWidth-w)/2
	st.Page.DrawImage(decoded.Embed(), x, st.Y-h, w, h)

	if el.Content != "" {
		captionSize := r.sizes.Caption
		caption := "Figure: " + el.Content
		captionY := st.Y - h - 8*mm
		captionWidth := metrics.TextWidth(caption, captionSize)
		st.Page.DrawText(caption, r.layout.MarginLeft+(contentWidth-captionWidth)/2, captionY, builder.TextOptions{
			Font:     r.fonts.Italic,
			FontSize: captionSize,
			Color:    r.colors.BlockQuote,
		})
		st.Y = captionY - metrics.LineHeight(captionSize) - 12*mm
	} else {
		st.Y -= h + 16*mm
	}
}

func (r *Renderer) renderImagePlaceholder(st *RenderState, cause error) {
	contentWidth := r.layout.ContentWidth()
	width := contentWidth * placeholderWidthFraction
	x := r.layout.MarginLeft + (contentWidth-width)/2

	st.Page.DrawRectangle(x, st.Y-placeholderHeight, width, placeholderHeight, builder.RectOptions{
		FillColor:   builder.Color{R: 0.95, G: 0.95, B: 0.95},
		StrokeColor: builder.Color{R: 0.8, G: 0.8, B: 0.8},
		LineWidth:   1,
		Fill:        true,
		Stroke:      true,
	})
	st.Page.DrawText("Image not available", x+8*mm, st.Y-20*mm, builder.TextOptions{
		Font:     r.fonts.Bold,
		FontSize: r.sizes.Body,
		Color:    r.colors.BlockQuote,
	})
	st.Page.DrawText("Error: "+truncate(cause.Error(), 50), x+8*mm, st.Y-35*mm, builder.TextOptions{
		Font:     r.fonts.Italic,
		FontSize: r.sizes.Small,
		Color:    r.colors.BlockQuote,
	})

	st.Y -= placeholderHeight + 16*mm
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return fmt.Sprintf("%s...", string(runes[:n]))
}
