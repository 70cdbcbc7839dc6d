package render

import (
	"github.com/humaxai2025/Papercraft/builder"
	"github.com/humaxai2025/Papercraft/element"
	"github.com/humaxai2025/Papercraft/metrics"
)

const (
	tableCellPadding     = 4 * mm
	tableMinRowHeight    = 15 * mm
	tableBorderThickness = 0.8
)

var (
	tableHeaderFill = builder.Color{R: 0.25, G: 0.35, B: 0.55}
	tableOddRowFill = builder.Color{R: 0.97, G: 0.98, B: 0.99}
	tableSoftLine   = builder.Color{R: 0.85, G: 0.85, B: 0.85}
	tableRowLine    = builder.Color{R: 0.90, G: 0.90, B: 0.90}
	white           = builder.Color{R: 1, G: 1, B: 1}
)

func (r *Renderer) renderTable(st *RenderState, el element.Element) {
	if el.Table == nil {
		return
	}
	st.Y -= 10 * mm
	height := r.drawTable(st, el.Table, r.layout.MarginLeft, st.Y, r.layout.ContentWidth())
	st.Y -= height + 10*mm
}

// drawTable lays out the table in two passes: first compute per-row heights
// from wrapped cell content, then draw chrome and cells. Returns the total
// table height.
func (r *Renderer) drawTable(st *RenderState, data *element.TableData, x, y, maxWidth float64) float64 {
	colCount := data.ColumnCount()
	if colCount == 0 {
		return 0
	}
	cellWidth := maxWidth / float64(colCount)
	textWidth := cellWidth - tableCellPadding*2
	size := r.sizes.Body
	lh := metrics.LineHeight(size)

	rowHeight := func(cells []string) float64 {
		maxLines := 1
		for _, cell := range cells {
			if n := len(metrics.WrapText(cell, textWidth, size)); n > maxLines {
				maxLines = n
			}
		}
		h := lh*float64(maxLines) + tableCellPadding*2
		if h < tableMinRowHeight {
			h = tableMinRowHeight
		}
		return h
	}

	var rowHeights []float64
	if len(data.Headers) > 0 {
		rowHeights = append(rowHeights, rowHeight(data.Headers))
	}
	for _, row := range data.Rows {
		rowHeights = append(rowHeights, rowHeight(row))
	}

	var totalHeight float64
	for _, h := range rowHeights {
		totalHeight += h
	}

	st.Page.DrawRectangle(x, y-totalHeight, maxWidth, totalHeight, builder.RectOptions{
		StrokeColor: r.colors.TableBorder,
		LineWidth:   tableBorderThickness * 1.5,
		Stroke:      true,
	})

	curY := y
	rowIndex := 0

	if len(data.Headers) > 0 {
		headerHeight := rowHeights[rowIndex]
		st.Page.DrawRectangle(x, curY-headerHeight, maxWidth, headerHeight, builder.RectOptions{
			FillColor: tableHeaderFill,
			Fill:      true,
		})
		for i, header := range data.Headers {
			cellX := x + cellWidth*float64(i)
			if i > 0 {
				st.Page.DrawLine(cellX, curY, cellX, curY-headerHeight, builder.LineOptions{
					StrokeColor: r.colors.TableBorder,
					LineWidth:   tableBorderThickness,
				})
			}
			r.drawTableCell(st, header, cellX, curY, textWidth, headerHeight, r.fonts.Bold, white, false)
		}
		curY -= headerHeight
		rowIndex++

		// Heavier divider under the header row.
		st.Page.DrawLine(x, curY, x+maxWidth, curY, builder.LineOptions{
			StrokeColor: r.colors.TableBorder,
			LineWidth:   tableBorderThickness * 2,
		})
	}

	for rowIdx, row := range data.Rows {
		h := rowHeights[rowIndex]
		if rowIdx%2 == 1 {
			st.Page.DrawRectangle(x, curY-h, maxWidth, h, builder.RectOptions{
				FillColor: tableOddRowFill,
				Fill:      true,
			})
		}
		for i, cell := range row {
			if i >= colCount {
				break
			}
			cellX := x + cellWidth*float64(i)
			if i > 0 {
				st.Page.DrawLine(cellX, curY, cellX, curY-h, builder.LineOptions{
					StrokeColor: tableSoftLine,
					LineWidth:   tableBorderThickness * 0.7,
				})
			}
			r.drawTableCell(st, cell, cellX, curY, textWidth, h, r.fonts.Regular, r.colors.Text, true)
		}
		curY -= h
		rowIndex++

		st.Page.DrawLine(x, curY, x+maxWidth, curY, builder.LineOptions{
			StrokeColor: tableRowLine,
			LineWidth:   tableBorderThickness * 0.5,
		})
	}

	return totalHeight
}

// drawTableCell wraps and draws one cell's text. Body cells are vertically
// centered within the row; header cells hang from the top padding.
func (r *Renderer) drawTableCell(st *RenderState, text string, cellX, rowTop, textWidth, rowHeight float64, font string, color builder.Color, center bool) {
	size := r.sizes.Body
	lh := metrics.LineHeight(size)
	lines := metrics.WrapText(text, textWidth, size)

	textY := rowTop - tableCellPadding - lh*0.8
	if center {
		blockHeight := lh * float64(len(lines))
		textY -= (rowHeight - blockHeight) / 2
	}
	for _, line := range lines {
		st.Page.DrawText(line, cellX+tableCellPadding, textY, builder.TextOptions{
			Font:     font,
			FontSize: size,
			Color:    color,
		})
		textY -= lh
	}
}
