package render

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/humaxai2025/Papercraft/builder"
	"github.com/humaxai2025/Papercraft/element"
	"github.com/humaxai2025/Papercraft/metrics"
)

const (
	codePadding       = 6 * mm
	codeGutterWidth   = 15 * mm
	codeAccentWidth   = 3 * mm
	gutterLineMinimum = 5
)

var (
	codePanelFill   = builder.Color{R: 0.96, G: 0.97, B: 0.98}
	codePanelBorder = builder.Color{R: 0.8, G: 0.82, B: 0.85}
	codeAccentFill  = builder.Color{R: 0.3, G: 0.4, B: 0.6}
	codeGutterFill  = builder.Color{R: 0.92, G: 0.93, B: 0.95}
	codeGutterText  = builder.Color{R: 0.6, G: 0.6, B: 0.6}
	codeKeyword     = builder.Color{R: 0.2, G: 0.3, B: 0.8}
	codeComment     = builder.Color{R: 0.5, G: 0.6, B: 0.5}
)

// lineClass is the decorative emphasis class for one source line.
type lineClass int

const (
	linePlain lineClass = iota
	lineKeyword
	lineComment
)

func (r *Renderer) renderCodeBlock(st *RenderState, el element.Element) {
	st.Y -= 10 * mm
	h := r.drawCodeBlock(st, el, r.layout.MarginLeft, st.Y, r.layout.ContentWidth())
	st.Y -= h + 10*mm
}

// drawCodeBlock renders the panel, accent bar, optional line-number gutter,
// and one text run per source line. Returns the height consumed.
func (r *Renderer) drawCodeBlock(st *RenderState, el element.Element, x, y, maxWidth float64) float64 {
	size := r.sizes.Code
	lh := metrics.LineHeight(size)
	lines := strings.Split(strings.TrimRight(el.Content, "\n"), "\n")
	withGutter := len(lines) > gutterLineMinimum

	panelHeight := lh*float64(len(lines)) + codePadding*2
	st.Page.DrawRectangle(x-codePadding, y+codePadding-panelHeight, maxWidth+codePadding*2, panelHeight, builder.RectOptions{
		FillColor:   codePanelFill,
		StrokeColor: codePanelBorder,
		LineWidth:   1,
		Fill:        true,
		Stroke:      true,
	})
	st.Page.DrawRectangle(x-codePadding, y+codePadding-panelHeight, codeAccentWidth, panelHeight, builder.RectOptions{
		FillColor: codeAccentFill,
		Fill:      true,
	})
	if withGutter {
		st.Page.DrawRectangle(x-codePadding+codeAccentWidth, y+codePadding-panelHeight, codeGutterWidth, panelHeight, builder.RectOptions{
			FillColor: codeGutterFill,
			Fill:      true,
		})
	}

	classify := r.lineClassifier(el.Language)

	textX := x + codePadding
	if withGutter {
		textX += codeGutterWidth + codeAccentWidth
	}
	curY := y
	for i, line := range lines {
		if withGutter {
			st.Page.DrawText(fmt.Sprintf("%3d", i+1), x+1*mm, curY, builder.TextOptions{
				Font:     r.fonts.Regular,
				FontSize: size * 0.85,
				Color:    codeGutterText,
			})
		}
		opts := builder.TextOptions{Font: r.fonts.Code, FontSize: size, Color: r.colors.Code}
		switch classify(line) {
		case lineKeyword:
			opts.Font = r.fonts.Bold
			opts.Color = codeKeyword
		case lineComment:
			opts.Font = r.fonts.Italic
			opts.Color = codeComment
		}
		st.Page.DrawText(line, textX, curY, opts)
		curY -= lh
	}

	return panelHeight
}

// lineClassifier picks the emphasis classifier: a lexer-backed one when
// highlighting is enabled and the language is known, otherwise the
// substring matcher.
func (r *Renderer) lineClassifier(language string) func(string) lineClass {
	if r.highlight && language != "" {
		if lexer := lexers.Get(language); lexer != nil {
			return func(line string) lineClass { return classifyWithLexer(lexer, line) }
		}
	}
	return classifyNaive
}

// classifyNaive is decorative pattern matching, not tokenization: lines
// containing declaration keywords get keyword emphasis, lines starting
// with a comment marker get comment emphasis.
func classifyNaive(line string) lineClass {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
		return lineComment
	}
	for _, kw := range []string{"fn ", "function ", "def ", "class ", "struct ", "impl "} {
		if strings.Contains(line, kw) {
			return lineKeyword
		}
	}
	return linePlain
}

// classifyWithLexer tokenizes a single line and reports comment emphasis
// when the first significant token is a comment, keyword emphasis when any
// token is a declaration keyword.
func classifyWithLexer(lexer chroma.Lexer, line string) lineClass {
	it, err := lexer.Tokenise(nil, line)
	if err != nil {
		return classifyNaive(line)
	}
	sawKeyword := false
	first := true
	for tok := it(); tok != chroma.EOF; tok = it() {
		if strings.TrimSpace(tok.Value) == "" {
			continue
		}
		if first && tok.Type.InCategory(chroma.Comment) {
			return lineComment
		}
		first = false
		if tok.Type == chroma.KeywordDeclaration || tok.Type == chroma.Keyword {
			sawKeyword = true
		}
	}
	if sawKeyword {
		return lineKeyword
	}
	return linePlain
}
