package render

import "github.com/humaxai2025/Papercraft/builder"

// FontSystem names the font resources the renderer draws with. The names
// are page resource keys; the renderer registers them against the base-14
// Helvetica and Courier families.
type FontSystem struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
	Code       string
}

// DefaultFonts returns the standard resource naming.
func DefaultFonts() FontSystem {
	return FontSystem{
		Regular:    "F1",
		Bold:       "F2",
		Italic:     "F3",
		BoldItalic: "F4",
		Code:       "F5",
	}
}

// baseFonts maps resource names to their base-14 font names.
func (f FontSystem) baseFonts() map[string]string {
	return map[string]string{
		f.Regular:    "Helvetica",
		f.Bold:       "Helvetica-Bold",
		f.Italic:     "Helvetica-Oblique",
		f.BoldItalic: "Helvetica-BoldOblique",
		f.Code:       "Courier",
	}
}

// FontSizes holds the point sizes per element role.
type FontSizes struct {
	H1      float64
	H2      float64
	H3      float64
	H4      float64
	H5      float64
	H6      float64
	Body    float64
	Code    float64
	Small   float64
	Caption float64
}

// DefaultFontSizes returns the document type scale.
func DefaultFontSizes() FontSizes {
	return FontSizes{
		H1:      32,
		H2:      26,
		H3:      22,
		H4:      18,
		H5:      16,
		H6:      14,
		Body:    12,
		Code:    10,
		Small:   10,
		Caption: 11,
	}
}

// Heading returns the size for a heading level, clamping out-of-range
// levels to H6.
func (s FontSizes) Heading(level int) float64 {
	switch level {
	case 1:
		return s.H1
	case 2:
		return s.H2
	case 3:
		return s.H3
	case 4:
		return s.H4
	case 5:
		return s.H5
	default:
		return s.H6
	}
}

// ColorScheme holds the palette used across all element renderers.
type ColorScheme struct {
	Text             builder.Color
	Heading          builder.Color
	Code             builder.Color
	CodeBg           builder.Color
	BlockQuote       builder.Color
	BlockQuoteBorder builder.Color
	TableBorder      builder.Color
	TableHeader      builder.Color
	Link             builder.Color
}

// DefaultColors returns the stock palette.
func DefaultColors() ColorScheme {
	return ColorScheme{
		Text:             builder.Color{R: 0.15, G: 0.15, B: 0.15},
		Heading:          builder.Color{R: 0.05, G: 0.15, B: 0.3},
		Code:             builder.Color{R: 0.65, G: 0.15, B: 0.35},
		CodeBg:           builder.Color{R: 0.97, G: 0.97, B: 0.98},
		BlockQuote:       builder.Color{R: 0.35, G: 0.35, B: 0.4},
		BlockQuoteBorder: builder.Color{R: 0.3, G: 0.5, B: 0.8},
		TableBorder:      builder.Color{R: 0.6, G: 0.6, B: 0.65},
		TableHeader:      builder.Color{R: 0.05, G: 0.05, B: 0.1},
		Link:             builder.Color{R: 0.1, G: 0.35, B: 0.7},
	}
}
