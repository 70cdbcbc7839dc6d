// Package metrics estimates text dimensions without a shaping engine.
// The same width function is used both to choose wrap points and to decide
// overflow and justification, which keeps pagination self-consistent: a line
// the wrapper accepts is by construction a line the renderer considers
// in-bounds.
package metrics

import "strings"

// Length conversion: millimetres to PDF points.
const mm = 72.0 / 25.4

// avgCharWidthRatio is the empirical average glyph width of the Helvetica
// family relative to the font size.
const avgCharWidthRatio = 0.52

// headingSizeThreshold separates heading-sized text (tighter leading) from
// body text.
const headingSizeThreshold = 16.0

// TextWidth estimates the rendered width of text at fontSize, in points.
// Per-character classes approximate Helvetica proportions: narrow glyphs
// count half, wide glyphs 1.3, spaces 0.6 of the average width.
func TextWidth(text string, fontSize float64) float64 {
	avg := fontSize * avgCharWidthRatio
	var w float64
	for _, r := range text {
		switch r {
		case 'i', 'l', 'j', '!', '|', '.', ',', ':', ';':
			w += avg * 0.5
		case 'm', 'w', 'M', 'W':
			w += avg * 1.3
		case 't', 'f', 'r':
			w += avg * 0.7
		case ' ':
			w += avg * 0.6
		default:
			w += avg
		}
	}
	return w
}

// LineHeight returns the vertical advance for one line at fontSize: 1.3x for
// heading-sized text, 1.5x for body text.
func LineHeight(fontSize float64) float64 {
	multiplier := 1.5
	if fontSize > headingSizeThreshold {
		multiplier = 1.3
	}
	return fontSize * multiplier
}

// ParagraphSpacing returns the blank space inserted before and after a
// paragraph at fontSize.
func ParagraphSpacing(fontSize float64) float64 {
	return fontSize
}

// Spacing tables for headings, by level 1-6. Values decrease monotonically
// with depth; levels beyond 6 clamp to the last entry.
var (
	headingSpacingBefore = [6]float64{24 * mm, 20 * mm, 16 * mm, 14 * mm, 12 * mm, 10 * mm}
	headingSpacingAfter  = [6]float64{16 * mm, 14 * mm, 12 * mm, 10 * mm, 8 * mm, 6 * mm}
)

// HeadingSpacingBefore returns the fixed space above a heading of the given
// level.
func HeadingSpacingBefore(level int) float64 {
	return headingTable(headingSpacingBefore, level)
}

// HeadingSpacingAfter returns the fixed space below a heading of the given
// level.
func HeadingSpacingAfter(level int) float64 {
	return headingTable(headingSpacingAfter, level)
}

func headingTable(table [6]float64, level int) float64 {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return table[level-1]
}

// WrapText greedily wraps text so that no line exceeds maxWidth as measured
// by TextWidth. A single word wider than maxWidth is hard-split character by
// character across as many lines as needed. The result always has at least
// one line: empty or whitespace-only input yields exactly one empty line.
func WrapText(text string, maxWidth, fontSize float64) []string {
	var lines []string
	var current string

	for _, word := range strings.Fields(text) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if TextWidth(test, fontSize) <= maxWidth {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		if TextWidth(word, fontSize) > maxWidth {
			current = splitLongWord(word, maxWidth, fontSize, &lines)
		} else {
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// splitLongWord breaks an oversized word into maxWidth-sized chunks,
// appending all full chunks to lines and returning the remainder.
func splitLongWord(word string, maxWidth, fontSize float64, lines *[]string) string {
	var remaining string
	for _, r := range word {
		test := remaining + string(r)
		if TextWidth(test, fontSize) <= maxWidth {
			remaining = test
			continue
		}
		if remaining != "" {
			*lines = append(*lines, remaining)
		}
		remaining = string(r)
	}
	return remaining
}
