// Package markdown parses GitHub-flavored markdown into the flat element
// sequence the layout engine consumes. Block structure is flattened in
// document order; list nesting survives as an indent depth on each item.
package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/humaxai2025/Papercraft/element"
)

// Parser converts markdown source to elements. Safe for concurrent use.
type Parser struct {
	md goldmark.Markdown
}

// NewParser builds a Parser with the GFM extension set (tables,
// strikethrough, autolinks, task lists) plus footnotes.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
			),
		),
	}
}

// Parse returns the element sequence for source, in document order.
func (p *Parser) Parse(source []byte) ([]element.Element, error) {
	doc := p.md.Parser().Parse(text.NewReader(source))
	w := &walker{source: source}
	if err := w.walkBlocks(doc, 0); err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}
	return w.elements, nil
}

type walker struct {
	source   []byte
	elements []element.Element
}

func (w *walker) emit(el element.Element) {
	w.elements = append(w.elements, el)
}

func (w *walker) walkBlocks(node ast.Node, listDepth int) error {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Heading:
			w.emit(element.NewHeading(n.Level, w.inlineText(n)))
		case *ast.Paragraph:
			w.walkParagraph(n)
		case *ast.TextBlock:
			if t := w.inlineText(n); t != "" {
				w.emit(element.NewParagraph(t, w.uniformFormats(n)...))
			}
			w.emitInlineBlocks(n)
		case *ast.Blockquote:
			w.emit(element.NewBlockQuote(w.blockText(n)))
		case *ast.List:
			w.walkList(n, listDepth)
		case *ast.FencedCodeBlock:
			lang := string(n.Language(w.source))
			w.emit(element.NewCodeBlock(w.codeLines(n), lang))
		case *ast.CodeBlock:
			w.emit(element.NewCodeBlock(w.codeLines(n), ""))
		case *ast.ThematicBreak:
			w.emit(element.NewHorizontalRule())
		case *ast.HTMLBlock:
			if t := stripHTML(w.rawLines(n)); t != "" {
				w.emit(element.NewParagraph(t))
			}
		case *east.Table:
			w.walkTable(n)
		case *east.FootnoteList:
			w.walkFootnotes(n)
		default:
			if err := w.walkBlocks(child, listDepth); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkParagraph distinguishes the paragraph shapes that map to dedicated
// element kinds: a lone image becomes an Image element, a lone link a Link
// element, anything else a Paragraph followed by any embedded images.
func (w *walker) walkParagraph(n *ast.Paragraph) {
	if n.ChildCount() == 1 {
		switch only := n.FirstChild().(type) {
		case *ast.Image:
			w.emit(element.NewImage(string(only.Destination), w.inlineText(only)))
			return
		case *ast.Link:
			w.emit(element.NewLink(w.inlineText(only), string(only.Destination)))
			return
		case *ast.AutoLink:
			url := string(only.URL(w.source))
			w.emit(element.NewLink(url, url))
			return
		}
	}
	if t := w.inlineText(n); t != "" {
		w.emit(element.NewParagraph(t, w.uniformFormats(n)...))
	}
	w.emitInlineBlocks(n)
}

// emitInlineBlocks hoists inline nodes that render as standalone blocks,
// images and footnote references, out of their paragraph.
func (w *walker) emitInlineBlocks(n ast.Node) {
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch img := node.(type) {
		case *ast.Image:
			if n.ChildCount() != 1 || n.FirstChild() != node {
				w.emit(element.NewImage(string(img.Destination), w.inlineText(img)))
			}
		case *east.FootnoteLink:
			w.emit(element.NewFootnoteReference(fmt.Sprint(img.Index)))
		}
		return ast.WalkContinue, nil
	})
}

func (w *walker) walkList(n *ast.List, depth int) {
	ordinal := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			continue
		}
		checked, isTask := taskState(li)
		content := w.listItemText(li)
		switch {
		case isTask:
			w.emit(element.NewTaskItem(content, depth, checked))
		case n.IsOrdered():
			w.emit(element.NewOrderedItem(content, depth, ordinal))
		default:
			w.emit(element.NewBulletItem(content, depth))
		}
		// Nested lists inside the item flatten to deeper indent levels.
		for sub := li.FirstChild(); sub != nil; sub = sub.NextSibling() {
			if nested, ok := sub.(*ast.List); ok {
				w.walkList(nested, depth+1)
			}
		}
	}
}

// taskState reports whether the item carries a GFM task checkbox and its
// checked state.
func taskState(li *ast.ListItem) (checked, isTask bool) {
	first := li.FirstChild()
	if first == nil {
		return false, false
	}
	if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
		return box.IsChecked, true
	}
	return false, false
}

// listItemText extracts the item's own text, excluding nested sublists.
func (w *walker) listItemText(li *ast.ListItem) string {
	var parts []string
	for child := li.FirstChild(); child != nil; child = child.NextSibling() {
		if _, ok := child.(*ast.List); ok {
			continue
		}
		if t := w.inlineText(child); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func (w *walker) walkTable(n *east.Table) {
	data := &element.TableData{}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, w.inlineText(cell))
		}
		if _, ok := row.(*east.TableHeader); ok {
			data.Headers = cells
		} else {
			data.Rows = append(data.Rows, cells)
		}
	}
	w.emit(element.NewTable(data))
}

func (w *walker) walkFootnotes(n *east.FootnoteList) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		fn, ok := child.(*east.Footnote)
		if !ok {
			continue
		}
		w.emit(element.NewFootnote(fmt.Sprint(fn.Index), w.blockText(fn)))
	}
}

// codeLines returns the literal lines of a code block, joined.
func (w *walker) codeLines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// rawLines returns the raw source of an HTML block.
func (w *walker) rawLines(n *ast.HTMLBlock) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.source))
	}
	if n.HasClosure() {
		sb.Write(n.ClosureLine.Value(w.source))
	}
	return sb.String()
}

// blockText concatenates the text of all blocks under n, space-joined.
func (w *walker) blockText(n ast.Node) string {
	var parts []string
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t := w.inlineText(child); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// inlineText flattens the inline content of a node to plain text. Images
// contribute nothing here; links keep their text; raw inline HTML is
// stripped to its text content.
func (w *walker) inlineText(n ast.Node) string {
	var sb strings.Builder
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			switch c := child.(type) {
			case *ast.Text:
				sb.Write(c.Segment.Value(w.source))
				if c.SoftLineBreak() || c.HardLineBreak() {
					sb.WriteByte(' ')
				}
			case *ast.String:
				sb.Write(c.Value)
			case *ast.Image:
				// Hoisted separately.
			case *ast.AutoLink:
				sb.Write(c.URL(w.source))
			case *ast.RawHTML:
				var raw strings.Builder
				for i := 0; i < c.Segments.Len(); i++ {
					seg := c.Segments.At(i)
					raw.Write(seg.Value(w.source))
				}
				sb.WriteString(stripHTML(raw.String()))
			case *east.TaskCheckBox, *east.FootnoteLink:
				// Rendered as dedicated elements.
			default:
				walk(child)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// uniformFormats returns the inline formats when every piece of the node's
// text shares them: a paragraph wrapped entirely in emphasis or a code
// span. Mixed styling degrades to plain text.
func (w *walker) uniformFormats(n ast.Node) element.Formats {
	if n.ChildCount() != 1 {
		return nil
	}
	var formats element.Formats
	node := n.FirstChild()
	for node != nil {
		switch c := node.(type) {
		case *ast.Emphasis:
			if c.Level >= 2 {
				formats = append(formats, element.Bold)
			} else {
				formats = append(formats, element.Italic)
			}
		case *ast.CodeSpan:
			return append(formats, element.CodeSpan)
		case *east.Strikethrough:
			formats = append(formats, element.Strikethrough)
		default:
			return formats
		}
		if node.ChildCount() != 1 {
			return formats
		}
		node = node.FirstChild()
	}
	return formats
}
