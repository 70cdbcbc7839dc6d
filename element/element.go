// Package element defines the semantic units the layout engine consumes:
// one Element per block or inline unit of the source document, in document
// order. Elements are immutable once handed to the renderer.
package element

// Kind tags the closed set of element types.
type Kind int

const (
	Unknown Kind = iota
	Heading
	Paragraph
	ListItem
	TaskListItem
	BlockQuote
	Table
	Code
	CodeBlock
	Link
	Image
	HorizontalRule
	Footnote
	FootnoteReference
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case Heading:
		return "heading"
	case Paragraph:
		return "paragraph"
	case ListItem:
		return "list_item"
	case TaskListItem:
		return "task_list_item"
	case BlockQuote:
		return "block_quote"
	case Table:
		return "table"
	case Code:
		return "code"
	case CodeBlock:
		return "code_block"
	case Link:
		return "link"
	case Image:
		return "image"
	case HorizontalRule:
		return "horizontal_rule"
	case Footnote:
		return "footnote"
	case FootnoteReference:
		return "footnote_reference"
	default:
		return "unknown"
	}
}

// ListType distinguishes list flavors.
type ListType int

const (
	Bullet ListType = iota
	Ordered
	Task
)

// Format is an inline style marker.
type Format int

const (
	Bold Format = iota
	Italic
	Strikethrough
	CodeSpan
)

// Formats is the ordered set of active inline styles.
type Formats []Format

// Has reports whether f is in the set.
func (fs Formats) Has(f Format) bool {
	for _, v := range fs {
		if v == f {
			return true
		}
	}
	return false
}

// Element is one semantic unit. Only the fields relevant to its Kind are
// populated; use the constructors to keep that invariant.
type Element struct {
	Kind    Kind
	Content string

	// Heading fields.
	Level int

	// List fields.
	ListType     ListType
	OrderedStart int
	Checked      bool
	Indent       int

	// Link, Image and Footnote label field.
	URL string

	// Inline style markers for text-bearing kinds.
	Formats Formats

	// Code block language tag.
	Language string

	// Table payload.
	Table *TableData
}

// TableData holds a table's cells. Row lengths may vary; the renderer
// treats the column count as the maximum across the header and all rows and
// renders missing trailing cells blank.
type TableData struct {
	Headers []string
	Rows    [][]string
}

// ColumnCount returns max(len(Headers), longest row).
func (t *TableData) ColumnCount() int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// NewHeading builds a heading element at the given level (clamped 1-6 by
// the renderer, not here).
func NewHeading(level int, content string) Element {
	return Element{Kind: Heading, Level: level, Content: content}
}

// NewParagraph builds a paragraph element.
func NewParagraph(content string, formats ...Format) Element {
	return Element{Kind: Paragraph, Content: content, Formats: formats}
}

// NewBulletItem builds an unordered list item at the given nesting depth.
func NewBulletItem(content string, indent int) Element {
	return Element{Kind: ListItem, ListType: Bullet, Content: content, Indent: indent}
}

// NewOrderedItem builds an ordered list item. start is only honored on the
// item that opens a list.
func NewOrderedItem(content string, indent, start int) Element {
	return Element{Kind: ListItem, ListType: Ordered, Content: content, Indent: indent, OrderedStart: start}
}

// NewTaskItem builds a task list item.
func NewTaskItem(content string, indent int, checked bool) Element {
	return Element{Kind: TaskListItem, ListType: Task, Content: content, Indent: indent, Checked: checked}
}

// NewBlockQuote builds a block quote element.
func NewBlockQuote(content string) Element {
	return Element{Kind: BlockQuote, Content: content}
}

// NewTable builds a table element.
func NewTable(data *TableData) Element {
	return Element{Kind: Table, Table: data}
}

// NewCode builds an inline code element.
func NewCode(content string) Element {
	return Element{Kind: Code, Content: content}
}

// NewCodeBlock builds a fenced code block with an optional language tag.
func NewCodeBlock(content, language string) Element {
	return Element{Kind: CodeBlock, Content: content, Language: language}
}

// NewLink builds a standalone link element.
func NewLink(text, url string) Element {
	return Element{Kind: Link, Content: text, URL: url}
}

// NewImage builds an image element; content is the caption (may be empty).
func NewImage(url, caption string) Element {
	return Element{Kind: Image, URL: url, Content: caption}
}

// NewHorizontalRule builds a thematic break.
func NewHorizontalRule() Element {
	return Element{Kind: HorizontalRule}
}

// NewFootnote builds a footnote definition; label is the reference label.
func NewFootnote(label, content string) Element {
	return Element{Kind: Footnote, URL: label, Content: content}
}

// NewFootnoteReference builds an inline footnote marker.
func NewFootnoteReference(label string) Element {
	return Element{Kind: FootnoteReference, Content: label}
}
