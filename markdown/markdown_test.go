package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/humaxai2025/Papercraft/element"
)

func parse(t *testing.T, src string) []element.Element {
	t.Helper()
	elements, err := NewParser().Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return elements
}

func kinds(elements []element.Element) []element.Kind {
	out := make([]element.Kind, len(elements))
	for i, el := range elements {
		out[i] = el.Kind
	}
	return out
}

func TestParseHeadings(t *testing.T) {
	elements := parse(t, "# First\n\n## Second\n\n###### Sixth\n")
	if len(elements) != 3 {
		t.Fatalf("elements = %d, want 3", len(elements))
	}
	for i, want := range []struct {
		level   int
		content string
	}{
		{1, "First"}, {2, "Second"}, {6, "Sixth"},
	} {
		el := elements[i]
		if el.Kind != element.Heading || el.Level != want.level || el.Content != want.content {
			t.Errorf("element %d = %+v, want level %d content %q", i, el, want.level, want.content)
		}
	}
}

func TestParseParagraphFormats(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		content string
		formats element.Formats
	}{
		{"plain", "just text\n", "just text", nil},
		{"bold", "**all bold**\n", "all bold", element.Formats{element.Bold}},
		{"italic", "*all italic*\n", "all italic", element.Formats{element.Italic}},
		{"strikethrough", "~~gone~~\n", "gone", element.Formats{element.Strikethrough}},
		{"codespan", "`run()`\n", "run()", element.Formats{element.CodeSpan}},
		{"mixed stays plain", "some **bold** words\n", "some bold words", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			elements := parse(t, tc.src)
			if len(elements) != 1 || elements[0].Kind != element.Paragraph {
				t.Fatalf("elements = %+v, want one paragraph", elements)
			}
			if elements[0].Content != tc.content {
				t.Errorf("content = %q, want %q", elements[0].Content, tc.content)
			}
			if diff := cmp.Diff(tc.formats, elements[0].Formats); diff != "" {
				t.Errorf("formats mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSoftBreakJoinsLines(t *testing.T) {
	elements := parse(t, "line one\nline two\n")
	if len(elements) != 1 {
		t.Fatalf("elements = %d, want 1", len(elements))
	}
	if elements[0].Content != "line one line two" {
		t.Errorf("content = %q", elements[0].Content)
	}
}

func TestParseNestedLists(t *testing.T) {
	src := "- top\n  - middle\n    - deep\n- top two\n"
	elements := parse(t, src)
	want := []struct {
		content string
		indent  int
	}{
		{"top", 0}, {"middle", 1}, {"deep", 2}, {"top two", 0},
	}
	if len(elements) != len(want) {
		t.Fatalf("elements = %d, want %d", len(elements), len(want))
	}
	for i, w := range want {
		el := elements[i]
		if el.Kind != element.ListItem || el.ListType != element.Bullet {
			t.Errorf("element %d kind = %v listType = %v", i, el.Kind, el.ListType)
		}
		if el.Content != w.content || el.Indent != w.indent {
			t.Errorf("element %d = %q indent %d, want %q indent %d", i, el.Content, el.Indent, w.content, w.indent)
		}
	}
}

func TestParseOrderedListStart(t *testing.T) {
	elements := parse(t, "3. third\n4. fourth\n")
	if len(elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(elements))
	}
	for i, el := range elements {
		if el.ListType != element.Ordered {
			t.Errorf("element %d listType = %v", i, el.ListType)
		}
		if el.OrderedStart != 3 {
			t.Errorf("element %d OrderedStart = %d, want 3", i, el.OrderedStart)
		}
	}
}

func TestParseTaskList(t *testing.T) {
	elements := parse(t, "- [x] done\n- [ ] pending\n")
	if len(elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(elements))
	}
	if elements[0].Kind != element.TaskListItem || !elements[0].Checked || elements[0].Content != "done" {
		t.Errorf("first item = %+v", elements[0])
	}
	if elements[1].Kind != element.TaskListItem || elements[1].Checked || elements[1].Content != "pending" {
		t.Errorf("second item = %+v", elements[1])
	}
}

func TestParseBlockQuote(t *testing.T) {
	elements := parse(t, "> quoted wisdom\n> continues here\n")
	if len(elements) != 1 || elements[0].Kind != element.BlockQuote {
		t.Fatalf("elements = %+v, want one blockquote", elements)
	}
	if elements[0].Content != "quoted wisdom continues here" {
		t.Errorf("content = %q", elements[0].Content)
	}
}

func TestParseFencedCodeBlock(t *testing.T) {
	src := "```go\npackage main\n\nfunc main() {}\n```\n"
	elements := parse(t, src)
	if len(elements) != 1 || elements[0].Kind != element.CodeBlock {
		t.Fatalf("elements = %+v, want one code block", elements)
	}
	if elements[0].Language != "go" {
		t.Errorf("language = %q, want go", elements[0].Language)
	}
	if elements[0].Content != "package main\n\nfunc main() {}" {
		t.Errorf("content = %q", elements[0].Content)
	}
}

func TestParseIndentedCodeBlock(t *testing.T) {
	elements := parse(t, "    indented code\n")
	if len(elements) != 1 || elements[0].Kind != element.CodeBlock {
		t.Fatalf("elements = %+v, want one code block", elements)
	}
	if elements[0].Language != "" {
		t.Errorf("language = %q, want empty", elements[0].Language)
	}
}

func TestParseTable(t *testing.T) {
	src := "| Name | Age |\n|------|-----|\n| Ada | 36 |\n| Alan | 41 |\n"
	elements := parse(t, src)
	if len(elements) != 1 || elements[0].Kind != element.Table {
		t.Fatalf("elements = %+v, want one table", elements)
	}
	want := &element.TableData{
		Headers: []string{"Name", "Age"},
		Rows:    [][]string{{"Ada", "36"}, {"Alan", "41"}},
	}
	if diff := cmp.Diff(want, elements[0].Table); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStandaloneImage(t *testing.T) {
	elements := parse(t, "![diagram](assets/arch.png)\n")
	if len(elements) != 1 || elements[0].Kind != element.Image {
		t.Fatalf("elements = %+v, want one image", elements)
	}
	if elements[0].URL != "assets/arch.png" || elements[0].Content != "diagram" {
		t.Errorf("image = %+v", elements[0])
	}
}

func TestParseEmbeddedImageHoisted(t *testing.T) {
	elements := parse(t, "before ![pic](i.png) after\n")
	got := kinds(elements)
	want := []element.Kind{element.Paragraph, element.Image}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if elements[0].Content != "before  after" && elements[0].Content != "before after" {
		t.Errorf("paragraph content = %q", elements[0].Content)
	}
	if elements[1].URL != "i.png" {
		t.Errorf("image URL = %q", elements[1].URL)
	}
}

func TestParseStandaloneLink(t *testing.T) {
	elements := parse(t, "[the site](https://example.com)\n")
	if len(elements) != 1 || elements[0].Kind != element.Link {
		t.Fatalf("elements = %+v, want one link", elements)
	}
	if elements[0].Content != "the site" || elements[0].URL != "https://example.com" {
		t.Errorf("link = %+v", elements[0])
	}
}

func TestParseAutoLink(t *testing.T) {
	elements := parse(t, "https://example.com/page\n")
	if len(elements) != 1 || elements[0].Kind != element.Link {
		t.Fatalf("elements = %+v, want one link", elements)
	}
	if elements[0].URL != "https://example.com/page" {
		t.Errorf("URL = %q", elements[0].URL)
	}
}

func TestParseHorizontalRule(t *testing.T) {
	elements := parse(t, "above\n\n---\n\nbelow\n")
	got := kinds(elements)
	want := []element.Kind{element.Paragraph, element.HorizontalRule, element.Paragraph}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFootnotes(t *testing.T) {
	src := "claim[^1]\n\n[^1]: supporting source\n"
	elements := parse(t, src)
	got := kinds(elements)
	want := []element.Kind{element.Paragraph, element.FootnoteReference, element.Footnote}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if elements[1].Content != "1" {
		t.Errorf("reference label = %q, want 1", elements[1].Content)
	}
	if elements[2].URL != "1" || elements[2].Content != "supporting source" {
		t.Errorf("footnote = %+v", elements[2])
	}
}

func TestParseHTMLBlockStripped(t *testing.T) {
	elements := parse(t, "<div>\n<p>visible text</p>\n</div>\n")
	if len(elements) != 1 || elements[0].Kind != element.Paragraph {
		t.Fatalf("elements = %+v, want one paragraph", elements)
	}
	if elements[0].Content != "visible text" {
		t.Errorf("content = %q, want %q", elements[0].Content, "visible text")
	}
}

func TestParseInlineHTMLStripped(t *testing.T) {
	elements := parse(t, "keep <b>this</b> word\n")
	if len(elements) != 1 {
		t.Fatalf("elements = %d, want 1", len(elements))
	}
	if got := elements[0].Content; got != "keep this word" {
		t.Errorf("content = %q, want %q", got, "keep this word")
	}
}

func TestParseEmptyInput(t *testing.T) {
	elements := parse(t, "")
	if len(elements) != 0 {
		t.Fatalf("elements = %+v, want none", elements)
	}
}

func TestParseDocumentOrder(t *testing.T) {
	src := `# Title

Intro paragraph.

- item one
- item two

> a quote

| H |
|---|
| c |

` + "```\ncode\n```\n"
	got := kinds(parse(t, src))
	want := []element.Kind{
		element.Heading,
		element.Paragraph,
		element.ListItem,
		element.ListItem,
		element.BlockQuote,
		element.Table,
		element.CodeBlock,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}
