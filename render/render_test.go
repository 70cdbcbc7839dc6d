package render

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/humaxai2025/Papercraft/element"
	"github.com/humaxai2025/Papercraft/images"
)

func newTestRenderer(rb *recordingBuilder, opts ...Option) *Renderer {
	all := append([]Option{WithBuilder(rb), WithTitle("Test Doc"), WithBranding("brand")}, opts...)
	return New(all...)
}

var ordinalRe = regexp.MustCompile(`^\d+\.$`)

// drawnOrdinals extracts the ordered-list markers in draw order.
func drawnOrdinals(rb *recordingBuilder) []string {
	var out []string
	for _, text := range rb.allTexts() {
		if ordinalRe.MatchString(text) {
			out = append(out, text)
		}
	}
	return out
}

func TestOrderedCountersResetAfterList(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	ordered := func(content string) element.Element {
		return element.NewOrderedItem(content, 0, 0)
	}
	elements := []element.Element{
		ordered("first"),
		ordered("second"),
		ordered("third"),
		element.NewParagraph("break"),
		ordered("fresh first"),
		ordered("fresh second"),
	}
	if _, err := r.Render(elements); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []string{"1.", "2.", "3.", "1.", "2."}
	got := drawnOrdinals(rb)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ordinal markers mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderedCountersNested(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	elements := []element.Element{
		element.NewOrderedItem("a", 0, 0),
		element.NewOrderedItem("a.1", 1, 0),
		element.NewOrderedItem("a.2", 1, 0),
		element.NewOrderedItem("b", 0, 0),
		// Re-entering depth 1 restarts its counter.
		element.NewOrderedItem("b.1", 1, 0),
	}
	if _, err := r.Render(elements); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []string{"1.", "1.", "2.", "2.", "1."}
	got := drawnOrdinals(rb)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("nested ordinals mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderedStartHonored(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	elements := []element.Element{
		element.NewOrderedItem("five", 0, 5),
		element.NewOrderedItem("six", 0, 5),
	}
	if _, err := r.Render(elements); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []string{"5.", "6."}
	if diff := cmp.Diff(want, drawnOrdinals(rb)); diff != "" {
		t.Fatalf("start offset mismatch (-want +got):\n%s", diff)
	}
}

func TestTableColumnCountFromWidestRow(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	table := element.NewTable(&element.TableData{
		Headers: []string{"A", "B"},
		Rows: [][]string{
			{"x"},
			{"y", "z", "w"},
		},
	})
	if _, err := r.Render([]element.Element{table}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Widest row has three cells, so the grid is three columns wide.
	cellWidth := r.layout.ContentWidth() / 3
	wantX := r.layout.MarginLeft + 2*cellWidth + tableCellPadding

	page := rb.pages[0]
	var found bool
	for _, tc := range page.Texts {
		if tc.Text == "w" {
			found = true
			if !approx(tc.X, wantX) {
				t.Errorf("third column x = %f, want %f", tc.X, wantX)
			}
		}
	}
	if !found {
		t.Fatalf("cell %q was not drawn", "w")
	}

	// The short row leaves its missing columns blank rather than failing.
	for _, tc := range page.Texts {
		if tc.Text == "x" && !approx(tc.X, r.layout.MarginLeft+tableCellPadding) {
			t.Errorf("first column x = %f, want %f", tc.X, r.layout.MarginLeft+tableCellPadding)
		}
	}
}

func TestCheckPageBreakOpensNewPage(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	st := &RenderState{TotalPages: 2}
	r.newPage(st)
	if rb.PageCount() != 1 {
		t.Fatalf("PageCount = %d, want 1", rb.PageCount())
	}

	// Plenty of room: no break.
	st.Y = r.layout.ContentStartY()
	r.checkPageBreak(st, requiredTableHeight)
	if rb.PageCount() != 1 {
		t.Fatalf("unexpected break with full page available")
	}

	// Just above the floor: a table's reserved height cannot fit.
	st.Y = r.layout.floorY() + 5*mm
	r.checkPageBreak(st, requiredTableHeight)
	if rb.PageCount() != 2 {
		t.Fatalf("PageCount = %d, want 2 after break", rb.PageCount())
	}
	if st.PageNum != 2 {
		t.Errorf("PageNum = %d, want 2", st.PageNum)
	}
	if !approx(st.Y, r.layout.ContentStartY()) {
		t.Errorf("cursor = %f, want content start %f", st.Y, r.layout.ContentStartY())
	}
}

func TestLongDocumentPaginates(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	var elements []element.Element
	for i := 0; i < 40; i++ {
		elements = append(elements, element.NewParagraph(strings.Repeat("lorem ipsum dolor sit amet ", 6)))
	}
	doc, err := r.Render(elements)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(doc.Pages) < 2 {
		t.Fatalf("pages = %d, want at least 2", len(doc.Pages))
	}
}

type failingLoader struct{ err error }

func (l failingLoader) Load(ref string) (*images.Decoded, error) { return nil, l.err }

func TestImageFailureDrawsPlaceholder(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb, WithImageLoader(failingLoader{err: errors.New("connection refused")}))

	doc, err := r.Render([]element.Element{element.NewImage("https://example.com/missing.png", "cap")})
	if err != nil {
		t.Fatalf("Render returned error for failed image: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(doc.Pages))
	}

	page := rb.pages[0]
	var placeholder, message, detail bool
	for _, rc := range page.Rects {
		if rc.Opts.Fill && rc.Opts.FillColor.R == 0.95 {
			placeholder = true
		}
	}
	for _, tc := range page.Texts {
		if tc.Text == "Image not available" {
			message = true
		}
		if strings.HasPrefix(tc.Text, "Error: connection refused") {
			detail = true
		}
	}
	if !placeholder || !message || !detail {
		t.Fatalf("placeholder=%v message=%v detail=%v, want all true", placeholder, message, detail)
	}
}

func TestImageEmptyURLIsNoOp(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb, WithImageLoader(failingLoader{err: errors.New("should not be called")}))

	st := &RenderState{TotalPages: 1}
	r.newPage(st)
	before := st.Y
	r.renderImage(st, element.Element{Kind: element.Image})
	if st.Y != before {
		t.Fatalf("cursor moved for empty image reference")
	}
}

func TestJustifySingleWordMatchesPlain(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	st := &RenderState{TotalPages: 1}
	r.newPage(st)
	page := rb.pages[0]
	base := len(page.Texts)

	r.drawJustifiedLine(st, "solitary", 100, 500, 200, 12, r.fonts.Regular, r.colors.Text)
	if got := len(page.Texts) - base; got != 1 {
		t.Fatalf("draw calls = %d, want 1", got)
	}
	tc := page.Texts[base]
	if tc.Text != "solitary" || tc.X != 100 || tc.Y != 500 {
		t.Fatalf("single word placed at (%f, %f) as %q, want plain placement", tc.X, tc.Y, tc.Text)
	}
}

func TestJustifyFillsLineWidth(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	st := &RenderState{TotalPages: 1}
	r.newPage(st)
	page := rb.pages[0]
	base := len(page.Texts)

	const maxWidth = 300.0
	r.drawJustifiedLine(st, "alpha beta gamma", 100, 500, maxWidth, 12, r.fonts.Regular, r.colors.Text)
	calls := page.Texts[base:]
	if len(calls) != 3 {
		t.Fatalf("draw calls = %d, want one per word", len(calls))
	}
	for i := 1; i < len(calls); i++ {
		if calls[i].X <= calls[i-1].X {
			t.Fatalf("word %d at x=%f does not advance past %f", i, calls[i].X, calls[i-1].X)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	elements := []element.Element{
		element.NewHeading(1, "Title"),
		element.NewParagraph(strings.Repeat("deterministic output ", 30)),
		element.NewBulletItem("one", 0),
		element.NewBulletItem("two", 0),
		element.NewCodeBlock("package main\n\nfunc main() {}\n", "go"),
		element.NewHorizontalRule(),
	}

	render := func() (*recordingBuilder, int) {
		rb := newRecordingBuilder()
		r := newTestRenderer(rb)
		doc, err := r.Render(elements)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return rb, len(doc.Pages)
	}

	rb1, pages1 := render()
	rb2, pages2 := render()
	if pages1 != pages2 {
		t.Fatalf("page counts differ: %d vs %d", pages1, pages2)
	}
	if diff := cmp.Diff(rb1.allTexts(), rb2.allTexts()); diff != "" {
		t.Fatalf("text sequences differ between runs:\n%s", diff)
	}
}

func TestHeaderFooterOnEveryPage(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	var elements []element.Element
	for i := 0; i < 40; i++ {
		elements = append(elements, element.NewParagraph(strings.Repeat("body text ", 20)))
	}
	if _, err := r.Render(elements); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rb.PageCount() < 2 {
		t.Fatalf("want multiple pages, got %d", rb.PageCount())
	}

	for i, page := range rb.pages {
		var title, branding, pageNum bool
		for _, tc := range page.Texts {
			switch {
			case tc.Text == "Test Doc":
				title = true
			case tc.Text == "brand":
				branding = true
			case strings.HasPrefix(tc.Text, "Page "):
				pageNum = true
			}
		}
		if !title || !branding || !pageNum {
			t.Errorf("page %d chrome: title=%v branding=%v pageNum=%v", i+1, title, branding, pageNum)
		}
	}
}

func TestHeadingCreatesOutline(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	doc, err := r.Render([]element.Element{
		element.NewHeading(1, "Introduction"),
		element.NewHeading(2, "Details"),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(doc.Outlines) != 2 {
		t.Fatalf("outlines = %d, want 2", len(doc.Outlines))
	}
	if doc.Outlines[0].Title != "Introduction" || doc.Outlines[0].PageIndex != 0 {
		t.Errorf("first outline = %+v", doc.Outlines[0])
	}
}

func TestFootnotesRenderAsTrailingSection(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	if _, err := r.Render([]element.Element{
		element.NewParagraph("body"),
		element.NewFootnoteReference("1"),
		element.NewFootnote("1", "the cited source"),
	}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	texts := rb.allTexts()
	var heading, entry, marker bool
	for _, text := range texts {
		switch {
		case text == "References":
			heading = true
		case strings.HasPrefix(text, "[1]: the cited source"):
			entry = true
		case text == "[1]":
			marker = true
		}
	}
	if !heading || !entry || !marker {
		t.Fatalf("heading=%v entry=%v marker=%v, want all true", heading, entry, marker)
	}
}

func TestLinkAnnotation(t *testing.T) {
	rb := newRecordingBuilder()
	r := newTestRenderer(rb)

	if _, err := r.Render([]element.Element{element.NewLink("site", "https://example.com")}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	page := rb.pages[0]
	if len(page.Links) != 1 {
		t.Fatalf("links = %d, want 1", len(page.Links))
	}
	if page.Links[0].URI != "https://example.com" {
		t.Errorf("link URI = %q", page.Links[0].URI)
	}
	var visible bool
	for _, tc := range page.Texts {
		if tc.Text == "site (https://example.com)" {
			visible = true
		}
	}
	if !visible {
		t.Errorf("link text with URL suffix not drawn")
	}
}

func TestEstimatePagesFloorsAtOne(t *testing.T) {
	r := newTestRenderer(newRecordingBuilder())
	if got := r.EstimatePages(nil); got != 1 {
		t.Fatalf("EstimatePages(nil) = %d, want 1", got)
	}

	var many []element.Element
	for i := 0; i < 100; i++ {
		many = append(many, element.Element{Kind: element.Table})
	}
	if got := r.EstimatePages(many); got < 2 {
		t.Fatalf("EstimatePages(100 tables) = %d, want multiple pages", got)
	}
}

func TestRequiredHeightConservative(t *testing.T) {
	r := newTestRenderer(newRecordingBuilder())

	if got := r.requiredHeight(element.Element{Kind: element.Table}); got != requiredTableHeight {
		t.Errorf("table required height = %f, want %f", got, requiredTableHeight)
	}
	if got := r.requiredHeight(element.Element{Kind: element.Image}); got != requiredImageHeight {
		t.Errorf("image required height = %f, want %f", got, requiredImageHeight)
	}

	short := r.requiredHeight(element.NewParagraph("tiny"))
	long := r.requiredHeight(element.NewParagraph(strings.Repeat("long paragraph content ", 20)))
	if long <= short {
		t.Errorf("longer paragraph should require more space: %f <= %f", long, short)
	}
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}
