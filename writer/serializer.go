package writer

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"sort"

	"github.com/humaxai2025/Papercraft/semantic"
)

type objEntry struct {
	num  int
	body []byte
}

type serializer struct {
	cfg  Config
	objs []objEntry
	next int
}

func newSerializer(cfg Config) *serializer {
	return &serializer{cfg: cfg, next: 1}
}

func (s *serializer) reserve() int {
	n := s.next
	s.next++
	return n
}

func (s *serializer) add(num int, body []byte) {
	s.objs = append(s.objs, objEntry{num: num, body: body})
}

func (s *serializer) serialize(doc *semantic.Document) ([]byte, error) {
	catalogNum := s.reserve()
	pagesNum := s.reserve()

	fontNums := s.buildFonts(doc)
	imageNums, err := s.buildImages(doc)
	if err != nil {
		return nil, err
	}

	pageNums := make([]int, len(doc.Pages))
	for i, p := range doc.Pages {
		contentNum, err := s.buildContent(p)
		if err != nil {
			return nil, err
		}
		annotNums := s.buildAnnotations(p)
		pageNums[i] = s.buildPage(p, pagesNum, contentNum, annotNums, fontNums, imageNums)
	}

	var kids bytes.Buffer
	kids.WriteByte('[')
	for i, n := range pageNums {
		if i > 0 {
			kids.WriteByte(' ')
		}
		fmt.Fprintf(&kids, "%d 0 R", n)
	}
	kids.WriteByte(']')
	s.add(pagesNum, []byte(fmt.Sprintf("<</Type /Pages /Count %d /Kids %s>>", len(pageNums), kids.Bytes())))

	outlineRef := s.buildOutlines(doc, pageNums)
	infoNum := s.buildInfo(doc)

	var catalog bytes.Buffer
	catalog.WriteString("<</Type /Catalog")
	fmt.Fprintf(&catalog, " /Pages %d 0 R", pagesNum)
	if outlineRef != 0 {
		fmt.Fprintf(&catalog, " /Outlines %d 0 R /PageMode /UseOutlines", outlineRef)
	}
	if doc.Lang != "" {
		fmt.Fprintf(&catalog, " /Lang %s", escapeLiteralString([]byte(doc.Lang)))
	}
	catalog.WriteString(">>")
	s.add(catalogNum, catalog.Bytes())

	return s.assemble(catalogNum, infoNum)
}

// buildFonts emits one Type1 font object per distinct base font and returns
// a base-font-name -> object-number map.
func (s *serializer) buildFonts(doc *semantic.Document) map[string]int {
	bases := make(map[string]bool)
	for _, p := range doc.Pages {
		if p.Resources == nil {
			continue
		}
		for _, f := range p.Resources.Fonts {
			bases[f.BaseFont] = true
		}
	}
	names := make([]string, 0, len(bases))
	for b := range bases {
		names = append(names, b)
	}
	sort.Strings(names)

	nums := make(map[string]int, len(names))
	for _, base := range names {
		num := s.reserve()
		s.add(num, []byte(fmt.Sprintf(
			"<</Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding>>", base)))
		nums[base] = num
	}
	return nums
}

// buildImages emits one XObject per distinct image and returns an
// image-pointer -> object-number map.
func (s *serializer) buildImages(doc *semantic.Document) (map[*semantic.Image]int, error) {
	nums := make(map[*semantic.Image]int)
	for _, p := range doc.Pages {
		if p.Resources == nil {
			continue
		}
		// Deterministic order within the page.
		names := make([]string, 0, len(p.Resources.XObjects))
		for n := range p.Resources.XObjects {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			img := p.Resources.XObjects[n]
			if _, done := nums[img]; done {
				continue
			}
			num, err := s.buildImage(img)
			if err != nil {
				return nil, err
			}
			nums[img] = num
		}
	}
	return nums, nil
}

func (s *serializer) buildImage(img *semantic.Image) (int, error) {
	data := img.Data
	filter := img.Filter
	if filter == "" && s.cfg.Compress {
		enc, err := flateEncode(data)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		data = enc
		filter = "FlateDecode"
	}
	var dict bytes.Buffer
	dict.WriteString("<</Type /XObject /Subtype /Image")
	fmt.Fprintf(&dict, " /Width %d /Height %d", img.Width, img.Height)
	dict.WriteString(" /ColorSpace /DeviceRGB /BitsPerComponent 8")
	if filter != "" {
		fmt.Fprintf(&dict, " /Filter /%s", filter)
	}
	if img.Interpolate {
		dict.WriteString(" /Interpolate true")
	}
	fmt.Fprintf(&dict, " /Length %d>>", len(data))

	num := s.reserve()
	var body bytes.Buffer
	body.Write(dict.Bytes())
	body.WriteString("\nstream\n")
	body.Write(data)
	body.WriteString("\nendstream")
	s.add(num, body.Bytes())
	return num, nil
}

func (s *serializer) buildContent(p *semantic.Page) (int, error) {
	var content bytes.Buffer
	for _, cs := range p.Contents {
		content.Write(serializeContentStream(cs))
	}
	data := content.Bytes()
	filter := ""
	if s.cfg.Compress {
		enc, err := flateEncode(data)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		data = enc
		filter = "FlateDecode"
	}

	num := s.reserve()
	var body bytes.Buffer
	fmt.Fprintf(&body, "<</Length %d", len(data))
	if filter != "" {
		fmt.Fprintf(&body, " /Filter /%s", filter)
	}
	body.WriteString(">>\nstream\n")
	body.Write(data)
	body.WriteString("\nendstream")
	s.add(num, body.Bytes())
	return num, nil
}

func (s *serializer) buildAnnotations(p *semantic.Page) []int {
	nums := make([]int, 0, len(p.Annotations))
	for _, a := range p.Annotations {
		num := s.reserve()
		var body bytes.Buffer
		body.WriteString("<</Type /Annot /Subtype /Link /Border [0 0 0]")
		fmt.Fprintf(&body, " /Rect [%s %s %s %s]",
			num2s(a.Rect.LLX), num2s(a.Rect.LLY), num2s(a.Rect.URX), num2s(a.Rect.URY))
		fmt.Fprintf(&body, " /A <</S /URI /URI %s>>", escapeLiteralString([]byte(a.URI)))
		body.WriteString(">>")
		s.add(num, body.Bytes())
		nums = append(nums, num)
	}
	return nums
}

func (s *serializer) buildPage(p *semantic.Page, parentNum, contentNum int, annotNums []int, fontNums map[string]int, imageNums map[*semantic.Image]int) int {
	num := s.reserve()
	var body bytes.Buffer
	body.WriteString("<</Type /Page")
	fmt.Fprintf(&body, " /Parent %d 0 R", parentNum)
	fmt.Fprintf(&body, " /MediaBox [%s %s %s %s]",
		num2s(p.MediaBox.LLX), num2s(p.MediaBox.LLY), num2s(p.MediaBox.URX), num2s(p.MediaBox.URY))
	fmt.Fprintf(&body, " /Contents %d 0 R", contentNum)

	body.WriteString(" /Resources <<")
	if p.Resources != nil && len(p.Resources.Fonts) > 0 {
		body.WriteString("/Font <<")
		names := make([]string, 0, len(p.Resources.Fonts))
		for n := range p.Resources.Fonts {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(&body, "/%s %d 0 R ", n, fontNums[p.Resources.Fonts[n].BaseFont])
		}
		body.WriteString(">> ")
	}
	if p.Resources != nil && len(p.Resources.XObjects) > 0 {
		body.WriteString("/XObject <<")
		names := make([]string, 0, len(p.Resources.XObjects))
		for n := range p.Resources.XObjects {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Fprintf(&body, "/%s %d 0 R ", n, imageNums[p.Resources.XObjects[n]])
		}
		body.WriteString(">> ")
	}
	body.WriteString(">>")

	if len(annotNums) > 0 {
		body.WriteString(" /Annots [")
		for i, n := range annotNums {
			if i > 0 {
				body.WriteByte(' ')
			}
			fmt.Fprintf(&body, "%d 0 R", n)
		}
		body.WriteString("]")
	}
	body.WriteString(">>")
	s.add(num, body.Bytes())
	return num
}

// buildOutlines emits the bookmark tree (flat list of siblings) and returns
// the root object number, or 0 when the document has no outlines.
func (s *serializer) buildOutlines(doc *semantic.Document, pageNums []int) int {
	if len(doc.Outlines) == 0 {
		return 0
	}
	rootNum := s.reserve()
	itemNums := make([]int, len(doc.Outlines))
	for i := range doc.Outlines {
		itemNums[i] = s.reserve()
	}
	for i, item := range doc.Outlines {
		var body bytes.Buffer
		body.WriteString("<<")
		fmt.Fprintf(&body, "/Title %s", escapeLiteralString([]byte(item.Title)))
		fmt.Fprintf(&body, " /Parent %d 0 R", rootNum)
		if i > 0 {
			fmt.Fprintf(&body, " /Prev %d 0 R", itemNums[i-1])
		}
		if i < len(itemNums)-1 {
			fmt.Fprintf(&body, " /Next %d 0 R", itemNums[i+1])
		}
		pageRef := pageNums[item.PageIndex]
		fmt.Fprintf(&body, " /Dest [%d 0 R /XYZ null %s null]", pageRef, num2s(item.Y))
		body.WriteString(">>")
		s.add(itemNums[i], body.Bytes())
	}
	s.add(rootNum, []byte(fmt.Sprintf(
		"<</Type /Outlines /First %d 0 R /Last %d 0 R /Count %d>>",
		itemNums[0], itemNums[len(itemNums)-1], len(itemNums))))
	return rootNum
}

func (s *serializer) buildInfo(doc *semantic.Document) int {
	if doc.Info == nil {
		return 0
	}
	var body bytes.Buffer
	body.WriteString("<<")
	writeInfoField(&body, "Title", doc.Info.Title)
	writeInfoField(&body, "Author", doc.Info.Author)
	writeInfoField(&body, "Subject", doc.Info.Subject)
	writeInfoField(&body, "Creator", doc.Info.Creator)
	writeInfoField(&body, "Producer", doc.Info.Producer)
	body.WriteString(">>")
	num := s.reserve()
	s.add(num, body.Bytes())
	return num
}

func writeInfoField(buf *bytes.Buffer, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(buf, "/%s %s ", key, escapeLiteralString([]byte(value)))
}

// assemble lays out the final byte stream: header, objects in number order,
// xref table and trailer.
func (s *serializer) assemble(catalogNum, infoNum int) ([]byte, error) {
	sort.Slice(s.objs, func(i, j int) bool { return s.objs[i].num < s.objs[j].num })

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	offsets := make(map[int]int, len(s.objs))
	for _, o := range s.objs {
		offsets[o.num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", o.num)
		buf.Write(o.body)
		buf.WriteString("\nendobj\n")
	}

	size := s.next
	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num < size; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}

	fmt.Fprintf(&buf, "trailer\n<</Size %d /Root %d 0 R", size, catalogNum)
	if infoNum != 0 {
		fmt.Fprintf(&buf, " /Info %d 0 R", infoNum)
	}
	buf.WriteString(">>\n")
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefStart)
	return buf.Bytes(), nil
}

func serializeContentStream(cs semantic.ContentStream) []byte {
	var buf bytes.Buffer
	for _, op := range cs.Operations {
		for i, operand := range op.Operands {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.Write(serializeOperand(operand))
		}
		if len(op.Operands) > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(op.Operator)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func serializeOperand(op semantic.Operand) []byte {
	switch v := op.(type) {
	case semantic.NumberOperand:
		return []byte(num2s(v.Value))
	case semantic.NameOperand:
		return []byte("/" + v.Value)
	case semantic.StringOperand:
		return escapeLiteralString(v.Value)
	case semantic.ArrayOperand:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, it := range v.Values {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.Write(serializeOperand(it))
		}
		buf.WriteByte(']')
		return buf.Bytes()
	default:
		return []byte("null")
	}
}

// num2s keeps the minimal decimal form, avoiding exponent notation which the
// PDF grammar does not allow.
func num2s(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = trimTrailingZeros(s)
	return s
}

func trimTrailingZeros(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	return s[:i]
}

func escapeLiteralString(raw []byte) []byte {
	var b bytes.Buffer
	b.WriteByte('(')
	for _, ch := range raw {
		switch ch {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		case '\t':
			b.WriteString("\\t")
		default:
			if ch < 0x20 {
				fmt.Fprintf(&b, "\\%03o", ch)
			} else {
				b.WriteByte(ch)
			}
		}
	}
	b.WriteByte(')')
	return b.Bytes()
}

// flateEncode produces the zlib-wrapped deflate stream FlateDecode expects.
func flateEncode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
