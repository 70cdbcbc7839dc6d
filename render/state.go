package render

import (
	"github.com/humaxai2025/Papercraft/builder"
	"github.com/humaxai2025/Papercraft/element"
)

// RenderState is the mutable layout state threaded through one render pass:
// the active page surface, the vertical cursor, page numbering, list
// nesting, and the deferred footnote queue. One value per document; never
// shared across passes.
type RenderState struct {
	Page       builder.PageBuilder
	Y          float64
	PageNum    int
	TotalPages int

	// List nesting. counters holds the next ordinal per nesting depth for
	// ordered lists; depth equals the innermost active indent plus one.
	inList   bool
	counters []int

	footnotes []element.Element
}

// enterList records the transition into list context. Returns true when
// this item opened the list, so the caller applies pre-list spacing once.
func (s *RenderState) enterList() bool {
	if s.inList {
		return false
	}
	s.inList = true
	return true
}

// leaveList records the transition out of list context and clears the
// counter stack. Returns true when a list was actually open.
func (s *RenderState) leaveList() bool {
	if !s.inList {
		return false
	}
	s.inList = false
	s.counters = s.counters[:0]
	return true
}

// nextOrdinal returns the counter value for an ordered item at the given
// indent depth and advances it. Growing to a new depth seeds the counter
// with start (or 1); shrinking discards deeper counters.
func (s *RenderState) nextOrdinal(indent, start int) int {
	if indent < 0 {
		indent = 0
	}
	for len(s.counters) <= indent {
		seed := 1
		if len(s.counters) == indent && start > 0 {
			seed = start
		}
		s.counters = append(s.counters, seed)
	}
	s.counters = s.counters[:indent+1]
	n := s.counters[indent]
	s.counters[indent]++
	return n
}

// queueFootnote defers a footnote definition to the trailing section.
func (s *RenderState) queueFootnote(el element.Element) {
	s.footnotes = append(s.footnotes, el)
}
