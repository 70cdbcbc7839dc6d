package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// stripHTML reduces a raw HTML fragment to its visible text content.
// Script and style contents are dropped; adjacent text runs are joined
// with single spaces.
func stripHTML(fragment string) string {
	tok := html.NewTokenizer(strings.NewReader(fragment))
	var parts []string
	skipDepth := 0
	for {
		switch tok.Next() {
		case html.ErrorToken:
			return strings.Join(parts, " ")
		case html.StartTagToken:
			name, _ := tok.TagName()
			if skippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			if skippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			if t := strings.TrimSpace(string(tok.Text())); t != "" {
				parts = append(parts, t)
			}
		}
	}
}

func skippedTag(name string) bool {
	return name == "script" || name == "style"
}
