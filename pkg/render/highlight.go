package render

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

type span struct {
	start, end int
	color      string
}

func (s span) overlaps(start, end int) bool {
	return start < s.end && end > s.start
}

// Highlighter styles source lines one at a time. The only state carried
// between lines is whether a block comment is still open.
//
// Per line: an open block comment styles the whole line. Otherwise a block
// comment opening on the line is styled up to its close (or to the end of
// the line, leaving the comment open). Without a block comment, a line
// comment and then the first string literal before it are styled. Last,
// the first keyword in table order whose first occurrence lies outside the
// styled spans is styled. At most one keyword per line.
type Highlighter struct {
	inComment bool
}

// InComment reports whether a block comment is open at the end of the last
// line.
func (h *Highlighter) InComment() bool { return h.inComment }

// Line returns line as escaped HTML with the styled spans applied.
func (h *Highlighter) Line(line string) string {
	if h.inComment {
		if strings.Contains(line, "*/") {
			h.inComment = false
		}
		return font(commentColor, line)
	}

	var spans []span
	c := strings.Index(line, "/*")
	if c >= 0 {
		if d := strings.Index(line[c+2:], "*/"); d >= 0 {
			spans = append(spans, span{c, c + 2 + d + 2, commentColor})
		} else {
			spans = append(spans, span{c, len(line), commentColor})
			h.inComment = true
		}
	}

	l := -1
	if c < 0 {
		l = strings.Index(line, "//")
		if l >= 0 {
			spans = append(spans, span{l, len(line), commentColor})
		}

		if s := strings.Index(line, `"`); s >= 0 && (l < 0 || s < l) {
			limit := len(line)
			if l >= 0 {
				limit = l
			}
			end := limit
			if t := strings.Index(line[s+1:limit], `"`); t >= 0 {
				end = s + 1 + t + 1
			}
			spans = append(spans, span{s, end, stringColor})
		}
	}

	for _, k := range keywords {
		i := strings.Index(line, k.word)
		if i < 0 || overlapsAny(spans, i, i+len(k.word)) {
			continue
		}
		spans = append(spans, span{i, i + len(k.word), k.color})
		break
	}

	return apply(line, spans)
}

func overlapsAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if s.overlaps(start, end) {
			return true
		}
	}
	return false
}

func font(color, text string) string {
	return `<font color="` + color + `">` + html.EscapeString(text) + `</font>`
}

// apply emits line with every span wrapped in its colour. Spans never
// overlap.
func apply(line string, spans []span) string {
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	var b strings.Builder
	pos := 0
	for _, s := range spans {
		b.WriteString(html.EscapeString(line[pos:s.start]))
		b.WriteString(font(s.color, line[s.start:s.end]))
		pos = s.end
	}
	b.WriteString(html.EscapeString(line[pos:]))
	return b.String()
}
