package render

import (
	"strings"
)

// SourceIndex maps declaration keys to the first line of one source file
// that contains every literal of the key. A key is an ordered list of
// literals, usually the declaring keyword and the symbol name.
type SourceIndex struct {
	Page  string // generated source page the links point into
	lines map[string]int
}

func joinKey(parts []string) string {
	return strings.Join(parts, "\x00")
}

// NewSourceIndex resolves every key against lines in one pass over the
// file. Keys that match nothing are simply absent.
func NewSourceIndex(page string, lines []string, keys [][]string) *SourceIndex {
	idx := &SourceIndex{Page: page, lines: make(map[string]int)}

	pending := make([][]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if len(k) == 0 {
			continue
		}
		jk := joinKey(k)
		if seen[jk] {
			continue
		}
		seen[jk] = true
		pending = append(pending, k)
	}

	for n, line := range lines {
		if len(pending) == 0 {
			break
		}
		rest := pending[:0]
		for _, k := range pending {
			if containsAll(line, k) {
				idx.lines[joinKey(k)] = n + 1
				continue
			}
			rest = append(rest, k)
		}
		pending = rest
	}
	return idx
}

func containsAll(line string, parts []string) bool {
	for _, p := range parts {
		if !strings.Contains(line, p) {
			return false
		}
	}
	return true
}

// Line returns the 1-based line resolved for key.
func (s *SourceIndex) Line(key ...string) (int, bool) {
	if s == nil {
		return 0, false
	}
	n, ok := s.lines[joinKey(key)]
	return n, ok
}

// Link returns the "see source" link for key, or "" on a miss.
func (s *SourceIndex) Link(key ...string) string {
	n, ok := s.Line(key...)
	if !ok {
		return ""
	}
	return sourceLinkHTML(s.Page, n)
}

// splitLines breaks src into lines without their terminators. A final
// newline does not start an extra line.
func splitLines(src []byte) []string {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
