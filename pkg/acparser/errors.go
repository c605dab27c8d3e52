package acparser

import (
	"fmt"
	"strings"
)

// SyntaxError is a fatal grammar failure. Line and Column are computed from
// the absolute byte offset of the failure.
type SyntaxError struct {
	File    string
	Offset  int
	Line    int
	Column  int
	Msg     string
	Snippet string
}

func (e *SyntaxError) Error() string {
	loc := fmt.Sprintf("line %d, column %d", e.Line, e.Column)
	if e.File != "" {
		loc = e.File + ": " + loc
	}
	if e.Snippet == "" {
		return fmt.Sprintf("%s: %s", loc, e.Msg)
	}
	return fmt.Sprintf("%s: %s\n  |> %s", loc, e.Msg, e.Snippet)
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	before := src[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - (strings.LastIndexByte(before, '\n') + 1) + 1
	return line, col
}

// newSyntaxError builds a SyntaxError for offset in src, with the source
// line as snippet.
func newSyntaxError(file, src string, offset int, format string, args ...any) *SyntaxError {
	line, col := lineCol(src, offset)
	lines := strings.Split(src, "\n")
	snippet := "<source unavailable>"
	if line-1 < len(lines) {
		snippet = strings.TrimSpace(lines[line-1])
	}
	return &SyntaxError{
		File:    file,
		Offset:  offset,
		Line:    line,
		Column:  col,
		Msg:     fmt.Sprintf(format, args...),
		Snippet: snippet,
	}
}
