package acparser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"acdoc/pkg/model"
)

// docLexer splits the body of a doc comment into tags and text. Only the
// recognized tags split; any other backslash stays part of the text.
var docLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "File", Pattern: `\\file\b`},
	{Name: "Tag", Pattern: `\\(?:author|brief|bug|date|details|end|note|see|since|todo|version|warning)\b`},
	{Name: "Text", Pattern: `[^\\]+`},
	{Name: "Backslash", Pattern: `\\`},
})

var (
	docSymbols = docLexer.Symbols()
	docFile    = docSymbols["File"]
	docTag     = docSymbols["Tag"]
)

// DocComment is the parsed form of one doc comment.
type DocComment struct {
	File    string
	Entries []model.DocEntry
}

// ParseDocComment parses a `/** ... */` block. The body must open with
// `\file <name>`; each following tag runs until the next tag or the end of
// the block. `\end` closes the current tag and is not stored.
func ParseDocComment(comment string) (*DocComment, error) {
	body := strings.TrimPrefix(comment, "/**")
	body = strings.TrimSuffix(body, "*/")

	lex, err := docLexer.LexString("", body)
	if err != nil {
		return nil, errors.Wrap(err, "starting doc lexer")
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrap(err, "lexing doc comment")
	}

	doc := &DocComment{}
	var (
		tag     string
		text    strings.Builder
		started bool
	)
	flush := func() {
		switch {
		case !started:
		case tag == "file":
			doc.File = strings.Trim(text.String(), " \t\r\n")
		case tag != "end":
			doc.Entries = append(doc.Entries, model.DocEntry{Tag: tag, Text: strings.TrimSpace(text.String())})
		}
		text.Reset()
	}

	for _, t := range raw {
		switch {
		case t.EOF():
			flush()
		case t.Type == docFile && !started:
			started = true
			tag = "file"
		case t.Type == docTag && started:
			flush()
			tag = t.Value[1:]
		case !started:
			if strings.TrimSpace(t.Value) != "" {
				return nil, errors.Errorf(`doc comment must start with \file, got %q`, strings.TrimSpace(t.Value))
			}
		default:
			text.WriteString(t.Value)
		}
	}
	if !started {
		return nil, errors.New(`doc comment has no \file tag`)
	}
	if doc.File == "" {
		return nil, errors.New(`doc comment has an empty \file tag`)
	}
	return doc, nil
}
