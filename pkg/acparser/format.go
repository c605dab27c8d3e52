package acparser

import (
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"acdoc/pkg/model"
)

// formatLexer tokenizes the body of an ac_format string.
//
//	formatStr = (field | "[" field+ ("|" field+)+ "]")+
//	field     = ("%" ID | NUMBER) ":" NUMBER [":" "s"]
var formatLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[%:\[\]|]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `.`},
})

var (
	formatSymbols = formatLexer.Symbols()
	fmtHex        = formatSymbols["Hex"]
	fmtInt        = formatSymbols["Int"]
	fmtIdent      = formatSymbols["Ident"]
	fmtPunct      = formatSymbols["Punct"]
	fmtWhitespace = formatSymbols["Whitespace"]
)

type formatParser struct {
	tokens []lexer.Token
	pos    int
}

// formatError carries the byte offset of the failure inside the format
// string so the caller can report it against the enclosing file.
type formatError struct {
	offset int
	msg    string
}

func (e *formatError) Error() string { return e.msg }

// parseFormatString parses the body of an ac_format string into fields.
func parseFormatString(body string) ([]model.FormatField, error) {
	lex, err := formatLexer.LexString("", body)
	if err != nil {
		return nil, errors.Wrap(err, "starting format lexer")
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		var lerr *lexer.Error
		if errors.As(err, &lerr) {
			return nil, &formatError{offset: lerr.Pos.Offset, msg: lerr.Msg}
		}
		return nil, err
	}
	p := &formatParser{}
	for _, t := range raw {
		if t.Type != fmtWhitespace {
			p.tokens = append(p.tokens, t)
		}
	}

	var fields []model.FormatField
	for !p.peek().EOF() {
		if p.is("[") {
			f, err := p.parseAlternatives()
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
			continue
		}
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return nil, &formatError{msg: "empty format"}
	}
	return fields, nil
}

func (p *formatParser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *formatParser) advance() lexer.Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *formatParser) is(punct string) bool {
	t := p.peek()
	return t.Type == fmtPunct && t.Value == punct
}

func (p *formatParser) fail(t lexer.Token, msg string) error {
	if t.EOF() {
		return &formatError{offset: t.Pos.Offset, msg: msg + ", got end of format"}
	}
	return &formatError{offset: t.Pos.Offset, msg: msg + ", got " + `"` + t.Value + `"`}
}

func (p *formatParser) expect(punct string) error {
	t := p.advance()
	if t.Type != fmtPunct || t.Value != punct {
		return p.fail(t, `expected "`+punct+`"`)
	}
	return nil
}

func (p *formatParser) number() (uint64, error) {
	t := p.advance()
	if t.Type != fmtInt && t.Type != fmtHex {
		return 0, p.fail(t, "expected number")
	}
	v, err := parseNumber(t.Value)
	if err != nil {
		return 0, &formatError{offset: t.Pos.Offset, msg: "invalid number " + t.Value}
	}
	return v, nil
}

// parseField parses `%name:width[:s]` or `value:width[:s]`.
func (p *formatParser) parseField() (model.FormatField, error) {
	var f model.FormatField
	switch t := p.peek(); {
	case p.is("%"):
		p.advance()
		name := p.advance()
		if name.Type != fmtIdent {
			return f, p.fail(name, "expected field name")
		}
		f.Name = name.Value
	case t.Type == fmtInt || t.Type == fmtHex:
		v, err := p.number()
		if err != nil {
			return f, err
		}
		f.Value = v
	default:
		return f, p.fail(t, "expected format field")
	}

	if err := p.expect(":"); err != nil {
		return f, err
	}
	w, err := p.number()
	if err != nil {
		return f, err
	}
	f.Width = w

	if p.is(":") {
		p.advance()
		s := p.advance()
		if s.Type != fmtIdent || s.Value != "s" {
			return f, p.fail(s, `expected "s"`)
		}
		f.Signed = true
	}
	return f, nil
}

// parseAlternatives parses `[ fields | fields ... ]`.
func (p *formatParser) parseAlternatives() (model.FormatField, error) {
	var f model.FormatField
	p.advance() // [
	var alt []model.FormatField
	for {
		switch {
		case p.is("|"), p.is("]"):
			if len(alt) == 0 {
				return f, p.fail(p.peek(), "expected format field")
			}
			f.Alternatives = append(f.Alternatives, alt)
			alt = nil
			if p.is("]") {
				p.advance()
				if len(f.Alternatives) < 2 {
					return f, p.fail(p.peek(), `expected "|" inside brackets`)
				}
				return f, nil
			}
			p.advance()
		default:
			if p.peek().EOF() {
				return f, p.fail(p.peek(), `expected "]"`)
			}
			field, err := p.parseField()
			if err != nil {
				return f, err
			}
			alt = append(alt, field)
		}
	}
}
