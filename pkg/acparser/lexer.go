package acparser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// acLexer defines the lexical structure of architecture and ISA files.
// Rule order matters: doc comments before block comments, and the
// catch-all last so free text (behaviors, helper bodies) always lexes.
var acLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "DocComment", Pattern: `/\*\*[ \t]*\r?\n(?s:.*?)\*/`},
	{Name: "BlockComment", Pattern: `/\*(?s:.*?)\*/`},
	{Name: "UnterminatedComment", Pattern: `/\*(?s:.*)`},
	{Name: "LineComment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"[^"\n]*"`},
	{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
	{Name: "Range", Pattern: `\.\.`},
	{Name: "Punct", Pattern: `[(){}\[\]<>;,=:.%|+]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `.`},
})

var (
	acSymbols       = acLexer.Symbols()
	symDocComment   = acSymbols["DocComment"]
	symBlockComment = acSymbols["BlockComment"]
	symUnterminated = acSymbols["UnterminatedComment"]
	symLineComment  = acSymbols["LineComment"]
	symString       = acSymbols["String"]
	symHex          = acSymbols["Hex"]
	symInt          = acSymbols["Int"]
	symIdent        = acSymbols["Ident"]
	symRange        = acSymbols["Range"]
	symPunct        = acSymbols["Punct"]
	symWhitespace   = acSymbols["Whitespace"]
)

// units are the size suffixes, each a power of 1024.
var units = map[byte]uint64{
	'K': 1 << 10,
	'M': 1 << 20,
	'G': 1 << 30,
	'T': 1 << 40,
}

// Lex tokenizes src. Comments and whitespace are dropped except doc
// comments, which are kept as DOC_COMMENT tokens. Hex literals are converted
// and a size unit directly after a number is folded into it. A number that
// does not fit in 64 bits still lexes, since free text may hold one; the
// parser rejects it only where a value is required. The returned slice
// always ends with an EOF token.
func Lex(filename, src string) ([]Token, error) {
	lex, err := acLexer.LexString(filename, src)
	if err != nil {
		return nil, errors.Wrap(err, "starting lexer")
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		var lerr *lexer.Error
		if errors.As(err, &lerr) {
			return nil, newSyntaxError(filename, src, lerr.Pos.Offset, "%s", lerr.Msg)
		}
		return nil, errors.Wrapf(err, "lexing %s", filename)
	}

	tokens := make([]Token, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		rt := raw[i]
		tok := Token{Lexeme: rt.Value, Offset: rt.Pos.Offset, Line: rt.Pos.Line, Column: rt.Pos.Column}

		switch rt.Type {
		case lexer.EOF:
			tok.Type = EOF
		case symWhitespace, symBlockComment, symLineComment:
			continue
		case symUnterminated:
			return nil, newSyntaxError(filename, src, rt.Pos.Offset, "unterminated comment")
		case symDocComment:
			tok.Type = DOC_COMMENT
		case symString:
			tok.Type = STRING
		case symHex, symInt:
			tok.Type = NUMBER
			v, err := parseNumber(rt.Value)
			if err != nil {
				tok.Bad = fmt.Sprintf("invalid number %q", rt.Value)
			}
			tok.Value = v
			if i+1 < len(raw) {
				if mul, ok := unitSuffix(raw[i+1], rt.Pos.Offset+len(rt.Value)); ok {
					i++
					tok.Lexeme += raw[i].Value
					if tok.Bad == "" && v > math.MaxUint64/mul {
						tok.Bad = fmt.Sprintf("size %q overflows", tok.Lexeme)
					}
					tok.Value = v * mul
				}
			}
			if tok.Bad != "" {
				tok.Value = 0
			}
		case symIdent:
			if kw, ok := keywords[rt.Value]; ok {
				tok.Type = kw
			} else {
				tok.Type = IDENT
			}
		case symRange, symPunct:
			tok.Type = punctuation[rt.Value]
		default:
			tok.Type = OTHER
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		line, col := lineCol(src, len(src))
		tokens = append(tokens, Token{Type: EOF, Offset: len(src), Line: line, Column: col})
	}
	return tokens, nil
}

func parseNumber(s string) (uint64, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

// unitSuffix reports whether t is a one-letter unit written directly at
// offset, and returns its multiplier.
func unitSuffix(t lexer.Token, offset int) (uint64, bool) {
	if t.Type != symIdent || len(t.Value) != 1 || t.Pos.Offset != offset {
		return 0, false
	}
	mul, ok := units[strings.ToUpper(t.Value)[0]]
	return mul, ok
}
