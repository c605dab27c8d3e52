package acparser

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENT       // symbol name
	NUMBER      // integer, hex or size literal, already converted
	STRING      // quoted string, Lexeme keeps the quotes
	DOC_COMMENT // /**\n ... */

	// Document headers
	ARCH      // "AC_ARCH"
	ARCH_CTOR // "ARCH_CTOR"
	ISA       // "AC_ISA"
	ISA_CTOR  // "ISA_CTOR"

	// Declaration keywords
	AC_REG           // "ac_reg"
	AC_REGBANK       // "ac_regbank"
	AC_MEM           // "ac_mem"
	AC_CACHE         // "ac_cache"
	AC_ICACHE        // "ac_icache"
	AC_DCACHE        // "ac_dcache"
	AC_TLM_PORT      // "ac_tlm_port"
	AC_TLM_INTR_PORT // "ac_tlm_intr_port"
	AC_WORDSIZE      // "ac_wordsize"
	AC_FETCHSIZE     // "ac_fetchsize"
	AC_ISA           // "ac_isa"
	SET_ENDIAN       // "set_endian"
	AC_STAGE         // "ac_stage"
	AC_PIPE          // "ac_pipe"
	AC_FORMAT        // "ac_format"
	AC_INSTR         // "ac_instr"
	AC_GROUP         // "ac_group"
	AC_ASM_MAP       // "ac_asm_map"
	AC_HELPER        // "ac_helper"
	PSEUDO_INSTR     // "pseudo_instr"
	ASSEMBLER        // "assembler"

	// Paired delimiters
	LBRACE   // {
	RBRACE   // }
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	LESS     // <
	GREATER  // >

	// Punctuation
	DOT       // .
	RANGE     // ..
	SEMICOLON // ;
	COMMA     // ,
	COLON     // :
	ASSIGN    // =
	PERCENT   // %
	PIPE      // |
	PLUS      // +

	OTHER // any other character, only legal inside free text
)

var tokenNames = [...]string{
	EOF:              "EOF",
	IDENT:            "IDENT",
	NUMBER:           "NUMBER",
	STRING:           "STRING",
	DOC_COMMENT:      "DOC_COMMENT",
	ARCH:             "AC_ARCH",
	ARCH_CTOR:        "ARCH_CTOR",
	ISA:              "AC_ISA",
	ISA_CTOR:         "ISA_CTOR",
	AC_REG:           "ac_reg",
	AC_REGBANK:       "ac_regbank",
	AC_MEM:           "ac_mem",
	AC_CACHE:         "ac_cache",
	AC_ICACHE:        "ac_icache",
	AC_DCACHE:        "ac_dcache",
	AC_TLM_PORT:      "ac_tlm_port",
	AC_TLM_INTR_PORT: "ac_tlm_intr_port",
	AC_WORDSIZE:      "ac_wordsize",
	AC_FETCHSIZE:     "ac_fetchsize",
	AC_ISA:           "ac_isa",
	SET_ENDIAN:       "set_endian",
	AC_STAGE:         "ac_stage",
	AC_PIPE:          "ac_pipe",
	AC_FORMAT:        "ac_format",
	AC_INSTR:         "ac_instr",
	AC_GROUP:         "ac_group",
	AC_ASM_MAP:       "ac_asm_map",
	AC_HELPER:        "ac_helper",
	PSEUDO_INSTR:     "pseudo_instr",
	ASSEMBLER:        "assembler",
	LBRACE:           "LBRACE",
	RBRACE:           "RBRACE",
	LPAREN:           "LPAREN",
	RPAREN:           "RPAREN",
	LBRACKET:         "LBRACKET",
	RBRACKET:         "RBRACKET",
	LESS:             "LESS",
	GREATER:          "GREATER",
	DOT:              "DOT",
	RANGE:            "RANGE",
	SEMICOLON:        "SEMICOLON",
	COMMA:            "COMMA",
	COLON:            "COLON",
	ASSIGN:           "ASSIGN",
	PERCENT:          "PERCENT",
	PIPE:             "PIPE",
	PLUS:             "PLUS",
	OTHER:            "OTHER",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// keywords maps reserved words to their token type. Method names such as
// set_asm or bindsTo are not reserved; they lex as IDENT.
var keywords = map[string]TokenType{
	"AC_ARCH":          ARCH,
	"ARCH_CTOR":        ARCH_CTOR,
	"AC_ISA":           ISA,
	"ISA_CTOR":         ISA_CTOR,
	"ac_reg":           AC_REG,
	"ac_regbank":       AC_REGBANK,
	"ac_mem":           AC_MEM,
	"ac_cache":         AC_CACHE,
	"ac_icache":        AC_ICACHE,
	"ac_dcache":        AC_DCACHE,
	"ac_tlm_port":      AC_TLM_PORT,
	"ac_tlm_intr_port": AC_TLM_INTR_PORT,
	"ac_wordsize":      AC_WORDSIZE,
	"ac_fetchsize":     AC_FETCHSIZE,
	"ac_isa":           AC_ISA,
	"set_endian":       SET_ENDIAN,
	"ac_stage":         AC_STAGE,
	"ac_pipe":          AC_PIPE,
	"ac_format":        AC_FORMAT,
	"ac_instr":         AC_INSTR,
	"ac_group":         AC_GROUP,
	"ac_asm_map":       AC_ASM_MAP,
	"ac_helper":        AC_HELPER,
	"pseudo_instr":     PSEUDO_INSTR,
	"assembler":        ASSEMBLER,
}

var punctuation = map[string]TokenType{
	"{":  LBRACE,
	"}":  RBRACE,
	"(":  LPAREN,
	")":  RPAREN,
	"[":  LBRACKET,
	"]":  RBRACKET,
	"<":  LESS,
	">":  GREATER,
	".":  DOT,
	"..": RANGE,
	";":  SEMICOLON,
	",":  COMMA,
	":":  COLON,
	"=":  ASSIGN,
	"%":  PERCENT,
	"|":  PIPE,
	"+":  PLUS,
}

// Token is a single lexical unit produced by Lex.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Value  uint64 // numeric value of a NUMBER token
	Bad    string // why a NUMBER token has no usable value, reported when a rule needs it
	Offset int    // 0-based byte offset into the source
	Line   int    // 1-based source line
	Column int    // 1-based source column
}

// Text returns the body of a STRING token without its quotes.
func (t Token) Text() string {
	if t.Type == STRING && len(t.Lexeme) >= 2 {
		return t.Lexeme[1 : len(t.Lexeme)-1]
	}
	return t.Lexeme
}

// End is the offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Lexeme)
}

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d", t.Type, t.Lexeme, t.Line)
}
