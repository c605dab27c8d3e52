package acparser

import (
	"regexp"

	"acdoc/pkg/model"
)

// Parser consumes the token slice produced by Lex and drives the actions.
//
// Grammar:
//
//	archDoc   = "AC_ARCH" "(" ID ")" "{" archCmd* archCtor "}" ";"
//	archCtor  = "ARCH_CTOR" "(" ID ")" "{" archCmd* "}" ";"
//	archCmd   = storage | "ac_wordsize" size ";" | "ac_fetchsize" size ";"
//	          | "ac_isa" "(" STRING ")" ";" | "set_endian" "(" STRING ")" ";"
//	          | "ac_stage" ID ("," ID)* ";" | "ac_pipe" ID "=" "{" ID ("," ID)* "}" ";"
//	          | format | ID "." ("bindsTo" | "bindTo") "(" ID ")" ";"
//	storage   = sizedKw item ("," item)* ";"
//	          | "ac_regbank" ["<" NUMBER ">"] item ("," item)* ";"
//	          | "ac_reg" ["<" (ID | NUMBER) ">"] ID ("," ID)* ";"
//	item      = ID "[" size "]" | ID ":" size
//	isaDoc    = "AC_ISA" "(" ID ")" "{" isaCmd* isaCtor "}" ";"
//	isaCtor   = "ISA_CTOR" "(" ID ")" "{" isaCmd* "}" ";"
//	isaCmd    = format | "ac_instr" "<" ID ">" ID ("," ID)* ";"
//	          | ID "." method ... | "pseudo_instr" "(" STRING ")" "{" (STRING ";")+ "}" [";"]
//	          | "ac_asm_map" ID "{" mapBody+ "}" [";"] | "ac_helper" "{" RAW "}" ";"
//	          | "ac_group" ID "{" ID ("," ID)* "}" ";"
//	          | "assembler" "." ("set_comment" | "set_line_comment") "(" STRING ")" ";"
//	format    = "ac_format" ID "=" STRING ("," ID "=" STRING)* ";"
type Parser struct {
	tokens []Token
	pos    int
	src    string
	file   string
	act    *actions
}

func newParser(tokens []Token, file, src string, act *actions) *Parser {
	return &Parser{tokens: tokens, src: src, file: file, act: act}
}

// fmtError reports a syntax error at tok.
func (p *Parser) fmtError(tok Token, format string, args ...any) error {
	return newSyntaxError(p.file, p.src, tok.Offset, format, args...)
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF, Offset: len(p.src)}
	}
	return p.tokens[p.pos]
}

// peekAt returns the token at the given offset from the current position.
func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return Token{Type: EOF, Offset: len(p.src)}
	}
	return p.tokens[p.pos+offset]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.advance()
	if tok.Type != tt {
		return tok, p.fmtError(tok, "expected %s, got %s (%q)", tt, tok.Type, tok.Lexeme)
	}
	if tok.Bad != "" {
		return tok, p.fmtError(tok, "%s", tok.Bad)
	}
	return tok, nil
}

// accept consumes the current token if it matches tt.
func (p *Parser) accept(tt TokenType) bool {
	if p.peek().Type == tt {
		p.advance()
		return true
	}
	return false
}

// skipTo drops every token starting before offset.
func (p *Parser) skipTo(offset int) {
	for p.peek().Type != EOF && p.peek().Offset < offset {
		p.advance()
	}
}

func (p *Parser) ident() (Token, error) {
	return p.expect(IDENT)
}

// identList parses ID ("," ID)*.
func (p *Parser) identList() ([]Token, error) {
	var names []Token
	for {
		n, err := p.ident()
		if err != nil {
			return nil, err
		}
		names = append(names, n)
		if !p.accept(COMMA) {
			return names, nil
		}
	}
}

// header parses `KW "(" ID ")"` and returns the ID.
func (p *Parser) header(kw TokenType) (Token, error) {
	if _, err := p.expect(kw); err != nil {
		return Token{}, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return Token{}, err
	}
	name, err := p.ident()
	if err != nil {
		return Token{}, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return Token{}, err
	}
	return name, nil
}

func (p *Parser) endStatement() error {
	_, err := p.expect(SEMICOLON)
	return err
}

func (p *Parser) closeBlock() error {
	if _, err := p.expect(RBRACE); err != nil {
		return err
	}
	return p.endStatement()
}

// parseArchDoc parses a complete architecture file.
func (p *Parser) parseArchDoc() error {
	name, err := p.header(ARCH)
	if err != nil {
		return err
	}
	if err := p.act.declareSingleton(model.KindArchName, name, model.Singleton{Text: name.Lexeme}); err != nil {
		return err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return err
	}
	for p.peek().Type != ARCH_CTOR {
		if p.peek().Type == EOF || p.peek().Type == RBRACE {
			return p.fmtError(p.peek(), "expected ARCH_CTOR before end of AC_ARCH")
		}
		if err := p.parseArchCmd(); err != nil {
			return err
		}
	}

	ctor, err := p.header(ARCH_CTOR)
	if err != nil {
		return err
	}
	p.act.checkHeader("ARCH_CTOR", ctor)
	if _, err := p.expect(LBRACE); err != nil {
		return err
	}
	for p.peek().Type != RBRACE {
		if p.peek().Type == EOF {
			return p.fmtError(p.peek(), "unterminated ARCH_CTOR block")
		}
		if err := p.parseArchCmd(); err != nil {
			return err
		}
	}
	if err := p.closeBlock(); err != nil {
		return err
	}
	if err := p.closeBlock(); err != nil {
		return err
	}
	return p.expectEOF()
}

// parseISADoc parses a complete ISA file.
func (p *Parser) parseISADoc() error {
	name, err := p.header(ISA)
	if err != nil {
		return err
	}
	p.act.checkHeader("AC_ISA", name)
	if _, err := p.expect(LBRACE); err != nil {
		return err
	}
	for p.peek().Type != ISA_CTOR {
		if p.peek().Type == EOF || p.peek().Type == RBRACE {
			return p.fmtError(p.peek(), "expected ISA_CTOR before end of AC_ISA")
		}
		if err := p.parseISACmd(); err != nil {
			return err
		}
	}

	ctor, err := p.header(ISA_CTOR)
	if err != nil {
		return err
	}
	p.act.checkHeader("ISA_CTOR", ctor)
	if _, err := p.expect(LBRACE); err != nil {
		return err
	}
	for p.peek().Type != RBRACE {
		if p.peek().Type == EOF {
			return p.fmtError(p.peek(), "unterminated ISA_CTOR block")
		}
		if err := p.parseISACmd(); err != nil {
			return err
		}
	}
	if err := p.closeBlock(); err != nil {
		return err
	}
	if err := p.closeBlock(); err != nil {
		return err
	}
	return p.expectEOF()
}

func (p *Parser) expectEOF() error {
	if tok := p.peek(); tok.Type != EOF {
		return p.fmtError(tok, "unexpected %q after end of description", tok.Lexeme)
	}
	return nil
}

var sizedKinds = map[TokenType]model.DeclarationKind{
	AC_MEM:           model.KindMem,
	AC_CACHE:         model.KindCache,
	AC_ICACHE:        model.KindICache,
	AC_DCACHE:        model.KindDCache,
	AC_TLM_PORT:      model.KindTLMPort,
	AC_TLM_INTR_PORT: model.KindTLMIntrPort,
}

func (p *Parser) parseArchCmd() error {
	tok := p.peek()
	if kind, ok := sizedKinds[tok.Type]; ok {
		p.advance()
		items, err := p.parseItems()
		if err != nil {
			return err
		}
		if err := p.endStatement(); err != nil {
			return err
		}
		return p.act.declareItems(kind, items)
	}

	switch tok.Type {
	case AC_REGBANK:
		return p.parseRegBank()
	case AC_REG:
		return p.parseReg()
	case AC_WORDSIZE, AC_FETCHSIZE:
		return p.parseSizeSingleton()
	case AC_ISA:
		return p.parseISARef()
	case SET_ENDIAN:
		return p.parseEndian()
	case AC_STAGE:
		p.advance()
		names, err := p.identList()
		if err != nil {
			return err
		}
		if err := p.endStatement(); err != nil {
			return err
		}
		return p.act.declareSymbols(model.KindStage, model.Param{}, names)
	case AC_PIPE:
		return p.parsePipe()
	case AC_FORMAT:
		return p.parseFormat()
	case IDENT:
		if p.peekAt(1).Type == DOT {
			if m := p.peekAt(2); m.Lexeme == "bindsTo" || m.Lexeme == "bindTo" {
				return p.parseBind()
			}
		}
	}
	return p.fmtError(tok, "unexpected %q in architecture description", tok.Lexeme)
}

// parseItems parses item ("," item)*.
func (p *Parser) parseItems() ([]item, error) {
	var items []item
	for {
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		var size Token
		switch p.peek().Type {
		case LBRACKET:
			p.advance()
			if size, err = p.expect(NUMBER); err != nil {
				return nil, err
			}
			if _, err := p.expect(RBRACKET); err != nil {
				return nil, err
			}
		case COLON:
			p.advance()
			if size, err = p.expect(NUMBER); err != nil {
				return nil, err
			}
		default:
			return nil, p.fmtError(p.peek(), "expected size of %s as [size] or :size", name.Lexeme)
		}
		items = append(items, item{name: name, size: size.Value})
		if !p.accept(COMMA) {
			return items, nil
		}
	}
}

// parseParam parses the optional `<param>` of ac_reg and ac_regbank.
func (p *Parser) parseParam(allowSymbol bool) (model.Param, error) {
	var param model.Param
	if !p.accept(LESS) {
		return param, nil
	}
	tok := p.advance()
	switch {
	case tok.Type == NUMBER && tok.Bad != "":
		return param, p.fmtError(tok, "%s", tok.Bad)
	case tok.Type == NUMBER:
		param = model.Param{Set: true, Number: tok.Value}
	case tok.Type == IDENT && allowSymbol:
		param = model.Param{Set: true, Symbol: tok.Lexeme}
	default:
		return param, p.fmtError(tok, "unexpected %q as parameter", tok.Lexeme)
	}
	if _, err := p.expect(GREATER); err != nil {
		return param, err
	}
	return param, nil
}

func (p *Parser) parseRegBank() error {
	p.advance()
	param, err := p.parseParam(false)
	if err != nil {
		return err
	}
	items, err := p.parseItems()
	if err != nil {
		return err
	}
	if err := p.endStatement(); err != nil {
		return err
	}
	return p.act.declareRegBank(param, items)
}

func (p *Parser) parseReg() error {
	p.advance()
	param, err := p.parseParam(true)
	if err != nil {
		return err
	}
	names, err := p.identList()
	if err != nil {
		return err
	}
	if err := p.endStatement(); err != nil {
		return err
	}
	return p.act.declareSymbols(model.KindReg, param, names)
}

func (p *Parser) parseSizeSingleton() error {
	kw := p.advance()
	kind := model.KindWordSize
	if kw.Type == AC_FETCHSIZE {
		kind = model.KindFetchSize
	}
	size, err := p.expect(NUMBER)
	if err != nil {
		return err
	}
	if err := p.endStatement(); err != nil {
		return err
	}
	return p.act.declareSingleton(kind, kw, model.Singleton{Number: size.Value})
}

// parseStringCall parses `KW "(" STRING ")" ";"` and returns the string.
func (p *Parser) parseStringCall() (Token, Token, error) {
	kw := p.advance()
	if _, err := p.expect(LPAREN); err != nil {
		return kw, Token{}, err
	}
	s, err := p.expect(STRING)
	if err != nil {
		return kw, s, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return kw, s, err
	}
	return kw, s, p.endStatement()
}

func (p *Parser) parseISARef() error {
	kw, file, err := p.parseStringCall()
	if err != nil {
		return err
	}
	return p.act.declareSingleton(model.KindISAFile, kw, model.Singleton{Text: file.Text()})
}

func (p *Parser) parseEndian() error {
	kw, endian, err := p.parseStringCall()
	if err != nil {
		return err
	}
	if v := endian.Text(); v != "big" && v != "little" {
		return p.fmtError(endian, `expected "big" or "little", got %s`, endian.Lexeme)
	}
	return p.act.declareSingleton(model.KindEndian, kw, model.Singleton{Text: endian.Text()})
}

func (p *Parser) parsePipe() error {
	p.advance()
	name, err := p.ident()
	if err != nil {
		return err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return err
	}
	stages, err := p.identList()
	if err != nil {
		return err
	}
	if err := p.closeBlock(); err != nil {
		return err
	}
	p.act.appendList(model.KindPipe, name, lexemes(stages))
	return nil
}

func (p *Parser) parseBind() error {
	source := p.advance()
	p.advance() // .
	p.advance() // bindsTo
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	target, err := p.ident()
	if err != nil {
		return err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if err := p.endStatement(); err != nil {
		return err
	}
	return p.act.declareBind(source, target)
}

// parseFormat parses one ac_format statement, which may declare several
// formats.
func (p *Parser) parseFormat() error {
	p.advance()
	for {
		name, err := p.ident()
		if err != nil {
			return err
		}
		if _, err := p.expect(ASSIGN); err != nil {
			return err
		}
		str, err := p.expect(STRING)
		if err != nil {
			return err
		}
		fields, err := parseFormatString(str.Text())
		if err != nil {
			if ferr, ok := err.(*formatError); ok {
				return newSyntaxError(p.file, p.src, str.Offset+1+ferr.offset, "format %s: %s", name.Lexeme, ferr.msg)
			}
			return err
		}
		if err := p.act.declareFormat(name, fields); err != nil {
			return err
		}
		if !p.accept(COMMA) {
			break
		}
	}
	return p.endStatement()
}

func (p *Parser) parseISACmd() error {
	tok := p.peek()
	switch tok.Type {
	case AC_FORMAT:
		return p.parseFormat()
	case AC_INSTR:
		return p.parseInstr()
	case PSEUDO_INSTR:
		return p.parsePseudo()
	case AC_ASM_MAP:
		return p.parseAsmMap()
	case AC_HELPER:
		return p.parseHelper()
	case AC_GROUP:
		return p.parseGroup()
	case ASSEMBLER:
		return p.parseAssembler()
	case IDENT:
		if p.peekAt(1).Type == DOT && p.peekAt(2).Type == IDENT {
			return p.parseMethod()
		}
	}
	return p.fmtError(tok, "unexpected %q in ISA description", tok.Lexeme)
}

func (p *Parser) parseInstr() error {
	p.advance()
	if _, err := p.expect(LESS); err != nil {
		return err
	}
	format, err := p.ident()
	if err != nil {
		return err
	}
	if _, err := p.expect(GREATER); err != nil {
		return err
	}
	names, err := p.identList()
	if err != nil {
		return err
	}
	if err := p.endStatement(); err != nil {
		return err
	}
	return p.act.declareInstructions(format, names)
}

// parseMethod parses `instr.method(...)`.
func (p *Parser) parseMethod() error {
	instr := p.advance()
	p.advance() // .
	method := p.advance()

	if kind, ok := model.AttributeKindForKeyword(method.Lexeme); ok {
		open, err := p.expect(LPAREN)
		if err != nil {
			return err
		}
		end := lineEnd(p.src, open.End())
		p.act.addAttribute(instr, kind, p.src[open.End():end])
		p.skipTo(end)
		return nil
	}

	switch method.Lexeme {
	case "set_asm":
		return p.parseSetAsm(instr)
	case "set_decoder":
		return p.parseSetDecoder(instr)
	case "set_cycles":
		return p.parseSetCycles(instr)
	case "cycle_range":
		return p.parseCycleRange(instr)
	}
	return p.fmtError(method, "unknown instruction method %q", method.Lexeme)
}

// lineEnd returns the offset of the newline ending the line that holds
// offset, or the end of src.
func lineEnd(src string, offset int) int {
	for i := offset; i < len(src); i++ {
		if src[i] == '\n' {
			return i
		}
	}
	return len(src)
}

func (p *Parser) parseSetAsm(instr Token) error {
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	format, err := p.expect(STRING)
	if err != nil {
		return err
	}
	syntax := model.AsmSyntax{Format: format.Text()}
	for p.accept(COMMA) {
		name, err := p.ident()
		if err != nil {
			return err
		}
		op := model.Operand{Name: name.Lexeme}
		if t := p.peek(); t.Type == ASSIGN || t.Type == PLUS {
			p.advance()
			v := p.advance()
			switch v.Type {
			case IDENT, NUMBER, STRING:
			default:
				return p.fmtError(v, "unexpected %q as operand value", v.Lexeme)
			}
			op.Op = t.Lexeme
			op.Value = v.Lexeme
		}
		syntax.Operands = append(syntax.Operands, op)
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if err := p.endStatement(); err != nil {
		return err
	}
	p.act.addAsm(instr, syntax)
	return nil
}

func (p *Parser) parseSetDecoder(instr Token) error {
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	var fields []model.DecoderField
	for {
		name, err := p.ident()
		if err != nil {
			return err
		}
		if _, err := p.expect(ASSIGN); err != nil {
			return err
		}
		v, err := p.expect(NUMBER)
		if err != nil {
			return err
		}
		fields = append(fields, model.DecoderField{Name: name.Lexeme, Value: v.Value})
		if !p.accept(COMMA) {
			break
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if err := p.endStatement(); err != nil {
		return err
	}
	p.act.setDecoder(instr, fields)
	return nil
}

func (p *Parser) parseSetCycles(instr Token) error {
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	n, err := p.expect(NUMBER)
	if err != nil {
		return err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if err := p.endStatement(); err != nil {
		return err
	}
	p.act.setCycles(instr, n.Value)
	return nil
}

func (p *Parser) parseCycleRange(instr Token) error {
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	lo, err := p.expect(NUMBER)
	if err != nil {
		return err
	}
	r := model.CycleRange{Min: lo.Value, Max: lo.Value}
	if p.accept(COMMA) {
		hi, err := p.expect(NUMBER)
		if err != nil {
			return err
		}
		r.Max = hi.Value
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if err := p.endStatement(); err != nil {
		return err
	}
	p.act.setCycleRange(instr, r)
	return nil
}

func (p *Parser) parsePseudo() error {
	p.advance()
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	name, err := p.expect(STRING)
	if err != nil {
		return err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return err
	}
	var body []string
	for p.peek().Type == STRING {
		s := p.advance()
		if err := p.endStatement(); err != nil {
			return err
		}
		body = append(body, s.Text())
	}
	if len(body) == 0 {
		return p.fmtError(p.peek(), "pseudo_instr %s has an empty body", name.Lexeme)
	}
	if _, err := p.expect(RBRACE); err != nil {
		return err
	}
	p.accept(SEMICOLON)
	p.act.appendList(model.KindPseudo, name, body)
	return nil
}

func (p *Parser) parseGroup() error {
	p.advance()
	name, err := p.ident()
	if err != nil {
		return err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return err
	}
	members, err := p.identList()
	if err != nil {
		return err
	}
	if err := p.closeBlock(); err != nil {
		return err
	}
	p.act.appendList(model.KindGroup, name, lexemes(members))
	return nil
}

var helperEnd = regexp.MustCompile(`\}\s*;`)

// parseHelper captures the raw helper text up to the first `};`.
func (p *Parser) parseHelper() error {
	kw := p.advance()
	open, err := p.expect(LBRACE)
	if err != nil {
		return err
	}
	loc := helperEnd.FindStringIndex(p.src[open.End():])
	if loc == nil {
		return p.fmtError(open, "unterminated ac_helper block")
	}
	text := p.src[open.End() : open.End()+loc[0]]
	p.skipTo(open.End() + loc[1])
	return p.act.declareSingleton(model.KindHelper, kw, model.Singleton{Text: text})
}

func (p *Parser) parseAssembler() error {
	p.advance()
	if _, err := p.expect(DOT); err != nil {
		return err
	}
	method, err := p.ident()
	if err != nil {
		return err
	}
	if method.Lexeme != "set_comment" && method.Lexeme != "set_line_comment" {
		return p.fmtError(method, "unknown assembler method %q", method.Lexeme)
	}
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	marker, err := p.expect(STRING)
	if err != nil {
		return err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if err := p.endStatement(); err != nil {
		return err
	}
	p.act.addAssemblerComment(method.Lexeme, marker.Text())
	return nil
}

func (p *Parser) parseAsmMap() error {
	p.advance()
	name, err := p.ident()
	if err != nil {
		return err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return err
	}
	var mappings []model.AsmMapping
	for p.peek().Type != RBRACE {
		m, err := p.parseMapBody()
		if err != nil {
			return err
		}
		mappings = append(mappings, m)
	}
	if len(mappings) == 0 {
		return p.fmtError(p.peek(), "ac_asm_map %s has no mappings", name.Lexeme)
	}
	p.advance()
	p.accept(SEMICOLON)
	p.act.declareAsmMap(name, mappings)
	return nil
}

// parseMapBody parses one of
//
//	STRING ("," STRING)* "=" NUMBER ";"
//	STRING range [STRING] "=" range ";"
//	range STRING "=" range ";"
func (p *Parser) parseMapBody() (model.AsmMapping, error) {
	var m model.AsmMapping
	switch {
	case p.peek().Type == STRING && p.peekAt(1).Type == LBRACKET:
		m.Prefix = p.advance().Text()
		r, err := p.parseRange()
		if err != nil {
			return m, err
		}
		m.Symbols = &r
		if p.peek().Type == STRING {
			m.Suffix = p.advance().Text()
		}
		if m.Values, err = p.rangeValue(); err != nil {
			return m, err
		}
	case p.peek().Type == STRING:
		for {
			s, err := p.expect(STRING)
			if err != nil {
				return m, err
			}
			m.Names = append(m.Names, s.Text())
			if !p.accept(COMMA) {
				break
			}
		}
		if _, err := p.expect(ASSIGN); err != nil {
			return m, err
		}
		v, err := p.expect(NUMBER)
		if err != nil {
			return m, err
		}
		m.Value = v.Value
	case p.peek().Type == LBRACKET:
		r, err := p.parseRange()
		if err != nil {
			return m, err
		}
		m.Symbols = &r
		s, err := p.expect(STRING)
		if err != nil {
			return m, err
		}
		m.Suffix = s.Text()
		if m.Values, err = p.rangeValue(); err != nil {
			return m, err
		}
	default:
		return m, p.fmtError(p.peek(), "unexpected %q in ac_asm_map", p.peek().Lexeme)
	}
	return m, p.endStatement()
}

func (p *Parser) rangeValue() (*model.Range, error) {
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	r, err := p.parseRange()
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// parseRange parses "[" NUMBER ".." NUMBER "]".
func (p *Parser) parseRange() (model.Range, error) {
	var r model.Range
	if _, err := p.expect(LBRACKET); err != nil {
		return r, err
	}
	from, err := p.expect(NUMBER)
	if err != nil {
		return r, err
	}
	if _, err := p.expect(RANGE); err != nil {
		return r, err
	}
	to, err := p.expect(NUMBER)
	if err != nil {
		return r, err
	}
	if _, err := p.expect(RBRACKET); err != nil {
		return r, err
	}
	return model.Range{From: from.Value, To: to.Value}, nil
}

func lexemes(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Lexeme
	}
	return out
}
