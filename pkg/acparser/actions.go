package acparser

import (
	"log/slog"
	"strings"

	"acdoc/pkg/model"
)

// actions turns matched productions into mutations of the context. Each
// method handles one production kind and touches nothing but the context.
type actions struct {
	ctx  *model.Context
	file string
	log  *slog.Logger
}

func newActions(ctx *model.Context, file string) *actions {
	return &actions{
		ctx:  ctx,
		file: file,
		log:  ctx.Logger("actions").With(slog.String("file", file)),
	}
}

func (a *actions) pos(t Token) model.Position {
	return model.Position{File: a.file, Line: t.Line, Column: t.Column}
}

// item is one `name[size]` or `name:size` pair.
type item struct {
	name Token
	size uint64
}

func (a *actions) declareSingleton(kind model.DeclarationKind, at Token, v model.Singleton) error {
	v.Pos = a.pos(at)
	return a.ctx.Model.SetSingleton(kind, v)
}

// checkHeader compares a constructor header against the recorded
// architecture name. A mismatch is logged and parsing goes on.
func (a *actions) checkHeader(header string, name Token) {
	arch, ok := a.ctx.Model.Singleton(model.KindArchName)
	if !ok {
		a.log.Debug("no architecture name to check header against", slog.String("header", header))
		return
	}
	if arch.Text == name.Lexeme {
		return
	}
	err := &model.HeaderMismatchError{Header: header, Got: name.Lexeme, Want: arch.Text, Pos: a.pos(name)}
	a.log.Warn(err.Error(), slog.String("header", header))
}

func (a *actions) declare(d *model.Declaration) error {
	if err := a.ctx.Model.Declare(d); err != nil {
		return err
	}
	a.ctx.Occurrences.Record(d.Kind, d.Name, d.Pos)
	return nil
}

// declareItems handles memories, caches and TLM ports.
func (a *actions) declareItems(kind model.DeclarationKind, items []item) error {
	for _, it := range items {
		d := &model.Declaration{Kind: kind, Name: it.name.Lexeme, Pos: a.pos(it.name), Size: it.size}
		if err := a.declare(d); err != nil {
			return err
		}
	}
	return nil
}

func (a *actions) declareRegBank(param model.Param, items []item) error {
	for _, it := range items {
		d := &model.Declaration{Kind: model.KindRegBank, Name: it.name.Lexeme, Pos: a.pos(it.name), Size: it.size, Param: param}
		if err := a.declare(d); err != nil {
			return err
		}
	}
	return nil
}

// declareSymbols handles registers and stages, which are plain name lists
// sharing one optional parameter.
func (a *actions) declareSymbols(kind model.DeclarationKind, param model.Param, names []Token) error {
	for _, n := range names {
		d := &model.Declaration{Kind: kind, Name: n.Lexeme, Pos: a.pos(n), Param: param}
		if err := a.declare(d); err != nil {
			return err
		}
	}
	return nil
}

// appendList handles pipes, groups and pseudo-instructions. A repeated name
// gains another body instead of failing.
func (a *actions) appendList(kind model.DeclarationKind, name Token, body []string) {
	pos := a.pos(name)
	d := a.ctx.Model.AppendList(kind, name.Text(), body, pos)
	if len(d.Lists) > 1 {
		a.log.Debug("declaration re-opened", slog.String("kind", kind.String()), slog.String("name", d.Name), slog.Int("bodies", len(d.Lists)))
	}
	a.ctx.Occurrences.Record(kind, d.Name, pos)
}

func (a *actions) declareAsmMap(name Token, mappings []model.AsmMapping) {
	pos := a.pos(name)
	d := a.ctx.Model.AppendMappings(name.Lexeme, mappings, pos)
	a.ctx.Occurrences.Record(model.KindAsmMap, d.Name, pos)
}

func (a *actions) declareFormat(name Token, fields []model.FormatField) error {
	return a.declare(&model.Declaration{Kind: model.KindFormat, Name: name.Lexeme, Pos: a.pos(name), Fields: fields})
}

func (a *actions) declareBind(source, target Token) error {
	return a.declare(&model.Declaration{Kind: model.KindBind, Name: source.Lexeme, Pos: a.pos(source), Target: target.Lexeme})
}

func (a *actions) declareInstructions(format Token, names []Token) error {
	for _, n := range names {
		if err := a.ctx.Instructions.Add(n.Lexeme, format.Lexeme, a.pos(n)); err != nil {
			return err
		}
	}
	return nil
}

func (a *actions) setDecoder(instr Token, fields []model.DecoderField) {
	attrs := a.ctx.Attributes.For(instr.Lexeme)
	if attrs.Decoder != nil {
		a.log.Debug("decoder replaced", slog.String("instr", instr.Lexeme))
	}
	attrs.Decoder = fields
}

func (a *actions) addAsm(instr Token, syntax model.AsmSyntax) {
	attrs := a.ctx.Attributes.For(instr.Lexeme)
	attrs.Asm = append(attrs.Asm, syntax)
}

// addAttribute stores the free text of an attribute call. raw runs from
// just after the opening parenthesis to the end of the line; the closing
// `);` is the last two characters once trailing blanks are gone.
func (a *actions) addAttribute(instr Token, kind model.AttributeKind, raw string) {
	text := strings.TrimRight(raw, " \t\r")
	if len(text) >= 2 {
		text = text[:len(text)-2]
	} else {
		text = ""
	}
	a.ctx.Attributes.For(instr.Lexeme).AddClause(kind, text)
}

func (a *actions) setCycles(instr Token, n uint64) {
	a.ctx.Attributes.For(instr.Lexeme).Cycles = &n
}

func (a *actions) setCycleRange(instr Token, r model.CycleRange) {
	a.ctx.Attributes.For(instr.Lexeme).CycleRange = &r
}

func (a *actions) addAssemblerComment(method string, marker string) {
	t := a.ctx.Attributes
	if method == "set_line_comment" {
		t.LineComments = append(t.LineComments, marker)
		return
	}
	t.Comments = append(t.Comments, marker)
}

// addDoc parses a doc comment and merges it into the documentation model.
func (a *actions) addDoc(comment string) error {
	doc, err := ParseDocComment(comment)
	if err != nil {
		return err
	}
	if dropped := a.ctx.Docs.Merge(doc.File, doc.Entries); dropped > 0 {
		a.log.Debug("unknown doc tags dropped", slog.String("doc", doc.File), slog.Int("count", dropped))
	}
	return nil
}
