package ast

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pkg/errors"

	"acdoc/pkg/model"
)

// MissingDeclarationError aborts the build when a mandatory singleton was
// never declared.
type MissingDeclarationError struct {
	Kind model.DeclarationKind
}

func (e *MissingDeclarationError) Error() string {
	return fmt.Sprintf("missing mandatory %s declaration", e.Kind)
}

// mandatory singletons, checked in this order
var mandatory = []model.DeclarationKind{model.KindArchName, model.KindISAFile, model.KindEndian}

type builder struct {
	ctx *model.Context
	doc *Document
	log *slog.Logger
}

type builderFunc func(b *builder, d *model.Declaration)

// builders covers every repeated declaration kind.
var builders = map[model.DeclarationKind]builderFunc{
	model.KindReg:         (*builder).register,
	model.KindRegBank:     (*builder).registerBank,
	model.KindMem:         (*builder).memory,
	model.KindCache:       cacheBuilder(CacheUnified),
	model.KindICache:      cacheBuilder(CacheInstruction),
	model.KindDCache:      cacheBuilder(CacheData),
	model.KindTLMPort:     portBuilder(PortTLM),
	model.KindTLMIntrPort: portBuilder(PortTLMInterrupt),
	model.KindStage:       (*builder).stage,
	model.KindPipe:        (*builder).pipe,
	model.KindFormat:      (*builder).format,
	model.KindGroup:       (*builder).group,
	model.KindAsmMap:      (*builder).asmMap,
	model.KindPseudo:      (*builder).pseudo,
	model.KindBind:        (*builder).bind,
}

// Build turns a fully parsed context into a document tree. The context is
// only read.
func Build(ctx *model.Context) (*Document, error) {
	for _, k := range mandatory {
		if _, ok := ctx.Model.Singleton(k); !ok {
			return nil, &MissingDeclarationError{Kind: k}
		}
	}

	b := &builder{ctx: ctx, log: ctx.Logger("ast")}
	b.doc = &Document{Arch: b.architecture(), ISA: b.isa()}

	for _, kind := range model.RepeatedKinds() {
		build, ok := builders[kind]
		if !ok {
			return nil, errors.Errorf("no builder for %s", kind)
		}
		for _, d := range ctx.Model.Table(kind).Declarations() {
			build(b, d)
		}
	}

	b.instructions()
	return b.doc, nil
}

func src(pos model.Position) Source {
	return Source{File: pos.File, Line: pos.Line}
}

func (b *builder) architecture() *Architecture {
	m := b.ctx.Model
	name, _ := m.Singleton(model.KindArchName)
	isa, _ := m.Singleton(model.KindISAFile)
	endian, _ := m.Singleton(model.KindEndian)

	arch := &Architecture{
		Name: name.Text,
		File: name.Pos.File,
		Ctor: &Constructor{ISAName: isa.Text, Endian: endian.Text, Source: src(isa.Pos)},
	}
	if v, ok := m.Singleton(model.KindWordSize); ok {
		arch.WordSize = &Size{Value: v.Number, Source: src(v.Pos)}
	}
	if v, ok := m.Singleton(model.KindFetchSize); ok {
		arch.FetchSize = &Size{Value: v.Number, Source: src(v.Pos)}
	}
	arch.Doc = b.docRecord(name.Text + ".ac")
	return arch
}

func (b *builder) isa() *ISA {
	m := b.ctx.Model
	name, _ := m.Singleton(model.KindISAFile)
	base := filepath.Base(name.Text)

	isa := &ISA{
		Name:               name.Text,
		File:               name.Text,
		CommentMarkers:     b.ctx.Attributes.Comments,
		LineCommentMarkers: b.ctx.Attributes.LineComments,
	}
	for _, s := range b.ctx.Sources {
		if filepath.Base(s) == base {
			isa.File = s
			break
		}
	}
	if v, ok := m.Singleton(model.KindHelper); ok {
		isa.Helper = &Helper{Text: v.Text, Source: src(v.Pos)}
	}
	isa.Doc = b.docRecord(base)
	return isa
}

func (b *builder) docRecord(file string) *model.DocRecord {
	rec, ok := b.ctx.Docs.Lookup(file)
	if !ok {
		b.log.Debug("no documentation record", slog.String("doc", file))
		return nil
	}
	return rec
}

func (b *builder) register(d *model.Declaration) {
	b.doc.Arch.Registers = append(b.doc.Arch.Registers, &Register{Name: d.Name, Param: d.Param, Source: src(d.Pos)})
}

func (b *builder) registerBank(d *model.Declaration) {
	b.doc.Arch.RegisterBanks = append(b.doc.Arch.RegisterBanks, &RegisterBank{Name: d.Name, Size: d.Size, Param: d.Param, Source: src(d.Pos)})
}

func (b *builder) memory(d *model.Declaration) {
	b.doc.Arch.Memories = append(b.doc.Arch.Memories, &Memory{Name: d.Name, Size: d.Size, Source: src(d.Pos)})
}

func cacheBuilder(kind CacheKind) builderFunc {
	return func(b *builder, d *model.Declaration) {
		b.doc.Arch.Caches = append(b.doc.Arch.Caches, &Cache{Kind: kind, Name: d.Name, Size: d.Size, Source: src(d.Pos)})
	}
}

func portBuilder(kind PortKind) builderFunc {
	return func(b *builder, d *model.Declaration) {
		b.doc.Arch.Ports = append(b.doc.Arch.Ports, &Port{Kind: kind, Name: d.Name, Size: d.Size, Source: src(d.Pos)})
	}
}

func (b *builder) stage(d *model.Declaration) {
	b.doc.Arch.Stages = append(b.doc.Arch.Stages, &Stage{Name: d.Name, Source: src(d.Pos)})
}

func (b *builder) pipe(d *model.Declaration) {
	b.doc.Arch.Pipes = append(b.doc.Arch.Pipes, &Pipe{Name: d.Name, Stages: d.Lists, Source: src(d.Pos)})
}

func (b *builder) bind(d *model.Declaration) {
	b.doc.Arch.Ctor.Binds = append(b.doc.Arch.Ctor.Binds, &Bind{From: d.Name, To: d.Target, Source: src(d.Pos)})
}

func (b *builder) format(d *model.Declaration) {
	f := &Format{
		Name:         d.Name,
		Fields:       d.Fields,
		Instructions: b.ctx.Instructions.InstructionsOf(d.Name),
		Source:       src(d.Pos),
	}
	if pos, ok := b.ctx.Occurrences.Lookup(model.KindFormat, d.Name); ok {
		f.Source = src(pos)
	}
	b.doc.ISA.Formats = append(b.doc.ISA.Formats, f)
}

func (b *builder) group(d *model.Declaration) {
	b.doc.ISA.Groups = append(b.doc.ISA.Groups, &Group{Name: d.Name, Members: d.Lists, Source: src(d.Pos)})
}

func (b *builder) asmMap(d *model.Declaration) {
	b.doc.ISA.AsmMaps = append(b.doc.ISA.AsmMaps, &AsmMap{Name: d.Name, Mappings: d.Mappings, Source: src(d.Pos)})
}

func (b *builder) pseudo(d *model.Declaration) {
	b.doc.ISA.Pseudos = append(b.doc.ISA.Pseudos, &Pseudo{Name: d.Name, Bodies: d.Lists, Source: src(d.Pos)})
}

// instructions follows instruction table order.
func (b *builder) instructions() {
	for _, name := range b.ctx.Instructions.Names() {
		format, _ := b.ctx.Instructions.Format(name)
		in := &Instruction{Name: name, Format: format, Source: src(b.ctx.Instructions.Position(name))}
		if attrs, ok := b.ctx.Attributes.Lookup(name); ok {
			in.Decoder = attrs.Decoder
			in.Asm = attrs.Asm
			in.Cycles = attrs.Cycles
			in.CycleRange = attrs.CycleRange
			for _, kind := range model.AttributeKinds() {
				for _, text := range attrs.Clauses[kind] {
					in.Attributes = append(in.Attributes, Attribute{Kind: kind, Text: text})
				}
			}
		}
		b.doc.ISA.Instructions = append(b.doc.ISA.Instructions, in)
	}
}
