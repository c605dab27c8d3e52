package acparser

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"acdoc/pkg/model"
)

const testArch = `/**
 \file mips.ac
 \author The ArchC Team
 \brief MIPS-I functional model
 */
AC_ARCH(mips){

  ac_mem   DM:5M;
  ac_icache IC[32K], IC2:1K;
  ac_regbank<32> RB:32;
  ac_reg npc, hi;
  ac_reg<8> lo;
  ac_wordsize 32;
  ac_fetchsize 0x20;
  ac_tlm_port  DATA_PORT:1M;
  ac_stage IF, ID, EX;
  ac_pipe pipe = {IF, ID, EX};

  ARCH_CTOR(mips) {
    ac_isa("mips_isa.ac");
    set_endian("big");
    DM.bindsTo(IC);
  };
};
`

const testISA = `AC_ISA(mips){

  ac_format Type_R = "%op:6 %rs:5 %rt:5 %rd:5 %shamt:5 %func:6";
  ac_format Type_I = "%op:6 %rs:5 %rt:5 %imm:16:s";
  ac_format Type_X = "0x3F:6 [%a:5 | %b:3 %c:2] %rest:21";

  ac_instr<Type_R> add, sub;
  ac_instr<Type_I> addi;

  ac_asm_map reg {
    "$"[0..31] = [0..31];
    "$zero" = 0;
    "$at", "$1" = 1;
    [0..7] "s" = [16..23];
  }

  ac_group branch { beq, bne };

  pseudo_instr("li %reg, %imm") {
    "lui %0, %1";
    "ori %0, %0, %1";
  }
  pseudo_instr("li %reg, %imm") {
    "addiu %0, $zero, %1";
  }

  ac_helper {
    int counter;
    void reset() { counter = 0; }
  };

  assembler.set_comment("#");

  ISA_CTOR(mips){
    add.set_asm("add %reg, %reg, %reg", rd, rs, rt);
    add.set_asm("move %reg, %reg", rd, rs, rt=0);
    add.set_decoder(op=0x00, func=0x20);
    addi.set_decoder(op=0x08);
    add.behavior( rd = rs + rt; );
    add.delay(1);
    add.delay(2);
    addi.set_cycles(2);
    add.cycle_range(1, 3);
  };
};
`

func parseTestFiles(t *testing.T, logger *slog.Logger) *model.Context {
	t.Helper()
	ctx := model.NewContext(logger)
	if err := ParseArchitecture(ctx, "mips.ac", testArch); err != nil {
		t.Fatalf("ParseArchitecture: %v", err)
	}
	if err := ParseISA(ctx, "mips_isa.ac", testISA); err != nil {
		t.Fatalf("ParseISA: %v", err)
	}
	return ctx
}

func TestParseArchitecture(t *testing.T) {
	ctx := parseTestFiles(t, nil)
	m := ctx.Model

	singletons := []struct {
		kind   model.DeclarationKind
		text   string
		number uint64
	}{
		{model.KindArchName, "mips", 0},
		{model.KindISAFile, "mips_isa.ac", 0},
		{model.KindEndian, "big", 0},
		{model.KindWordSize, "", 32},
		{model.KindFetchSize, "", 32},
	}
	for _, s := range singletons {
		v, ok := m.Singleton(s.kind)
		if !ok {
			t.Errorf("%s: not recorded", s.kind)
			continue
		}
		if v.Text != s.text || v.Number != s.number {
			t.Errorf("%s: expected (%q, %d), got (%q, %d)", s.kind, s.text, s.number, v.Text, v.Number)
		}
	}

	sizes := []struct {
		kind model.DeclarationKind
		name string
		size uint64
	}{
		{model.KindMem, "DM", 5 << 20},
		{model.KindICache, "IC", 32 << 10},
		{model.KindICache, "IC2", 1 << 10},
		{model.KindRegBank, "RB", 32},
		{model.KindTLMPort, "DATA_PORT", 1 << 20},
	}
	for _, s := range sizes {
		d, ok := m.Table(s.kind).Lookup(s.name)
		if !ok {
			t.Errorf("%s %s: not declared", s.kind, s.name)
			continue
		}
		if d.Size != s.size {
			t.Errorf("%s %s: expected size %d, got %d", s.kind, s.name, s.size, d.Size)
		}
	}

	rb, _ := m.Table(model.KindRegBank).Lookup("RB")
	if !reflect.DeepEqual(rb.Param, model.Param{Set: true, Number: 32}) {
		t.Errorf("RB param: expected 32, got %+v", rb.Param)
	}
	if got := m.Table(model.KindReg).Names(); !reflect.DeepEqual(got, []string{"npc", "hi", "lo"}) {
		t.Errorf("registers: expected [npc hi lo], got %v", got)
	}
	npc, _ := m.Table(model.KindReg).Lookup("npc")
	if npc.Param.Set {
		t.Errorf("npc param: expected unset, got %+v", npc.Param)
	}
	if npc.Pos.Line != 11 || npc.Pos.File != "mips.ac" {
		t.Errorf("npc position: expected mips.ac line 11, got %s", npc.Pos)
	}
	lo, _ := m.Table(model.KindReg).Lookup("lo")
	if lo.Param.Number != 8 {
		t.Errorf("lo param: expected 8, got %+v", lo.Param)
	}

	pipe, _ := m.Table(model.KindPipe).Lookup("pipe")
	if !reflect.DeepEqual(pipe.Lists, [][]string{{"IF", "ID", "EX"}}) {
		t.Errorf("pipe: expected [[IF ID EX]], got %v", pipe.Lists)
	}
	bind, _ := m.Table(model.KindBind).Lookup("DM")
	if bind == nil || bind.Target != "IC" {
		t.Errorf("bind: expected DM -> IC, got %v", spew.Sdump(bind))
	}
}

func TestItemFormsAreEquivalent(t *testing.T) {
	parse := func(decl string) *model.Declaration {
		ctx := model.NewContext(nil)
		src := "AC_ARCH(a){ " + decl + " ARCH_CTOR(a){}; };"
		if err := ParseArchitecture(ctx, "a.ac", src); err != nil {
			t.Fatalf("%s: %v", decl, err)
		}
		d, ok := ctx.Model.Table(model.KindMem).Lookup("name")
		if !ok {
			t.Fatalf("%s: name not declared", decl)
		}
		return d
	}
	brackets := parse("ac_mem name[32];")
	colon := parse("ac_mem name:32;")
	if brackets.Name != colon.Name || brackets.Size != colon.Size || brackets.Size != 32 {
		t.Errorf("expected identical (name, 32) pairs, got (%s, %d) and (%s, %d)",
			brackets.Name, brackets.Size, colon.Name, colon.Size)
	}
}

func TestParseISA(t *testing.T) {
	ctx := parseTestFiles(t, nil)
	m := ctx.Model

	if got := ctx.Instructions.Names(); !reflect.DeepEqual(got, []string{"add", "sub", "addi"}) {
		t.Errorf("instructions: expected [add sub addi], got %v", got)
	}
	if f, _ := ctx.Instructions.Format("addi"); f != "Type_I" {
		t.Errorf("addi format: expected Type_I, got %s", f)
	}

	typeI, _ := m.Table(model.KindFormat).Lookup("Type_I")
	expectedI := []model.FormatField{
		{Name: "op", Width: 6},
		{Name: "rs", Width: 5},
		{Name: "rt", Width: 5},
		{Name: "imm", Width: 16, Signed: true},
	}
	if !reflect.DeepEqual(typeI.Fields, expectedI) {
		t.Errorf("Type_I fields:\nexpected %v\ngot      %v", expectedI, typeI.Fields)
	}
	typeX, _ := m.Table(model.KindFormat).Lookup("Type_X")
	if got := model.FormatString(typeX.Fields); got != "0x3F:6 [%a:5 | %b:3 %c:2] %rest:21" {
		t.Errorf("Type_X: got %s", got)
	}
	if pos, ok := ctx.Occurrences.Lookup(model.KindFormat, "Type_R"); !ok || pos.Line != 3 {
		t.Errorf("Type_R occurrence: expected line 3, got %v", pos)
	}

	asmMap, _ := m.Table(model.KindAsmMap).Lookup("reg")
	if len(asmMap.Mappings) != 4 {
		t.Fatalf("asm map: expected 4 mappings, got %d", len(asmMap.Mappings))
	}
	expectedMap := []string{`"$"[0..31] = [0..31]`, `"$zero" = 0`, `"$at", "$1" = 1`, `[0..7]"s" = [16..23]`}
	for i, mp := range asmMap.Mappings {
		if mp.String() != expectedMap[i] {
			t.Errorf("mapping %d: expected %s, got %s", i, expectedMap[i], mp.String())
		}
	}

	group, _ := m.Table(model.KindGroup).Lookup("branch")
	if !reflect.DeepEqual(group.Lists, [][]string{{"beq", "bne"}}) {
		t.Errorf("group: got %v", group.Lists)
	}

	helper, _ := m.Singleton(model.KindHelper)
	if !strings.Contains(helper.Text, "void reset() { counter = 0; }") || strings.Contains(helper.Text, "};") {
		t.Errorf("helper text: got %q", helper.Text)
	}
	if !reflect.DeepEqual(ctx.Attributes.Comments, []string{"#"}) {
		t.Errorf("assembler comments: got %v", ctx.Attributes.Comments)
	}
}

func TestPseudoInstructionBodiesAccumulate(t *testing.T) {
	ctx := parseTestFiles(t, nil)
	d, ok := ctx.Model.Table(model.KindPseudo).Lookup("li %reg, %imm")
	if !ok {
		t.Fatal("pseudo-instruction not declared")
	}
	expected := [][]string{
		{"lui %0, %1", "ori %0, %0, %1"},
		{"addiu %0, $zero, %1"},
	}
	if !reflect.DeepEqual(d.Lists, expected) {
		t.Errorf("expected %v, got %v", expected, d.Lists)
	}
}

func TestInstructionAttributes(t *testing.T) {
	ctx := parseTestFiles(t, nil)
	add, ok := ctx.Attributes.Lookup("add")
	if !ok {
		t.Fatal("no attributes for add")
	}

	expectedDecoder := []model.DecoderField{{Name: "op", Value: 0}, {Name: "func", Value: 32}}
	if !reflect.DeepEqual(add.Decoder, expectedDecoder) {
		t.Errorf("decoder: expected %v, got %v", expectedDecoder, add.Decoder)
	}
	if len(add.Asm) != 2 {
		t.Fatalf("asm: expected 2 syntaxes, got %d", len(add.Asm))
	}
	if got := add.Asm[1].String(); got != `"move %reg, %reg", rd, rs, rt=0` {
		t.Errorf("asm[1]: got %s", got)
	}

	tests := []struct {
		kind     model.AttributeKind
		expected []string
	}{
		{model.AttrBehavior, []string{" rd = rs + rt; "}},
		{model.AttrDelay, []string{"1", "2"}},
		{model.AttrIsJump, nil},
	}
	for _, tt := range tests {
		if got := add.Clauses[tt.kind]; !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("%s: expected %q, got %q", tt.kind, tt.expected, got)
		}
	}

	if add.CycleRange == nil || *add.CycleRange != (model.CycleRange{Min: 1, Max: 3}) {
		t.Errorf("cycle range: got %v", add.CycleRange)
	}
	addi, _ := ctx.Attributes.Lookup("addi")
	if addi.Cycles == nil || *addi.Cycles != 2 {
		t.Errorf("addi cycles: got %v", addi.Cycles)
	}
}

func TestOversizedLiteralsInFreeText(t *testing.T) {
	src := `AC_ISA(a){
  ac_format F = "%op:8";
  ac_instr<F> add;
  ac_helper {
    unsigned long long big = 99999999999999999999ULL;
  };
  ISA_CTOR(a){
    add.behavior( x = 0x1FFFFFFFFFFFFFFFFF; );
  };
};`
	ctx := model.NewContext(nil)
	if err := ParseISA(ctx, "a_isa.ac", src); err != nil {
		t.Fatalf("ParseISA: %v", err)
	}

	helper, _ := ctx.Model.Singleton(model.KindHelper)
	if !strings.Contains(helper.Text, "99999999999999999999ULL") {
		t.Errorf("helper text: got %q", helper.Text)
	}
	add, ok := ctx.Attributes.Lookup("add")
	if !ok {
		t.Fatal("no attributes for add")
	}
	behavior := add.Clauses[model.AttrBehavior]
	if len(behavior) != 1 || !strings.Contains(behavior[0], "0x1FFFFFFFFFFFFFFFFF") {
		t.Errorf("behavior: got %q", behavior)
	}
}

func TestParseDuplicates(t *testing.T) {
	tests := []struct {
		name string
		body string
		dup  string
	}{
		{"Register", "ac_reg r0; ac_reg r1, r0;", "r0"},
		{"Memory", "ac_mem M:1K, M[2K];", "M"},
		{"Stage", "ac_stage IF, IF;", "IF"},
		{"Word Size", "ac_wordsize 32; ac_wordsize 64;", "ac_wordsize"},
		{"Format", `ac_format F = "%a:8"; ac_format F = "%b:8";`, "F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := model.NewContext(nil)
			src := "AC_ARCH(a){\n" + tt.body + "\nARCH_CTOR(a){};\n};"
			err := ParseArchitecture(ctx, "a.ac", src)
			var dup *model.DuplicateSymbolError
			if !errors.As(err, &dup) {
				t.Fatalf("expected *DuplicateSymbolError, got %v", err)
			}
			if dup.Name != tt.dup {
				t.Errorf("name: expected %s, got %s", tt.dup, dup.Name)
			}
			if dup.Pos.Line != 2 {
				t.Errorf("line: expected 2, got %d", dup.Pos.Line)
			}
		})
	}
}

func TestDuplicateInstruction(t *testing.T) {
	ctx := model.NewContext(nil)
	src := "AC_ISA(a){ ac_instr<F> add; ac_instr<G> add; ISA_CTOR(a){}; };"
	err := ParseISA(ctx, "a_isa.ac", src)
	var dup *model.DuplicateSymbolError
	if !errors.As(err, &dup) || dup.Name != "add" {
		t.Fatalf("expected duplicate add, got %v", err)
	}
	if dup.Keyword != model.InstrKeyword {
		t.Errorf("keyword: expected ac_instr, got %q", dup.Keyword)
	}
}

func TestHeaderMismatchIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := model.NewContext(logger)

	src := "AC_ARCH(mips){ ac_wordsize 32; ARCH_CTOR(mipz){ set_endian(\"little\"); }; };"
	if err := ParseArchitecture(ctx, "mips.ac", src); err != nil {
		t.Fatalf("mismatch must not abort: %v", err)
	}
	if !strings.Contains(buf.String(), "ARCH_CTOR should have mips as parameter, got mipz") {
		t.Errorf("expected mismatch warning, got %q", buf.String())
	}
	if v, ok := ctx.Model.Singleton(model.KindEndian); !ok || v.Text != "little" {
		t.Errorf("parsing should continue past the header, endian = %+v", v)
	}

	buf.Reset()
	if err := ParseISA(ctx, "mips_isa.ac", "AC_ISA(other){ ISA_CTOR(mips){}; };"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "AC_ISA should have mips as parameter, got other") {
		t.Errorf("expected AC_ISA mismatch warning, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "ISA_CTOR") {
		t.Errorf("unexpected ISA_CTOR warning: %q", buf.String())
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		line, col int
		msg       string
	}{
		{
			name: "Missing Semicolon",
			src:  "AC_ARCH(a){\n  ac_reg r0\n  ARCH_CTOR(a){};\n};",
			line: 3, col: 3,
			msg: "expected SEMICOLON",
		},
		{
			name: "Bad Endian",
			src:  "AC_ARCH(a){\n ARCH_CTOR(a){\n   set_endian(\"middle\");\n }; };",
			line: 3, col: 15,
			msg: `expected "big" or "little"`,
		},
		{
			name: "Bad Format Field",
			src:  "AC_ARCH(a){\nac_format F = \"%a:8 %b\";\nARCH_CTOR(a){}; };",
			line: 2, col: 23,
			msg: "format F",
		},
		{
			name: "Trailing Input",
			src:  "AC_ARCH(a){ ARCH_CTOR(a){}; };\nac_reg x;",
			line: 2, col: 1,
			msg: "after end of description",
		},
		{
			name: "Missing Constructor",
			src:  "AC_ARCH(a){ ac_reg x; };",
			line: 1, col: 23,
			msg: "expected ARCH_CTOR",
		},
		{
			name: "Oversized Word Size",
			src:  "AC_ARCH(a){\n  ac_wordsize 99999999999999999999;\n  ARCH_CTOR(a){};\n};",
			line: 2, col: 15,
			msg: "invalid number",
		},
		{
			name: "Size Overflow",
			src:  "AC_ARCH(a){\n  ac_mem M:20000000T;\n  ARCH_CTOR(a){};\n};",
			line: 2, col: 12,
			msg: `size "20000000T" overflows`,
		},
		{
			name: "Oversized Register Parameter",
			src:  "AC_ARCH(a){\n  ac_reg<0x1FFFFFFFFFFFFFFFFF> r;\n  ARCH_CTOR(a){};\n};",
			line: 2, col: 10,
			msg: "invalid number",
		},
		{
			name: "Doc Comment Without File",
			src:  "/**\n \\brief nothing\n*/\nAC_ARCH(a){ ARCH_CTOR(a){}; };",
			line: 1, col: 1,
			msg: `\file`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseArchitecture(model.NewContext(nil), "a.ac", tt.src)
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if serr.Line != tt.line || serr.Column != tt.col {
				t.Errorf("position: expected %d:%d, got %d:%d (%v)", tt.line, tt.col, serr.Line, serr.Column, err)
			}
			if !strings.Contains(serr.Msg, tt.msg) {
				t.Errorf("message: expected %q in %q", tt.msg, serr.Msg)
			}
		})
	}
}

func TestDocCommentsMerge(t *testing.T) {
	ctx := parseTestFiles(t, nil)
	extra := "/**\n \\file mips.ac\n \\brief replaced\n \\version 2\n */\nAC_ISA(mips){ ISA_CTOR(mips){}; };"
	if err := ParseISA(ctx, "extra.ac", extra); err != nil {
		t.Fatal(err)
	}
	rec, ok := ctx.Docs.Lookup("mips.ac")
	if !ok {
		t.Fatal("no doc record for mips.ac")
	}
	expected := []model.DocEntry{
		{Tag: "author", Text: "The ArchC Team"},
		{Tag: "brief", Text: "replaced"},
		{Tag: "version", Text: "2"},
	}
	if !reflect.DeepEqual(rec.Entries, expected) {
		t.Errorf("expected %v, got %v", expected, rec.Entries)
	}
}
