package render

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"acdoc/pkg/acparser"
	"acdoc/pkg/apidoc"
	"acdoc/pkg/ast"
	"acdoc/pkg/model"
)

func TestSourceIndex(t *testing.T) {
	lines := make([]string, 50)
	lines[10] = "  ac_regbank r0bank:32;"
	lines[41] = "ac_reg r0;"
	lines[44] = "ac_reg r0; // again"
	lines[45] = "ac_wordsize 32;"

	idx := NewSourceIndex("mips_source.html", lines, [][]string{
		{"ac_reg", "r0"},
		{"ac_reg", "r0"},
		{"ac_mem", "DM"},
		{"ac_wordsize"},
		{},
	})

	tests := []struct {
		name string
		key  []string
		line int
		link string
	}{
		{"First Match", []string{"ac_reg", "r0"}, 11, "&nbsp;&nbsp;&nbsp;&nbsp;<a href=mips_source.html#l11>[see source code]</a>"},
		{"Single Literal", []string{"ac_wordsize"}, 46, "&nbsp;&nbsp;&nbsp;&nbsp;<a href=mips_source.html#l46>[see source code]</a>"},
		{"Miss", []string{"ac_mem", "DM"}, 0, ""},
		{"Unregistered", []string{"ac_stage", "IF"}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, _ := idx.Line(tt.key...)
			if line != tt.line {
				t.Errorf("line: expected %d, got %d", tt.line, line)
			}
			if got := idx.Link(tt.key...); got != tt.link {
				t.Errorf("link: expected %q, got %q", tt.link, got)
			}
		})
	}
}

func TestSourceIndexLine42(t *testing.T) {
	lines := make([]string, 60)
	lines[41] = "ac_reg r0;"
	idx := NewSourceIndex("mips_source.html", lines, [][]string{{"ac_reg", "r0"}, {"ac_reg", "r1"}})

	if link := idx.Link("ac_reg", "r0"); !strings.Contains(link, "mips_source.html#l42") {
		t.Errorf("r0: expected a link to #l42, got %q", link)
	}
	if link := idx.Link("ac_reg", "r1"); link != "" {
		t.Errorf("r1: expected no link, got %q", link)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		src      string
		expected []string
	}{
		{"", nil},
		{"a\nb\n", []string{"a", "b"}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\n\nb\n", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		if got := splitLines([]byte(tt.src)); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("%q: expected %q, got %q", tt.src, tt.expected, got)
		}
	}
}

func TestKeywordLink(t *testing.T) {
	tests := []struct {
		word     string
		expected string
	}{
		{"ac_reg", "<a href='http://www.archc.org/'>ac_reg</a>"},
		{"ARCH_CTOR", "<a href='http://www.archc.org/'>ARCH_CTOR</a>"},
		{"delay_cond", "<a href='http://www.archc.org/'>delay_cond</a>"},
		{"ac_register", "ac_register"},
		{"<b>", "&lt;b&gt;"},
	}
	for _, tt := range tests {
		if got := KeywordLink(tt.word); got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.word, tt.expected, got)
		}
	}
}

func TestKeywordTableOrder(t *testing.T) {
	// A keyword containing another must be tried first.
	for i, outer := range keywords {
		for _, inner := range keywords[:i] {
			if strings.Contains(outer.word, inner.word) {
				t.Errorf("%s is shadowed by %s", outer.word, inner.word)
			}
		}
	}
}

func TestHighlightLine(t *testing.T) {
	green := func(s string) string { return `<font color="green">` + s + `</font>` }
	gray := func(s string) string { return `<font color="gray">` + s + `</font>` }

	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"Keyword", "ac_reg r0;", green("ac_reg") + " r0;"},
		{"Line Comment", "ac_reg r0; // ac_mem", green("ac_reg") + " r0; " + gray("// ac_mem")},
		{"Keyword In Comment", "// ac_reg r0;", gray("// ac_reg r0;")},
		{
			"String",
			`ac_isa("mips_isa.ac");`,
			green("ac_isa") + `(<font color="brown">&#34;mips_isa.ac&#34;</font>);`,
		},
		{
			"Unterminated String",
			`set_asm("x`,
			`<font color="blue">set_asm</font>(<font color="brown">&#34;x</font>`,
		},
		{"One Keyword Per Line", "ac_reg a; ac_mem b;", green("ac_reg") + " a; ac_mem b;"},
		{"Table Order Wins", "ac_mem m; ac_reg r;", "ac_mem m; " + green("ac_reg") + " r;"},
		{"Longest First", "ac_regbank<32> RB:32;", green("ac_regbank") + "&lt;32&gt; RB:32;"},
		{
			"Inline Block Comment",
			"a /* x */ ac_reg r;",
			"a " + gray("/* x */") + " " + green("ac_reg") + " r;",
		},
		{"Plain", "  x = y;", "  x = y;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h Highlighter
			if got := h.Line(tt.line); got != tt.expected {
				t.Errorf("expected\n%s\ngot\n%s", tt.expected, got)
			}
			if h.InComment() {
				t.Errorf("no block comment should remain open")
			}
		})
	}
}

func TestHighlightCarriesBlockComment(t *testing.T) {
	lines := []struct {
		text      string
		expected  string
		inComment bool
	}{
		{"/* start ac_reg", `<font color="gray">/* start ac_reg</font>`, true},
		{"still ac_mem", `<font color="gray">still ac_mem</font>`, true},
		{"end */ ac_mem", `<font color="gray">end */ ac_mem</font>`, false},
		{"ac_mem x;", `<font color="green">ac_mem</font> x;`, false},
	}
	var h Highlighter
	for i, l := range lines {
		if got := h.Line(l.text); got != l.expected {
			t.Errorf("line %d: expected %q, got %q", i+1, l.expected, got)
		}
		if h.InComment() != l.inComment {
			t.Errorf("line %d: expected in comment %v, got %v", i+1, l.inComment, h.InComment())
		}
	}
}

const e2eArch = `AC_ARCH(mips){
  ac_wordsize 32;
  ac_reg r0;
  ac_stage IF, ID;
  ARCH_CTOR(mips) {
    ac_isa("mips_isa.ac");
    set_endian("big");
  };
};
`

const e2eISA = `AC_ISA(mips){
  ac_format Rtype = "%op:6 %rs:5 %rt:5 %rd:5 %shamt:5 %func:6";
  ac_instr<Rtype> add;
  ISA_CTOR(mips){
    add.set_decoder(op=0x00, func=0x20);
  };
};
`

func buildDocument(t *testing.T, dir string) *ast.Document {
	t.Helper()
	for name, src := range map[string]string{"mips.ac": e2eArch, "mips_isa.ac": e2eISA} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	ctx := model.NewContext(nil)
	if err := acparser.ParseFiles(ctx, filepath.Join(dir, "mips.ac")); err != nil {
		t.Fatalf("ParseFiles: %v", err)
	}
	doc, err := ast.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return doc
}

func readPage(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(b)
}

func TestRender(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	doc := buildDocument(t, srcDir)

	anchorsFile := filepath.Join(srcDir, "isa_8cpp.html")
	if err := os.WriteFile(anchorsFile, []byte(`<a class="anchor" id="x1" args="(add)"></a>`), 0o644); err != nil {
		t.Fatal(err)
	}
	anchors, err := apidoc.Load(anchorsFile, nil)
	if err != nil {
		t.Fatal(err)
	}

	written, err := Render(doc, Options{OutDir: outDir, Anchors: anchors, Diagram: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	var names []string
	for _, w := range written {
		names = append(names, filepath.Base(w))
	}
	expected := []string{
		"mips_pipeline.png",
		"mips_index.html",
		"mips_isa.html",
		"mips_other.html",
		"mips_source.html",
		"mips_isa_source.html",
	}
	if !reflect.DeepEqual(names, expected) {
		t.Fatalf("written: expected %v, got %v", expected, names)
	}

	index := readPage(t, outDir, "mips_index.html")
	for _, want := range []string{
		"<link href='style.css' rel='stylesheet' type='text/css' />",
		"Word size (<a href='http://www.archc.org/'>ac_wordsize</a>):<div class='desc'>Size: 32",
		"Big Endian",
		"Register (<a href='http://www.archc.org/'>ac_reg</a>):<div class='desc'>Name: r0" +
			"&nbsp;&nbsp;&nbsp;&nbsp;<a href=mips_source.html#l3>[see source code]</a>",
		"<a href=mips_isa.html>mips Instruction Set and Formats</a>",
		"<img src='mips_pipeline.png'",
	} {
		if !strings.Contains(index, want) {
			t.Errorf("index page: missing %q", want)
		}
	}
	if strings.Count(index, "class='ac_reg'") != 1 {
		t.Errorf("index page: expected exactly one register block")
	}
	if strings.Contains(index, "<a href=mips_index.html>") {
		t.Errorf("index page must not link to itself")
	}

	isa := readPage(t, outDir, "mips_isa.html")
	for _, want := range []string{
		"Instructions: <a href='#add'>add</a>",
		"Instruction Type: <a href='#Rtype'>Rtype</a>",
		"<a name='add'></a><a href='" + filepath.ToSlash(anchorsFile) + "#x1'>add</a>",
		"<a name='Rtype'></a>Rtype",
		"Format Description: %op:6 %rs:5 %rt:5 %rd:5 %shamt:5 %func:6",
		"Decoder: op=0; func=32; ",
		"<a href=mips_isa_source.html#l2>[see source code]</a>",
		"<a href=mips_isa_source.html#l3>[see source code]</a>",
	} {
		if !strings.Contains(isa, want) {
			t.Errorf("ISA page: missing %q", want)
		}
	}

	source := readPage(t, outDir, "mips_source.html")
	if !strings.Contains(source, "<li><a name=l3>00003</a>&nbsp;&nbsp;&nbsp;&nbsp;   <font color=\"green\">ac_reg</font> r0;</li>") {
		t.Errorf("source page: line 3 not rendered as expected:\n%s", source)
	}
}

func TestRenderWithoutOptionalInputs(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	doc := buildDocument(t, srcDir)

	written, err := Render(doc, Options{OutDir: outDir, Stylesheet: "acdoc.css"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(written) != 5 {
		t.Errorf("expected 5 pages without a diagram, got %d", len(written))
	}
	isa := readPage(t, outDir, "mips_isa.html")
	if !strings.Contains(isa, "<a name='add'></a>add (") {
		t.Errorf("ISA page: expected plain instruction name without anchors")
	}
	if !strings.Contains(isa, "<link href='acdoc.css'") {
		t.Errorf("ISA page: stylesheet override not applied")
	}
}

func TestRenderSourcePageNames(t *testing.T) {
	tests := []struct {
		name     string
		isaFile  string
		expected string
	}{
		{"Dotted ISA Name", "mips.isa.ac", "mips.isa_source.html"},
		{"Same Stem Elsewhere", filepath.Join("isa", "mips.ac"), "mips_isa_source.html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srcDir := t.TempDir()
			outDir := t.TempDir()
			arch := strings.Replace(e2eArch, `ac_isa("mips_isa.ac")`, `ac_isa("`+filepath.ToSlash(tt.isaFile)+`")`, 1)
			if err := os.MkdirAll(filepath.Join(srcDir, "isa"), 0o755); err != nil {
				t.Fatal(err)
			}
			files := map[string]string{"mips.ac": arch, tt.isaFile: e2eISA}
			for name, src := range files {
				if err := os.WriteFile(filepath.Join(srcDir, name), []byte(src), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			ctx := model.NewContext(nil)
			if err := acparser.ParseFiles(ctx, filepath.Join(srcDir, "mips.ac")); err != nil {
				t.Fatalf("ParseFiles: %v", err)
			}
			doc, err := ast.Build(ctx)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}

			written, err := Render(doc, Options{OutDir: outDir})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			var names []string
			for _, w := range written {
				names = append(names, filepath.Base(w))
			}
			expected := []string{"mips_index.html", "mips_isa.html", "mips_other.html", "mips_source.html", tt.expected}
			if !reflect.DeepEqual(names, expected) {
				t.Fatalf("written: expected %v, got %v", expected, names)
			}

			isa := readPage(t, outDir, "mips_isa.html")
			if !strings.Contains(isa, "<a href="+tt.expected+"#l2>[see source code]</a>") {
				t.Errorf("ISA page: source links do not point at %s", tt.expected)
			}
			if strings.Contains(isa, "<a href=mips_source.html#l2>") {
				t.Errorf("ISA page: source link points into the architecture listing")
			}
		})
	}
}
