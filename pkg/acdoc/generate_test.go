package acdoc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"acdoc/pkg/acparser"
	"acdoc/pkg/config"
	"acdoc/pkg/model"
)

func TestGenerate(t *testing.T) {
	out := t.TempDir()
	written, err := Generate(filepath.Join("testdata", "mips", "mips.ac"), Options{OutDir: out, Diagram: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(written) != 6 {
		t.Errorf("expected 6 files, got %d: %v", len(written), written)
	}

	pages := map[string][]string{
		"mips_index.html": {
			"Name: mips",
			"Size: 32",
			"Value: 32",
			"Big Endian",
			"Binds to: DM -&gt; IC",
			"Instructions Cache (",
			"TLM Port (",
			"Name: npc",
			"Value: 8",
			"brief:<br/>MIPS-I functional model",
			"Stages: IF, ID, EX",
		},
		"mips_isa.html": {
			"Instructions: <a href='#add'>add</a> <a href='#sub'>sub</a>",
			"Instruction Type: <a href='#Type_I'>Type_I</a>",
			"ASM: &#34;add %reg, %reg, %reg&#34;, rd, rs, rt",
			"Delay: 1<br/>\nDelay: 2",
			"Cycles: 2",
			"Cycle Range: 1..3",
			"Format Description: 0x3F:6 [%a:5 | %b:3 %c:2] %rest:21",
		},
		"mips_other.html": {
			"branch (<a href='http://www.archc.org/'>ac_group</a>)",
			"Elements: beq, bne",
			"Maps: &#34;$zero&#34; = 0",
			"lui %0, %1",
			"addiu %0, $zero, %1",
			"Comment markers: #",
			"int counter;",
		},
		"mips_source.html":     {"<a name=l1>00001</a>"},
		"mips_isa_source.html": {`<font color="green">ac_format</font>`},
	}
	for name, wants := range pages {
		data, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		for _, want := range wants {
			if !strings.Contains(string(data), want) {
				t.Errorf("%s: missing %q", name, want)
			}
		}
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		check func(t *testing.T, err error)
	}{
		{
			"Syntax Error",
			filepath.Join("testdata", "broken", "broken.ac"),
			func(t *testing.T, err error) {
				var se *acparser.SyntaxError
				if !errors.As(err, &se) {
					t.Fatalf("expected *acparser.SyntaxError, got %v", err)
				}
				if se.Line != 4 || se.Column != 3 {
					t.Errorf("position: expected 4:3, got %d:%d", se.Line, se.Column)
				}
			},
		},
		{
			"Duplicate Register",
			filepath.Join("testdata", "dup", "dup.ac"),
			func(t *testing.T, err error) {
				var dup *model.DuplicateSymbolError
				if !errors.As(err, &dup) {
					t.Fatalf("expected *model.DuplicateSymbolError, got %v", err)
				}
				if dup.Name != "r0" || dup.Kind != model.KindReg {
					t.Errorf("expected duplicate ac_reg r0, got %s %s", dup.Kind, dup.Name)
				}
			},
		},
		{
			"Missing ISA File",
			filepath.Join("testdata", "noisa", "noisa.ac"),
			func(t *testing.T, err error) {
				if !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("expected a not-exist error, got %v", err)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			written, err := Generate(tt.path, Options{OutDir: out, Diagram: true})
			tt.check(t, err)
			if len(written) != 0 {
				t.Errorf("expected nothing written, got %v", written)
			}
			entries, _ := os.ReadDir(out)
			if len(entries) != 0 {
				t.Errorf("expected an empty output directory, found %d entries", len(entries))
			}
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	c := config.Default()
	c.APIDocRoot = "html"
	opts := OptionsFromConfig(c, nil)
	if opts.APIDocRoot != "html" || opts.OutDir != "." || opts.Stylesheet != "style.css" || !opts.Diagram {
		t.Errorf("unexpected options %+v", opts)
	}
}
