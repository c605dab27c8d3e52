package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected *Config
		wantErr  bool
	}{
		{"Empty Object", `{}`, Default(), false},
		{
			"All Keys",
			`{"apidoc_root": "doxy/html", "target": "out", "stylesheet": "arch.css", "diagram": false}`,
			&Config{APIDocRoot: "doxy/html", Target: "out", Stylesheet: "arch.css", Diagram: false},
			false,
		},
		{
			"Partial",
			`{"target": "docs"}`,
			&Config{Target: "docs", Stylesheet: "style.css", Diagram: true},
			false,
		},
		{"Malformed", `{"target": `, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: expected %v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && !reflect.DeepEqual(c, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, c)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			"No Flags Keep File Values",
			nil,
			Config{APIDocRoot: "file/doxy", Target: "file-out", Stylesheet: "file.css", Diagram: true},
		},
		{
			"Flags Override",
			[]string{"--doxygen", "cli/doxy", "--target=cli-out", "--no-diagram"},
			Config{APIDocRoot: "cli/doxy", Target: "cli-out", Stylesheet: "file.css", Diagram: false},
		},
		{
			"Explicit Default Still Overrides",
			[]string{"--stylesheet", "style.css"},
			Config{APIDocRoot: "file/doxy", Target: "file-out", Stylesheet: "style.css", Diagram: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("acdoc", pflag.ContinueOnError)
			RegisterFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatal(err)
			}
			c := &Config{APIDocRoot: "file/doxy", Target: "file-out", Stylesheet: "file.css", Diagram: true}
			if err := c.ApplyFlags(fs); err != nil {
				t.Fatal(err)
			}
			if *c != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, *c)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`{"apidoc_root": "html"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.APIDocRoot != "html" || c.Target != "." {
		t.Errorf("unexpected configuration %+v", c)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
