// Package render writes the static documentation pages for a document
// tree: the architecture index, the ISA page, the page of other ISA
// properties, one highlighted page per source file and, optionally, a
// pipeline diagram.
package render

import (
	"bytes"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"acdoc/pkg/apidoc"
	"acdoc/pkg/ast"
	"acdoc/pkg/diagram"
	"acdoc/pkg/model"
	"acdoc/pkg/utils"
)

// DefaultStylesheet is referenced by every page unless overridden.
const DefaultStylesheet = "style.css"

// Options controls where and how pages are written.
type Options struct {
	OutDir     string
	Stylesheet string
	Anchors    *apidoc.Anchors // nil disables API-doc links
	Diagram    bool

	// ReadFile loads source files; os.ReadFile when nil.
	ReadFile func(name string) ([]byte, error)
	Log      *slog.Logger
}

// sourceFile is one description file with its generated page.
type sourceFile struct {
	path  string
	page  string
	lines []string
	index *SourceIndex
}

type renderer struct {
	doc  *ast.Document
	opts Options
	log  *slog.Logger

	arch, isa *sourceFile
	diagram   string // file name of the pipeline diagram, "" when not drawn
}

// PageNames returns the index, ISA and other-properties page names for
// the architecture called arch.
func PageNames(arch string) (index, isa, other string) {
	return arch + "_index.html", arch + "_isa.html", arch + "_other.html"
}

// SourcePage is the name of the highlighted page generated for file.
func SourcePage(file string) string {
	return utils.Stem(file) + "_source.html"
}

// Render writes every page of doc into opts.OutDir and returns the paths
// written, in order. A failure stops the run; pages already written stay.
func Render(doc *ast.Document, opts Options) ([]string, error) {
	if opts.Stylesheet == "" {
		opts.Stylesheet = DefaultStylesheet
	}
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	logger := opts.Log
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := &renderer{doc: doc, opts: opts, log: logger.With(slog.String("component", "render"))}
	var err error
	archPage := SourcePage(doc.Arch.File)
	if r.arch, err = r.load(doc.Arch.File, archPage, archKeys(doc.Arch)); err != nil {
		return nil, err
	}
	if doc.ISA.File != "" && doc.ISA.File != doc.Arch.File {
		isaPage := SourcePage(doc.ISA.File)
		if isaPage == archPage {
			isaPage = utils.Stem(doc.ISA.File) + "_isa_source.html"
		}
		if r.isa, err = r.load(doc.ISA.File, isaPage, isaKeys(doc.ISA)); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", opts.OutDir)
	}

	var written []string
	write := func(name string, data []byte) error {
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
		r.log.Debug("page written", slog.String("path", path), slog.Int("bytes", len(data)))
		written = append(written, path)
		return nil
	}

	if opts.Diagram && (len(doc.Arch.Pipes) > 0 || len(doc.Arch.Stages) > 0) {
		var buf bytes.Buffer
		if err := diagram.WritePNG(&buf, r.pipeline()); err != nil {
			return written, err
		}
		r.diagram = doc.Arch.Name + "_pipeline.png"
		if err := write(r.diagram, buf.Bytes()); err != nil {
			return written, err
		}
	}

	index, isa, other := PageNames(doc.Arch.Name)
	pages := []struct {
		name string
		gen  func() string
	}{
		{index, r.indexPage},
		{isa, r.isaPage},
		{other, r.otherPage},
	}
	for _, p := range pages {
		if err := write(p.name, []byte(p.gen())); err != nil {
			return written, err
		}
	}

	for _, sf := range r.sources() {
		if err := write(sf.page, []byte(r.sourcePage(sf))); err != nil {
			return written, err
		}
	}
	return written, nil
}

func (r *renderer) load(path, page string, keys [][]string) (*sourceFile, error) {
	src, err := r.opts.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading source %s", path)
	}
	sf := &sourceFile{path: path, page: page, lines: splitLines(src)}
	sf.index = NewSourceIndex(sf.page, sf.lines, keys)
	r.log.Debug("source indexed", slog.String("file", path), slog.Int("lines", len(sf.lines)), slog.Int("keys", len(sf.index.lines)))
	return sf, nil
}

func (r *renderer) sources() []*sourceFile {
	if r.isa == nil {
		return []*sourceFile{r.arch}
	}
	return []*sourceFile{r.arch, r.isa}
}

// pipeline flattens each pipe's bodies into one diagram row.
func (r *renderer) pipeline() image.Image {
	var stages []string
	for _, s := range r.doc.Arch.Stages {
		stages = append(stages, s.Name)
	}
	var pipes []diagram.Pipe
	for _, p := range r.doc.Arch.Pipes {
		row := diagram.Pipe{Name: p.Name}
		for _, body := range p.Stages {
			row.Stages = append(row.Stages, body...)
		}
		pipes = append(pipes, row)
	}
	return diagram.Pipeline(stages, pipes)
}

// archKeys lists the source-link keys of every architecture entry.
func archKeys(a *ast.Architecture) [][]string {
	var keys [][]string
	for _, m := range a.Memories {
		keys = append(keys, []string{model.KindMem.Keyword(), m.Name})
	}
	for _, reg := range a.Registers {
		keys = append(keys, []string{model.KindReg.Keyword(), reg.Name})
	}
	for _, rb := range a.RegisterBanks {
		keys = append(keys, []string{model.KindRegBank.Keyword(), rb.Name})
	}
	for _, c := range a.Caches {
		keys = append(keys, []string{c.Kind.Keyword(), c.Name})
	}
	for _, p := range a.Ports {
		keys = append(keys, []string{p.Kind.Keyword(), p.Name})
	}
	for _, s := range a.Stages {
		keys = append(keys, []string{model.KindStage.Keyword(), s.Name})
	}
	for _, p := range a.Pipes {
		keys = append(keys, []string{model.KindPipe.Keyword(), p.Name})
	}
	for _, b := range a.Ctor.Binds {
		keys = append(keys, bindKey(b))
	}
	keys = append(keys,
		[]string{model.KindWordSize.Keyword()},
		[]string{model.KindFetchSize.Keyword()},
		[]string{model.KindISAFile.Keyword()},
		[]string{model.KindEndian.Keyword()},
	)
	return keys
}

func bindKey(b *ast.Bind) []string {
	return []string{b.From, "bind", b.To}
}

// isaKeys lists the source-link keys of the ISA entries that carry no
// recorded line of their own.
func isaKeys(isa *ast.ISA) [][]string {
	var keys [][]string
	for _, g := range isa.Groups {
		keys = append(keys, []string{model.KindGroup.Keyword(), g.Name})
	}
	for _, m := range isa.AsmMaps {
		keys = append(keys, []string{model.KindAsmMap.Keyword(), m.Name})
	}
	for _, p := range isa.Pseudos {
		keys = append(keys, []string{model.KindPseudo.Keyword(), p.Name})
	}
	if isa.Helper != nil {
		keys = append(keys, []string{model.KindHelper.Keyword()})
	}
	return keys
}
