// Package acdoc runs the whole documentation pipeline: parse the
// architecture and ISA files, build the document tree and write the pages.
package acdoc

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"acdoc/pkg/acparser"
	"acdoc/pkg/apidoc"
	"acdoc/pkg/ast"
	"acdoc/pkg/config"
	"acdoc/pkg/model"
	"acdoc/pkg/render"
)

type Options struct {
	APIDocRoot string
	OutDir     string
	Stylesheet string
	Diagram    bool
	Log        *slog.Logger
}

// OptionsFromConfig maps user settings onto generator options.
func OptionsFromConfig(c *config.Config, log *slog.Logger) Options {
	return Options{
		APIDocRoot: c.APIDocRoot,
		OutDir:     c.Target,
		Stylesheet: c.Stylesheet,
		Diagram:    c.Diagram,
		Log:        log,
	}
}

// Parse reads archPath and the ISA file it names into a new context.
func Parse(archPath string, log *slog.Logger) (*model.Context, error) {
	ctx := model.NewContext(log)
	if err := acparser.ParseFiles(ctx, archPath); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Generate documents the architecture at archPath and returns the files
// written. Nothing is written when parsing or building fails.
func Generate(archPath string, opts Options) ([]string, error) {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ctx, err := Parse(archPath, log)
	if err != nil {
		return nil, err
	}
	doc, err := ast.Build(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "building documentation for %s", archPath)
	}
	anchors, err := apidoc.Load(opts.APIDocRoot, log)
	if err != nil {
		return nil, err
	}

	written, err := render.Render(doc, render.Options{
		OutDir:     opts.OutDir,
		Stylesheet: opts.Stylesheet,
		Anchors:    anchors,
		Diagram:    opts.Diagram,
		Log:        log,
	})
	if err != nil {
		return written, err
	}
	log.Info("documentation generated",
		slog.String("arch", doc.Arch.Name),
		slog.Int("files", len(written)),
		slog.Int("instructions", len(doc.ISA.Instructions)),
	)
	return written, nil
}
