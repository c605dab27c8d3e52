// Package acparser reads architecture and ISA description files into a
// model.Context.
//
// Parsing is two-pass: the architecture file first, then the ISA file it
// names through ac_isa. Both passes feed the same context, so a name
// declared twice across the two files is still a duplicate.
package acparser

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"acdoc/pkg/model"
	"acdoc/pkg/utils"
)

// ParseFiles parses the architecture file at archPath and, when it names
// one, the ISA file resolved relative to the architecture file.
func ParseFiles(ctx *model.Context, archPath string) error {
	src, err := os.ReadFile(archPath)
	if err != nil {
		return errors.Wrapf(err, "reading architecture file %s", archPath)
	}
	if err := ParseArchitecture(ctx, archPath, string(src)); err != nil {
		return err
	}

	isa, ok := ctx.Model.Singleton(model.KindISAFile)
	if !ok {
		ctx.Logger("parser").Debug("no ac_isa declaration, skipping ISA pass", slog.String("file", archPath))
		return nil
	}
	isaPath, err := utils.ResolveSibling(archPath, isa.Text)
	if err != nil {
		return err
	}
	src, err = os.ReadFile(isaPath)
	if err != nil {
		return errors.Wrapf(err, "reading ISA file %s", isaPath)
	}
	return ParseISA(ctx, isaPath, string(src))
}

// ParseArchitecture parses the text of an architecture file.
func ParseArchitecture(ctx *model.Context, filename, src string) error {
	return parse(ctx, filename, src, (*Parser).parseArchDoc)
}

// ParseISA parses the text of an ISA file.
func ParseISA(ctx *model.Context, filename, src string) error {
	return parse(ctx, filename, src, (*Parser).parseISADoc)
}

func parse(ctx *model.Context, filename, src string, doc func(*Parser) error) error {
	log := ctx.Logger("parser").With(slog.String("file", filename))
	log.Debug("parsing")

	tokens, err := Lex(filename, src)
	if err != nil {
		return err
	}
	ctx.Sources = append(ctx.Sources, filename)

	// Doc comments are handled ahead of the productions, in source order.
	act := newActions(ctx, filename)
	code := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Type != DOC_COMMENT {
			code = append(code, t)
			continue
		}
		if err := act.addDoc(t.Lexeme); err != nil {
			return newSyntaxError(filename, src, t.Offset, "%s", errors.Cause(err))
		}
	}

	if err := doc(newParser(code, filename, src, act)); err != nil {
		return err
	}
	log.Debug("parsed",
		slog.Int("tokens", len(code)),
		slog.Int("instructions", ctx.Instructions.Len()),
		slog.Int("occurrences", ctx.Occurrences.Len()),
	)
	return nil
}
