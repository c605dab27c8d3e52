package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"acdoc/pkg/acdoc"
	"acdoc/pkg/config"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func main() {
	var (
		configPath string
		dump       bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "acdoc [flags] <arch.ac>",
		Short: "Generate HTML documentation for an ArchC architecture description",
		Long: `acdoc reads an ArchC architecture file and the ISA file it names through
ac_isa, and writes a static set of pages into the target directory:
<arch>_index.html, <arch>_isa.html, <arch>_other.html, one highlighted
<file>_source.html per source file and, when the architecture declares
stages or pipes, a <arch>_pipeline.png diagram.

Settings are read from config.json in the user configuration folder and
overridden by the flags below.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			if dump {
				ctx, err := acdoc.Parse(args[0], log)
				if err != nil {
					return err
				}
				dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
				dumper.Fdump(os.Stdout, ctx.Model, ctx.Docs, ctx.Instructions, ctx.Attributes, ctx.Occurrences)
				return nil
			}

			var (
				cfg *config.Config
				err error
			)
			if configPath != "" {
				cfg, err = config.LoadFile(configPath)
			} else {
				cfg, err = config.Load(log)
			}
			if err != nil {
				return err
			}
			if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
				return err
			}

			written, err := acdoc.Generate(args[0], acdoc.OptionsFromConfig(cfg, log))
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Println(path)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	config.RegisterFlags(flags)
	flags.StringVar(&configPath, "config", "", "configuration file to use instead of the user's config.json")
	flags.BoolVar(&dump, "dump", false, "print the parsed tables and exit")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging and stack traces on error")

	if err := cmd.Execute(); err != nil {
		printError(err, verbose)
		os.Exit(1)
	}
}

// printError writes err to stderr, in colour on a terminal, with the stack
// trace of the innermost wrapped error when verbose.
func printError(err error, verbose bool) {
	label := "error:"
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		label = ansi.Color(label, "red+b")
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", label, err)
	if !verbose {
		return
	}

	var trace errors.StackTrace
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			trace = st.StackTrace()
		}
	}
	if trace == nil {
		return
	}
	fmt.Fprintln(os.Stderr, strings.Repeat("-", 40))
	for _, f := range trace {
		fmt.Fprintf(os.Stderr, "%+v\n", f)
	}
}
