package model

import (
	"io"
	"log/slog"
)

// Context carries every table of one run. It is filled while parsing and
// only read afterwards.
type Context struct {
	Model        *ArchitectureModel
	Docs         *DocumentationModel
	Instructions *InstructionTable
	Attributes   *AttributeTable
	Occurrences  *OccurrenceTable

	// Sources lists the parsed files in parse order.
	Sources []string

	Log *slog.Logger
}

// NewContext returns an empty context. A nil logger discards output.
func NewContext(logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Context{
		Model:        NewArchitectureModel(),
		Docs:         NewDocumentationModel(),
		Instructions: NewInstructionTable(),
		Attributes:   NewAttributeTable(),
		Occurrences:  NewOccurrenceTable(),
		Log:          logger,
	}
}

// Logger returns a child logger tagged with component.
func (c *Context) Logger(component string) *slog.Logger {
	return c.Log.With(slog.String("component", component))
}
