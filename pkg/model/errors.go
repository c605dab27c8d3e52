package model

import "fmt"

// DuplicateSymbolError is returned when a name is declared twice for the
// same keyword, or a singleton keyword is declared twice. It is fatal.
// Keyword is the declaring keyword; instructions are not model
// declarations, so for them it is InstrKeyword and Kind is unset.
type DuplicateSymbolError struct {
	Kind     DeclarationKind
	Keyword  string
	Name     string
	Pos      Position
	Previous Position
}

func (e *DuplicateSymbolError) Error() string {
	kw := e.Keyword
	if kw == "" {
		kw = e.Kind.Keyword()
	}
	return fmt.Sprintf("%s: %s already declared (%s, first declared at line %d)", e.Pos, e.Name, kw, e.Previous.Line)
}

// HeaderMismatchError records a constructor header whose name argument
// differs from the recorded architecture name. It is reported, never fatal.
type HeaderMismatchError struct {
	Header string
	Got    string
	Want   string
	Pos    Position
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf("%s: %s should have %s as parameter, got %s", e.Pos, e.Header, e.Want, e.Got)
}
