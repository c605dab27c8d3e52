// Package model holds the symbol tables built while parsing an architecture
// description: declarations, documentation records, the instruction table
// and per-instruction attributes.
//
// Tables are write-only while a description is parsed and read-only once the
// document tree is built from them.
package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Position locates a production in a source file. Line and Column are 1-based.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s: line %d, column %d", p.File, p.Line, p.Column)
}

// Param is the optional shared parameter of a declaration list, eg. the
// width in `ac_regbank<32> GPR:32;`.
type Param struct {
	Set    bool
	Number uint64
	Symbol string
}

func (p Param) String() string {
	switch {
	case !p.Set:
		return ""
	case p.Symbol != "":
		return p.Symbol
	default:
		return fmt.Sprintf("%d", p.Number)
	}
}

// FormatField is one field of an instruction format string. Name is empty
// for constant fields written as a hex value.
type FormatField struct {
	Name   string
	Value  uint64
	Width  uint64
	Signed bool

	// Alternatives is set for the bracketed `[a | b]` form, in which case the
	// other fields are unused.
	Alternatives [][]FormatField
}

func (f FormatField) String() string {
	if len(f.Alternatives) > 0 {
		alts := make([]string, len(f.Alternatives))
		for i, alt := range f.Alternatives {
			alts[i] = formatFields(alt)
		}
		return "[" + strings.Join(alts, " | ") + "]"
	}
	var s string
	if f.Name != "" {
		s = fmt.Sprintf("%%%s:%d", f.Name, f.Width)
	} else {
		s = fmt.Sprintf("0x%X:%d", f.Value, f.Width)
	}
	if f.Signed {
		s += ":s"
	}
	return s
}

func formatFields(fields []FormatField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}

// FormatString renders a field list in source notation.
func FormatString(fields []FormatField) string {
	return formatFields(fields)
}

// Range is an inclusive numeric range `[from..to]`.
type Range struct {
	From, To uint64
}

func (r Range) String() string {
	return fmt.Sprintf("[%d..%d]", r.From, r.To)
}

// AsmMapping is one line of an ac_asm_map body. Three forms exist:
//
//	"a", "b" = 3;              Names + Value
//	"r"[0..31] "x" = [0..31];  Prefix + Symbols + Suffix = Values
//	[0..31] "r" = [0..31];     Symbols + Suffix = Values
type AsmMapping struct {
	Names   []string
	Value   uint64
	Prefix  string
	Suffix  string
	Symbols *Range
	Values  *Range
}

func (m AsmMapping) String() string {
	if m.Symbols == nil {
		quoted := make([]string, len(m.Names))
		for i, n := range m.Names {
			quoted[i] = fmt.Sprintf("%q", n)
		}
		return fmt.Sprintf("%s = %d", strings.Join(quoted, ", "), m.Value)
	}
	var b strings.Builder
	if m.Prefix != "" {
		fmt.Fprintf(&b, "%q", m.Prefix)
	}
	b.WriteString(m.Symbols.String())
	if m.Suffix != "" {
		fmt.Fprintf(&b, "%q", m.Suffix)
	}
	b.WriteString(" = ")
	if m.Values != nil {
		b.WriteString(m.Values.String())
	}
	return b.String()
}

// Declaration is the shared shape of every repeated-named declaration.
// Which fields are meaningful depends on Kind.
type Declaration struct {
	Kind DeclarationKind
	Name string
	Pos  Position

	// memories, caches, ports and register banks
	Size uint64

	// registers and register banks
	Param Param

	// formats
	Fields []FormatField

	// pipes, groups and pseudo-instructions. Re-declaring the same name
	// appends a new body; bodies are never merged.
	Lists [][]string

	// assembly maps
	Mappings []AsmMapping

	// bind relations
	Target string
}

// Singleton is the value of a singleton declaration.
type Singleton struct {
	Text   string
	Number uint64
	Pos    Position
}

// Table is an ordered name -> declaration map for one repeated kind.
type Table struct {
	order   []string
	entries map[string]*Declaration
}

func newTable() *Table {
	return &Table{entries: make(map[string]*Declaration)}
}

// Lookup returns the declaration with the given name.
func (t *Table) Lookup(name string) (*Declaration, bool) {
	if t == nil {
		return nil, false
	}
	d, ok := t.entries[name]
	return d, ok
}

// Names returns the declared names in declaration order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.order...)
}

// Declarations returns the declarations in declaration order.
func (t *Table) Declarations() []*Declaration {
	if t == nil {
		return nil
	}
	decls := make([]*Declaration, 0, len(t.order))
	for _, name := range t.order {
		decls = append(decls, t.entries[name])
	}
	return decls
}

// Len is the number of declarations in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

func (t *Table) insert(d *Declaration) {
	t.order = append(t.order, d.Name)
	t.entries[d.Name] = d
}

// ArchitectureModel maps every declaration keyword to its data.
type ArchitectureModel struct {
	singletons map[DeclarationKind]Singleton
	tables     map[DeclarationKind]*Table
}

// NewArchitectureModel returns an empty model.
func NewArchitectureModel() *ArchitectureModel {
	return &ArchitectureModel{
		singletons: make(map[DeclarationKind]Singleton),
		tables:     make(map[DeclarationKind]*Table),
	}
}

// SetSingleton stores the value of a singleton kind. A second declaration
// of the same kind is a DuplicateSymbolError.
func (m *ArchitectureModel) SetSingleton(kind DeclarationKind, v Singleton) error {
	if !kind.IsSingleton() {
		return errors.Errorf("%s is not a singleton declaration", kind)
	}
	if prev, ok := m.singletons[kind]; ok {
		return &DuplicateSymbolError{Kind: kind, Keyword: kind.Keyword(), Name: kind.Keyword(), Pos: v.Pos, Previous: prev.Pos}
	}
	m.singletons[kind] = v
	return nil
}

// Singleton returns the value of a singleton kind.
func (m *ArchitectureModel) Singleton(kind DeclarationKind) (Singleton, bool) {
	v, ok := m.singletons[kind]
	return v, ok
}

// Declare inserts a named declaration. Names are unique per kind; a second
// insert of the same name is a DuplicateSymbolError and leaves the table
// untouched.
func (m *ArchitectureModel) Declare(d *Declaration) error {
	if !d.Kind.IsRepeated() {
		return errors.Errorf("%s is not a repeated declaration", d.Kind)
	}
	t, ok := m.tables[d.Kind]
	if !ok {
		t = newTable()
		m.tables[d.Kind] = t
	}
	if prev, ok := t.entries[d.Name]; ok {
		return &DuplicateSymbolError{Kind: d.Kind, Keyword: d.Kind.Keyword(), Name: d.Name, Pos: d.Pos, Previous: prev.Pos}
	}
	t.insert(d)
	return nil
}

// AppendList adds a body to a list-valued declaration (pipes, groups and
// pseudo-instructions), creating the declaration on first use. Bodies keep
// their boundaries: declaring P with L1 then L2 stores [L1, L2].
func (m *ArchitectureModel) AppendList(kind DeclarationKind, name string, body []string, pos Position) *Declaration {
	t, ok := m.tables[kind]
	if !ok {
		t = newTable()
		m.tables[kind] = t
	}
	d, ok := t.entries[name]
	if !ok {
		d = &Declaration{Kind: kind, Name: name, Pos: pos}
		t.insert(d)
	}
	d.Lists = append(d.Lists, append([]string(nil), body...))
	return d
}

// AppendMappings adds assembly map lines to the named map, creating it on
// first use. A re-declared map keeps collecting lines.
func (m *ArchitectureModel) AppendMappings(name string, mappings []AsmMapping, pos Position) *Declaration {
	t, ok := m.tables[KindAsmMap]
	if !ok {
		t = newTable()
		m.tables[KindAsmMap] = t
	}
	d, ok := t.entries[name]
	if !ok {
		d = &Declaration{Kind: KindAsmMap, Name: name, Pos: pos}
		t.insert(d)
	}
	d.Mappings = append(d.Mappings, mappings...)
	return d
}

// Table returns the table for a repeated kind. The returned table may be
// nil, which behaves as an empty table.
func (m *ArchitectureModel) Table(kind DeclarationKind) *Table {
	return m.tables[kind]
}

// String returns a deterministically ordered dump of the model.
func (m *ArchitectureModel) String() string {
	var sb strings.Builder

	kinds := make([]DeclarationKind, 0, len(m.singletons))
	for k := range m.singletons {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		v := m.singletons[k]
		if v.Text != "" {
			fmt.Fprintf(&sb, "%-16s %q\n", k, v.Text)
		} else {
			fmt.Fprintf(&sb, "%-16s %d\n", k, v.Number)
		}
	}

	for _, k := range RepeatedKinds() {
		t := m.tables[k]
		if t.Len() == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s:\n", k)
		for _, d := range t.Declarations() {
			fmt.Fprintf(&sb, "  %-20s %s\n", d.Name, d.Pos)
		}
	}
	return sb.String()
}
