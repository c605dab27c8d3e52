package model

import "strings"

// InstrKeyword declares instructions.
const InstrKeyword = "ac_instr"

// InstructionTable maps instruction names to their format name, in
// declaration order.
type InstructionTable struct {
	order   []string
	formats map[string]string
	pos     map[string]Position
}

// NewInstructionTable returns an empty instruction table.
func NewInstructionTable() *InstructionTable {
	return &InstructionTable{
		formats: make(map[string]string),
		pos:     make(map[string]Position),
	}
}

// Add maps name to format. A name may be declared only once.
func (t *InstructionTable) Add(name, format string, pos Position) error {
	if _, ok := t.formats[name]; ok {
		return &DuplicateSymbolError{Keyword: InstrKeyword, Name: name, Pos: pos, Previous: t.pos[name]}
	}
	t.order = append(t.order, name)
	t.formats[name] = format
	t.pos[name] = pos
	return nil
}

// Format returns the format name for an instruction.
func (t *InstructionTable) Format(name string) (string, bool) {
	f, ok := t.formats[name]
	return f, ok
}

// Position returns where an instruction was declared.
func (t *InstructionTable) Position(name string) Position {
	return t.pos[name]
}

// Names lists instructions in declaration order.
func (t *InstructionTable) Names() []string {
	return append([]string(nil), t.order...)
}

// InstructionsOf lists, in table order, the instructions mapped to format.
func (t *InstructionTable) InstructionsOf(format string) []string {
	var names []string
	for _, n := range t.order {
		if t.formats[n] == format {
			names = append(names, n)
		}
	}
	return names
}

// Len is the number of instructions.
func (t *InstructionTable) Len() int {
	return len(t.order)
}

// DecoderField is one `field = value` pair of set_decoder.
type DecoderField struct {
	Name  string
	Value uint64
}

// Operand is one operand of set_asm. Op is "=" or "+" when the operand
// carries a bound value, empty otherwise.
type Operand struct {
	Name  string
	Op    string
	Value string
}

func (o Operand) String() string {
	if o.Op == "" {
		return o.Name
	}
	return o.Name + o.Op + o.Value
}

// AsmSyntax is one set_asm call.
type AsmSyntax struct {
	Format   string
	Operands []Operand
}

func (a AsmSyntax) String() string {
	if len(a.Operands) == 0 {
		return `"` + a.Format + `"`
	}
	ops := make([]string, len(a.Operands))
	for i, o := range a.Operands {
		ops[i] = o.String()
	}
	return `"` + a.Format + `", ` + strings.Join(ops, ", ")
}

// CycleRange is the argument of cycle_range; Max equals Min for the single
// argument form.
type CycleRange struct {
	Min, Max uint64
}

// InstructionAttributes collects everything the ISA file says about one
// instruction besides its format.
type InstructionAttributes struct {
	Decoder []DecoderField
	Asm     []AsmSyntax
	Clauses map[AttributeKind][]string

	Cycles     *uint64
	CycleRange *CycleRange
}

// AddClause appends a free-text clause of the given kind.
func (a *InstructionAttributes) AddClause(kind AttributeKind, text string) {
	if a.Clauses == nil {
		a.Clauses = make(map[AttributeKind][]string)
	}
	a.Clauses[kind] = append(a.Clauses[kind], text)
}

// AttributeTable maps instruction names to their attributes. Attributes may
// be attached before the instruction itself is declared.
type AttributeTable struct {
	attrs map[string]*InstructionAttributes

	// assembler comment markers (set_comment, set_line_comment)
	Comments     []string
	LineComments []string
}

// NewAttributeTable returns an empty attribute table.
func NewAttributeTable() *AttributeTable {
	return &AttributeTable{attrs: make(map[string]*InstructionAttributes)}
}

// For returns the attributes of name, creating them on first use.
func (t *AttributeTable) For(name string) *InstructionAttributes {
	a, ok := t.attrs[name]
	if !ok {
		a = &InstructionAttributes{}
		t.attrs[name] = a
	}
	return a
}

// Lookup returns the attributes of name without creating them.
func (t *AttributeTable) Lookup(name string) (*InstructionAttributes, bool) {
	a, ok := t.attrs[name]
	return a, ok
}
