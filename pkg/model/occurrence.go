package model

type occurrenceKey struct {
	kind DeclarationKind
	name string
}

// OccurrenceTable records where each repeated-named declaration was
// declared. The first occurrence wins.
type OccurrenceTable struct {
	entries map[occurrenceKey]Position
}

// NewOccurrenceTable returns an empty occurrence table.
func NewOccurrenceTable() *OccurrenceTable {
	return &OccurrenceTable{entries: make(map[occurrenceKey]Position)}
}

// Record stores pos for (kind, name) unless one is already stored.
func (t *OccurrenceTable) Record(kind DeclarationKind, name string, pos Position) {
	k := occurrenceKey{kind, name}
	if _, ok := t.entries[k]; ok {
		return
	}
	t.entries[k] = pos
}

// Lookup returns the declaring position of (kind, name).
func (t *OccurrenceTable) Lookup(kind DeclarationKind, name string) (Position, bool) {
	pos, ok := t.entries[occurrenceKey{kind, name}]
	return pos, ok
}

// Len is the number of recorded occurrences.
func (t *OccurrenceTable) Len() int {
	return len(t.entries)
}
