package model

import "strings"

// DocTags is the recognized doc-comment vocabulary. Tags outside it are
// never stored.
var DocTags = []string{"author", "brief", "bug", "date", "details", "note", "see", "since", "todo", "version", "warning"}

// IsDocTag reports whether tag (without the leading backslash) belongs to
// the recognized vocabulary.
func IsDocTag(tag string) bool {
	for _, t := range DocTags {
		if t == tag {
			return true
		}
	}
	return false
}

// DocEntry is one tag of a documentation record.
type DocEntry struct {
	Tag  string
	Text string
}

// DocRecord holds the documentation tags collected for one file, in the
// order they were first seen.
type DocRecord struct {
	File    string
	Entries []DocEntry
}

// Get returns the text stored for tag.
func (r *DocRecord) Get(tag string) (string, bool) {
	for _, e := range r.Entries {
		if e.Tag == tag {
			return e.Text, true
		}
	}
	return "", false
}

func (r *DocRecord) set(tag, text string) {
	for i := range r.Entries {
		if r.Entries[i].Tag == tag {
			r.Entries[i].Text = text
			return
		}
	}
	r.Entries = append(r.Entries, DocEntry{Tag: tag, Text: text})
}

// DocumentationModel maps a filename to its documentation record.
type DocumentationModel struct {
	order   []string
	records map[string]*DocRecord
}

// NewDocumentationModel returns an empty documentation model.
func NewDocumentationModel() *DocumentationModel {
	return &DocumentationModel{records: make(map[string]*DocRecord)}
}

// Merge folds entries into the record for file. A tag already present is
// replaced in place; unknown tags are dropped. It returns the number of
// entries dropped.
func (d *DocumentationModel) Merge(file string, entries []DocEntry) int {
	file = strings.Trim(file, " \t\r\n")
	rec, ok := d.records[file]
	if !ok {
		rec = &DocRecord{File: file}
		d.records[file] = rec
		d.order = append(d.order, file)
	}
	dropped := 0
	for _, e := range entries {
		if !IsDocTag(e.Tag) {
			dropped++
			continue
		}
		rec.set(e.Tag, e.Text)
	}
	return dropped
}

// Lookup returns the record for an exact filename match.
func (d *DocumentationModel) Lookup(file string) (*DocRecord, bool) {
	rec, ok := d.records[file]
	return rec, ok
}

// Files lists documented filenames in the order they were first seen.
func (d *DocumentationModel) Files() []string {
	return append([]string(nil), d.order...)
}
