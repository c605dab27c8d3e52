// Package ast holds the typed document tree built from a parsed
// architecture description. Every node is owned by its parent collection;
// the link between an instruction and its format is by name only.
package ast

import (
	"fmt"

	"acdoc/pkg/model"
)

// Source locates the production that declared a node.
type Source struct {
	File string
	Line int
}

// Document is the root of the tree.
type Document struct {
	Arch *Architecture
	ISA  *ISA
}

// Architecture collects the facts of the architecture file.
type Architecture struct {
	Name string
	File string
	Doc  *model.DocRecord

	Memories      []*Memory
	Registers     []*Register
	RegisterBanks []*RegisterBank
	Caches        []*Cache
	Ports         []*Port
	WordSize      *Size
	FetchSize     *Size
	Ctor          *Constructor
	Stages        []*Stage
	Pipes         []*Pipe
}

type Register struct {
	Name  string
	Param model.Param
	Source
}

type RegisterBank struct {
	Name  string
	Size  uint64
	Param model.Param
	Source
}

type Memory struct {
	Name string
	Size uint64
	Source
}

// CacheKind tells the three cache declarations apart.
type CacheKind int

const (
	CacheUnified CacheKind = iota
	CacheInstruction
	CacheData
)

var cacheKinds = [...]struct{ keyword, label string }{
	CacheUnified:     {"ac_cache", "Cache"},
	CacheInstruction: {"ac_icache", "Instructions Cache"},
	CacheData:        {"ac_dcache", "Data Cache"},
}

// Keyword is the declaring keyword.
func (k CacheKind) Keyword() string { return cacheKinds[k].keyword }

// Label is the heading used on rendered pages.
func (k CacheKind) Label() string { return cacheKinds[k].label }

func (k CacheKind) String() string { return k.Keyword() }

type Cache struct {
	Kind CacheKind
	Name string
	Size uint64
	Source
}

// PortKind tells the two TLM port declarations apart.
type PortKind int

const (
	PortTLM PortKind = iota
	PortTLMInterrupt
)

var portKinds = [...]struct{ keyword, label string }{
	PortTLM:          {"ac_tlm_port", "TLM Port"},
	PortTLMInterrupt: {"ac_tlm_intr_port", "TLM Interrupt Port"},
}

func (k PortKind) Keyword() string { return portKinds[k].keyword }
func (k PortKind) Label() string   { return portKinds[k].label }
func (k PortKind) String() string  { return k.Keyword() }

type Port struct {
	Kind PortKind
	Name string
	Size uint64
	Source
}

type Size struct {
	Value uint64
	Source
}

// Constructor is the ARCH_CTOR record.
type Constructor struct {
	ISAName string
	Endian  string // "big" or "little"
	Binds   []*Bind
	Source
}

// EndianLabel returns "Big" or "Little".
func (c *Constructor) EndianLabel() string {
	switch c.Endian {
	case "big":
		return "Big"
	case "little":
		return "Little"
	}
	return c.Endian
}

type Bind struct {
	From, To string
	Source
}

func (b *Bind) String() string {
	return fmt.Sprintf("%s -> %s", b.From, b.To)
}

type Stage struct {
	Name string
	Source
}

// Pipe keeps every body the pipe was declared with.
type Pipe struct {
	Name   string
	Stages [][]string
	Source
}

// ISA collects the facts of the ISA file.
type ISA struct {
	Name string
	File string
	Doc  *model.DocRecord

	Formats      []*Format
	Instructions []*Instruction
	Groups       []*Group
	AsmMaps      []*AsmMap
	Pseudos      []*Pseudo
	Helper       *Helper

	CommentMarkers     []string
	LineCommentMarkers []string
}

// Format lists, by name, the instructions declared with it.
type Format struct {
	Name         string
	Fields       []model.FormatField
	Instructions []string
	Source
}

// Instruction refers to its format by name.
type Instruction struct {
	Name       string
	Format     string
	Decoder    []model.DecoderField
	Asm        []model.AsmSyntax
	Attributes []Attribute
	Cycles     *uint64
	CycleRange *model.CycleRange
	Source
}

// Attribute is one free-text clause; Kind selects its label.
type Attribute struct {
	Kind model.AttributeKind
	Text string
}

type Group struct {
	Name    string
	Members [][]string
	Source
}

type AsmMap struct {
	Name     string
	Mappings []model.AsmMapping
	Source
}

type Pseudo struct {
	Name   string
	Bodies [][]string
	Source
}

type Helper struct {
	Text string
	Source
}
