package render

import (
	"fmt"

	"golang.org/x/net/html"

	"acdoc/pkg/apidoc"
)

// ReferenceURL is where every language keyword links to.
const ReferenceURL = "http://www.archc.org/"

type keyword struct {
	word  string
	url   string
	color string
}

// keywords is searched in order by the highlighter, so a keyword that
// contains another one comes first.
var keywords = []keyword{
	{"AC_ARCH", ReferenceURL, "purple"},
	{"ARCH_CTOR", ReferenceURL, "purple"},
	{"AC_ISA", ReferenceURL, "purple"},
	{"ISA_CTOR", ReferenceURL, "purple"},
	{"ac_tlm_intr_port", ReferenceURL, "green"},
	{"ac_tlm_port", ReferenceURL, "green"},
	{"ac_regbank", ReferenceURL, "green"},
	{"ac_reg", ReferenceURL, "green"},
	{"ac_mem", ReferenceURL, "green"},
	{"ac_icache", ReferenceURL, "green"},
	{"ac_dcache", ReferenceURL, "green"},
	{"ac_cache", ReferenceURL, "green"},
	{"ac_wordsize", ReferenceURL, "green"},
	{"ac_fetchsize", ReferenceURL, "green"},
	{"ac_isa", ReferenceURL, "green"},
	{"set_endian", ReferenceURL, "green"},
	{"ac_stage", ReferenceURL, "green"},
	{"ac_pipe", ReferenceURL, "green"},
	{"bindsTo", ReferenceURL, "green"},
	{"bindTo", ReferenceURL, "green"},
	{"ac_format", ReferenceURL, "green"},
	{"ac_instr", ReferenceURL, "green"},
	{"ac_group", ReferenceURL, "purple"},
	{"ac_helper", ReferenceURL, "purple"},
	{"ac_asm_map", ReferenceURL, "purple"},
	{"pseudo_instr", ReferenceURL, "purple"},
	{"set_decoder", ReferenceURL, "blue"},
	{"set_asm", ReferenceURL, "blue"},
	{"set_cycles", ReferenceURL, "blue"},
	{"cycle_range", ReferenceURL, "blue"},
	{"is_jump", ReferenceURL, "blue"},
	{"is_branch", ReferenceURL, "blue"},
	{"delay_cond", ReferenceURL, "blue"},
	{"delay", ReferenceURL, "blue"},
	{"cond", ReferenceURL, "blue"},
	{"behavior", ReferenceURL, "blue"},
}

const (
	commentColor = "gray"
	stringColor  = "brown"
)

var keywordIndex = func() map[string]keyword {
	m := make(map[string]keyword, len(keywords))
	for _, k := range keywords {
		m[k.word] = k
	}
	return m
}()

// KeywordLink wraps a recognised keyword in a link to the language
// reference. Anything else comes back escaped but unlinked.
func KeywordLink(word string) string {
	k, ok := keywordIndex[word]
	if !ok {
		return html.EscapeString(word)
	}
	return fmt.Sprintf("<a href='%s'>%s</a>", k.url, html.EscapeString(word))
}

// apiLink links name into the external API documentation when an anchor
// exists for it.
func apiLink(anchors *apidoc.Anchors, name string) string {
	target, ok := anchors.Link(name)
	if !ok {
		return html.EscapeString(name)
	}
	return fmt.Sprintf("<a href='%s'>%s</a>", html.EscapeString(target), html.EscapeString(name))
}

// sourceLinkHTML is the trailing "see source" link for a declaration at
// line on page.
func sourceLinkHTML(page string, line int) string {
	if page == "" || line <= 0 {
		return ""
	}
	return fmt.Sprintf("&nbsp;&nbsp;&nbsp;&nbsp;<a href=%s#l%d>[see source code]</a>", page, line)
}
