package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"acdoc/pkg/ast"
	"acdoc/pkg/model"
)

// page accumulates the HTML of one output file.
type page struct {
	out strings.Builder
}

func (p *page) line(format string, args ...any) {
	fmt.Fprintf(&p.out, format+"\n", args...)
}

func (p *page) String() string { return p.out.String() }

var esc = html.EscapeString

const (
	labelIndex = "Architecture Description"
	labelISA   = "Instruction Set and Formats"
	labelOther = "Other Properties"
)

// open writes the document head and the navigation bar. self is the page
// being written and is left out of the navigation.
func (r *renderer) open(p *page, title, self string) {
	p.line("<html>")
	p.line("<head>")
	p.line("<link href='%s' rel='stylesheet' type='text/css' />", esc(r.opts.Stylesheet))
	p.line("<title>%s</title>", esc(title))
	p.line("</head>")
	p.line("<body>")
	p.line("<div class='definfo'>This documentation was automatically generated with AcDoc tool.</div>")

	arch := r.doc.Arch.Name
	index, isa, other := PageNames(arch)
	for _, nav := range []struct{ page, label string }{
		{index, labelIndex},
		{isa, labelISA},
		{other, labelOther},
	} {
		if nav.page == self {
			continue
		}
		p.line("<div class='definfo'><a href=%s>%s %s</a></div>", nav.page, esc(arch), nav.label)
	}
}

func (r *renderer) finish(p *page) {
	p.line("</body>")
	p.line("</html>")
}

// comment renders a documentation record; nil renders nothing.
func comment(p *page, rec *model.DocRecord) {
	if rec == nil || len(rec.Entries) == 0 {
		return
	}
	var b strings.Builder
	for _, e := range rec.Entries {
		fmt.Fprintf(&b, "%s:<br/>%s<br/><br/>", esc(e.Tag), esc(e.Text))
	}
	p.line("<div class='comment'>%s</div>", b.String())
}

// block writes `<div class='class'>heading (keyword):link<div class='desc'>body</div></div>`.
func block(p *page, class, heading, keyword, link string, body ...string) {
	p.line("<div class='%s'>%s (%s):%s<div class='desc'>%s</div></div>",
		class, heading, KeywordLink(keyword), link, strings.Join(body, ""))
}

func br(format string, args ...any) string {
	return fmt.Sprintf(format, args...) + "<br/>\n"
}

func (r *renderer) indexPage() string {
	a := r.doc.Arch
	src := r.arch.index
	var p page
	index, _, _ := PageNames(a.Name)
	r.open(&p, a.Name+" Documentation", index)

	p.line("<div class='ac_arch'>Architecture (%s):<div class='arch_name'>Name: %s</div>", KeywordLink("AC_ARCH"), esc(a.Name))
	comment(&p, a.Doc)

	for _, m := range a.Memories {
		block(&p, "ac_mem", "Memory", "ac_mem", "",
			br("Name: %s%s", esc(m.Name), src.Link("ac_mem", m.Name)),
			br("Size: %d", m.Size))
	}
	for _, reg := range a.Registers {
		body := []string{br("Name: %s%s", esc(reg.Name), src.Link("ac_reg", reg.Name))}
		if reg.Param.Set {
			body = append(body, br("Value: %s", esc(reg.Param.String())))
		}
		block(&p, "ac_reg", "Register", "ac_reg", "", body...)
	}
	for _, rb := range a.RegisterBanks {
		body := []string{
			br("Name: %s%s", esc(rb.Name), src.Link("ac_regbank", rb.Name)),
			br("Size: %d", rb.Size),
		}
		if rb.Param.Set {
			body = append(body, br("Parameter: %s", esc(rb.Param.String())))
		}
		block(&p, "ac_regbank", "Register bank", "ac_regbank", "", body...)
	}
	for _, c := range a.Caches {
		block(&p, c.Kind.Keyword(), c.Kind.Label(), c.Kind.Keyword(), "",
			br("Name: %s%s", esc(c.Name), src.Link(c.Kind.Keyword(), c.Name)),
			br("Size: %d", c.Size))
	}
	for _, port := range a.Ports {
		block(&p, port.Kind.Keyword(), port.Kind.Label(), port.Kind.Keyword(), "",
			br("Name: %s%s", esc(port.Name), src.Link(port.Kind.Keyword(), port.Name)),
			br("Size: %d", port.Size))
	}
	if a.WordSize != nil {
		block(&p, "ac_wordsize", "Word size", "ac_wordsize", "",
			fmt.Sprintf("Size: %d%s", a.WordSize.Value, src.Link("ac_wordsize")))
	}
	if a.FetchSize != nil {
		block(&p, "ac_fetchsize", "Fetch size", "ac_fetchsize", "",
			fmt.Sprintf("Value: %d%s", a.FetchSize.Value, src.Link("ac_fetchsize")))
	}

	ctor := a.Ctor
	body := []string{
		br("ISA Name: %s%s", esc(ctor.ISAName), src.Link("ac_isa")),
		br("%s Endian%s", ctor.EndianLabel(), src.Link("set_endian")),
	}
	for _, b := range ctor.Binds {
		body = append(body, br("Binds to: %s%s", esc(b.String()), src.Link(bindKey(b)...)))
	}
	block(&p, "arch_ctor", "Architecture Constructor", "ARCH_CTOR", "", body...)

	for _, pipe := range a.Pipes {
		body := []string{br("Name: %s%s", esc(pipe.Name), src.Link("ac_pipe", pipe.Name))}
		for _, stages := range pipe.Stages {
			body = append(body, br("Stages: %s", esc(strings.Join(stages, ", "))))
		}
		block(&p, "ac_pipe", "Pipe", "ac_pipe", "", body...)
	}
	for _, s := range a.Stages {
		block(&p, "ac_stage", "Stage", "ac_stage", "",
			fmt.Sprintf("Name: %s%s", esc(s.Name), src.Link("ac_stage", s.Name)))
	}
	if r.diagram != "" {
		p.line("<div class='ac_pipeline'><img src='%s' alt='%s pipeline' /></div>", r.diagram, esc(a.Name))
	}
	p.line("</div>")

	r.finish(&p)
	return p.String()
}

// isaSourceLink points at a recorded line of the ISA file.
func (r *renderer) isaSourceLink(s ast.Source) string {
	sf := r.isa
	if sf == nil || filepath.Clean(s.File) != filepath.Clean(sf.path) {
		sf = r.arch
		if filepath.Clean(s.File) != filepath.Clean(sf.path) {
			return ""
		}
	}
	return sourceLinkHTML(sf.page, s.Line)
}

func (r *renderer) isaHeader(p *page) {
	isa := r.doc.ISA
	p.line("<div class='ac_isa'>ISA (%s):<div class='isa_name'>Name: %s</div>", KeywordLink("ac_isa"), esc(isa.Name))
}

func (r *renderer) isaPage() string {
	isa := r.doc.ISA
	var p page
	_, self, _ := PageNames(r.doc.Arch.Name)
	r.open(&p, r.doc.Arch.Name+" ISA Documentation", self)

	r.isaHeader(&p)
	comment(&p, isa.Doc)
	for _, f := range isa.Formats {
		r.format(&p, f)
	}
	for _, in := range isa.Instructions {
		r.instruction(&p, in)
	}
	p.line("</div>")

	r.finish(&p)
	return p.String()
}

func (r *renderer) format(p *page, f *ast.Format) {
	body := []string{br("Format Description: %s", esc(model.FormatString(f.Fields)))}
	if len(f.Instructions) > 0 {
		links := make([]string, len(f.Instructions))
		for i, name := range f.Instructions {
			links[i] = fmt.Sprintf("<a href='#%s'>%s</a>", esc(name), esc(name))
		}
		body = append(body, br("Instructions: %s", strings.Join(links, " ")))
	}
	heading := fmt.Sprintf("<a name='%s'></a>%s", esc(f.Name), apiLink(r.opts.Anchors, f.Name))
	block(p, "ac_format", heading, "ac_format", r.isaSourceLink(f.Source), body...)
}

func (r *renderer) instruction(p *page, in *ast.Instruction) {
	body := []string{br("Instruction Type: <a href='#%s'>%s</a>", esc(in.Format), esc(in.Format))}
	if len(in.Decoder) > 0 {
		var b strings.Builder
		for _, d := range in.Decoder {
			fmt.Fprintf(&b, "%s=%d; ", esc(d.Name), d.Value)
		}
		body = append(body, br("Decoder: %s", b.String()))
	}
	for _, asm := range in.Asm {
		body = append(body, br("ASM: %s", esc(asm.String())))
	}
	for _, attr := range in.Attributes {
		body = append(body, br("%s: %s", attr.Kind.Label(), esc(attr.Text)))
	}
	if in.Cycles != nil {
		body = append(body, br("Cycles: %d", *in.Cycles))
	}
	if in.CycleRange != nil {
		body = append(body, br("Cycle Range: %d..%d", in.CycleRange.Min, in.CycleRange.Max))
	}
	heading := fmt.Sprintf("<a name='%s'></a>%s", esc(in.Name), apiLink(r.opts.Anchors, in.Name))
	block(p, "ac_instr", heading, "ac_instr", r.isaSourceLink(in.Source), body...)
}

func (r *renderer) otherPage() string {
	isa := r.doc.ISA
	src := r.arch.index
	if r.isa != nil {
		src = r.isa.index
	}
	var p page
	_, _, self := PageNames(r.doc.Arch.Name)
	r.open(&p, r.doc.Arch.Name+" Other Properties", self)

	r.isaHeader(&p)
	if h := isa.Helper; h != nil {
		text := strings.ReplaceAll(esc(h.Text), "\n", "<br/>")
		block(&p, "ac_helper", "Helper", "ac_helper", src.Link("ac_helper"), text)
	}
	for _, g := range isa.Groups {
		var body []string
		for _, members := range g.Members {
			body = append(body, br("Elements: %s", esc(strings.Join(members, ", "))))
		}
		block(&p, "ac_group", esc(g.Name), "ac_group", src.Link("ac_group", g.Name), body...)
	}
	for _, m := range isa.AsmMaps {
		var body []string
		for _, mapping := range m.Mappings {
			body = append(body, br("Maps: %s", esc(mapping.String())))
		}
		block(&p, "ac_asm_map", esc(m.Name), "ac_asm_map", src.Link("ac_asm_map", m.Name), body...)
	}
	for _, ps := range isa.Pseudos {
		body := []string{"Instructions: <br/>\n"}
		for _, instrs := range ps.Bodies {
			for _, in := range instrs {
				body = append(body, br("%s", esc(in)))
			}
		}
		block(&p, "pseudo_instr", esc(ps.Name), "pseudo_instr", src.Link("pseudo_instr", ps.Name), body...)
	}
	if len(isa.CommentMarkers) > 0 || len(isa.LineCommentMarkers) > 0 {
		var body []string
		if len(isa.CommentMarkers) > 0 {
			body = append(body, br("Comment markers: %s", esc(strings.Join(isa.CommentMarkers, " "))))
		}
		if len(isa.LineCommentMarkers) > 0 {
			body = append(body, br("Line comment markers: %s", esc(strings.Join(isa.LineCommentMarkers, " "))))
		}
		p.line("<div class='ac_assembler'>Assembler:<div class='desc'>%s</div></div>", strings.Join(body, ""))
	}
	p.line("</div>")

	r.finish(&p)
	return p.String()
}

// sourcePage lists sf line by line with an anchor per line.
func (r *renderer) sourcePage(sf *sourceFile) string {
	var p page
	r.open(&p, filepath.Base(sf.path)+" Source Code", sf.page)

	var h Highlighter
	p.line("<div class='source'><ul>")
	for i, text := range sf.lines {
		p.line("<li><a name=l%d>%05d</a>&nbsp;&nbsp;&nbsp;&nbsp; %s</li>", i+1, i+1, h.Line(text))
	}
	p.line("</ul></div>")

	r.finish(&p)
	return p.String()
}
