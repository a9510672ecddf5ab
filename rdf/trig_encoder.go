package rdf

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// trigEncoder buffers statements and writes one TriG (or Turtle) document on
// Close, grouping statements by graph and subject in first-seen order.
type trigEncoder struct {
	writer   *bufio.Writer
	format   Format
	prefixes map[string]string
	quads    []Quad
	err      error
	closed   bool
}

func newTriGEncoder(w io.Writer, format Format, opts Options) *trigEncoder {
	return &trigEncoder{writer: bufio.NewWriter(w), format: format, prefixes: opts.Prefixes}
}

func (e *trigEncoder) Write(q Quad) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return fmt.Errorf("%s: write after close", e.format)
	}
	if q.S == nil || q.P.Value == "" || q.O == nil {
		return fmt.Errorf("%s: missing statement fields", e.format)
	}
	if e.format == FormatTurtle {
		q.G = nil
	}
	e.quads = append(e.quads, q)
	return nil
}

// Flush is a no-op; the document is produced on Close.
func (e *trigEncoder) Flush() error { return e.err }

func (e *trigEncoder) Close() error {
	if e.err != nil || e.closed {
		return e.err
	}
	e.closed = true
	e.writeHeader()
	for _, group := range groupByGraph(e.quads) {
		indent := ""
		if group.graph != nil {
			e.writeString(e.render(group.graph) + " {\n")
			indent = "    "
		}
		e.writeSubjects(group.quads, indent)
		if group.graph != nil {
			e.writeString("}\n")
		}
		e.writeString("\n")
	}
	if e.err == nil {
		e.err = e.writer.Flush()
	}
	return e.err
}

func (e *trigEncoder) writeHeader() {
	if len(e.prefixes) == 0 {
		return
	}
	names := make([]string, 0, len(e.prefixes))
	for name := range e.prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e.writeString(fmt.Sprintf("@prefix %s: <%s> .\n", name, e.prefixes[name]))
	}
	e.writeString("\n")
}

func (e *trigEncoder) writeSubjects(quads []Quad, indent string) {
	type predicateGroup struct {
		predicate IRI
		objects   []Term
	}
	var subjects []Term
	bySubject := map[Term][]*predicateGroup{}
	for _, q := range quads {
		groups, seen := bySubject[q.S]
		if !seen {
			subjects = append(subjects, q.S)
		}
		var group *predicateGroup
		for _, g := range groups {
			if g.predicate == q.P {
				group = g
				break
			}
		}
		if group == nil {
			group = &predicateGroup{predicate: q.P}
			bySubject[q.S] = append(groups, group)
		}
		group.objects = append(group.objects, q.O)
	}
	for _, s := range subjects {
		var b strings.Builder
		b.WriteString(indent + e.render(s))
		for i, group := range bySubject[s] {
			if i > 0 {
				b.WriteString(" ;\n" + indent + "   ")
			}
			b.WriteString(" " + e.renderPredicate(group.predicate) + " ")
			for j, o := range group.objects {
				if j > 0 {
					b.WriteString(", ")
				}
				b.WriteString(e.render(o))
			}
		}
		b.WriteString(" .\n")
		e.writeString(b.String())
	}
}

func (e *trigEncoder) renderPredicate(p IRI) string {
	if p == RDFType {
		return "a"
	}
	return e.render(p)
}

func (e *trigEncoder) render(t Term) string {
	switch v := t.(type) {
	case IRI:
		if name, ok := compactIRI(v.Value, e.prefixes); ok {
			return name
		}
	case Literal:
		if v.Lang == "" && v.Datatype.Value != "" && v.Datatype != XSDString {
			return `"` + escapeLiteral(v.Lexical) + `"^^` + e.render(v.Datatype)
		}
	}
	return FormatTerm(t)
}

func (e *trigEncoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = e.writer.WriteString(s)
}

type graphGroup struct {
	graph Term
	quads []Quad
}

func groupByGraph(quads []Quad) []*graphGroup {
	var groups []*graphGroup
	index := map[Term]*graphGroup{}
	var defaultGroup *graphGroup
	for _, q := range quads {
		var group *graphGroup
		if q.G == nil {
			if defaultGroup == nil {
				defaultGroup = &graphGroup{}
				groups = append(groups, defaultGroup)
			}
			group = defaultGroup
		} else if group = index[q.G]; group == nil {
			group = &graphGroup{graph: q.G}
			index[q.G] = group
			groups = append(groups, group)
		}
		group.quads = append(group.quads, q)
	}
	return groups
}

// compactIRI abbreviates value with the longest matching namespace.
func compactIRI(value string, prefixes map[string]string) (string, bool) {
	best, bestNS := "", ""
	for name, ns := range prefixes {
		if ns == "" || !strings.HasPrefix(value, ns) || len(ns) <= len(bestNS) {
			continue
		}
		if !isSafeLocalName(value[len(ns):]) {
			continue
		}
		best, bestNS = name, ns
	}
	if bestNS == "" {
		return "", false
	}
	return best + ":" + value[len(bestNS):], true
}

func isSafeLocalName(local string) bool {
	for i := 0; i < len(local); i++ {
		c := local[i]
		if !isAlnum(c) && c != '_' && (c != '-' || i == 0) {
			return false
		}
	}
	return true
}
