package prov

import (
	"github.com/geoknoesis/prov-go/rdf"
)

// statementIndex holds the statements of one context grouped by subject.
// Duplicates are dropped and first-seen order is kept.
type statementIndex struct {
	quads     []rdf.Quad
	subjects  []rdf.Term
	bySubject map[rdf.Term][]rdf.Quad
}

func newStatementIndex(quads []rdf.Quad) *statementIndex {
	x := &statementIndex{bySubject: map[rdf.Term][]rdf.Quad{}}
	seen := make(map[rdf.Quad]struct{}, len(quads))
	for _, q := range quads {
		q.G = nil
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		x.quads = append(x.quads, q)
		if _, ok := x.bySubject[q.S]; !ok {
			x.subjects = append(x.subjects, q.S)
		}
		x.bySubject[q.S] = append(x.bySubject[q.S], q)
	}
	return x
}

func (x *statementIndex) about(s rdf.Term) []rdf.Quad { return x.bySubject[s] }

func (x *statementIndex) objects(s rdf.Term, p rdf.IRI) []rdf.Term {
	var out []rdf.Term
	for _, q := range x.bySubject[s] {
		if q.P == p {
			out = append(out, q.O)
		}
	}
	return out
}

// types returns the IRI classes of s.
func (x *statementIndex) types(s rdf.Term) []rdf.IRI {
	var out []rdf.IRI
	for _, o := range x.objects(s, rdf.RDFType) {
		if iri, ok := o.(rdf.IRI); ok {
			out = append(out, iri)
		}
	}
	return out
}

func (x *statementIndex) has(s rdf.Term, p rdf.IRI, o rdf.Term) bool {
	for _, q := range x.bySubject[s] {
		if q.P == p && q.O == o {
			return true
		}
	}
	return false
}

// attributed reports whether s is described by anything besides its types.
func (x *statementIndex) attributed(s rdf.Term) bool {
	for _, q := range x.bySubject[s] {
		if q.P != rdf.RDFType {
			return true
		}
	}
	return false
}

func (x *statementIndex) subjectsOfType(class rdf.IRI) []rdf.Term {
	var out []rdf.Term
	for _, q := range x.quads {
		if q.P == rdf.RDFType && q.O == class {
			out = append(out, q.S)
		}
	}
	return out
}

func (x *statementIndex) withPredicate(p rdf.IRI) []rdf.Quad {
	var out []rdf.Quad
	for _, q := range x.quads {
		if q.P == p {
			out = append(out, q)
		}
	}
	return out
}
