package rdf

import "testing"

func TestTermKinds(t *testing.T) {
	cases := []struct {
		term     Term
		kind     TermKind
		resource bool
		str      string
	}{
		{IRI{Value: "http://example.org/s"}, TermIRI, true, "http://example.org/s"},
		{BlankNode{ID: "b0"}, TermBlankNode, true, "_:b0"},
		{Literal{Lexical: "v"}, TermLiteral, false, `"v"`},
		{Literal{Lexical: "v", Lang: "en"}, TermLiteral, false, `"v"@en`},
		{Literal{Lexical: "1", Datatype: XSDInteger}, TermLiteral, false, `"1"^^<http://www.w3.org/2001/XMLSchema#integer>`},
	}
	for _, c := range cases {
		if c.term.Kind() != c.kind {
			t.Errorf("%v: kind %v, want %v", c.term, c.term.Kind(), c.kind)
		}
		if IsResource(c.term) != c.resource {
			t.Errorf("%v: IsResource = %v", c.term, !c.resource)
		}
		if c.term.String() != c.str {
			t.Errorf("String() = %s, want %s", c.term.String(), c.str)
		}
	}
	if IsResource(nil) {
		t.Error("nil is not a resource")
	}
}

func TestTermsAreComparable(t *testing.T) {
	seen := map[Term]int{}
	seen[IRI{Value: "http://example.org/s"}]++
	seen[IRI{Value: "http://example.org/s"}]++
	seen[Literal{Lexical: "1", Datatype: XSDInteger}]++
	seen[Literal{Lexical: "1"}]++
	if len(seen) != 3 || seen[IRI{Value: "http://example.org/s"}] != 2 {
		t.Fatalf("unexpected map contents %v", seen)
	}
}

func TestQuadGraph(t *testing.T) {
	g := IRI{Value: "http://example.org/g"}
	q := NewQuad(IRI{Value: "http://example.org/s"}, RDFType, IRI{Value: "http://example.org/C"}, g)
	if q.InDefaultGraph() {
		t.Fatal("quad has a graph")
	}
	moved := q.InGraph(nil)
	if !moved.InDefaultGraph() || q.G != g {
		t.Fatal("InGraph must return a copy")
	}
	if !(Quad{}).IsZero() || q.IsZero() {
		t.Fatal("IsZero mismatch")
	}
	want := "<http://example.org/s> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.org/C> <http://example.org/g> ."
	if q.String() != want {
		t.Fatalf("String() = %s", q.String())
	}
}
