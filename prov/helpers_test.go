package prov

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/prov-go/rdf"
	"github.com/geoknoesis/prov-go/store"
)

const testPrefixes = `@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix prov: <http://www.w3.org/ns/prov#> .
@prefix dcterms: <http://purl.org/dc/terms/> .
@prefix foaf: <http://xmlns.com/foaf/0.1/> .
@prefix : <http://example.org/> .
`

func ex(local string) rdf.IRI { return rdf.IRI{Value: "http://example.org/" + local} }

func foaf(local string) rdf.IRI { return rdf.IRI{Value: "http://xmlns.com/foaf/0.1/" + local} }

func dcterms(local string) rdf.IRI { return rdf.IRI{Value: "http://purl.org/dc/terms/" + local} }

// load parses content into a fresh memory store. Turtle goes into graph,
// TriG keeps its own graphs.
func load(t *testing.T, format rdf.Format, content string, graph rdf.Term) *store.Memory {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()
	t.Cleanup(func() { _ = st.Close() })
	if content == "" {
		return st
	}
	var opts []rdf.Option
	if format == rdf.FormatTurtle {
		opts = append(opts, rdf.OptDefaultGraph(graph))
	}
	quads, err := rdf.ReadAll(ctx, strings.NewReader(testPrefixes+content), format, opts...)
	require.NoError(t, err)
	require.NoError(t, st.Update(ctx, func(tx store.Tx) error {
		return store.AddAll(tx, quads)
	}))
	return st
}

func build(t *testing.T, format rdf.Format, content string, id rdf.Term, opts ...BuildOption) (*Bundle, error) {
	t.Helper()
	return Build(context.Background(), load(t, format, content, id), id, opts...)
}

// find returns the materialized item id of b as a T.
func find[T Node](t *testing.T, b *Bundle, id rdf.Term) T {
	t.Helper()
	n, ok := b.Find(id)
	require.Truef(t, ok, "%s is not materialized", id)
	v, ok := n.(T)
	require.Truef(t, ok, "%s is a %T", id, n)
	return v
}
