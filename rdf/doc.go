// Package rdf provides the statement model and codecs used by the provenance
// packages.
//
// Copyright 2026 Geoknoesis LLC (www.geoknoesis.com)
//
// A statement is a Quad: subject, predicate, object and the graph (context)
// it belongs to. Terms are IRI, BlankNode and Literal values; all are
// comparable and can be used as map keys.
//
// Supported formats:
//   - N-Quads: streaming reader and writer
//   - TriG and Turtle: reader with prefixes, blank node property lists and
//     graph blocks; writer grouping statements by graph and subject
//   - JSON-LD: conversion through json-gold
//
// Turtle and default-graph TriG statements can be placed in a named graph
// with OptDefaultGraph. Canonicalize and Isomorphic compare datasets up to
// blank node labels using URDNA2015.
//
// Example:
//
//	quads, err := rdf.ReadAll(ctx, strings.NewReader(input), rdf.FormatTriG)
//	if err != nil {
//	    // handle error
//	}
//	for _, q := range quads {
//	    // process q.S, q.P, q.O, q.G
//	}
package rdf
