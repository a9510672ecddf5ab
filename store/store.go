// Package store provides the statement stores the provenance builder reads
// from and the serializer writes to.
//
// Every store groups statements by context (named graph). Writes happen
// inside Update: the whole unit of work is committed when the callback
// returns nil and discarded otherwise.
package store

import (
	"context"
	"errors"

	"github.com/geoknoesis/prov-go/rdf"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store: closed")

// Source returns the statements of a single context.
// A nil graph selects the default graph.
type Source interface {
	Context(ctx context.Context, graph rdf.Term) ([]rdf.Quad, error)
}

// Tx stages statements for a pending Update.
type Tx interface {
	Add(q rdf.Quad) error
}

// Store is a transactional, context-partitioned statement store.
type Store interface {
	Source
	// Update runs fn in one transaction. Statements added through the Tx
	// become visible only if fn returns nil.
	Update(ctx context.Context, fn func(Tx) error) error
	// Graphs lists the named contexts currently holding statements.
	Graphs(ctx context.Context) ([]rdf.Term, error)
	Close() error
}

// AddAll stages every quad of quads.
func AddAll(tx Tx, quads []rdf.Quad) error {
	for _, q := range quads {
		if err := tx.Add(q); err != nil {
			return err
		}
	}
	return nil
}

func validate(q rdf.Quad) error {
	if !rdf.IsResource(q.S) {
		return errors.New("store: subject must be an IRI or blank node")
	}
	if q.P.IsZero() {
		return errors.New("store: predicate is empty")
	}
	if q.O == nil {
		return errors.New("store: object is empty")
	}
	if q.G != nil && !rdf.IsResource(q.G) {
		return errors.New("store: graph must be an IRI or blank node")
	}
	return nil
}
