package store

import (
	"context"
	"sort"
	"sync"

	"github.com/geoknoesis/prov-go/rdf"
)

// Memory is an in-process Store. Statements keep insertion order and
// duplicates within a context are stored once.
type Memory struct {
	mu     sync.RWMutex
	state  memoryState
	closed bool
}

type memoryState struct {
	graphs map[rdf.Term][]rdf.Quad
	seen   map[rdf.Quad]struct{}
	order  []rdf.Term
}

func newMemoryState() memoryState {
	return memoryState{
		graphs: map[rdf.Term][]rdf.Quad{},
		seen:   map[rdf.Quad]struct{}{},
	}
}

func (s memoryState) clone() memoryState {
	out := memoryState{
		graphs: make(map[rdf.Term][]rdf.Quad, len(s.graphs)),
		seen:   make(map[rdf.Quad]struct{}, len(s.seen)),
		order:  append([]rdf.Term(nil), s.order...),
	}
	for g, quads := range s.graphs {
		out.graphs[g] = append([]rdf.Quad(nil), quads...)
	}
	for q := range s.seen {
		out.seen[q] = struct{}{}
	}
	return out
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{state: newMemoryState()}
}

type memoryTx struct {
	state *memoryState
}

func (tx *memoryTx) Add(q rdf.Quad) error {
	if err := validate(q); err != nil {
		return err
	}
	if _, ok := tx.state.seen[q]; ok {
		return nil
	}
	tx.state.seen[q] = struct{}{}
	if _, ok := tx.state.graphs[q.G]; !ok {
		tx.state.order = append(tx.state.order, q.G)
	}
	tx.state.graphs[q.G] = append(tx.state.graphs[q.G], q)
	return nil
}

// Update applies fn to a private copy of the state and swaps it in on success.
func (m *Memory) Update(ctx context.Context, fn func(Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	next := m.state.clone()
	if err := fn(&memoryTx{state: &next}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.state = next
	return nil
}

// Context returns a copy of the statements in graph.
func (m *Memory) Context(ctx context.Context, graph rdf.Term) ([]rdf.Quad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	return append([]rdf.Quad(nil), m.state.graphs[graph]...), nil
}

// Graphs lists named graphs sorted by their N-Quads form.
func (m *Memory) Graphs(ctx context.Context) ([]rdf.Term, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]rdf.Term, 0, len(m.state.order))
	for _, g := range m.state.order {
		if g != nil {
			out = append(out, g)
		}
	}
	sortTerms(out)
	return out, nil
}

// Len reports the number of stored statements.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.state.seen)
}

// Close releases the statements. Further calls fail with ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.state = newMemoryState()
	return nil
}

func sortTerms(terms []rdf.Term) {
	sort.Slice(terms, func(i, j int) bool {
		return rdf.FormatTerm(terms[i]) < rdf.FormatTerm(terms[j])
	})
}
