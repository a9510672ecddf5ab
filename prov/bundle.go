package prov

import "github.com/geoknoesis/prov-go/rdf"

// Bundle is a named set of provenance statements. It is itself an entity.
type Bundle struct {
	EntityFields
	Items []RefOrValue[Node]
	Links []Link
}

// Kind returns KindBundle.
func (*Bundle) Kind() Kind { return KindBundle }

// NewBundle returns an empty bundle.
func NewBundle(id rdf.Term, attrs ...Attribute) *Bundle {
	return &Bundle{EntityFields: entityFields(orBlank(id), attrs)}
}

// Link states that Subject in this bundle is MentionOf a node described in
// another bundle.
type Link struct {
	Subject   RefOrValue[Node]
	MentionOf rdf.IRI
	Bundle    RefOrValue[*Bundle]
}

// Add appends nodes as materialized items.
func (b *Bundle) Add(nodes ...Node) {
	for _, n := range nodes {
		b.Items = append(b.Items, Value(n))
	}
}

// AddRef appends an item known only by identifier.
func (b *Bundle) AddRef(id rdf.Term, kind Kind) {
	b.Items = append(b.Items, Ref[Node](id, kind))
}

// Item returns the item with the given identifier.
func (b *Bundle) Item(id rdf.Term) (RefOrValue[Node], bool) {
	for _, it := range b.Items {
		if it.TargetID() == id {
			return it, true
		}
	}
	return RefOrValue[Node]{}, false
}

// Find returns the materialized item with the given identifier.
func (b *Bundle) Find(id rdf.Term) (Node, bool) {
	it, ok := b.Item(id)
	if !ok {
		return nil, false
	}
	return it.Materialized()
}

// Linked returns the materialized bundle linked under id.
func (b *Bundle) Linked(id rdf.Term) (*Bundle, bool) {
	for _, l := range b.Links {
		if l.Bundle.TargetID() != id {
			continue
		}
		if t, err := l.Bundle.Value(); err == nil {
			return t, true
		}
	}
	return nil, false
}

// BundleIncludes counts the links reachable from b: one per link plus the
// count of every materialized linked bundle. A bundle already on the
// current path counts once without being descended again.
func (b *Bundle) BundleIncludes() int {
	return b.includes(map[*Bundle]bool{})
}

func (b *Bundle) includes(path map[*Bundle]bool) int {
	path[b] = true
	defer delete(path, b)

	n := 0
	for _, l := range b.Links {
		n++
		if t, err := l.Bundle.Value(); err == nil && !path[t] {
			n += t.includes(path)
		}
	}
	return n
}
