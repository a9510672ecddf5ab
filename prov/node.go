package prov

import "github.com/geoknoesis/prov-go/rdf"

// Node is any identifiable element of a provenance graph.
type Node interface {
	ID() rdf.Term
	Kind() Kind
	Attrs() []Attribute
}

// Object carries the identifier and free-form attributes shared by every
// node type.
type Object struct {
	Resource   rdf.Term
	Attributes []Attribute
}

// ID returns the identifier of the node.
func (o *Object) ID() rdf.Term { return o.Resource }

// Attrs returns the attributes of the node.
func (o *Object) Attrs() []Attribute { return o.Attributes }

// Values returns the values of every attribute with the given property.
func (o *Object) Values(property rdf.IRI) []rdf.Term {
	var out []rdf.Term
	for _, a := range o.Attributes {
		if a.Property == property {
			out = append(out, a.Value)
		}
	}
	return out
}

// First returns the first value of property.
func (o *Object) First(property rdf.IRI) (rdf.Term, bool) {
	for _, a := range o.Attributes {
		if a.Property == property {
			return a.Value, true
		}
	}
	return nil, false
}

// Role is the function of an entity or agent within an influence.
type Role struct{ Object }

// Kind returns KindRole.
func (*Role) Kind() Kind { return KindRole }

// NewRole returns a role with the given attributes.
func NewRole(id rdf.Term, attrs ...Attribute) *Role {
	return &Role{Object{Resource: id, Attributes: attrs}}
}

// Location is an identifiable geographic or logical place.
type Location struct{ Object }

// Kind returns KindLocation.
func (*Location) Kind() Kind { return KindLocation }

// NewLocation returns a location with the given attributes.
func NewLocation(id rdf.Term, attrs ...Attribute) *Location {
	return &Location{Object{Resource: id, Attributes: attrs}}
}

// NonProvenance is a resource typed outside PROV that appears in a bundle.
type NonProvenance struct {
	Object
	Type rdf.IRI
}

// Kind returns KindNonProvenance.
func (*NonProvenance) Kind() Kind { return KindNonProvenance }

// NewNonProvenance returns a resource of a foreign type.
func NewNonProvenance(id rdf.Term, typ rdf.IRI, attrs ...Attribute) *NonProvenance {
	return &NonProvenance{Object: Object{Resource: id, Attributes: attrs}, Type: typ}
}
