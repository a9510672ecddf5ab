package prov

import "github.com/geoknoesis/prov-go/rdf"

// Relation is the type-erased view of RefOrValue and Referencable that the
// walker and serializer work with.
type Relation interface {
	// IsZero reports an absent optional relation.
	IsZero() bool
	// IsRef reports a bare identifier without a materialized node.
	IsRef() bool
	// TargetID is the identifier of the related node. For a qualified
	// relation it is the influencer's identifier.
	TargetID() rdf.Term
	TargetKind() Kind
	// Materialized returns the related node when it is held by value.
	Materialized() (Node, bool)
	// Qualifier returns the qualification of a qualified relation.
	Qualifier() (Qualification, bool)
}

type arm uint8

const (
	armNone arm = iota
	armRef
	armValue
	armQualified
)

// RefOrValue links to a node either by identifier or by value.
// The zero value is an absent relation.
type RefOrValue[T Node] struct {
	arm   arm
	id    rdf.Term
	kind  Kind
	value T
}

// Ref links to id without materializing the node.
func Ref[T Node](id rdf.Term, kind Kind) RefOrValue[T] {
	return RefOrValue[T]{arm: armRef, id: id, kind: kind}
}

// Value links to a materialized node.
func Value[T Node](v T) RefOrValue[T] {
	return RefOrValue[T]{arm: armValue, id: v.ID(), kind: v.Kind(), value: v}
}

// EntityRef is a reference to an entity.
func EntityRef(id rdf.Term) RefOrValue[EntityNode] { return Ref[EntityNode](id, KindEntity) }

// EntityValue wraps any entity-like node.
func EntityValue(e EntityNode) RefOrValue[EntityNode] { return Value(e) }

// ActivityRef is a reference to an activity.
func ActivityRef(id rdf.Term) RefOrValue[*Activity] { return Ref[*Activity](id, KindActivity) }

// AgentRef is a reference to an agent.
func AgentRef(id rdf.Term) RefOrValue[*Agent] { return Ref[*Agent](id, KindAgent) }

// AsNode widens r to a link to any node.
func AsNode[T Node](r RefOrValue[T]) RefOrValue[Node] {
	return RefOrValue[Node]{arm: r.arm, id: r.id, kind: r.kind, value: r.value}
}

// IsZero reports an absent relation.
func (r RefOrValue[T]) IsZero() bool { return r.arm == armNone }

// IsRef reports whether r holds only an identifier.
func (r RefOrValue[T]) IsRef() bool { return r.arm == armRef }

// TargetID returns the identifier of the related node.
func (r RefOrValue[T]) TargetID() rdf.Term { return r.id }

// TargetKind returns the kind of the related node.
func (r RefOrValue[T]) TargetKind() Kind { return r.kind }

// Value returns the materialized node or ErrNotMaterialized.
func (r RefOrValue[T]) Value() (T, error) {
	if r.arm != armValue {
		var zero T
		return zero, newError(ErrCodeNotMaterialized, r.id, rdf.IRI{}, "")
	}
	return r.value, nil
}

// Materialized returns the related node when it is held by value.
func (r RefOrValue[T]) Materialized() (Node, bool) {
	if r.arm != armValue {
		return nil, false
	}
	return r.value, true
}

// Qualifier always reports false; a RefOrValue is never qualified.
func (r RefOrValue[T]) Qualifier() (Qualification, bool) { return nil, false }

// QualificationOf is a qualification whose influencer is a T.
type QualificationOf[T Node] interface {
	Qualification
	Influencer() RefOrValue[T]
}

// Referencable is a PROV relation that may be given plainly or through its
// qualified form. The zero value is an absent relation.
type Referencable[T Node, Q QualificationOf[T]] struct {
	plain     RefOrValue[T]
	qual      Q
	qualified bool
}

// Plain wraps an unqualified link. The qualification type comes first so
// the target type is inferred: Plain[*Usage](EntityRef(id)).
func Plain[Q QualificationOf[T], T Node](r RefOrValue[T]) Referencable[T, Q] {
	return Referencable[T, Q]{plain: r}
}

// Qualify wraps a qualification: Qualify[EntityNode](usage).
func Qualify[T Node, Q QualificationOf[T]](q Q) Referencable[T, Q] {
	return Referencable[T, Q]{qual: q, qualified: true}
}

// IsZero reports an absent relation.
func (r Referencable[T, Q]) IsZero() bool { return !r.qualified && r.plain.IsZero() }

// IsRef reports an unqualified relation that holds only an identifier.
func (r Referencable[T, Q]) IsRef() bool { return !r.qualified && r.plain.IsRef() }

// IsQualified reports whether r holds a qualification.
func (r Referencable[T, Q]) IsQualified() bool { return r.qualified }

// Influencer returns the related node for every arm.
func (r Referencable[T, Q]) Influencer() RefOrValue[T] {
	if r.qualified {
		return r.qual.Influencer()
	}
	return r.plain
}

// TargetID returns the identifier of the influencer.
func (r Referencable[T, Q]) TargetID() rdf.Term { return r.Influencer().TargetID() }

// TargetKind returns the kind of the influencer.
func (r Referencable[T, Q]) TargetKind() Kind { return r.Influencer().TargetKind() }

// Value returns the materialized related node or ErrNotMaterialized.
func (r Referencable[T, Q]) Value() (T, error) { return r.Influencer().Value() }

// Materialized returns the influencer when it is held by value.
func (r Referencable[T, Q]) Materialized() (Node, bool) { return r.Influencer().Materialized() }

// Qualification returns the qualification or ErrNotQualified.
func (r Referencable[T, Q]) Qualification() (Q, error) {
	if !r.qualified {
		var zero Q
		return zero, newError(ErrCodeNotQualified, r.plain.TargetID(), rdf.IRI{}, "")
	}
	return r.qual, nil
}

// Qualifier returns the qualification of a qualified relation.
func (r Referencable[T, Q]) Qualifier() (Qualification, bool) {
	if !r.qualified {
		return nil, false
	}
	return r.qual, true
}
