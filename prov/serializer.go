package prov

import (
	"context"
	"time"

	"github.com/geoknoesis/prov-go/rdf"
	"github.com/geoknoesis/prov-go/store"
	"github.com/geoknoesis/prov-go/vocab"
)

// Serializer is a Visitor that writes every statement of a bundle walk to a
// store transaction. Statements go to the context of the bundle being walked.
type Serializer struct {
	NopVisitor
	ctx      context.Context
	tx       store.Tx
	loc      *time.Location
	contexts []rdf.Term
}

// SerializerOption configures a Serializer.
type SerializerOption func(*Serializer)

// WithTimeLocation renders timestamps in loc instead of UTC.
func WithTimeLocation(loc *time.Location) SerializerOption {
	return func(s *Serializer) { s.loc = loc }
}

// NewSerializer returns a serializer adding statements to tx.
func NewSerializer(ctx context.Context, tx store.Tx, opts ...SerializerOption) *Serializer {
	s := &Serializer{ctx: ctx, tx: tx}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write serializes b into st in a single transaction. Nothing is written
// when an error occurs.
func Write(ctx context.Context, st store.Store, b *Bundle, opts ...SerializerOption) error {
	return st.Update(ctx, func(tx store.Tx) error {
		return Walk(NewSerializer(ctx, tx, opts...), b)
	})
}

// Statements returns the statements Write would add for b.
func Statements(ctx context.Context, b *Bundle, opts ...SerializerOption) ([]rdf.Quad, error) {
	var c collector
	if err := Walk(NewSerializer(ctx, &c, opts...), b); err != nil {
		return nil, err
	}
	return c.quads, nil
}

type collector struct {
	quads []rdf.Quad
	seen  map[rdf.Quad]struct{}
}

func (c *collector) Add(q rdf.Quad) error {
	if c.seen == nil {
		c.seen = map[rdf.Quad]struct{}{}
	}
	if _, ok := c.seen[q]; ok {
		return nil
	}
	c.seen[q] = struct{}{}
	c.quads = append(c.quads, q)
	return nil
}

func (s *Serializer) emit(subject rdf.Term, p rdf.IRI, object rdf.Term) error {
	if vocab.IsInternal(p) {
		return nil
	}
	if err := s.ctx.Err(); err != nil {
		return err
	}
	var graph rdf.Term
	if n := len(s.contexts); n > 0 {
		graph = s.contexts[n-1]
	}
	return s.tx.Add(rdf.Quad{S: subject, P: p, O: object, G: graph})
}

func (s *Serializer) typed(n Node, classes ...rdf.IRI) error {
	for _, class := range classes {
		if err := s.emit(n.ID(), rdf.RDFType, class); err != nil {
			return err
		}
	}
	for _, a := range n.Attrs() {
		if err := s.emit(n.ID(), a.Property, a.Value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Serializer) instant(subject rdf.Term, p rdf.IRI, t time.Time) error {
	if t.IsZero() {
		return nil
	}
	return s.emit(subject, p, rdf.TimeLiteral(t, s.loc))
}

func (s *Serializer) entity(e EntityNode, classes ...rdf.IRI) error {
	if err := s.typed(e, classes...); err != nil {
		return err
	}
	f := e.EntityBase()
	if err := s.instant(e.ID(), vocab.GeneratedAtTime, f.GeneratedAt); err != nil {
		return err
	}
	return s.instant(e.ID(), vocab.InvalidatedAtTime, f.InvalidatedAt)
}

// relation emits the base predicate to the related node and, for a
// qualified relation, the qualified predicate to the qualification.
func (s *Serializer) relation(subject Node, base rdf.IRI, r Relation) error {
	if err := s.emit(subject.ID(), base, r.TargetID()); err != nil {
		return err
	}
	if q, ok := r.Qualifier(); ok {
		qualified, _ := vocab.Qualified(base)
		return s.emit(subject.ID(), qualified, q.ID())
	}
	return nil
}

// OnBundle opens the context of b and emits its type and attributes.
func (s *Serializer) OnBundle(b *Bundle) error {
	s.contexts = append(s.contexts, b.ID())
	return s.entity(b, vocab.Bundle)
}

// LeaveBundle closes the context opened by OnBundle.
func (s *Serializer) LeaveBundle(*Bundle) error {
	s.contexts = s.contexts[:len(s.contexts)-1]
	return nil
}

// OnEntity emits the type, attributes and timestamps of e.
func (s *Serializer) OnEntity(e *Entity) error { return s.entity(e, vocab.Entity) }

// OnPlan emits p as a prov:Plan.
func (s *Serializer) OnPlan(p *Plan) error { return s.entity(p, vocab.Plan) }

// OnCollection types c, adding prov:EmptyCollection when it has no members.
func (s *Serializer) OnCollection(c *Collection) error {
	if c.IsEmpty() {
		return s.entity(c, vocab.Collection, vocab.EmptyCollection)
	}
	return s.entity(c, vocab.Collection)
}

// OnActivity emits the type and attributes of a with its start and end times.
func (s *Serializer) OnActivity(a *Activity) error {
	if err := s.typed(a, vocab.Activity); err != nil {
		return err
	}
	if err := s.instant(a.ID(), vocab.StartedAtTime, a.StartedAt); err != nil {
		return err
	}
	return s.instant(a.ID(), vocab.EndedAtTime, a.EndedAt)
}

// OnAgent emits prov:Agent plus the class of the agent type.
func (s *Serializer) OnAgent(a *Agent) error {
	switch a.Type {
	case Person:
		return s.typed(a, vocab.Agent, vocab.Person)
	case Organization:
		return s.typed(a, vocab.Agent, vocab.Organization)
	case SoftwareAgent:
		return s.typed(a, vocab.Agent, vocab.SoftwareAgent)
	}
	return s.typed(a, vocab.Agent)
}

// OnRole emits r as a prov:Role.
func (s *Serializer) OnRole(r *Role) error { return s.typed(r, vocab.Role) }

// OnLocation emits l as a prov:Location.
func (s *Serializer) OnLocation(l *Location) error { return s.typed(l, vocab.Location) }

// OnNonProvenance emits the foreign type and the attributes of n.
func (s *Serializer) OnNonProvenance(n *NonProvenance) error {
	if n.Type.IsZero() {
		return s.typed(n)
	}
	return s.typed(n, n.Type)
}

// OnQualification emits the class and attributes of q.
func (s *Serializer) OnQualification(q Qualification) error {
	class, err := q.Kind().IRI()
	if err != nil {
		return err
	}
	return s.typed(q, class)
}

// OnSpecialization emits prov:specializationOf.
func (s *Serializer) OnSpecialization(e EntityNode, r RefOrValue[EntityNode]) error {
	return s.relation(e, vocab.SpecializationOf, r)
}

// OnAlternate emits prov:alternateOf.
func (s *Serializer) OnAlternate(e EntityNode, r RefOrValue[EntityNode]) error {
	return s.relation(e, vocab.AlternateOf, r)
}

// OnAttribution emits prov:wasAttributedTo, plus prov:qualifiedAttribution when the relation is qualified.
func (s *Serializer) OnAttribution(e EntityNode, r Referencable[*Agent, *Attribution]) error {
	return s.relation(e, vocab.WasAttributedTo, r)
}

// OnGeneration emits prov:wasGeneratedBy, plus prov:qualifiedGeneration when the relation is qualified.
func (s *Serializer) OnGeneration(e EntityNode, r Referencable[*Activity, *Generation]) error {
	return s.relation(e, vocab.WasGeneratedBy, r)
}

// OnDerivation emits prov:wasDerivedFrom, plus prov:qualifiedDerivation when the relation is qualified.
func (s *Serializer) OnDerivation(e EntityNode, r Referencable[EntityNode, *Derivation]) error {
	return s.relation(e, vocab.WasDerivedFrom, r)
}

// OnPrimarySource emits prov:hadPrimarySource, plus prov:qualifiedPrimarySource when the relation is qualified.
func (s *Serializer) OnPrimarySource(e EntityNode, r Referencable[EntityNode, *PrimarySource]) error {
	return s.relation(e, vocab.HadPrimarySource, r)
}

// OnInvalidation emits prov:wasInvalidatedBy, plus prov:qualifiedInvalidation when the relation is qualified.
func (s *Serializer) OnInvalidation(e EntityNode, r Referencable[*Activity, *Invalidation]) error {
	return s.relation(e, vocab.WasInvalidatedBy, r)
}

// OnQuotation emits prov:wasQuotedFrom, plus prov:qualifiedQuotation when the relation is qualified.
func (s *Serializer) OnQuotation(e EntityNode, r Referencable[EntityNode, *Quotation]) error {
	return s.relation(e, vocab.WasQuotedFrom, r)
}

// OnRevision emits prov:wasRevisionOf, plus prov:qualifiedRevision when the relation is qualified.
func (s *Serializer) OnRevision(e EntityNode, r Referencable[EntityNode, *Revision]) error {
	return s.relation(e, vocab.WasRevisionOf, r)
}

// OnMember emits prov:hadMember.
func (s *Serializer) OnMember(c *Collection, m RefOrValue[EntityNode]) error {
	return s.relation(c, vocab.HadMember, m)
}

// OnAtLocation emits prov:atLocation.
func (s *Serializer) OnAtLocation(n Node, loc RefOrValue[*Location]) error {
	return s.relation(n, vocab.AtLocation, loc)
}

// OnGenerated emits prov:generated.
func (s *Serializer) OnGenerated(a *Activity, e RefOrValue[EntityNode]) error {
	return s.relation(a, vocab.Generated, e)
}

// OnStart emits prov:wasStartedBy, plus prov:qualifiedStart when the relation is qualified.
func (s *Serializer) OnStart(a *Activity, r Referencable[EntityNode, *Start]) error {
	return s.relation(a, vocab.WasStartedBy, r)
}

// OnEnd emits prov:wasEndedBy, plus prov:qualifiedEnd when the relation is qualified.
func (s *Serializer) OnEnd(a *Activity, r Referencable[EntityNode, *End]) error {
	return s.relation(a, vocab.WasEndedBy, r)
}

// OnAssociation emits prov:wasAssociatedWith, plus prov:qualifiedAssociation when the relation is qualified.
func (s *Serializer) OnAssociation(a *Activity, r Referencable[*Agent, *Association]) error {
	return s.relation(a, vocab.WasAssociatedWith, r)
}

// OnUsed emits prov:used, plus prov:qualifiedUsage when the relation is qualified.
func (s *Serializer) OnUsed(a *Activity, r Referencable[EntityNode, *Usage]) error {
	return s.relation(a, vocab.Used, r)
}

// OnInformedBy emits prov:wasInformedBy, plus prov:qualifiedCommunication when the relation is qualified.
func (s *Serializer) OnInformedBy(a *Activity, r Referencable[*Activity, *Communication]) error {
	return s.relation(a, vocab.WasInformedBy, r)
}

// OnInvalidated emits prov:invalidated.
func (s *Serializer) OnInvalidated(a *Activity, e RefOrValue[EntityNode]) error {
	return s.relation(a, vocab.Invalidated, e)
}

// OnDelegation emits prov:actedOnBehalfOf, plus prov:qualifiedDelegation when the relation is qualified.
func (s *Serializer) OnDelegation(a *Agent, r Referencable[*Agent, *Delegation]) error {
	return s.relation(a, vocab.ActedOnBehalfOf, r)
}

// OnInfluencer links q to its influencer with prov:entity, prov:activity or prov:agent.
func (s *Serializer) OnInfluencer(q Qualification, target Relation) error {
	return s.relation(q, influencerProperty(q.Kind()), target)
}

// OnHadRole emits prov:hadRole.
func (s *Serializer) OnHadRole(q Qualification, r RefOrValue[*Role]) error {
	return s.relation(q, vocab.HadRole, r)
}

// OnHadUsage emits prov:hadUsage.
func (s *Serializer) OnHadUsage(q Qualification, u RefOrValue[*Usage]) error {
	return s.relation(q, vocab.HadUsage, u)
}

// OnHadGeneration emits prov:hadGeneration.
func (s *Serializer) OnHadGeneration(q Qualification, g RefOrValue[*Generation]) error {
	return s.relation(q, vocab.HadGeneration, g)
}

// OnHadActivity emits prov:hadActivity.
func (s *Serializer) OnHadActivity(q Qualification, a RefOrValue[*Activity]) error {
	return s.relation(q, vocab.HadActivity, a)
}

// OnHadPlan emits prov:hadPlan.
func (s *Serializer) OnHadPlan(q Qualification, p RefOrValue[*Plan]) error {
	return s.relation(q, vocab.HadPlan, p)
}

// OnAtTime emits prov:atTime unless t is zero.
func (s *Serializer) OnAtTime(q Qualification, t time.Time) error {
	return s.instant(q.ID(), vocab.AtTime, t)
}

// OnLink emits prov:mentionOf and prov:asInBundle for the link subject.
func (s *Serializer) OnLink(_ *Bundle, l Link) error {
	subject := l.Subject.TargetID()
	if err := s.emit(subject, vocab.MentionOf, l.MentionOf); err != nil {
		return err
	}
	return s.emit(subject, vocab.AsInBundle, l.Bundle.TargetID())
}

// OnReference types a node that is only referenced in the current bundle.
func (s *Serializer) OnReference(id rdf.Term, kind Kind) error {
	class, err := kind.IRI()
	if err != nil {
		// NonProvenance references carry no class.
		return nil
	}
	return s.emit(id, rdf.RDFType, class)
}

// influencerProperty is the predicate linking a qualification to its influencer.
func influencerProperty(k Kind) rdf.IRI {
	switch k {
	case KindGeneration, KindInvalidation, KindCommunication:
		return vocab.ActivityProp
	case KindAssociation, KindAttribution, KindDelegation:
		return vocab.AgentProp
	}
	return vocab.EntityProp
}
