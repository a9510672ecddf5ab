package prov

import (
	"time"

	"github.com/geoknoesis/prov-go/rdf"
)

// Qualification is an influence node elaborating a plain PROV relation.
type Qualification interface {
	Node
	InfluenceBase() *Influence
	// InfluencerRelation is the type-erased Influencer.
	InfluencerRelation() Relation
}

// Influence holds the fields common to every qualification.
type Influence struct {
	Object
	Role     RefOrValue[*Role]
	Location RefOrValue[*Location]
}

// NewInfluence returns the common part of a qualification. A nil id gets a
// fresh blank node.
func NewInfluence(id rdf.Term, attrs ...Attribute) Influence {
	return Influence{Object: Object{Resource: orBlank(id), Attributes: attrs}}
}

// InfluenceBase returns the fields shared by all qualifications.
func (i *Influence) InfluenceBase() *Influence { return i }

// instantaneous is implemented by influences that happen at a point in time.
type instantaneous interface {
	OccurredAt() time.Time
}

// derivation is implemented by Derivation and its subtypes.
type derivation interface {
	DerivationBase() *DerivationFields
}

// Usage qualifies prov:used.
type Usage struct {
	Influence
	Entity RefOrValue[EntityNode]
	AtTime time.Time
}

// Kind returns KindUsage.
func (*Usage) Kind() Kind { return KindUsage }

// Influencer returns the entity that was used.
func (u *Usage) Influencer() RefOrValue[EntityNode] { return u.Entity }

// InfluencerRelation returns Influencer as a Relation.
func (u *Usage) InfluencerRelation() Relation { return u.Entity }

// OccurredAt returns the time of the usage, zero when unknown.
func (u *Usage) OccurredAt() time.Time { return u.AtTime }

// Generation qualifies prov:wasGeneratedBy.
type Generation struct {
	Influence
	Activity RefOrValue[*Activity]
	AtTime   time.Time
}

// Kind returns KindGeneration.
func (*Generation) Kind() Kind { return KindGeneration }

// Influencer returns the generating activity.
func (g *Generation) Influencer() RefOrValue[*Activity] { return g.Activity }

// InfluencerRelation returns Influencer as a Relation.
func (g *Generation) InfluencerRelation() Relation { return g.Activity }

// OccurredAt returns the time of the generation, zero when unknown.
func (g *Generation) OccurredAt() time.Time { return g.AtTime }

// Invalidation qualifies prov:wasInvalidatedBy.
type Invalidation struct {
	Influence
	Activity RefOrValue[*Activity]
	AtTime   time.Time
}

// Kind returns KindInvalidation.
func (*Invalidation) Kind() Kind { return KindInvalidation }

// Influencer returns the invalidating activity.
func (i *Invalidation) Influencer() RefOrValue[*Activity] { return i.Activity }

// InfluencerRelation returns Influencer as a Relation.
func (i *Invalidation) InfluencerRelation() Relation { return i.Activity }

// OccurredAt returns the time of the invalidation, zero when unknown.
func (i *Invalidation) OccurredAt() time.Time { return i.AtTime }

// Start qualifies prov:wasStartedBy. Entity is the trigger and HadActivity
// the starter.
type Start struct {
	Influence
	Entity      RefOrValue[EntityNode]
	HadActivity RefOrValue[*Activity]
	AtTime      time.Time
}

// Kind returns KindStart.
func (*Start) Kind() Kind { return KindStart }

// Influencer returns the entity that triggered the start.
func (s *Start) Influencer() RefOrValue[EntityNode] { return s.Entity }

// InfluencerRelation returns Influencer as a Relation.
func (s *Start) InfluencerRelation() Relation { return s.Entity }

// OccurredAt returns the time of the start, zero when unknown.
func (s *Start) OccurredAt() time.Time { return s.AtTime }

// End qualifies prov:wasEndedBy.
type End struct {
	Influence
	Entity      RefOrValue[EntityNode]
	HadActivity RefOrValue[*Activity]
	AtTime      time.Time
}

// Kind returns KindEnd.
func (*End) Kind() Kind { return KindEnd }

// Influencer returns the entity that triggered the end.
func (e *End) Influencer() RefOrValue[EntityNode] { return e.Entity }

// InfluencerRelation returns Influencer as a Relation.
func (e *End) InfluencerRelation() Relation { return e.Entity }

// OccurredAt returns the time of the end, zero when unknown.
func (e *End) OccurredAt() time.Time { return e.AtTime }

// Communication qualifies prov:wasInformedBy.
type Communication struct {
	Influence
	Activity RefOrValue[*Activity]
}

// Kind returns KindCommunication.
func (*Communication) Kind() Kind { return KindCommunication }

// Influencer returns the informing activity.
func (c *Communication) Influencer() RefOrValue[*Activity] { return c.Activity }

// InfluencerRelation returns Influencer as a Relation.
func (c *Communication) InfluencerRelation() Relation { return c.Activity }

// DerivationFields is shared by Derivation and its subtypes.
type DerivationFields struct {
	Entity        RefOrValue[EntityNode]
	HadUsage      RefOrValue[*Usage]
	HadGeneration RefOrValue[*Generation]
	HadActivity   RefOrValue[*Activity]
}

// DerivationBase returns the fields shared by derivations.
func (d *DerivationFields) DerivationBase() *DerivationFields { return d }

// Influencer returns the entity the derivation starts from.
func (d *DerivationFields) Influencer() RefOrValue[EntityNode] { return d.Entity }

// InfluencerRelation returns Influencer as a Relation.
func (d *DerivationFields) InfluencerRelation() Relation { return d.Entity }

// Derivation qualifies prov:wasDerivedFrom.
type Derivation struct {
	Influence
	DerivationFields
}

// Kind returns KindDerivation.
func (*Derivation) Kind() Kind { return KindDerivation }

// PrimarySource qualifies prov:hadPrimarySource.
type PrimarySource struct {
	Influence
	DerivationFields
}

// Kind returns KindPrimarySource.
func (*PrimarySource) Kind() Kind { return KindPrimarySource }

// Quotation qualifies prov:wasQuotedFrom.
type Quotation struct {
	Influence
	DerivationFields
}

// Kind returns KindQuotation.
func (*Quotation) Kind() Kind { return KindQuotation }

// Revision qualifies prov:wasRevisionOf.
type Revision struct {
	Influence
	DerivationFields
}

// Kind returns KindRevision.
func (*Revision) Kind() Kind { return KindRevision }

// Association qualifies prov:wasAssociatedWith.
type Association struct {
	Influence
	Agent   RefOrValue[*Agent]
	HadPlan RefOrValue[*Plan]
}

// Kind returns KindAssociation.
func (*Association) Kind() Kind { return KindAssociation }

// Influencer returns the associated agent.
func (a *Association) Influencer() RefOrValue[*Agent] { return a.Agent }

// InfluencerRelation returns Influencer as a Relation.
func (a *Association) InfluencerRelation() Relation { return a.Agent }

// Attribution qualifies prov:wasAttributedTo.
type Attribution struct {
	Influence
	Agent       RefOrValue[*Agent]
	HadActivity RefOrValue[*Activity]
}

// Kind returns KindAttribution.
func (*Attribution) Kind() Kind { return KindAttribution }

// Influencer returns the agent the entity is attributed to.
func (a *Attribution) Influencer() RefOrValue[*Agent] { return a.Agent }

// InfluencerRelation returns Influencer as a Relation.
func (a *Attribution) InfluencerRelation() Relation { return a.Agent }

// Delegation qualifies prov:actedOnBehalfOf.
type Delegation struct {
	Influence
	Agent       RefOrValue[*Agent]
	HadActivity RefOrValue[*Activity]
}

// Kind returns KindDelegation.
func (*Delegation) Kind() Kind { return KindDelegation }

// Influencer returns the responsible agent.
func (d *Delegation) Influencer() RefOrValue[*Agent] { return d.Agent }

// InfluencerRelation returns Influencer as a Relation.
func (d *Delegation) InfluencerRelation() Relation { return d.Agent }
