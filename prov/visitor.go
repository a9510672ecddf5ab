package prov

import (
	"time"

	"github.com/geoknoesis/prov-go/rdf"
)

// Visitor receives the nodes and relations of a bundle in walk order.
// Embed NopVisitor to implement only the handlers you need.
//
// Seen handlers (OnEntity, OnActivity, ...) fire once per node and bundle
// scope. Relation handlers fire for every relation instance before the
// related node is walked. OnReference fires when a bundle scope closes, for
// identifiers that were referenced but never visited by value in it.
type Visitor interface {
	OnBundle(b *Bundle) error
	LeaveBundle(b *Bundle) error
	OnEntity(e *Entity) error
	OnPlan(p *Plan) error
	OnCollection(c *Collection) error
	OnActivity(a *Activity) error
	OnAgent(a *Agent) error
	OnRole(r *Role) error
	OnLocation(l *Location) error
	OnNonProvenance(n *NonProvenance) error
	OnQualification(q Qualification) error

	OnSpecialization(e EntityNode, target RefOrValue[EntityNode]) error
	OnAlternate(e EntityNode, target RefOrValue[EntityNode]) error
	OnAttribution(e EntityNode, r Referencable[*Agent, *Attribution]) error
	OnGeneration(e EntityNode, r Referencable[*Activity, *Generation]) error
	OnDerivation(e EntityNode, r Referencable[EntityNode, *Derivation]) error
	OnPrimarySource(e EntityNode, r Referencable[EntityNode, *PrimarySource]) error
	OnInvalidation(e EntityNode, r Referencable[*Activity, *Invalidation]) error
	OnQuotation(e EntityNode, r Referencable[EntityNode, *Quotation]) error
	OnRevision(e EntityNode, r Referencable[EntityNode, *Revision]) error
	OnMember(c *Collection, member RefOrValue[EntityNode]) error
	OnAtLocation(n Node, loc RefOrValue[*Location]) error

	OnGenerated(a *Activity, e RefOrValue[EntityNode]) error
	OnStart(a *Activity, r Referencable[EntityNode, *Start]) error
	OnEnd(a *Activity, r Referencable[EntityNode, *End]) error
	OnAssociation(a *Activity, r Referencable[*Agent, *Association]) error
	OnUsed(a *Activity, r Referencable[EntityNode, *Usage]) error
	OnInformedBy(a *Activity, r Referencable[*Activity, *Communication]) error
	OnInvalidated(a *Activity, e RefOrValue[EntityNode]) error

	OnDelegation(a *Agent, r Referencable[*Agent, *Delegation]) error

	OnInfluencer(q Qualification, target Relation) error
	OnHadRole(q Qualification, role RefOrValue[*Role]) error
	OnHadUsage(q Qualification, u RefOrValue[*Usage]) error
	OnHadGeneration(q Qualification, g RefOrValue[*Generation]) error
	OnHadActivity(q Qualification, a RefOrValue[*Activity]) error
	OnHadPlan(q Qualification, p RefOrValue[*Plan]) error
	OnAtTime(q Qualification, t time.Time) error

	OnLink(b *Bundle, l Link) error
	OnReference(id rdf.Term, kind Kind) error
}

// NopVisitor implements every Visitor method as a no-op.
type NopVisitor struct{}

var _ Visitor = NopVisitor{}

// OnBundle does nothing.
func (NopVisitor) OnBundle(*Bundle) error { return nil }

// LeaveBundle does nothing.
func (NopVisitor) LeaveBundle(*Bundle) error { return nil }

// OnEntity does nothing.
func (NopVisitor) OnEntity(*Entity) error { return nil }

// OnPlan does nothing.
func (NopVisitor) OnPlan(*Plan) error { return nil }

// OnCollection does nothing.
func (NopVisitor) OnCollection(*Collection) error { return nil }

// OnActivity does nothing.
func (NopVisitor) OnActivity(*Activity) error { return nil }

// OnAgent does nothing.
func (NopVisitor) OnAgent(*Agent) error { return nil }

// OnRole does nothing.
func (NopVisitor) OnRole(*Role) error { return nil }

// OnLocation does nothing.
func (NopVisitor) OnLocation(*Location) error { return nil }

// OnNonProvenance does nothing.
func (NopVisitor) OnNonProvenance(*NonProvenance) error { return nil }

// OnQualification does nothing.
func (NopVisitor) OnQualification(Qualification) error { return nil }

// OnSpecialization does nothing.
func (NopVisitor) OnSpecialization(EntityNode, RefOrValue[EntityNode]) error { return nil }

// OnAlternate does nothing.
func (NopVisitor) OnAlternate(EntityNode, RefOrValue[EntityNode]) error { return nil }

// OnAttribution does nothing.
func (NopVisitor) OnAttribution(EntityNode, Referencable[*Agent, *Attribution]) error { return nil }

// OnGeneration does nothing.
func (NopVisitor) OnGeneration(EntityNode, Referencable[*Activity, *Generation]) error { return nil }

// OnDerivation does nothing.
func (NopVisitor) OnDerivation(EntityNode, Referencable[EntityNode, *Derivation]) error { return nil }

// OnPrimarySource does nothing.
func (NopVisitor) OnPrimarySource(EntityNode, Referencable[EntityNode, *PrimarySource]) error { return nil }

// OnInvalidation does nothing.
func (NopVisitor) OnInvalidation(EntityNode, Referencable[*Activity, *Invalidation]) error { return nil }

// OnQuotation does nothing.
func (NopVisitor) OnQuotation(EntityNode, Referencable[EntityNode, *Quotation]) error { return nil }

// OnRevision does nothing.
func (NopVisitor) OnRevision(EntityNode, Referencable[EntityNode, *Revision]) error { return nil }

// OnMember does nothing.
func (NopVisitor) OnMember(*Collection, RefOrValue[EntityNode]) error { return nil }

// OnAtLocation does nothing.
func (NopVisitor) OnAtLocation(Node, RefOrValue[*Location]) error { return nil }

// OnGenerated does nothing.
func (NopVisitor) OnGenerated(*Activity, RefOrValue[EntityNode]) error { return nil }

// OnStart does nothing.
func (NopVisitor) OnStart(*Activity, Referencable[EntityNode, *Start]) error { return nil }

// OnEnd does nothing.
func (NopVisitor) OnEnd(*Activity, Referencable[EntityNode, *End]) error { return nil }

// OnAssociation does nothing.
func (NopVisitor) OnAssociation(*Activity, Referencable[*Agent, *Association]) error { return nil }

// OnUsed does nothing.
func (NopVisitor) OnUsed(*Activity, Referencable[EntityNode, *Usage]) error { return nil }

// OnInformedBy does nothing.
func (NopVisitor) OnInformedBy(*Activity, Referencable[*Activity, *Communication]) error { return nil }

// OnInvalidated does nothing.
func (NopVisitor) OnInvalidated(*Activity, RefOrValue[EntityNode]) error { return nil }

// OnDelegation does nothing.
func (NopVisitor) OnDelegation(*Agent, Referencable[*Agent, *Delegation]) error { return nil }

// OnInfluencer does nothing.
func (NopVisitor) OnInfluencer(Qualification, Relation) error { return nil }

// OnHadRole does nothing.
func (NopVisitor) OnHadRole(Qualification, RefOrValue[*Role]) error { return nil }

// OnHadUsage does nothing.
func (NopVisitor) OnHadUsage(Qualification, RefOrValue[*Usage]) error { return nil }

// OnHadGeneration does nothing.
func (NopVisitor) OnHadGeneration(Qualification, RefOrValue[*Generation]) error { return nil }

// OnHadActivity does nothing.
func (NopVisitor) OnHadActivity(Qualification, RefOrValue[*Activity]) error { return nil }

// OnHadPlan does nothing.
func (NopVisitor) OnHadPlan(Qualification, RefOrValue[*Plan]) error { return nil }

// OnAtTime does nothing.
func (NopVisitor) OnAtTime(Qualification, time.Time) error { return nil }

// OnLink does nothing.
func (NopVisitor) OnLink(*Bundle, Link) error { return nil }

// OnReference does nothing.
func (NopVisitor) OnReference(rdf.Term, Kind) error { return nil }
