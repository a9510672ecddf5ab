package prov

import (
	"time"

	"github.com/geoknoesis/prov-go/rdf"
)

// EntityNode is implemented by Entity and its subtypes Plan, Collection and
// Bundle.
type EntityNode interface {
	Node
	EntityBase() *EntityFields
}

// EntityFields holds the relations shared by every entity-like node.
// A zero time means the timestamp is absent.
type EntityFields struct {
	Object
	GeneratedAt   time.Time
	InvalidatedAt time.Time
	Locations     []RefOrValue[*Location]

	Specializations []RefOrValue[EntityNode]
	Alternates      []RefOrValue[EntityNode]
	Attributions    []Referencable[*Agent, *Attribution]
	Generation      Referencable[*Activity, *Generation]
	Derivations     []Referencable[EntityNode, *Derivation]
	PrimarySources  []Referencable[EntityNode, *PrimarySource]
	Invalidation    Referencable[*Activity, *Invalidation]
	Quotations      []Referencable[EntityNode, *Quotation]
	Revisions       []Referencable[EntityNode, *Revision]
}

// EntityBase returns the fields shared by entity-like nodes.
func (f *EntityFields) EntityBase() *EntityFields { return f }

// Entity is a physical, digital or conceptual thing.
type Entity struct{ EntityFields }

// Kind returns KindEntity.
func (*Entity) Kind() Kind { return KindEntity }

// NewEntity returns an entity with the given attributes.
func NewEntity(id rdf.Term, attrs ...Attribute) *Entity {
	return &Entity{entityFields(id, attrs)}
}

// Plan is an entity describing steps an agent followed.
type Plan struct{ EntityFields }

// Kind returns KindPlan.
func (*Plan) Kind() Kind { return KindPlan }

// NewPlan returns a plan with the given attributes.
func NewPlan(id rdf.Term, attrs ...Attribute) *Plan {
	return &Plan{entityFields(id, attrs)}
}

// Collection is an entity made of ordered members.
type Collection struct {
	EntityFields
	Members []RefOrValue[EntityNode]
}

// Kind returns KindCollection.
func (*Collection) Kind() Kind { return KindCollection }

// IsEmpty reports whether the collection is a prov:EmptyCollection.
func (c *Collection) IsEmpty() bool { return len(c.Members) == 0 }

// NewCollection returns a collection holding members.
func NewCollection(id rdf.Term, members ...RefOrValue[EntityNode]) *Collection {
	return &Collection{EntityFields: entityFields(id, nil), Members: members}
}

func entityFields(id rdf.Term, attrs []Attribute) EntityFields {
	return EntityFields{Object: Object{Resource: id, Attributes: attrs}}
}

// Activity occurs over a period of time and acts upon entities.
type Activity struct {
	Object
	StartedAt time.Time
	EndedAt   time.Time
	Locations []RefOrValue[*Location]

	Generated    []RefOrValue[EntityNode]
	Start        Referencable[EntityNode, *Start]
	End          Referencable[EntityNode, *End]
	Associations []Referencable[*Agent, *Association]
	Usages       []Referencable[EntityNode, *Usage]
	InformedBy   []Referencable[*Activity, *Communication]
	Invalidated  []RefOrValue[EntityNode]
}

// Kind returns KindActivity.
func (*Activity) Kind() Kind { return KindActivity }

// NewActivity returns an activity with the given attributes.
func NewActivity(id rdf.Term, attrs ...Attribute) *Activity {
	return &Activity{Object: Object{Resource: id, Attributes: attrs}}
}

// AgentType refines an agent.
type AgentType uint8

const (
	GenericAgent AgentType = iota
	Person
	Organization
	SoftwareAgent
)

// String returns the name of the agent type.
func (t AgentType) String() string {
	switch t {
	case Person:
		return "Person"
	case Organization:
		return "Organization"
	case SoftwareAgent:
		return "SoftwareAgent"
	}
	return "Agent"
}

// Agent bears responsibility for activities and entities.
type Agent struct {
	Object
	Type      AgentType
	Locations []RefOrValue[*Location]

	ActedOnBehalfOf []Referencable[*Agent, *Delegation]
}

// Kind returns KindAgent.
func (*Agent) Kind() Kind { return KindAgent }

// NewAgent returns an agent of the given type.
func NewAgent(id rdf.Term, typ AgentType, attrs ...Attribute) *Agent {
	return &Agent{Object: Object{Resource: id, Attributes: attrs}, Type: typ}
}
