package prov

import (
	"fmt"

	"github.com/geoknoesis/prov-go/rdf"
	"github.com/geoknoesis/prov-go/vocab"
)

// Kind tags every node of a provenance graph.
type Kind uint8

const (
	KindEntity Kind = iota
	KindActivity
	KindAgent
	KindBundle
	KindCollection
	KindPlan
	KindUsage
	KindGeneration
	KindInvalidation
	KindStart
	KindEnd
	KindCommunication
	KindDerivation
	KindAssociation
	KindAttribution
	KindDelegation
	KindQuotation
	KindRevision
	KindPrimarySource
	KindLocation
	KindRole
	KindNonProvenance
	KindInfluence
)

var kindNames = [...]string{
	KindEntity:        "Entity",
	KindActivity:      "Activity",
	KindAgent:         "Agent",
	KindBundle:        "Bundle",
	KindCollection:    "Collection",
	KindPlan:          "Plan",
	KindUsage:         "Usage",
	KindGeneration:    "Generation",
	KindInvalidation:  "Invalidation",
	KindStart:         "Start",
	KindEnd:           "End",
	KindCommunication: "Communication",
	KindDerivation:    "Derivation",
	KindAssociation:   "Association",
	KindAttribution:   "Attribution",
	KindDelegation:    "Delegation",
	KindQuotation:     "Quotation",
	KindRevision:      "Revision",
	KindPrimarySource: "PrimarySource",
	KindLocation:      "Location",
	KindRole:          "Role",
	KindNonProvenance: "NonProvenance",
	KindInfluence:     "Influence",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

var kindClasses = map[Kind]rdf.IRI{
	KindEntity:        vocab.Entity,
	KindActivity:      vocab.Activity,
	KindAgent:         vocab.Agent,
	KindBundle:        vocab.Bundle,
	KindCollection:    vocab.Collection,
	KindPlan:          vocab.Plan,
	KindUsage:         vocab.Usage,
	KindGeneration:    vocab.Generation,
	KindInvalidation:  vocab.Invalidation,
	KindStart:         vocab.Start,
	KindEnd:           vocab.End,
	KindCommunication: vocab.Communication,
	KindDerivation:    vocab.Derivation,
	KindAssociation:   vocab.Association,
	KindAttribution:   vocab.Attribution,
	KindDelegation:    vocab.Delegation,
	KindQuotation:     vocab.Quotation,
	KindRevision:      vocab.Revision,
	KindPrimarySource: vocab.PrimarySource,
	KindLocation:      vocab.Location,
	KindRole:          vocab.Role,
	KindInfluence:     vocab.Influence,
}

// classKinds also folds the agent and collection subclasses onto their base kind.
var classKinds = func() map[rdf.IRI]Kind {
	m := make(map[rdf.IRI]Kind, len(kindClasses)+4)
	for k, iri := range kindClasses {
		m[iri] = k
	}
	m[vocab.Person] = KindAgent
	m[vocab.Organization] = KindAgent
	m[vocab.SoftwareAgent] = KindAgent
	m[vocab.EmptyCollection] = KindCollection
	return m
}()

// IRI returns the PROV class of k. NonProvenance nodes carry their own type,
// so asking for its class fails.
func (k Kind) IRI() (rdf.IRI, error) {
	iri, ok := kindClasses[k]
	if !ok {
		return rdf.IRI{}, newError(ErrCodeUnrecognizedType, nil, rdf.IRI{}, "no class for kind "+k.String())
	}
	return iri, nil
}

// KindOf maps a PROV class to its kind.
func KindOf(class rdf.IRI) (Kind, error) {
	k, ok := classKinds[class]
	if !ok {
		return 0, newError(ErrCodeUnrecognizedType, class, rdf.IRI{}, "")
	}
	return k, nil
}

// IsEntity reports whether k is Entity or one of its subtypes.
func (k Kind) IsEntity() bool {
	switch k {
	case KindEntity, KindPlan, KindCollection, KindBundle:
		return true
	}
	return false
}

// IsInfluence reports whether k is a qualification kind.
func (k Kind) IsInfluence() bool {
	switch k {
	case KindUsage, KindGeneration, KindInvalidation, KindStart, KindEnd,
		KindCommunication, KindDerivation, KindAssociation, KindAttribution,
		KindDelegation, KindQuotation, KindRevision, KindPrimarySource, KindInfluence:
		return true
	}
	return false
}

func (k Kind) isDerivation() bool {
	switch k {
	case KindDerivation, KindQuotation, KindRevision, KindPrimarySource:
		return true
	}
	return false
}

// compatible reports whether one identifier may be used both as a and b.
// Influence is the superclass of every qualification kind.
func compatible(a, b Kind) bool {
	switch {
	case a == b:
		return true
	case a.IsEntity() && b.IsEntity():
		return true
	case a.isDerivation() && b.isDerivation():
		return true
	case a == KindInfluence:
		return b.IsInfluence()
	case b == KindInfluence:
		return a.IsInfluence()
	}
	return false
}
