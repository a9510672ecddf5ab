// Package vocab holds the PROV-O vocabulary and the table pairing each
// qualifiable PROV property with its qualified form.
package vocab

import (
	"strings"

	"github.com/geoknoesis/prov-go/rdf"
)

// Namespace is the PROV-O namespace.
const Namespace = "http://www.w3.org/ns/prov#"

func prov(local string) rdf.IRI { return rdf.IRI{Value: Namespace + local} }

// Classes.
var (
	Entity          = prov("Entity")
	Activity        = prov("Activity")
	Agent           = prov("Agent")
	Collection      = prov("Collection")
	EmptyCollection = prov("EmptyCollection")
	Bundle          = prov("Bundle")
	Plan            = prov("Plan")
	Location        = prov("Location")
	Role            = prov("Role")
	Person          = prov("Person")
	Organization    = prov("Organization")
	SoftwareAgent   = prov("SoftwareAgent")
	Influence       = prov("Influence")
	Usage           = prov("Usage")
	Generation      = prov("Generation")
	Invalidation    = prov("Invalidation")
	Start           = prov("Start")
	End             = prov("End")
	Communication   = prov("Communication")
	Derivation      = prov("Derivation")
	Association     = prov("Association")
	Attribution     = prov("Attribution")
	Delegation      = prov("Delegation")
	Quotation       = prov("Quotation")
	Revision        = prov("Revision")
	PrimarySource   = prov("PrimarySource")
)

// Properties with a qualified form.
var (
	WasGeneratedBy    = prov("wasGeneratedBy")
	WasDerivedFrom    = prov("wasDerivedFrom")
	HadPrimarySource  = prov("hadPrimarySource")
	WasQuotedFrom     = prov("wasQuotedFrom")
	WasRevisionOf     = prov("wasRevisionOf")
	WasAttributedTo   = prov("wasAttributedTo")
	WasInvalidatedBy  = prov("wasInvalidatedBy")
	WasStartedBy      = prov("wasStartedBy")
	Used              = prov("used")
	WasInformedBy     = prov("wasInformedBy")
	WasAssociatedWith = prov("wasAssociatedWith")
	WasEndedBy        = prov("wasEndedBy")
	ActedOnBehalfOf   = prov("actedOnBehalfOf")

	QualifiedGeneration    = prov("qualifiedGeneration")
	QualifiedDerivation    = prov("qualifiedDerivation")
	QualifiedPrimarySource = prov("qualifiedPrimarySource")
	QualifiedQuotation     = prov("qualifiedQuotation")
	QualifiedRevision      = prov("qualifiedRevision")
	QualifiedAttribution   = prov("qualifiedAttribution")
	QualifiedInvalidation  = prov("qualifiedInvalidation")
	QualifiedStart         = prov("qualifiedStart")
	QualifiedUsage         = prov("qualifiedUsage")
	QualifiedCommunication = prov("qualifiedCommunication")
	QualifiedAssociation   = prov("qualifiedAssociation")
	QualifiedEnd           = prov("qualifiedEnd")
	QualifiedDelegation    = prov("qualifiedDelegation")
)

// Other properties.
var (
	EntityProp        = prov("entity")
	ActivityProp      = prov("activity")
	AgentProp         = prov("agent")
	HadRole           = prov("hadRole")
	AtLocation        = prov("atLocation")
	AtTime            = prov("atTime")
	HadUsage          = prov("hadUsage")
	HadGeneration     = prov("hadGeneration")
	HadActivity       = prov("hadActivity")
	HadPlan           = prov("hadPlan")
	HadMember         = prov("hadMember")
	Generated         = prov("generated")
	Invalidated       = prov("invalidated")
	AlternateOf       = prov("alternateOf")
	SpecializationOf  = prov("specializationOf")
	GeneratedAtTime   = prov("generatedAtTime")
	InvalidatedAtTime = prov("invalidatedAtTime")
	StartedAtTime     = prov("startedAtTime")
	EndedAtTime       = prov("endedAtTime")
	MentionOf         = prov("mentionOf")
	AsInBundle        = prov("asInBundle")
)

// Grouping properties used while assembling a bundle. They are not part of
// PROV-O and must never be written out.
var (
	BundleItem  = prov("bundleItem")
	BundleLinks = prov("bundleLinks")
)

var qualifications = map[rdf.IRI]rdf.IRI{
	WasGeneratedBy:    QualifiedGeneration,
	WasDerivedFrom:    QualifiedDerivation,
	HadPrimarySource:  QualifiedPrimarySource,
	WasQuotedFrom:     QualifiedQuotation,
	WasRevisionOf:     QualifiedRevision,
	WasAttributedTo:   QualifiedAttribution,
	WasInvalidatedBy:  QualifiedInvalidation,
	WasStartedBy:      QualifiedStart,
	Used:              QualifiedUsage,
	WasInformedBy:     QualifiedCommunication,
	WasAssociatedWith: QualifiedAssociation,
	WasEndedBy:        QualifiedEnd,
	ActedOnBehalfOf:   QualifiedDelegation,
}

var bases = func() map[rdf.IRI]rdf.IRI {
	m := make(map[rdf.IRI]rdf.IRI, len(qualifications))
	for base, qualified := range qualifications {
		m[qualified] = base
	}
	return m
}()

// Qualified returns the qualified property paired with base.
func Qualified(base rdf.IRI) (rdf.IRI, bool) {
	q, ok := qualifications[base]
	return q, ok
}

// BaseOf returns the plain property paired with a qualified property.
func BaseOf(qualified rdf.IRI) (rdf.IRI, bool) {
	b, ok := bases[qualified]
	return b, ok
}

// Qualifications returns a copy of the base to qualified property table.
func Qualifications() map[rdf.IRI]rdf.IRI {
	out := make(map[rdf.IRI]rdf.IRI, len(qualifications))
	for k, v := range qualifications {
		out[k] = v
	}
	return out
}

// InNamespace reports whether iri belongs to PROV-O.
func InNamespace(t rdf.Term) bool {
	iri, ok := t.(rdf.IRI)
	return ok && strings.HasPrefix(iri.Value, Namespace)
}

// IsInternal reports whether p is one of the private grouping properties.
func IsInternal(p rdf.IRI) bool {
	return p == BundleItem || p == BundleLinks
}
