// Package prov models W3C PROV provenance graphs and maps them to and from
// context-scoped RDF statements.
//
// A Bundle holds items (entities, activities, agents, roles, locations and
// non-provenance resources) and links to the bundles its items are
// mentioned in. Relations between nodes are either a RefOrValue, which
// names the related node or holds it, or a Referencable, which may also
// carry the qualification (a Usage, Generation, Association, ...) that
// elaborates the relation.
//
// Walk drives a Visitor over a bundle. Every node is visited once per
// bundle, and nodes that were only referenced are reported through
// OnReference when the bundle is left. Serializer is the Visitor that turns
// a bundle into statements:
//
//	err := prov.Write(ctx, st, bundle)
//
// Build goes the other way and reconstructs a bundle from the statements of
// its context:
//
//	bundle, err := prov.Build(ctx, st, rdf.IRI{Value: "http://example.org/b1"},
//		prov.WithLogger(logger))
//
// Failures are reported as *Error values carrying an ErrorCode; errors.Is
// matches them against the Err* sentinels.
package prov
