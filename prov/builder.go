package prov

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geoknoesis/prov-go/rdf"
	"github.com/geoknoesis/prov-go/store"
	"github.com/geoknoesis/prov-go/vocab"
)

// FollowMode selects whether Build loads the bundles targeted by links.
type FollowMode uint8

const (
	// FollowAuto follows links when the starting context holds any
	// prov:asInBundle statement.
	FollowAuto FollowMode = iota
	FollowAlways
	FollowNever
)

// BuildOption configures Build.
type BuildOption func(*buildOptions)

type buildOptions struct {
	logger *slog.Logger
	follow FollowMode
	loc    *time.Location
}

// WithLogger reports build progress to l.
func WithLogger(l *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFollowLinks sets the link following mode.
func WithFollowLinks(mode FollowMode) BuildOption {
	return func(o *buildOptions) { o.follow = mode }
}

// WithDefaultLocation interprets timestamps without an offset in loc.
// UTC is used otherwise.
func WithDefaultLocation(loc *time.Location) BuildOption {
	return func(o *buildOptions) { o.loc = loc }
}

// Build reconstructs the bundle stored in the context named id.
//
// The context must hold the statement (id rdf:type prov:Bundle). Typed
// subjects described by at least one other statement are materialized,
// the rest are kept as references. Linked bundles are built recursively
// according to the follow mode; a link back to a bundle that is still
// being built is kept as a reference.
func Build(ctx context.Context, src store.Source, id rdf.Term, opts ...BuildOption) (*Bundle, error) {
	o := buildOptions{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	s := &session{
		ctx:      ctx,
		src:      src,
		opts:     o,
		built:    map[rdf.Term]*Bundle{},
		building: map[rdf.Term]bool{},
	}
	return s.bundle(id, o.follow)
}

// session is shared by the nested builds of one Build call.
type session struct {
	ctx      context.Context
	src      store.Source
	opts     buildOptions
	built    map[rdf.Term]*Bundle
	building map[rdf.Term]bool
}

func (s *session) bundle(id rdf.Term, mode FollowMode) (*Bundle, error) {
	if b, ok := s.built[id]; ok {
		return b, nil
	}
	if !rdf.IsResource(id) {
		return nil, newError(ErrCodeContextMismatch, id, rdf.IRI{}, "bundle identifier must be an IRI or blank node")
	}
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}
	quads, err := s.src.Context(s.ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load context %s: %w", rdf.FormatTerm(id), err)
	}
	if len(quads) == 0 {
		return nil, newError(ErrCodeEmptyDataset, id, rdf.IRI{}, "")
	}
	idx := newStatementIndex(quads)
	if !idx.has(id, rdf.RDFType, vocab.Bundle) {
		return nil, newError(ErrCodeContextMismatch, id, rdf.RDFType, "context does not declare its bundle")
	}

	follow := mode == FollowAlways || (mode == FollowAuto && len(idx.withPredicate(vocab.AsInBundle)) > 0)
	s.opts.logger.Debug("building bundle", "bundle", id.String(), "statements", len(idx.quads), "follow", follow)

	s.building[id] = true
	defer delete(s.building, id)

	b := &builder{
		s:       s,
		idx:     idx,
		follow:  follow,
		root:    &Bundle{},
		tracked: map[rdf.Term]Node{},
		refs:    map[rdf.Term]Kind{},
	}
	b.root.Resource = id
	bundle, err := b.build()
	if err != nil {
		return nil, err
	}
	s.built[id] = bundle
	return bundle, nil
}

// builder reconstructs a single bundle. Helpers record the first failure
// in err and turn into no-ops afterwards.
type builder struct {
	s       *session
	idx     *statementIndex
	follow  bool
	root    *Bundle
	tracked map[rdf.Term]Node
	refs    map[rdf.Term]Kind
	order   []rdf.Term
	err     error
}

// classes lists the classes that make a subject a bundle item, most
// specific first so a Person is never built as a generic Agent.
var classes = []struct {
	class rdf.IRI
	kind  Kind
}{
	{vocab.Activity, KindActivity},
	{vocab.Person, KindAgent},
	{vocab.Organization, KindAgent},
	{vocab.SoftwareAgent, KindAgent},
	{vocab.Agent, KindAgent},
	{vocab.Plan, KindPlan},
	{vocab.Collection, KindCollection},
	{vocab.EmptyCollection, KindCollection},
	{vocab.Bundle, KindBundle},
	{vocab.Entity, KindEntity},
	{vocab.Location, KindLocation},
	{vocab.Role, KindRole},
}

// linkSubclasses are discarded when a link subject carries several types.
var linkSubclasses = map[rdf.IRI]bool{
	vocab.Organization:    true,
	vocab.SoftwareAgent:   true,
	vocab.Person:          true,
	vocab.Plan:            true,
	vocab.Collection:      true,
	vocab.EmptyCollection: true,
}

func (b *builder) build() (*Bundle, error) {
	id := b.root.ID()
	b.tracked[id] = b.root

	for _, c := range classes {
		for _, subject := range b.idx.subjectsOfType(c.class) {
			if _, ok := b.tracked[subject]; ok {
				continue
			}
			if _, ok := b.refs[subject]; ok {
				continue
			}
			if c.kind == KindBundle || !b.idx.attributed(subject) {
				b.reference(subject, c.kind)
				continue
			}
			b.node(subject, c.kind)
			if b.err != nil {
				return nil, b.err
			}
		}
	}

	b.fillEntity(&b.root.EntityFields)
	b.nonProvenance()
	if b.err != nil {
		return nil, b.err
	}

	for _, ref := range b.order {
		if _, ok := b.tracked[ref]; ok {
			continue
		}
		if kind := b.refs[ref]; !kind.IsInfluence() {
			b.root.AddRef(ref, kind)
		}
	}

	if err := b.bundleLinks(); err != nil {
		return nil, err
	}
	return b.root, nil
}

func (b *builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// track registers n before its relations are resolved, so cycles resolve
// to the node being built.
func (b *builder) track(n Node) {
	b.tracked[n.ID()] = n
	if !n.Kind().IsInfluence() {
		b.root.Add(n)
	}
}

// reference records id as a reference of kind. An identifier already known
// under an incompatible kind fails the build.
func (b *builder) reference(id rdf.Term, kind Kind) {
	prev, known := b.refs[id]
	if n, ok := b.tracked[id]; ok {
		prev, known = n.Kind(), true
	}
	if known {
		if !compatible(prev, kind) {
			b.fail(newError(ErrCodeTypeMismatch, id, rdf.IRI{}, fmt.Sprintf("used as %s and %s", prev, kind)))
		}
		return
	}
	b.refs[id] = kind
	b.order = append(b.order, id)
}

// kindFor refines slot with the PROV classes of id.
func (b *builder) kindFor(id rdf.Term, slot Kind, subject rdf.Term, p rdf.IRI) Kind {
	found, typed := false, false
	best := slot
	for _, t := range b.idx.types(id) {
		k, err := KindOf(t)
		if err != nil {
			continue
		}
		typed = true
		if !compatible(k, slot) {
			continue
		}
		if !found || best == KindEntity || best == KindInfluence {
			best, found = k, true
		}
	}
	if typed && !found {
		b.fail(newError(ErrCodeTypeMismatch, subject, p, fmt.Sprintf("%s is not typed as %s", rdf.FormatTerm(id), slot)))
	}
	if best == KindInfluence {
		return slot
	}
	return best
}

// node builds id as kind.
func (b *builder) node(id rdf.Term, kind Kind) Node {
	if b.err != nil {
		return nil
	}
	switch kind {
	case KindEntity:
		e := &Entity{}
		e.Resource = id
		b.track(e)
		b.fillEntity(&e.EntityFields)
		return e
	case KindPlan:
		p := &Plan{}
		p.Resource = id
		b.track(p)
		b.fillEntity(&p.EntityFields)
		return p
	case KindCollection:
		c := &Collection{}
		c.Resource = id
		b.track(c)
		b.fillEntity(&c.EntityFields)
		c.Members = links[EntityNode](b, id, vocab.HadMember, KindEntity)
		return c
	case KindActivity:
		a := &Activity{}
		a.Resource = id
		b.track(a)
		b.fillActivity(a)
		return a
	case KindAgent:
		a := &Agent{Type: b.agentType(id)}
		a.Resource = id
		b.track(a)
		a.Attributes = b.attributes(id)
		a.Locations = links[*Location](b, id, vocab.AtLocation, KindLocation)
		a.ActedOnBehalfOf = qualified[*Agent, *Delegation](b, id, vocab.ActedOnBehalfOf, KindAgent, KindDelegation)
		return a
	case KindRole:
		r := &Role{}
		r.Resource = id
		b.track(r)
		r.Attributes = b.attributes(id)
		return r
	case KindLocation:
		l := &Location{}
		l.Resource = id
		b.track(l)
		l.Attributes = b.attributes(id)
		return l
	}
	if kind.IsInfluence() {
		return b.qualification(id, kind)
	}
	b.fail(newError(ErrCodeUnrecognizedType, id, rdf.IRI{}, "cannot build a "+kind.String()))
	return nil
}

func (b *builder) fillEntity(f *EntityFields) {
	id := f.Resource
	f.Attributes = b.attributes(id)
	f.GeneratedAt = b.instant(id, vocab.GeneratedAtTime)
	f.InvalidatedAt = b.instant(id, vocab.InvalidatedAtTime)
	f.Locations = links[*Location](b, id, vocab.AtLocation, KindLocation)
	f.Specializations = links[EntityNode](b, id, vocab.SpecializationOf, KindEntity)
	f.Alternates = links[EntityNode](b, id, vocab.AlternateOf, KindEntity)
	f.Attributions = qualified[*Agent, *Attribution](b, id, vocab.WasAttributedTo, KindAgent, KindAttribution)
	f.Generation = first(qualified[*Activity, *Generation](b, id, vocab.WasGeneratedBy, KindActivity, KindGeneration))
	f.Derivations = qualified[EntityNode, *Derivation](b, id, vocab.WasDerivedFrom, KindEntity, KindDerivation)
	f.PrimarySources = qualified[EntityNode, *PrimarySource](b, id, vocab.HadPrimarySource, KindEntity, KindPrimarySource)
	f.Invalidation = first(qualified[*Activity, *Invalidation](b, id, vocab.WasInvalidatedBy, KindActivity, KindInvalidation))
	f.Quotations = qualified[EntityNode, *Quotation](b, id, vocab.WasQuotedFrom, KindEntity, KindQuotation)
	f.Revisions = qualified[EntityNode, *Revision](b, id, vocab.WasRevisionOf, KindEntity, KindRevision)
}

func (b *builder) fillActivity(a *Activity) {
	id := a.Resource
	a.Attributes = b.attributes(id)
	a.StartedAt = b.instant(id, vocab.StartedAtTime)
	a.EndedAt = b.instant(id, vocab.EndedAtTime)
	a.Locations = links[*Location](b, id, vocab.AtLocation, KindLocation)
	a.Generated = links[EntityNode](b, id, vocab.Generated, KindEntity)
	a.Start = first(qualified[EntityNode, *Start](b, id, vocab.WasStartedBy, KindEntity, KindStart))
	a.End = first(qualified[EntityNode, *End](b, id, vocab.WasEndedBy, KindEntity, KindEnd))
	a.Associations = qualified[*Agent, *Association](b, id, vocab.WasAssociatedWith, KindAgent, KindAssociation)
	a.Usages = qualified[EntityNode, *Usage](b, id, vocab.Used, KindEntity, KindUsage)
	a.InformedBy = qualified[*Activity, *Communication](b, id, vocab.WasInformedBy, KindActivity, KindCommunication)
	a.Invalidated = links[EntityNode](b, id, vocab.Invalidated, KindEntity)
}

func (b *builder) agentType(id rdf.Term) AgentType {
	for _, t := range b.idx.types(id) {
		switch t {
		case vocab.Person:
			return Person
		case vocab.Organization:
			return Organization
		case vocab.SoftwareAgent:
			return SoftwareAgent
		}
	}
	return GenericAgent
}

// qualification builds the influence node id as kind.
func (b *builder) qualification(id rdf.Term, kind Kind) Node {
	switch kind {
	case KindUsage:
		u := &Usage{}
		b.influence(u, &u.Influence, id)
		u.Entity = required[EntityNode](b, id, vocab.EntityProp, KindEntity)
		u.AtTime = b.instant(id, vocab.AtTime)
		return u
	case KindGeneration:
		g := &Generation{}
		b.influence(g, &g.Influence, id)
		g.Activity = required[*Activity](b, id, vocab.ActivityProp, KindActivity)
		g.AtTime = b.instant(id, vocab.AtTime)
		return g
	case KindInvalidation:
		i := &Invalidation{}
		b.influence(i, &i.Influence, id)
		i.Activity = required[*Activity](b, id, vocab.ActivityProp, KindActivity)
		i.AtTime = b.instant(id, vocab.AtTime)
		return i
	case KindStart:
		s := &Start{}
		b.influence(s, &s.Influence, id)
		s.Entity = required[EntityNode](b, id, vocab.EntityProp, KindEntity)
		s.HadActivity = optional[*Activity](b, id, vocab.HadActivity, KindActivity)
		s.AtTime = b.instant(id, vocab.AtTime)
		return s
	case KindEnd:
		e := &End{}
		b.influence(e, &e.Influence, id)
		e.Entity = required[EntityNode](b, id, vocab.EntityProp, KindEntity)
		e.HadActivity = optional[*Activity](b, id, vocab.HadActivity, KindActivity)
		e.AtTime = b.instant(id, vocab.AtTime)
		return e
	case KindCommunication:
		c := &Communication{}
		b.influence(c, &c.Influence, id)
		c.Activity = required[*Activity](b, id, vocab.ActivityProp, KindActivity)
		return c
	case KindDerivation:
		d := &Derivation{}
		b.influence(d, &d.Influence, id)
		b.derivation(id, &d.DerivationFields)
		return d
	case KindPrimarySource:
		d := &PrimarySource{}
		b.influence(d, &d.Influence, id)
		b.derivation(id, &d.DerivationFields)
		return d
	case KindQuotation:
		d := &Quotation{}
		b.influence(d, &d.Influence, id)
		b.derivation(id, &d.DerivationFields)
		return d
	case KindRevision:
		d := &Revision{}
		b.influence(d, &d.Influence, id)
		b.derivation(id, &d.DerivationFields)
		return d
	case KindAssociation:
		a := &Association{}
		b.influence(a, &a.Influence, id)
		a.Agent = required[*Agent](b, id, vocab.AgentProp, KindAgent)
		a.HadPlan = optional[*Plan](b, id, vocab.HadPlan, KindPlan)
		return a
	case KindAttribution:
		a := &Attribution{}
		b.influence(a, &a.Influence, id)
		a.Agent = required[*Agent](b, id, vocab.AgentProp, KindAgent)
		a.HadActivity = optional[*Activity](b, id, vocab.HadActivity, KindActivity)
		return a
	case KindDelegation:
		d := &Delegation{}
		b.influence(d, &d.Influence, id)
		d.Agent = required[*Agent](b, id, vocab.AgentProp, KindAgent)
		d.HadActivity = optional[*Activity](b, id, vocab.HadActivity, KindActivity)
		return d
	}
	b.fail(newError(ErrCodeUnrecognizedType, id, rdf.IRI{}, "cannot build a "+kind.String()))
	return nil
}

func (b *builder) influence(q Qualification, inf *Influence, id rdf.Term) {
	inf.Resource = id
	b.track(q)
	inf.Attributes = b.attributes(id)
	inf.Role = optional[*Role](b, id, vocab.HadRole, KindRole)
	inf.Location = optional[*Location](b, id, vocab.AtLocation, KindLocation)
}

func (b *builder) derivation(id rdf.Term, d *DerivationFields) {
	d.Entity = required[EntityNode](b, id, vocab.EntityProp, KindEntity)
	d.HadUsage = optional[*Usage](b, id, vocab.HadUsage, KindUsage)
	d.HadGeneration = optional[*Generation](b, id, vocab.HadGeneration, KindGeneration)
	d.HadActivity = optional[*Activity](b, id, vocab.HadActivity, KindActivity)
}

// attributes collects the statements about id that no PROV relation
// covers: non-PROV predicates, and types outside the PROV namespace.
func (b *builder) attributes(id rdf.Term) []Attribute {
	var out []Attribute
	for _, q := range b.idx.about(id) {
		keep := !vocab.InNamespace(q.P)
		if q.P == rdf.RDFType {
			keep = !vocab.InNamespace(q.O)
		}
		if keep {
			out = append(out, Attribute{Property: q.P, Value: q.O})
		}
	}
	return out
}

// instant parses the first p timestamp of id. A missing value is the
// zero time.
func (b *builder) instant(id rdf.Term, p rdf.IRI) time.Time {
	if b.err != nil {
		return time.Time{}
	}
	objects := b.idx.objects(id, p)
	if len(objects) == 0 {
		return time.Time{}
	}
	lit, ok := objects[0].(rdf.Literal)
	if !ok {
		b.fail(newError(ErrCodeTypeMismatch, id, p, "expected a date or dateTime literal"))
		return time.Time{}
	}
	t, err := rdf.ParseTime(lit, b.s.opts.loc)
	if err != nil {
		b.fail(&Error{Code: ErrCodeTypeMismatch, Subject: id, Predicate: p, Detail: err.Error(), Err: err})
		return time.Time{}
	}
	return t
}

// nonProvenance adds the resources typed only outside PROV.
func (b *builder) nonProvenance() {
	for _, subject := range b.idx.subjects {
		if _, ok := b.tracked[subject]; ok {
			continue
		}
		var foreign rdf.IRI
		provTyped := false
		for _, t := range b.idx.types(subject) {
			if vocab.InNamespace(t) {
				provTyped = true
				break
			}
			if foreign.IsZero() {
				foreign = t
			}
		}
		if provTyped || foreign.IsZero() {
			continue
		}
		n := &NonProvenance{Type: foreign}
		n.Resource = subject
		for _, a := range b.attributes(subject) {
			if a.Property == rdf.RDFType && a.Value == foreign {
				continue
			}
			n.Attributes = append(n.Attributes, a)
		}
		b.track(n)
	}
}

func (b *builder) bundleLinks() error {
	for _, q := range b.idx.withPredicate(vocab.AsInBundle) {
		subject, ok := q.S.(rdf.IRI)
		if !ok {
			continue
		}
		if !rdf.IsResource(q.O) {
			return newError(ErrCodeTypeMismatch, subject, vocab.AsInBundle, "bundle must be an IRI or blank node")
		}
		l, err := b.bundleLink(subject, q.O)
		if err != nil {
			return err
		}
		b.root.Links = append(b.root.Links, l)
	}
	return nil
}

func (b *builder) bundleLink(subject rdf.IRI, target rdf.Term) (Link, error) {
	kind, err := b.linkSubjectKind(subject)
	if err != nil {
		return Link{}, err
	}
	l := Link{Subject: Ref[Node](subject, kind)}
	if n, ok := b.tracked[subject]; ok {
		l.Subject = Value(n)
	}

	for _, o := range b.idx.objects(subject, vocab.MentionOf) {
		if iri, ok := o.(rdf.IRI); ok {
			l.MentionOf = iri
			break
		}
	}
	if l.MentionOf.IsZero() {
		return Link{}, newError(ErrCodeMissingRequiredField, subject, vocab.MentionOf, "")
	}

	switch {
	case !b.follow:
		l.Bundle = Ref[*Bundle](target, KindBundle)
	case b.s.building[target]:
		b.s.opts.logger.Info("cyclic bundle link kept as reference", "subject", subject.Value, "bundle", target.String())
		l.Bundle = Ref[*Bundle](target, KindBundle)
	default:
		nested, err := b.s.bundle(target, FollowAlways)
		if err != nil {
			return Link{}, err
		}
		l.Bundle = Value(nested)
	}
	return l, nil
}

// linkSubjectKind derives the kind of a link subject from its types once
// the PROV subclasses are discarded.
func (b *builder) linkSubjectKind(subject rdf.IRI) (Kind, error) {
	types := b.idx.types(subject)
	if len(types) == 0 {
		return 0, newError(ErrCodeMissingRequiredField, subject, rdf.RDFType, "link subject has no type")
	}
	if len(types) > 1 {
		var kept []rdf.IRI
		for _, t := range types {
			if !linkSubclasses[t] {
				kept = append(kept, t)
			}
		}
		if len(kept) != 1 {
			return 0, newError(ErrCodeAmbiguousType, subject, rdf.RDFType, fmt.Sprintf("%d irreducible types", len(kept)))
		}
		types = kept
	}
	kind, err := KindOf(types[0])
	if err != nil {
		return 0, newError(ErrCodeUnrecognizedType, subject, rdf.RDFType, rdf.FormatTerm(types[0]))
	}
	return kind, nil
}

// link resolves one object of (subject, p) into a relation of type T.
func link[T Node](b *builder, subject rdf.Term, p rdf.IRI, object rdf.Term, slot Kind) RefOrValue[T] {
	var zero RefOrValue[T]
	if b.err != nil {
		return zero
	}
	if !rdf.IsResource(object) {
		b.fail(newError(ErrCodeTypeMismatch, subject, p, "object is a literal"))
		return zero
	}
	if n, ok := b.tracked[object]; ok {
		v, ok := n.(T)
		if !ok || !compatible(n.Kind(), slot) {
			b.fail(newError(ErrCodeTypeMismatch, subject, p, fmt.Sprintf("%s is a %s, expected %s", rdf.FormatTerm(object), n.Kind(), slot)))
			return zero
		}
		return Value(v)
	}
	kind := b.kindFor(object, slot, subject, p)
	if b.err != nil {
		return zero
	}
	if kind == KindBundle || !b.idx.attributed(object) {
		b.reference(object, kind)
		if b.err != nil {
			return zero
		}
		return Ref[T](object, kind)
	}
	n := b.node(object, kind)
	if b.err != nil {
		return zero
	}
	v, ok := n.(T)
	if !ok {
		b.fail(newError(ErrCodeTypeMismatch, subject, p, fmt.Sprintf("%s is a %s, expected %s", rdf.FormatTerm(object), kind, slot)))
		return zero
	}
	return Value(v)
}

func links[T Node](b *builder, subject rdf.Term, p rdf.IRI, slot Kind) []RefOrValue[T] {
	var out []RefOrValue[T]
	for _, o := range b.idx.objects(subject, p) {
		r := link[T](b, subject, p, o, slot)
		if b.err != nil {
			return nil
		}
		out = append(out, r)
	}
	return out
}

func optional[T Node](b *builder, subject rdf.Term, p rdf.IRI, slot Kind) RefOrValue[T] {
	objects := b.idx.objects(subject, p)
	if len(objects) == 0 {
		return RefOrValue[T]{}
	}
	return link[T](b, subject, p, objects[0], slot)
}

func required[T Node](b *builder, subject rdf.Term, p rdf.IRI, slot Kind) RefOrValue[T] {
	if len(b.idx.objects(subject, p)) == 0 {
		b.fail(newError(ErrCodeMissingRequiredField, subject, p, ""))
		return RefOrValue[T]{}
	}
	return optional[T](b, subject, p, slot)
}

// qualified resolves a qualifiable relation. Qualified statements are read
// first; plain statements naming an influencer already captured by a
// qualification are skipped, so each edge is reported once.
func qualified[T Node, Q QualificationOf[T]](b *builder, subject rdf.Term, base rdf.IRI, slot, qkind Kind) []Referencable[T, Q] {
	if b.err != nil {
		return nil
	}
	qp, _ := vocab.Qualified(base)
	var out []Referencable[T, Q]
	captured := map[rdf.Term]bool{}
	for _, o := range b.idx.objects(subject, qp) {
		n := b.qualificationAt(subject, qp, o, qkind)
		if b.err != nil {
			return nil
		}
		q, ok := n.(Q)
		if !ok {
			b.fail(newError(ErrCodeTypeMismatch, subject, qp, fmt.Sprintf("%s is a %s, expected %s", rdf.FormatTerm(o), n.Kind(), qkind)))
			return nil
		}
		captured[q.Influencer().TargetID()] = true
		out = append(out, Qualify[T](q))
	}
	for _, o := range b.idx.objects(subject, base) {
		if captured[o] {
			continue
		}
		r := link[T](b, subject, base, o, slot)
		if b.err != nil {
			return nil
		}
		out = append(out, Plain[Q](r))
	}
	return out
}

// qualificationAt builds the qualification named by (subject, p, object).
// Qualifications are always materialized.
func (b *builder) qualificationAt(subject rdf.Term, p rdf.IRI, object rdf.Term, kind Kind) Node {
	if !rdf.IsResource(object) {
		b.fail(newError(ErrCodeTypeMismatch, subject, p, "object is a literal"))
		return nil
	}
	if n, ok := b.tracked[object]; ok {
		if !compatible(n.Kind(), kind) {
			b.fail(newError(ErrCodeTypeMismatch, subject, p, fmt.Sprintf("%s is a %s, expected %s", rdf.FormatTerm(object), n.Kind(), kind)))
			return nil
		}
		return n
	}
	for _, t := range b.idx.types(object) {
		if k, err := KindOf(t); err == nil && !compatible(k, kind) {
			b.fail(newError(ErrCodeTypeMismatch, subject, p, fmt.Sprintf("%s is typed %s, expected %s", rdf.FormatTerm(object), k, kind)))
			return nil
		}
	}
	return b.qualification(object, kind)
}

func first[T Node, Q QualificationOf[T]](rs []Referencable[T, Q]) Referencable[T, Q] {
	if len(rs) == 0 {
		return Referencable[T, Q]{}
	}
	return rs[0]
}
