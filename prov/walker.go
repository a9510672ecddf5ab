package prov

import (
	"github.com/geoknoesis/prov-go/rdf"
)

// Walker drives a Visitor over a bundle and every bundle reachable from it.
// A Walker is not safe for concurrent use.
type Walker struct {
	v      Visitor
	scopes []*scope
}

// scope is the traversal state of one bundle.
type scope struct {
	bundle  *Bundle
	visited map[rdf.Term]Kind
	refs    map[rdf.Term]Kind
	order   []rdf.Term
}

func newScope(b *Bundle) *scope {
	return &scope{bundle: b, visited: map[rdf.Term]Kind{}, refs: map[rdf.Term]Kind{}}
}

// NewWalker returns a walker reporting to v.
func NewWalker(v Visitor) *Walker {
	return &Walker{v: v}
}

// Walk visits b, its items, its links and every materialized linked bundle.
func Walk(v Visitor, b *Bundle) error {
	return NewWalker(v).Walk(b)
}

// Walk visits b as the root scope.
func (w *Walker) Walk(b *Bundle) error {
	if b == nil || b.ID() == nil {
		return newError(ErrCodeMissingRequiredField, nil, rdf.IRI{}, "bundle has no identifier")
	}
	w.scopes = w.scopes[:0]
	return w.walkBundle(b)
}

func (w *Walker) top() *scope { return w.scopes[len(w.scopes)-1] }

func (w *Walker) onStack(b *Bundle) bool {
	for _, s := range w.scopes {
		if s.bundle == b || s.bundle.ID() == b.ID() {
			return true
		}
	}
	return false
}

// enter marks n as visited by value in the current scope. It reports false
// when n was already visited.
func (w *Walker) enter(n Node) (bool, error) {
	s := w.top()
	id, kind := n.ID(), n.Kind()
	if id == nil {
		return false, newError(ErrCodeMissingRequiredField, nil, rdf.IRI{}, kind.String()+" has no identifier")
	}
	if prev, ok := s.visited[id]; ok {
		if !compatible(prev, kind) {
			return false, mismatch(id, prev, kind)
		}
		return false, nil
	}
	if prev, ok := s.refs[id]; ok && !compatible(prev, kind) {
		return false, mismatch(id, prev, kind)
	}
	s.visited[id] = kind
	return true, nil
}

// reference records a bare reference in the current scope.
func (w *Walker) reference(id rdf.Term, kind Kind) error {
	if id == nil {
		return newError(ErrCodeMissingRequiredField, nil, rdf.IRI{}, "reference has no identifier")
	}
	s := w.top()
	if prev, ok := s.visited[id]; ok {
		if !compatible(prev, kind) {
			return mismatch(id, prev, kind)
		}
		return nil
	}
	prev, ok := s.refs[id]
	if ok && !compatible(prev, kind) {
		return mismatch(id, prev, kind)
	}
	if !ok {
		s.order = append(s.order, id)
	}
	s.refs[id] = kind
	return nil
}

func mismatch(id rdf.Term, was, now Kind) error {
	return newError(ErrCodeTypeMismatch, id, rdf.IRI{}, "used as "+was.String()+" and "+now.String())
}

// relation walks the target of r: qualifications and values are visited,
// references are recorded.
func (w *Walker) relation(r Relation) error {
	if r.IsZero() {
		return nil
	}
	if q, ok := r.Qualifier(); ok {
		return w.visit(q)
	}
	if r.IsRef() {
		return w.reference(r.TargetID(), r.TargetKind())
	}
	n, _ := r.Materialized()
	return w.visit(n)
}

func (w *Walker) visit(n Node) error {
	switch n := n.(type) {
	case *Bundle:
		return w.walkNestedBundle(n)
	case EntityNode:
		return w.walkEntity(n)
	case *Activity:
		return w.walkActivity(n)
	case *Agent:
		return w.walkAgent(n)
	case *Role:
		if first, err := w.enter(n); !first || err != nil {
			return err
		}
		return w.v.OnRole(n)
	case *Location:
		if first, err := w.enter(n); !first || err != nil {
			return err
		}
		return w.v.OnLocation(n)
	case *NonProvenance:
		if first, err := w.enter(n); !first || err != nil {
			return err
		}
		return w.v.OnNonProvenance(n)
	case Qualification:
		return w.walkQualification(n)
	}
	return nil
}

// walkNestedBundle visits a bundle reached from inside another scope.
func (w *Walker) walkNestedBundle(b *Bundle) error {
	if first, err := w.enter(b); !first || err != nil {
		return err
	}
	if w.onStack(b) {
		return nil
	}
	return w.walkBundle(b)
}

func (w *Walker) walkBundle(b *Bundle) error {
	s := newScope(b)
	s.visited[b.ID()] = KindBundle
	w.scopes = append(w.scopes, s)

	if err := w.v.OnBundle(b); err != nil {
		return err
	}
	if err := w.entityRelations(b); err != nil {
		return err
	}
	for _, it := range b.Items {
		if err := w.relation(it); err != nil {
			return err
		}
	}
	for _, l := range b.Links {
		if err := w.relation(l.Subject); err != nil {
			return err
		}
		if err := w.v.OnLink(b, l); err != nil {
			return err
		}
		if t, err := l.Bundle.Value(); err == nil && !w.onStack(t) {
			if err := w.walkBundle(t); err != nil {
				return err
			}
		}
	}

	for _, id := range s.order {
		if _, ok := s.visited[id]; ok {
			continue
		}
		if err := w.v.OnReference(id, s.refs[id]); err != nil {
			return err
		}
	}
	if err := w.v.LeaveBundle(b); err != nil {
		return err
	}
	w.scopes = w.scopes[:len(w.scopes)-1]
	return nil
}

func (w *Walker) walkEntity(e EntityNode) error {
	if first, err := w.enter(e); !first || err != nil {
		return err
	}
	var err error
	switch e := e.(type) {
	case *Plan:
		err = w.v.OnPlan(e)
	case *Collection:
		err = w.v.OnCollection(e)
	case *Entity:
		err = w.v.OnEntity(e)
	}
	if err != nil {
		return err
	}
	if err := w.entityRelations(e); err != nil {
		return err
	}
	if c, ok := e.(*Collection); ok {
		for _, m := range c.Members {
			if err := w.v.OnMember(c, m); err != nil {
				return err
			}
			if err := w.relation(m); err != nil {
				return err
			}
		}
	}
	return nil
}

// each calls handle then walks every relation of rs.
func each[R Relation](w *Walker, rs []R, handle func(R) error) error {
	for _, r := range rs {
		if r.IsZero() {
			continue
		}
		if err := handle(r); err != nil {
			return err
		}
		if err := w.relation(r); err != nil {
			return err
		}
	}
	return nil
}

func one[R Relation](w *Walker, r R, handle func(R) error) error {
	return each(w, []R{r}, handle)
}

func (w *Walker) entityRelations(e EntityNode) error {
	f := e.EntityBase()
	steps := []func() error{
		func() error {
			return each(w, f.Specializations, func(r RefOrValue[EntityNode]) error { return w.v.OnSpecialization(e, r) })
		},
		func() error {
			return each(w, f.Alternates, func(r RefOrValue[EntityNode]) error { return w.v.OnAlternate(e, r) })
		},
		func() error {
			return each(w, f.Attributions, func(r Referencable[*Agent, *Attribution]) error { return w.v.OnAttribution(e, r) })
		},
		func() error {
			return one(w, f.Generation, func(r Referencable[*Activity, *Generation]) error { return w.v.OnGeneration(e, r) })
		},
		func() error {
			return each(w, f.Derivations, func(r Referencable[EntityNode, *Derivation]) error { return w.v.OnDerivation(e, r) })
		},
		func() error {
			return each(w, f.PrimarySources, func(r Referencable[EntityNode, *PrimarySource]) error { return w.v.OnPrimarySource(e, r) })
		},
		func() error {
			return one(w, f.Invalidation, func(r Referencable[*Activity, *Invalidation]) error { return w.v.OnInvalidation(e, r) })
		},
		func() error {
			return each(w, f.Quotations, func(r Referencable[EntityNode, *Quotation]) error { return w.v.OnQuotation(e, r) })
		},
		func() error {
			return each(w, f.Revisions, func(r Referencable[EntityNode, *Revision]) error { return w.v.OnRevision(e, r) })
		},
		func() error { return w.locations(e, f.Locations) },
	}
	return run(steps)
}

func (w *Walker) walkActivity(a *Activity) error {
	if first, err := w.enter(a); !first || err != nil {
		return err
	}
	steps := []func() error{
		func() error { return w.v.OnActivity(a) },
		func() error {
			return each(w, a.Generated, func(r RefOrValue[EntityNode]) error { return w.v.OnGenerated(a, r) })
		},
		func() error {
			return one(w, a.Start, func(r Referencable[EntityNode, *Start]) error { return w.v.OnStart(a, r) })
		},
		func() error {
			return one(w, a.End, func(r Referencable[EntityNode, *End]) error { return w.v.OnEnd(a, r) })
		},
		func() error {
			return each(w, a.Associations, func(r Referencable[*Agent, *Association]) error { return w.v.OnAssociation(a, r) })
		},
		func() error {
			return each(w, a.Usages, func(r Referencable[EntityNode, *Usage]) error { return w.v.OnUsed(a, r) })
		},
		func() error {
			return each(w, a.InformedBy, func(r Referencable[*Activity, *Communication]) error { return w.v.OnInformedBy(a, r) })
		},
		func() error {
			return each(w, a.Invalidated, func(r RefOrValue[EntityNode]) error { return w.v.OnInvalidated(a, r) })
		},
		func() error { return w.locations(a, a.Locations) },
	}
	return run(steps)
}

func (w *Walker) walkAgent(a *Agent) error {
	if first, err := w.enter(a); !first || err != nil {
		return err
	}
	if err := w.v.OnAgent(a); err != nil {
		return err
	}
	err := each(w, a.ActedOnBehalfOf, func(r Referencable[*Agent, *Delegation]) error { return w.v.OnDelegation(a, r) })
	if err != nil {
		return err
	}
	return w.locations(a, a.Locations)
}

func (w *Walker) locations(n Node, locs []RefOrValue[*Location]) error {
	return each(w, locs, func(r RefOrValue[*Location]) error { return w.v.OnAtLocation(n, r) })
}

func (w *Walker) walkQualification(q Qualification) error {
	if first, err := w.enter(q); !first || err != nil {
		return err
	}
	if err := w.v.OnQualification(q); err != nil {
		return err
	}

	target := q.InfluencerRelation()
	if target.IsZero() {
		return newError(ErrCodeMissingRequiredField, q.ID(), rdf.IRI{}, q.Kind().String()+" has no influencer")
	}
	if _, nested := target.Qualifier(); nested {
		return newError(ErrCodeTypeMismatch, q.ID(), rdf.IRI{}, "influencer is itself a qualification")
	}
	if err := w.v.OnInfluencer(q, target); err != nil {
		return err
	}
	if err := w.relation(target); err != nil {
		return err
	}

	base := q.InfluenceBase()
	if err := one(w, base.Role, func(r RefOrValue[*Role]) error { return w.v.OnHadRole(q, r) }); err != nil {
		return err
	}
	if err := one(w, base.Location, func(r RefOrValue[*Location]) error { return w.v.OnAtLocation(q, r) }); err != nil {
		return err
	}

	var err error
	if d, ok := q.(derivation); ok {
		err = w.derivationFields(q, d.DerivationBase())
	} else {
		switch q := q.(type) {
		case *Association:
			err = one(w, q.HadPlan, func(r RefOrValue[*Plan]) error { return w.v.OnHadPlan(q, r) })
		case *Attribution:
			err = w.hadActivity(q, q.HadActivity)
		case *Delegation:
			err = w.hadActivity(q, q.HadActivity)
		case *Start:
			err = w.hadActivity(q, q.HadActivity)
		case *End:
			err = w.hadActivity(q, q.HadActivity)
		}
	}
	if err != nil {
		return err
	}

	if t, ok := q.(instantaneous); ok && !t.OccurredAt().IsZero() {
		return w.v.OnAtTime(q, t.OccurredAt())
	}
	return nil
}

func (w *Walker) derivationFields(q Qualification, d *DerivationFields) error {
	return run([]func() error{
		func() error {
			return one(w, d.HadUsage, func(r RefOrValue[*Usage]) error { return w.v.OnHadUsage(q, r) })
		},
		func() error {
			return one(w, d.HadGeneration, func(r RefOrValue[*Generation]) error { return w.v.OnHadGeneration(q, r) })
		},
		func() error { return w.hadActivity(q, d.HadActivity) },
	})
}

func (w *Walker) hadActivity(q Qualification, a RefOrValue[*Activity]) error {
	return one(w, a, func(r RefOrValue[*Activity]) error { return w.v.OnHadActivity(q, r) })
}

func run(steps []func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
