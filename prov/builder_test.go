package prov

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/prov-go/rdf"
	"github.com/geoknoesis/prov-go/store"
	"github.com/geoknoesis/prov-go/vocab"
)

const primer = `
:b1 a prov:Bundle .
:analyst a prov:Role .
:article dcterms:title "Crime rises in cities" ;
   a prov:Entity .
:articleV1 a prov:Entity ;
   prov:specializationOf :article .
:articleV2 a prov:Entity ;
   prov:alternateOf :articleV1 ;
   prov:specializationOf :article .
:chart1 a prov:Entity ;
   prov:generatedAtTime "2012-03-02T10:30:00Z"^^xsd:dateTime ;
   prov:wasAttributedTo :derek ;
   prov:wasGeneratedBy :illustrate1 .
:chart2 a prov:Entity ;
   prov:generatedAtTime "2012-04-01T16:21:00+01:00"^^xsd:dateTime ;
   prov:wasDerivedFrom :dataset2 ;
   prov:wasRevisionOf :chart1 .
:chartgen a prov:Agent, prov:Organization ;
   foaf:name "Chart Generators Inc" .
:compile1 a prov:Activity .
:compose1 a prov:Activity ;
   prov:qualifiedAssociation [
      a prov:Association ;
      prov:agent :derek ;
      prov:hadRole :analyst ;
   ] ;
   prov:qualifiedUsage [
      a prov:Usage ;
      prov:entity :dataset1 ;
      prov:hadRole :dataToCompose ;
   ], [
      a prov:Usage ;
      prov:entity :regionList ;
      prov:hadRole :regionsToAggregateBy ;
   ] ;
   prov:used :dataset1, :regionList ;
   prov:wasAssociatedWith :derek .
:composedData a prov:Role .
:composition1 a prov:Entity ;
   prov:qualifiedGeneration [
      a prov:Generation ;
      prov:activity :compose1 ;
      prov:hadRole :composedData ;
   ] ;
   prov:wasGeneratedBy :compose1 .
:correct1 a prov:Activity ;
   prov:endedAtTime "2012-04-01T16:21:00+01:00"^^xsd:dateTime ;
   prov:qualifiedAssociation [
      a prov:Association ;
      prov:agent :edith ;
      prov:hadPlan :instructions ;
   ] ;
   prov:startedAtTime "2012-03-31T10:21:00+01:00"^^xsd:dateTime ;
   prov:wasAssociatedWith :edith .
:dataToCompose a prov:Role .
:dataset1 a prov:Entity .
:dataset2 a prov:Entity ;
   prov:wasGeneratedBy :correct1 ;
   prov:wasRevisionOf :dataset1 .
:derek a prov:Agent, prov:Person ;
   prov:actedOnBehalfOf :chartgen ;
   foaf:givenName "Derek" ;
   foaf:mbox <mailto:derek@example.org> .
:edith a prov:Agent .
:illustrate1 a prov:Activity ;
   prov:used :composition1 ;
   prov:wasAssociatedWith :derek .
:instructions a prov:Plan .
:quoteInBlogEntry-20130326 a prov:Entity ;
   prov:wasQuotedFrom :article .
:regionList a prov:Entity .
:regionsToAggregateBy a prov:Role .
`

const nested = `
:b1 {
   :b1 a prov:Bundle .
   :entity a prov:Entity ;
      prov:asInBundle :b2 ;
      prov:mentionOf :activity2 .
}
:b2 {
   :activity2 a prov:Activity .
   :activity3 a prov:Activity ;
      prov:asInBundle :b3 ;
      prov:mentionOf :agent .
   :activity4 a prov:Activity ;
      prov:asInBundle :b4 ;
      prov:mentionOf :plan .
   :b2 a prov:Bundle .
}
:b3 {
   :agent a prov:Agent .
   :b3 a prov:Bundle .
}
:b4 {
   :b4 a prov:Bundle .
   :plan a prov:Plan .
}
`

func itemIDs(b *Bundle) []rdf.Term {
	ids := make([]rdf.Term, 0, len(b.Items))
	for _, it := range b.Items {
		ids = append(ids, it.TargetID())
	}
	return ids
}

func TestBuildEmptyDataset(t *testing.T) {
	_, err := build(t, rdf.FormatTurtle, "", ex("b1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyDataset)
	assert.Equal(t, ErrCodeEmptyDataset, Code(err))
}

func TestBuildContextMismatch(t *testing.T) {
	_, err := build(t, rdf.FormatTriG, `
:b1 {
   :activity a prov:Activity .
   :this a prov:Bundle .
}`, ex("b1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContextMismatch)
}

func TestBuildSimpleBundle(t *testing.T) {
	b, err := build(t, rdf.FormatTurtle, ":b1 a prov:Bundle .", ex("b1"))
	require.NoError(t, err)
	assert.Equal(t, ex("b1"), b.ID())
	assert.Empty(t, b.Items)
	assert.Empty(t, b.Links)
	assert.Empty(t, b.Attrs())
}

func TestBuildMixOfQualifiedAndBaseProperty(t *testing.T) {
	b, err := build(t, rdf.FormatTurtle, `
:b1 a prov:Bundle .
:compose1 a prov:Activity ;
   prov:qualifiedUsage [
      a prov:Usage ;
      prov:entity :dataset1 ;
      prov:hadRole :dataToCompose ;
   ] ;
   prov:used :dataset1, :regionList .`, ex("b1"))
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]rdf.Term{ex("compose1"), ex("dataset1"), ex("dataToCompose"), ex("regionList")},
		itemIDs(b))
	for _, id := range []rdf.IRI{ex("dataset1"), ex("dataToCompose"), ex("regionList")} {
		it, ok := b.Item(id)
		require.True(t, ok)
		assert.Truef(t, it.IsRef(), "%s should be a reference", id)
	}

	compose := find[*Activity](t, b, ex("compose1"))
	assert.Empty(t, compose.Attrs())
	require.Len(t, compose.Usages, 2)

	qualified, plain := compose.Usages[0], compose.Usages[1]
	require.True(t, qualified.IsQualified())
	usage, err := qualified.Qualification()
	require.NoError(t, err)
	assert.Equal(t, ex("dataset1"), usage.Entity.TargetID())
	assert.Equal(t, ex("dataToCompose"), usage.Role.TargetID())
	assert.True(t, usage.Role.IsRef())

	assert.False(t, plain.IsQualified())
	assert.True(t, plain.IsRef())
	assert.Equal(t, ex("regionList"), plain.TargetID())
	_, err = plain.Qualification()
	assert.ErrorIs(t, err, ErrNotQualified)
}

func TestBuildPrimer(t *testing.T) {
	b, err := build(t, rdf.FormatTurtle, primer, ex("b1"))
	require.NoError(t, err)

	assert.Len(t, b.Items, 22)
	assert.Empty(t, b.Links)
	assert.Zero(t, b.BundleIncludes())
	assert.Empty(t, b.Attrs())

	refs := 0
	for _, it := range b.Items {
		if it.IsRef() {
			refs++
		}
	}
	assert.Equal(t, 9, refs)

	t.Run("entities", func(t *testing.T) {
		article := find[*Entity](t, b, ex("article"))
		title, ok := article.First(dcterms("title"))
		require.True(t, ok)
		assert.Equal(t, rdf.Literal{Lexical: "Crime rises in cities"}, title)

		v2 := find[*Entity](t, b, ex("articleV2"))
		require.Len(t, v2.Specializations, 1)
		assert.Equal(t, ex("article"), v2.Specializations[0].TargetID())
		require.Len(t, v2.Alternates, 1)
		assert.Equal(t, ex("articleV1"), v2.Alternates[0].TargetID())
		assert.False(t, v2.Alternates[0].IsRef())

		chart1 := find[*Entity](t, b, ex("chart1"))
		assert.True(t, chart1.GeneratedAt.Equal(time.Date(2012, 3, 2, 10, 30, 0, 0, time.UTC)))
		require.Len(t, chart1.Attributions, 1)
		assert.Equal(t, ex("derek"), chart1.Attributions[0].TargetID())
		assert.Equal(t, ex("illustrate1"), chart1.Generation.TargetID())

		chart2 := find[*Entity](t, b, ex("chart2"))
		assert.True(t, chart2.GeneratedAt.Equal(time.Date(2012, 4, 1, 15, 21, 0, 0, time.UTC)))
		require.Len(t, chart2.Derivations, 1)
		assert.Equal(t, ex("dataset2"), chart2.Derivations[0].TargetID())
		require.Len(t, chart2.Revisions, 1)
		assert.Equal(t, ex("chart1"), chart2.Revisions[0].TargetID())

		composition := find[*Entity](t, b, ex("composition1"))
		require.True(t, composition.Generation.IsQualified())
		gen, err := composition.Generation.Qualification()
		require.NoError(t, err)
		assert.Equal(t, ex("compose1"), gen.Activity.TargetID())
		assert.Equal(t, ex("composedData"), gen.Role.TargetID())

		dataset2 := find[*Entity](t, b, ex("dataset2"))
		assert.Equal(t, ex("correct1"), dataset2.Generation.TargetID())
		require.Len(t, dataset2.Revisions, 1)
		assert.Equal(t, ex("dataset1"), dataset2.Revisions[0].TargetID())

		quote := find[*Entity](t, b, ex("quoteInBlogEntry-20130326"))
		require.Len(t, quote.Quotations, 1)
		assert.Equal(t, ex("article"), quote.Quotations[0].TargetID())
	})

	t.Run("agents", func(t *testing.T) {
		derek := find[*Agent](t, b, ex("derek"))
		assert.Equal(t, Person, derek.Type)
		assert.Len(t, derek.Attrs(), 2)
		mbox, ok := derek.First(foaf("mbox"))
		require.True(t, ok)
		assert.Equal(t, rdf.IRI{Value: "mailto:derek@example.org"}, mbox)
		require.Len(t, derek.ActedOnBehalfOf, 1)
		assert.Equal(t, ex("chartgen"), derek.ActedOnBehalfOf[0].TargetID())

		chartgen := find[*Agent](t, b, ex("chartgen"))
		assert.Equal(t, Organization, chartgen.Type)
		assert.Len(t, chartgen.Attrs(), 1)

		edith, ok := b.Item(ex("edith"))
		require.True(t, ok)
		assert.True(t, edith.IsRef())
		assert.Equal(t, KindAgent, edith.TargetKind())
	})

	t.Run("activities", func(t *testing.T) {
		compose := find[*Activity](t, b, ex("compose1"))
		assert.Empty(t, compose.Attrs())
		require.Len(t, compose.Usages, 2)
		pairs := map[rdf.Term]rdf.Term{}
		for _, u := range compose.Usages {
			q, err := u.Qualification()
			require.NoError(t, err)
			pairs[q.Entity.TargetID()] = q.Role.TargetID()
		}
		assert.Equal(t, map[rdf.Term]rdf.Term{
			ex("dataset1"):   ex("dataToCompose"),
			ex("regionList"): ex("regionsToAggregateBy"),
		}, pairs)
		require.Len(t, compose.Associations, 1)
		assoc, err := compose.Associations[0].Qualification()
		require.NoError(t, err)
		assert.Equal(t, ex("derek"), assoc.Agent.TargetID())
		assert.Equal(t, ex("analyst"), assoc.Role.TargetID())

		correct := find[*Activity](t, b, ex("correct1"))
		assert.True(t, correct.StartedAt.Equal(time.Date(2012, 3, 31, 9, 21, 0, 0, time.UTC)))
		assert.True(t, correct.EndedAt.Equal(time.Date(2012, 4, 1, 15, 21, 0, 0, time.UTC)))
		require.Len(t, correct.Associations, 1)
		plan, err := correct.Associations[0].Qualification()
		require.NoError(t, err)
		assert.Equal(t, ex("edith"), plan.Agent.TargetID())
		assert.Equal(t, ex("instructions"), plan.HadPlan.TargetID())

		illustrate := find[*Activity](t, b, ex("illustrate1"))
		require.Len(t, illustrate.Usages, 1)
		assert.Equal(t, ex("composition1"), illustrate.Usages[0].TargetID())
		require.Len(t, illustrate.Associations, 1)
		assert.Equal(t, ex("derek"), illustrate.Associations[0].TargetID())
	})

	t.Run("references", func(t *testing.T) {
		for id, kind := range map[rdf.IRI]Kind{
			ex("compile1"):             KindActivity,
			ex("instructions"):         KindPlan,
			ex("dataset1"):             KindEntity,
			ex("analyst"):              KindRole,
			ex("regionsToAggregateBy"): KindRole,
		} {
			it, ok := b.Item(id)
			require.Truef(t, ok, "missing %s", id)
			assert.Truef(t, it.IsRef(), "%s should be a reference", id)
			assert.Equal(t, kind, it.TargetKind(), id.Value)
		}
	})
}

func TestBuildNestedBundles(t *testing.T) {
	st := load(t, rdf.FormatTriG, nested, nil)
	b1, err := Build(context.Background(), st, ex("b1"))
	require.NoError(t, err)

	assert.ElementsMatch(t, []rdf.Term{ex("entity")}, itemIDs(b1))
	assert.Equal(t, 3, b1.BundleIncludes())
	require.Len(t, b1.Links, 1)
	assert.Equal(t, ex("activity2"), b1.Links[0].MentionOf)
	assert.False(t, b1.Links[0].Subject.IsRef())

	b2, ok := b1.Linked(ex("b2"))
	require.True(t, ok)
	assert.ElementsMatch(t, []rdf.Term{ex("activity2"), ex("activity3"), ex("activity4")}, itemIDs(b2))
	assert.Equal(t, 2, b2.BundleIncludes())

	b3, ok := b2.Linked(ex("b3"))
	require.True(t, ok)
	assert.ElementsMatch(t, []rdf.Term{ex("agent")}, itemIDs(b3))
	assert.Zero(t, b3.BundleIncludes())

	b4, ok := b2.Linked(ex("b4"))
	require.True(t, ok)
	assert.ElementsMatch(t, []rdf.Term{ex("plan")}, itemIDs(b4))
	assert.Zero(t, b4.BundleIncludes())
}

func TestBuildWithoutFollowingLinks(t *testing.T) {
	st := load(t, rdf.FormatTriG, nested, nil)
	b1, err := Build(context.Background(), st, ex("b1"), WithFollowLinks(FollowNever))
	require.NoError(t, err)

	require.Len(t, b1.Links, 1)
	assert.True(t, b1.Links[0].Bundle.IsRef())
	assert.Equal(t, ex("b2"), b1.Links[0].Bundle.TargetID())
	assert.Equal(t, 1, b1.BundleIncludes())
}

func TestBuildCyclicLinksBecomeReferences(t *testing.T) {
	st := load(t, rdf.FormatTriG, `
:other {
   :otherActivity a prov:Activity ;
      prov:asInBundle :this ;
      prov:mentionOf :activity .
   :other a prov:Bundle .
}
:this {
   :activity a prov:Activity ;
      prov:asInBundle :other ;
      prov:mentionOf :otherActivity .
   :this a prov:Bundle .
}`, nil)

	this, err := Build(context.Background(), st, ex("this"))
	require.NoError(t, err)
	other, ok := this.Linked(ex("other"))
	require.True(t, ok)
	require.Len(t, other.Links, 1)
	assert.True(t, other.Links[0].Bundle.IsRef())
	assert.Equal(t, ex("this"), other.Links[0].Bundle.TargetID())
	assert.Equal(t, 2, this.BundleIncludes())

	self := load(t, rdf.FormatTriG, `
:this {
   :activity a prov:Activity ;
      prov:asInBundle :this ;
      prov:mentionOf :otherActivity .
   :this a prov:Bundle .
}`, nil)
	b, err := Build(context.Background(), self, ex("this"))
	require.NoError(t, err)
	require.Len(t, b.Links, 1)
	assert.True(t, b.Links[0].Bundle.IsRef())
}

func TestBuildLinkErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name: "ambiguous subject",
			content: `:b1 a prov:Bundle .
:x a prov:Entity, prov:Activity ;
   prov:asInBundle :b2 ;
   prov:mentionOf :y .`,
			want: ErrAmbiguousType,
		},
		{
			name: "unrecognized subject",
			content: `:b1 a prov:Bundle .
:x a foaf:Document ;
   prov:asInBundle :b2 ;
   prov:mentionOf :y .`,
			want: ErrUnrecognizedType,
		},
		{
			name: "untyped subject",
			content: `:b1 a prov:Bundle .
:x prov:asInBundle :b2 ;
   prov:mentionOf :y .`,
			want: ErrMissingRequiredField,
		},
		{
			name: "missing mention",
			content: `:b1 a prov:Bundle .
:x a prov:Entity ;
   prov:asInBundle :b2 .`,
			want: ErrMissingRequiredField,
		},
		{
			name: "literal bundle",
			content: `:b1 a prov:Bundle .
:x a prov:Entity ;
   prov:asInBundle "b2" ;
   prov:mentionOf :y .`,
			want: ErrTypeMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, rdf.FormatTurtle, tt.content, ex("b1"), WithFollowLinks(FollowNever))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildLinkSubclassesAreDiscarded(t *testing.T) {
	b, err := build(t, rdf.FormatTurtle, `:b1 a prov:Bundle .
:derek a prov:Agent, prov:Person ;
   prov:asInBundle :b2 ;
   prov:mentionOf :agent .`, ex("b1"), WithFollowLinks(FollowNever))
	require.NoError(t, err)
	require.Len(t, b.Links, 1)
	assert.Equal(t, KindAgent, b.Links[0].Subject.TargetKind())
	assert.False(t, b.Links[0].Subject.IsRef())
}

func TestBuildTypeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name: "timestamp is not a date",
			content: `:b1 a prov:Bundle .
:e a prov:Entity ;
   prov:generatedAtTime "yesterday" .`,
			want: rdf.ErrInvalidLiteral,
		},
		{
			name: "timestamp is a resource",
			content: `:b1 a prov:Bundle .
:a a prov:Activity ;
   prov:startedAtTime :noon .`,
			want: ErrTypeMismatch,
		},
		{
			name: "agent used as entity",
			content: `:b1 a prov:Bundle .
:a a prov:Activity ;
   prov:used :x .
:x a prov:Agent .`,
			want: ErrTypeMismatch,
		},
		{
			name: "literal object",
			content: `:b1 a prov:Bundle .
:a a prov:Activity ;
   prov:wasInformedBy "earlier" .`,
			want: ErrTypeMismatch,
		},
		{
			name: "qualification of the wrong class",
			content: `:b1 a prov:Bundle .
:a a prov:Activity ;
   prov:qualifiedUsage [ a prov:Generation ; prov:entity :e ] .`,
			want: ErrTypeMismatch,
		},
		{
			name: "untyped resource in two incompatible roles",
			content: `:b1 a prov:Bundle .
:act a prov:Activity ;
   prov:used :x ;
   prov:wasAssociatedWith :x .`,
			want: ErrTypeMismatch,
		},
		{
			name: "qualification without influencer",
			content: `:b1 a prov:Bundle .
:e a prov:Entity ;
   prov:qualifiedGeneration [ a prov:Generation ; prov:atTime "2012-04-01T16:21:00Z"^^xsd:dateTime ] .`,
			want: ErrMissingRequiredField,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := build(t, rdf.FormatTurtle, tt.content, ex("b1"))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuildInvalidTimestampIsTypeMismatch(t *testing.T) {
	_, err := build(t, rdf.FormatTurtle, `:b1 a prov:Bundle .
:e a prov:Entity ;
   prov:generatedAtTime "2012-13-45T00:00:00Z"^^xsd:dateTime .`, ex("b1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.ErrorIs(t, err, rdf.ErrInvalidLiteral)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ex("e"), perr.Subject)
}

func TestBuildQualifiedDetails(t *testing.T) {
	b, err := build(t, rdf.FormatTurtle, `:b1 a prov:Bundle .
:report a prov:Entity ;
   prov:qualifiedDerivation [
      a prov:Derivation ;
      prov:entity :draft ;
      prov:hadActivity :edit ;
      prov:hadUsage [ a prov:Usage ; prov:entity :draft ] ;
      prov:hadGeneration [ a prov:Generation ; prov:activity :edit ]
   ] .
:edit a prov:Activity ;
   prov:qualifiedStart [
      a prov:Start ;
      prov:entity :memo ;
      prov:atTime "2012-04-01T08:00:00Z"^^xsd:dateTime ;
      prov:atLocation :office
   ] .
:office a prov:Location ;
   rdfs:label "Office" .`, ex("b1"))
	require.NoError(t, err)

	report := find[*Entity](t, b, ex("report"))
	require.Len(t, report.Derivations, 1)
	d, err := report.Derivations[0].Qualification()
	require.NoError(t, err)
	assert.Equal(t, ex("draft"), d.Entity.TargetID())
	assert.Equal(t, ex("edit"), d.HadActivity.TargetID())
	assert.False(t, d.HadActivity.IsRef())
	usage, err := d.HadUsage.Value()
	require.NoError(t, err)
	assert.Equal(t, ex("draft"), usage.Entity.TargetID())
	gen, err := d.HadGeneration.Value()
	require.NoError(t, err)
	assert.Equal(t, ex("edit"), gen.Activity.TargetID())

	edit := find[*Activity](t, b, ex("edit"))
	start, err := edit.Start.Qualification()
	require.NoError(t, err)
	assert.Equal(t, ex("memo"), start.Entity.TargetID())
	assert.True(t, start.AtTime.Equal(time.Date(2012, 4, 1, 8, 0, 0, 0, time.UTC)))
	office, err := start.Location.Value()
	require.NoError(t, err)
	assert.Len(t, office.Attrs(), 1)

	for _, it := range b.Items {
		assert.False(t, it.TargetKind().IsInfluence(), "qualifications are not bundle items")
	}
}

func TestBuildAcceptsInfluenceSuperclass(t *testing.T) {
	b, err := build(t, rdf.FormatTurtle, `:b1 a prov:Bundle .
:act a prov:Activity ;
   prov:qualifiedUsage [ a prov:Usage, prov:Influence ; prov:entity :e ] .
:report a prov:Entity ;
   prov:qualifiedDerivation [
      a prov:Derivation, prov:Influence ;
      prov:entity :draft ;
      prov:hadUsage [ a prov:Influence, prov:Usage ; prov:entity :draft ] ;
      prov:hadGeneration [ a prov:Influence ; prov:activity :act ]
   ] .`, ex("b1"))
	require.NoError(t, err)

	act := find[*Activity](t, b, ex("act"))
	require.Len(t, act.Usages, 1)
	usage, err := act.Usages[0].Qualification()
	require.NoError(t, err)
	assert.Equal(t, ex("e"), usage.Entity.TargetID())

	report := find[*Entity](t, b, ex("report"))
	require.Len(t, report.Derivations, 1)
	d, err := report.Derivations[0].Qualification()
	require.NoError(t, err)
	hadUsage, err := d.HadUsage.Value()
	require.NoError(t, err)
	assert.Equal(t, ex("draft"), hadUsage.Entity.TargetID())
	gen, err := d.HadGeneration.Value()
	require.NoError(t, err)
	assert.Equal(t, ex("act"), gen.Activity.TargetID())
}

func TestBuildResultsCanBeWritten(t *testing.T) {
	// reusing one resource in compatible roles keeps the bundle writable
	b, err := build(t, rdf.FormatTurtle, `:b1 a prov:Bundle .
:act a prov:Activity ;
   prov:used :x ;
   prov:generated :x ;
   prov:wasAssociatedWith :ag ;
   prov:qualifiedAssociation [ a prov:Association ; prov:agent :ag ; prov:hadPlan :x ] .`, ex("b1"))
	require.NoError(t, err)
	require.NoError(t, Write(context.Background(), store.NewMemory(), b))
}

func TestBuildKeepsRepeatedEntityRelations(t *testing.T) {
	b, err := build(t, rdf.FormatTurtle, `:b1 a prov:Bundle .
:report a prov:Entity ;
   prov:wasAttributedTo :alice, :bob ;
   prov:wasDerivedFrom :draft1, :draft2 ;
   prov:specializationOf :series, :archive .
:compile a prov:Activity ;
   prov:generated :report, :chart .`, ex("b1"))
	require.NoError(t, err)

	report := find[*Entity](t, b, ex("report"))
	assert.Len(t, report.Attributions, 2)
	assert.Len(t, report.Derivations, 2)
	assert.Len(t, report.Specializations, 2)
	assert.Len(t, find[*Activity](t, b, ex("compile")).Generated, 2)

	quads, err := Statements(context.Background(), b)
	require.NoError(t, err)
	for _, want := range []struct {
		s rdf.Term
		p rdf.IRI
		o rdf.Term
	}{
		{ex("report"), vocab.WasAttributedTo, ex("alice")},
		{ex("report"), vocab.WasAttributedTo, ex("bob")},
		{ex("report"), vocab.WasDerivedFrom, ex("draft1")},
		{ex("report"), vocab.WasDerivedFrom, ex("draft2")},
		{ex("report"), vocab.SpecializationOf, ex("series")},
		{ex("report"), vocab.SpecializationOf, ex("archive")},
		{ex("compile"), vocab.Generated, ex("report")},
		{ex("compile"), vocab.Generated, ex("chart")},
	} {
		assert.Truef(t, contains(quads, want.s, want.p, want.o, ex("b1")), "%s %s %s", want.s, want.p, want.o)
	}
}

func TestBuildCollectionsAndNonProvenance(t *testing.T) {
	b, err := build(t, rdf.FormatTurtle, `:b1 a prov:Bundle ;
   dcterms:creator "ops" .
:c a prov:Collection ;
   prov:hadMember :m1, :m2 .
:none a prov:EmptyCollection ;
   rdfs:label "nothing yet" .
:doc a foaf:Document ;
   dcterms:title "Notes" .`, ex("b1"))
	require.NoError(t, err)

	assert.Len(t, b.Attrs(), 1)

	c := find[*Collection](t, b, ex("c"))
	require.Len(t, c.Members, 2)
	assert.True(t, c.Members[0].IsRef())
	assert.True(t, find[*Collection](t, b, ex("none")).IsEmpty())

	doc := find[*NonProvenance](t, b, ex("doc"))
	assert.Equal(t, foaf("Document"), doc.Type)
	require.Len(t, doc.Attrs(), 1)
	assert.Equal(t, dcterms("title"), doc.Attrs()[0].Property)
}

func TestBuildUsesDefaultLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	b, err := build(t, rdf.FormatTurtle, `:b1 a prov:Bundle .
:e a prov:Entity ;
   prov:generatedAtTime "2012-04-01T12:00:00"^^xsd:dateTime .`, ex("b1"), WithDefaultLocation(loc))
	require.NoError(t, err)
	e := find[*Entity](t, b, ex("e"))
	assert.True(t, e.GeneratedAt.Equal(time.Date(2012, 4, 1, 10, 0, 0, 0, time.UTC)))
}

func TestBuildCanceled(t *testing.T) {
	st := load(t, rdf.FormatTurtle, ":b1 a prov:Bundle .", ex("b1"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, st, ex("b1"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildFromSQLite(t *testing.T) {
	ctx := context.Background()
	mem := load(t, rdf.FormatTriG, nested, nil)
	db, err := store.OpenSQLite(t.TempDir() + "/prov.db")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	graphs, err := mem.Graphs(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Update(ctx, func(tx store.Tx) error {
		for _, g := range graphs {
			quads, err := mem.Context(ctx, g)
			if err != nil {
				return err
			}
			if err := store.AddAll(tx, quads); err != nil {
				return err
			}
		}
		return nil
	}))

	b1, err := Build(ctx, db, ex("b1"))
	require.NoError(t, err)
	assert.Equal(t, 3, b1.BundleIncludes())
}
