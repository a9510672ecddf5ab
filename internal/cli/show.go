package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/prov-go/prov"
	"github.com/geoknoesis/prov-go/rdf"
	"github.com/geoknoesis/prov-go/store"
)

type buildFlags struct {
	noFollow bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noFollow, "no-follow", false, "do not build linked bundles")
}

func (f *buildFlags) options(root *RootOptions) []prov.BuildOption {
	opts := []prov.BuildOption{prov.WithLogger(root.log)}
	if f.noFollow {
		opts = append(opts, prov.WithFollowLinks(prov.FollowNever))
	}
	return opts
}

// BundleSummary describes a built bundle.
type BundleSummary struct {
	ID         string         `json:"id"`
	Attributes int            `json:"attributes"`
	Values     int            `json:"values"`
	References int            `json:"references"`
	Kinds      map[string]int `json:"kinds"`
	Links      []LinkSummary  `json:"links,omitempty"`
	Includes   int            `json:"bundle_includes"`
}

type LinkSummary struct {
	Subject   string `json:"subject"`
	MentionOf string `json:"mention_of"`
	Bundle    string `json:"bundle"`
	Built     bool   `json:"built"`
}

// String renders the summary as indented text.
func (s BundleSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bundle %s\n", s.ID)
	fmt.Fprintf(&b, "  attributes: %d\n", s.Attributes)
	fmt.Fprintf(&b, "  items: %d (%d materialized, %d referenced)\n", s.Values+s.References, s.Values, s.References)
	kinds := make([]string, 0, len(s.Kinds))
	for k := range s.Kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(&b, "    %s: %d\n", k, s.Kinds[k])
	}
	fmt.Fprintf(&b, "  links: %d (bundle includes %d)", len(s.Links), s.Includes)
	for _, l := range s.Links {
		state := "reference"
		if l.Built {
			state = "built"
		}
		fmt.Fprintf(&b, "\n    %s mentionOf %s in %s (%s)", l.Subject, l.MentionOf, l.Bundle, state)
	}
	return b.String()
}

func summarize(b *prov.Bundle) BundleSummary {
	s := BundleSummary{
		ID:         rdf.FormatTerm(b.ID()),
		Attributes: len(b.Attrs()),
		Kinds:      map[string]int{},
		Includes:   b.BundleIncludes(),
	}
	for _, it := range b.Items {
		if it.IsRef() {
			s.References++
		} else {
			s.Values++
		}
		s.Kinds[it.TargetKind().String()]++
	}
	for _, l := range b.Links {
		_, built := l.Bundle.Materialized()
		s.Links = append(s.Links, LinkSummary{
			Subject:   rdf.FormatTerm(l.Subject.TargetID()),
			MentionOf: rdf.FormatTerm(l.MentionOf),
			Bundle:    rdf.FormatTerm(l.Bundle.TargetID()),
			Built:     built,
		})
	}
	return s
}

func newShowCommand(root *RootOptions) *cobra.Command {
	flags := &buildFlags{}
	cmd := &cobra.Command{
		Use:   "show <bundle>",
		Short: "Build a bundle and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := root.formatter(cmd)
			b, err := buildBundle(cmd.Context(), root, args[0], flags)
			if err != nil {
				return out.failure(err)
			}
			return out.success(summarize(b))
		},
	}
	flags.register(cmd)
	return cmd
}

// buildBundle opens the store and builds the bundle named by arg.
func buildBundle(ctx context.Context, root *RootOptions, arg string, flags *buildFlags) (*prov.Bundle, error) {
	id, err := parseResource(arg)
	if err != nil {
		return nil, wrapExit(ExitCommandError, "invalid bundle identifier", err)
	}
	st, err := root.openStore(ctx)
	if err != nil {
		return nil, wrapExit(ExitCommandError, "open store", err)
	}
	defer st.Close()
	return buildFrom(ctx, root, st, id, flags)
}

func buildFrom(ctx context.Context, root *RootOptions, src store.Source, id rdf.Term, flags *buildFlags) (*prov.Bundle, error) {
	b, err := prov.Build(ctx, src, id, flags.options(root)...)
	if err != nil {
		return nil, graphFailure("build "+rdf.FormatTerm(id), err)
	}
	return b, nil
}
