package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/prov-go/rdf"
	"github.com/geoknoesis/prov-go/vocab"
)

// GraphInfo describes one named graph of the store.
type GraphInfo struct {
	Name       string `json:"name"`
	Statements int    `json:"statements"`
	Bundle     bool   `json:"bundle"` // the graph types its own name as prov:Bundle
}

type GraphList []GraphInfo

// String renders one line per graph.
func (l GraphList) String() string {
	if len(l) == 0 {
		return "no named graphs"
	}
	var b strings.Builder
	for i, g := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		marker := " "
		if g.Bundle {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s (%d statements)", marker, g.Name, g.Statements)
	}
	return b.String()
}

func newGraphsCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "graphs",
		Short: "List the named graphs of the store; bundles are marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := root.openStore(ctx)
			if err != nil {
				return wrapExit(ExitCommandError, "open store", err)
			}
			defer st.Close()

			names, err := st.Graphs(ctx)
			if err != nil {
				return wrapExit(ExitCommandError, "list graphs", err)
			}
			list := make(GraphList, 0, len(names))
			for _, name := range names {
				quads, err := st.Context(ctx, name)
				if err != nil {
					return wrapExit(ExitCommandError, "read graph", err)
				}
				info := GraphInfo{Name: rdf.FormatTerm(name), Statements: len(quads)}
				for _, q := range quads {
					if q.S == name && q.P == rdf.RDFType && q.O == vocab.Bundle {
						info.Bundle = true
						break
					}
				}
				list = append(list, info)
			}
			return root.formatter(cmd).success(list)
		},
	}
}
