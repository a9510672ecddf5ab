package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/geoknoesis/prov-go/rdf"
	"github.com/geoknoesis/prov-go/store"
)

const parseConcurrency = 4

type importOptions struct {
	format string
	graph  string
}

// ImportResult summarizes an import.
type ImportResult struct {
	Files      int `json:"files"`
	Statements int `json:"statements"`
}

// String renders the import summary.
func (r ImportResult) String() string {
	return fmt.Sprintf("imported %d statement(s) from %d file(s)", r.Statements, r.Files)
}

func newImportCommand(root *RootOptions) *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Add the statements of RDF files to the store",
		Long: `Parse every file (concurrently) and add all statements in a single
transaction. Nothing is stored if any file fails to parse.

Turtle and N-Quads statements without a graph go to --graph when given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), root, opts, args, root.formatter(cmd))
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "", "input format (turtle|trig|nquads|jsonld); detected from the extension by default")
	cmd.Flags().StringVar(&opts.graph, "graph", "", "graph for statements without one")
	return cmd
}

func runImport(ctx context.Context, root *RootOptions, opts *importOptions, paths []string, out *formatter) error {
	var readOpts []rdf.Option
	if opts.graph != "" {
		g, err := parseResource(opts.graph)
		if err != nil {
			return wrapExit(ExitCommandError, "invalid --graph", err)
		}
		readOpts = append(readOpts, rdf.OptDefaultGraph(g))
	}

	formats := make([]rdf.Format, len(paths))
	for i, path := range paths {
		format, err := inputFormat(opts.format, path)
		if err != nil {
			return wrapExit(ExitCommandError, "unknown format", err)
		}
		formats[i] = format
	}

	parsed := make([][]rdf.Quad, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parseConcurrency)
	for i, path := range paths {
		format := formats[i]
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			quads, err := rdf.ReadAll(gctx, f, format, readOpts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			root.log.Debug("parsed file", "path", path, "format", string(format), "statements", len(quads))
			parsed[i] = quads
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return wrapExit(ExitCommandError, "parse input", err)
	}

	st, err := root.openStore(ctx)
	if err != nil {
		return wrapExit(ExitCommandError, "open store", err)
	}
	defer st.Close()

	result := ImportResult{Files: len(paths)}
	err = st.Update(ctx, func(tx store.Tx) error {
		for _, quads := range parsed {
			if err := store.AddAll(tx, quads); err != nil {
				return err
			}
			result.Statements += len(quads)
		}
		return nil
	})
	if err != nil {
		return wrapExit(ExitCommandError, "store statements", err)
	}
	root.log.Info("import finished", "files", result.Files, "statements", result.Statements)
	return out.success(result)
}

func inputFormat(flag, path string) (rdf.Format, error) {
	if flag != "" {
		if f, ok := rdf.ParseFormat(flag); ok {
			return f, nil
		}
		return "", fmt.Errorf("unsupported format %q", flag)
	}
	if f, ok := rdf.FormatFromPath(path); ok {
		return f, nil
	}
	return "", fmt.Errorf("cannot detect the format of %s; use --format", path)
}
