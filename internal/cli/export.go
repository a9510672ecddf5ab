package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/prov-go/prov"
	"github.com/geoknoesis/prov-go/rdf"
)

type exportOptions struct {
	buildFlags
	format string
	file   string
}

// ExportResult is printed when the export goes to a file.
type ExportResult struct {
	Bundle     string `json:"bundle"`
	File       string `json:"file"`
	Format     string `json:"format"`
	Statements int    `json:"statements"`
}

// String renders the export summary.
func (r ExportResult) String() string {
	return fmt.Sprintf("wrote %d statement(s) of %s to %s (%s)", r.Statements, r.Bundle, r.File, r.Format)
}

func newExportCommand(root *RootOptions) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export <bundle>",
		Short: "Rebuild a bundle and write its statements",
		Long: `Rebuild a bundle from the store and serialize it again, including
every linked bundle that was built. Statements are written to stdout unless
--file is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), root, opts, args[0], cmd)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", "", "output format (trig|turtle|nquads|jsonld); defaults to export.format")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "write to this file instead of stdout")
	return cmd
}

func runExport(ctx context.Context, root *RootOptions, opts *exportOptions, arg string, cmd *cobra.Command) error {
	name := opts.format
	if name == "" {
		name = root.cfg.Export.Format
	}
	format, ok := rdf.ParseFormat(name)
	if !ok {
		return wrapExit(ExitCommandError, "invalid --format", fmt.Errorf("unsupported format %q", name))
	}

	b, err := buildBundle(ctx, root, arg, &opts.buildFlags)
	if err != nil {
		return err
	}
	quads, err := prov.Statements(ctx, b)
	if err != nil {
		return graphFailure("serialize", err)
	}

	if opts.file == "" {
		if err := write(cmd.OutOrStdout(), format, quads, root); err != nil {
			return wrapExit(ExitCommandError, "write statements", err)
		}
		return nil
	}
	f, err := os.Create(opts.file)
	if err != nil {
		return wrapExit(ExitCommandError, "create output", err)
	}
	err = write(f, format, quads, root)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return wrapExit(ExitCommandError, "write statements", err)
	}
	return root.formatter(cmd).success(ExportResult{
		Bundle:     rdf.FormatTerm(b.ID()),
		File:       opts.file,
		Format:     string(format),
		Statements: len(quads),
	})
}

func write(w io.Writer, format rdf.Format, quads []rdf.Quad, root *RootOptions) error {
	return rdf.WriteAll(w, format, quads, rdf.OptPrefixes(root.cfg.Export.Prefixes))
}
