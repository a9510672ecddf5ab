// Package cli implements the provgraph command tree.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/prov-go/internal/config"
	"github.com/geoknoesis/prov-go/internal/logger"
	"github.com/geoknoesis/prov-go/rdf"
	"github.com/geoknoesis/prov-go/store"
)

// RootOptions holds the global flags and the state shared by subcommands.
type RootOptions struct {
	ConfigPath string
	DB         string
	Verbose    bool
	Output     string // text | json

	cfg     *config.Config
	log     *slog.Logger
	closeLg func() error
}

// ValidOutputs lists the accepted --output values.
var ValidOutputs = []string{"text", "json"}

// NewRootCommand creates the provgraph root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "provgraph",
		Short: "Load, inspect and export W3C PROV bundles",
		Long: `provgraph stores PROV statements in a quad store and rebuilds
typed provenance bundles from the named graph (context) of each bundle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if opts.closeLg != nil {
				return opts.closeLg()
			}
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.DB, "db", "", "SQLite database file (overrides store settings)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	flags.StringVarP(&opts.Output, "output", "o", "text", "result format (text|json)")

	cmd.AddCommand(
		newImportCommand(opts),
		newShowCommand(opts),
		newExportCommand(opts),
		newCheckCommand(opts),
		newGraphsCommand(opts),
	)
	return cmd
}

func (o *RootOptions) setup(cmd *cobra.Command) error {
	if !slices.Contains(ValidOutputs, o.Output) {
		return wrapExit(ExitCommandError, "invalid flag", fmt.Errorf("--output %q: must be one of %v", o.Output, ValidOutputs))
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return wrapExit(ExitCommandError, "load configuration", err)
	}
	if o.DB != "" {
		cfg.Store.Driver = config.DriverSQLite
		cfg.Store.Path = o.DB
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}
	l, closeLog, err := logger.Setup(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return wrapExit(ExitCommandError, "set up logging", err)
	}
	o.cfg, o.log, o.closeLg = cfg, l, closeLog
	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *formatter {
	return &formatter{format: o.Output, w: cmd.OutOrStdout(), log: o.log}
}

// openStore opens the configured store. The caller closes it.
func (o *RootOptions) openStore(ctx context.Context) (store.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch o.cfg.Store.Driver {
	case config.DriverMemory:
		return store.NewMemory(), nil
	case config.DriverSQLite:
		o.log.Debug("opening store", "path", o.cfg.Store.Path)
		return store.OpenSQLite(o.cfg.Store.Path)
	}
	return nil, fmt.Errorf("unknown store driver %q", o.cfg.Store.Driver)
}

// parseResource reads a bundle or graph identifier given as a bare IRI,
// an <IRI> or a _:blank node.
func parseResource(s string) (rdf.Term, error) {
	if strings.HasPrefix(s, "<") || strings.HasPrefix(s, "_:") {
		t, err := rdf.ParseTerm(s)
		if err != nil {
			return nil, err
		}
		if !rdf.IsResource(t) {
			return nil, fmt.Errorf("%s is not an IRI or blank node", s)
		}
		return t, nil
	}
	if s == "" || strings.ContainsAny(s, " <>\"") {
		return nil, fmt.Errorf("invalid IRI %q", s)
	}
	return rdf.IRI{Value: s}, nil
}
