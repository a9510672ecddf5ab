package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/prov-go/prov"
	"github.com/geoknoesis/prov-go/rdf"
)

// CheckResult compares the stored statements of a bundle with the
// statements of the bundle rebuilt from them.
type CheckResult struct {
	Bundle     string `json:"bundle"`
	Stored     int    `json:"stored"`
	Rebuilt    int    `json:"rebuilt"`
	Lossless   bool   `json:"lossless"`
	Missing    int    `json:"missing"`
	Unexpected int    `json:"unexpected"`
}

// String renders the comparison as one line.
func (r CheckResult) String() string {
	if r.Lossless {
		return fmt.Sprintf("%s: %d statement(s) round trip unchanged", r.Bundle, r.Stored)
	}
	return fmt.Sprintf("%s: %d stored, %d rebuilt (%d not reproduced, %d added)",
		r.Bundle, r.Stored, r.Rebuilt, r.Missing, r.Unexpected)
}

func newCheckCommand(root *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <bundle>",
		Short: "Verify that a bundle rebuilds into the statements it was read from",
		Long: `Build a bundle from its context, serialize it again and compare the
result with the stored statements of that context up to blank node labels.
The exit code is 1 when the bundle cannot be built or does not round trip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := root.formatter(cmd)
			result, err := runCheck(cmd.Context(), root, args[0])
			if err != nil {
				return out.failure(err)
			}
			if err := out.success(result); err != nil {
				return err
			}
			if !result.Lossless {
				return &ExitError{Code: ExitFailure, Message: "bundle does not round trip"}
			}
			return nil
		},
	}
}

func runCheck(ctx context.Context, root *RootOptions, arg string) (CheckResult, error) {
	id, err := parseResource(arg)
	if err != nil {
		return CheckResult{}, wrapExit(ExitCommandError, "invalid bundle identifier", err)
	}
	st, err := root.openStore(ctx)
	if err != nil {
		return CheckResult{}, wrapExit(ExitCommandError, "open store", err)
	}
	defer st.Close()

	b, err := buildFrom(ctx, root, st, id, &buildFlags{noFollow: true})
	if err != nil {
		return CheckResult{}, err
	}
	stored, err := st.Context(ctx, id)
	if err != nil {
		return CheckResult{}, wrapExit(ExitCommandError, "read context", err)
	}
	rebuilt, err := prov.Statements(ctx, b)
	if err != nil {
		return CheckResult{}, graphFailure("serialize", err)
	}

	same, err := rdf.Isomorphic(stored, rebuilt)
	if err != nil {
		return CheckResult{}, wrapExit(ExitCommandError, "canonicalize", err)
	}
	result := CheckResult{
		Bundle:   rdf.FormatTerm(id),
		Stored:   len(stored),
		Rebuilt:  len(rebuilt),
		Lossless: same,
	}
	if !same {
		result.Missing, result.Unexpected = difference(stored, rebuilt)
	}
	root.log.Debug("check finished", "bundle", result.Bundle, "lossless", same)
	return result, nil
}

// difference counts statements present on one side only, comparing blank
// nodes by label.
func difference(stored, rebuilt []rdf.Quad) (missing, unexpected int) {
	key := func(q rdf.Quad) string { return rdf.FormatQuad(q.InGraph(nil)) }
	have := map[string]bool{}
	for _, q := range rebuilt {
		have[key(q)] = true
	}
	want := map[string]bool{}
	for _, q := range stored {
		k := key(q)
		want[k] = true
		if !have[k] {
			missing++
		}
	}
	for k := range have {
		if !want[k] {
			unexpected++
		}
	}
	return missing, unexpected
}
