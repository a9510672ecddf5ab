package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/prov-go/rdf"
)

const nestedTriG = `@prefix prov: <http://www.w3.org/ns/prov#> .
@prefix : <http://example.org/> .

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

// execute runs the root command and returns what it printed on stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"import", "show", "export", "check", "graphs"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for name, def := range map[string]string{"config": "", "db": "", "verbose": "false", "output": "text"} {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, def, f.DefValue, name)
	}
	assert.Equal(t, "o", cmd.PersistentFlags().Lookup("output").Shorthand)
}

func TestImportAndInspect(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prov.db")
	input := writeInput(t, "nested.trig", nestedTriG)

	out, err := execute(t, "--db", db, "import", input)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 16 statement(s) from 1 file(s)")

	out, err = execute(t, "--db", db, "graphs")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(out, "* <http://example.org/b"))

	out, err = execute(t, "--db", db, "--output", "json", "show", "http://example.org/b1")
	require.NoError(t, err)
	var resp struct {
		Status string        `json:"status"`
		Data   BundleSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "<http://example.org/b1>", resp.Data.ID)
	assert.Equal(t, 1, resp.Data.Values)
	assert.Equal(t, 3, resp.Data.Includes)
	require.Len(t, resp.Data.Links, 1)
	assert.True(t, resp.Data.Links[0].Built)

	out, err = execute(t, "--db", db, "show", "--no-follow", "<http://example.org/b2>")
	require.NoError(t, err)
	assert.Contains(t, out, "items: 3 (2 materialized, 1 referenced)")
	assert.Contains(t, out, "(reference)")

	out, err = execute(t, "--db", db, "export", "--format", "nquads", "http://example.org/b1")
	require.NoError(t, err)
	assert.Contains(t, out, "<http://example.org/plan> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/ns/prov#Plan> <http://example.org/b4> .")

	for _, bundle := range []string{"http://example.org/b1", "http://example.org/b2", "http://example.org/b4"} {
		out, err = execute(t, "--db", db, "check", bundle)
		require.NoError(t, err, bundle)
		assert.Contains(t, out, "round trip unchanged")
	}
}

func TestExportToFile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prov.db")
	_, err := execute(t, "--db", db, "import", writeInput(t, "nested.trig", nestedTriG))
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "b3.nq")
	out, err := execute(t, "--db", db, "export", "--format", "nq", "-f", target, "http://example.org/b3")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 2 statement(s)")

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()
	quads, err := rdf.ReadAll(context.Background(), f, rdf.FormatNQuads)
	require.NoError(t, err)
	assert.Len(t, quads, 2)
}

func TestCheckReportsNormalizedStatements(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prov.db")
	input := writeInput(t, "b1.ttl", `@prefix prov: <http://www.w3.org/ns/prov#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix : <http://example.org/> .
:b1 a prov:Bundle .
:e a prov:Entity ;
   prov:generatedAtTime "2012-04-01T16:21:00+01:00"^^xsd:dateTime .
`)
	_, err := execute(t, "--db", db, "import", "--graph", "http://example.org/b1", input)
	require.NoError(t, err)

	out, err := execute(t, "--db", db, "check", "http://example.org/b1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, out, "1 not reproduced, 1 added")
}

func TestCommandErrors(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prov.db")

	out, err := execute(t, "--db", db, "show", "http://example.org/missing")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, out, "EMPTY_DATASET")

	_, err = execute(t, "--db", db, "--output", "yaml", "graphs")
	assert.Equal(t, ExitCommandError, ExitCode(err))

	_, err = execute(t, "--db", db, "import", writeInput(t, "data.csv", "a,b"))
	assert.Equal(t, ExitCommandError, ExitCode(err))

	good := writeInput(t, "good.trig", nestedTriG)
	bad := writeInput(t, "bad.trig", ":b1 { :x :y ")
	_, err = execute(t, "--db", db, "import", good, bad)
	assert.Equal(t, ExitCommandError, ExitCode(err))

	out, err = execute(t, "--db", db, "graphs")
	require.NoError(t, err)
	assert.Contains(t, out, "no named graphs")
}

func TestParseResource(t *testing.T) {
	for in, want := range map[string]rdf.Term{
		"http://example.org/b1":   rdf.IRI{Value: "http://example.org/b1"},
		"<http://example.org/b1>": rdf.IRI{Value: "http://example.org/b1"},
		"_:b0":                    rdf.BlankNode{ID: "b0"},
	} {
		got, err := parseResource(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "has space", `"literal"`} {
		_, err := parseResource(in)
		assert.Error(t, err, in)
	}
}
