package rdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

// newJSONLDDecoder expands a JSON-LD document to statements with json-gold.
func newJSONLDDecoder(r io.Reader, opts Options) (Reader, error) {
	if err := ctxErr(opts.Context); err != nil {
		return nil, err
	}
	doc, err := ld.DocumentFromReader(r)
	if err != nil {
		return nil, &ParseError{Format: FormatJSONLD, Err: err}
	}
	proc := ld.NewJsonLdProcessor()
	result, err := proc.ToRDF(doc, ld.NewJsonLdOptions(opts.BaseIRI))
	if err != nil {
		return nil, &ParseError{Format: FormatJSONLD, Err: err}
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}
	serialized, err := (&ld.NQuadRDFSerializer{}).Serialize(dataset)
	if err != nil {
		return nil, err
	}
	nquads, ok := serialized.(string)
	if !ok {
		return nil, fmt.Errorf("jsonld: unexpected N-Quads result %T", serialized)
	}
	quads, err := ReadAll(opts.Context, strings.NewReader(nquads), FormatNQuads, OptDefaultGraph(opts.DefaultGraph))
	if err != nil {
		return nil, err
	}
	return &sliceReader{quads: quads}, nil
}

// jsonldEncoder buffers statements and writes one JSON-LD document on Close.
type jsonldEncoder struct {
	writer io.Writer
	opts   Options
	buf    bytes.Buffer
	nq     *nqEncoder
	closed bool
	err    error
}

func newJSONLDEncoder(w io.Writer, opts Options) *jsonldEncoder {
	e := &jsonldEncoder{writer: w, opts: opts}
	e.nq = newNQuadsEncoder(&e.buf)
	return e
}

func (e *jsonldEncoder) Write(q Quad) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return fmt.Errorf("jsonld: write after close")
	}
	return e.nq.Write(q)
}

// Flush is a no-op; the document is produced on Close.
func (e *jsonldEncoder) Flush() error { return e.err }

func (e *jsonldEncoder) Close() error {
	if e.err != nil || e.closed {
		return e.err
	}
	e.closed = true
	if err := e.nq.Close(); err != nil {
		e.err = err
		return err
	}
	doc, err := FromRDF(e.opts.Context, e.buf.String(), e.opts.Prefixes)
	if err != nil {
		e.err = err
		return err
	}
	enc := json.NewEncoder(e.writer)
	enc.SetIndent("", "  ")
	e.err = enc.Encode(doc)
	return e.err
}

// FromRDF converts an N-Quads document to JSON-LD, compacted against
// prefixes when any are given.
func FromRDF(ctx context.Context, nquads string, prefixes map[string]string) (any, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	proc := ld.NewJsonLdProcessor()
	goldOpts := ld.NewJsonLdOptions("")
	goldOpts.Format = "application/n-quads"
	output, err := proc.FromRDF(nquads, goldOpts)
	if err != nil {
		return nil, fmt.Errorf("jsonld: %w", err)
	}
	if len(prefixes) == 0 {
		return output, nil
	}
	terms := make(map[string]any, len(prefixes))
	for name, ns := range prefixes {
		terms[name] = ns
	}
	compacted, err := proc.Compact(output, map[string]any{"@context": terms}, ld.NewJsonLdOptions(""))
	if err != nil {
		return nil, fmt.Errorf("jsonld: %w", err)
	}
	return compacted, nil
}

func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
