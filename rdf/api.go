package rdf

import (
	"context"
	"io"
)

// Reader streams RDF statements from an input.
type Reader interface {
	Next() (Quad, error)
	Close() error
}

// Writer streams RDF statements to an output.
// Triple-only formats ignore the graph field.
type Writer interface {
	Write(Quad) error
	Flush() error
	Close() error
}

// Handler processes statements in push mode.
type Handler func(Quad) error

// Option configures reader/writer behavior.
type Option func(*Options)

// Options configures parser/encoder behavior.
type Options struct {
	// Context cancels JSON-LD processing.
	Context context.Context
	// DefaultGraph is assigned to statements read outside any named graph.
	DefaultGraph Term
	// BaseIRI resolves relative IRIs when reading.
	BaseIRI string
	// Prefixes abbreviates IRIs when writing TriG, Turtle and JSON-LD.
	Prefixes map[string]string
	// MaxDepth limits the nesting of blank node property lists and
	// collections when reading TriG and Turtle. Zero disables the limit.
	MaxDepth int
}

// DefaultMaxDepth is the nesting limit applied unless OptMaxDepth is given.
const DefaultMaxDepth = 100

func defaultOptions() Options {
	return Options{Context: context.Background(), MaxDepth: DefaultMaxDepth}
}

// NewReader creates a reader for the specified format.
func NewReader(r io.Reader, format Format, opts ...Option) (Reader, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	switch format {
	case FormatNQuads:
		return newNQuadsDecoder(r, options), nil
	case FormatTriG, FormatTurtle:
		return newTriGDecoder(r, format, options)
	case FormatJSONLD:
		return newJSONLDDecoder(r, options)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...Option) (Writer, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	switch format {
	case FormatNQuads:
		return newNQuadsEncoder(w), nil
	case FormatTriG, FormatTurtle:
		return newTriGEncoder(w, format, options), nil
	case FormatJSONLD:
		return newJSONLDEncoder(w, options), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Parse parses RDF from the reader and streams statements to the handler.
// If ctx is nil, context.Background() is used.
func Parse(ctx context.Context, r io.Reader, format Format, handler Handler, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	reader, err := NewReader(r, format, append([]Option{OptContext(ctx)}, opts...)...)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		q, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler(q); err != nil {
			return err
		}
	}
}

// ReadAll collects every statement of r.
func ReadAll(ctx context.Context, r io.Reader, format Format, opts ...Option) ([]Quad, error) {
	var quads []Quad
	err := Parse(ctx, r, format, func(q Quad) error {
		quads = append(quads, q)
		return nil
	}, opts...)
	return quads, err
}

// WriteAll encodes quads to w and closes the writer.
func WriteAll(w io.Writer, format Format, quads []Quad, opts ...Option) error {
	writer, err := NewWriter(w, format, opts...)
	if err != nil {
		return err
	}
	for _, q := range quads {
		if err := writer.Write(q); err != nil {
			_ = writer.Close()
			return err
		}
	}
	return writer.Close()
}

// OptContext sets the context for cancellation.
func OptContext(ctx context.Context) Option {
	return func(opts *Options) {
		opts.Context = ctx
	}
}

// OptDefaultGraph places statements of the default graph into g.
func OptDefaultGraph(g Term) Option {
	return func(opts *Options) {
		opts.DefaultGraph = g
	}
}

// OptBaseIRI sets the base IRI for relative references.
func OptBaseIRI(base string) Option {
	return func(opts *Options) {
		opts.BaseIRI = base
	}
}

// OptMaxDepth sets the maximum nesting depth limit.
func OptMaxDepth(maxDepth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = maxDepth
	}
}

// OptPrefixes sets the prefix map used by writers.
func OptPrefixes(prefixes map[string]string) Option {
	return func(opts *Options) {
		opts.Prefixes = prefixes
	}
}

// sliceReader serves statements decoded up front.
type sliceReader struct {
	quads []Quad
	pos   int
}

func (r *sliceReader) Next() (Quad, error) {
	if r.pos >= len(r.quads) {
		return Quad{}, io.EOF
	}
	q := r.quads[r.pos]
	r.pos++
	return q, nil
}

func (r *sliceReader) Close() error { return nil }
