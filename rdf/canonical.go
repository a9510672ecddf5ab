package rdf

import (
	"fmt"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

// Canonicalize returns the URDNA2015 canonical N-Quads form of quads.
// Duplicate statements are collapsed first.
func Canonicalize(quads []Quad) (string, error) {
	seen := make(map[string]struct{}, len(quads))
	var doc strings.Builder
	for _, q := range quads {
		line := FormatQuad(q)
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		doc.WriteString(line)
		doc.WriteByte('\n')
	}
	dataset, err := (&ld.NQuadRDFSerializer{}).Parse(doc.String())
	if err != nil {
		return "", fmt.Errorf("canonical: %w", err)
	}
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	opts.Algorithm = ld.AlgorithmURDNA2015
	normalized, err := ld.NewJsonLdApi().Normalize(dataset, opts)
	if err != nil {
		return "", fmt.Errorf("canonical: %w", err)
	}
	value, ok := normalized.(string)
	if !ok {
		return "", fmt.Errorf("canonical: unexpected normalization result %T", normalized)
	}
	return value, nil
}

// Isomorphic reports whether a and b hold the same statements up to blank
// node labels.
func Isomorphic(a, b []Quad) (bool, error) {
	ca, err := Canonicalize(a)
	if err != nil {
		return false, err
	}
	cb, err := Canonicalize(b)
	if err != nil {
		return false, err
	}
	return ca == cb, nil
}
