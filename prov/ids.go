package prov

import (
	"strings"

	"github.com/google/uuid"

	"github.com/geoknoesis/prov-go/rdf"
)

// NewBlankID returns a fresh blank node identifier for qualifications and
// other anonymous nodes.
func NewBlankID() rdf.BlankNode {
	return rdf.BlankNode{ID: "q" + strings.ReplaceAll(uuid.NewString(), "-", "")}
}

func orBlank(id rdf.Term) rdf.Term {
	if id == nil {
		return NewBlankID()
	}
	return id
}
