package prov

import (
	"fmt"
	"strconv"
	"time"

	"github.com/geoknoesis/prov-go/rdf"
)

// Attribute is a free-form statement about a node that no typed PROV
// relation covers.
type Attribute struct {
	Property rdf.IRI
	Value    rdf.Term
}

// LiteralKind selects how NewAttribute encodes a Go value.
type LiteralKind uint8

const (
	Boolean  LiteralKind = iota // bool
	Number                      // any int, uint or float type
	String                      // string
	Duration                    // time.Duration as xsd:duration
	DateTime                    // time.Time as xsd:dateTime
	Date                        // time.Time as xsd:date
	Typed                       // rdf.Literal with an explicit datatype
)

// NewAttribute encodes value as a literal of the given kind.
func NewAttribute(property rdf.IRI, kind LiteralKind, value any) (Attribute, error) {
	lit, err := literalOf(kind, value)
	if err != nil {
		return Attribute{}, fmt.Errorf("attribute %s: %w", property.Value, err)
	}
	return Attribute{Property: property, Value: lit}, nil
}

// MustAttribute is NewAttribute that panics on a kind/value mismatch.
func MustAttribute(property rdf.IRI, kind LiteralKind, value any) Attribute {
	a, err := NewAttribute(property, kind, value)
	if err != nil {
		panic(err)
	}
	return a
}

// TextAttribute returns a language tagged string attribute.
func TextAttribute(property rdf.IRI, text, lang string) Attribute {
	return Attribute{Property: property, Value: rdf.Literal{Lexical: text, Lang: lang}}
}

// ResourceAttribute returns an attribute pointing at an IRI or blank node.
func ResourceAttribute(property rdf.IRI, value rdf.Term) Attribute {
	return Attribute{Property: property, Value: value}
}

func literalOf(kind LiteralKind, value any) (rdf.Literal, error) {
	switch kind {
	case Boolean:
		if b, ok := value.(bool); ok {
			return rdf.Literal{Lexical: strconv.FormatBool(b), Datatype: rdf.XSDBoolean}, nil
		}
	case Number:
		switch n := value.(type) {
		case int:
			return integer(int64(n)), nil
		case int8:
			return integer(int64(n)), nil
		case int16:
			return integer(int64(n)), nil
		case int32:
			return integer(int64(n)), nil
		case int64:
			return integer(n), nil
		case uint:
			return rdf.Literal{Lexical: strconv.FormatUint(uint64(n), 10), Datatype: rdf.XSDInteger}, nil
		case uint8:
			return integer(int64(n)), nil
		case uint16:
			return integer(int64(n)), nil
		case uint32:
			return integer(int64(n)), nil
		case uint64:
			return rdf.Literal{Lexical: strconv.FormatUint(n, 10), Datatype: rdf.XSDInteger}, nil
		case float32:
			return rdf.Literal{Lexical: strconv.FormatFloat(float64(n), 'E', -1, 32), Datatype: rdf.XSDDouble}, nil
		case float64:
			return rdf.Literal{Lexical: strconv.FormatFloat(n, 'E', -1, 64), Datatype: rdf.XSDDouble}, nil
		}
	case String:
		if s, ok := value.(string); ok {
			return rdf.Literal{Lexical: s}, nil
		}
	case Duration:
		if d, ok := value.(time.Duration); ok {
			return rdf.DurationLiteral(d), nil
		}
	case DateTime:
		if t, ok := value.(time.Time); ok {
			return rdf.TimeLiteral(t, nil), nil
		}
	case Date:
		if t, ok := value.(time.Time); ok {
			return rdf.DateLiteral(t), nil
		}
	case Typed:
		if l, ok := value.(rdf.Literal); ok && !l.Datatype.IsZero() {
			return l, nil
		}
	default:
		return rdf.Literal{}, fmt.Errorf("unknown literal kind %d", kind)
	}
	return rdf.Literal{}, fmt.Errorf("%T cannot be encoded as literal kind %d", value, kind)
}

func integer(n int64) rdf.Literal {
	return rdf.Literal{Lexical: strconv.FormatInt(n, 10), Datatype: rdf.XSDInteger}
}
