package prov

import (
	"errors"
	"strings"

	"github.com/geoknoesis/prov-go/rdf"
)

// ErrorCode classifies graph errors.
type ErrorCode string

const (
	ErrCodeEmptyDataset         ErrorCode = "EMPTY_DATASET"
	ErrCodeContextMismatch      ErrorCode = "CONTEXT_MISMATCH"
	ErrCodeTypeMismatch         ErrorCode = "TYPE_MISMATCH"
	ErrCodeAmbiguousType        ErrorCode = "AMBIGUOUS_TYPE"
	ErrCodeUnrecognizedType     ErrorCode = "UNRECOGNIZED_TYPE"
	ErrCodeMissingRequiredField ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodeNotMaterialized      ErrorCode = "NOT_MATERIALIZED"
	ErrCodeNotQualified         ErrorCode = "NOT_QUALIFIED"
)

var (
	// ErrEmptyDataset is returned when the requested context holds no statements.
	ErrEmptyDataset = errors.New("prov: empty dataset")
	// ErrContextMismatch is returned when a context does not declare its own bundle.
	ErrContextMismatch = errors.New("prov: context does not match bundle")
	// ErrTypeMismatch is returned when a node has the wrong kind for its slot.
	ErrTypeMismatch = errors.New("prov: type mismatch")
	// ErrAmbiguousType is returned when a link subject has several irreducible types.
	ErrAmbiguousType = errors.New("prov: ambiguous type")
	// ErrUnrecognizedType is returned for class IRIs without a kind.
	ErrUnrecognizedType = errors.New("prov: unrecognized type")
	// ErrMissingRequiredField is returned when a qualification or link lacks its related node.
	ErrMissingRequiredField = errors.New("prov: missing required field")
	// ErrNotMaterialized is returned when the value of a reference is requested.
	ErrNotMaterialized = errors.New("prov: relation is not materialized")
	// ErrNotQualified is returned when the qualification of an unqualified relation is requested.
	ErrNotQualified = errors.New("prov: relation is not qualified")
)

var sentinels = map[ErrorCode]error{
	ErrCodeEmptyDataset:         ErrEmptyDataset,
	ErrCodeContextMismatch:      ErrContextMismatch,
	ErrCodeTypeMismatch:         ErrTypeMismatch,
	ErrCodeAmbiguousType:        ErrAmbiguousType,
	ErrCodeUnrecognizedType:     ErrUnrecognizedType,
	ErrCodeMissingRequiredField: ErrMissingRequiredField,
	ErrCodeNotMaterialized:      ErrNotMaterialized,
	ErrCodeNotQualified:         ErrNotQualified,
}

// Error carries the offending subject and predicate of a failure.
type Error struct {
	Code      ErrorCode
	Subject   rdf.Term // offending node, if known
	Predicate rdf.IRI  // offending relation, if known
	Detail    string
	Err       error // sentinel or underlying cause
}

// Error formats the cause, or the code when there is none, followed by the
// subject and predicate it concerns.
func (e *Error) Error() string {
	var msg strings.Builder
	if e.Err != nil {
		msg.WriteString(e.Err.Error())
	} else {
		msg.WriteString("prov: " + string(e.Code))
	}
	if e.Subject != nil {
		msg.WriteString(": subject ")
		msg.WriteString(rdf.FormatTerm(e.Subject))
	}
	if !e.Predicate.IsZero() {
		msg.WriteString(" predicate ")
		msg.WriteString(rdf.FormatTerm(e.Predicate))
	}
	if e.Detail != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Detail)
	}
	return msg.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error code, so wrapped causes still satisfy
// errors.Is(err, ErrTypeMismatch).
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Code]
	return ok && s == target
}

// Code returns the code of err, or "" if err is not a prov error.
func Code(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	for code, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

func newError(code ErrorCode, subject rdf.Term, predicate rdf.IRI, detail string) *Error {
	return &Error{Code: code, Subject: subject, Predicate: predicate, Detail: detail, Err: sentinels[code]}
}
