package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeUnsupportedFormat indicates an unsupported format.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeInvalidLiteral indicates a literal that cannot be decoded.
	ErrCodeInvalidLiteral ErrorCode = "INVALID_LITERAL"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeDepthExceeded indicates that nesting depth exceeded the configured limit.
	ErrCodeDepthExceeded ErrorCode = "DEPTH_EXCEEDED"
)

var (
	// ErrUnsupportedFormat indicates an unsupported format.
	ErrUnsupportedFormat = errors.New("unsupported RDF format")
	// ErrInvalidLiteral indicates a literal of the wrong datatype or lexical form.
	ErrInvalidLiteral = errors.New("rdf: invalid literal")
	// ErrDepthExceeded indicates that nesting depth exceeded the configured limit.
	ErrDepthExceeded = errors.New("rdf: nesting depth exceeded configured limit")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors or io.EOF.
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return ErrCodeUnsupportedFormat
	case errors.Is(err, ErrInvalidLiteral):
		return ErrCodeInvalidLiteral
	case errors.Is(err, ErrDepthExceeded):
		return ErrCodeDepthExceeded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}
	return ErrCodeParseError
}

// ParseError provides structured context for parse failures.
type ParseError struct {
	Format    Format // Format being decoded
	Statement string // Offending line or excerpt
	Line      int    // 1-based line number (0 if unknown)
	Column    int    // 1-based column number (0 if unknown)
	Err       error  // Underlying error
}

// Error formats the failure with its position and an excerpt.
func (e *ParseError) Error() string {
	var msg strings.Builder
	msg.WriteString(string(e.Format))
	if e.Line > 0 {
		if e.Column > 0 {
			fmt.Fprintf(&msg, ":%d:%d", e.Line, e.Column)
		} else {
			fmt.Fprintf(&msg, ":%d", e.Line)
		}
	}
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	if excerpt := e.excerpt(); excerpt != "" {
		msg.WriteString("\n  ")
		msg.WriteString(excerpt)
	}
	return msg.String()
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// excerpt trims long statements to a window around the column.
func (e *ParseError) excerpt() string {
	const window = 40
	stmt := strings.TrimRight(e.Statement, "\r\n")
	if stmt == "" {
		return ""
	}
	if e.Column <= 0 {
		if len(stmt) > 2*window {
			return stmt[:2*window] + "..."
		}
		return stmt
	}
	at := e.Column - 1
	if at > len(stmt) {
		at = len(stmt)
	}
	start, end := max(0, at-window), min(len(stmt), at+window)
	out := stmt[start:end]
	caret := at - start
	if start > 0 {
		out = "..." + out
		caret += 3
	}
	if end < len(stmt) {
		out += "..."
	}
	return out + "\n  " + strings.Repeat(" ", caret) + "^"
}

func wrapParseError(format Format, statement string, line, column int, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	return &ParseError{Format: format, Statement: statement, Line: line, Column: column, Err: err}
}
