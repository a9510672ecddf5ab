package rdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

type nqDecoder struct {
	reader *bufio.Reader
	graph  Term
	line   int
	err    error
}

func newNQuadsDecoder(r io.Reader, opts Options) *nqDecoder {
	return &nqDecoder{reader: bufio.NewReader(r), graph: opts.DefaultGraph}
}

func (d *nqDecoder) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	for {
		raw, err := d.reader.ReadString('\n')
		if err != nil && (err != io.EOF || raw == "") {
			d.err = err
			return Quad{}, err
		}
		d.line++
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quad, perr := parseNQuadsLine(line)
		if perr != nil {
			d.err = wrapParseError(FormatNQuads, line, d.line, perr.column, perr)
			return Quad{}, d.err
		}
		if quad.G == nil {
			quad.G = d.graph
		}
		return quad, nil
	}
}

func (d *nqDecoder) Close() error { return nil }

// cursorError carries the column of a failure inside a single line.
type cursorError struct {
	column int
	msg    string
}

func (e *cursorError) Error() string { return e.msg }

func parseNQuadsLine(line string) (Quad, *cursorError) {
	c := &nqCursor{input: line}
	subject, err := c.parseTerm(false)
	if err != nil {
		return Quad{}, err
	}
	predicate, err := c.parseIRI()
	if err != nil {
		return Quad{}, err
	}
	object, err := c.parseTerm(true)
	if err != nil {
		return Quad{}, err
	}
	var graph Term
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] != '.' {
		if graph, err = c.parseTerm(false); err != nil {
			return Quad{}, err
		}
	}
	if !c.consume('.') {
		return Quad{}, c.errorf("expected '.' at end of statement")
	}
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] != '#' {
		return Quad{}, c.errorf("unexpected content after '.'")
	}
	return Quad{S: subject, P: predicate, O: object, G: graph}, nil
}

type nqCursor struct {
	input string
	pos   int
}

func (c *nqCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}

func (c *nqCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *nqCursor) parseTerm(allowLiteral bool) (Term, *cursorError) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected character %q", c.input[c.pos])
	}
}

func (c *nqCursor) parseIRI() (IRI, *cursorError) {
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	end := strings.IndexByte(c.input[c.pos:], '>')
	if end < 0 {
		return IRI{}, c.errorf("unterminated IRI")
	}
	raw := c.input[c.pos : c.pos+end]
	c.pos += end + 1
	value, err := unescapeString(raw)
	if err != nil {
		return IRI{}, c.errorf("%v", err)
	}
	return IRI{Value: value}, nil
}

func (c *nqCursor) parseBlankNode() (BlankNode, *cursorError) {
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
		c.pos++
	}
	// a label may not end with '.'
	for c.pos > start && c.input[c.pos-1] == '.' {
		c.pos--
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.input[start:c.pos]}, nil
}

func (c *nqCursor) parseLiteral() (Literal, *cursorError) {
	c.pos++ // opening quote
	start := c.pos
	for c.pos < len(c.input) && c.input[c.pos] != '"' {
		if c.input[c.pos] == '\\' {
			c.pos++
		}
		c.pos++
	}
	if c.pos >= len(c.input) {
		return Literal{}, c.errorf("unterminated literal")
	}
	lexical, err := unescapeString(c.input[start:c.pos])
	if err != nil {
		return Literal{}, c.errorf("%v", err)
	}
	c.pos++
	if strings.HasPrefix(c.input[c.pos:], "@") {
		c.pos++
		langStart := c.pos
		for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
			c.pos++
		}
		if langStart == c.pos {
			return Literal{}, c.errorf("language tag missing")
		}
		return Literal{Lexical: lexical, Lang: c.input[langStart:c.pos]}, nil
	}
	if strings.HasPrefix(c.input[c.pos:], "^^") {
		c.pos += 2
		dt, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		if dt == XSDString {
			dt = IRI{}
		}
		return Literal{Lexical: lexical, Datatype: dt}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (c *nqCursor) errorf(format string, args ...any) *cursorError {
	return &cursorError{column: c.pos + 1, msg: fmt.Sprintf(format, args...)}
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

var errBadEscape = errors.New("invalid escape sequence")

// unescapeString decodes ECHAR and UCHAR escapes.
func unescapeString(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}
		i++
		if i >= len(s) {
			return "", errBadEscape
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '"', '\'', '\\':
			b.WriteByte(s[i])
		case 'u', 'U':
			size := 4
			if s[i] == 'U' {
				size = 8
			}
			if i+size >= len(s) {
				return "", errBadEscape
			}
			code, err := strconv.ParseUint(s[i+1:i+1+size], 16, 32)
			if err != nil || !utf8.ValidRune(rune(code)) {
				return "", errBadEscape
			}
			b.WriteRune(rune(code))
			i += size
		default:
			return "", errBadEscape
		}
	}
	return b.String(), nil
}

type nqEncoder struct {
	writer *bufio.Writer
	err    error
}

func newNQuadsEncoder(w io.Writer) *nqEncoder {
	return &nqEncoder{writer: bufio.NewWriter(w)}
}

func (e *nqEncoder) Write(q Quad) error {
	if e.err != nil {
		return e.err
	}
	if q.S == nil || q.P.Value == "" || q.O == nil {
		return fmt.Errorf("nquads: missing statement fields")
	}
	if _, err := e.writer.WriteString(FormatQuad(q) + "\n"); err != nil {
		e.err = err
	}
	return e.err
}

func (e *nqEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *nqEncoder) Close() error { return e.Flush() }

// FormatQuad renders q as one N-Quads statement without the trailing newline.
func FormatQuad(q Quad) string {
	line := FormatTerm(q.S) + " " + FormatTerm(q.P) + " " + FormatTerm(q.O)
	if q.G != nil {
		line += " " + FormatTerm(q.G)
	}
	return line + " ."
}

// FormatTerm renders a term in N-Quads syntax.
func FormatTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return "<" + value.Value + ">"
	case BlankNode:
		return value.String()
	case Literal:
		quoted := `"` + escapeLiteral(value.Lexical) + `"`
		if value.Lang != "" {
			return quoted + "@" + value.Lang
		}
		if value.Datatype.Value != "" && value.Datatype != XSDString {
			return quoted + "^^<" + value.Datatype.Value + ">"
		}
		return quoted
	default:
		return ""
	}
}

// ParseTerm parses a single term written by FormatTerm.
func ParseTerm(s string) (Term, error) {
	c := &nqCursor{input: s}
	term, err := c.parseTerm(true)
	if err != nil {
		return nil, err
	}
	c.skipWS()
	if c.pos != len(c.input) {
		return nil, fmt.Errorf("nquads: trailing content in term %q", s)
	}
	return term, nil
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}
