package rdf

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// trigParser reads TriG, and Turtle as the default-graph subset of it.
// The whole document is decoded up front.
type trigParser struct {
	input        string
	pos          int
	format       Format
	base         string
	prefixes     map[string]string
	defaultGraph Term
	graph        Term
	quads        []Quad
	anonPrefix   string
	anonSeq      int
	depth        int
	maxDepth     int
}

func newTriGDecoder(r io.Reader, format Format, opts Options) (Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &trigParser{
		input:        string(data),
		format:       format,
		base:         opts.BaseIRI,
		prefixes:     map[string]string{},
		defaultGraph: opts.DefaultGraph,
		graph:        opts.DefaultGraph,
		maxDepth:     opts.MaxDepth,
		anonPrefix:   "a" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return &sliceReader{quads: p.quads}, nil
}

func (p *trigParser) parse() error {
	for {
		p.skipWS()
		if p.eof() {
			return nil
		}
		if err := p.statement(); err != nil {
			return p.wrap(err)
		}
	}
}

func (p *trigParser) statement() error {
	switch {
	case p.hasPrefix("@prefix"):
		p.pos += len("@prefix")
		return p.prefixDirective(true)
	case p.hasPrefix("@base"):
		p.pos += len("@base")
		return p.baseDirective(true)
	case p.hasKeyword("PREFIX"):
		return p.prefixDirective(false)
	case p.hasKeyword("BASE"):
		return p.baseDirective(false)
	case p.hasKeyword("GRAPH"):
		label, err := p.resource()
		if err != nil {
			return err
		}
		return p.graphBlock(label)
	case p.peek() == '{':
		return p.graphBlock(p.defaultGraph)
	case p.peek() == '[':
		subject, err := p.blankNodePropertyList()
		if err != nil {
			return err
		}
		p.skipWS()
		if p.peek() != '.' {
			if err := p.predicateObjectList(subject); err != nil {
				return err
			}
		}
		return p.expect('.')
	}
	subject, err := p.subject()
	if err != nil {
		return err
	}
	p.skipWS()
	if p.peek() == '{' {
		return p.graphBlock(subject)
	}
	if err := p.predicateObjectList(subject); err != nil {
		return err
	}
	return p.expect('.')
}

func (p *trigParser) prefixDirective(dotted bool) error {
	p.skipWS()
	start := p.pos
	for !p.eof() && p.peek() != ':' && !isSpace(p.peek()) {
		p.pos++
	}
	if p.peek() != ':' {
		return errors.New("expected prefix name ending in ':'")
	}
	name := p.input[start:p.pos]
	p.pos++
	iri, err := p.iriRef()
	if err != nil {
		return err
	}
	p.prefixes[name] = iri.Value
	if dotted {
		return p.expect('.')
	}
	return nil
}

func (p *trigParser) baseDirective(dotted bool) error {
	iri, err := p.iriRef()
	if err != nil {
		return err
	}
	p.base = iri.Value
	if dotted {
		return p.expect('.')
	}
	return nil
}

func (p *trigParser) graphBlock(label Term) error {
	if p.format == FormatTurtle {
		return errors.New("graph blocks are not allowed in Turtle")
	}
	if err := p.expect('{'); err != nil {
		return err
	}
	p.graph = label
	defer func() { p.graph = p.defaultGraph }()
	for {
		p.skipWS()
		switch p.peek() {
		case 0:
			return errors.New("unterminated graph block")
		case '}':
			p.pos++
			return nil
		}
		var subject Term
		var err error
		if p.peek() == '[' {
			subject, err = p.blankNodePropertyList()
		} else {
			subject, err = p.subject()
		}
		if err != nil {
			return err
		}
		p.skipWS()
		if c := p.peek(); c != '.' && c != '}' {
			if err := p.predicateObjectList(subject); err != nil {
				return err
			}
		}
		p.skipWS()
		if p.peek() == '.' {
			p.pos++
		} else if p.peek() != '}' {
			return fmt.Errorf("expected '.' or '}', found %q", p.peek())
		}
	}
}

func (p *trigParser) predicateObjectList(subject Term) error {
	for {
		predicate, err := p.verb()
		if err != nil {
			return err
		}
		if err := p.objectList(subject, predicate); err != nil {
			return err
		}
		p.skipWS()
		if p.peek() != ';' {
			return nil
		}
		for p.peek() == ';' {
			p.pos++
			p.skipWS()
		}
		switch p.peek() {
		case '.', ']', '}', 0:
			return nil
		}
	}
}

func (p *trigParser) objectList(subject Term, predicate IRI) error {
	for {
		object, err := p.object()
		if err != nil {
			return err
		}
		p.emit(subject, predicate, object)
		p.skipWS()
		if p.peek() != ',' {
			return nil
		}
		p.pos++
	}
}

func (p *trigParser) verb() (IRI, error) {
	p.skipWS()
	if p.peek() == 'a' && (p.pos+1 >= len(p.input) || strings.IndexByte(" \t\r\n<[(\"'_", p.input[p.pos+1]) >= 0) {
		p.pos++
		return RDFType, nil
	}
	term, err := p.resource()
	if err != nil {
		return IRI{}, err
	}
	iri, ok := term.(IRI)
	if !ok {
		return IRI{}, errors.New("predicate must be an IRI")
	}
	return iri, nil
}

func (p *trigParser) object() (Term, error) {
	p.skipWS()
	c := p.peek()
	switch {
	case c == '[':
		return p.blankNodePropertyList()
	case c == '"' || c == '\'':
		return p.literal()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return p.number()
	case c == '(':
		return p.collection()
	case p.hasWord("true"), p.hasWord("false"):
		value := "true"
		if p.hasWord("false") {
			value = "false"
		}
		p.pos += len(value)
		return Literal{Lexical: value, Datatype: XSDBoolean}, nil
	}
	return p.resource()
}

func (p *trigParser) subject() (Term, error) {
	p.skipWS()
	if p.peek() == '(' {
		return p.collection()
	}
	return p.resource()
}

// resource reads an IRI reference, prefixed name or blank node label.
func (p *trigParser) resource() (Term, error) {
	p.skipWS()
	switch {
	case p.peek() == '<':
		return p.iriRef()
	case p.hasPrefix("_:"):
		p.pos += 2
		start := p.pos
		for !p.eof() && isNameChar(p.peek()) {
			p.pos++
		}
		for p.pos > start && p.input[p.pos-1] == '.' {
			p.pos--
		}
		if p.pos == start {
			return nil, errors.New("blank node label missing")
		}
		return BlankNode{ID: p.input[start:p.pos]}, nil
	case p.peek() == '[':
		// only the empty form is allowed where a plain resource is expected
		p.pos++
		p.skipWS()
		if p.peek() != ']' {
			return nil, errors.New("expected ']'")
		}
		p.pos++
		return p.newAnon(), nil
	}
	return p.prefixedName()
}

func (p *trigParser) iriRef() (IRI, error) {
	p.skipWS()
	if p.peek() != '<' {
		return IRI{}, errors.New("expected IRI")
	}
	end := strings.IndexByte(p.input[p.pos:], '>')
	if end < 0 {
		return IRI{}, errors.New("unterminated IRI")
	}
	value, err := unescapeString(p.input[p.pos+1 : p.pos+end])
	if err != nil {
		return IRI{}, err
	}
	p.pos += end + 1
	return IRI{Value: p.resolve(value)}, nil
}

func (p *trigParser) prefixedName() (Term, error) {
	start := p.pos
	for !p.eof() && p.peek() != ':' && isNameChar(p.peek()) {
		p.pos++
	}
	if p.peek() != ':' {
		p.pos = start
		return nil, fmt.Errorf("unexpected token %q", p.token())
	}
	prefix := p.input[start:p.pos]
	p.pos++
	localStart := p.pos
	var local strings.Builder
	for !p.eof() {
		c := p.peek()
		if c == '\\' && p.pos+1 < len(p.input) {
			local.WriteByte(p.input[p.pos+1])
			p.pos += 2
			continue
		}
		if !isNameChar(c) {
			break
		}
		local.WriteByte(c)
		p.pos++
	}
	name := local.String()
	for strings.HasSuffix(name, ".") && p.pos > localStart {
		name = name[:len(name)-1]
		p.pos--
	}
	ns, ok := p.prefixes[prefix]
	if !ok {
		return nil, fmt.Errorf("undefined prefix %q", prefix)
	}
	return IRI{Value: ns + name}, nil
}

func (p *trigParser) blankNodePropertyList() (Term, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	node := p.newAnon()
	p.skipWS()
	if p.peek() == ']' {
		p.pos++
		return node, nil
	}
	if err := p.predicateObjectList(node); err != nil {
		return nil, err
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	return node, nil
}

// collection reads ( item* ) and emits the rdf:first/rdf:rest chain of its
// items. The empty collection is rdf:nil.
func (p *trigParser) collection() (Term, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	var items []Term
	for {
		p.skipWS()
		if p.eof() {
			return nil, errors.New("unterminated collection")
		}
		if p.peek() == ')' {
			p.pos++
			break
		}
		item, err := p.object()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return RDFNil, nil
	}
	head := p.newAnon()
	node := head
	for i, item := range items {
		p.emit(node, RDFFirst, item)
		if i == len(items)-1 {
			p.emit(node, RDFRest, RDFNil)
			break
		}
		next := p.newAnon()
		p.emit(node, RDFRest, next)
		node = next
	}
	return head, nil
}

func (p *trigParser) literal() (Term, error) {
	quote := p.input[p.pos : p.pos+1]
	long := p.hasPrefix(strings.Repeat(quote, 3))
	if long {
		quote = strings.Repeat(quote, 3)
	}
	p.pos += len(quote)
	start := p.pos
	for {
		if p.eof() {
			return nil, errors.New("unterminated string")
		}
		if p.peek() == '\\' {
			p.pos += 2
			continue
		}
		if p.hasPrefix(quote) {
			break
		}
		if !long && (p.peek() == '\n' || p.peek() == '\r') {
			return nil, errors.New("newline in short string")
		}
		p.pos++
	}
	lexical, err := unescapeString(p.input[start:p.pos])
	if err != nil {
		return nil, err
	}
	p.pos += len(quote)
	switch {
	case p.peek() == '@':
		p.pos++
		langStart := p.pos
		for !p.eof() && (isAlnum(p.peek()) || p.peek() == '-') {
			p.pos++
		}
		if langStart == p.pos {
			return nil, errors.New("language tag missing")
		}
		return Literal{Lexical: lexical, Lang: p.input[langStart:p.pos]}, nil
	case p.hasPrefix("^^"):
		p.pos += 2
		dt, err := p.resource()
		if err != nil {
			return nil, err
		}
		iri, ok := dt.(IRI)
		if !ok {
			return nil, errors.New("datatype must be an IRI")
		}
		if iri == XSDString {
			iri = IRI{}
		}
		return Literal{Lexical: lexical, Datatype: iri}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func (p *trigParser) number() (Term, error) {
	start := p.pos
	if c := p.peek(); c == '+' || c == '-' {
		p.pos++
	}
	digits := p.digits()
	datatype := XSDInteger
	if p.peek() == '.' && p.pos+1 < len(p.input) && isDigit(p.input[p.pos+1]) {
		p.pos++
		digits += p.digits()
		datatype = XSDDecimal
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		if p.digits() == 0 {
			return nil, errors.New("malformed exponent")
		}
		datatype = XSDDouble
	}
	if digits == 0 {
		p.pos = start
		return nil, fmt.Errorf("unexpected token %q", p.token())
	}
	return Literal{Lexical: p.input[start:p.pos], Datatype: datatype}, nil
}

func (p *trigParser) digits() int {
	n := 0
	for !p.eof() && isDigit(p.peek()) {
		p.pos++
		n++
	}
	return n
}

func (p *trigParser) newAnon() BlankNode {
	p.anonSeq++
	return BlankNode{ID: fmt.Sprintf("%s_%d", p.anonPrefix, p.anonSeq)}
}

func (p *trigParser) emit(s Term, pred IRI, o Term) {
	p.quads = append(p.quads, Quad{S: s, P: pred, O: o, G: p.graph})
}

func (p *trigParser) enter() error {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return fmt.Errorf("%w (%d)", ErrDepthExceeded, p.maxDepth)
	}
	p.depth++
	return nil
}

func (p *trigParser) leave() { p.depth-- }

func (p *trigParser) resolve(value string) string {
	if p.base == "" {
		return value
	}
	ref, err := url.Parse(value)
	if err != nil || ref.IsAbs() {
		return value
	}
	base, err := url.Parse(p.base)
	if err != nil {
		return value
	}
	return base.ResolveReference(ref).String()
}

func (p *trigParser) skipWS() {
	for !p.eof() {
		switch c := p.peek(); {
		case isSpace(c):
			p.pos++
		case c == '#':
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *trigParser) expect(ch byte) error {
	p.skipWS()
	if p.peek() != ch {
		if p.eof() {
			return fmt.Errorf("expected %q, found end of input", ch)
		}
		return fmt.Errorf("expected %q, found %q", ch, p.token())
	}
	p.pos++
	return nil
}

func (p *trigParser) eof() bool { return p.pos >= len(p.input) }

func (p *trigParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *trigParser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

// hasKeyword matches a case-insensitive SPARQL-style keyword and consumes it.
func (p *trigParser) hasKeyword(word string) bool {
	end := p.pos + len(word)
	if end >= len(p.input) || !strings.EqualFold(p.input[p.pos:end], word) || !isSpace(p.input[end]) {
		return false
	}
	p.pos = end
	return true
}

func (p *trigParser) hasWord(word string) bool {
	end := p.pos + len(word)
	return p.hasPrefix(word) && (end >= len(p.input) || !isNameChar(p.input[end]))
}

func (p *trigParser) token() string {
	end := p.pos
	for end < len(p.input) && !isSpace(p.input[end]) && end-p.pos < 20 {
		end++
	}
	return p.input[p.pos:end]
}

func (p *trigParser) wrap(err error) error {
	line := strings.Count(p.input[:p.pos], "\n") + 1
	lineStart := strings.LastIndexByte(p.input[:p.pos], '\n') + 1
	lineEnd := strings.IndexByte(p.input[p.pos:], '\n')
	if lineEnd < 0 {
		lineEnd = len(p.input)
	} else {
		lineEnd += p.pos
	}
	return wrapParseError(p.format, p.input[lineStart:lineEnd], line, p.pos-lineStart+1, err)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isAlnum(c) || c == '_' || c == '-' || c == '.' || c == ':' || c == '%' || c >= 0x80
}
