package rdf

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/nkllon/topology/vocabulary/w3c"
)

// Parse reads a Turtle-subset document into a new store. The subset covers
// the constructs used by topology sources: @prefix directives, IRI references,
// prefixed names, the "a" keyword, predicate (";") and object (",") lists,
// quoted string literals with ^^ datatypes, bare integers, and bare booleans.
// Syntax problems are reported as *ParseError with a line number.
func Parse(r io.Reader, path string) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	p := &turtleParser{
		in:       []rune(string(data)),
		line:     1,
		path:     path,
		prefixes: map[string]string{},
		store:    NewStore(),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.store, nil
}

// ParseString parses a Turtle-subset document from a string.
func ParseString(doc string) (*Store, error) {
	return Parse(strings.NewReader(doc), "<input>")
}

// LoadFile parses a Turtle-subset file into a new store. A missing file is
// reported as ErrNotFound; malformed content as *ParseError.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, path)
}

// LoadFiles parses each file and merges the results into one store.
func LoadFiles(paths ...string) (*Store, error) {
	merged := NewStore()
	for _, path := range paths {
		s, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		merged = Merge(merged, s)
	}
	return merged, nil
}

type turtleParser struct {
	in       []rune
	pos      int
	line     int
	path     string
	prefixes map[string]string
	store    *Store
}

func (p *turtleParser) errf(format string, args ...any) error {
	return &ParseError{Path: p.path, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *turtleParser) eof() bool {
	return p.pos >= len(p.in)
}

func (p *turtleParser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.in[p.pos]
}

func (p *turtleParser) next() rune {
	r := p.in[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
	}
	return r
}

// skipSpace consumes whitespace and # comments.
func (p *turtleParser) skipSpace() {
	for !p.eof() {
		r := p.peek()
		switch {
		case unicode.IsSpace(r):
			p.next()
		case r == '#':
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
		default:
			return
		}
	}
}

func (p *turtleParser) parse() error {
	for {
		p.skipSpace()
		if p.eof() {
			return nil
		}
		if p.peek() == '@' {
			if err := p.parseDirective(); err != nil {
				return err
			}
			continue
		}
		if err := p.parseStatementBlock(); err != nil {
			return err
		}
	}
}

// parseDirective handles "@prefix p: <iri> ." declarations.
func (p *turtleParser) parseDirective() error {
	word := p.readToken()
	if word != "@prefix" {
		return p.errf("unsupported directive %q", word)
	}
	p.skipSpace()
	name := p.readToken()
	if !strings.HasSuffix(name, ":") {
		return p.errf("malformed prefix name %q", name)
	}
	p.skipSpace()
	iri, err := p.parseIRIRef()
	if err != nil {
		return err
	}
	p.skipSpace()
	if p.eof() || p.next() != '.' {
		return p.errf("expected '.' after @prefix directive")
	}
	p.prefixes[strings.TrimSuffix(name, ":")] = iri
	return nil
}

// parseStatementBlock handles one subject with its predicate and object lists.
func (p *turtleParser) parseStatementBlock() error {
	subject, err := p.parseResource()
	if err != nil {
		return err
	}
	for {
		p.skipSpace()
		predicate, err := p.parsePredicate()
		if err != nil {
			return err
		}
		for {
			p.skipSpace()
			object, err := p.parseObject()
			if err != nil {
				return err
			}
			p.store.Add(Statement{Subject: subject, Predicate: predicate, Object: object})
			p.skipSpace()
			if p.peek() == ',' {
				p.next()
				continue
			}
			break
		}
		switch {
		case p.peek() == ';':
			p.next()
			p.skipSpace()
			// Tolerate a trailing ";" before the closing "." .
			if p.peek() == '.' {
				p.next()
				return nil
			}
			continue
		case p.peek() == '.':
			p.next()
			return nil
		default:
			return p.errf("expected ';' or '.' after object")
		}
	}
}

// parseResource parses an IRI reference or prefixed name.
func (p *turtleParser) parseResource() (string, error) {
	if p.peek() == '<' {
		return p.parseIRIRef()
	}
	tok := p.readToken()
	if tok == "" {
		return "", p.errf("expected IRI or prefixed name")
	}
	return p.expandPrefixed(tok)
}

func (p *turtleParser) parsePredicate() (string, error) {
	if p.peek() == '<' {
		return p.parseIRIRef()
	}
	tok := p.readToken()
	if tok == "a" {
		return w3c.RDFType, nil
	}
	if tok == "" {
		return "", p.errf("expected predicate")
	}
	return p.expandPrefixed(tok)
}

func (p *turtleParser) parseObject() (Term, error) {
	switch {
	case p.peek() == '<':
		iri, err := p.parseIRIRef()
		if err != nil {
			return Term{}, err
		}
		return IRI(iri), nil
	case p.peek() == '"':
		return p.parseLiteral()
	default:
		tok := p.readToken()
		if tok == "" {
			return Term{}, p.errf("expected object")
		}
		if tok == "true" || tok == "false" {
			return Term{Kind: KindLiteral, Value: tok, Datatype: w3c.XSDBoolean}, nil
		}
		if isInteger(tok) {
			return Term{Kind: KindLiteral, Value: tok, Datatype: w3c.XSDInteger}, nil
		}
		iri, err := p.expandPrefixed(tok)
		if err != nil {
			return Term{}, err
		}
		return IRI(iri), nil
	}
}

// parseLiteral parses a quoted string with optional ^^datatype suffix.
func (p *turtleParser) parseLiteral() (Term, error) {
	p.next() // opening quote
	var sb strings.Builder
	for {
		if p.eof() {
			return Term{}, p.errf("unterminated string literal")
		}
		r := p.next()
		if r == '"' {
			break
		}
		if r == '\\' {
			if p.eof() {
				return Term{}, p.errf("unterminated escape sequence")
			}
			switch esc := p.next(); esc {
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			case 'n':
				sb.WriteRune('\n')
			case 'r':
				sb.WriteRune('\r')
			case 't':
				sb.WriteRune('\t')
			default:
				return Term{}, p.errf("unsupported escape \\%c", esc)
			}
			continue
		}
		sb.WriteRune(r)
	}
	datatype := w3c.XSDString
	if p.pos+1 < len(p.in) && p.peek() == '^' && p.in[p.pos+1] == '^' {
		p.next()
		p.next()
		dt, err := p.parseResource()
		if err != nil {
			return Term{}, err
		}
		datatype = dt
	}
	return Term{Kind: KindLiteral, Value: sb.String(), Datatype: datatype}, nil
}

func (p *turtleParser) parseIRIRef() (string, error) {
	if p.eof() || p.peek() != '<' {
		return "", p.errf("expected '<'")
	}
	p.next()
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errf("unterminated IRI reference")
		}
		r := p.next()
		if r == '>' {
			return sb.String(), nil
		}
		if r == '\n' || unicode.IsSpace(r) {
			return "", p.errf("whitespace in IRI reference")
		}
		sb.WriteRune(r)
	}
}

// readToken reads a bare token: a prefixed name, keyword, number, or
// directive name.
func (p *turtleParser) readToken() string {
	var sb strings.Builder
	for !p.eof() {
		r := p.peek()
		if unicode.IsSpace(r) || strings.ContainsRune(`<>";,`, r) {
			break
		}
		// "." terminates a token unless it is interior (e.g. "1.5" or
		// a dotted local name); a "." followed by whitespace or EOF is
		// the statement terminator.
		if r == '.' {
			if p.pos+1 >= len(p.in) || unicode.IsSpace(p.in[p.pos+1]) {
				break
			}
		}
		if r == ';' {
			break
		}
		sb.WriteRune(p.next())
	}
	return sb.String()
}

// expandPrefixed resolves "prefix:local" against declared prefixes.
func (p *turtleParser) expandPrefixed(tok string) (string, error) {
	i := strings.Index(tok, ":")
	if i < 0 {
		return "", p.errf("expected IRI or prefixed name, got %q", tok)
	}
	ns, ok := p.prefixes[tok[:i]]
	if !ok {
		return "", p.errf("undeclared prefix %q", tok[:i])
	}
	return ns + tok[i+1:], nil
}

func isInteger(tok string) bool {
	if tok == "" {
		return false
	}
	start := 0
	if tok[0] == '+' || tok[0] == '-' {
		start = 1
	}
	if start == len(tok) {
		return false
	}
	for _, r := range tok[start:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
