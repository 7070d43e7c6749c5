// Package rdf provides the statement model for topology graphs: IRI and
// literal terms, subject-predicate-object statements, and an in-memory store
// with set semantics.
package rdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nkllon/topology/vocabulary/w3c"
)

// TermKind distinguishes IRI references from typed literals.
type TermKind int

const (
	// KindIRI is an IRI reference to another entity or class.
	KindIRI TermKind = iota

	// KindLiteral is a typed literal value.
	KindLiteral
)

// Term is an object position value: either an IRI or a typed literal.
// Terms are immutable values; equality is structural.
type Term struct {
	Kind TermKind

	// Value is the IRI for KindIRI, or the lexical form for KindLiteral.
	Value string

	// Datatype is the XSD datatype IRI for literals, empty for IRIs.
	Datatype string
}

// IRI returns an IRI term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// String returns a string literal term.
func String(s string) Term {
	return Term{Kind: KindLiteral, Value: s, Datatype: w3c.XSDString}
}

// Boolean returns a boolean literal term.
func Boolean(b bool) Term {
	return Term{Kind: KindLiteral, Value: strconv.FormatBool(b), Datatype: w3c.XSDBoolean}
}

// Integer returns an integer literal term.
func Integer(i int64) Term {
	return Term{Kind: KindLiteral, Value: strconv.FormatInt(i, 10), Datatype: w3c.XSDInteger}
}

// IsIRI reports whether the term is an IRI reference.
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// IsLiteral reports whether the term is a typed literal.
func (t Term) IsLiteral() bool {
	return t.Kind == KindLiteral
}

// String renders the term in N-Triples syntax.
func (t Term) String() string {
	if t.Kind == KindIRI {
		return "<" + t.Value + ">"
	}
	lex := `"` + escapeLiteral(t.Value) + `"`
	if t.Datatype == "" || t.Datatype == w3c.XSDString {
		return lex
	}
	return fmt.Sprintf("%s^^<%s>", lex, t.Datatype)
}

// LocalName returns the fragment or last path segment of an IRI term, or the
// lexical form of a literal. Used for display.
func (t Term) LocalName() string {
	if t.Kind == KindLiteral {
		return t.Value
	}
	return LocalName(t.Value)
}

// LocalName extracts the fragment or last path segment of an IRI.
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
