package rdf

import "fmt"

// Statement is a single subject-predicate-object fact. Subject and predicate
// are IRIs; the object is an IRI or a typed literal. Statements are immutable
// values; equality is structural over all three fields.
type Statement struct {
	Subject   string
	Predicate string
	Object    Term
}

// NewStatement constructs a statement.
func NewStatement(subject, predicate string, object Term) Statement {
	return Statement{Subject: subject, Predicate: predicate, Object: object}
}

// String renders the statement in N-Triples syntax.
func (s Statement) String() string {
	return fmt.Sprintf("<%s> <%s> %s .", s.Subject, s.Predicate, s.Object)
}
