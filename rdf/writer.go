package rdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nkllon/topology/vocabulary/w3c"
)

// WriteNTriples serializes the store line by line in N-Triples syntax, in
// store iteration order.
func WriteNTriples(s *Store) string {
	var sb strings.Builder
	for st := range s.All() {
		sb.WriteString(st.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// TurtleWriter serializes a store in Turtle syntax with prefix abbreviation,
// grouping statements by subject.
type TurtleWriter struct {
	prefixes map[string]string
}

// NewTurtleWriter creates a Turtle writer with the W3C core prefixes declared.
func NewTurtleWriter() *TurtleWriter {
	return &TurtleWriter{
		prefixes: map[string]string{
			"rdf":  w3c.RDFNamespace,
			"rdfs": w3c.RDFSNamespace,
			"owl":  w3c.OWLNamespace,
			"xsd":  w3c.XSDNamespace,
		},
	}
}

// SetPrefix declares a namespace prefix.
func (w *TurtleWriter) SetPrefix(prefix, iri string) {
	w.prefixes[prefix] = iri
}

// Write serializes the store. Subjects appear in first-seen store order;
// prefixes are written sorted for stable output.
func (w *TurtleWriter) Write(s *Store) string {
	var sb strings.Builder

	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, prefix := range keys {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", prefix, w.prefixes[prefix]))
	}
	sb.WriteString("\n")

	var subjects []string
	bySubject := make(map[string][]Statement)
	for st := range s.All() {
		if _, ok := bySubject[st.Subject]; !ok {
			subjects = append(subjects, st.Subject)
		}
		bySubject[st.Subject] = append(bySubject[st.Subject], st)
	}

	for _, subject := range subjects {
		stmts := bySubject[subject]
		sb.WriteString(w.abbreviate(subject))
		sb.WriteString("\n")
		for i, st := range stmts {
			terminator := " ;"
			if i == len(stmts)-1 {
				terminator = " ."
			}
			sb.WriteString(fmt.Sprintf("    %s %s%s\n", w.predicate(st.Predicate), w.object(st.Object), terminator))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (w *TurtleWriter) predicate(iri string) string {
	if iri == w3c.RDFType {
		return "a"
	}
	return w.abbreviate(iri)
}

func (w *TurtleWriter) object(t Term) string {
	if t.IsIRI() {
		return w.abbreviate(t.Value)
	}
	switch t.Datatype {
	case w3c.XSDBoolean, w3c.XSDInteger:
		return t.Value
	case w3c.XSDString, "":
		return `"` + escapeLiteral(t.Value) + `"`
	default:
		return fmt.Sprintf("\"%s\"^^%s", escapeLiteral(t.Value), w.abbreviate(t.Datatype))
	}
}

// abbreviate replaces a known namespace with its prefix, falling back to a
// full IRI reference. The longest matching namespace wins, with ties broken
// by prefix name, so output is stable when one namespace extends another.
func (w *TurtleWriter) abbreviate(iri string) string {
	var (
		bestPrefix string
		bestNS     string
		found      bool
	)
	for prefix, ns := range w.prefixes {
		if !strings.HasPrefix(iri, ns) {
			continue
		}
		local := iri[len(ns):]
		if local == "" || strings.ContainsAny(local, "/#") {
			continue
		}
		if !found || len(ns) > len(bestNS) || (len(ns) == len(bestNS) && prefix < bestPrefix) {
			bestPrefix, bestNS, found = prefix, ns, true
		}
	}
	if found {
		return bestPrefix + ":" + iri[len(bestNS):]
	}
	return "<" + iri + ">"
}
