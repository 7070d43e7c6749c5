// Package pattern evaluates small graph patterns against a statement store.
// A pattern is an ordered conjunction of triple templates whose slots are
// fixed terms or named variables; evaluation produces every variable binding
// that satisfies the whole conjunction.
package pattern

import (
	"sort"
	"strings"

	"github.com/nkllon/topology/rdf"
)

// This is the distinguished variable bound to the target entity when a
// pattern runs as a shape rule.
const This = "this"

// Slot is one position of a triple template: a named variable or a fixed
// term.
type Slot struct {
	// Var is the variable name; empty for fixed slots.
	Var string

	// Term is the fixed term; ignored when Var is set.
	Term rdf.Term
}

// Var returns a variable slot.
func Var(name string) Slot {
	return Slot{Var: name}
}

// Fixed returns a fixed-term slot.
func Fixed(t rdf.Term) Slot {
	return Slot{Term: t}
}

// IRISlot returns a fixed slot holding an IRI.
func IRISlot(iri string) Slot {
	return Slot{Term: rdf.IRI(iri)}
}

// IsVar reports whether the slot is a variable.
func (s Slot) IsVar() bool {
	return s.Var != ""
}

// TriplePattern is a single triple template.
type TriplePattern struct {
	Subject   Slot
	Predicate Slot
	Object    Slot
}

// Pattern is an ordered conjunction of triple templates, evaluated left to
// right.
type Pattern []TriplePattern

// Vars returns the set of variable names referenced anywhere in the pattern.
func (p Pattern) Vars() map[string]bool {
	vars := make(map[string]bool)
	for _, tp := range p {
		for _, slot := range []Slot{tp.Subject, tp.Predicate, tp.Object} {
			if slot.IsVar() {
				vars[slot.Var] = true
			}
		}
	}
	return vars
}

// Binding maps variable names to the terms they are bound to.
type Binding map[string]rdf.Term

// clone copies a binding before extension.
func (b Binding) clone() Binding {
	out := make(Binding, len(b)+1)
	for k, v := range b {
		out[k] = v
	}
	return out
}

// key renders a canonical form of the binding for deduplication.
func (b Binding) key() string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteString("=")
		sb.WriteString(b[name].String())
		sb.WriteString("|")
	}
	return sb.String()
}
