package pattern

import (
	"errors"

	"github.com/nkllon/topology/rdf"
)

// ErrTooExpensive is returned when pattern evaluation exceeds the configured
// binding budget. It marks a pathological rule, not a graph problem.
var ErrTooExpensive = errors.New("pattern evaluation exceeded binding budget")

// DefaultMaxBindings caps the intermediate binding set during matching.
// Topology graphs are small; a rule that accumulates this many partial
// solutions is combinatorially broken.
const DefaultMaxBindings = 10000

// Matcher evaluates patterns against a store.
type Matcher struct {
	// MaxBindings bounds the intermediate binding-set size. Zero means
	// DefaultMaxBindings.
	MaxBindings int
}

// NewMatcher returns a matcher with the default binding budget.
func NewMatcher() *Matcher {
	return &Matcher{MaxBindings: DefaultMaxBindings}
}

// Match evaluates the pattern left to right with a nested-loop join: each
// template scans the store and extends or restricts the current binding set.
// The initial binding seeds variables (rule evaluation binds This to the
// target entity); it is not mutated. Results are distinct bindings in
// deterministic store-scan order. An unsatisfiable pattern yields an empty
// result and no error; only a blown binding budget is an error.
func (m *Matcher) Match(store *rdf.Store, p Pattern, init Binding) ([]Binding, error) {
	limit := m.MaxBindings
	if limit <= 0 {
		limit = DefaultMaxBindings
	}

	frontier := []Binding{init.clone()}
	for _, tp := range p {
		var next []Binding
		for _, b := range frontier {
			for st := range store.All() {
				extended, ok := extend(b, tp, st)
				if !ok {
					continue
				}
				next = append(next, extended)
				if len(next) > limit {
					return nil, ErrTooExpensive
				}
			}
		}
		if len(next) == 0 {
			return nil, nil
		}
		frontier = next
	}

	return dedupe(frontier), nil
}

// extend checks a statement against a template under the current binding,
// returning the extended binding when consistent.
func extend(b Binding, tp TriplePattern, st rdf.Statement) (Binding, bool) {
	subject := rdf.IRI(st.Subject)
	predicate := rdf.IRI(st.Predicate)

	out := b
	extended := false
	grow := func() {
		if !extended {
			out = b.clone()
			extended = true
		}
	}

	bind := func(slot Slot, actual rdf.Term) bool {
		if !slot.IsVar() {
			return slot.Term == actual
		}
		if bound, ok := out[slot.Var]; ok {
			return bound == actual
		}
		grow()
		out[slot.Var] = actual
		return true
	}

	if !bind(tp.Subject, subject) {
		return nil, false
	}
	if !bind(tp.Predicate, predicate) {
		return nil, false
	}
	if !bind(tp.Object, st.Object) {
		return nil, false
	}
	return out, true
}

// dedupe drops duplicate bindings, keeping first-seen order.
func dedupe(bindings []Binding) []Binding {
	seen := make(map[string]bool, len(bindings))
	var out []Binding
	for _, b := range bindings {
		k := b.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, b)
	}
	return out
}
