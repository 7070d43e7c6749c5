package rdf

import "iter"

// Store is a deduplicated set of statements. Iteration order is insertion
// order, which makes repeated iteration over the same store value
// deterministic. Stores built by Load or Merge are treated as immutable by
// every consumer; all transformations return new store values.
type Store struct {
	statements []Statement
	index      map[Statement]struct{}
}

// NewStore returns an empty store.
func NewStore(statements ...Statement) *Store {
	s := &Store{index: make(map[Statement]struct{}, len(statements))}
	for _, st := range statements {
		s.Add(st)
	}
	return s
}

// Add inserts a statement, ignoring duplicates. It reports whether the
// statement was new.
func (s *Store) Add(st Statement) bool {
	if _, ok := s.index[st]; ok {
		return false
	}
	s.index[st] = struct{}{}
	s.statements = append(s.statements, st)
	return true
}

// Contains reports whether the store holds the statement.
func (s *Store) Contains(st Statement) bool {
	_, ok := s.index[st]
	return ok
}

// Len returns the number of statements.
func (s *Store) Len() int {
	return len(s.statements)
}

// All iterates over statements in insertion order. The sequence is finite and
// restartable.
func (s *Store) All() iter.Seq[Statement] {
	return func(yield func(Statement) bool) {
		for _, st := range s.statements {
			if !yield(st) {
				return
			}
		}
	}
}

// Statements returns a copy of the statements in insertion order.
func (s *Store) Statements() []Statement {
	out := make([]Statement, len(s.statements))
	copy(out, s.statements)
	return out
}

// Merge returns the set union of the two stores as a new store. Neither input
// is mutated. Union is idempotent and, as a set, commutative: the result
// contains the same statements regardless of argument order, though iteration
// order follows the receiver first.
func Merge(a, b *Store) *Store {
	out := NewStore()
	for _, st := range a.statements {
		out.Add(st)
	}
	for _, st := range b.statements {
		out.Add(st)
	}
	return out
}

// Equal reports whether two stores hold the same statement set, ignoring
// insertion order.
func (s *Store) Equal(other *Store) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, st := range s.statements {
		if !other.Contains(st) {
			return false
		}
	}
	return true
}
