// Package diff compares two topology graphs at the statement level and
// classifies entity-level drift between snapshots.
package diff

import (
	"sort"

	"github.com/nkllon/topology/rdf"
)

// Result partitions the union of two stores into three disjoint statement
// sets. merge(Common, OnlyA) reproduces A and merge(Common, OnlyB)
// reproduces B.
type Result struct {
	// Common holds statements present in both stores.
	Common *rdf.Store

	// OnlyA holds statements present only in the first store.
	OnlyA *rdf.Store

	// OnlyB holds statements present only in the second store.
	OnlyB *rdf.Store
}

// ChangeKind classifies an entity's drift between two snapshots.
type ChangeKind string

const (
	// Added means the entity has no statements at all in the first store.
	Added ChangeKind = "added"

	// Removed means the entity has no statements at all in the second store.
	Removed ChangeKind = "removed"

	// Changed means the entity exists in both stores with differing
	// statements.
	Changed ChangeKind = "changed"
)

// EntityChange describes one entity's drift.
type EntityChange struct {
	Kind ChangeKind

	// Predicates lists, sorted, the predicates whose statements differ.
	// Populated for every kind.
	Predicates []string
}

// Compare partitions the two stores by statement-level structural equality.
// Neither input is mutated. Compare is symmetric-aware: swapping the
// arguments swaps OnlyA and OnlyB and leaves Common unchanged.
func Compare(a, b *rdf.Store) *Result {
	result := &Result{
		Common: rdf.NewStore(),
		OnlyA:  rdf.NewStore(),
		OnlyB:  rdf.NewStore(),
	}
	for st := range a.All() {
		if b.Contains(st) {
			result.Common.Add(st)
		} else {
			result.OnlyA.Add(st)
		}
	}
	for st := range b.All() {
		if !a.Contains(st) {
			result.OnlyB.Add(st)
		}
	}
	return result
}

// EntityChanges groups the differing statements by subject and classifies
// each subject as Added, Removed, or Changed. An entity is Added or Removed
// only when the other store holds no statements about it at all; an entity
// with shared statements that merely gained or lost some is Changed. The
// predicate set of a change records which predicates differ.
func (r *Result) EntityChanges() map[string]EntityChange {
	inA := groupPredicates(r.OnlyA)
	inB := groupPredicates(r.OnlyB)
	shared := make(map[string]bool)
	for st := range r.Common.All() {
		shared[st.Subject] = true
	}

	changes := make(map[string]EntityChange)
	for entity, preds := range inA {
		if otherPreds, both := inB[entity]; both {
			changes[entity] = EntityChange{Kind: Changed, Predicates: mergePredicates(preds, otherPreds)}
		} else if shared[entity] {
			changes[entity] = EntityChange{Kind: Changed, Predicates: sortedKeys(preds)}
		} else {
			changes[entity] = EntityChange{Kind: Removed, Predicates: sortedKeys(preds)}
		}
	}
	for entity, preds := range inB {
		if _, both := inA[entity]; both {
			continue
		}
		if shared[entity] {
			changes[entity] = EntityChange{Kind: Changed, Predicates: sortedKeys(preds)}
		} else {
			changes[entity] = EntityChange{Kind: Added, Predicates: sortedKeys(preds)}
		}
	}
	return changes
}

func groupPredicates(s *rdf.Store) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for st := range s.All() {
		if out[st.Subject] == nil {
			out[st.Subject] = make(map[string]bool)
		}
		out[st.Subject][st.Predicate] = true
	}
	return out
}

func mergePredicates(a, b map[string]bool) []string {
	merged := make(map[string]bool, len(a)+len(b))
	for p := range a {
		merged[p] = true
	}
	for p := range b {
		merged[p] = true
	}
	return sortedKeys(merged)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
