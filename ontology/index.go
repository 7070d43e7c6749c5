// Package ontology derives type information from a topology graph: declared
// entity types, the transitive subclass closure, and type-based entity
// selection.
package ontology

import (
	"log/slog"

	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/vocabulary/w3c"
)

// Index holds the type assertions and subclass relation of one store. It is
// built once per store value and is read-only afterwards.
type Index struct {
	// directTypes maps an entity IRI to its declared rdf:type objects.
	directTypes map[string][]string

	// superclasses maps a class IRI to its direct rdfs:subClassOf objects.
	superclasses map[string][]string

	// entities preserves entity discovery order for deterministic output.
	entities []string

	logger *slog.Logger
}

// NewIndex builds a type index from the store. The subclass relation is taken
// as declared; cycles are tolerated at traversal time (see IsA). A nil logger
// falls back to slog.Default.
func NewIndex(store *rdf.Store, logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	idx := &Index{
		directTypes:  make(map[string][]string),
		superclasses: make(map[string][]string),
		logger:       logger,
	}
	for st := range store.All() {
		switch st.Predicate {
		case w3c.RDFType:
			if !st.Object.IsIRI() {
				continue
			}
			if _, seen := idx.directTypes[st.Subject]; !seen {
				idx.entities = append(idx.entities, st.Subject)
			}
			idx.directTypes[st.Subject] = append(idx.directTypes[st.Subject], st.Object.Value)
		case w3c.RDFSSubClassOf:
			if !st.Object.IsIRI() {
				continue
			}
			idx.superclasses[st.Subject] = append(idx.superclasses[st.Subject], st.Object.Value)
		}
	}
	idx.warnOnCycles()
	return idx
}

// warnOnCycles reports cyclic subclass declarations once, at build time. A
// cycle is a data-quality problem, not a fatal error: closure traversal is
// visited-set guarded, so validation of unrelated shapes proceeds.
func (idx *Index) warnOnCycles() {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(idx.superclasses))
	var visit func(class string)
	visit = func(class string) {
		color[class] = gray
		for _, super := range idx.superclasses[class] {
			switch color[super] {
			case white:
				visit(super)
			case gray:
				idx.logger.Warn("cyclic subclass hierarchy detected, closure stops at cycle boundary",
					slog.String("class", class),
					slog.String("superclass", super))
			}
		}
		color[class] = black
	}
	for class := range idx.superclasses {
		if color[class] == white {
			visit(class)
		}
	}
}

// TypesOf returns the directly declared types of an entity, in declaration
// order. Entities with no type assertion yield nil.
func (idx *Index) TypesOf(entity string) []string {
	types := idx.directTypes[entity]
	out := make([]string, len(types))
	copy(out, types)
	return out
}

// IsA reports whether the entity's declared types include class, directly or
// via the transitive subclass closure. Traversal carries a visited set, so a
// malformed cyclic hierarchy terminates at the cycle boundary instead of
// looping; the cycle is logged as a data-quality warning.
func (idx *Index) IsA(entity, class string) bool {
	for _, declared := range idx.directTypes[entity] {
		if idx.subClassOf(declared, class) {
			return true
		}
	}
	return false
}

// subClassOf reports whether class from reaches class to over zero or more
// rdfs:subClassOf steps.
func (idx *Index) subClassOf(from, to string) bool {
	if from == to {
		return true
	}
	visited := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, super := range idx.superclasses[current] {
			if super == to {
				return true
			}
			if visited[super] {
				continue
			}
			visited[super] = true
			queue = append(queue, super)
		}
	}
	return false
}

// EntitiesOfType returns all entities for which IsA(entity, class) holds, in
// discovery order (first type assertion seen in the store).
func (idx *Index) EntitiesOfType(class string) []string {
	var out []string
	for _, entity := range idx.entities {
		if idx.IsA(entity, class) {
			out = append(out, entity)
		}
	}
	return out
}

// Entities returns all typed entities in discovery order.
func (idx *Index) Entities() []string {
	out := make([]string, len(idx.entities))
	copy(out, idx.entities)
	return out
}
