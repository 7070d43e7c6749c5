// Package shacl holds declarative shapes for topology graphs and the engine
// that evaluates them. A shape targets a class, applies property-cardinality
// and datatype constraints to every entity of that class (subclasses
// included), and may carry custom pattern rules that fire as violations when
// they match.
package shacl

import (
	"fmt"

	"github.com/nkllon/topology/pattern"
)

// Severity grades a violation record.
type Severity string

const (
	// SeverityViolation blocks conformance.
	SeverityViolation Severity = "Violation"

	// SeverityWarning is reported but does not block conformance.
	SeverityWarning Severity = "Warning"

	// SeverityInfo is purely informational.
	SeverityInfo Severity = "Info"
)

// IsValid reports whether the severity is one of the defined grades.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityViolation, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Unbounded marks a property constraint with no upper cardinality bound.
const Unbounded = -1

// PropertyConstraint bounds the number of statements an entity may have on
// one predicate, and optionally their literal datatype. It applies
// independently to each target entity.
type PropertyConstraint struct {
	// Path is the constrained predicate IRI.
	Path string

	// MinCount is the minimum number of statements (0 = optional).
	MinCount int

	// MaxCount is the maximum number of statements, or Unbounded.
	MaxCount int

	// Datatype, when set, is the XSD datatype IRI every literal object
	// must carry.
	Datatype string
}

// Rule is a custom pattern constraint. The rule fires for a target entity
// when binding pattern.This to that entity yields at least one solution; each
// distinct solution is one violation.
type Rule struct {
	// Name identifies the rule in violation records.
	Name string

	// Severity grades the emitted violations.
	Severity Severity

	// Message is the violation message template; {var} placeholders are
	// substituted from the solution binding.
	Message string

	// Pattern is the rule's graph pattern. It must reference the "this"
	// variable.
	Pattern pattern.Pattern
}

// Shape is a named constraint unit. Shapes are loaded once from a catalog and
// are immutable for the duration of a validation run.
type Shape struct {
	// Name identifies the shape in violation records.
	Name string

	// Target is the class IRI the shape applies to; entities match via
	// the transitive subclass closure.
	Target string

	// Properties are evaluated in declaration order.
	Properties []PropertyConstraint

	// Rules are evaluated after the property constraints, in order.
	Rules []Rule
}

// Catalog is an ordered list of shapes. Catalog order determines violation
// order in reports.
type Catalog struct {
	Shapes []Shape
}

// CatalogError reports a malformed shape detected at catalog-load time.
type CatalogError struct {
	// Shape is the offending shape's name, or empty for document-level
	// problems.
	Shape string

	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	if e.Shape == "" {
		return fmt.Sprintf("invalid shape catalog: %s", e.Msg)
	}
	return fmt.Sprintf("invalid shape %q: %s", e.Shape, e.Msg)
}
