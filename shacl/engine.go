package shacl

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nkllon/topology/ontology"
	"github.com/nkllon/topology/pattern"
	"github.com/nkllon/topology/rdf"
)

// Violation is one conformance failure. Records are immutable and ordered:
// catalog order first, then target-entity discovery order.
type Violation struct {
	// Entity is the IRI of the non-conforming entity.
	Entity string `json:"entity"`

	// Shape is the name of the shape that produced the record.
	Shape string `json:"shape"`

	// Constraint identifies the property constraint or rule that fired.
	Constraint string `json:"constraint"`

	// Severity grades the record.
	Severity Severity `json:"severity"`

	// Message is the rendered, human-facing description.
	Message string `json:"message"`
}

// Report is the validation outcome handed to the reporting layer. It carries
// no formatting.
type Report struct {
	// ID uniquely identifies this validation run.
	ID string `json:"id"`

	// Conforms is true iff no violation carries SeverityViolation.
	// Warnings and infos never block conformance.
	Conforms bool `json:"conforms"`

	// Violations lists every emitted record, in evaluation order.
	Violations []Violation `json:"violations"`
}

// Options configures a validation run.
type Options struct {
	// AbortOnFirst stops evaluation at the first SeverityViolation
	// record. The records found before the stop are exactly the ones an
	// exhaustive run would have found first in catalog order.
	AbortOnFirst bool

	// MaxBindings overrides the pattern matcher's binding budget.
	MaxBindings int

	// Logger receives evaluation diagnostics. Nil means slog.Default.
	Logger *slog.Logger
}

// Engine evaluates a shape catalog against a statement store.
type Engine struct {
	opts    Options
	matcher *pattern.Matcher
	logger  *slog.Logger
}

// NewEngine creates a validation engine.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	m := pattern.NewMatcher()
	if opts.MaxBindings > 0 {
		m.MaxBindings = opts.MaxBindings
	}
	return &Engine{opts: opts, matcher: m, logger: logger}
}

// Validate evaluates every shape in catalog order against the store and
// returns the conformance report. The store and catalog are read, never
// mutated. Evaluation is exhaustive unless AbortOnFirst is set: all shapes,
// entities, and constraints run even after violations, so one report surfaces
// everything. An empty catalog (or a catalog with no matching targets) is
// vacuously conformant.
func Validate(store *rdf.Store, catalog *Catalog, opts Options) *Report {
	return NewEngine(opts).Validate(store, catalog)
}

// Validate runs the engine. See the package-level Validate.
func (e *Engine) Validate(store *rdf.Store, catalog *Catalog) *Report {
	report := &Report{ID: uuid.New().String(), Conforms: true}
	idx := ontology.NewIndex(store, e.logger)

	for _, shape := range catalog.Shapes {
		targets := idx.EntitiesOfType(shape.Target)
		e.logger.Debug("evaluating shape",
			slog.String("shape", shape.Name),
			slog.Int("targets", len(targets)))

		for _, entity := range targets {
			for _, pc := range shape.Properties {
				if stop := e.checkProperty(store, shape, entity, pc, report); stop {
					return report
				}
			}
			for _, rule := range shape.Rules {
				if stop := e.checkRule(store, shape, entity, rule, report); stop {
					return report
				}
			}
		}
	}
	return report
}

// checkProperty counts (entity, path, *) statements against the constraint
// bounds and checks literal datatypes. It reports whether evaluation should
// stop.
func (e *Engine) checkProperty(store *rdf.Store, shape Shape, entity string, pc PropertyConstraint, report *Report) bool {
	var objects []rdf.Term
	for st := range store.All() {
		if st.Subject == entity && st.Predicate == pc.Path {
			objects = append(objects, st.Object)
		}
	}

	path := rdf.LocalName(pc.Path)
	if len(objects) < pc.MinCount {
		if e.emit(report, Violation{
			Entity:     entity,
			Shape:      shape.Name,
			Constraint: fmt.Sprintf("minCount(%s)", path),
			Severity:   SeverityViolation,
			Message: fmt.Sprintf("%s: expected at least %d value(s) for %s, found %d",
				rdf.LocalName(entity), pc.MinCount, path, len(objects)),
		}) {
			return true
		}
	}
	if pc.MaxCount != Unbounded && len(objects) > pc.MaxCount {
		if e.emit(report, Violation{
			Entity:     entity,
			Shape:      shape.Name,
			Constraint: fmt.Sprintf("maxCount(%s)", path),
			Severity:   SeverityViolation,
			Message: fmt.Sprintf("%s: expected at most %d value(s) for %s, found %d",
				rdf.LocalName(entity), pc.MaxCount, path, len(objects)),
		}) {
			return true
		}
	}
	if pc.Datatype != "" {
		for _, obj := range objects {
			if obj.IsLiteral() && obj.Datatype == pc.Datatype {
				continue
			}
			if e.emit(report, Violation{
				Entity:     entity,
				Shape:      shape.Name,
				Constraint: fmt.Sprintf("datatype(%s)", path),
				Severity:   SeverityViolation,
				Message: fmt.Sprintf("%s: value %s of %s is not of datatype %s",
					rdf.LocalName(entity), obj.LocalName(), path, rdf.LocalName(pc.Datatype)),
			}) {
				return true
			}
		}
	}
	return false
}

// checkRule binds "this" to the entity and evaluates the rule pattern; every
// distinct solution is one violation. A blown binding budget is recorded as a
// Violation-severity diagnostic rather than aborting the run, so one
// pathological rule cannot hide violations elsewhere.
func (e *Engine) checkRule(store *rdf.Store, shape Shape, entity string, rule Rule, report *Report) bool {
	init := pattern.Binding{pattern.This: rdf.IRI(entity)}
	bindings, err := e.matcher.Match(store, rule.Pattern, init)
	if err != nil {
		e.logger.Warn("rule evaluation failed",
			slog.String("shape", shape.Name),
			slog.String("rule", rule.Name),
			slog.String("entity", entity),
			slog.String("error", err.Error()))
		return e.emit(report, Violation{
			Entity:     entity,
			Shape:      shape.Name,
			Constraint: rule.Name,
			Severity:   SeverityViolation,
			Message: fmt.Sprintf("%s: rule %s could not be evaluated: %v",
				rdf.LocalName(entity), rule.Name, err),
		})
	}

	for _, b := range bindings {
		if e.emit(report, Violation{
			Entity:     entity,
			Shape:      shape.Name,
			Constraint: rule.Name,
			Severity:   rule.Severity,
			Message:    renderMessage(rule.Message, b),
		}) {
			return true
		}
	}
	return false
}

// emit appends a record, updates conformance, and reports whether an
// AbortOnFirst run should stop.
func (e *Engine) emit(report *Report, v Violation) bool {
	report.Violations = append(report.Violations, v)
	if v.Severity == SeverityViolation {
		report.Conforms = false
		if e.opts.AbortOnFirst {
			return true
		}
	}
	return false
}

// renderMessage substitutes {var} placeholders with the bound terms' local
// names.
func renderMessage(template string, b pattern.Binding) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		if term, ok := b[name]; ok {
			return term.LocalName()
		}
		return m
	})
}
