package shacl

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nkllon/topology/pattern"
	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/vocabulary/w3c"
)

// catalogDoc is the YAML document shape for a catalog file:
//
//	prefixes:
//	  sys: "http://nkllon.com/sys#"
//	shapes:
//	  - name: PortShape
//	    target: sys:Port
//	    properties:
//	      - path: sys:belongsToDevice
//	        minCount: 1
//	        maxCount: 1
//	    rules:
//	      - name: unidirectional-return-path
//	        severity: Violation
//	        message: "Port {this} returns via unidirectional cable {cable}"
//	        pattern:
//	          - [this, sys:connectsVia, "?cable"]
//	          - ["?cable", sys:isBidirectional, "false"]
//
// Pattern slots use a terse token syntax: "?name" is a variable, "this" the
// target-entity variable, "<iri>" a full IRI, "prefix:local" a prefixed name,
// true/false a boolean literal, bare digits an integer literal, and a
// double-quoted token a string literal.
type catalogDoc struct {
	Prefixes map[string]string `yaml:"prefixes"`
	Shapes   []shapeDoc        `yaml:"shapes"`
}

type shapeDoc struct {
	Name       string        `yaml:"name"`
	Target     string        `yaml:"target"`
	Properties []propertyDoc `yaml:"properties"`
	Rules      []ruleDoc     `yaml:"rules"`
}

type propertyDoc struct {
	Path     string `yaml:"path"`
	MinCount int    `yaml:"minCount"`
	MaxCount *int   `yaml:"maxCount"`
	Datatype string `yaml:"datatype"`
}

type ruleDoc struct {
	Name     string     `yaml:"name"`
	Severity string     `yaml:"severity"`
	Message  string     `yaml:"message"`
	Pattern  [][]string `yaml:"pattern"`
}

// LoadCatalog reads and validates a YAML shape catalog. A missing file is
// rdf.ErrNotFound, malformed YAML an *rdf.ParseError, and a semantically
// malformed shape a *CatalogError naming the shape. A catalog with any bad
// shape is rejected whole; partial catalogs are never applied.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", rdf.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data, path)
}

// ParseCatalog parses and validates catalog YAML.
func ParseCatalog(data []byte, path string) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &rdf.ParseError{Path: path, Line: 0, Msg: "invalid catalog YAML: " + err.Error()}
	}

	catalog := &Catalog{}
	for _, sd := range doc.Shapes {
		shape, err := buildShape(sd, doc.Prefixes)
		if err != nil {
			return nil, err
		}
		catalog.Shapes = append(catalog.Shapes, shape)
	}
	return catalog, nil
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func buildShape(sd shapeDoc, prefixes map[string]string) (Shape, error) {
	if sd.Name == "" {
		return Shape{}, &CatalogError{Msg: "shape with empty name"}
	}
	if sd.Target == "" {
		return Shape{}, &CatalogError{Shape: sd.Name, Msg: "missing target class"}
	}
	target, err := expandIRI(sd.Target, prefixes)
	if err != nil {
		return Shape{}, &CatalogError{Shape: sd.Name, Msg: err.Error()}
	}

	shape := Shape{Name: sd.Name, Target: target}

	for _, pd := range sd.Properties {
		if pd.Path == "" {
			return Shape{}, &CatalogError{Shape: sd.Name, Msg: "property constraint with empty path"}
		}
		path, err := expandIRI(pd.Path, prefixes)
		if err != nil {
			return Shape{}, &CatalogError{Shape: sd.Name, Msg: err.Error()}
		}
		if pd.MinCount < 0 {
			return Shape{}, &CatalogError{Shape: sd.Name, Msg: fmt.Sprintf("negative minCount for path %s", pd.Path)}
		}
		maxCount := Unbounded
		if pd.MaxCount != nil {
			maxCount = *pd.MaxCount
			if maxCount < 0 {
				return Shape{}, &CatalogError{Shape: sd.Name, Msg: fmt.Sprintf("negative maxCount for path %s", pd.Path)}
			}
			if maxCount < pd.MinCount {
				return Shape{}, &CatalogError{Shape: sd.Name,
					Msg: fmt.Sprintf("minCount %d exceeds maxCount %d for path %s", pd.MinCount, maxCount, pd.Path)}
			}
		}
		datatype := ""
		if pd.Datatype != "" {
			datatype, err = expandIRI(pd.Datatype, prefixes)
			if err != nil {
				return Shape{}, &CatalogError{Shape: sd.Name, Msg: err.Error()}
			}
		}
		shape.Properties = append(shape.Properties, PropertyConstraint{
			Path:     path,
			MinCount: pd.MinCount,
			MaxCount: maxCount,
			Datatype: datatype,
		})
	}

	for _, rd := range sd.Rules {
		rule, err := buildRule(sd.Name, rd, prefixes)
		if err != nil {
			return Shape{}, err
		}
		shape.Rules = append(shape.Rules, rule)
	}

	return shape, nil
}

func buildRule(shapeName string, rd ruleDoc, prefixes map[string]string) (Rule, error) {
	if rd.Name == "" {
		return Rule{}, &CatalogError{Shape: shapeName, Msg: "rule with empty name"}
	}
	severity := Severity(rd.Severity)
	if rd.Severity == "" {
		severity = SeverityViolation
	}
	if !severity.IsValid() {
		return Rule{}, &CatalogError{Shape: shapeName,
			Msg: fmt.Sprintf("rule %q has unknown severity %q", rd.Name, rd.Severity)}
	}
	if len(rd.Pattern) == 0 {
		return Rule{}, &CatalogError{Shape: shapeName, Msg: fmt.Sprintf("rule %q has an empty pattern", rd.Name)}
	}

	var pat pattern.Pattern
	for _, triple := range rd.Pattern {
		if len(triple) != 3 {
			return Rule{}, &CatalogError{Shape: shapeName,
				Msg: fmt.Sprintf("rule %q has a template with %d slots, want 3", rd.Name, len(triple))}
		}
		tp := pattern.TriplePattern{}
		slots := []*pattern.Slot{&tp.Subject, &tp.Predicate, &tp.Object}
		for i, token := range triple {
			slot, err := parseSlot(token, prefixes)
			if err != nil {
				return Rule{}, &CatalogError{Shape: shapeName,
					Msg: fmt.Sprintf("rule %q: %s", rd.Name, err)}
			}
			*slots[i] = slot
		}
		pat = append(pat, tp)
	}

	vars := pat.Vars()
	if !vars[pattern.This] {
		return Rule{}, &CatalogError{Shape: shapeName,
			Msg: fmt.Sprintf("rule %q never references the target entity variable %q", rd.Name, pattern.This)}
	}
	for _, m := range placeholderRe.FindAllStringSubmatch(rd.Message, -1) {
		if !vars[m[1]] {
			return Rule{}, &CatalogError{Shape: shapeName,
				Msg: fmt.Sprintf("rule %q message references unbound variable %q", rd.Name, m[1])}
		}
	}

	return Rule{Name: rd.Name, Severity: severity, Message: rd.Message, Pattern: pat}, nil
}

// parseSlot interprets one pattern token.
func parseSlot(token string, prefixes map[string]string) (pattern.Slot, error) {
	switch {
	case token == "":
		return pattern.Slot{}, fmt.Errorf("empty pattern slot")
	case token == pattern.This:
		return pattern.Var(pattern.This), nil
	case strings.HasPrefix(token, "?"):
		name := token[1:]
		if name == "" {
			return pattern.Slot{}, fmt.Errorf("variable with empty name")
		}
		return pattern.Var(name), nil
	case token == "true" || token == "false":
		return pattern.Fixed(rdf.Boolean(token == "true")), nil
	case strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`) && len(token) >= 2:
		return pattern.Fixed(rdf.String(token[1 : len(token)-1])), nil
	default:
		if n, err := strconv.ParseInt(token, 10, 64); err == nil {
			return pattern.Fixed(rdf.Integer(n)), nil
		}
		iri, err := expandIRI(token, prefixes)
		if err != nil {
			return pattern.Slot{}, err
		}
		return pattern.IRISlot(iri), nil
	}
}

// expandIRI resolves "<iri>", "prefix:local", or the "a" keyword.
func expandIRI(token string, prefixes map[string]string) (string, error) {
	if token == "a" {
		return w3c.RDFType, nil
	}
	if strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">") {
		return token[1 : len(token)-1], nil
	}
	i := strings.Index(token, ":")
	if i < 0 {
		return "", fmt.Errorf("expected IRI or prefixed name, got %q", token)
	}
	// Absolute IRIs pass through.
	if strings.Contains(token, "://") {
		return token, nil
	}
	ns, ok := prefixes[token[:i]]
	if !ok {
		return "", fmt.Errorf("undeclared prefix %q", token[:i])
	}
	return ns + token[i+1:], nil
}
