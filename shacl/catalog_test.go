package shacl

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/vocabulary/sys"
	"github.com/nkllon/topology/vocabulary/w3c"
)

const validCatalog = `
prefixes:
  sys: "http://nkllon.com/sys#"
  xsd: "http://www.w3.org/2001/XMLSchema#"
shapes:
  - name: PortShape
    target: sys:Port
    properties:
      - path: sys:belongsToDevice
        minCount: 1
        maxCount: 1
      - path: sys:physicalForm
        minCount: 1
        datatype: xsd:string
    rules:
      - name: dangling-cable
        severity: Warning
        message: "Port {this} connects via {cable} which reaches no port"
        pattern:
          - [this, sys:connectsVia, "?cable"]
          - ["?cable", a, sys:Cable]
`

func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog([]byte(validCatalog), "shapes.yaml")
	require.NoError(t, err)
	require.Len(t, catalog.Shapes, 1)

	shape := catalog.Shapes[0]
	assert.Equal(t, "PortShape", shape.Name)
	assert.Equal(t, sys.ClassPort, shape.Target)

	require.Len(t, shape.Properties, 2)
	assert.Equal(t, sys.BelongsToDevice, shape.Properties[0].Path)
	assert.Equal(t, 1, shape.Properties[0].MinCount)
	assert.Equal(t, 1, shape.Properties[0].MaxCount)
	assert.Equal(t, Unbounded, shape.Properties[1].MaxCount, "omitted maxCount should be unbounded")
	assert.Equal(t, w3c.XSDString, shape.Properties[1].Datatype)

	require.Len(t, shape.Rules, 1)
	rule := shape.Rules[0]
	assert.Equal(t, SeverityWarning, rule.Severity)
	require.Len(t, rule.Pattern, 2)
	assert.Equal(t, w3c.RDFType, rule.Pattern[1].Predicate.Term.Value, "'a' keyword should expand to rdf:type")
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantShape string
	}{
		{
			name: "bounds inverted",
			doc: `
prefixes: {sys: "http://nkllon.com/sys#"}
shapes:
  - name: BadBounds
    target: sys:Port
    properties:
      - {path: sys:hasPort, minCount: 3, maxCount: 1}
`,
			wantShape: "BadBounds",
		},
		{
			name: "rule without this",
			doc: `
prefixes: {sys: "http://nkllon.com/sys#"}
shapes:
  - name: NoThis
    target: sys:Port
    rules:
      - name: floating
        message: "no anchor"
        pattern:
          - ["?a", sys:connectsVia, "?b"]
`,
			wantShape: "NoThis",
		},
		{
			name: "message references unbound variable",
			doc: `
prefixes: {sys: "http://nkllon.com/sys#"}
shapes:
  - name: BadMessage
    target: sys:Port
    rules:
      - name: missing-var
        message: "saw {ghost}"
        pattern:
          - [this, sys:connectsVia, "?cable"]
`,
			wantShape: "BadMessage",
		},
		{
			name: "unknown severity",
			doc: `
prefixes: {sys: "http://nkllon.com/sys#"}
shapes:
  - name: BadSeverity
    target: sys:Port
    rules:
      - name: r
        severity: Fatal
        message: "x"
        pattern:
          - [this, sys:connectsVia, "?c"]
`,
			wantShape: "BadSeverity",
		},
		{
			name: "undeclared prefix",
			doc: `
shapes:
  - name: BadPrefix
    target: sys:Port
`,
			wantShape: "BadPrefix",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tc.doc), "shapes.yaml")
			require.Error(t, err)

			var catErr *CatalogError
			require.ErrorAs(t, err, &catErr)
			assert.Equal(t, tc.wantShape, catErr.Shape)
		})
	}
}

func TestParseCatalogMalformedYAML(t *testing.T) {
	_, err := ParseCatalog([]byte("shapes: ["), "shapes.yaml")
	require.Error(t, err)

	var parseErr *rdf.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestLoadCatalogMissing(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, rdf.ErrNotFound))
}

func TestParseSlotTokens(t *testing.T) {
	prefixes := map[string]string{"sys": sys.Namespace}

	slot, err := parseSlot(`"USB-C"`, prefixes)
	require.NoError(t, err)
	assert.Equal(t, rdf.String("USB-C"), slot.Term)

	slot, err = parseSlot("42", prefixes)
	require.NoError(t, err)
	assert.Equal(t, rdf.Integer(42), slot.Term)

	slot, err = parseSlot("false", prefixes)
	require.NoError(t, err)
	assert.Equal(t, rdf.Boolean(false), slot.Term)

	slot, err = parseSlot("<http://nkllon.com/sys#Port>", prefixes)
	require.NoError(t, err)
	assert.Equal(t, rdf.IRI(sys.ClassPort), slot.Term)

	slot, err = parseSlot("?port", prefixes)
	require.NoError(t, err)
	assert.Equal(t, "port", slot.Var)

	_, err = parseSlot("nope", prefixes)
	assert.Error(t, err, "bare token that is neither literal nor name should fail")
}
