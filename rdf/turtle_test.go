package rdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkllon/topology/vocabulary/sys"
	"github.com/nkllon/topology/vocabulary/w3c"
)

const sampleDoc = `
@prefix : <http://nkllon.com/sys#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

# A small deployment fragment.
:Host rdfs:subClassOf :Device .

:MacM4 a :Host ;
    :isUptimeCritical true ;
    :hasPort :MacM4Port1, :MacM4Port2 .

:MacM4Port1 a :Port ;
    :belongsToDevice :MacM4 ;
    :physicalForm "USB-C" ;
    :portPriority 1 .
`

func TestParseSampleDocument(t *testing.T) {
	store, err := ParseString(sampleDoc)
	require.NoError(t, err)

	assert.Equal(t, 9, store.Len())

	mac := sys.Namespace + "MacM4"
	assert.True(t, store.Contains(Statement{
		Subject:   mac,
		Predicate: w3c.RDFType,
		Object:    IRI(sys.ClassHost),
	}), "'a' keyword should expand to rdf:type")

	assert.True(t, store.Contains(Statement{
		Subject:   mac,
		Predicate: sys.IsUptimeCritical,
		Object:    Boolean(true),
	}), "bare true should parse as an xsd:boolean literal")

	assert.True(t, store.Contains(Statement{
		Subject:   mac,
		Predicate: sys.HasPort,
		Object:    IRI(sys.Namespace + "MacM4Port2"),
	}), "object lists with ',' should yield one statement per object")

	port := sys.Namespace + "MacM4Port1"
	assert.True(t, store.Contains(Statement{
		Subject:   port,
		Predicate: sys.PhysicalForm,
		Object:    String("USB-C"),
	}))
	assert.True(t, store.Contains(Statement{
		Subject:   port,
		Predicate: sys.PortPriority,
		Object:    Integer(1),
	}), "bare digits should parse as an xsd:integer literal")
}

func TestParseTypedLiteral(t *testing.T) {
	store, err := ParseString(`
@prefix : <http://nkllon.com/sys#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
:Cable1 :isBidirectional "true"^^xsd:boolean .
`)
	require.NoError(t, err)
	assert.True(t, store.Contains(Statement{
		Subject:   sys.Namespace + "Cable1",
		Predicate: sys.IsBidirectional,
		Object:    Boolean(true),
	}))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		line int
	}{
		{"undeclared prefix", ":X a :Y .", 1},
		{"unterminated string", "@prefix : <http://x#> .\n:X :p \"oops .", 2},
		{"missing terminator", "@prefix : <http://x#> .\n:X a :Y\n@prefix q: <http://q#> .", 3},
		{"unterminated iri", "<http://x#s> <http://x#p <http://x#o> .", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.doc)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.line, parseErr.Line)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.ttl"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadFilesMerges(t *testing.T) {
	dir := t.TempDir()
	ontology := filepath.Join(dir, "ontology.ttl")
	data := filepath.Join(dir, "data.ttl")

	require.NoError(t, os.WriteFile(ontology, []byte(`
@prefix : <http://nkllon.com/sys#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
:Host rdfs:subClassOf :Device .
`), 0o644))
	require.NoError(t, os.WriteFile(data, []byte(`
@prefix : <http://nkllon.com/sys#> .
:MacM4 a :Host .
`), 0o644))

	store, err := LoadFiles(ontology, data)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
}

func TestRoundTripNTriples(t *testing.T) {
	store, err := ParseString(sampleDoc)
	require.NoError(t, err)

	out := WriteNTriples(store)
	reparsed, err := ParseString(out)
	require.NoError(t, err)
	assert.True(t, store.Equal(reparsed), "N-Triples output should reparse to the same statement set")
}

func TestRoundTripTurtle(t *testing.T) {
	store, err := ParseString(sampleDoc)
	require.NoError(t, err)

	w := NewTurtleWriter()
	w.SetPrefix("sys", sys.Namespace)
	out := w.Write(store)

	reparsed, err := ParseString(out)
	require.NoError(t, err)
	assert.True(t, store.Equal(reparsed), "Turtle output should reparse to the same statement set")
}

func TestTurtleWriterOverlappingPrefixes(t *testing.T) {
	store := NewStore(NewStatement(
		"http://example.com/v/core-Port",
		"http://example.com/v/core-label",
		String("front"),
	))

	w := NewTurtleWriter()
	w.SetPrefix("v", "http://example.com/v/")
	w.SetPrefix("core", "http://example.com/v/core-")

	// The longer namespace must win every run, not whichever the prefix
	// map happens to yield first.
	for i := 0; i < 20; i++ {
		out := w.Write(store)
		assert.Contains(t, out, "core:Port")
		assert.Contains(t, out, "core:label")
		assert.NotContains(t, out, "v:core-Port")
	}
}
