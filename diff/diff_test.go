package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/vocabulary/sys"
)

func mustParse(t *testing.T, doc string) *rdf.Store {
	t.Helper()
	store, err := rdf.ParseString(doc)
	require.NoError(t, err)
	return store
}

// The cable drift scenario: B adds an isBidirectional statement to X.
func TestCompareCableDrift(t *testing.T) {
	a := mustParse(t, `
@prefix : <http://nkllon.com/sys#> .
:X a :Cable .
`)
	b := mustParse(t, `
@prefix : <http://nkllon.com/sys#> .
:X a :Cable ;
    :isBidirectional true .
`)

	result := Compare(a, b)
	assert.Equal(t, 1, result.Common.Len())
	assert.Equal(t, 0, result.OnlyA.Len())
	require.Equal(t, 1, result.OnlyB.Len())
	assert.True(t, result.OnlyB.Contains(rdf.Statement{
		Subject:   sys.Namespace + "X",
		Predicate: sys.IsBidirectional,
		Object:    rdf.Boolean(true),
	}))

	changes := result.EntityChanges()
	require.Contains(t, changes, sys.Namespace+"X")
	change := changes[sys.Namespace+"X"]
	assert.Equal(t, Changed, change.Kind,
		"an entity present in both stores is Changed, not Added")
	assert.Equal(t, []string{sys.IsBidirectional}, change.Predicates)
}

func TestCompareSymmetry(t *testing.T) {
	a := mustParse(t, `
@prefix : <http://nkllon.com/sys#> .
:MacM4 a :Host ;
    :isUptimeCritical true .
:KVM1 a :KVMSwitch .
`)
	b := mustParse(t, `
@prefix : <http://nkllon.com/sys#> .
:MacM4 a :Host ;
    :isUptimeCritical false .
:LGC3 a :SmartDisplay .
`)

	ab := Compare(a, b)
	ba := Compare(b, a)

	assert.True(t, ab.Common.Equal(ba.Common), "common set must be symmetric")
	assert.True(t, ab.OnlyA.Equal(ba.OnlyB), "onlyA of diff(A,B) must equal onlyB of diff(B,A)")
	assert.True(t, ab.OnlyB.Equal(ba.OnlyA))
}

func TestCompareRoundTrip(t *testing.T) {
	a := mustParse(t, `
@prefix : <http://nkllon.com/sys#> .
:MacM4 a :Host .
:P a :Port ;
    :belongsToDevice :MacM4 .
`)
	b := mustParse(t, `
@prefix : <http://nkllon.com/sys#> .
:MacM4 a :Host .
:KVM1 a :KVMSwitch .
`)

	result := Compare(a, b)
	assert.True(t, rdf.Merge(result.Common, result.OnlyA).Equal(a),
		"merge(common, onlyA) must reproduce A")
	assert.True(t, rdf.Merge(result.Common, result.OnlyB).Equal(b),
		"merge(common, onlyB) must reproduce B")
}

func TestEntityChangesClassification(t *testing.T) {
	a := mustParse(t, `
@prefix : <http://nkllon.com/sys#> .
:Kept a :Host .
:Gone a :KVMSwitch ;
    :portPriority 1 .
:Moved a :Host ;
    :environment "dev" .
:Trimmed a :Host ;
    :environment "staging" .
`)
	b := mustParse(t, `
@prefix : <http://nkllon.com/sys#> .
:Kept a :Host .
:New a :SmartDisplay .
:Moved a :Host ;
    :environment "prod" .
:Trimmed a :Host .
`)

	changes := Compare(a, b).EntityChanges()
	require.Len(t, changes, 4)

	assert.Equal(t, Removed, changes[sys.Namespace+"Gone"].Kind)
	assert.Equal(t, Added, changes[sys.Namespace+"New"].Kind)

	moved := changes[sys.Namespace+"Moved"]
	assert.Equal(t, Changed, moved.Kind)
	assert.Equal(t, []string{sys.Environment}, moved.Predicates,
		"only the differing predicate should be recorded")

	trimmed := changes[sys.Namespace+"Trimmed"]
	assert.Equal(t, Changed, trimmed.Kind,
		"an entity that only lost statements but is still present is Changed")
	assert.Equal(t, []string{sys.Environment}, trimmed.Predicates)

	assert.NotContains(t, changes, sys.Namespace+"Kept",
		"unchanged entities do not appear")
}

func TestCompareIdentical(t *testing.T) {
	a := mustParse(t, `
@prefix : <http://nkllon.com/sys#> .
:X a :Cable .
`)

	result := Compare(a, a)
	assert.Equal(t, 1, result.Common.Len())
	assert.Equal(t, 0, result.OnlyA.Len())
	assert.Equal(t, 0, result.OnlyB.Len())
	assert.Empty(t, result.EntityChanges())
}
