package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkllon/topology/rdf"
)

func TestExtract(t *testing.T) {
	store, err := rdf.ParseString(`
@prefix : <http://nkllon.com/sys#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

:Host rdfs:subClassOf :Device .
:KVMSwitch rdfs:subClassOf :Device .

:MacM4 a :Host ;
    :hasPort :MacPort .
:MacPort :belongsToDevice :MacM4 ;
    :connectsVia :Cable1 .
:Cable1 :connectsTo :KVMPort .
:KVM1 a :KVMSwitch ;
    :hasPort :KVMPort .
:KVMPort :belongsToDevice :KVM1 .
`)
	require.NoError(t, err)

	g, err := Extract(store)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, Node{ID: "MacM4", Type: "Host", Label: "MacM4"}, g.Nodes[0])
	assert.Equal(t, Node{ID: "KVM1", Type: "KVMSwitch", Label: "KVM1"}, g.Nodes[1])

	require.Len(t, g.Edges, 1)
	assert.Equal(t, Edge{Source: "MacM4", Target: "KVM1", Label: "Cable1"}, g.Edges[0])
}

func TestRenderHTML(t *testing.T) {
	g := &Graph{
		Nodes: []Node{{ID: "MacM4", Type: "Host", Label: "MacM4"}},
		Edges: []Edge{},
	}

	out, err := RenderHTML(g)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "d3.v7.min.js"), "page should load D3")
	assert.True(t, strings.Contains(out, `"MacM4"`), "page should embed the graph data")
}
