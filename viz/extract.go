// Package viz extracts a device-level view of a topology graph and renders
// it as an interactive force-layout HTML page.
package viz

import (
	"github.com/nkllon/topology/ontology"
	"github.com/nkllon/topology/pattern"
	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/vocabulary/sys"
)

// Node is one device in the rendered graph.
type Node struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Edge is one device-to-device connection, labeled with the cable.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// Graph is the extracted device-level topology.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"links"`
}

// Extract builds the device-level graph: one node per entity under the
// Device subclass closure, one edge per port-cable-port path between two
// devices.
func Extract(store *rdf.Store) (*Graph, error) {
	idx := ontology.NewIndex(store, nil)
	g := &Graph{}

	for _, entity := range idx.EntitiesOfType(sys.ClassDevice) {
		nodeType := ""
		for _, typ := range idx.TypesOf(entity) {
			if typ != sys.ClassDevice {
				nodeType = rdf.LocalName(typ)
				break
			}
		}
		id := rdf.LocalName(entity)
		g.Nodes = append(g.Nodes, Node{ID: id, Type: nodeType, Label: id})
	}

	p := pattern.Pattern{
		{Subject: pattern.Var("srcPort"), Predicate: pattern.IRISlot(sys.BelongsToDevice), Object: pattern.Var("src")},
		{Subject: pattern.Var("srcPort"), Predicate: pattern.IRISlot(sys.ConnectsVia), Object: pattern.Var("cable")},
		{Subject: pattern.Var("cable"), Predicate: pattern.IRISlot(sys.ConnectsTo), Object: pattern.Var("dstPort")},
		{Subject: pattern.Var("dstPort"), Predicate: pattern.IRISlot(sys.BelongsToDevice), Object: pattern.Var("dst")},
	}
	bindings, err := pattern.NewMatcher().Match(store, p, nil)
	if err != nil {
		return nil, err
	}
	for _, b := range bindings {
		g.Edges = append(g.Edges, Edge{
			Source: b["src"].LocalName(),
			Target: b["dst"].LocalName(),
			Label:  b["cable"].LocalName(),
		})
	}

	return g, nil
}
