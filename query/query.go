// Package query provides the canned topology queries exposed by the CLI:
// bidirectional cables, audio-interface connections, uptime-critical hosts,
// and the device inventory. All of them run on the pattern matcher.
package query

import (
	"sort"

	"github.com/nkllon/topology/ontology"
	"github.com/nkllon/topology/pattern"
	"github.com/nkllon/topology/rdf"
	"github.com/nkllon/topology/vocabulary/sys"
	"github.com/nkllon/topology/vocabulary/w3c"
)

// BidirectionalCable is one bidirectional cable with the devices and
// connector forms on each end.
type BidirectionalCable struct {
	Cable     string
	SrcDevice string
	DstDevice string
	SrcForm   string
	DstForm   string
}

// BidirectionalCables finds all bidirectional cables and their endpoint
// devices.
func BidirectionalCables(store *rdf.Store) ([]BidirectionalCable, error) {
	p := pattern.Pattern{
		{Subject: pattern.Var("cable"), Predicate: pattern.IRISlot(sys.IsBidirectional), Object: pattern.Fixed(rdf.Boolean(true))},
		{Subject: pattern.Var("srcPort"), Predicate: pattern.IRISlot(sys.ConnectsVia), Object: pattern.Var("cable")},
		{Subject: pattern.Var("cable"), Predicate: pattern.IRISlot(sys.ConnectsTo), Object: pattern.Var("dstPort")},
		{Subject: pattern.Var("srcPort"), Predicate: pattern.IRISlot(sys.BelongsToDevice), Object: pattern.Var("srcDevice")},
		{Subject: pattern.Var("srcPort"), Predicate: pattern.IRISlot(sys.PhysicalForm), Object: pattern.Var("srcForm")},
		{Subject: pattern.Var("dstPort"), Predicate: pattern.IRISlot(sys.BelongsToDevice), Object: pattern.Var("dstDevice")},
		{Subject: pattern.Var("dstPort"), Predicate: pattern.IRISlot(sys.PhysicalForm), Object: pattern.Var("dstForm")},
	}

	bindings, err := pattern.NewMatcher().Match(store, p, nil)
	if err != nil {
		return nil, err
	}

	out := make([]BidirectionalCable, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, BidirectionalCable{
			Cable:     b["cable"].LocalName(),
			SrcDevice: b["srcDevice"].LocalName(),
			DstDevice: b["dstDevice"].LocalName(),
			SrcForm:   b["srcForm"].LocalName(),
			DstForm:   b["dstForm"].LocalName(),
		})
	}
	return out, nil
}

// AudioConnection is one hop from an audio interface through a cable to the
// device on the far end.
type AudioConnection struct {
	AudioDevice     string
	Cable           string
	ConnectedDevice string
}

// AudioConnections finds every connection leaving an audio interface.
func AudioConnections(store *rdf.Store) ([]AudioConnection, error) {
	p := pattern.Pattern{
		{Subject: pattern.Var("audio"), Predicate: pattern.IRISlot(w3c.RDFType), Object: pattern.IRISlot(sys.ClassAudioInterface)},
		{Subject: pattern.Var("audio"), Predicate: pattern.IRISlot(sys.HasPort), Object: pattern.Var("port")},
		{Subject: pattern.Var("port"), Predicate: pattern.IRISlot(sys.ConnectsVia), Object: pattern.Var("cable")},
		{Subject: pattern.Var("cable"), Predicate: pattern.IRISlot(sys.ConnectsTo), Object: pattern.Var("otherPort")},
		{Subject: pattern.Var("otherPort"), Predicate: pattern.IRISlot(sys.BelongsToDevice), Object: pattern.Var("device")},
	}

	bindings, err := pattern.NewMatcher().Match(store, p, nil)
	if err != nil {
		return nil, err
	}

	out := make([]AudioConnection, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, AudioConnection{
			AudioDevice:     b["audio"].LocalName(),
			Cable:           b["cable"].LocalName(),
			ConnectedDevice: b["device"].LocalName(),
		})
	}
	return out, nil
}

// UptimeCriticalHost is an uptime-critical host with the KVM port it reaches
// and that port's switching priority.
type UptimeCriticalHost struct {
	Host     string
	KVMPort  string
	Priority string
}

// UptimeCriticalHosts finds uptime-critical hosts and their KVM port
// priorities.
func UptimeCriticalHosts(store *rdf.Store) ([]UptimeCriticalHost, error) {
	p := pattern.Pattern{
		{Subject: pattern.Var("host"), Predicate: pattern.IRISlot(sys.IsUptimeCritical), Object: pattern.Fixed(rdf.Boolean(true))},
		{Subject: pattern.Var("host"), Predicate: pattern.IRISlot(sys.HasPort), Object: pattern.Var("hostPort")},
		{Subject: pattern.Var("hostPort"), Predicate: pattern.IRISlot(sys.ConnectsVia), Object: pattern.Var("cable")},
		{Subject: pattern.Var("cable"), Predicate: pattern.IRISlot(sys.ConnectsTo), Object: pattern.Var("kvmPort")},
		{Subject: pattern.Var("kvmPort"), Predicate: pattern.IRISlot(sys.PortPriority), Object: pattern.Var("priority")},
	}

	bindings, err := pattern.NewMatcher().Match(store, p, nil)
	if err != nil {
		return nil, err
	}

	out := make([]UptimeCriticalHost, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, UptimeCriticalHost{
			Host:     b["host"].LocalName(),
			KVMPort:  b["kvmPort"].LocalName(),
			Priority: b["priority"].LocalName(),
		})
	}
	return out, nil
}

// Device is one typed device in the inventory.
type Device struct {
	Name string
	Type string
}

// AllDevices lists every entity under the Device subclass closure, excluding
// the Device class itself, sorted by type then name.
func AllDevices(store *rdf.Store) []Device {
	idx := ontology.NewIndex(store, nil)

	var out []Device
	for _, entity := range idx.EntitiesOfType(sys.ClassDevice) {
		for _, typ := range idx.TypesOf(entity) {
			if typ == sys.ClassDevice {
				continue
			}
			out = append(out, Device{
				Name: rdf.LocalName(entity),
				Type: rdf.LocalName(typ),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out
}
