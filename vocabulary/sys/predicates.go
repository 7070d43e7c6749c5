package sys

// Structural predicates relate devices, ports, and cables.
const (
	// HasPort links a device to one of its physical ports.
	HasPort = Namespace + "hasPort"

	// BelongsToDevice links a port back to its owning device.
	BelongsToDevice = Namespace + "belongsToDevice"

	// ConnectsVia links a source port to the cable plugged into it.
	ConnectsVia = Namespace + "connectsVia"

	// ConnectsTo links a cable to the destination port.
	ConnectsTo = Namespace + "connectsTo"
)

// Attribute predicates carry literal-valued device and port properties.
const (
	// PhysicalForm is the connector form factor of a port (e.g. "USB-C").
	PhysicalForm = Namespace + "physicalForm"

	// PortPriority is the integer switching priority of a KVM port.
	PortPriority = Namespace + "portPriority"

	// IsBidirectional marks a cable as carrying signal both ways.
	IsBidirectional = Namespace + "isBidirectional"

	// IsUptimeCritical marks a host whose connectivity must not be
	// interrupted by KVM switching.
	IsUptimeCritical = Namespace + "isUptimeCritical"

	// Environment is the deployment environment of an entity
	// (dev, staging, prod).
	Environment = Namespace + "environment"
)
