// Package sys provides IRI constants for the nkllon hardware-topology
// vocabulary. The vocabulary describes physical devices, their ports, and the
// cables that connect them.
package sys

// Namespace is the base IRI prefix for nkllon system vocabulary terms.
const Namespace = "http://nkllon.com/sys#"

// Class IRIs define the types of topology entities.
const (
	// ClassDevice is the root class for all physical devices.
	ClassDevice = Namespace + "Device"

	// ClassHost represents a compute host (workstation, server).
	// Extends: ClassDevice
	ClassHost = Namespace + "Host"

	// ClassKVMSwitch represents a KVM switch shared between hosts.
	// Extends: ClassDevice
	ClassKVMSwitch = Namespace + "KVMSwitch"

	// ClassAudioInterface represents an external audio interface.
	// Extends: ClassDevice
	ClassAudioInterface = Namespace + "AudioInterface"

	// ClassSmartDisplay represents a display with an eARC return path.
	// Extends: ClassDevice
	ClassSmartDisplay = Namespace + "SmartDisplay"

	// ClassPreAmp represents an audio pre-amplifier.
	// Extends: ClassDevice
	ClassPreAmp = Namespace + "PreAmp"

	// ClassPort represents a physical connector on a device.
	ClassPort = Namespace + "Port"

	// ClassCable represents a physical cable between two ports.
	ClassCable = Namespace + "Cable"
)
