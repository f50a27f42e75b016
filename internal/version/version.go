// ABOUTME: Version constants for the pcmcast binaries
// ABOUTME: Reported by the monitor endpoints and mDNS advertisement
package version

const (
	// Version is the software version.
	Version = "0.1.0"

	// Product is the product name.
	Product = "pcmcast"

	// Manufacturer identifies the project.
	Manufacturer = "Pcmcast Project"
)
