// ABOUTME: Version information for tonegen binaries
// ABOUTME: Product identification constants shown in logs and the TUI
package version

// Version is overridden at build time with -ldflags "-X ...version.Version=..."
var Version = "0.1.0"

const (
	Product      = "tonegen"
	Manufacturer = "tonegen contributors"
)
