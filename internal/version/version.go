package version

// Version is the current version of the dashboard.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/mt5-dashboard/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "main"

// BridgeProtocol is the terminal bridge protocol version this client speaks.
const BridgeProtocol = "1.2.0"

// GetVersion returns the current version of the dashboard.
func GetVersion() string {
	return Version
}
