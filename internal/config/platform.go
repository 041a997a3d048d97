package config

import "runtime"

// currentGOOS is a var so tests can exercise other platforms.
var currentGOOS = runtime.GOOS

// DefaultDBPath returns where the BitMeter capture service keeps its database on goos.
func DefaultDBPath(goos string) string {
	switch goos {
	case "windows":
		return `C:\ProgramData\BitMeterOS\bitmeter.db`
	case "darwin":
		return "/Library/Application Support/BitMeter/bitmeter.db"
	default:
		return "/var/lib/bitmeter/bitmeter.db"
	}
}

// Capabilities flags which window features a platform's desktop shell supports.
// The terminal graph applies neither, but the preferences form only offers
// settings the platform could honour.
type Capabilities struct {
	Opacity      bool
	ClickThrough bool
}

// CapabilitiesFor returns the capabilities of goos.
func CapabilitiesFor(goos string) Capabilities {
	switch goos {
	case "windows":
		return Capabilities{Opacity: true, ClickThrough: true}
	case "darwin":
		return Capabilities{Opacity: true}
	default:
		return Capabilities{}
	}
}

// CurrentCapabilities returns the capabilities of the running platform.
func CurrentCapabilities() Capabilities {
	return CapabilitiesFor(currentGOOS)
}
