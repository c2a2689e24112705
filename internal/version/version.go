package version

import "runtime"

const (
	AppName        = "Bazaar Bot"
	AppDescription = "Discord bot with slash and prefix commands for Hypixel SkyBlock bazaar prices."
)

// BuildDate is set at link time with -ldflags "-X .../internal/version.BuildDate=...".
var BuildDate = "unknown"

// GoVersion is the toolchain the binary was built with.
var GoVersion = runtime.Version()
