// Package version holds build identification set at link time via
// -ldflags "-X ...".
package version

var (
	Version   = "dev"
	BuildTime = "unknown"
)
