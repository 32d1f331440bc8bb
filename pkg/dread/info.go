package dread

// Library identity.
const (
	Version  = "0.1"
	Codename = "joyfull-dread"
)

// BuildInfo identifies the library release.
type BuildInfo struct {
	Version  string
	Codename string
}

// Info returns the library version and codename.
func Info() BuildInfo {
	return BuildInfo{Version: Version, Codename: Codename}
}
