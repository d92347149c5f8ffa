package svgrender

// Version identifiers of the render interface, published for
// compatibility reporting by callers. They are constants with
// no runtime behavior attached.
const (
	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0

	// Version is the version string, "MAJOR.MINOR.PATCH".
	Version = "0.1.0"
)
