package version

var (
	// Version is the current application version.
	// It is populated by the build system (ldflags) and falls back to "dev".
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)
