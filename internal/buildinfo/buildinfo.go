package buildinfo

// Version metadata stamped into hazcube release binaries with -ldflags.
// Empty for local builds; the version command then falls back to the
// module's embedded build info.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
