package buildinfo

// Set via -ldflags "-X github.com/cleared-dev/reimburse/internal/buildinfo.Version=..." at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
