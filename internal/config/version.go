package config

// Build metadata, set with -ldflags "-X github.com/edirooss/streamforge/internal/config.Version=...".
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)
