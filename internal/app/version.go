package app

import "fmt"

// Set at build time, e.g.
// go build -ldflags "-X github.com/heartmarshall/bookloan-backend/internal/app.Version=1.2.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is logged at startup and reported by /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
