package config

import (
	"os"
	"strings"
)

// Development reports whether DEVELOPMENT is set to anything but "", "0"
// or "false". It switches both binaries to debug logging.
func Development() bool {
	switch strings.ToLower(os.Getenv("DEVELOPMENT")) {
	case "", "0", "false":
		return false
	default:
		return true
	}
}

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Port returns the archive listen address, ":8080" when APP_PORT is unset.
func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	return port
}
