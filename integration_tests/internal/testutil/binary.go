package testutil

import (
	"os"
	"path/filepath"
)

// BinaryEnv names the environment variable that points the tests at a
// prebuilt takus binary.
const BinaryEnv = "TAKUS_BINARY"

// GetTakusBinaryPath returns the path to the takus binary for integration tests.
// It checks multiple locations in order of preference:
// 1. $TAKUS_BINARY
// 2. Parent directory (../takus), where "go build" in the repository root puts it
// 3. bin directory (../bin/takus)
// It returns an empty string when no binary exists.
func GetTakusBinaryPath() string {
	if path := os.Getenv(BinaryEnv); path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}

	for _, candidate := range []string{
		filepath.Join("..", "takus"),
		filepath.Join("..", "bin", "takus"),
	} {
		if _, err := os.Stat(candidate); err == nil {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return candidate
			}
			return abs
		}
	}

	return ""
}
