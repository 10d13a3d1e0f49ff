package logger_test

import (
	"github.com/maxkimambo/takus/internal/logger"
)

func Example_channels() {
	logger.Setup(false, false, false)

	// User-facing messages go to stdout
	logger.User.Startingf("Running %s", "build")
	logger.User.Successf("Completed %d task(s)", 3)

	// Operational logs go to stderr, with fields
	logger.Op.WithFields(map[string]interface{}{
		"task": "build",
		"dir":  "/src",
	}).Debug("$ go build ./...")
}
