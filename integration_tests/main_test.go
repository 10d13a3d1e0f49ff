package integration

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/maxkimambo/takus/integration_tests/internal/testutil"
)

var takusBinary string

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		fmt.Println("Skipping integration tests in short mode")
		os.Exit(0)
	}

	var buildDir string
	takusBinary = testutil.GetTakusBinaryPath()
	if takusBinary == "" {
		dir, err := os.MkdirTemp("", "takus-bin-")
		if err != nil {
			fmt.Printf("failed to create binary directory: %v\n", err)
			os.Exit(1)
		}
		buildDir = dir
		takusBinary = filepath.Join(dir, "takus")

		build := exec.Command("go", "build", "-o", takusBinary, "..")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			fmt.Printf("takus binary not found and could not be built (set %s): %v\n", testutil.BinaryEnv, err)
			os.Exit(1)
		}
	}

	code := m.Run()
	if buildDir != "" {
		os.RemoveAll(buildDir)
	}
	os.Exit(code)
}
