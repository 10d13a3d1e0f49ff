package testutil

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Result is the outcome of one takus invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// SetupTestWorkspace copies the scenario directory into a fresh temporary
// directory and returns its path. The directory is removed when the test ends
// unless PRESERVE_TEST_WORKSPACE is "true".
func SetupTestWorkspace(t *testing.T, scenarioPath string) string {
	t.Helper()

	workspaceDir, err := os.MkdirTemp("", "takus-"+filepath.Base(scenarioPath)+"-")
	require.NoError(t, err, "failed to create test workspace directory")

	fs := afero.NewOsFs()
	err = afero.Walk(fs, scenarioPath, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(scenarioPath, path)
		if err != nil {
			return err
		}
		target := filepath.Join(workspaceDir, rel)
		if info.IsDir() {
			return fs.MkdirAll(target, 0o755)
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		return afero.WriteFile(fs, target, data, info.Mode().Perm())
	})
	require.NoError(t, err, "failed to copy scenario to workspace")

	t.Cleanup(func() {
		if os.Getenv("PRESERVE_TEST_WORKSPACE") == "true" {
			t.Logf("PRESERVE_TEST_WORKSPACE is set to true, workspace kept in %s", workspaceDir)
			return
		}
		if err := os.RemoveAll(workspaceDir); err != nil {
			t.Logf("Warning: failed to clean up workspace directory %s: %v", workspaceDir, err)
		}
	})

	return workspaceDir
}

// RunTakus runs binary with args inside dir. env entries are added to the
// test process environment.
func RunTakus(t *testing.T, binary, dir string, env []string, args ...string) Result {
	t.Helper()

	cmd := exec.Command(binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		require.NoError(t, err, "failed to start takus")
	}

	t.Logf("takus %v exited with %d", args, result.ExitCode)
	return result
}
