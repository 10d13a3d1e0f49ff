package taskmanager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecutionContext(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	ec, err := NewExecutionContext("")
	require.NoError(t, err)

	assert.Equal(t, wd, ec.WorkingDir())
	assert.Equal(t, DefaultShell, ec.Shell())
}

func TestExecutionContext_Shell(t *testing.T) {
	ec := NewExecutionContextAt("/work", "bash")
	assert.Equal(t, "bash", ec.Shell())
}

func TestExecutionContext_Resolve(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work")
	ec := NewExecutionContextAt(root, "")

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"empty uses working dir", "", root},
		{"relative joined to working dir", "web", filepath.Join(root, "web")},
		{"relative with parent", "../other", filepath.Join(string(filepath.Separator), "other")},
		{"absolute kept", filepath.Join(string(filepath.Separator), "tmp", "x"), filepath.Join(string(filepath.Separator), "tmp", "x")},
		{"absolute cleaned", "/tmp/x/../y", filepath.Clean("/tmp/y")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ec.Resolve(tt.dir))
		})
	}
}
