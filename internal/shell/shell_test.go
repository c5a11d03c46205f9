package shell

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchMissingShell(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "git", "bin", "bash")

	err := ProcessLauncher{}.Launch(missing, []string{"-i"})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
