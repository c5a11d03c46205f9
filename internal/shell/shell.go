package shell

import (
	"fmt"
	"os"

	"msys-console/internal/logger"
)

// Launcher starts the interactive shell. The caller does not wait for the
// shell and never sees its exit status.
type Launcher interface {
	Launch(path string, args []string) error
}

// ProcessLauncher starts the shell as the next process of the session,
// inheriting the current environment and working directory.
type ProcessLauncher struct{}

// Launch hands the console over to the shell at path.
func (ProcessLauncher) Launch(path string, args []string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("shell %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Launching %s %v\n", path, args)
	return launch(path, args, os.Environ())
}
