package environ

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"msys-console/internal/logger"
)

// PathVar is the search path variable rewritten by Apply.
const PathVar = "PATH"

// System abstracts the process state touched by the configurator so tests can
// run without changing the test binary's own environment.
type System interface {
	Getenv(key string) string
	Setenv(key, value string) error
	Chdir(dir string) error
}

// RealSystem implements System on the current process.
type RealSystem struct{}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string { return os.Getenv(key) }

// Setenv sets the environment variable named by key.
func (RealSystem) Setenv(key, value string) error { return os.Setenv(key, value) }

// Chdir changes the working directory.
func (RealSystem) Chdir(dir string) error { return os.Chdir(dir) }

// Configurator prepares the process so a shell spawned next inherits the
// toolchain on its search path and starts in the environment root.
// Nothing is persisted beyond the process lifetime.
type Configurator struct {
	Sys System
}

// New returns a Configurator acting on the current process.
func New() *Configurator {
	return &Configurator{Sys: RealSystem{}}
}

// Apply prepends binDir to PATH and changes the working directory to root.
func (c *Configurator) Apply(root, binDir string) error {
	current := c.Sys.Getenv(PathVar)
	updated := PrependPath(current, binDir)
	if updated != current {
		if err := c.Sys.Setenv(PathVar, updated); err != nil {
			return fmt.Errorf("set %s: %w", PathVar, err)
		}
		logger.Debug("[DEBUG] %s=%s\n", PathVar, updated)
	}

	if err := c.Sys.Chdir(root); err != nil {
		return fmt.Errorf("change directory to %s: %w", root, err)
	}
	logger.Debug("[DEBUG] Working directory is now %s\n", root)
	return nil
}

// PrependPath returns list with dir in front. A list already starting with dir
// is returned unchanged so repeated runs do not grow the variable.
func PrependPath(list, dir string) string {
	if list == "" {
		return dir
	}
	entries := filepath.SplitList(list)
	if len(entries) > 0 && samePath(entries[0], dir) {
		return list
	}
	return dir + string(os.PathListSeparator) + list
}

func samePath(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if os.PathSeparator == '\\' {
		return strings.EqualFold(a, b)
	}
	return a == b
}
