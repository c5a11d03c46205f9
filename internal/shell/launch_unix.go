//go:build !windows

package shell

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// launch replaces the current process with the shell, so the shell owns the
// terminal and this program's exit status is never observed.
func launch(path string, args []string, env []string) error {
	argv := append([]string{path}, args...)
	if err := unix.Exec(path, argv, env); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}
