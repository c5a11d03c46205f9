package cmd

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/mattn/go-isatty"

	"msys-console/internal/config"
	"msys-console/internal/logger"
)

// ensureConsoleHost re-runs the program inside cmd.exe when it was started on
// Windows without a console (for example by double-clicking it), so its output
// stays visible. It returns true when the current process should stop.
func ensureConsoleHost(c config.ConsoleConfig) bool {
	if !c.Relaunch || runtime.GOOS != "windows" {
		return false
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return false
	}

	self, err := os.Executable()
	if err != nil {
		logger.Warn("[WARN] Cannot locate executable, staying in this host: %v\n", err)
		return false
	}
	comspec := os.Getenv("COMSPEC")
	if comspec == "" {
		comspec = "cmd.exe"
	}
	relaunch := exec.Command(comspec, append([]string{"/k", self}, os.Args[1:]...)...)
	if err := relaunch.Start(); err != nil {
		logger.Warn("[WARN] Cannot relaunch under %s: %v\n", comspec, err)
		return false
	}
	_ = relaunch.Process.Release()
	return true
}
