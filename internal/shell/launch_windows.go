//go:build windows

package shell

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// consoleFlags opens the shell in a console window of its own.
const consoleFlags = windows.CREATE_NEW_CONSOLE | windows.CREATE_UNICODE_ENVIRONMENT

// startupInfo leaves STARTF_USESTDHANDLES unset so the shell binds to the new
// console instead of the handles of this process.
func startupInfo() *windows.StartupInfo {
	si := &windows.StartupInfo{}
	si.Cb = uint32(unsafe.Sizeof(*si))
	return si
}

// commandLine quotes path and args into a single Windows command line.
func commandLine(path string, args []string) string {
	return windows.ComposeCommandLine(append([]string{path}, args...))
}

// launch starts the shell in its own console window and returns without
// waiting for it.
func launch(path string, args []string, env []string) error {
	app, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	cmdLine, err := windows.UTF16PtrFromString(commandLine(path, args))
	if err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	block, err := envBlock(env)
	if err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	dir, err := windows.UTF16PtrFromString(wd)
	if err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}

	var pi windows.ProcessInformation
	err = windows.CreateProcess(app, cmdLine, nil, nil, false, consoleFlags, block, dir, startupInfo(), &pi)
	if err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}
	// The shell outlives us; only the handles are released.
	_ = windows.CloseHandle(pi.Thread)
	_ = windows.CloseHandle(pi.Process)
	return nil
}

// envBlock encodes env as a UTF-16 block of NUL-terminated KEY=VALUE entries
// ended by an extra NUL.
func envBlock(env []string) (*uint16, error) {
	if len(env) == 0 {
		return nil, nil
	}
	var block []uint16
	for _, kv := range env {
		u, err := windows.UTF16FromString(kv)
		if err != nil {
			return nil, err
		}
		block = append(block, u...)
	}
	block = append(block, 0)
	return &block[0], nil
}
