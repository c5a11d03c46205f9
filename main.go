package main

import (
	"msys-console/cmd" // CLI commands and execution logic
)

// main is the program entry point. It delegates to cmd.Execute(), which parses
// the command line, runs the selected command and exits with its status code.
//
// msys-console bootstraps a reproducible build environment on a developer machine:
//   - keeps a pinned toolchain archive (a shell plus supporting binaries) installed
//     in the environment folder, downloading and replacing it when the version
//     marker does not match
//   - writes a shell profile (prompt, colors, aliases, PATH) when it is missing
//   - puts the toolchain first on PATH, moves into the environment folder and
//     hands over to an interactive shell
//
// Exit codes: 0 on success, 1 when the archive could not be downloaded,
// 2 for any other failure. The shell is not started after a failure.
func main() {
	cmd.Execute()
}
