package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"msys-console/internal/console"
	"msys-console/internal/logger"
	"msys-console/internal/state"
)

// statusCmd reports the installed and desired versions without changing anything.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the installed and desired environment versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := cfg.Root()
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			exitCode = console.ExitError
			return
		}
		installed, ok, err := state.NewStore(cfg.MarkerPath(root)).Current()
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			exitCode = console.ExitError
			return
		}
		if !ok {
			installed = "(none)"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "root:      %s\n", root)
		fmt.Fprintf(out, "installed: %s\n", installed)
		fmt.Fprintf(out, "desired:   %s\n", cfg.Archive)
		fmt.Fprintf(out, "source:    %s\n", cfg.DownloadURL())
		if ok && installed == cfg.Archive {
			fmt.Fprintln(out, "up to date")
		} else {
			fmt.Fprintln(out, "update required")
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
