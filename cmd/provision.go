package cmd

import (
	"github.com/spf13/cobra"

	"msys-console/internal/console"
	"msys-console/internal/logger"
	"msys-console/internal/profile"
)

// provisionCmd installs or updates the environment without starting a shell.
// The profile is written when missing, or regenerated after a fresh install
// when profile.regenerate is set.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Install or update the environment and its profile only",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root, err := cfg.Root()
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			exitCode = console.ExitError
			return
		}
		writer, err := profile.NewWriter(cfg, root)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			exitCode = console.ExitError
			return
		}
		session := &console.Session{
			Archive:     cfg.Archive,
			Root:        root,
			Provisioner: console.NewProvisioner(cfg, root),
			Profile:     writer,
		}
		exitCode = session.Prepare(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(provisionCmd)
}
