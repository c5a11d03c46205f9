package cmd

import (
	"github.com/spf13/cobra"

	"msys-console/internal/console"
	"msys-console/internal/logger"
	"msys-console/internal/profile"
)

// force rewrites the profile even when it exists.
var force bool

// profileCmd writes the shell profile of the environment.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Write the shell profile if it is missing",
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

		if force {
			err = writer.Write()
		} else {
			_, err = writer.Ensure(false)
		}
		if err != nil {
			logger.Error("[ERROR] --> Cannot generate profile, error: %v\n", err)
			exitCode = console.ExitError
			return
		}
		logger.Info("[INFO] Profile: %s\n", writer.Path)
	},
}

func init() {
	profileCmd.Flags().BoolVar(&force, "force", false, "Regenerate the profile, discarding local edits")
	rootCmd.AddCommand(profileCmd)
}
