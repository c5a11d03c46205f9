package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"msys-console/internal/config"
	"msys-console/internal/console"
	"msys-console/internal/logger"
)

var (
	// debug enables cyan [DEBUG] lines, toggled via `--debug`.
	debug bool
	// configPath is an optional YAML file overriding the built-in defaults.
	configPath string
	// rootOverride and archiveOverride replace folder_name and archive.
	rootOverride    string
	archiveOverride string

	// cfg is loaded once per invocation by PersistentPreRunE.
	cfg config.Config
	// exitCode is what Execute hands to os.Exit.
	exitCode = console.ExitOK
)

// rootCmd provisions the environment and opens the shell.
var rootCmd = &cobra.Command{
	Use:   "msys-console",
	Short: "Install or update the build environment and open its shell",
	Long: `msys-console makes sure the pinned toolchain archive is installed in the
environment folder (by default "chevah" under your home directory), writes a
shell profile when missing and starts an interactive shell using the toolchain.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,

	// PersistentPreRunE runs before any subcommand: logger first, then config.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init(debug)
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if ensureConsoleHost(cfg.Console) {
			return
		}
		session, err := console.NewSession(cfg)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			exitCode = console.ExitError
			return
		}
		exitCode = session.Run(cmd.Context())
	},
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig() (config.Config, error) {
	loaded, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if rootOverride != "" {
		loaded.FolderName = rootOverride
	}
	if archiveOverride != "" {
		loaded.Archive = archiveOverride
	}
	return loaded, loaded.Validate()
}

// Execute runs the CLI and exits with the resulting status code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the command tree with args and returns the exit code.
func run(ctx context.Context, args []string) int {
	exitCode = console.ExitOK
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("[ERROR] %v\n", err)
		return console.ExitError
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&rootOverride, "root", "", "Environment folder (absolute, or relative to the home directory)")
	rootCmd.PersistentFlags().StringVar(&archiveOverride, "archive", "", "Archive name to install instead of the pinned one")
}
