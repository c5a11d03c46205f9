package console

import (
	"context" // Cancellation of the download
	"errors"  // Unwrapping provisioning failures

	"msys-console/internal/config"    // Environment layout
	"msys-console/internal/environ"   // PATH and working directory
	"msys-console/internal/installer" // Download and unpack
	"msys-console/internal/logger"    // Colored output
	"msys-console/internal/profile"   // Shell start-up file
	"msys-console/internal/shell"     // Shell hand-over
	"msys-console/internal/state"     // Version marker
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitDownloadError = 1
	ExitError         = 2
)

// Provisioner keeps the environment at a version.
type Provisioner interface {
	EnsureInstalled(ctx context.Context, desired string) (installer.Result, error)
}

// ProfileWriter writes the shell profile.
type ProfileWriter interface {
	Ensure(fresh bool) (bool, error)
}

// Environment prepares the process for the shell.
type Environment interface {
	Apply(root, binDir string) error
}

// Session runs one console start: provision, profile, environment, shell.
type Session struct {
	Archive     string
	Root        string
	BinDir      string
	ShellPath   string
	ShellArgs   []string
	Provisioner Provisioner
	Profile     ProfileWriter
	Env         Environment
	Launcher    shell.Launcher
}

// NewSession wires the real collaborators for cfg.
func NewSession(cfg config.Config) (*Session, error) {
	// Resolve the environment root under the home directory
	root, err := cfg.Root()
	if err != nil {
		return nil, err
	}
	// The profile location also decides the shell arguments
	writer, err := profile.NewWriter(cfg, root)
	if err != nil {
		return nil, err
	}
	return &Session{
		Archive:     cfg.Archive,
		Root:        root,
		BinDir:      cfg.BinPath(root),
		ShellPath:   cfg.ShellPath(root),
		ShellArgs:   cfg.ShellArgs(writer.Path),
		Provisioner: NewProvisioner(cfg, root),
		Profile:     writer,
		Env:         environ.New(),
		Launcher:    shell.ProcessLauncher{},
	}, nil
}

// NewProvisioner returns the provisioner for cfg rooted at root.
func NewProvisioner(cfg config.Config, root string) *installer.Provisioner {
	return installer.NewProvisioner(installer.Options{
		BaseURL:    cfg.BinariesRootURL,
		Root:       root,
		InstallDir: cfg.InstallPath(root),
		ScratchDir: cfg.ScratchPath(root),
	}, state.NewStore(cfg.MarkerPath(root)), installer.NewHTTPFetcher(), installer.ArchiveExtractor{})
}

// Provision ensures the archive is installed and returns the exit code
// together with whether a fresh install happened.
func (s *Session) Provision(ctx context.Context) (int, bool) {
	// Bring the install dir to the configured archive version
	res, err := s.Provisioner.EnsureInstalled(ctx, s.Archive)
	if err != nil {
		logger.Error("[ERROR] --> Cannot %v\n", err)
		// A failed persist still reports the files as installed
		return ExitCode(err), res.Installed
	}
	return ExitOK, res.Installed
}

// Prepare provisions the environment and writes the profile, regenerating it
// after a fresh install when the writer asks for that.
func (s *Session) Prepare(ctx context.Context) int {
	code, fresh := s.Provision(ctx)
	if code != ExitOK {
		return code
	}

	// Write the profile when missing or when a reinstall asks for it
	if _, err := s.Profile.Ensure(fresh); err != nil {
		logger.Error("[ERROR] --> Cannot generate profile, error: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// Run executes the whole start sequence and returns the process exit code.
// The shell is only launched when every earlier step succeeded.
func (s *Session) Run(ctx context.Context) int {
	if code := s.Prepare(ctx); code != ExitOK {
		return code
	}

	// Put the toolchain first on PATH and move into the root
	if err := s.Env.Apply(s.Root, s.BinDir); err != nil {
		logger.Error("[ERROR] --> Cannot prepare environment, error: %v\n", err)
		return ExitError
	}

	// Hand over to the shell; nothing runs after this on success
	if err := s.Launcher.Launch(s.ShellPath, s.ShellArgs); err != nil {
		logger.Error("[ERROR] --> Cannot start shell, error: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// ExitCode maps a provisioning failure to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	// Only download failures get their own code
	var pe *installer.ProvisionError
	if errors.As(err, &pe) && pe.Kind == installer.KindDownload {
		return ExitDownloadError
	}
	return ExitError
}
