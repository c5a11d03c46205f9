package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BinariesRootURL: DefaultBinariesRootURL,
		Archive:         DefaultArchive,
		FolderName:      DefaultFolderName,
		InstallDir:      DefaultInstallDir,
		MarkerFile:      DefaultMarkerFile,
		BinDir:          DefaultBinDir,
		Shell:           DefaultShell,
		Profile: ProfileConfig{
			Location: ProfileInRoot,
			Name:     DefaultProfile,
			Aliases: []Alias{
				{Name: "ll", Value: "ls -al"},
				{Name: "gs", Value: "git status"},
			},
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports configuration that would make provisioning unsafe.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Archive) == "" {
		return errors.New("archive must not be empty")
	}
	if strings.ContainsAny(c.Archive, `/\`) || c.Archive == "." || c.Archive == ".." {
		return fmt.Errorf("archive %q must be a file name", c.Archive)
	}
	if strings.TrimSpace(c.BinariesRootURL) == "" {
		return errors.New("binaries_root_url must not be empty")
	}
	if strings.TrimSpace(c.FolderName) == "" {
		return errors.New("folder_name must not be empty")
	}
	// The install dir is wiped on reinstall, so it must be a strict sub-directory.
	if err := checkSubPath("install_dir", c.InstallDir); err != nil {
		return err
	}
	if filepath.Clean(filepath.FromSlash(c.InstallDir)) == DefaultScratchDir {
		return fmt.Errorf("install_dir %q is reserved for downloads", c.InstallDir)
	}
	if err := checkSubPath("marker_file", c.MarkerFile); err != nil {
		return err
	}
	if !c.MarkerInInstallDir && filepath.Clean(c.MarkerFile) == filepath.Clean(c.InstallDir) {
		return fmt.Errorf("marker_file %q collides with install_dir", c.MarkerFile)
	}
	switch c.Profile.Location {
	case ProfileInRoot, ProfileInHome:
	default:
		return fmt.Errorf("profile.location must be %q or %q, got %q", ProfileInRoot, ProfileInHome, c.Profile.Location)
	}
	// The profile stays inside the root or home directory it is placed in.
	if err := checkSubPath("profile.name", c.Profile.Name); err != nil {
		return err
	}
	for _, a := range c.Profile.Aliases {
		if a.Name == "" || strings.ContainsAny(a.Name, " \t=\"'") {
			return fmt.Errorf("invalid alias name %q", a.Name)
		}
		if strings.ContainsAny(a.Value, "\n\r") {
			return fmt.Errorf("alias %q value must be a single line", a.Name)
		}
	}
	return nil
}

func checkSubPath(field, p string) error {
	if strings.TrimSpace(p) == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) || filepath.VolumeName(p) != "" {
		return fmt.Errorf("%s %q must be relative to the environment root", field, p)
	}
	clean := filepath.Clean(filepath.FromSlash(p))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%s %q must stay inside the environment root", field, p)
	}
	return nil
}

// Root resolves the environment root. Relative folder names are placed under
// the invoking user's home directory.
func (c Config) Root() (string, error) {
	folder := filepath.FromSlash(c.FolderName)
	if filepath.IsAbs(folder) {
		return filepath.Clean(folder), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, folder), nil
}

// InstallPath returns the directory receiving the archive content.
func (c Config) InstallPath(root string) string {
	return filepath.Join(root, filepath.FromSlash(c.InstallDir))
}

// ScratchPath returns the temporary download directory.
func (c Config) ScratchPath(root string) string {
	return filepath.Join(root, DefaultScratchDir)
}

// MarkerPath returns the version marker location.
func (c Config) MarkerPath(root string) string {
	if c.MarkerInInstallDir {
		return filepath.Join(c.InstallPath(root), filepath.FromSlash(c.MarkerFile))
	}
	return filepath.Join(root, filepath.FromSlash(c.MarkerFile))
}

// BinPath returns the toolchain executable directory.
func (c Config) BinPath(root string) string {
	return filepath.Join(c.InstallPath(root), filepath.FromSlash(c.BinDir))
}

// ShellPath returns the shell executable, with the .exe suffix on Windows.
func (c Config) ShellPath(root string) string {
	p := filepath.Join(c.InstallPath(root), filepath.FromSlash(c.Shell))
	if runtime.GOOS == "windows" && filepath.Ext(p) == "" {
		p += ".exe"
	}
	return p
}

// ProfilePath returns where the shell profile is written.
func (c Config) ProfilePath(root string) (string, error) {
	if c.Profile.Location == ProfileInHome {
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, c.Profile.Name), nil
	}
	return filepath.Join(root, c.Profile.Name), nil
}

// DownloadURL returns the distribution URL of the configured archive.
func (c Config) DownloadURL() string {
	return strings.TrimRight(c.BinariesRootURL, "/") + "/" + c.Archive
}

// ShellArgs returns the arguments used to start the interactive shell so it
// reads the generated profile.
func (c Config) ShellArgs(profilePath string) []string {
	if c.Profile.Location == ProfileInHome {
		return []string{"-i", "-l"}
	}
	return []string{"--rcfile", profilePath, "-i"}
}
