package config

// Compile-time defaults. DefaultArchive is the pinned toolchain bundle and can be
// replaced at build time with:
//
//	go build -ldflags "-X msys-console/internal/config.DefaultArchive=git-windows-x86-2.12.0.zip"
var (
	DefaultArchive         = "git-windows-x86-2.11.0.chevah1.zip"
	DefaultBinariesRootURL = "http://binary.chevah.com/production/msys-console"
)

const (
	DefaultFolderName = "chevah"
	DefaultInstallDir = "mingw"
	DefaultScratchDir = "temp"
	DefaultMarkerFile = "version.txt"
	DefaultBinDir     = "git/bin"
	DefaultShell      = "git/bin/bash"
	DefaultProfile    = ".bash_profile"
)

// Profile locations.
const (
	ProfileInRoot = "root" // <root>/.bash_profile, passed to the shell with --rcfile
	ProfileInHome = "home" // ~/.bash_profile, read by a login shell
)

// Config describes where the environment lives, which bundle it should hold and
// how the shell is started. Zero fields in a YAML file keep their defaults.
type Config struct {
	// BinariesRootURL is the distribution URL; the archive is fetched from
	// BinariesRootURL + "/" + Archive.
	BinariesRootURL string `yaml:"binaries_root_url"`

	// Archive is the desired version token (the archive file name).
	Archive string `yaml:"archive"`

	// FolderName is the environment root. Relative names resolve under the
	// user's home directory; absolute paths are used as-is.
	FolderName string `yaml:"folder_name"`

	// InstallDir is the directory under the root that receives the archive
	// content. It is removed before every reinstall.
	InstallDir string `yaml:"install_dir"`

	// MarkerFile is the version marker file name.
	MarkerFile string `yaml:"marker_file"`

	// MarkerInInstallDir stores the marker inside InstallDir instead of the root.
	MarkerInInstallDir bool `yaml:"marker_in_install_dir"`

	// BinDir and Shell are relative to InstallDir.
	BinDir string `yaml:"bin_dir"`
	Shell  string `yaml:"shell"`

	Profile ProfileConfig `yaml:"profile"`
	Console ConsoleConfig `yaml:"console"`
}

// ProfileConfig controls the generated shell start-up file.
// - Location: "root" or "home".
// - Regenerate: rewrite the profile whenever the environment was reinstalled.
// - Aliases/RawConfigs: extra lines appended to the template.
type ProfileConfig struct {
	Location   string   `yaml:"location"`
	Name       string   `yaml:"name"`
	Regenerate bool     `yaml:"regenerate"`
	RawConfigs []string `yaml:"raw_configs"`
	Aliases    []Alias  `yaml:"aliases"`
}

// Alias defines a single shell alias (e.g., ll = ls -al).
type Alias struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// ConsoleConfig holds the console host switch.
// Relaunch re-runs the program under cmd.exe when it was started without a
// console (double-click on Windows).
type ConsoleConfig struct {
	Relaunch bool `yaml:"relaunch"`
}
