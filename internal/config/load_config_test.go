package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func setHome(t *testing.T, home string) {
	t.Helper()
	homedir.DisableCache = true
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultArchive, cfg.Archive)
	assert.Equal(t, ProfileInRoot, cfg.Profile.Location)
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := writeConfig(t, `
archive: pkg-1.0.zip
folder_name: /opt/chevah
marker_in_install_dir: true
profile:
  location: home
  regenerate: true
  aliases:
    - name: paver
      value: ./paver.sh
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pkg-1.0.zip", cfg.Archive)
	assert.Equal(t, "/opt/chevah", cfg.FolderName)
	assert.True(t, cfg.MarkerInInstallDir)
	assert.Equal(t, ProfileInHome, cfg.Profile.Location)
	assert.True(t, cfg.Profile.Regenerate)
	assert.Equal(t, []Alias{{Name: "paver", Value: "./paver.sh"}}, cfg.Profile.Aliases)

	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultBinariesRootURL, cfg.BinariesRootURL)
	assert.Equal(t, DefaultInstallDir, cfg.InstallDir)
	assert.Equal(t, DefaultProfile, cfg.Profile.Name)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "archive: [not, a, string"))
	require.Error(t, err)
}

func TestValidateRejectsUnsafeLayouts(t *testing.T) {
	cases := map[string]func(*Config){
		"empty archive":       func(c *Config) { c.Archive = "" },
		"archive with slash":  func(c *Config) { c.Archive = "../x.zip" },
		"archive dot":         func(c *Config) { c.Archive = "." },
		"archive dot dot":     func(c *Config) { c.Archive = ".." },
		"escaping profile":    func(c *Config) { c.Profile.Name = "../../x" },
		"absolute profile":    func(c *Config) { c.Profile.Name = "/etc/profile" },
		"multiline alias":     func(c *Config) { c.Profile.Aliases = []Alias{{Name: "a", Value: "x\nrm -rf ~"}} },
		"empty url":           func(c *Config) { c.BinariesRootURL = " " },
		"empty folder":        func(c *Config) { c.FolderName = "" },
		"empty install dir":   func(c *Config) { c.InstallDir = "" },
		"root install dir":    func(c *Config) { c.InstallDir = "." },
		"escaping install":    func(c *Config) { c.InstallDir = "../elsewhere" },
		"absolute install":    func(c *Config) { c.InstallDir = "/usr" },
		"scratch install":     func(c *Config) { c.InstallDir = "temp" },
		"marker is install":   func(c *Config) { c.MarkerFile = "mingw" },
		"unknown location":    func(c *Config) { c.Profile.Location = "desktop" },
		"empty profile name":  func(c *Config) { c.Profile.Name = "" },
		"alias name with eq":  func(c *Config) { c.Profile.Aliases = []Alias{{Name: "a=b", Value: "x"}} },
		"escaping marker":     func(c *Config) { c.MarkerFile = "../version.txt" },
		"empty marker":        func(c *Config) { c.MarkerFile = "" },
		"empty alias name":    func(c *Config) { c.Profile.Aliases = []Alias{{Value: "x"}} },
		"alias name w/ space": func(c *Config) { c.Profile.Aliases = []Alias{{Name: "a b", Value: "x"}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRootResolution(t *testing.T) {
	home := t.TempDir()
	setHome(t, home)

	cfg := Default()
	root, err := cfg.Root()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "chevah"), root)

	abs := filepath.Join(t.TempDir(), "env")
	cfg.FolderName = abs
	root, err = cfg.Root()
	require.NoError(t, err)
	assert.Equal(t, abs, root)
}

func TestLayoutPaths(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "home", "u", "chevah")
	cfg := Default()

	assert.Equal(t, filepath.Join(root, "mingw"), cfg.InstallPath(root))
	assert.Equal(t, filepath.Join(root, "temp"), cfg.ScratchPath(root))
	assert.Equal(t, filepath.Join(root, "version.txt"), cfg.MarkerPath(root))
	assert.Equal(t, filepath.Join(root, "mingw", "git", "bin"), cfg.BinPath(root))

	cfg.MarkerInInstallDir = true
	assert.Equal(t, filepath.Join(root, "mingw", "version.txt"), cfg.MarkerPath(root))
}

func TestProfilePathAndShellArgs(t *testing.T) {
	home := t.TempDir()
	setHome(t, home)
	root := filepath.Join(home, "chevah")

	cfg := Default()
	p, err := cfg.ProfilePath(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".bash_profile"), p)
	assert.Equal(t, []string{"--rcfile", p, "-i"}, cfg.ShellArgs(p))

	cfg.Profile.Location = ProfileInHome
	p, err = cfg.ProfilePath(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".bash_profile"), p)
	assert.Equal(t, []string{"-i", "-l"}, cfg.ShellArgs(p))
}

func TestDownloadURL(t *testing.T) {
	cfg := Default()
	cfg.BinariesRootURL = "http://example.test/dist/"
	cfg.Archive = "pkg-1.0.zip"
	assert.Equal(t, "http://example.test/dist/pkg-1.0.zip", cfg.DownloadURL())
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Archive, cfg.Archive)
	assert.Equal(t, []string{"export EDITOR=vim"}, cfg.Profile.RawConfigs)
	assert.False(t, cfg.Console.Relaunch)
}
