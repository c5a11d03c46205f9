// Package profile writes the shell start-up file of the environment.
//
// The file is generated from a fixed template and is only written when it is
// missing, or after a reinstall when regeneration is enabled, so that edits
// made by the user survive ordinary shell launches.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"msys-console/internal/config"
	"msys-console/internal/logger"
)

// promptLine is a git-aware bash prompt: cyan user@host, magenta cwd, green branch.
const promptLine = `PS1='\[\033[1;36m\]\u@\h:\[\033[0m\]\[\033[1;35m\]\w\[\033[0m\]\[\033[1;32m\]$(__git_ps1)\[\033[0m\] \$ '`

// quoteEscaper keeps alias values literal inside a double-quoted bash word.
var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

// Writer generates the profile file at Path.
type Writer struct {
	// Path of the profile file.
	Path string
	// BinDir is the toolchain executable directory added to PATH.
	BinDir string
	// Aliases and RawLines are appended after the fixed part of the template.
	Aliases  []config.Alias
	RawLines []string
	// Regenerate rewrites an existing profile after a fresh install.
	Regenerate bool
}

// NewWriter builds a Writer from the profile section of cfg.
func NewWriter(cfg config.Config, root string) (*Writer, error) {
	path, err := cfg.ProfilePath(root)
	if err != nil {
		return nil, err
	}
	return &Writer{
		Path:       path,
		BinDir:     cfg.BinPath(root),
		Aliases:    cfg.Profile.Aliases,
		RawLines:   cfg.Profile.RawConfigs,
		Regenerate: cfg.Profile.Regenerate,
	}, nil
}

// Render returns the profile content. It depends only on the Writer fields.
func (w *Writer) Render() []byte {
	var b strings.Builder
	b.WriteString("# Generated by msys-console.\n")
	fmt.Fprintf(&b, "PATH=\"%s:$PATH\"\n", MSYSPath(w.BinDir))
	b.WriteString("\n# Git enhanced prompt.\n")
	b.WriteString(promptLine + "\n")
	b.WriteString("\n# Use visible colors for LS.\n")
	b.WriteString("LS_COLORS=\"$LS_COLORS:di=01;35:\"\n")
	b.WriteString("export LS_COLORS\n")

	if len(w.Aliases) > 0 {
		b.WriteString("\n# Aliases.\n")
		for _, a := range w.Aliases {
			// Format alias command string e.g. alias gs="git status"
			fmt.Fprintf(&b, "alias %s=\"%s\"\n", a.Name, quoteEscaper.Replace(a.Value))
		}
	}

	var raw []string
	for _, block := range w.RawLines {
		for _, line := range strings.Split(block, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				raw = append(raw, trimmed)
			}
		}
	}
	if len(raw) > 0 {
		b.WriteString("\n")
		for _, line := range raw {
			b.WriteString(line + "\n")
		}
	}
	return []byte(b.String())
}

// Ensure writes the profile when it is missing, or when fresh is set and the
// Writer regenerates on reinstall. It reports whether the file was written.
func (w *Writer) Ensure(fresh bool) (bool, error) {
	_, err := os.Stat(w.Path)
	switch {
	case err == nil:
		if !fresh || !w.Regenerate {
			logger.Debug("[DEBUG] Profile %s already exists\n", w.Path)
			return false, nil
		}
		logger.Info("[INFO] Regenerating profile %s\n", w.Path)
	case errors.Is(err, os.ErrNotExist):
		logger.Info("[INFO] Creating profile %s\n", w.Path)
	default:
		return false, fmt.Errorf("inspect profile %s: %w", w.Path, err)
	}

	if err := w.Write(); err != nil {
		return false, err
	}
	return true, nil
}

// Write renders the profile and replaces the file (create or truncate).
func (w *Writer) Write() error {
	content := w.Render()
	if err := os.MkdirAll(filepath.Dir(w.Path), 0755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	if err := os.WriteFile(w.Path, content, 0644); err != nil {
		return fmt.Errorf("cannot generate profile %s: %w", w.Path, err)
	}
	return nil
}

// MSYSPath converts a Windows path such as C:\chevah\mingw into the form the
// MSYS shell understands (/C/chevah/mingw). Other paths only get forward slashes.
func MSYSPath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		rest := strings.TrimPrefix(p[2:], "/")
		return "/" + p[:1] + "/" + rest
	}
	return p
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
