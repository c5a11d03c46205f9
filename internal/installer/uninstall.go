package installer

import (
	"errors"
	"fmt"
	"os"

	"msys-console/internal/logger"
)

// removeInstallation deletes a previous installation directory and everything
// under it. Nothing is backed up. A missing directory is not an error.
func removeInstallation(installPath string) error {
	info, err := os.Lstat(installPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("[DEBUG] No previous installation at %s\n", installPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspect %s: %w", installPath, err)
	}
	if !info.IsDir() {
		// A stray file with the directory's name would block extraction.
		logger.Warn("[WARN] %s is not a directory, removing it\n", installPath)
	}

	logger.Info("[INFO] Removing previous installation %s\n", installPath)
	if err := os.RemoveAll(installPath); err != nil {
		return fmt.Errorf("remove %s: %w", installPath, err)
	}
	logger.Debug("[DEBUG] Successfully removed directory %s\n", installPath)
	return nil
}
