package container

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// checkWritableDir verifies the staging/output directory exists and accepts
// writes before any archive bytes are produced.
func checkWritableDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("inspect output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output location %s is not a directory", dir)
	}
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	return nil
}
