// Package filex locates and prepares the on-disk directories the project
// stores its state in.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppGroupDir ensures the shared data directory for the given application
// group exists and returns its path. The same directory is used by the main
// app and the autofill extension process, so both see one secure item store.
//
// The directory lives under the user config dir (e.g. ~/.config/<group> on
// Linux) and is created owner-only.
func AppGroupDir(group string) (string, error) {
	if group == "" {
		return "", fmt.Errorf("filex: empty application group")
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("filex: resolve config dir: %w", err)
	}

	dir := filepath.Join(base, group)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("filex: mkdir %s: %w", dir, err)
	}

	return dir, nil
}
