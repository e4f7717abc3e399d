package application

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eugenenazirov/novel-shell/internal/assets"
)

// ErrResourceDirUnresolved is returned when no resource directory can be found.
var ErrResourceDirUnresolved = errors.New("resource directory could not be resolved")

// resourceSubdirs are checked at every level of the upward search.
var resourceSubdirs = []string{".", "resources"}

// ResolveResourceDir returns the directory holding config/chara_meta.yml and
// the other scene documents. An explicit directory is used as is; otherwise
// the search walks up from the executable's directory and then from the
// working directory.
func ResolveResourceDir(explicit string) (string, error) {
	if explicit != "" {
		return checkExplicitDir(explicit)
	}

	var starts []string
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		starts = append(starts, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		starts = append(starts, wd)
	}

	return findResourceDir(starts...)
}

func checkExplicitDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrResourceDirUnresolved, dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrResourceDirUnresolved, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrResourceDirUnresolved, abs)
	}
	return abs, nil
}

// findResourceDir locates a resource directory by walking up the directory
// tree from each start in turn.
func findResourceDir(starts ...string) (string, error) {
	marker := filepath.FromSlash(assets.CharactersFile)

	for _, start := range starts {
		dir, err := filepath.Abs(start)
		if err != nil {
			continue
		}
		for {
			for _, sub := range resourceSubdirs {
				candidate := filepath.Join(dir, sub)
				if _, err := os.Stat(filepath.Join(candidate, marker)); err == nil {
					return candidate, nil
				}
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return "", fmt.Errorf("%w: no %s found above %v", ErrResourceDirUnresolved, assets.CharactersFile, starts)
}
