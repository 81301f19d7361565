package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/ports"
)

// ConfigFileName is the file marking a digitprobe workspace root.
const ConfigFileName = "digitprobe.yaml"

// configFileNames are tried in order in every directory.
var configFileNames = []string{ConfigFileName, "digitprobe.yml"}

// Finder locates a digitprobe workspace root by searching for its config file upward.
type Finder struct {
	// ConfigFiles overrides the accepted file names.
	ConfigFiles []string
}

func NewFinder() *Finder {
	return &Finder{ConfigFiles: configFileNames}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// A file path starts the search in its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	names := f.ConfigFiles
	if len(names) == 0 {
		names = configFileNames
	}

	cur := filepath.Clean(abs)
	for {
		if _, ok := lookup(cur, names); ok {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Path: abs,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}

// ConfigPath returns the config file inside root. When none exists it returns
// the path digitprobe.yaml would have.
func ConfigPath(root string) string {
	if p, ok := lookup(root, configFileNames); ok {
		return p
	}
	return filepath.Join(root, ConfigFileName)
}

func lookup(dir string, names []string) (string, bool) {
	for _, n := range names {
		p := filepath.Join(dir, n)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}
