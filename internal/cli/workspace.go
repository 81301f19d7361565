package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/infra/workspacefinder"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	// configPath is empty when no digitprobe.yaml was found and defaults apply.
	configPath string
}

// loadWorkspace resolves the configuration: an explicit --config file, else the
// nearest digitprobe.yaml above the working directory, else the built-in defaults.
func loadWorkspace(configFlag string) (*workspaceCtx, error) {
	if p := strings.TrimSpace(configFlag); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		cfg, err := workspacefinder.LoadConfigFile(abs)
		if err != nil {
			return nil, err
		}
		return &workspaceCtx{root: filepath.Dir(abs), cfg: cfg, configPath: abs}, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return &workspaceCtx{root: wd, cfg: domain.DefaultConfig()}, nil
		}
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}
	return &workspaceCtx{
		root:       root,
		cfg:        cfg,
		configPath: workspacefinder.ConfigPath(root),
	}, nil
}
