package usecase

import (
	"path/filepath"
	"strings"

	"github.com/aalvaropc/digitprobe/internal/domain"
	"github.com/aalvaropc/digitprobe/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root string, force bool) error {
	if strings.TrimSpace(root) == "" {
		return &domain.OpError{Op: "usecase.initworkspace", Kind: domain.KindInvalidConfig, Err: domain.ErrInvalidConfig}
	}
	return uc.initializer.Init(filepath.Clean(root), force)
}
