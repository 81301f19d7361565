package ports

// WorkspaceLocator finds a digitprobe workspace root starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}

// WorkspaceInitializer writes a starter digitprobe.yaml and ignore entries.
type WorkspaceInitializer interface {
	Init(root string, force bool) error
}
