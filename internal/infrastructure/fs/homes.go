package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// TenantHomes provisions per-user home directories under a single root.
// The home scopes both sandboxed command execution and directory listing.
type TenantHomes struct {
	root string
}

func NewTenantHomes(root string) (*TenantHomes, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create homes root: %w", err)
	}
	return &TenantHomes{root: root}, nil
}

func (h *TenantHomes) Path(username string) string {
	return filepath.Join(h.root, username)
}

func (h *TenantHomes) Ensure(username string) (string, error) {
	path := h.Path(username)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("provision tenant home: %w", err)
	}
	return path, nil
}
