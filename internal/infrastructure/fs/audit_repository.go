package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/webdesk/identity/internal/core/domain"
)

// AuditRepository appends JSON-line audit entries to one log per user under
// {root}/audit. A per-path mutex serializes appends from concurrent workers.
type AuditRepository struct {
	dir string

	mu    sync.Mutex
	files map[string]*sync.Mutex
}

func NewAuditRepository(root string) (*AuditRepository, error) {
	dir := filepath.Join(root, "audit")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}
	return &AuditRepository{dir: dir, files: make(map[string]*sync.Mutex)}, nil
}

func (r *AuditRepository) Append(ctx context.Context, entry domain.AuditEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := filepath.Join(r.dir, entry.Username+".log")
	m := r.lockFor(path)
	m.Lock()
	defer m.Unlock()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (r *AuditRepository) lockFor(path string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m := r.files[path]; m != nil {
		return m
	}
	m := &sync.Mutex{}
	r.files[path] = m
	return m
}
