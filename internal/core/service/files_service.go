package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/webdesk/identity/internal/core/domain"
	"github.com/webdesk/identity/internal/core/ports"
)

// FilesService lists directories inside a tenant home. Confinement is a
// prefix check after canonicalization: any resolved path not under the
// canonical tenant home is rejected.
type FilesService struct {
	homes ports.TenantHomes
}

func NewFilesService(homes ports.TenantHomes) *FilesService {
	return &FilesService{homes: homes}
}

// List resolves virtualPath against the tenant home and returns its entries,
// directories first, then case-insensitive by name. The returned path is
// rendered with the home prefix replaced by "~".
func (s *FilesService) List(ctx context.Context, username, virtualPath string) (*domain.Listing, error) {
	home, err := s.homes.Ensure(username)
	if err != nil {
		return nil, err
	}

	target, err := s.resolve(home, virtualPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		// Missing target and non-directory target share one generic error.
		return nil, domain.ErrNotDirectory
	}

	files := make([]domain.FileEntry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		kind := domain.FileTypeFile
		if e.IsDir() {
			kind = domain.FileTypeDirectory
		}
		files = append(files, domain.FileEntry{
			Name:     e.Name(),
			Type:     kind,
			Size:     info.Size(),
			Modified: info.ModTime().UTC(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Type != files[j].Type {
			return files[i].Type == domain.FileTypeDirectory
		}
		return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
	})

	return &domain.Listing{Path: renderPath(home, target), Files: files}, nil
}

// resolve expands "~" to the tenant home, canonicalizes the candidate and
// accepts it only when it stays under the canonical home.
func (s *FilesService) resolve(home, virtualPath string) (string, error) {
	candidate := virtualPath
	switch {
	case candidate == "" || candidate == "~":
		candidate = home
	case strings.HasPrefix(candidate, "~"):
		candidate = home + strings.TrimPrefix(candidate, "~")
	}

	canonicalHome, err := filepath.EvalSymlinks(home)
	if err != nil {
		return "", err
	}

	// Lexical containment first: ".." segments are resolved by Clean before
	// the prefix check, so "~/a/../../../etc" fails here even though it
	// carries the literal home prefix.
	cleaned := filepath.Clean(candidate)
	if !contained(canonicalHome, cleaned) {
		// The cleaned path may legitimately start with the pre-symlink home.
		if !contained(home, cleaned) {
			return "", domain.ErrAccessDenied
		}
		cleaned = canonicalHome + strings.TrimPrefix(cleaned, home)
	}

	// Symlink containment second: a link inside the home must not point out.
	resolved, err := filepath.EvalSymlinks(cleaned)
	if err != nil {
		return "", domain.ErrNotDirectory
	}
	if !contained(canonicalHome, resolved) {
		return "", domain.ErrAccessDenied
	}
	return resolved, nil
}

func contained(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

func renderPath(home, target string) string {
	canonicalHome, err := filepath.EvalSymlinks(home)
	if err == nil && contained(canonicalHome, target) {
		home = canonicalHome
	}
	if target == home {
		return "~"
	}
	return "~" + strings.TrimPrefix(target, home)
}
