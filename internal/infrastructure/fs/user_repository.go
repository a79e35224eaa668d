package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/webdesk/identity/internal/core/domain"
)

// UserRepository stores one JSON record per user under {root}/users. The
// create path relies on O_EXCL so create-if-absent is atomic even across
// processes; rewrites go through a temp file and rename so readers never see
// a partial record.
type UserRepository struct {
	dir string
}

// userRecord is the on-disk shape. The password hash is serialized here and
// nowhere else; domain.User excludes it from JSON deliberately.
type userRecord struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Created      time.Time `json:"created"`
	LastLogin    time.Time `json:"last_login"`
}

func NewUserRepository(root string) (*UserRepository, error) {
	dir := filepath.Join(root, "users")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create users dir: %w", err)
	}
	return &UserRepository{dir: dir}, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(userRecord{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Created:      user.Created,
		LastLogin:    user.LastLogin,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(r.path(user.Username), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("create user record: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (r *UserRepository) Find(ctx context.Context, username string) (*domain.User, error) {
	data, err := os.ReadFile(r.path(username))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("read user record: %w", err)
	}
	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}
	return &domain.User{
		Username:     rec.Username,
		PasswordHash: rec.PasswordHash,
		Created:      rec.Created,
		LastLogin:    rec.LastLogin,
	}, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	user, err := r.Find(ctx, username)
	if err != nil {
		return err
	}
	user.LastLogin = at

	data, err := json.Marshal(userRecord{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Created:      user.Created,
		LastLogin:    user.LastLogin,
	})
	if err != nil {
		return err
	}
	return writeFileAtomic(r.path(username), data, 0o600)
}

func (r *UserRepository) path(username string) string {
	return filepath.Join(r.dir, username)
}

// writeFileAtomic rewrites path via a temp file in the same directory and a
// rename, so a crash mid-write cannot truncate the record.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".identity-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
