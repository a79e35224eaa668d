package fs

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/webdesk/identity/internal/core/domain"
)

func TestAuditRepository_AppendsInOrder(t *testing.T) {
	root := t.TempDir()
	repo, err := NewAuditRepository(root)
	if err != nil {
		t.Fatalf("NewAuditRepository: %v", err)
	}

	ctx := context.Background()
	commands := []string{"ls", "echo hello", "cat notes.txt"}
	for i, cmd := range commands {
		entry := domain.AuditEntry{
			Username:   "alice",
			Command:    cmd,
			ExitCode:   i % 2,
			ExecutedAt: time.Now().UTC(),
		}
		if err := repo.Append(ctx, entry); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(root, "audit", "alice.log"))
	if err != nil {
		t.Fatalf("open trail: %v", err)
	}
	defer f.Close()

	var got []domain.AuditEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e domain.AuditEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		got = append(got, e)
	}

	if len(got) != len(commands) {
		t.Fatalf("expected %d entries, got %d", len(commands), len(got))
	}
	for i, cmd := range commands {
		if got[i].Command != cmd {
			t.Fatalf("entry %d: expected %q, got %q", i, cmd, got[i].Command)
		}
	}
}
