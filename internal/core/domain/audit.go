package domain

import "time"

// AuditEntry records one accepted command execution for a tenant.
type AuditEntry struct {
	Username   string    `json:"username"`
	Command    string    `json:"command"`
	ExitCode   int       `json:"exit_code"`
	ExecutedAt time.Time `json:"executed_at"`
}
