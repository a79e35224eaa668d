package service

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/webdesk/identity/internal/core/domain"
	"github.com/webdesk/identity/internal/core/ports"
)

// sandboxPath is the only PATH visible to sandboxed commands; the parent
// environment is never inherited.
const sandboxPath = "/usr/local/bin:/usr/bin:/bin"

// SandboxService runs policy-filtered shell commands confined to a tenant
// home. The policy checks the first whitespace-delimited token only; the
// full raw command line is handed to the shell verbatim, so an allow-listed
// base command may still carry pipes and redirections. That coarse filter is
// the intended level of defense here, not full shell sandboxing.
type SandboxService struct {
	policy domain.CommandPolicy
	homes  ports.TenantHomes
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewSandboxService(policy domain.CommandPolicy, homes ports.TenantHomes, audit ports.AuditRecorder, log zerolog.Logger) *SandboxService {
	return &SandboxService{policy: policy, homes: homes, audit: audit, log: log}
}

// Execute filters rawCommand against the policy and, when accepted, runs it
// through /bin/sh with the tenant home as working directory and a reduced
// environment of exactly HOME, USER and PATH.
//
// The subprocess is deliberately not bound to ctx: a client disconnect does
// not terminate a running command, and no execution timeout is enforced.
func (s *SandboxService) Execute(ctx context.Context, username, rawCommand string) (*domain.ExecResult, error) {
	fields := strings.Fields(rawCommand)
	if len(fields) == 0 {
		return nil, &domain.CommandDeniedError{Command: ""}
	}
	base := fields[0]

	if !s.policy.Permitted(base) {
		// `help` is not a real command; when it is not itself allow-listed
		// it answers with the allow-list instead of an error.
		if base == "help" && !s.policy.Denied(base) {
			return &domain.ExecResult{Output: strings.Join(s.policy.Allowed(), ", ")}, nil
		}
		return nil, &domain.CommandDeniedError{Command: base}
	}

	home, err := s.homes.Ensure(username)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command("/bin/sh", "-c", rawCommand)
	cmd.Dir = home
	cmd.Env = []string{
		"HOME=" + home,
		"USER=" + username,
		"PATH=" + sandboxPath,
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	result := &domain.ExecResult{Output: strings.TrimSpace(stdout.String())}
	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			s.log.Error().Err(runErr).Str("username", username).Str("command", base).Msg("command spawn failed")
			return nil, runErr
		}
		exitCode = exitErr.ExitCode()
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			result.Stderr = msg
		}
	}

	if s.audit != nil {
		s.audit.Record(domain.AuditEntry{
			Username:   username,
			Command:    rawCommand,
			ExitCode:   exitCode,
			ExecutedAt: time.Now().UTC(),
		})
	}

	s.log.Debug().
		Str("username", username).
		Str("command", base).
		Int("exit_code", exitCode).
		Msg("command executed")

	return result, nil
}
