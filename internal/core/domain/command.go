package domain

import (
	"fmt"
	"sort"
	"strings"
)

// CommandPolicy filters commands by their first whitespace-delimited token
// only. It performs no shell parsing: pipes, redirections and substitutions
// after an allowed base command reach the shell verbatim. Deny always wins
// over allow.
type CommandPolicy struct {
	allow map[string]struct{}
	deny  map[string]struct{}
}

// NewCommandPolicy builds a policy from allow and deny command name lists.
func NewCommandPolicy(allow, deny []string) CommandPolicy {
	p := CommandPolicy{
		allow: make(map[string]struct{}, len(allow)),
		deny:  make(map[string]struct{}, len(deny)),
	}
	for _, c := range allow {
		if c = strings.TrimSpace(c); c != "" {
			p.allow[c] = struct{}{}
		}
	}
	for _, c := range deny {
		if c = strings.TrimSpace(c); c != "" {
			p.deny[c] = struct{}{}
		}
	}
	return p
}

// Permitted reports whether base passes the policy: in the allow-list and
// not in the deny-list.
func (p CommandPolicy) Permitted(base string) bool {
	if _, denied := p.deny[base]; denied {
		return false
	}
	_, allowed := p.allow[base]
	return allowed
}

// Denied reports whether base is explicitly deny-listed.
func (p CommandPolicy) Denied(base string) bool {
	_, ok := p.deny[base]
	return ok
}

// Allowed returns the allow-list sorted lexicographically.
func (p CommandPolicy) Allowed() []string {
	out := make([]string, 0, len(p.allow))
	for c := range p.allow {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CommandDeniedError rejects a command by name. Command names are not
// secret, so the message may name the offender.
type CommandDeniedError struct {
	Command string
}

func (e *CommandDeniedError) Error() string {
	return fmt.Sprintf("command not allowed: %s", e.Command)
}

// ExecResult carries the outcome of a sandboxed command. Output is trimmed
// stdout; Stderr is populated when the command exited non-zero with output
// on its error stream.
type ExecResult struct {
	Output string
	Stderr string
}
