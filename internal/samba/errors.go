package samba

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTimeout            = errors.New("operation timed out")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ToolError carries the raw stderr of a failed external command when the
// text matched none of the known error patterns.
type ToolError struct {
	Stderr string
}

func (e *ToolError) Error() string {
	if e.Stderr == "" {
		return "external command failed"
	}
	return e.Stderr
}

// classifyToolError maps the stderr text of a failed command to one of the
// typed errors by case-insensitive substring match. Unmatched text falls
// through as a generic ToolError. Best-effort: a wording change in the
// wrapped tool degrades classification, never correctness.
func classifyToolError(stderr string) error {
	msg := strings.TrimSpace(stderr)
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "already exists"):
		return fmt.Errorf("%w: %s", ErrAlreadyExists, msg)
	case strings.Contains(lower, "not found"),
		strings.Contains(lower, "does not exist"),
		strings.Contains(lower, "no such"):
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case strings.Contains(lower, "invalid credentials"),
		strings.Contains(lower, "nt_status_logon_failure"):
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	case strings.Contains(lower, "permission denied"),
		strings.Contains(lower, "access denied"),
		strings.Contains(lower, "insufficient access"),
		strings.Contains(lower, "nt_status_access_denied"):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, msg)
	default:
		return &ToolError{Stderr: msg}
	}
}
