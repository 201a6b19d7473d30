package cmd

import (
	"errors"
	"fmt"
)

// Exit codes, grep-style.
const (
	exitOK       = 0
	exitMismatch = 1 // pattern not found, or algorithms disagree
	exitError    = 2
)

// exitStatus is returned by commands to signal a specific exit code
// without printing an error message.
type exitStatus struct{ code int }

func (e exitStatus) Error() string {
	switch e.code {
	case exitOK:
		return ""
	case exitMismatch:
		return "mismatch"
	default:
		return fmt.Sprintf("exit %d", e.code)
	}
}

// ExitCode extracts the exit code from an exitStatus error.
// Returns -1 if the error is not an exitStatus.
func ExitCode(err error) int {
	var es exitStatus
	if errors.As(err, &es) {
		return es.code
	}
	return -1
}
