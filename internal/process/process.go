// Package process terminates the headless browser and its helper processes
// when a normal browser shutdown does not complete.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for PIDs that must never be signalled as a group
// (0 and 1 would hit the caller's own group or init).
var ErrInvalidPID = errors.New("invalid process id")

// KillGroup kills pid and every process in its group.
// Errors from the OS are returned but callers usually ignore them: the
// browser may already have exited.
func KillGroup(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killGroup(pid)
}
