// Package process terminates the headless Chrome process tree left behind
// by a PDF export.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would address the caller's own
// process group or no process at all.
var ErrInvalidPID = errors.New("invalid process id")

// KillGroup force-kills pid and every child it spawned.
func KillGroup(pid int) error {
	if pid <= 1 {
		return ErrInvalidPID
	}
	return killGroup(pid)
}
