//go:build !windows

package process

import "syscall"

// A negative PID addresses the whole process group Chrome was started in.
func killGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGKILL)
}
