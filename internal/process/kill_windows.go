//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// taskkill /T walks the child tree; Windows has no process groups to signal.
func killGroup(pid int) error {
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
