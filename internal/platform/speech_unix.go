//go:build unix

package platform

import (
	"os/exec"
	"syscall"
)

// killProcessGroup runs the recognizer in its own process group so that
// cancelling it also kills any helpers it spawned.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
