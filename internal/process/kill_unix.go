//go:build !windows

package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid. Non-positive
// pids are ignored; failures are ignored since the launcher kills the
// browser itself as a fallback.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
