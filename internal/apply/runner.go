package apply

import (
	"context"
	"os/exec"
	"syscall"
)

// Runner executes external commands and returns their combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Signaler delivers a signal to a process.
type Signaler func(pid int, sig syscall.Signal) error

// KillSignaler signals processes with kill(2).
func KillSignaler(pid int, sig syscall.Signal) error {
	return syscall.Kill(pid, sig)
}
