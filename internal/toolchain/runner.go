package toolchain

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes the native toolchain.
type Runner interface {
	// Run executes argv in dir and returns its combined stdout and stderr.
	Run(ctx context.Context, dir string, argv []string) ([]byte, error)
}

// ExecRunner runs the toolchain as a child process.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return out.Bytes(), err
}
