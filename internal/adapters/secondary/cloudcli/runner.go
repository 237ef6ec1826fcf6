// Package cloudcli runs provider command-line tools and normalizes their
// output for the adapters that drive gcloud and az.
package cloudcli

import (
	"context"
	"os/exec"
	"strings"
)

// Runner executes a command and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the local host.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// TrimOutput drops a trailing partial line. Provider CLIs occasionally print
// progress fragments after the JSON payload's final newline.
func TrimOutput(out []byte) string {
	s := string(out)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[:i+1]
	}
	return s
}
