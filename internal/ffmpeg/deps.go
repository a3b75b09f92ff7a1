package ffmpeg

import (
	"context"
	"os"
	"os/exec"
)

// commandRunner executes external commands. The two methods mirror how the
// engine consumes subprocess output: ffprobe results arrive on stdout,
// ffmpeg diagnostics on stderr (combined).
type commandRunner interface {
	Output(ctx context.Context, name string, args []string) ([]byte, error)
	CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error)
}

// envProvider abstracts environment and path lookup operations.
type envProvider interface {
	Getenv(key string) string
	LookPath(file string) (string, error)
}

// Compile-time interface verification.
var (
	_ commandRunner = osCommandRunner{}
	_ envProvider   = osEnvProvider{}
)

// osCommandRunner implements commandRunner using exec.CommandContext.
type osCommandRunner struct{}

func (osCommandRunner) Output(ctx context.Context, name string, args []string) ([]byte, error) {
	// #nosec G204 -- name and args are built by the engine, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

func (osCommandRunner) CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error) {
	// #nosec G204 -- name and args are built by the engine, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// osEnvProvider implements envProvider using os and exec.
type osEnvProvider struct{}

func (osEnvProvider) Getenv(key string) string {
	return os.Getenv(key)
}

func (osEnvProvider) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
