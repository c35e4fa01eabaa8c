package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/ghv/internal/log"
)

// ErrNotInstalled is returned when the executable is not on PATH.
var ErrNotInstalled = errors.New("executable not found")

// Output executes a command and returns stdout, with stderr in error if it fails
func Output(c *exec.Cmd) ([]byte, error) {
	var stderr bytes.Buffer
	c.Stderr = &stderr
	output, err := c.Output()
	if err != nil {
		if errMsg := strings.TrimSpace(stderr.String()); errMsg != "" {
			return nil, fmt.Errorf("%s", errMsg)
		}
		return nil, err
	}
	return output, nil
}

// OutputContext runs name with args and returns trimmed stdout.
// A cancelled context is reported as ctx.Err().
func OutputContext(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}

	l := log.FromContext(ctx)
	l.Debug("exec", "cmd", name+" "+strings.Join(args, " "))
	start := time.Now()

	out, err := Output(exec.CommandContext(ctx, name, args...))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	l.Debug("exec done", "cmd", name, "elapsed", time.Since(start).Round(time.Millisecond))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
