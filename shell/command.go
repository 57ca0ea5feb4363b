package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/gruntwork-io/azure-bootstrap/internal/errors"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
)

// RunCommandWithOutput runs the given command and returns its stdout. Stderr is
// captured and folded into the returned error on failure.
func RunCommandWithOutput(ctx context.Context, l log.Logger, command string, args ...string) (string, error) {
	l.Debugf("Running command: %s %s", command, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", errors.Errorf("command %q failed: %w: %s", command, err, strings.TrimSpace(stderr.String()))
		}

		return "", errors.WithStackTracePrefix(err, "command %q failed", command)
	}

	return stdout.String(), nil
}
