// Package command runs external processes for the core services.
package command

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/custodia-labs/dbtasks/internal/core/ports/driven"
	"github.com/custodia-labs/dbtasks/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.CommandRunner = (*Runner)(nil)

// Runner executes commands with os/exec.
// Arguments are never passed through a shell.
type Runner struct {
	stderr io.Writer
}

// NewRunner creates a runner that forwards process stderr to os.Stderr.
func NewRunner() *Runner {
	return &Runner{stderr: os.Stderr}
}

// SetStderr redirects the standard error of subsequent commands.
func (r *Runner) SetStderr(w io.Writer) {
	r.stderr = w
}

// Run starts cmd and waits for it to exit.
func (r *Runner) Run(ctx context.Context, cmd driven.Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) // #nosec G204 - executable is operator-configured
	c.Stdin = cmd.Stdin
	c.Stdout = cmd.Stdout
	c.Stderr = r.stderr

	logger.Debug("running command", "cmd", cmd.Name, "args", cmd.Args)
	if err := c.Run(); err != nil {
		logger.Debug("command failed", "cmd", cmd.Name, "error", err)
		return err
	}
	return nil
}
