package driven

import (
	"context"
	"io"
)

// Command is one external process invocation in argument-vector form.
type Command struct {
	// Name is the executable name or path.
	Name string

	// Args are passed to the executable without shell interpretation.
	Args []string

	// Stdin is connected to the process standard input when non-nil.
	Stdin io.Reader

	// Stdout receives the process standard output when non-nil.
	Stdout io.Writer
}

// CommandRunner executes external commands.
type CommandRunner interface {
	// Run starts the command and waits for it to exit.
	// A non-zero exit status is reported as an error.
	Run(ctx context.Context, cmd Command) error
}
