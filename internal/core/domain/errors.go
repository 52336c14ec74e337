package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent lifecycle failures.
// These are distinct from infrastructure errors, which are returned unchanged.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConnected indicates an operation needs an established connection.
	ErrNotConnected = errors.New("no active connection")

	// ErrCommandFailed indicates an external command could not run or exited non-zero.
	ErrCommandFailed = errors.New("command failed")

	// Database lifecycle errors.

	// ErrDatabaseAlreadyExists is returned by create when the database file is present.
	ErrDatabaseAlreadyExists = fmt.Errorf("database %w", ErrAlreadyExists)

	// ErrNoDatabase is returned by drop when the database file is missing.
	ErrNoDatabase = fmt.Errorf("database %w", ErrNotFound)

	// ErrUnknownEnvironment indicates no database is configured for an environment.
	ErrUnknownEnvironment = fmt.Errorf("environment %w", ErrNotFound)
)

// CommandError describes an external command that failed to execute.
type CommandError struct {
	Command string
	Args    []string
	Err     error
}

// Error renders the invocation together with a remediation hint.
func (e *CommandError) Error() string {
	var b strings.Builder
	b.WriteString("failed to execute:\n")
	b.WriteString(e.Command)
	if len(e.Args) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(e.Args, " "))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Please check the output above for any errors and make sure that `%s` "+
		"is installed in your PATH and has proper permissions.\n\n", e.Command)
	return b.String()
}

// Unwrap exposes the underlying process error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is reports CommandError as ErrCommandFailed.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}
