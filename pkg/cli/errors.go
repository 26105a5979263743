package cli

import "fmt"

// CommandError represents a failure of a CLI subcommand. It carries the
// command name so wrapped errors stay attributable in scripts and CI logs.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// InputError represents an invalid input file supplied to a subcommand.
type InputError struct {
	Path    string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Path, e.Message)
}

// NewInputError creates a new InputError.
func NewInputError(path, message string) *InputError {
	return &InputError{
		Path:    path,
		Message: message,
	}
}
