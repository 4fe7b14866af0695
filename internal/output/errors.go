package output

import (
	"errors"
)

// Exit codes following sysexits.h where one fits
const (
	ExitOK            = 0  // Success
	ExitGeneral       = 1  // General error
	ExitUsage         = 2  // Invalid usage / bad arguments
	ExitNotFound      = 4  // Secret not found
	ExitConfigError   = 10 // Configuration error
	ExitInterrupted   = 130
	ExitInvalidSecret = 65 // EX_DATAERR
	ExitIndexCorrupt  = 70 // EX_SOFTWARE
	ExitStore         = 74 // EX_IOERR
)

// CLIError represents a structured error with exit code and optional hint
type CLIError struct {
	ExitCode int
	Message  string
	Hint     string
	Err      error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError
func NewCLIError(code int, msg string) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
	}
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// ExitCode returns the process exit code for err
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.ExitCode
	}
	return ExitGeneral
}

// Report prints err and its hint through the formatter
func Report(formatter Formatter, err error) {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		formatter.PrintError(cliErr)
		if cliErr.Hint != "" {
			formatter.PrintHint(cliErr.Hint)
		}
		return
	}
	formatter.PrintError(err)
}
