package cli

import (
	"context"
	"errors"

	"github.com/semmy-space/twofa/internal/fault"
	"github.com/semmy-space/twofa/internal/output"
	"github.com/semmy-space/twofa/internal/vault"
)

// Classify maps an error to a CLIError with exit code and hint
func Classify(err error) *output.CLIError {
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	msg := err.Error()
	switch {
	case errors.Is(err, context.Canceled):
		return output.NewCLIError(output.ExitInterrupted, "interrupted")
	case errors.Is(err, vault.ErrInvalidName):
		return &output.CLIError{ExitCode: output.ExitUsage, Message: msg, Err: err}
	case errors.Is(err, vault.ErrCannotEnumerate):
		return (&output.CLIError{ExitCode: output.ExitConfigError, Message: msg, Err: err}).
			WithHint("Use the keyring or file backend: twofa config set backend keyring")
	}

	switch fault.KindOf(err) {
	case fault.NotFound:
		return (&output.CLIError{ExitCode: output.ExitNotFound, Message: msg, Err: err}).
			WithHint("Run: twofa list")
	case fault.InvalidSecret:
		return (&output.CLIError{ExitCode: output.ExitInvalidSecret, Message: msg, Err: err}).
			WithHint("Secrets are base32 (A-Z, 2-7) or otpauth://totp/ URIs")
	case fault.IndexCorrupt:
		return (&output.CLIError{ExitCode: output.ExitIndexCorrupt, Message: msg, Err: err}).
			WithHint("Run: twofa reindex")
	case fault.Store:
		return &output.CLIError{ExitCode: output.ExitStore, Message: msg, Err: err}
	case fault.Unknown:
		return &output.CLIError{ExitCode: output.ExitGeneral, Message: msg, Err: err}
	}
	return &output.CLIError{ExitCode: output.ExitGeneral, Message: msg, Err: err}
}
