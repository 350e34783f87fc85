package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidationFailed = "LOCALENAV_COMMAND_VALIDATION_FAILED"
	codeCanceled         = "LOCALENAV_COMMAND_CANCELED"
	codeTimeout          = "LOCALENAV_COMMAND_TIMEOUT"
	codeContextError     = "LOCALENAV_COMMAND_CONTEXT_ERROR"
	codeExecutionFailed  = "LOCALENAV_COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "localenav command validation failed").
		WithTextCode(codeValidationFailed)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "localenav command canceled").
			WithTextCode(codeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "localenav command timed out").
			WithTextCode(codeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "localenav command context error").
			WithTextCode(codeContextError)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "localenav command execution failed").
		WithTextCode(codeExecutionFailed)
}
