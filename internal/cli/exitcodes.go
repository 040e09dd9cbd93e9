package cli

import (
	"errors"

	"github.com/yaklabco/gomdtree/internal/configloader"
	"github.com/yaklabco/gomdtree/pkg/runner"
)

// Exit codes for gomdtree.
const (
	// ExitSuccess indicates every file rendered.
	ExitSuccess = 0

	// ExitRenderFailures indicates the run completed but some files failed.
	ExitRenderFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

// ErrRenderFailures is returned when at least one file failed to render.
var ErrRenderFailures = errors.New("some files failed to render")

// ExitCodeFromResult determines the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitRenderFailures
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrRenderFailures):
		return ExitRenderFailures
	case errors.As(err, &validationErr), errors.Is(err, errConfigLoad):
		return ExitConfigError
	case errors.Is(err, errUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}
