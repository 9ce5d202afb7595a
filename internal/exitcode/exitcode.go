package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/skillsphere/skillsphere/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// NetworkError indicates a backend connectivity issue
	NetworkError = 4

	// ConfigError indicates a configuration problem
	ConfigError = 5

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
// Coded errors are classified by their code family; anything else falls
// back to message sniffing.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var appErr *errors.SkillsphereError
	if stderrors.As(err, &appErr) {
		switch {
		case strings.HasPrefix(string(appErr.Code), "AUTH-"),
			strings.HasPrefix(string(appErr.Code), "SESSION-"):
			return AuthError
		case strings.HasPrefix(string(appErr.Code), "API-"):
			return NetworkError
		case strings.HasPrefix(string(appErr.Code), "CONFIG-"):
			return ConfigError
		default:
			return GeneralError
		}
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "not logged in") {
		return AuthError
	}
	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "no such host") ||
		strings.Contains(errMsg, "timeout") {
		return NetworkError
	}
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "invalid argument") {
		return UsageError
	}

	return GeneralError
}
