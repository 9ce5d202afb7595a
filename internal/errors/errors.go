package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound    ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid     ErrorCode = "CONFIG-002"
	ErrCodeConfigWriteFailed ErrorCode = "CONFIG-003"

	// Backend API errors (API-001 to API-099)
	ErrCodeAPIRequestFailed ErrorCode = "API-001"
	ErrCodeAPIStatus        ErrorCode = "API-002"
	ErrCodeAPIDecodeFailed  ErrorCode = "API-003"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionBootstrap    ErrorCode = "SESSION-001"
	ErrCodeSessionLogoutFailed ErrorCode = "SESSION-002"

	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthLoginFailed      ErrorCode = "AUTH-001"
	ErrCodeAuthSignupFailed     ErrorCode = "AUTH-002"
	ErrCodeAuthInvalidInput     ErrorCode = "AUTH-003"
	ErrCodeAuthNotAuthenticated ErrorCode = "AUTH-004"

	// Onboarding errors (ONBOARD-001 to ONBOARD-099)
	ErrCodeOnboardWrongStep      ErrorCode = "ONBOARD-001"
	ErrCodeOnboardInvalidInput   ErrorCode = "ONBOARD-002"
	ErrCodeOnboardCreateOrg      ErrorCode = "ONBOARD-003"
	ErrCodeOnboardJoinOrg        ErrorCode = "ONBOARD-004"
	ErrCodeOnboardResponses      ErrorCode = "ONBOARD-005"
	ErrCodeOnboardCompleteFailed ErrorCode = "ONBOARD-006"
)

// SkillsphereError represents an enhanced error with code, suggestions, and documentation
type SkillsphereError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *SkillsphereError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *SkillsphereError) Unwrap() error {
	return e.Cause
}

// New creates a new SkillsphereError
func New(code ErrorCode, message string) *SkillsphereError {
	return &SkillsphereError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new SkillsphereError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *SkillsphereError {
	return &SkillsphereError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *SkillsphereError) WithSuggestion(suggestion string) *SkillsphereError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *SkillsphereError) WithSuggestions(suggestions ...string) *SkillsphereError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *SkillsphereError) WithDocs(url string) *SkillsphereError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewConfigNotFoundError creates a config file not found error
func NewConfigNotFoundError(path string) *SkillsphereError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithSuggestion("Run 'skillsphere config set backend_url <url>' to create one").
		WithSuggestion("Check if the file path is correct")
}

// NewConfigInvalidError creates a config parse error
func NewConfigInvalidError(path string, cause error) *SkillsphereError {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("failed to parse configuration file: %s", path), cause).
		WithSuggestion("Check the file is valid YAML").
		WithSuggestion("Run 'skillsphere config view' to inspect the current configuration")
}

// NewBackendUnreachableError creates a backend connectivity error
func NewBackendUnreachableError(baseURL string, cause error) *SkillsphereError {
	return Wrap(ErrCodeAPIRequestFailed, fmt.Sprintf("backend unreachable: %s", baseURL), cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify backend_url in ~/.skillsphere/config.yaml")
}

// NewNotAuthenticatedError creates an error for commands that need a session
func NewNotAuthenticatedError() *SkillsphereError {
	return New(ErrCodeAuthNotAuthenticated, "not logged in").
		WithSuggestion("Run 'skillsphere login' to authenticate")
}

// NewOnboardWrongStepError creates an error for a submission made on the wrong wizard step
func NewOnboardWrongStepError(got, want string) *SkillsphereError {
	return New(ErrCodeOnboardWrongStep, fmt.Sprintf("onboarding is on step %q, expected %q", got, want)).
		WithSuggestion("Complete the current step before submitting the next one")
}
