// Package apperrors defines the error taxonomy shared by the generation pipeline
// and the UI boundary that reports it.
package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode identifies a class of failure independent of its message.
type ErrorCode string

const (
	CodeConfigNotFound    ErrorCode = "CONFIG_NOT_FOUND"
	CodeCredentialMissing ErrorCode = "CREDENTIAL_MISSING"
	CodeTransport         ErrorCode = "TRANSPORT_ERROR"
	CodeEmptyResponse     ErrorCode = "EMPTY_RESPONSE"
	CodeParse             ErrorCode = "PARSE_ERROR"
	CodeAlignment         ErrorCode = "ALIGNMENT_ERROR"
	CodeInvalidConfig     ErrorCode = "INVALID_CONFIG"
)

// StandardError is a coded application error. Two StandardErrors match under
// errors.Is when their codes are equal, so package sentinels can be compared
// against detailed instances.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Code == e.Code
}

// New creates a sentinel-style error with no details.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{Code: code, Message: message}
}

// NewConfigNotFoundError reports a client without a configuration file.
func NewConfigNotFoundError(client, searched string) *StandardError {
	return &StandardError{
		Code:      CodeConfigNotFound,
		Message:   fmt.Sprintf("config not found for client: %s", client),
		Details:   fmt.Sprintf("searched %s", searched),
		Retryable: false,
		Metadata:  map[string]interface{}{"client": client},
		Timestamp: time.Now().UTC(),
	}
}

// NewCredentialMissingError reports a required API credential that no source provided.
func NewCredentialMissingError(key string, sources []string) *StandardError {
	return &StandardError{
		Code:      CodeCredentialMissing,
		Message:   fmt.Sprintf("%s not set", key),
		Details:   fmt.Sprintf("add it to one of: %v", sources),
		Retryable: false,
		Metadata:  map[string]interface{}{"key": key},
		Timestamp: time.Now().UTC(),
	}
}

// NewAlignmentError reports a sections list that does not line up with the schema.
func NewAlignmentError(sections, fields []string) *StandardError {
	return &StandardError{
		Code:    CodeAlignment,
		Message: "sections do not align with schema fields",
		Details: fmt.Sprintf("%d sections %v for %d fields %v", len(sections), sections, len(fields), fields),
		Metadata: map[string]interface{}{
			"sections": sections,
			"fields":   fields,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidConfigError reports a configuration value outside its allowed range.
func NewInvalidConfigError(details string) *StandardError {
	return &StandardError{
		Code:      CodeInvalidConfig,
		Message:   "invalid configuration",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf returns the code of the first StandardError in err's chain. Errors
// that are not coded report an empty code.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	type coded interface{ ErrorCode() ErrorCode }
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}
