package llm

import (
	"fmt"

	"github.com/sant0-9/copysmith/internal/apperrors"
)

var (
	// ErrTransport matches every *TransportError under errors.Is.
	ErrTransport = apperrors.New(apperrors.CodeTransport, "provider request failed")

	// ErrEmptyResponse means the provider answered but returned no text.
	ErrEmptyResponse = apperrors.New(apperrors.CodeEmptyResponse, "provider returned an empty response")
)

// TransportError is a failed call: a network error, a timeout, a non-success
// status or an undecodable body. StatusCode is 0 when no response arrived.
type TransportError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) ErrorCode() apperrors.ErrorCode { return apperrors.CodeTransport }

func emptyResponse(provider string) error {
	return fmt.Errorf("%s: %w", provider, ErrEmptyResponse)
}
