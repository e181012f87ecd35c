package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type codedErr struct{}

func (codedErr) Error() string        { return "coded" }
func (codedErr) ErrorCode() ErrorCode { return CodeParse }

func TestStandardErrorIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeConfigNotFound, "client configuration not found")
	detailed := NewConfigNotFoundError("Acme", "config/acme.json")

	wrapped := fmt.Errorf("load: %w", detailed)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, New(CodeParse, "other")))
	assert.Equal(t, "Acme", detailed.Metadata["client"])
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "plain", New(CodeTransport, "plain").Error())

	err := NewCredentialMissingError("GROQ_API_KEY", []string{"secrets.toml", ".env"})
	assert.Contains(t, err.Error(), "GROQ_API_KEY not set")
	assert.Contains(t, err.Error(), ".env")
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"standard", NewInvalidConfigError("bad"), CodeInvalidConfig},
		{"wrapped standard", fmt.Errorf("x: %w", NewAlignmentError([]string{"A"}, nil)), CodeAlignment},
		{"coded interface", fmt.Errorf("y: %w", codedErr{}), CodeParse},
		{"uncoded", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}
