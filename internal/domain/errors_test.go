package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/domain"
)

func TestValidationError_DefaultMessage(t *testing.T) {
	err := domain.NewValidationError("transport", "")

	assert.Equal(t, "transport is required", err.Error())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConnectionError_MessageCarriesBaseURL(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := &domain.ConnectionError{BaseURL: "http://localhost:4000", Err: cause}

	assert.Equal(t, "Cannot connect to server. Please make sure the backend server is running on http://localhost:4000", err.Error())
	assert.ErrorIs(t, err, domain.ErrConnection)
	assert.ErrorIs(t, err, cause)
}

func TestUnsupportedInputError_ListsSupported(t *testing.T) {
	err := &domain.UnsupportedInputError{Kind: "location", Input: "Nowhereland", Supported: []string{"goa", "paris"}}

	assert.Equal(t, `unsupported location "Nowhereland". Supported: goa, paris`, err.Error())
	assert.ErrorIs(t, err, domain.ErrUnsupportedInput)
}

// TestUserMessage_DropsWrapPrefixes verifies that the text shown to the user
// is the typed error's own message, not the wrapped chain.
func TestUserMessage_DropsWrapPrefixes(t *testing.T) {
	wrapped := fmt.Errorf("wizard.Wizard.Commit: %w", &domain.ServerError{Status: 500, Message: "Trip limit reached"})

	assert.Equal(t, "Trip limit reached", domain.UserMessage(wrapped))
	assert.Equal(t, "plain failure", domain.UserMessage(errors.New("plain failure")))
	assert.Empty(t, domain.UserMessage(nil))
}
