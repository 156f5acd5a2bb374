package server

import (
	"errors"
	"net/http"
	"testing"
	"time"

	invoicedomain "github.com/smallbiznis/invoicegen/internal/invoice/domain"
	"github.com/smallbiznis/invoicegen/internal/invoice/terms"
	"github.com/smallbiznis/invoicegen/internal/upload"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorValidation(t *testing.T) {
	status, payload := mapError(invoicedomain.ErrInvalidIssueDate)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)
	if assert.Len(t, payload.Errors, 1) {
		assert.Equal(t, "invalid_issue_date", payload.Errors[0].Code)
		assert.Equal(t, "issue_date", payload.Errors[0].Field)
	}

	status, payload = mapError(terms.ErrUnknownTerms)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_payment_terms", payload.Errors[0].Code)
}

func TestMapErrorValidationEnvelope(t *testing.T) {
	status, payload := mapError(newValidationError("id", "invalid_id", "invalid id"))
	assert.Equal(t, http.StatusBadRequest, status)
	if assert.Len(t, payload.Errors, 1) {
		assert.Equal(t, "id", payload.Errors[0].Field)
	}
}

func TestMapErrorNotFound(t *testing.T) {
	status, payload := mapError(invoicedomain.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", payload.Type)
}

func TestMapErrorConflict(t *testing.T) {
	status, payload := mapError(invoicedomain.ErrDuplicateNumber)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "conflict", payload.Type)
}

func TestMapErrorUpload(t *testing.T) {
	status, _ := mapError(upload.ErrFileTooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)

	status, payload := mapError(upload.ErrNotAnImage)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_file_type", payload.Errors[0].Code)
}

func TestMapErrorUnknownIsInternal(t *testing.T) {
	status, payload := mapError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	assert.True(t, rl.allow("1.2.3.4"))
	assert.True(t, rl.allow("1.2.3.4"))
	assert.False(t, rl.allow("1.2.3.4"))
	assert.True(t, rl.allow("5.6.7.8"))
}
