package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{ErrCodeImbalance, http.StatusUnprocessableEntity},
		{ErrCodeMissingAccount, http.StatusUnprocessableEntity},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{"ERR_NO_SUCH_CODE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, GetHTTPStatus(tt.code), tt.code)
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeImbalance, NormalizeErrorCode("IMBALANCE"))
	assert.Equal(t, ErrCodeMissingAccount, NormalizeErrorCode("MISSING_ACCOUNT"))
	assert.Equal(t, "ERR_CUSTOM", NormalizeErrorCode("ERR_CUSTOM"))
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Sale not found", "req-123")
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 45, 2, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
