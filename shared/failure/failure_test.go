package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"tablebook/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "people is missing.",
	}

	assert.Equal(t, "people is missing.", f.Error())
}

func TestMissingBody(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, failure.MissingBody.Code)
	assert.Equal(t, "missing body", failure.MissingBody.Message)
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				assert.NoError(t, result)

				return
			}

			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "bad request from string",
			err:     failure.BadRequestFromString("location is closed on Tuesdays"),
			code:    http.StatusBadRequest,
			message: "location is closed on Tuesdays",
		},
		{
			name:    "not found",
			err:     failure.NotFound("Reservation 99 does not exist."),
			code:    http.StatusNotFound,
			message: "Reservation 99 does not exist.",
		},
		{
			name:    "method not allowed",
			err:     failure.MethodNotAllowed(http.MethodPatch),
			code:    http.StatusMethodNotAllowed,
			message: "PATCH not allowed",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("invalid api key"),
			code:    http.StatusUnauthorized,
			message: "invalid api key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			require.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to seat table: %w", failure.NotFound("Table 7 does not exist.")),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}
