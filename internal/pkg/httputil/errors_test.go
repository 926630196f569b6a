package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("thing not found")

func TestHandleError(t *testing.T) {
	mappings := []ErrorMapping{
		{Error: errNotFound, Status: http.StatusNotFound},
		{Error: context.DeadlineExceeded, Status: http.StatusGatewayTimeout, Message: "try again later"},
	}

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"sentinel uses its own message", errNotFound, http.StatusNotFound, `{"error":{"message":"thing not found"}}`},
		{"wrapped sentinel hides wrapping", fmt.Errorf("lookup 42: %w", errNotFound), http.StatusNotFound, `{"error":{"message":"thing not found"}}`},
		{"explicit message", context.DeadlineExceeded, http.StatusGatewayTimeout, `{"error":{"message":"try again later"}}`},
		{"unmapped is internal", errors.New("pq: password authentication failed"), http.StatusInternalServerError, `{"error":{"message":"internal error"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(context.Background(), rec, tt.err, mappings)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	Empty(rec, http.StatusOK)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}
