package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astral-academy/mastery-api/internal/api/shared"
	"github.com/astral-academy/mastery-api/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel() // Enable parallel execution
	var seenTraceID string
	var loggerWasSet bool

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		loggerWasSet = logger.FromContext(r.Context()) != nil
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()
	TraceMiddleware(inner).ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, seenTraceID, "downstream handlers must see a trace ID")
	assert.True(t, loggerWasSet, "downstream handlers must see a request-scoped logger")
}
