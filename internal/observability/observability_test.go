package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContextDefaultsToNop(t *testing.T) {
	assert.Same(t, Nop(), FromContext(context.Background()))

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "hello", logs.All()[0].Message)
}

func TestNewLoggerAcceptsUnknownLevel(t *testing.T) {
	logger, err := NewLogger("chatty")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = NewLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestTraceMiddlewarePassesThrough(t *testing.T) {
	h := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("brew"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/fr/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "brew", rr.Body.String())
}

func TestStatusRecorderCountsBytes(t *testing.T) {
	rec := NewStatusRecorder(httptest.NewRecorder())
	_, _ = rec.Write([]byte("abc"))
	assert.Equal(t, http.StatusOK, rec.Status())
	assert.EqualValues(t, 3, rec.BytesWritten())
	assert.Same(t, rec, NewStatusRecorder(rec))
}
