package logging

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger_CreatesDir(t *testing.T) {
	prev := []*zap.Logger{AppLogger, RequestLogger, TimerLogger, ErrorLogger}
	t.Cleanup(func() {
		AppLogger, RequestLogger, TimerLogger, ErrorLogger = prev[0], prev[1], prev[2], prev[3]
	})

	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitLogger(Options{Dir: dir}))

	AppLogger.Info("hello")
	Sync()

	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestRequestMiddleware_LogsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := RequestLogger
	RequestLogger = zap.New(core)
	t.Cleanup(func() { RequestLogger = prev })

	h := RequestMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/posts", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)
	assert.EqualValues(t, http.StatusTeapot, entry.ContextMap()["status"])
	assert.Equal(t, "/posts", entry.ContextMap()["path"])
}
