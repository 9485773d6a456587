package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkghttp "github.com/BradenHooton/storefront/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) pkghttp.ErrorResponse {
	t.Helper()

	var resp pkghttp.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %q", w.Body.String())
	return resp
}

func TestRecoverer_PanicWritesInternalError(t *testing.T) {
	handler := Correlation(Recoverer(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(pkghttp.CorrelationIDHeader, "corr-panic")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeEnvelope(t, w)
	assert.Equal(t, pkghttp.CodeInternal, resp.Error.Code)
	require.NotNil(t, resp.Error.CorrelationID)
	assert.Equal(t, "corr-panic", *resp.Error.CorrelationID)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRecoverer_PanicAfterResponseStarted(t *testing.T) {
	handler := Recoverer(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		panic("late")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRecoverer_PassesThrough(t *testing.T) {
	handler := Recoverer(discardLogger())(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeout_ExpiredDeadlineWritesInternalError(t *testing.T) {
	handler := Correlation(Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(pkghttp.CorrelationIDHeader, "corr-slow")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeEnvelope(t, w)
	assert.Equal(t, pkghttp.CodeInternal, resp.Error.Code)
	require.NotNil(t, resp.Error.CorrelationID)
	assert.Equal(t, "corr-slow", *resp.Error.CorrelationID)
}

func TestTimeout_HandlerAnswerIsKept(t *testing.T) {
	handler := Timeout(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		pkghttp.WriteInternalError(w, r)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// exactly one envelope
	dec := json.NewDecoder(w.Body)
	var first pkghttp.ErrorResponse
	require.NoError(t, dec.Decode(&first))
	assert.False(t, dec.More())
}

func TestTimeout_FastHandlerUnaffected(t *testing.T) {
	handler := Timeout(time.Second)(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
