package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/health", dummyHandler())
	rp.Get("/metrics", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/health", routes[0].Url)
	assert.Equal(t, "/metrics", routes[1].Url)
}

func TestMethodHandler(t *testing.T) {
	handler := methodHandler(http.MethodGet, dummyHandler())

	tests := []struct {
		method string
		code   int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodHead, http.StatusOK},
		{http.MethodPost, http.StatusMethodNotAllowed},
		{http.MethodDelete, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(tt.method, "/health", nil))
		assert.Equal(t, tt.code, rr.Code, tt.method)
	}
}

func TestRouterProvider_MuxInstrumentsRoutes(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/health", dummyHandler())
	metrics := &mockMetrics{}

	mux := rp.Mux(metrics)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/health", metrics.requestEndpoint)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.StatusMethodNotAllowed, metrics.requestStatus)
}
