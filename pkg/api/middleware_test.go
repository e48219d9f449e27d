package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAPIKey(t *testing.T) {
	handler := requireAPIKey("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name     string
		key      string
		wantCode int
	}{
		{"valid key", "secret", http.StatusOK},
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestContentNegotiationHelpers(t *testing.T) {
	req := httptest.NewRequest("PUT", "/", nil)
	assert.False(t, sendsWire(req))
	assert.False(t, wantsWire(req))

	req.Header.Set("Content-Type", wireContentType)
	req.Header.Set("Accept", wireContentType)
	assert.True(t, sendsWire(req))
	assert.True(t, wantsWire(req))

	req.Header.Set("Content-Type", jsonContentType)
	assert.False(t, sendsWire(req))
}

func TestResponseEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, http.StatusNotFound, "Document not found")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, jsonContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "Document not found")

	rec = httptest.NewRecorder()
	respondRaw(rec, wireContentType, []byte{0xF0, 1, 0, 0, 0})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, wireContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0xF0, 1, 0, 0, 0}, rec.Body.Bytes())
}

func TestUnauthenticatedRoutes(t *testing.T) {
	router, _ := testRouter(t)

	// Protected route without a key
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Metrics stays open for scraping
	req = httptest.NewRequest("GET", "/metrics", nil)
	rec = httptest.NewRecorder()
	router.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsExposition(t *testing.T) {
	router, _ := testRouter(t)

	// Generate some traffic so counters exist.
	rec := router.do(t, "GET", "/api/v1/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest("GET", "/metrics", nil)
	mrec := httptest.NewRecorder()
	router.mux.ServeHTTP(mrec, req)
	require.Equal(t, http.StatusOK, mrec.Code)

	body := mrec.Body.String()
	assert.True(t, strings.Contains(body, "yad_http_requests_total"), body)
	assert.True(t, strings.Contains(body, "yad_health_checks_total"), body)
}

// Two servers in one process must not collide on metric registration.
func TestIndependentMetricsRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}
