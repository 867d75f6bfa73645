package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware_LabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /uploads/{filename}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := PrometheusMiddleware(mux)

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/uploads/{filename}", "404")
	before := testutil.ToFloat64(counter)

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/"+name, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(counter))
}

func TestPrometheusMiddleware_Unmatched(t *testing.T) {
	handler := PrometheusMiddleware(http.NewServeMux())

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/random/path", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestPrometheusMiddleware_DifferentStatusCodes(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
	}{
		{"success_200", http.StatusOK},
		{"bad_request_400", http.StatusBadRequest},
		{"too_large_413", http.StatusRequestEntityTooLarge},
		{"server_error_500", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("POST /upload", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
			})
			handler := PrometheusMiddleware(mux)

			counter := httpRequestsTotal.WithLabelValues(http.MethodPost, "/upload", strconv.Itoa(tc.statusCode))
			before := testutil.ToFloat64(counter)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/upload", nil))

			assert.Equal(t, tc.statusCode, rec.Code)
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestRouteLabel(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "unmatched", routeLabel(r))

	r.Pattern = "GET /uploads/{filename}"
	assert.Equal(t, "/uploads/{filename}", routeLabel(r))

	r.Pattern = "/metrics"
	assert.Equal(t, "/metrics", routeLabel(r))
}
