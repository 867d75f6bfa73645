package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRouter(t *testing.T) {
	router := NewRouter()

	assert.NotNil(t, router)
	assert.NotNil(t, router.Mux())
	assert.Empty(t, router.middlewares)
}

func TestRouter_HandleAndHandleFunc(t *testing.T) {
	router := NewRouter()

	router.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	router.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	w = httptest.NewRecorder()
	router.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	router := NewRouter()
	var order []string

	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	router.Use(tag("outer"), tag("inner"))
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	router.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRouter_UnmatchedRoutesReplyJSON(t *testing.T) {
	router := NewRouter()
	router.HandleFunc("GET /uploads/{filename}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		method string
		target string
		status int
		detail string
	}{
		{http.MethodGet, "/uploads/", http.StatusNotFound, "not found"},
		{http.MethodGet, "/uploads/a/b", http.StatusNotFound, "not found"},
		{http.MethodDelete, "/uploads/a.png", http.StatusMethodNotAllowed, "method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"detail":"`+tt.detail+`"}`, w.Body.String())
		})
	}

	w := httptest.NewRecorder()
	router.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/uploads/a.png", nil))
	assert.Contains(t, w.Header().Get("Allow"), http.MethodGet)
}

func TestRouter_RedirectsPassThrough(t *testing.T) {
	router := NewRouter()
	router.HandleFunc("GET /uploads/{filename}", func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	router.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x/../uploads/a.png", nil))

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/uploads/a.png", w.Header().Get("Location"))
}
