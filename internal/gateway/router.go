package gateway

import (
	"net/http"
	"strings"

	"github.com/saransh1220/image-depot/internal/shared/utils"
)

// Middleware wraps an http.Handler
type Middleware func(http.Handler) http.Handler

// Router wraps http.ServeMux and applies a middleware chain around it
type Router struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewRouter creates a new router
func NewRouter() *Router {
	return &Router{
		mux: http.NewServeMux(),
	}
}

// Mux returns the underlying http.ServeMux
func (r *Router) Mux() *http.ServeMux {
	return r.mux
}

// Handle registers a handler for the given pattern
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers a handler function for the given pattern
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// Use appends middleware. The first one added is the outermost.
func (r *Router) Use(mw ...Middleware) {
	r.middlewares = append(r.middlewares, mw...)
}

// Handler returns the mux wrapped in the middleware chain
func (r *Router) Handler() http.Handler {
	var h http.Handler = http.HandlerFunc(r.serveMux)
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}
	return h
}

// serveMux dispatches to the mux. Requests no pattern matches get the mux's
// 404 or 405 status with a JSON body instead of plain text.
func (r *Router) serveMux(w http.ResponseWriter, req *http.Request) {
	if _, pattern := r.mux.Handler(req); pattern == "" {
		w = &jsonErrorWriter{ResponseWriter: w}
	}
	r.mux.ServeHTTP(w, req)
}

type jsonErrorWriter struct {
	http.ResponseWriter
	replaced bool
}

func (w *jsonErrorWriter) WriteHeader(code int) {
	if code == http.StatusNotFound || code == http.StatusMethodNotAllowed {
		w.replaced = true
		w.Header().Del("X-Content-Type-Options")
		utils.WriteError(w.ResponseWriter, code, strings.ToLower(http.StatusText(code)), nil)
		return
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *jsonErrorWriter) Write(b []byte) (int, error) {
	if w.replaced {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}
