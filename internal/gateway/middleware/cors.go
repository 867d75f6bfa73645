package middleware

import (
	"net/http"
	"strings"
)

const allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

// CORSMiddleware answers preflight requests and sets CORS headers.
// allowedOrigins is "*" or a comma separated list. Any method and request
// header is accepted.
func CORSMiddleware(next http.Handler, allowedOrigins string) http.Handler {
	wildcard := strings.TrimSpace(allowedOrigins) == "*"
	origins := make(map[string]struct{})
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = struct{}{}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		validOrigin := false
		if wildcard {
			validOrigin = true
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if _, ok := origins[origin]; ok && origin != "" {
			validOrigin = true
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}

		if validOrigin {
			if reqMethod := r.Header.Get("Access-Control-Request-Method"); reqMethod != "" {
				w.Header().Set("Access-Control-Allow-Methods", reqMethod)
			} else {
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			}
			if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				w.Header().Set("Access-Control-Allow-Headers", reqHeaders)
			} else {
				w.Header().Set("Access-Control-Allow-Headers", "*")
			}
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
