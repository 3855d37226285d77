package middleware

import "net/http"

type CORSMiddleware struct {
	allowAny bool
	allowed  map[string]bool
}

// NewCORSMiddleware allows the given origins; "*" allows every origin.
func NewCORSMiddleware(allowedOrigins []string) *CORSMiddleware {
	m := &CORSMiddleware{allowed: make(map[string]bool, len(allowedOrigins))}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			m.allowAny = true
		}
		m.allowed[origin] = true
	}
	return m
}

func (r *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if allowOrigin := r.allowOrigin(req.Header.Get("Origin")); allowOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			if allowOrigin != "*" {
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}

// allowOrigin returns the Access-Control-Allow-Origin value, or "" when the
// origin is not permitted.
func (r *CORSMiddleware) allowOrigin(origin string) string {
	if r.allowAny {
		return "*"
	}
	if origin != "" && r.allowed[origin] {
		return origin
	}
	return ""
}
