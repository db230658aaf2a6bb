package middleware

import (
	"net/http"
)

// ProxyHeaders trusts X-Forwarded-* headers from the platform proxy
// (Railway, Fly, Leapcell) so generated URLs and cookies use the
// original scheme and host. The headers are taken as-is, including the
// host rewrite: deploy only behind a proxy that strips or overwrites
// client-supplied X-Forwarded-* values.
func ProxyHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
			r.URL.Scheme = "https"
		}
		if host := r.Header.Get("X-Forwarded-Host"); host != "" {
			r.Host = host
		}
		next.ServeHTTP(w, r)
	})
}
