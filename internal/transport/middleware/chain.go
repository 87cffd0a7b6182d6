// Package middleware holds the HTTP middleware stack: request IDs, request
// logging, panic recovery, CORS, and bearer-token authentication.
package middleware

import "net/http"

// Middleware wraps an http.Handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware into one. The first argument becomes the
// outermost wrapper, so Chain(a, b)(h) runs a, then b, then h.
func Chain(mws ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		wrapped := next
		for i := len(mws) - 1; i >= 0; i-- {
			wrapped = mws[i](wrapped)
		}
		return wrapped
	}
}
