package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/finsl/signbank-backend/pkg/ctxutil"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags each request with an id for log correlation. An id supplied
// by the caller is kept; otherwise a fresh UUID is generated. The id is
// stored in the context and echoed back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
