// Package requesttime provides middleware for request-scoped time.
// All operations within a single HTTP request share one "now", so the
// timestamps on a customer, its command record and its audit events agree.
package requesttime

import (
	"net/http"
	"time"

	"customercore/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request
// and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
