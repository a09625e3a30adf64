package testutil

import (
	"context"
	"net/http"
	"time"

	"customercore/pkg/requestcontext"
)

// WithActor adds the acting principal to the request context, as the actor
// middleware would for an authenticated request.
func WithActor(req *http.Request, actor string) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), actor))
}

// ActorContext returns a background context carrying actor and a fixed clock.
func ActorContext(actor string, now time.Time) context.Context {
	ctx := requestcontext.WithActor(context.Background(), actor)
	return requestcontext.WithTime(ctx, now)
}
