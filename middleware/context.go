package middleware

import (
	"context"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
)

// Context key type to avoid collisions
type contextKey string

// RequestContextKey is the context key for the resolved RequestContext.
const RequestContextKey contextKey = "request_context"

// RequestContext carries what a handler needs to know about the caller.
// Account is nil when no principal is attached; Err is set when the store
// could not be consulted, in which case Account is also nil.
type RequestContext struct {
	RequestID string
	Account   *models.Account
	Err       error
}

// Authenticated reports whether a principal is attached.
func (rc *RequestContext) Authenticated() bool {
	return rc != nil && rc.Account != nil
}

// GetRequestContext retrieves the RequestContext from context
func GetRequestContext(ctx context.Context) *RequestContext {
	if val := ctx.Value(RequestContextKey); val != nil {
		if rc, ok := val.(*RequestContext); ok {
			return rc
		}
	}
	return nil
}

// WithRequestContext adds a RequestContext to the context
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, RequestContextKey, rc)
}
