package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/services"
)

// Rehydrator turns a session reference back into an account.
type Rehydrator interface {
	Rehydrate(ctx context.Context, ref models.SessionReference) (*models.Account, error)
}

// SessionReader reads and clears the session reference.
type SessionReader interface {
	Reference(r *http.Request) models.SessionReference
	Clear(w http.ResponseWriter, r *http.Request) error
}

// PrincipalHandlerFunc is a handler that receives the resolved caller
// explicitly.
type PrincipalHandlerFunc func(w http.ResponseWriter, r *http.Request, rc *RequestContext)

// AuthMiddleware attaches the session principal to requests.
type AuthMiddleware struct {
	resolver Rehydrator
	sessions SessionReader
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver Rehydrator, sessions SessionReader, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
		sessions: sessions,
		logger:   logger,
	}
}

// Resolve builds the RequestContext for r. A session pointing at an account
// that no longer exists is cleared. Store failures are recorded in Err and
// never produce a principal.
func (m *AuthMiddleware) Resolve(w http.ResponseWriter, r *http.Request) *RequestContext {
	rc := &RequestContext{RequestID: chimiddleware.GetReqID(r.Context())}

	ref := m.sessions.Reference(r)
	if ref.IsZero() {
		return rc
	}

	acct, err := m.resolver.Rehydrate(r.Context(), ref)
	switch {
	case err == nil:
		rc.Account = acct
	case services.IsAbsentPrincipal(err):
		m.logger.Debug("session references unknown account",
			zap.String("request_id", rc.RequestID))
		if err := m.sessions.Clear(w, r); err != nil {
			m.logger.Warn("failed to clear dangling session",
				zap.String("request_id", rc.RequestID),
				zap.Error(err))
		}
	default:
		m.logger.Error("failed to rehydrate session",
			zap.String("request_id", rc.RequestID),
			zap.Error(err))
		rc.Err = err
	}
	return rc
}

// LoadPrincipal is a middleware that resolves the caller once and stores the
// RequestContext on the request context.
func (m *AuthMiddleware) LoadPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rc := m.Resolve(w, r)
		next.ServeHTTP(w, r.WithContext(WithRequestContext(r.Context(), rc)))
	})
}

// WithPrincipal adapts a PrincipalHandlerFunc to http.HandlerFunc. It reuses
// a RequestContext stored by LoadPrincipal and resolves one otherwise.
func (m *AuthMiddleware) WithPrincipal(h PrincipalHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rc := GetRequestContext(r.Context())
		if rc == nil {
			rc = m.Resolve(w, r)
		}
		h(w, r, rc)
	}
}
