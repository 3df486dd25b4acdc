package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/config"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/services"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/services/identity"
)

// SessionStore is the part of the session mechanism the login flow needs.
type SessionStore interface {
	BeginLogin(w http.ResponseWriter, r *http.Request, nonce string) error
	Nonce(r *http.Request) (string, bool)
	CompleteLogin(w http.ResponseWriter, r *http.Request, ref models.SessionReference) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// PrincipalResolver maps a verified profile to a local account and its
// session reference.
type PrincipalResolver interface {
	ResolveOrCreate(ctx context.Context, profile models.ProviderProfile) (*models.Account, error)
	Materialize(acct *models.Account) (models.SessionReference, error)
}

// Handler handles the LinkedIn login, callback and logout flows.
//
// Every failure inside the flow ends in a redirect to the configured failure
// URL with the session cleared; the client never sees provider or store
// details.
type Handler struct {
	cfg      *config.Config
	provider identity.Provider
	resolver PrincipalResolver
	sessions SessionStore
	states   *StateSigner
	logger   *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(cfg *config.Config, provider identity.Provider, resolver PrincipalResolver, sessions SessionStore, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		provider: provider,
		resolver: resolver,
		sessions: sessions,
		states:   NewStateSigner(cfg.Session.Secret, cfg.Session.StateTTL),
		logger:   logger,
	}
}

// HandleLogin starts a login: it stores a fresh nonce in the session and
// redirects to the provider with a signed state bound to that nonce.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	nonce := uuid.NewString()
	state, err := h.states.Sign(nonce)
	if err != nil {
		log.Error("failed to sign oauth state", zap.Error(err))
		h.fail(w, r, log)
		return
	}

	if err := h.sessions.BeginLogin(w, r, nonce); err != nil {
		log.Error("failed to save login session", zap.Error(err))
		h.fail(w, r, log)
		return
	}

	http.Redirect(w, r, h.provider.AuthCodeURL(state), http.StatusFound)
}

// HandleCallback completes a login started by HandleLogin.
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)
	params := identity.CallbackParamsFromQuery(r.URL.Query())

	if err := h.checkState(r, params.State); err != nil {
		log.Warn("login callback rejected", zap.Error(err))
		h.fail(w, r, log)
		return
	}

	result := h.provider.Exchange(r.Context(), params)
	if result.Outcome != identity.OutcomeSuccess {
		log.Warn("identity provider did not authenticate user",
			zap.Stringer("outcome", result.Outcome),
			zap.String("reason", result.Reason),
			zap.Error(result.Error()))
		h.fail(w, r, log)
		return
	}

	acct, err := h.resolver.ResolveOrCreate(r.Context(), result.Profile)
	if err != nil {
		log.Error("failed to resolve account",
			zap.String("error_type", string(services.GetErrorType(err))),
			zap.Error(err))
		h.fail(w, r, log)
		return
	}

	ref, err := h.resolver.Materialize(acct)
	if err != nil {
		log.Error("failed to materialize session", zap.Error(err))
		h.fail(w, r, log)
		return
	}

	if err := h.sessions.CompleteLogin(w, r, ref); err != nil {
		log.Error("failed to save session", zap.Error(err))
		h.fail(w, r, log)
		return
	}

	log.Info("login succeeded", zap.String("local_id", acct.LocalID))
	http.Redirect(w, r, h.cfg.Redirects.SuccessURL, http.StatusFound)
}

// HandleLogout clears the session and redirects to the logout URL.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.requestLogger(r).Warn("failed to clear session", zap.Error(err))
	}
	http.Redirect(w, r, h.cfg.Redirects.LogoutURL, http.StatusFound)
}

func (h *Handler) checkState(r *http.Request, state string) error {
	expected, ok := h.sessions.Nonce(r)
	if !ok {
		return fmt.Errorf("%w: no login in progress", services.ErrInvalidState)
	}

	nonce, err := h.states.Verify(state)
	if err != nil {
		return fmt.Errorf("%w: %v", services.ErrInvalidState, err)
	}

	if subtle.ConstantTimeCompare([]byte(nonce), []byte(expected)) != 1 {
		return fmt.Errorf("%w: nonce mismatch", services.ErrInvalidState)
	}
	return nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log *zap.Logger) {
	if err := h.sessions.Clear(w, r); err != nil {
		log.Warn("failed to clear session", zap.Error(err))
	}
	http.Redirect(w, r, h.cfg.Redirects.FailureURL, http.StatusFound)
}

func (h *Handler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("request_id", chimiddleware.GetReqID(r.Context())))
}
