package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/config"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/utils"
)

// LinkedIn implements Provider with LinkedIn's OpenID Connect endpoints.
// Endpoints come from configuration rather than discovery so that the
// adapter can run against a local fake.
type LinkedIn struct {
	cfg        config.LinkedInConfig
	oauth      *oauth2.Config
	provider   *oidc.Provider
	verifier   *oidc.IDTokenVerifier
	httpClient *http.Client
	logger     *zap.Logger
}

// NewLinkedIn builds the adapter. It does no network I/O.
func NewLinkedIn(cfg config.LinkedInConfig, logger *zap.Logger) *LinkedIn {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	// The key set fetches lazily with this context, so it must outlive requests.
	keyCtx := oidc.ClientContext(context.Background(), httpClient)
	provider := (&oidc.ProviderConfig{
		IssuerURL:   cfg.IssuerURL,
		AuthURL:     cfg.AuthURL,
		TokenURL:    cfg.TokenURL,
		UserInfoURL: cfg.UserInfoURL,
		JWKSURL:     cfg.JWKSURL,
		Algorithms:  []string{oidc.RS256},
	}).NewProvider(keyCtx)

	endpoint := provider.Endpoint()
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &LinkedIn{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     endpoint,
			Scopes:       cfg.Scopes,
		},
		provider:   provider,
		verifier:   provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		httpClient: httpClient,
		logger:     logger,
	}
}

// AuthCodeURL returns the LinkedIn authorization URL.
func (l *LinkedIn) AuthCodeURL(state string) string {
	return l.oauth.AuthCodeURL(state)
}

type userInfoClaims struct {
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
}

// Exchange redeems the authorization code and reads the userinfo profile.
func (l *LinkedIn) Exchange(ctx context.Context, params CallbackParams) Result {
	if params.Error != "" {
		return Denied(params.Error)
	}
	if params.Code == "" {
		return Denied("missing_code")
	}

	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()
	ctx = oidc.ClientContext(ctx, l.httpClient)

	token, err := l.oauth.Exchange(ctx, params.Code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "access_denied" {
			return Denied(retrieveErr.ErrorCode)
		}
		return TransportError(fmt.Errorf("token exchange: %w", err))
	}

	var idSubject string
	if rawIDToken, ok := token.Extra("id_token").(string); ok && rawIDToken != "" {
		idToken, err := l.verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return TransportError(fmt.Errorf("id_token verification: %w", err))
		}
		idSubject = idToken.Subject
	}

	info, err := l.provider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return TransportError(fmt.Errorf("userinfo: %w", err))
	}
	if idSubject != "" && idSubject != info.Subject {
		return TransportError(errors.New("userinfo subject does not match id_token"))
	}

	var claims userInfoClaims
	if err := info.Claims(&claims); err != nil {
		return TransportError(fmt.Errorf("userinfo claims: %w", err))
	}

	profile := models.ProviderProfile{
		ProviderID:  info.Subject,
		DisplayName: displayName(claims),
		Email:       strings.TrimSpace(claims.Email),
	}
	if err := utils.ValidateStruct(profile); err != nil {
		return TransportError(fmt.Errorf("profile: %w", err))
	}

	l.logger.Debug("linkedin profile verified",
		zap.Bool("email_present", profile.Email != ""),
		zap.Bool("id_token_verified", idSubject != ""))

	return Success(profile)
}

func displayName(c userInfoClaims) string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(c.GivenName) + " " + strings.TrimSpace(c.FamilyName))
}
