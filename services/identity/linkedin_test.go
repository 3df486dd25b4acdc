package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/config"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/services"
)

// fakeLinkedIn serves the token, userinfo and JWKS endpoints.
type fakeLinkedIn struct {
	tokenStatus int
	tokenBody   map[string]interface{}
	userInfo    map[string]interface{}
	userDelay   time.Duration
	lastForm    url.Values
}

func (f *fakeLinkedIn) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/accessToken", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		f.lastForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		status := f.tokenStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(f.tokenBody)
	})
	mux.HandleFunc("/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.userDelay > 0 {
			time.Sleep(f.userDelay)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(f.userInfo)
	})
	mux.HandleFunc("/oauth/openid/jwks", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"keys":[]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testLinkedIn(t *testing.T, srv *httptest.Server, timeout time.Duration) *LinkedIn {
	t.Helper()
	return NewLinkedIn(config.LinkedInConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		CallbackURL:  "http://localhost:3001/auth/login/callback",
		Scopes:       []string{"openid", "profile", "email"},
		IssuerURL:    srv.URL + "/oauth",
		AuthURL:      srv.URL + "/oauth/v2/authorization",
		TokenURL:     srv.URL + "/oauth/v2/accessToken",
		UserInfoURL:  srv.URL + "/v2/userinfo",
		JWKSURL:      srv.URL + "/oauth/openid/jwks",
		Timeout:      timeout,
	}, zap.NewNop())
}

func validToken() map[string]interface{} {
	return map[string]interface{}{"access_token": "at-123", "token_type": "Bearer", "expires_in": 3600}
}

func TestLinkedIn_AuthCodeURL(t *testing.T) {
	srv := (&fakeLinkedIn{}).server(t)
	l := testLinkedIn(t, srv, time.Second)

	u, err := url.Parse(l.AuthCodeURL("state-xyz"))
	require.NoError(t, err)

	assert.Equal(t, "/oauth/v2/authorization", u.Path)
	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "http://localhost:3001/auth/login/callback", q.Get("redirect_uri"))
	assert.Equal(t, "openid profile email", q.Get("scope"))
	assert.Equal(t, "state-xyz", q.Get("state"))
}

func TestLinkedIn_Exchange(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		fake := &fakeLinkedIn{
			tokenBody: validToken(),
			userInfo:  map[string]interface{}{"sub": "abc123", "name": "Jane Doe", "email": "jane@x.com", "email_verified": true},
		}
		l := testLinkedIn(t, fake.server(t), time.Second)

		res := l.Exchange(ctx, CallbackParams{Code: "code-1"})

		require.Equal(t, OutcomeSuccess, res.Outcome, "err: %v", res.Err)
		assert.NoError(t, res.Error())
		assert.Equal(t, "abc123", res.Profile.ProviderID)
		assert.Equal(t, "Jane Doe", res.Profile.DisplayName)
		assert.Equal(t, "jane@x.com", res.Profile.Email)
		assert.Equal(t, "code-1", fake.lastForm.Get("code"))
		assert.Equal(t, "client-id", fake.lastForm.Get("client_id"))
		assert.Equal(t, "client-secret", fake.lastForm.Get("client_secret"))
	})

	t.Run("name assembled from given and family", func(t *testing.T) {
		fake := &fakeLinkedIn{
			tokenBody: validToken(),
			userInfo:  map[string]interface{}{"sub": "abc123", "given_name": "Jane", "family_name": "Doe"},
		}
		l := testLinkedIn(t, fake.server(t), time.Second)

		res := l.Exchange(ctx, CallbackParams{Code: "code-1"})

		require.Equal(t, OutcomeSuccess, res.Outcome)
		assert.Equal(t, "Jane Doe", res.Profile.DisplayName)
		assert.Empty(t, res.Profile.Email)
	})

	t.Run("provider denial", func(t *testing.T) {
		l := testLinkedIn(t, (&fakeLinkedIn{}).server(t), time.Second)

		res := l.Exchange(ctx, CallbackParams{Error: "user_cancelled_login", ErrorDescription: "The user cancelled"})

		assert.Equal(t, OutcomeDenied, res.Outcome)
		assert.Equal(t, "user_cancelled_login", res.Reason)
		assert.True(t, services.IsProviderError(res.Error()))
	})

	t.Run("missing code", func(t *testing.T) {
		l := testLinkedIn(t, (&fakeLinkedIn{}).server(t), time.Second)

		res := l.Exchange(ctx, CallbackParams{})
		assert.Equal(t, OutcomeDenied, res.Outcome)
		assert.Equal(t, "missing_code", res.Reason)
	})

	t.Run("token endpoint rejects code", func(t *testing.T) {
		fake := &fakeLinkedIn{
			tokenStatus: http.StatusBadRequest,
			tokenBody:   map[string]interface{}{"error": "invalid_grant"},
		}
		l := testLinkedIn(t, fake.server(t), time.Second)

		res := l.Exchange(ctx, CallbackParams{Code: "stale"})

		assert.Equal(t, OutcomeTransportError, res.Outcome)
		assert.True(t, services.IsProviderError(res.Error()))
	})

	t.Run("profile without subject", func(t *testing.T) {
		fake := &fakeLinkedIn{
			tokenBody: validToken(),
			userInfo:  map[string]interface{}{"name": "Nobody"},
		}
		l := testLinkedIn(t, fake.server(t), time.Second)

		res := l.Exchange(ctx, CallbackParams{Code: "code-1"})
		assert.Equal(t, OutcomeTransportError, res.Outcome)
	})

	t.Run("malformed email", func(t *testing.T) {
		fake := &fakeLinkedIn{
			tokenBody: validToken(),
			userInfo:  map[string]interface{}{"sub": "abc123", "email": "not-an-email"},
		}
		l := testLinkedIn(t, fake.server(t), time.Second)

		res := l.Exchange(ctx, CallbackParams{Code: "code-1"})
		assert.Equal(t, OutcomeTransportError, res.Outcome)
	})

	t.Run("unverifiable id_token", func(t *testing.T) {
		body := validToken()
		body["id_token"] = "eyJhbGciOiJSUzI1NiJ9.eyJzdWIiOiJhYmMxMjMifQ.c2ln"
		fake := &fakeLinkedIn{
			tokenBody: body,
			userInfo:  map[string]interface{}{"sub": "abc123"},
		}
		l := testLinkedIn(t, fake.server(t), time.Second)

		res := l.Exchange(ctx, CallbackParams{Code: "code-1"})
		assert.Equal(t, OutcomeTransportError, res.Outcome)
	})

	t.Run("timeout fails closed", func(t *testing.T) {
		fake := &fakeLinkedIn{
			tokenBody: validToken(),
			userInfo:  map[string]interface{}{"sub": "abc123"},
			userDelay: 200 * time.Millisecond,
		}
		l := testLinkedIn(t, fake.server(t), 50*time.Millisecond)

		res := l.Exchange(ctx, CallbackParams{Code: "code-1"})
		assert.Equal(t, OutcomeTransportError, res.Outcome)
	})
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "denied", OutcomeDenied.String())
	assert.Equal(t, "transport_error", OutcomeTransportError.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}

func TestCallbackParamsFromQuery(t *testing.T) {
	q := url.Values{"code": {"c"}, "state": {"s"}, "error": {"e"}, "error_description": {"d"}}

	assert.Equal(t, CallbackParams{Code: "c", State: "s", Error: "e", ErrorDescription: "d"}, CallbackParamsFromQuery(q))
}
