// Package identity adapts the LinkedIn OpenID Connect exchange into a tagged
// result that the login callback can branch on without a live provider.
package identity

import (
	"context"
	"net/url"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/services"
)

// Outcome tags a provider exchange result.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeDenied
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeDenied:
		return "denied"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result is Success(profile), Denied(reason) or TransportError(err).
type Result struct {
	Outcome Outcome
	Profile models.ProviderProfile
	Reason  string
	Err     error
}

// Success wraps a verified profile.
func Success(profile models.ProviderProfile) Result {
	return Result{Outcome: OutcomeSuccess, Profile: profile}
}

// Denied records that the user or provider refused authorization.
func Denied(reason string) Result {
	return Result{Outcome: OutcomeDenied, Reason: reason}
}

// TransportError records a failed exchange, timeout or unusable profile.
func TransportError(err error) Result {
	return Result{Outcome: OutcomeTransportError, Err: err}
}

// Error returns nil on success and a provider DomainError otherwise.
func (r Result) Error() error {
	switch r.Outcome {
	case OutcomeSuccess:
		return nil
	case OutcomeDenied:
		return services.NewDomainError(services.ErrorTypeProvider, services.ErrProviderDenied.Message, nil).
			WithDetail("reason", r.Reason)
	default:
		return services.WrapProvider(services.ErrProviderTransport.Message, r.Err)
	}
}

// CallbackParams are the query parameters the provider redirects back with.
type CallbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// CallbackParamsFromQuery reads the standard OAuth 2.0 callback parameters.
func CallbackParamsFromQuery(q url.Values) CallbackParams {
	return CallbackParams{
		Code:             q.Get("code"),
		State:            q.Get("state"),
		Error:            q.Get("error"),
		ErrorDescription: q.Get("error_description"),
	}
}

// Provider is an identity provider the login flow can redirect to and
// exchange callbacks with.
type Provider interface {
	// AuthCodeURL returns the authorization endpoint URL carrying state.
	AuthCodeURL(state string) string

	// Exchange turns callback parameters into a tagged result. It never
	// returns a Success without a non-empty ProviderID.
	Exchange(ctx context.Context, params CallbackParams) Result
}
