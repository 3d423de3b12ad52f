package transport

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// =============================================================================
// AUTHENTICATION
// =============================================================================

const authorizationHeader = "Authorization"

// AuthConfig applies session credentials to an outgoing request.
type AuthConfig interface {
	Apply(req *http.Request)
}

// NoAuth is the anonymous session.
type NoAuth struct{}

func (NoAuth) Apply(*http.Request) {}

// BasicAuth sends the session user and password.
type BasicAuth struct {
	Username string
	Password string
}

func (a BasicAuth) Apply(req *http.Request) {
	if a.Username == "" && a.Password == "" {
		return
	}
	req.SetBasicAuth(a.Username, a.Password)
}

// BearerToken sends an OAuth access token.
type BearerToken struct {
	Token string
}

func (a BearerToken) Apply(req *http.Request) {
	if a.Token != "" {
		req.Header.Set(authorizationHeader, "Bearer "+a.Token)
	}
}

// NewAuth picks a strategy from session credentials. A token wins over a
// user name.
func NewAuth(user, password, token string) AuthConfig {
	switch {
	case token != "":
		return BearerToken{Token: token}
	case user != "":
		return BasicAuth{Username: user, Password: password}
	default:
		return NoAuth{}
	}
}

// TokenExpiry returns the exp claim of a JWT bearer token. Opaque tokens and
// tokens without exp report false. The signature is not verified.
func TokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
