package middleware

import (
	"net/http"
	"strings"
)

// Gate cookie, header and routes.
const (
	AccessTokenCookie = "accessToken"
	bearerPrefix      = "Bearer "

	LoginPath = "/login"
	HomePath  = "/"
)

// Verifier decides whether an extracted token is acceptable. A nil
// Verifier accepts any non-empty token.
type Verifier func(token string) bool

// GateDecision is the outcome of the gate for one request.
type GateDecision struct {
	Redirect string // empty means the request proceeds
}

// Allowed reports whether the request proceeds without a redirect.
func (d GateDecision) Allowed() bool { return d.Redirect == "" }

// ExtractToken returns the accessToken cookie value, or failing that the
// Authorization header with a leading "Bearer " removed. The cookie wins
// when both are present.
func ExtractToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimPrefix(h, bearerPrefix)
	}
	return ""
}

// IsAuthPage reports whether path belongs to the login flow.
func IsAuthPage(path string) bool {
	return strings.HasPrefix(path, LoginPath)
}

// DecideGate applies the page split: anonymous users are sent to the login
// page, signed-in users are sent away from it.
func DecideGate(r *http.Request, verify Verifier) GateDecision {
	token := ExtractToken(r)
	authenticated := token != "" && (verify == nil || verify(token))
	authPage := IsAuthPage(r.URL.Path)

	switch {
	case !authenticated && !authPage:
		return GateDecision{Redirect: LoginPath}
	case authenticated && authPage:
		return GateDecision{Redirect: HomePath}
	default:
		return GateDecision{}
	}
}

// Gate returns middleware that redirects according to DecideGate.
func Gate(verify Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d := DecideGate(r, verify); !d.Allowed() {
				http.Redirect(w, r, d.Redirect, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
