// Package middleware provides reusable HTTP middleware for the API server.
package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fileport/service/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// SubjectKey is the context key for the authenticated token subject.
const SubjectKey contextKey = "subject"

// ParseToken validates an HS256-family JWT against secret and returns its claims.
func ParseToken(raw, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// JWTVerifier returns a gate Verifier accepting only tokens signed with secret.
func JWTVerifier(secret string) Verifier {
	return func(token string) bool {
		_, err := ParseToken(token, secret)
		return err == nil
	}
}

// RequireAuth returns middleware that validates a Bearer JWT (header or
// accessToken cookie) and injects its subject into the request context.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ExtractToken(r)
			if raw == "" {
				response.Unauthorized(w, "authorization required")
				return
			}

			claims, err := ParseToken(raw, jwtSecret)
			if err != nil {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			subject, _ := claims.GetSubject()
			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
