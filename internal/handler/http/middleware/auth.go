package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/auth"
	"github.com/fieldops-id/fieldops-backend-go/internal/handler/http/response"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// TokenFromXAuth reads the raw token from the X-Auth header used by older mobile builds.
func TokenFromXAuth(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Auth"))
}

// TokenFromRequest returns the bearer token, falling back to X-Auth.
func TokenFromRequest(r *http.Request) string {
	if token := jwtauth.TokenFromHeader(r); token != "" {
		return token
	}
	return TokenFromXAuth(r)
}

// Verifier parses and verifies the token carried by either credential header.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, jwtauth.TokenFromHeader, TokenFromXAuth)
}

// AuthRequired must run after Verifier. It only admits unrevoked access tokens and stores
// the caller's user id in the request context.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(TokenFromRequest(r)) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// UserIDFromContext returns the id stored by AuthRequired.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
