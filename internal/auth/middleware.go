package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/placement-portal/quiz-api/internal/config"
)

type contextKey string

const claimsKey contextKey = "user_claims"

const cookieName = "jwt"

// AuthMiddleware rejects requests without a valid token.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		claims, err := claimsFromRequest(r)
		if err != nil {
			log.WithError(err).Warn("Rejected unauthenticated request")
			config.Error(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// OptionalAuthMiddleware attaches claims when a valid token is present and
// lets anonymous requests through untouched.
func OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFromRequest(r)
		if err != nil {
			if !errors.Is(err, ErrMissingToken) {
				config.WithContext(r.Context()).WithError(err).Debug("Ignoring invalid token on optional route")
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrMissingToken
	}
	return claims, nil
}

// OwnerFromContext returns the authenticated user id, or nil for anonymous requests.
func OwnerFromContext(ctx context.Context) *string {
	claims, err := GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil
	}
	id := claims.UserID
	return &id
}

func claimsFromRequest(r *http.Request) (*Claims, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, ErrMissingToken
	}
	return ValidateJWT(token)
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(after)
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
