package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/devfolio/devfolio-api/internal/jwt"
	"github.com/devfolio/devfolio-api/internal/models"
)

// Tokener defines the minimal interface needed by the auth middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// contextKey is an unexported type for keys in context.
type contextKey struct{}

var identityKey = contextKey{}

// IdentityFromContext retrieves the verified request identity attached by
// AuthMiddleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(models.Identity)
	return ident, ok
}

// WithIdentity stores the identity in the context.
func WithIdentity(ctx context.Context, ident models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// AuthMiddleware extracts and verifies the session token, attaching the
// caller's identity to the request context. The four rejection cases carry
// distinct messages but the same unauthorized status.
func AuthMiddleware(tokener Tokener, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				unauthorized(w, "Authentication required. Please login")
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				log.Warnw("authorization failed", "err", err)
				switch {
				case errors.Is(err, jwt.ErrTokenExpired):
					unauthorized(w, "Token expired. Please login again")
				case errors.Is(err, jwt.ErrTokenMalformed):
					unauthorized(w, "Invalid token. Please login again")
				default:
					unauthorized(w, "Authentication Failed")
				}
				return
			}

			ctx = WithIdentity(ctx, models.Identity{UserID: claims.UserID, Name: claims.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
