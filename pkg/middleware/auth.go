package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dias221467/Marketplace_Hub/internal/models"
	jwtutil "github.com/Dias221467/Marketplace_Hub/pkg/jwt"
	"github.com/Dias221467/Marketplace_Hub/pkg/logger"
)

type contextKey string

// UserContextKey holds the *models.Caller of an authenticated request.
const UserContextKey contextKey = "user"

// AuthMiddleware attaches the caller identity when the request carries a valid bearer
// token. A missing or invalid token is not rejected here: the request continues
// anonymously and resolvers that need a user fail with UNAUTHENTICATED.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if tokenString == "" || tokenString == authHeader {
				logger.Log.Debug("Authorization header without bearer token")
				next.ServeHTTP(w, r)
				return
			}

			claims, err := jwtutil.ValidateToken(tokenString, secret)
			if err != nil {
				logger.Log.WithError(err).Debug("Ignoring invalid token")
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithCaller(r.Context(), claims.Caller(tokenString))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithCaller returns a copy of ctx carrying caller.
func WithCaller(ctx context.Context, caller *models.Caller) context.Context {
	return context.WithValue(ctx, UserContextKey, caller)
}

// GetUserFromContext returns the caller attached by AuthMiddleware, or nil.
func GetUserFromContext(ctx context.Context) *models.Caller {
	caller, ok := ctx.Value(UserContextKey).(*models.Caller)
	if !ok {
		return nil
	}
	return caller
}
