package middlewareprovider

import (
	"context"
	"errors"
	"go.uber.org/zap"
	"net/http"
	"oamanager/providers"
	"oamanager/utils"
	"strings"
)

type contextKey string

const identityContextKey contextKey = "identity_key"

type DefaultAuthMiddleware struct {
	tokens providers.TokenProvider
	logger *zap.Logger
}

func NewAuthMiddlewareService(tokens providers.TokenProvider, logger *zap.Logger) providers.AuthMiddlewareService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAuthMiddleware{
		tokens: tokens,
		logger: logger,
	}
}

// BearerAuthMiddleware accepts "Authorization: Bearer <token>" and rejects
// everything else with 401.
func (a *DefaultAuthMiddleware) BearerAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				utils.RespondError(w, http.StatusUnauthorized, errors.New("missing bearer token"), "missing bearer token")
				return
			}

			identity, ok := a.tokens.Verify(r.Context(), token)
			if !ok {
				a.logger.Debug("rejected bearer token", zap.String("path", r.URL.Path))
				utils.RespondError(w, http.StatusUnauthorized, errors.New("invalid token"), "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *DefaultAuthMiddleware) GetIdentityFromContext(r *http.Request) (string, error) {
	identity, ok := r.Context().Value(identityContextKey).(string)
	if !ok {
		return "", errors.New("identity not found in context")
	}
	return identity, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
