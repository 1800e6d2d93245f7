package middleware

import (
	"context"
	"net/http"

	"github.com/upb/taskhub/auth"
	"github.com/upb/taskhub/utils"
	"go.uber.org/zap"
)

// Authenticator turns an Authorization header value into a principal.
// *auth.Guard implements it.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*auth.Principal, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	guard  Authenticator
	logger *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(guard Authenticator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		guard:  guard,
		logger: logger,
	}
}

// Client-facing messages. The failure cause is logged, never returned.
const (
	msgNoCredential   = "Missing or malformed bearer credential"
	msgInvalid        = "Invalid or expired credential"
	msgNotProvisioned = "Identity is not provisioned"
	msgUnavailable    = "Authentication backend unavailable"
)

// RequireAuth rejects requests without a valid Firebase bearer token mapped to a local user.
// On success the principal is available through PrincipalFromContext.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		principal, err := m.guard.Authenticate(ctx, r.Header.Get("Authorization"))
		if err != nil {
			m.reject(w, requestID, err)
			return
		}

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("uid", principal.UID))

		next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, requestID string, err error) {
	kind := auth.KindOf(err)
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("auth_failure", string(kind)),
		zap.Error(err),
	}

	var writeErr error
	switch kind {
	case auth.KindVerifierUnavailable, auth.KindUserStoreUnavailable:
		m.logger.Error("authentication backend unavailable", fields...)
		writeErr = utils.WriteServiceUnavailable(w, msgUnavailable)
	case auth.KindNoCredential:
		m.logger.Warn("authentication failed", fields...)
		writeErr = utils.WriteUnauthorized(w, msgNoCredential)
	case auth.KindNotProvisioned:
		m.logger.Warn("authentication failed", fields...)
		writeErr = utils.WriteUnauthorized(w, msgNotProvisioned)
	default:
		m.logger.Warn("authentication failed", fields...)
		writeErr = utils.WriteUnauthorized(w, msgInvalid)
	}
	if writeErr != nil {
		m.logger.Error("failed to write auth response", zap.Error(writeErr))
	}
}
