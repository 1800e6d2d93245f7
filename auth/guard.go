package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const bearerPrefix = "Bearer "

// TokenVerifier verifies a bearer token with the identity provider and returns its claims
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (*Claims, error)
}

// UserResolver maps a verified provider subject to a local user id.
// It returns ErrUserNotFound when the subject has no local user.
type UserResolver interface {
	ResolveUserID(ctx context.Context, subject string) (string, error)
}

// GuardConfig bounds the external calls made while authenticating
type GuardConfig struct {
	VerifyTimeout time.Duration
	LookupTimeout time.Duration
}

// Guard turns an Authorization header into a Principal or a typed rejection.
// It holds no per-request state and is safe for concurrent use.
type Guard struct {
	verifier TokenVerifier
	resolver UserResolver
	cfg      GuardConfig
	tracer   trace.Tracer
}

// NewGuard creates a Guard over the given collaborators
func NewGuard(verifier TokenVerifier, resolver UserResolver, cfg GuardConfig) *Guard {
	return &Guard{
		verifier: verifier,
		resolver: resolver,
		cfg:      cfg,
		tracer:   otel.Tracer("github.com/upb/taskhub/auth"),
	}
}

// Authenticate runs extraction, verification and local resolution in order.
// Every failure is terminal; nothing is retried.
func (g *Guard) Authenticate(ctx context.Context, authorization string) (*Principal, error) {
	token, ok := ExtractBearerToken(authorization)
	if !ok {
		return nil, newError(KindNoCredential, nil)
	}

	claims, err := g.verify(ctx, token)
	if err != nil {
		return nil, err
	}

	localID, err := g.resolve(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	return newPrincipal(localID, claims), nil
}

func (g *Guard) verify(ctx context.Context, token string) (*Claims, error) {
	ctx, span := g.tracer.Start(ctx, "auth.verify")
	defer span.End()

	ctx, cancel := withTimeout(ctx, g.cfg.VerifyTimeout)
	defer cancel()

	claims, err := g.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		kind := KindInvalidCredential
		if isOutage(err) {
			kind = KindVerifierUnavailable
		}
		span.SetStatus(codes.Error, string(kind))
		return nil, newError(kind, err)
	}
	if claims == nil || claims.Subject == "" {
		span.SetStatus(codes.Error, string(KindInvalidCredential))
		return nil, newError(KindInvalidCredential, errors.New("verified token has no subject"))
	}

	return claims, nil
}

func (g *Guard) resolve(ctx context.Context, subject string) (string, error) {
	ctx, span := g.tracer.Start(ctx, "auth.resolve")
	defer span.End()

	ctx, cancel := withTimeout(ctx, g.cfg.LookupTimeout)
	defer cancel()

	localID, err := g.resolver.ResolveUserID(ctx, subject)
	if err != nil {
		kind := KindUserStoreUnavailable
		if errors.Is(err, ErrUserNotFound) {
			kind = KindNotProvisioned
		}
		span.SetStatus(codes.Error, string(kind))
		return "", newError(kind, err)
	}
	if localID == "" {
		span.SetStatus(codes.Error, string(KindNotProvisioned))
		return "", newError(KindNotProvisioned, ErrUserNotFound)
	}

	span.SetAttributes(attribute.String("enduser.id", localID))
	return localID, nil
}

// ExtractBearerToken accepts exactly "Bearer <token>": case-sensitive scheme,
// a single space, and a non-empty token without whitespace.
func ExtractBearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found || token == "" {
		return "", false
	}
	if strings.ContainsAny(token, " \t\r\n") {
		return "", false
	}
	return token, true
}

func isOutage(err error) bool {
	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
