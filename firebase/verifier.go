package firebase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/upb/taskhub/auth"
)

// DefaultJWKSURL publishes the keys that sign Firebase ID tokens
const DefaultJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

const issuerPrefix = "https://securetoken.google.com/"

var (
	// ErrInvalidToken is returned when the token is malformed or its signature does not verify
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidIssuer is returned when the token was not issued for this project
	ErrInvalidIssuer = errors.New("invalid issuer")

	// ErrInvalidAudience is returned when the token audience is not this project
	ErrInvalidAudience = errors.New("invalid audience")

	// ErrInvalidSubject is returned when sub is empty or longer than Firebase allows
	ErrInvalidSubject = errors.New("invalid subject")
)

// Config holds configuration for Verifier
type Config struct {
	ProjectID       string
	JWKSURL         string
	RefreshInterval time.Duration
	ClockSkew       time.Duration
	HTTPTimeout     time.Duration
}

// Verifier verifies Firebase ID tokens against Google's published key set.
// It implements auth.TokenVerifier.
type Verifier struct {
	projectID string
	issuer    string
	jwksURL   string
	keys      *jwk.Cache
	parser    *jwt.Parser
	skew      time.Duration
	now       func() time.Time
	cancel    context.CancelFunc
}

// NewVerifier creates a Verifier and registers the key set with a background-refreshing cache.
// Keys are fetched lazily on the first verification.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.JWKSURL == "" {
		cfg.JWKSURL = DefaultJWKSURL
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = 15 * time.Minute
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}

	cacheCtx, cancel := context.WithCancel(context.Background())
	cache := jwk.NewCache(cacheCtx)

	err := cache.Register(cfg.JWKSURL,
		jwk.WithMinRefreshInterval(cfg.RefreshInterval),
		jwk.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to register JWKS cache: %w", err)
	}

	v := &Verifier{
		projectID: cfg.ProjectID,
		issuer:    issuerPrefix + cfg.ProjectID,
		jwksURL:   cfg.JWKSURL,
		keys:      cache,
		skew:      cfg.ClockSkew,
		now:       time.Now,
		cancel:    cancel,
	}
	v.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(cfg.ProjectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(cfg.ClockSkew),
		jwt.WithTimeFunc(func() time.Time { return v.now() }),
	)

	return v, nil
}

// VerifyIDToken checks signature, issuer, audience and lifetime of a Firebase ID token.
// Key set fetch failures wrap auth.ErrUnavailable.
func (v *Verifier) VerifyIDToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if v.projectID == "" {
		return nil, fmt.Errorf("%w: no firebase project configured", ErrInvalidAudience)
	}

	claims := &tokenClaims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, errors.New("missing kid in token header")
		}

		keySet, err := v.keys.Get(ctx, v.jwksURL)
		if err != nil {
			return nil, fmt.Errorf("%w: fetch JWKS: %v", auth.ErrUnavailable, err)
		}

		key, found := keySet.LookupKeyID(kid)
		if !found {
			return nil, fmt.Errorf("key %s not found in JWKS", kid)
		}

		var rawKey interface{}
		if err := key.Raw(&rawKey); err != nil {
			return nil, fmt.Errorf("failed to get raw key: %w", err)
		}
		return rawKey, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || len(claims.Subject) > maxSubjectLength {
		return nil, ErrInvalidSubject
	}
	if at := claims.authTime(); !at.IsZero() && at.After(v.now().Add(v.skew)) {
		return nil, fmt.Errorf("%w: auth_time is in the future", ErrInvalidToken)
	}

	return claims.toAuthClaims(), nil
}

// Close stops the background key refresher
func (v *Verifier) Close() {
	v.cancel()
}

func classify(err error) error {
	switch {
	case errors.Is(err, auth.ErrUnavailable):
		return err
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrInvalidIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrInvalidAudience
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
