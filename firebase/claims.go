package firebase

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/upb/taskhub/auth"
)

// maxSubjectLength is the longest uid Firebase Authentication issues
const maxSubjectLength = 128

// tokenClaims is the payload of a Firebase ID token
type tokenClaims struct {
	jwt.RegisteredClaims
	Email         string       `json:"email"`
	EmailVerified bool         `json:"email_verified"`
	Name          string       `json:"name"`
	Picture       string       `json:"picture"`
	AuthTime      int64        `json:"auth_time"`
	Firebase      firebaseInfo `json:"firebase"`
}

type firebaseInfo struct {
	SignInProvider string              `json:"sign_in_provider"`
	Identities     map[string][]string `json:"identities"`
}

func (c *tokenClaims) toAuthClaims() *auth.Claims {
	out := &auth.Claims{
		Subject:        c.Subject,
		Email:          c.Email,
		EmailVerified:  c.EmailVerified,
		Name:           c.Name,
		Picture:        c.Picture,
		SignInProvider: c.Firebase.SignInProvider,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		out.ExpiresAt = c.ExpiresAt.Time
	}
	return out
}

func (c *tokenClaims) authTime() time.Time {
	if c.AuthTime == 0 {
		return time.Time{}
	}
	return time.Unix(c.AuthTime, 0)
}
