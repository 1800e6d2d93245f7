package auth

import "time"

// SourceFirebase tags principals produced from Firebase ID tokens
const SourceFirebase = "firebase"

// Claims are the facts a TokenVerifier extracted from a verified token.
// Nothing in here is trusted unless verification succeeded.
type Claims struct {
	Subject        string
	Email          string
	EmailVerified  bool
	Name           string
	Picture        string
	SignInProvider string
	IssuedAt       time.Time
	ExpiresAt      time.Time
}

// Principal is the authenticated identity attached to a request.
// UID is the local user id, never the provider subject.
type Principal struct {
	Source  string `json:"source"`
	UID     string `json:"uid"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

func newPrincipal(localID string, claims *Claims) *Principal {
	return &Principal{
		Source:  SourceFirebase,
		UID:     localID,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}
}
