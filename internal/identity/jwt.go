package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Fardeen26/flashfeed/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Name     string `json:"name"`
	Picture  string `json:"picture"`
}

// Verifier checks HS256 bearer tokens from the identity provider.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
	now      func() time.Time
}

func NewVerifier(cfg *config.Config) (*Verifier, error) {
	return NewVerifierWithClock(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience, time.Now)
}

func NewVerifierWithClock(secret, issuer, audience string, now func() time.Time) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}
	if now == nil {
		now = time.Now
	}
	return &Verifier{
		secret:   []byte(secret),
		issuer:   strings.TrimSpace(issuer),
		audience: strings.TrimSpace(audience),
		now:      now,
	}, nil
}

// Verify parses a raw bearer token and returns its principal.
func (v *Verifier) Verify(token string) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, ErrUnauthenticated("bearer token is required")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Principal{}, ErrUnauthenticated(fmt.Sprintf("invalid bearer token: %v", err))
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return Principal{}, ErrUnauthenticated("bearer token has no subject")
	}

	return Principal{
		Subject:  parsed.Subject,
		Username: parsed.Username,
		FullName: parsed.Name,
		ImageURL: parsed.Picture,
	}, nil
}

// FromAuthorizationHeader extracts the token from a "Bearer <token>" header value.
func FromAuthorizationHeader(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
