package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fardeen26/flashfeed/internal/domain"
	apperrors "github.com/Fardeen26/flashfeed/pkg/errors"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

var fixedNow = time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)

func sign(t *testing.T, method jwt.SigningMethod, key any, c claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, c).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func validClaims() claims {
	return claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "idp|42",
			Issuer:    "https://idp.example",
			Audience:  jwt.ClaimStrings{"flashfeed"},
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(fixedNow.Add(-time.Minute)),
		},
		Username: "ada",
		Name:     "Ada Lovelace",
		Picture:  "https://img/ada.png",
	}
}

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifierWithClock(testSecret, "https://idp.example", "flashfeed", func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return v
}

func TestVerifyValidToken(t *testing.T) {
	v := newTestVerifier(t)
	p, err := v.Verify(sign(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	want := Principal{Subject: "idp|42", Username: "ada", FullName: "Ada Lovelace", ImageURL: "https://img/ada.png"}
	if p != want {
		t.Fatalf("principal = %+v, want %+v", p, want)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	v := newTestVerifier(t)

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(fixedNow.Add(-time.Second))

	noExp := validClaims()
	noExp.ExpiresAt = nil

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "https://evil.example"

	wrongAudience := validClaims()
	wrongAudience.Audience = jwt.ClaimStrings{"other"}

	noSubject := validClaims()
	noSubject.Subject = ""

	cases := map[string]string{
		"empty":          "",
		"garbage":        "not-a-jwt",
		"wrong secret":   sign(t, jwt.SigningMethodHS256, []byte("nope"), validClaims()),
		"wrong method":   sign(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims()),
		"expired":        sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
		"no expiry":      sign(t, jwt.SigningMethodHS256, []byte(testSecret), noExp),
		"wrong issuer":   sign(t, jwt.SigningMethodHS256, []byte(testSecret), wrongIssuer),
		"wrong audience": sign(t, jwt.SigningMethodHS256, []byte(testSecret), wrongAudience),
		"no subject":     sign(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(token)
			if !errors.Is(err, domain.ErrAuthenticationRequired) {
				t.Fatalf("err = %v, want ErrAuthenticationRequired", err)
			}
			if code := apperrors.GetCode(err); code != apperrors.CodeAuthenticationRequired {
				t.Fatalf("code = %q", code)
			}
		})
	}
}

func TestNewVerifierRequiresSecret(t *testing.T) {
	if _, err := NewVerifierWithClock(" ", "", "", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestContextResolver(t *testing.T) {
	r := NewContextResolver()

	if _, err := r.Resolve(context.Background()); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("empty ctx err = %v", err)
	}

	id, err := r.Resolve(WithUserID(context.Background(), "user-1"))
	if err != nil || id != "user-1" {
		t.Fatalf("resolve = %q, %v", id, err)
	}
}

func TestFromAuthorizationHeader(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer  abc ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		token, ok := FromAuthorizationHeader(c.header)
		if token != c.token || ok != c.ok {
			t.Fatalf("header %q = (%q, %v), want (%q, %v)", c.header, token, ok, c.token, c.ok)
		}
	}
}
