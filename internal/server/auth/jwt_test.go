package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	p := models.Principal{ID: 123, Role: models.RoleAdmin}
	now := time.Now()

	tok, exp, err := GenerateToken(p, secret, time.Hour, now)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Fatalf("expiry mismatch: %v", exp)
	}

	got, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if got != p {
		t.Fatalf("principal mismatch: got %+v want %+v", got, p)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, _, err := GenerateToken(models.Principal{ID: 1, Role: models.RoleUser}, secret, time.Hour, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, _, err := GenerateToken(models.Principal{ID: 2, Role: models.RoleUser}, []byte("right-secret"), time.Hour, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_RejectsUnknownRoleAndSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	sign := func(c Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	badRole := sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: exp}, Role: "owner"})
	if _, err := ParseToken(badRole, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("bad role: got %v", err)
	}

	badSubject := sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc", ExpiresAt: exp}, Role: "user"})
	if _, err := ParseToken(badSubject, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("bad subject: got %v", err)
	}
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
		Role:             "admin",
	})
	s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !strings.HasSuffix(s, ".") {
		t.Fatalf("unexpected none token %q", s)
	}

	if _, err := ParseToken(s, []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
