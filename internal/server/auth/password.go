package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies passwords. Verify must compare in
// constant time. Burn costs as much as a Verify and is called when there
// is no stored hash to verify against.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
	Burn(plain string)
}

// BcryptHasher implements PasswordHasher with bcrypt at the given cost.
type BcryptHasher struct {
	Cost int

	dummyOnce sync.Once
	dummy     string
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify safely compares a bcrypt hash and a plain password.
func (h *BcryptHasher) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Burn verifies plain against a fixed dummy hash of the same cost, so an
// unknown username takes as long as a wrong password.
func (h *BcryptHasher) Burn(plain string) {
	h.dummyOnce.Do(func() {
		b, err := bcrypt.GenerateFromPassword([]byte("eventdesk-dummy"), h.Cost)
		if err == nil {
			h.dummy = string(b)
		}
	})
	_ = h.Verify(h.dummy, plain)
}
