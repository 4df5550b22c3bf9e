// Package passhash provides bcrypt-backed password hashing.
package passhash

import "golang.org/x/crypto/bcrypt"

// Bcrypt hashes passwords with bcrypt at the configured cost.
type Bcrypt struct {
	cost int
}

func NewBcrypt() Bcrypt {
	return Bcrypt{cost: bcrypt.DefaultCost}
}

func (b Bcrypt) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (b Bcrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
