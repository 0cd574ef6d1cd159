package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid operator name or password")

// OperatorAuthenticator verifies the single operator credential the
// service is configured with. There is no user registry; the trigger
// endpoints are an operator surface, not a user-facing one.
type OperatorAuthenticator struct {
	operator     string
	passwordHash []byte
}

// NewOperatorAuthenticator creates an authenticator for the given
// operator name and bcrypt password hash (typically from env).
func NewOperatorAuthenticator(operator, passwordHash string) *OperatorAuthenticator {
	return &OperatorAuthenticator{
		operator:     operator,
		passwordHash: []byte(passwordHash),
	}
}

// HashPassword produces a bcrypt hash suitable for the authenticator
// configuration. Exposed for provisioning the operator credential.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Authenticate verifies the operator name and password.
func (a *OperatorAuthenticator) Authenticate(operator, password string) error {
	if operator != a.operator {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
