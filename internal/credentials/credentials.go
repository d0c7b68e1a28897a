package credentials

import (
	"errors"
	"strings"

	"fuel-pos-agent/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var ErrWrongPassword = errors.New("wrong password")

// Store seals and verifies the single admin credential. It is an
// interface so the comparison strategy can change without touching the
// login flow.
type Store interface {
	Seal(username, password string) (models.AdminCredential, error)
	Verify(saved *models.AdminCredential, username, password string) error
}

// Bcrypt hashes new passwords with bcrypt. Documents from older
// installs hold the password in clear text; Verify recognizes
// those and falls back to a plain equality check so existing installs
// keep logging in.
type Bcrypt struct{}

func NewBcrypt() Bcrypt { return Bcrypt{} }

func (Bcrypt) Seal(username, password string) (models.AdminCredential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.AdminCredential{}, err
	}
	return models.AdminCredential{Username: username, Password: string(hash)}, nil
}

func (Bcrypt) Verify(saved *models.AdminCredential, username, password string) error {
	if saved == nil || saved.Username != username {
		return ErrWrongPassword
	}
	if strings.HasPrefix(saved.Password, "$2a$") || strings.HasPrefix(saved.Password, "$2b$") {
		if bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte(password)) != nil {
			return ErrWrongPassword
		}
		return nil
	}
	// legacy cleartext credential
	if saved.Password != password {
		return ErrWrongPassword
	}
	return nil
}
