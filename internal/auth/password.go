package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/seatboard/internal/domain"
)

// ErrInvalidCredentials is returned for an unknown account or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// Account is a configured login.
type Account struct {
	Name         string
	Role         domain.Role
	PasswordHash string
}

// Accounts is the fixed set of logins, keyed by name.
type Accounts map[string]Account

// Add registers an account. A plaintext password is hashed when no hash is given;
// an account with neither is skipped.
func (a Accounts) Add(name string, role domain.Role, password, hash string, cost int) error {
	if name == "" || (password == "" && hash == "") {
		return nil
	}
	if hash == "" {
		var err error
		if hash, err = HashPassword(password, cost); err != nil {
			return err
		}
	}
	a[name] = Account{Name: name, Role: role, PasswordHash: hash}
	return nil
}

// Verify returns the principal for a matching name and password.
func (a Accounts) Verify(name, password string) (domain.Principal, error) {
	acct, ok := a[name]
	if !ok {
		return domain.Principal{}, ErrInvalidCredentials
	}
	if err := ComparePassword(acct.PasswordHash, password); err != nil {
		return domain.Principal{}, ErrInvalidCredentials
	}
	return domain.Principal{Name: acct.Name, Role: acct.Role}, nil
}
