package identity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account. PasswordHash never leaves the
// package in a serialized form.
type User struct {
	ID           string
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash []byte
	CreatedAt    time.Time
}

// MatchPassword verifies a plaintext password against the stored hash.
func (u User) MatchPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(plaintext)) == nil
}

// Registration is the input required to create an account.
type Registration struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

// Credentials is the login input.
type Credentials struct {
	Email    string
	Password string
}
