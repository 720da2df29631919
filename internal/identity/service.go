package identity

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cakeshop/cakeshop/internal/httperr"
)

var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// Service validates credentials and orchestrates user creation.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the registration input and creates the user. The
// existence pre-checks are advisory; the storage constraint is the source of
// truth under concurrent registration, and its violation is translated into
// the same field-named duplicate error either way.
func (s *Service) Register(ctx context.Context, in Registration) (User, error) {
	if in.Name == "" || in.Email == "" || in.PhoneNumber == "" || in.Password == "" {
		return User{}, httperr.Validation("Please provide all required fields")
	}

	if exists, err := s.repo.EmailExists(ctx, in.Email); err != nil {
		return User{}, err
	} else if exists {
		return User{}, httperr.Validation("Email is already registered")
	}

	if exists, err := s.repo.PhoneExists(ctx, in.PhoneNumber); err != nil {
		return User{}, err
	} else if exists {
		return User{}, httperr.Validation("Phone number is already registered")
	}

	if !emailPattern.MatchString(in.Email) {
		return User{}, httperr.Validation("Please provide a valid email address")
	}

	if !phonePattern.MatchString(in.PhoneNumber) {
		return User{}, httperr.Validation("Please provide a valid phone number")
	}

	if len(in.Password) < 8 {
		return User{}, httperr.Validation("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var dup *DuplicateError
		if errors.As(err, &dup) {
			return User{}, httperr.Duplicate(dup.Field)
		}
		return User{}, err
	}

	return user, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// fail identically so the API cannot be used to enumerate accounts.
func (s *Service) Login(ctx context.Context, creds Credentials) (User, error) {
	if creds.Email == "" || creds.Password == "" {
		return User{}, httperr.Validation("Please provide an email and password")
	}

	user, err := s.repo.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, httperr.NotAuthenticated("Invalid credentials")
		}
		return User{}, err
	}

	if !user.MatchPassword(creds.Password) {
		return User{}, httperr.NotAuthenticated("Invalid credentials")
	}

	return user, nil
}

// GetByID returns the stored user for an authenticated identity.
func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, httperr.NotFound("User not found")
		}
		return User{}, err
	}
	return user, nil
}
