// Package user implements account registration and lookup.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	shared "github.com/fitsage/server/pkg"
	"github.com/fitsage/server/pkg/types"
)

const minPasswordLength = 6

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// ValidationError reports a rejected register request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrEmailTaken is returned when registering an email that already has an
// account.
type ErrEmailTaken struct {
	Email string
}

func (e *ErrEmailTaken) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

type Service struct {
	db shared.Database
}

func NewService(db shared.Database) *Service {
	return &Service{db: db}
}

// Register creates a new account. The password is stored as a bcrypt hash
// and never leaves this package.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*types.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	if _, err := s.db.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, &ErrEmailTaken{Email: req.Email}
	} else if !shared.IsNotFound(err) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := &types.User{
		Id:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.SetUser(ctx, u); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return u, nil
}

// GetProfile fetches a user; NotFound when the id is unknown.
func (s *Service) GetProfile(ctx context.Context, userId string) (*types.User, error) {
	return s.db.GetUser(ctx, userId)
}

// Exists reports whether a user id is registered. Lookup errors other than
// NotFound are surfaced.
func (s *Service) Exists(ctx context.Context, userId string) (bool, error) {
	_, err := s.db.GetUser(ctx, userId)
	if err != nil {
		if shared.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func validate(req *RegisterRequest) error {
	if req.Email == "" {
		return &ValidationError{Field: "email", Reason: "cannot be blank"}
	}
	at := strings.Index(req.Email, "@")
	if at <= 0 || at == len(req.Email)-1 {
		return &ValidationError{Field: "email", Reason: "invalid format"}
	}
	if req.Password == "" {
		return &ValidationError{Field: "password", Reason: "required"}
	}
	if len(req.Password) < minPasswordLength {
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}
	return nil
}
