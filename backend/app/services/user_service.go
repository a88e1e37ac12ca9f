package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"riseabove/backend/app/apperr"
	"riseabove/backend/app/models"
	"riseabove/backend/app/repo"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

// UserService is the credential store: registration and password checks.
type UserService struct {
	users repo.UserStore
	cost  int
}

func NewUserService(users repo.UserStore) *UserService {
	return &UserService{users: users, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *UserService) WithCost(cost int) *UserService {
	s.cost = cost
	return s
}

// Register validates the submission and creates the user. Every violated rule
// is reported in one *apperr.ValidationError; nothing is written in that case.
func (s *UserService) Register(ctx context.Context, username, password, confirm string) (*models.User, error) {
	username = strings.TrimSpace(username)

	verr := &apperr.ValidationError{}
	if n := utf8.RuneCountInString(username); n < minUsernameLen {
		verr.Add("Username must be at least 3 characters.")
	} else if n > models.MaxUsernameLen {
		verr.Add(fmt.Sprintf("Username must be at most %d characters.", models.MaxUsernameLen))
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		verr.Add("Password must be at least 6 characters.")
	} else if len(password) > maxPasswordBytes {
		verr.Add("Password must be at most 72 characters.")
	}
	if password != confirm {
		verr.Add("Passwords do not match.")
	}

	count, err := s.users.CountByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		verr.Add("Username is already taken.")
		verr.Conflict = true
	}
	if !verr.Empty() {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, &apperr.ValidationError{Messages: []string{"Username is already taken."}, Conflict: true}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate returns the id of the user owning username/password.
// Malformed input fails with *apperr.ValidationError; an unknown user and a
// wrong password both fail with apperr.ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (uint, error) {
	u, err := s.ValidateCredentials(ctx, username, password)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	verr := &apperr.ValidationError{}
	if utf8.RuneCountInString(username) < minUsernameLen {
		verr.Add("Username must be at least 3 characters long.")
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		verr.Add("Password must be at least 6 characters long.")
	}
	if !verr.Empty() {
		return nil, verr
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, apperr.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}
