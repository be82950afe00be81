package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
)

var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrWrongPassword    = errors.New("current password is incorrect")
	ErrPasswordMismatch = errors.New("new passwords do not match")
)

const (
	tokenLifetime = 12 * time.Hour
	bcryptCost    = 10
)

type SignupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address"`
}

type ProfilePatch struct {
	UserID          string `json:"userId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type Service struct {
	repo       Repository
	signingKey []byte
}

func NewService(repo Repository, signingKey []byte) *Service {
	return &Service{repo: repo, signingKey: signingKey}
}

// Signup creates a user and returns a signed token. The password is stored
// only as a bcrypt hash.
func (s *Service) Signup(ctx context.Context, in SignupInput) (string, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return "", ErrMissingFields
	}

	// look before inserting; the unique index only backstops the race
	// between the check and the insert
	if _, err := s.repo.FindByEmail(ctx, in.Email); err == nil {
		return "", ErrDuplicateEmail
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Address:      in.Address,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return "", err
	}

	return s.issueToken(user)
}

// Login verifies the password and returns a token plus the user projection.
// An unknown email yields ErrUserNotFound, a wrong password ErrBadCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.UserProjection, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrBadCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	proj := user.Projection()
	return token, &proj, nil
}

// UpdateProfile overwrites non-empty fields. The password changes only when
// current, new, and confirm are all supplied.
func (s *Service) UpdateProfile(ctx context.Context, patch ProfilePatch) (*domain.UserProjection, error) {
	user, err := s.repo.FindByID(ctx, patch.UserID)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != "" {
		user.FirstName = patch.FirstName
	}
	if patch.LastName != "" {
		user.LastName = patch.LastName
	}
	if patch.Email != "" && normalizeEmail(patch.Email) != normalizeEmail(user.Email) {
		other, err := s.repo.FindByEmail(ctx, patch.Email)
		if err == nil && other.ID != user.ID {
			return nil, ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		user.Email = patch.Email
	}
	if patch.Address != "" {
		user.Address = patch.Address
	}

	if patch.CurrentPassword != "" && patch.NewPassword != "" && patch.ConfirmPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(patch.CurrentPassword)); err != nil {
			return nil, ErrWrongPassword
		}
		if patch.NewPassword != patch.ConfirmPassword {
			return nil, ErrPasswordMismatch
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(patch.NewPassword), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	proj := user.Projection()
	return &proj, nil
}

func (s *Service) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"exp":       time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
