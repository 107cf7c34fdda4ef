package service

import (
	"context"
	"errors"

	"go-blog-api/internal/model"
	"go-blog-api/internal/security"
)

// UserStore is the slice of the user repository the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, email string, passwordHash string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
}

type AuthService struct {
	users  UserStore
	tokens *security.TokenService
}

func NewAuthService(users UserStore, tokens *security.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with a hashed password. The FindByEmail
// pre-check gives a friendly error on the common path; the store's unique
// constraint is what actually prevents duplicates under concurrency.
func (s *AuthService) Register(ctx context.Context, email string, password string) (model.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return model.User{}, model.ErrUserAlreadyExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return model.User{}, err
	}

	return s.users.Create(ctx, email, hash)
}

// Authenticate verifies a credential pair. Unknown email and wrong
// password both return ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email string, password string) (model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return model.User{}, model.ErrInvalidCredentials
	}
	return user, nil
}

// Login mints a bearer token with the user's email as the subject claim.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.TokenResponse, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return model.TokenResponse{}, err
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// CurrentUser resolves a bearer token to its user. ErrInvalidToken and
// ErrUserNotFound stay distinct here; the middleware maps both to the
// same 401 so registered emails cannot be enumerated through the token
// endpoint.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (model.User, error) {
	subject, err := s.tokens.Validate(token)
	if err != nil {
		return model.User{}, err
	}

	return s.users.FindByEmail(ctx, subject)
}
