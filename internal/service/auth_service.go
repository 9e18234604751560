package service

import (
	"context"
	"fmt"

	"github.com/xxxsen/markbook/internal/model"
	appErr "github.com/xxxsen/markbook/internal/pkg/errors"
	"github.com/xxxsen/markbook/internal/pkg/jwt"
	"github.com/xxxsen/markbook/internal/pkg/password"
	"github.com/xxxsen/markbook/internal/pkg/timeutil"
)

type AuthService struct {
	users  UserStore
	issuer *jwt.Issuer
	// verified when the email is unknown so both signin failures cost one hash
	dummyHash string
}

func NewAuthService(users UserStore, issuer *jwt.Issuer) (*AuthService, error) {
	dummy, err := password.Hash("markbook-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("build dummy password hash: %w", err)
	}
	return &AuthService{users: users, issuer: issuer, dummyHash: dummy}, nil
}

// Signup creates the user and logs it in. A taken email yields ErrConflict.
func (s *AuthService) Signup(ctx context.Context, email, plainPassword string) (string, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}
	return s.issue(user)
}

func (s *AuthService) Signin(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			password.Verify(s.dummyHash, plainPassword)
			return "", fmt.Errorf("%w: user not found", appErr.ErrInvalidCredentials)
		}
		return "", err
	}
	if !password.Verify(user.PasswordHash, plainPassword) {
		return "", fmt.Errorf("%w: password mismatch", appErr.ErrInvalidCredentials)
	}
	return s.issue(user)
}

// Authorize verifies token and resolves its subject to a stored user.
// Every failure, including a subject that no longer exists, is ErrUnauthorized.
func (s *AuthService) Authorize(ctx context.Context, token string) (model.Identity, error) {
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return model.Identity{}, fmt.Errorf("%w: %w", appErr.ErrUnauthorized, err)
	}
	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if appErr.IsNotFound(err) {
			return model.Identity{}, fmt.Errorf("%w: subject %s not found", appErr.ErrUnauthorized, claims.Subject)
		}
		return model.Identity{}, err
	}
	return user.Identity(), nil
}

func (s *AuthService) issue(user *model.User) (string, error) {
	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
