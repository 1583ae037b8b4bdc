package services

import (
	"context"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/api/v1/dto"
	"github.com/willyyyaj/medical-system/internal/app/auth"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

// AuthServiceImpl implements AuthService
type AuthServiceImpl struct {
	users  repository.UserRepository
	issuer *auth.TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepository, issuer *auth.TokenIssuer) AuthService {
	return &AuthServiceImpl{users: users, issuer: issuer}
}

// Login verifies the credentials and issues a bearer token.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, errors.NewUnauthorizedError("Incorrect username or password")
	}
	if !auth.VerifyPassword(user.HashedPassword, req.Password) {
		return nil, errors.NewUnauthorizedError("Incorrect username or password")
	}

	token, err := s.issuer.IssueToken(user.Username)
	if err != nil {
		return nil, errors.NewInternalError("Failed to issue access token")
	}

	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
