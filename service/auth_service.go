// service/auth_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	bo_errors "github.com/buildledger/backoffice/errors"
	logger "github.com/buildledger/backoffice/logging"
	"github.com/buildledger/backoffice/model"
)

// TokenIssuer signs access tokens for a user record.
type TokenIssuer interface {
	Issue(user *model.User) (string, time.Time, error)
}

type credentialStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

type IAuthService interface {
	Login(ctx context.Context, creds model.Credentials) (*LoginResult, error)
	Me(ctx context.Context) (*model.User, error)
}

type AuthService struct {
	users  credentialStore
	tokens TokenIssuer
	// dummyHash is compared against when the email is unknown so both paths cost a bcrypt round.
	dummyHash []byte
}

var _ IAuthService = &AuthService{}

func NewAuthService(users credentialStore, tokens TokenIssuer) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("backoffice-login-placeholder"), bcrypt.DefaultCost)
	return &AuthService{users: users, tokens: tokens, dummyHash: dummy}
}

// Login never tells the caller whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, creds model.Credentials) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if !errors.Is(err, bo_errors.ErrNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(creds.Password))
		logger.Info("Login failed: unknown email")
		return nil, bo_errors.ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		logger.Info("Login failed: wrong password", zap.String("userID", user.ID))
		return nil, bo_errors.ErrInvalidLogin
	}
	if !user.IsActive {
		logger.Info("Login failed: account inactive", zap.String("userID", user.ID))
		return nil, bo_errors.ErrAccountInactive
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		logger.Error("Failed to issue token", zap.Error(err), zap.String("userID", user.ID))
		return nil, bo_errors.ErrInternalServer
	}

	logger.Info("User logged in", zap.String("userID", user.ID), zap.String("role", string(user.Role)))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Me returns the stored record of the authenticated caller.
func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	principal, err := principalFrom(ctx)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, principal.ID())
}
