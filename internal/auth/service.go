// Package auth implements local credential authentication: login with
// email + password, refresh-token rotation and logout with access-token
// blacklisting.
package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/docfolio/backend/internal/apperror"
	"github.com/docfolio/backend/internal/models"
	"github.com/docfolio/backend/internal/sessions"
	"github.com/docfolio/backend/internal/tokens"
	"github.com/docfolio/backend/internal/users"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service struct {
	users      users.Repository
	sessions   *sessions.Service
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(userRepo users.Repository, sessionSvc *sessions.Service, secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		users:      userRepo,
		sessions:   sessionSvc,
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Login verifies the credentials and issues an access + refresh pair. Bad
// email and bad password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, *models.User, error) {
	if email == "" || password == "" {
		return nil, nil, apperror.Validation("email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil, apperror.Forbidden("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Account.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperror.Forbidden("invalid credentials")
	}
	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh rotates a valid refresh token into a fresh pair. The old refresh
// session is deleted so the token is single use.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperror.Validation("refresh token is required")
	}
	sess, err := s.sessions.ValidateRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperror.Forbidden("refresh token is invalid or expired")
	}
	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperror.Forbidden("refresh token is invalid or expired")
	}
	if err := s.sessions.DeleteRefresh(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

// Logout deletes the refresh session and blacklists the access token for
// the remainder of its lifetime.
func (s *Service) Logout(ctx context.Context, refreshToken, accessToken string) error {
	if refreshToken != "" {
		if err := s.sessions.DeleteRefresh(ctx, refreshToken); err != nil {
			return err
		}
	}
	if accessToken != "" {
		if err := sessions.BlacklistAccessToken(ctx, accessToken, s.accessTTL); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) issue(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := tokens.GenerateAccessToken(s.secret, user, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sessions.CreateSession(ctx, user.ID, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
