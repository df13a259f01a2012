package service

import (
	"context"
	"errors"
	"time"

	"cloverpass/internal/auth"
	"cloverpass/internal/repository"
	"cloverpass/pkg/util"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SessionService authenticates accounts and issues session tokens.
type SessionService struct {
	accounts repository.IAccountRepository
	profiles repository.IProfileRepository
	tokens   *auth.TokenService
	log      *zap.SugaredLogger
}

func NewSessionService(accounts repository.IAccountRepository, profiles repository.IProfileRepository, tokens *auth.TokenService, log *zap.SugaredLogger) *SessionService {
	return &SessionService{accounts: accounts, profiles: profiles, tokens: tokens, log: log}
}

// LoginResult carries the fresh token and the identity it belongs to.
type LoginResult struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *SessionService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	acc, err := s.accounts.FindByEmail(ctx, util.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Disabled {
		return nil, auth.ErrInvalidCredentials
	}
	if err := auth.CheckPassword(acc.PasswordHash, password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(acc.UID, acc.Email)
	if err != nil {
		return nil, err
	}
	s.log.Infow("session issued", "uid", acc.UID)
	return &LoginResult{Token: token, UID: acc.UID, Email: acc.Email}, nil
}

// Refresh re-issues a token for a still-valid session.
func (s *SessionService) Refresh(ctx context.Context, claims auth.Claims) (*LoginResult, error) {
	acc, err := s.accounts.FindByUID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Disabled {
		return nil, auth.ErrInvalidToken
	}
	token, err := s.tokens.Sign(acc.UID, acc.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, UID: acc.UID, Email: acc.Email}, nil
}

// TouchLastLogin stamps the caller's profile. Missing profile maps to
// ErrProfileNotFound so the gateway can respond 401.
func (s *SessionService) TouchLastLogin(ctx context.Context, uid string) error {
	err := s.profiles.UpdateLastLogin(ctx, uid, time.Now())
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrProfileNotFound
	}
	return err
}

// TokenTTL exposes the configured token lifetime for cookie max-age.
func (s *SessionService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}
