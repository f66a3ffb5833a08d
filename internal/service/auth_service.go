package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/campus-kit/registrar-service/internal/auth"
	"github.com/campus-kit/registrar-service/internal/config"
	"github.com/campus-kit/registrar-service/internal/domain"
	"github.com/campus-kit/registrar-service/internal/repository"
	util "github.com/campus-kit/registrar-service/pkg/util"
)

// Default admin account seeded on a fresh install so the tool is usable
// before any accounts are provisioned.
const (
	seedUsername = "admin"
	seedPassword = "Passw0rd!"
	seedRole     = "admin"
)

// AuthService handles the admin login flow.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// LoginResult carries the authenticated account and its session token.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues a session token. An empty user
// table is seeded with the default admin account first.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if err := s.seedIfEmpty(ctx); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewUnauthorized("Invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, util.NewUnauthorized("Invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// TokenManager exposes the token manager for middleware or tests.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) seedIfEmpty(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	hash, err := auth.HashPassword(seedPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	seeded := &domain.User{
		ID:           domain.NewID(),
		Username:     seedUsername,
		PasswordHash: hash,
		Role:         seedRole,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, seeded); err != nil {
		return err
	}
	s.logger.Info("seeded default admin account", zap.String("username", seedUsername))
	return nil
}
