package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"contacts-api/internal/domain/user"
	"contacts-api/internal/infrastructure/metrics"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserExists            = errors.New("user already exists")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type TokenIssuer interface {
	GenerateJWT(userID string, expiresIn time.Duration) (string, error)
}

type AuthService struct {
	userRepository user.Repository
	tokens         TokenIssuer
	tokenTTL       time.Duration
	mCounter       *prometheus.CounterVec
	hashCost       int
}

func NewAuthService(
	userRepository user.Repository,
	tokens TokenIssuer,
	tokenTTL time.Duration,
	mCounter *prometheus.CounterVec,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		tokens:         tokens,
		tokenTTL:       tokenTTL,
		mCounter:       mCounter,
		hashCost:       bcrypt.DefaultCost,
	}
}

func (as *AuthService) Register(ctx context.Context, email, password string) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), as.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := as.userRepository.CreateUser(ctx, normalizeEmail(email), string(hash))
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	as.mCounter.WithLabelValues(metrics.UserRegistered).Inc()

	return u, nil
}

// Login does not tell an unknown email apart from a wrong password.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := as.userRepository.FetchUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			as.mCounter.WithLabelValues(metrics.LoginFailed).Inc()
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		as.mCounter.WithLabelValues(metrics.LoginFailed).Inc()
		return "", ErrInvalidCredentials
	}

	token, err := as.tokens.GenerateJWT(u.ID.String(), as.tokenTTL)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
