package app

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"syncpad/internal/pkg/jwtutil"
)

var (
	ErrInvalidCredential = errors.New("invalid password")
	ErrModLoginDisabled  = errors.New("moderator login is not configured")
)

// AuthService gates the moderation surface. There are no user accounts;
// a single shared moderator password (stored as a bcrypt hash in config)
// exchanges for a short-lived JWT.
type AuthService struct {
	modPasswordHash string
	jwtSecret       string
	jwtExpiration   time.Duration
}

func NewAuthService(modPasswordHash, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		modPasswordHash: modPasswordHash,
		jwtSecret:       jwtSecret,
		jwtExpiration:   jwtExpiration,
	}
}

func (s *AuthService) LoginModerator(password string) (string, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return "", ErrInvalidInput
	}
	if s.modPasswordHash == "" {
		return "", ErrModLoginDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.modPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, jwtutil.RoleModerator)
	if err != nil {
		return "", err
	}
	return token, nil
}
