package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"litrevu/internal/config"
	"litrevu/internal/dto"
	"litrevu/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// SessionConfig is the explicit session lifecycle chosen at login time:
// persistent ("remember me") sessions get a two-week cookie, the rest expire
// when the browser closes with a shorter server-side bound.
type SessionConfig struct {
	TTL        time.Duration
	Persistent bool
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

func (s *AuthService) Register(form *dto.RegisterForm) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("username = ?", form.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     form.Username,
		PasswordHash: string(hash),
		Email:        form.Email,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// SessionConfigFor maps the remember-me flag to an explicit session lifetime.
func (s *AuthService) SessionConfigFor(rememberMe bool) SessionConfig {
	if rememberMe {
		return SessionConfig{TTL: s.cfg.RememberMeExpiry, Persistent: true}
	}
	return SessionConfig{TTL: s.cfg.SessionExpiry, Persistent: false}
}

// Login verifies credentials and mints a session token with the lifetime
// selected by the remember-me flag.
func (s *AuthService) Login(form *dto.LoginForm) (*models.User, string, SessionConfig, error) {
	var user models.User
	if err := s.db.Where("username = ?", form.Username).First(&user).Error; err != nil {
		return nil, "", SessionConfig{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		return nil, "", SessionConfig{}, ErrInvalidCredentials
	}

	sc := s.SessionConfigFor(form.RememberMe)
	token, err := s.createSession(&user, sc)
	if err != nil {
		return nil, "", SessionConfig{}, err
	}
	return &user, token, sc, nil
}

func (s *AuthService) createSession(user *models.User, sc SessionConfig) (string, error) {
	sessionID := uuid.New()
	expiresAt := time.Now().Add(sc.TTL)

	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"sid": sessionID.String(),
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	session := models.Session{
		ID:         sessionID,
		UserID:     user.ID,
		TokenHash:  hashToken(token),
		ExpiresAt:  expiresAt,
		Persistent: sc.Persistent,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// Logout revokes the session behind the token. Unknown tokens are a no-op.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.db.Model(&models.Session{}).
		Where("token_hash = ?", hashToken(token)).
		Update("revoked", true).Error
}

// ValidateSession checks the server-side session row behind a token.
func (s *AuthService) ValidateSession(token string) (*models.Session, error) {
	var session models.Session
	err := s.db.Where("token_hash = ? AND revoked = ?", hashToken(token), false).First(&session).Error
	if err != nil {
		return nil, ErrInvalidSession
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrInvalidSession
	}
	return &session, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
