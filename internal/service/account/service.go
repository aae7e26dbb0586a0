package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/interviai/backend/internal/model/user"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	// ErrInvalidCredentials is deliberately the same for an unknown email
	// and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	bcryptCost = 10
	tokenTTL   = 7 * 24 * time.Hour
)

// Service implements signup, signin, and profile maintenance over a user
// store, issuing JWT session tokens.
type Service struct {
	store  user.Store
	secret []byte
}

// NewService builds an account service signing tokens with jwtSecret.
func NewService(store user.Store, jwtSecret string) *Service {
	return &Service{store: store, secret: []byte(jwtSecret)}
}

// Register creates an account and returns the stored user plus a session
// token. Duplicate emails surface user.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, email, password, name string) (user.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return user.User{}, "", ErrEmailRequired
	}
	if password == "" {
		return user.User{}, "", ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return user.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.store.Create(ctx, user.User{
		Email:    email,
		Password: string(hash),
		Name:     name,
	})
	if err != nil {
		return user.User{}, "", err
	}

	token, err := s.IssueToken(created.ID)
	if err != nil {
		return user.User{}, "", err
	}
	return created, token, nil
}

// Login verifies credentials and returns the user plus a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, string, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		return user.User{}, "", err
	}
	return u, token, nil
}

// Get fetches a profile by identifier.
func (s *Service) Get(ctx context.Context, id string) (user.User, error) {
	return s.store.FindByID(ctx, id)
}

// Update applies the provided profile fields; nil pointers leave the stored
// value alone.
func (s *Service) Update(ctx context.Context, id string, name, resumeSummary *string) error {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if name != nil {
		u.Name = *name
	}
	if resumeSummary != nil {
		u.ResumeSummary = *resumeSummary
	}

	return s.store.Update(ctx, u)
}

// IssueToken signs a session token carrying the user identifier.
func (s *Service) IssueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a session token and returns the user identifier it
// carries.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
