package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dhruvp132/Dhyan-ecom/internal/apperr"
	"github.com/Dhruvp132/Dhyan-ecom/internal/cache"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
	"github.com/Dhruvp132/Dhyan-ecom/internal/objectid"
)

type JwtCustomClaims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// UserService handles registration, login, and session validation. Sessions
// are JWTs cached in Redis keyed by email for 24 hours.
type UserService struct {
	userRepo UserStore
	sessions cache.Cache
	secret   []byte
}

func NewUserService(userRepo UserStore, sessions cache.Cache, secret string) *UserService {
	return &UserService{userRepo: userRepo, sessions: sessions, secret: []byte(secret)}
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", apperr.ErrInvalidInput)
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperr.ErrInvalidInput)
	} else if !isMissingRecord(err) {
		logger.Error().Err(err).Msg("Error checking existing email")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:       objectid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a 24h JWT, cached in Redis.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if isMissingRecord(err) {
			return "", fmt.Errorf("%w: invalid email or password", apperr.ErrInvalidInput)
		}
		return "", err
	}
	if user.Password == "" {
		return "", fmt.Errorf("%w: account uses federated login", apperr.ErrInvalidInput)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid email or password", apperr.ErrInvalidInput)
	}

	claims := &JwtCustomClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}

	if err := s.sessions.Set(ctx, "session:"+email, token, time.Hour*24); err != nil {
		logger.Error().Err(err).Msg("Error caching session")
		return "", err
	}
	return token, nil
}

// ValidateSession checks that the presented token is the one cached for the
// email.
func (s *UserService) ValidateSession(ctx context.Context, email, token string) error {
	cached, err := s.sessions.Get(ctx, "session:"+email)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return fmt.Errorf("%w: session not found", apperr.ErrNotFound)
		}
		return err
	}
	if cached != token {
		return fmt.Errorf("%w: session mismatch", apperr.ErrInvalidInput)
	}
	return nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	if !objectid.IsValid(id) {
		return nil, fmt.Errorf("%w: invalid user ID format. Please log out and log back in", apperr.ErrInvalidInput)
	}
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if isMissingRecord(err) {
			return nil, fmt.Errorf("%w: user not found", apperr.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}
