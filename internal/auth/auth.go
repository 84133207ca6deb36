// Package auth registers users, checks credentials and manages sessions.
// A session lives in the session store; clients hold a signed token that
// carries only the session id.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aura/backend/internal/config"
	"aura/backend/internal/models"
	"aura/backend/internal/storage"

	"github.com/go-playground/validator/v10"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError reports the first invalid field and the rule it broke.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s failed %s validation", e.Field, e.Tag)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UserStore is the user persistence used by the service.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email" validate:"required,email"`
	Phone    string `json:"phone" binding:"required,phone10" validate:"required,phone10"`
	Password string `json:"password" binding:"required,min=6" validate:"required,min=6"`
	IsAdmin  bool   `json:"isAdmin"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Result is returned on successful registration or login.
type Result struct {
	Token   string         `json:"token"`
	Session models.Session `json:"user"`
}

type claims struct {
	jwt.RegisteredClaims
}

type Service struct {
	users    UserStore
	sessions storage.SessionStore
	secret   []byte
	ttl      time.Duration
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewService(users UserStore, sessions storage.SessionStore, secret string, ttl time.Duration, log *zap.SugaredLogger) *Service {
	if ttl <= 0 {
		ttl = config.DefaultSessionTTL
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// Register creates an account and logs it in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Result, error) {
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := GetValidator().Struct(in); err != nil {
		return Result{}, toValidationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		IsAdmin:      in.IsAdmin,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return Result{}, ErrEmailTaken
		}
		return Result{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Infow("User registered", "user_id", user.ID, "admin", user.IsAdmin)
	return s.startSession(ctx, user)
}

// Login requires the account type to match: an admin account cannot log in
// as a resident and vice versa.
func (s *Service) Login(ctx context.Context, in LoginInput) (Result, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, storage.ErrNotFound) {
		return Result{}, ErrInvalidCredentials
	}
	if err != nil {
		return Result{}, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil || user.IsAdmin != in.IsAdmin {
		return Result{}, ErrInvalidCredentials
	}
	return s.startSession(ctx, user)
}

func (s *Service) startSession(ctx context.Context, user *models.User) (Result, error) {
	session := models.Session{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Email:   user.Email,
		Phone:   user.Phone,
		IsAdmin: user.IsAdmin,
	}
	if err := s.sessions.SaveSession(ctx, session, s.ttl); err != nil {
		return Result{}, fmt.Errorf("save session: %w", err)
	}

	token, err := s.sign(session)
	if err != nil {
		return Result{}, err
	}
	return Result{Token: token, Session: session}, nil
}

func (s *Service) sign(session models.Session) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.UserID,
			Issuer:    config.TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves a bearer token to its live session.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(config.TokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || c.ID == "" {
		return nil, ErrInvalidToken
	}

	session, err := s.sessions.GetSession(ctx, c.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

// Logout ends the session.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.DeleteSession(ctx, sessionID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return &ValidationError{Field: strings.ToLower(errs[0].Field()), Tag: errs[0].Tag()}
	}
	return err
}
