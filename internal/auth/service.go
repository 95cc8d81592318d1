package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/rs/zerolog"

	"github.com/noah-isme/phoneshop-api/internal/common"
)

const (
	defaultAccessTTL = 12 * time.Hour
	defaultIssuer    = "phoneshop-api"

	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"

	argon2idPrefix = "$argon2id$"
)

// Service coordinates login, token issuance, and account management.
type Service struct {
	store     Store
	secret    []byte
	accessTTL time.Duration
	issuer    string
	clockSkew time.Duration
	signer    jwa.SignatureAlgorithm
	validator TokenValidator
	now       func() time.Time
	log       zerolog.Logger
}

// Config configures the auth service.
type Config struct {
	Store          Store
	Secret         string
	AccessTokenTTL time.Duration
	Issuer         string
	ClockSkew      time.Duration
	Logger         zerolog.Logger
}

// LoginResult carries the issued token and its owner.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

func NewService(cfg Config) *Service {
	accessTTL := cfg.AccessTokenTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}
	signer := jwa.HS256
	return &Service{
		store:     cfg.Store,
		secret:    []byte(cfg.Secret),
		accessTTL: accessTTL,
		issuer:    issuer,
		clockSkew: cfg.ClockSkew,
		signer:    signer,
		validator: TokenValidator{Issuer: issuer, ClockSkew: cfg.ClockSkew, Algorithm: signer},
		now:       time.Now,
		log:       cfg.Logger,
	}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Login verifies credentials and issues an access token. Accounts still
// carrying a legacy plaintext password are rehashed with argon2id on the
// first successful login.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, common.ValidationError("username and password are required")
	}

	user, err := s.store.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, invalidCredentials(err)
	}
	if err != nil {
		return nil, err
	}

	ok, legacy, err := verifyPassword(password, user.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, invalidCredentials(nil)
	}
	if legacy {
		s.upgradePassword(ctx, user, password)
	}

	token, expiresAt, err := s.signAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	user.Password = ""
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

// Register creates a staff account. Only admins reach this path.
func (s *Service) Register(ctx context.Context, username, password string, isAdmin bool) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 6 {
		return nil, common.ValidationError("username and a password of at least 6 characters are required")
	}
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &User{ID: uuid.NewString(), Username: username, Password: hash, IsAdmin: isAdmin}
	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, common.ConflictError(common.CodeConflict, "username already exists", err)
		}
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// Me returns the account behind the request context.
func (s *Service) Me(ctx context.Context) (*User, error) {
	userID, ok := common.UserID(ctx)
	if !ok {
		return nil, common.NewAppError(common.CodeUnauthorized, "not authenticated",
			http.StatusUnauthorized, nil)
	}
	user, err := s.store.GetByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, common.NewAppError(common.CodeUnauthorized, "account no longer exists",
			http.StatusUnauthorized, err)
	}
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// IsAdmin reports whether the user id belongs to an admin account.
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.store.GetByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// SeedAdmin creates the built-in admin account when missing. Safe to run
// every start.
func (s *Service) SeedAdmin(ctx context.Context) error {
	_, err := s.store.GetByUsername(ctx, seedAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}
	hash, err := argon2id.CreateHash(seedAdminPassword, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user := &User{ID: uuid.NewString(), Username: seedAdminUsername, Password: hash, IsAdmin: true}
	err = s.store.Create(ctx, user)
	if errors.Is(err, ErrUsernameTaken) {
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info().Str("username", seedAdminUsername).Msg("admin account seeded")
	return nil
}

// ParseAccessToken validates an access token and returns the subject (user ID).
func (s *Service) ParseAccessToken(token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", common.NewAppError(common.CodeUnauthorized, "missing token",
			http.StatusUnauthorized, nil)
	}
	algorithm, err := extractTokenAlgorithm(trimmed)
	if err != nil {
		return "", common.NewAppError(common.CodeUnauthorized, "invalid token",
			http.StatusUnauthorized, err)
	}
	if s.validator.Algorithm != "" && algorithm != s.validator.Algorithm {
		return "", common.NewAppError(common.CodeUnauthorized, "invalid token",
			http.StatusUnauthorized, fmt.Errorf("unexpected token algorithm %s", algorithm))
	}
	parsed, err := jwt.ParseString(trimmed, jwt.WithKey(algorithm, s.secret))
	if err != nil {
		return "", common.NewAppError(common.CodeUnauthorized, "invalid token",
			http.StatusUnauthorized, err)
	}
	if err := s.validator.Validate(parsed, algorithm, s.now()); err != nil {
		return "", common.NewAppError(common.CodeUnauthorized, "invalid token",
			http.StatusUnauthorized, err)
	}
	return parsed.Subject(), nil
}

func (s *Service) signAccessToken(userID string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)
	builder := jwt.NewBuilder().
		Subject(userID).
		Issuer(s.issuer).
		IssuedAt(now).
		NotBefore(now.Add(-s.clockSkew)).
		Expiration(expiresAt)
	token, err := builder.Build()
	if err != nil {
		return "", time.Time{}, err
	}
	signed, err := jwt.Sign(token, jwt.WithKey(s.signer, s.secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return string(signed), expiresAt, nil
}

func (s *Service) upgradePassword(ctx context.Context, user *User, password string) {
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		s.log.Warn().Err(err).Str("username", user.Username).Msg("password rehash failed")
		return
	}
	if err := s.store.UpdatePassword(ctx, user.ID, hash); err != nil {
		s.log.Warn().Err(err).Str("username", user.Username).Msg("password upgrade failed")
		return
	}
	s.log.Info().Str("username", user.Username).Msg("legacy password upgraded to argon2id")
}

// verifyPassword reports whether the candidate matches, and whether the
// stored value is a legacy plaintext that should be rehashed.
func verifyPassword(candidate, stored string) (ok bool, legacy bool, err error) {
	if strings.HasPrefix(stored, argon2idPrefix) {
		ok, err = argon2id.ComparePasswordAndHash(candidate, stored)
		return ok, false, err
	}
	ok = subtle.ConstantTimeCompare([]byte(candidate), []byte(stored)) == 1
	return ok, ok, nil
}

func invalidCredentials(err error) *common.AppError {
	return common.NewAppError(common.CodeUnauthorized, "invalid username or password",
		http.StatusUnauthorized, err)
}
