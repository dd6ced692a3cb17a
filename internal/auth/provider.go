package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Hariom1711/travelbuddy/internal/jwtutil"
	"github.com/Hariom1711/travelbuddy/internal/logger"
	"github.com/Hariom1711/travelbuddy/internal/metrics"
	"github.com/Hariom1711/travelbuddy/internal/model"
	"github.com/Hariom1711/travelbuddy/internal/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence the provider needs
type UserStore interface {
	FindUserByID(ctx context.Context, id uint) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByAccount(ctx context.Context, provider, providerAccountID string) (*model.User, error)
	CreateAccount(ctx context.Context, account *model.Account) error
	CreateUserWithAccount(ctx context.Context, user *model.User, account *model.Account) error
}

// Config is the process-wide auth setup, built once in main
type Config struct {
	CookieName   string
	SecureCookie bool
	// BcryptCost defaults to bcrypt.DefaultCost when zero
	BcryptCost int
}

// Credentials is an email/password sign-in attempt
type Credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Identity is a verified assertion from a federated provider
type Identity struct {
	Provider          string
	ProviderAccountID string
	Email             string
	Name              string
	Image             string
}

// Provider authenticates users and issues and reads sessions
type Provider struct {
	users  UserStore
	tokens *jwtutil.JWTUtil
	cfg    Config

	dummyOnce sync.Once
	dummyHash []byte
}

// NewProvider wires a provider from its collaborators
func NewProvider(users UserStore, tokens *jwtutil.JWTUtil, cfg Config) *Provider {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "travelbuddy.session-token"
	}
	return &Provider{users: users, tokens: tokens, cfg: cfg}
}

// NormalizeEmail trims and lower-cases an address before lookups and inserts
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate checks credentials against the stored bcrypt hash.
// Every failure returns ErrInvalidCredentials; the reason only reaches metrics and debug logs.
func (p *Provider) Authenticate(ctx context.Context, creds Credentials) (*model.User, error) {
	log := logger.FromContext(ctx)
	email := NormalizeEmail(creds.Email)

	if email == "" || creds.Password == "" {
		return nil, p.credentialFailure(log, "incomplete_credentials")
	}

	user, err := p.users.FindUserByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		p.burnCompare(creds.Password)
		return nil, p.credentialFailure(log, "user_not_found")
	case err != nil:
		metrics.RecordLogin("credentials", "error")
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !user.HasPassword() {
		p.burnCompare(creds.Password)
		return nil, p.credentialFailure(log, "no_password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(creds.Password)); err != nil {
		return nil, p.credentialFailure(log, "invalid_password")
	}

	metrics.RecordLogin("credentials", "success")
	return user, nil
}

func (p *Provider) credentialFailure(log *zap.Logger, reason string) error {
	log.Debug("Credential sign-in rejected", zap.String("reason", reason))
	metrics.RecordAuthError(reason)
	metrics.RecordLogin("credentials", "failure")
	return ErrInvalidCredentials
}

// burnCompare spends a bcrypt comparison so unknown emails cost as much as wrong passwords
func (p *Provider) burnCompare(password string) {
	p.dummyOnce.Do(func() {
		p.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("travelbuddy-dummy-password"), p.cfg.BcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(p.dummyHash, []byte(password))
}

// Register creates a credentials user after validating the input
func (p *Provider) Register(ctx context.Context, in SignupInput) (*model.User, error) {
	if errs := in.Validate(); errs.OrNil() != nil {
		metrics.RecordSignup("invalid")
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), p.cfg.BcryptCost)
	if err != nil {
		metrics.RecordSignup("error")
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashed := string(hash)

	user := &model.User{
		Email:    NormalizeEmail(in.Email),
		Password: &hashed,
	}
	if err := p.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			metrics.RecordSignup("conflict")
			return nil, ErrEmailTaken
		}
		metrics.RecordSignup("error")
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordSignup("success")
	logger.FromContext(ctx).Info("User registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// CompleteFederated resolves a provider identity to a user, creating one on first sign-in.
// The boolean reports whether the user was created.
func (p *Provider) CompleteFederated(ctx context.Context, id Identity) (*model.User, bool, error) {
	email := NormalizeEmail(id.Email)
	if id.Provider == "" || id.ProviderAccountID == "" || email == "" {
		metrics.RecordAuthError("incomplete_identity")
		return nil, false, ErrInvalidIdentity
	}

	user, err := p.users.FindUserByAccount(ctx, id.Provider, id.ProviderAccountID)
	if err == nil {
		metrics.RecordLogin(id.Provider, "success")
		return user, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("find account: %w", err)
	}

	existing, err := p.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil && existing.HasPassword():
		// a password account is never linked implicitly: whoever registered
		// the address may not own it
		metrics.RecordAuthError("account_not_linked")
		metrics.RecordLogin(id.Provider, "failure")
		return nil, false, ErrAccountNotLinked
	case err == nil:
		account := &model.Account{UserID: existing.ID, Provider: id.Provider, ProviderAccountID: id.ProviderAccountID}
		if err := p.users.CreateAccount(ctx, account); err != nil && !errors.Is(err, store.ErrAlreadyExists) {
			return nil, false, fmt.Errorf("link account: %w", err)
		}
		metrics.RecordLogin(id.Provider, "success")
		return existing, false, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, false, fmt.Errorf("find user by email: %w", err)
	}

	now := time.Now()
	user = &model.User{
		Email:         email,
		Name:          optional(id.Name),
		Image:         optional(id.Image),
		EmailVerified: &now,
	}
	account := &model.Account{Provider: id.Provider, ProviderAccountID: id.ProviderAccountID}

	if err := p.users.CreateUserWithAccount(ctx, user, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// a concurrent callback for the same identity won the insert
			if existing, findErr := p.users.FindUserByAccount(ctx, id.Provider, id.ProviderAccountID); findErr == nil {
				metrics.RecordLogin(id.Provider, "success")
				return existing, false, nil
			}
			metrics.RecordLogin(id.Provider, "failure")
			return nil, false, ErrAccountNotLinked
		}
		return nil, false, fmt.Errorf("create federated user: %w", err)
	}

	metrics.RecordLogin(id.Provider, "success")
	logger.FromContext(ctx).Info("Federated user created",
		zap.Uint("user_id", user.ID),
		zap.String("provider", id.Provider))
	return user, true, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
