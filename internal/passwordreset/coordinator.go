package passwordreset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moodyme/backend/internal/models"

	"go.uber.org/zap"
)

// Redemption failure kinds reported to the caller. The caller already holds
// the code, so distinguishing the kinds leaks nothing useful.
var (
	ErrInvalidToken     = errors.New("reset code does not exist")
	ErrTokenExpired     = errors.New("reset code has expired")
	ErrTokenAlreadyUsed = errors.New("reset code has already been used")
)

// ErrCodeGenerationExhausted is an internal failure: the issuance retry bound
// was exceeded because every generated code collided in the store. It signals
// a misbehaving code space or store and must surface as a server error, never
// as a normal "user not found" no-op.
var ErrCodeGenerationExhausted = errors.New("reset code generation exhausted retry budget")

// Collaborator-level sentinel errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrCodeConflict    = errors.New("reset code already exists")
	ErrCodeNotFound    = errors.New("reset code not found")
	ErrAlreadyConsumed = errors.New("reset code already consumed")
)

// UserStore is the account lookup and password update capability.
type UserStore interface {
	// FindByEmail returns ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdatePassword replaces the stored hash for the account with the given email.
	UpdatePassword(ctx context.Context, email string, passwordHash string) error
}

// CredentialStore persists reset codes. It must provide an atomic
// "create if code not present" and "consume if not already consumed".
type CredentialStore interface {
	// Create returns ErrCodeConflict when the code is already present.
	Create(ctx context.Context, cred *models.PasswordResetCode) error
	// FindByCode returns ErrCodeNotFound when no credential matches.
	FindByCode(ctx context.Context, code string) (*models.PasswordResetCode, error)
	// ConsumeIfValid flips the used flag in a single conditional update. It
	// returns ErrAlreadyConsumed when the credential was consumed (or expired)
	// between lookup and consumption, and ErrCodeNotFound when it never existed.
	ConsumeIfValid(ctx context.Context, code string, now time.Time) error
}

// EmailSender delivers the reset code to the account's address.
type EmailSender interface {
	SendResetCode(ctx context.Context, toAddress string, code string) error
}

// PasswordHasher produces a one-way salted hash of a plaintext password.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// maxGenerateAttempts bounds the regenerate-on-collision loop during issuance.
const maxGenerateAttempts = 5

// Coordinator owns the password reset credential lifecycle:
// request -> issuance -> single-use redemption -> expiry.
type Coordinator struct {
	users    UserStore
	creds    CredentialStore
	email    EmailSender
	hasher   PasswordHasher
	generate func() (string, error)
	ttl      time.Duration
	now      func() time.Time
	log      *zap.Logger
}

// New builds a Coordinator. ttl <= 0 defaults to one hour, now == nil
// defaults to time.Now.
func New(
	users UserStore,
	creds CredentialStore,
	email EmailSender,
	hasher PasswordHasher,
	ttl time.Duration,
	now func() time.Time,
	log *zap.Logger,
) *Coordinator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Coordinator{
		users:    users,
		creds:    creds,
		email:    email,
		hasher:   hasher,
		generate: GenerateCode,
		ttl:      ttl,
		now:      now,
		log:      log,
	}
}

// RequestReset issues a single-use reset credential for the account with the
// given email and hands it to the email collaborator. It reports success for
// unknown emails as well, so the response shape never reveals whether an
// account exists. Email delivery failures are logged and swallowed: the
// credential is already persisted and stays valid.
func (c *Coordinator) RequestReset(ctx context.Context, email string) error {
	user, err := c.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		c.log.Info("Password reset requested for non-existent email", zap.String("email", email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("looking up account: %w", err)
	}

	now := c.now()
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		code, err := c.generate()
		if err != nil {
			return fmt.Errorf("generating reset code: %w", err)
		}

		cred := &models.PasswordResetCode{
			Email:     user.Email,
			Code:      code,
			ExpiresAt: now.Add(c.ttl),
		}
		err = c.creds.Create(ctx, cred)
		if errors.Is(err, ErrCodeConflict) {
			c.log.Warn("Reset code collision, regenerating",
				zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return fmt.Errorf("persisting reset code: %w", err)
		}

		if err := c.email.SendResetCode(ctx, user.Email, code); err != nil {
			c.log.Error("Failed to send password reset email",
				zap.String("email", user.Email), zap.Error(err))
		}
		return nil
	}

	c.log.Error("Reset code generation exhausted",
		zap.Int("attempts", maxGenerateAttempts))
	return ErrCodeGenerationExhausted
}

// RedeemReset presents a code together with a new password. On success the
// credential is consumed permanently and the account's password is replaced.
// Failures are reported precisely: ErrInvalidToken, ErrTokenExpired or
// ErrTokenAlreadyUsed.
func (c *Coordinator) RedeemReset(ctx context.Context, code string, newPassword string) error {
	cred, err := c.creds.FindByCode(ctx, code)
	if errors.Is(err, ErrCodeNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("looking up reset code: %w", err)
	}

	now := c.now()
	if !cred.Usable(now) {
		if !now.Before(cred.ExpiresAt) {
			return ErrTokenExpired
		}
		return ErrTokenAlreadyUsed
	}

	passwordHash, err := c.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing new password: %w", err)
	}

	// Consume before touching the password. The conditional update is the
	// only arbiter between concurrent redeemers of the same code: exactly one
	// caller wins, everyone else lands here with ErrAlreadyConsumed.
	err = c.creds.ConsumeIfValid(ctx, code, now)
	if errors.Is(err, ErrAlreadyConsumed) || errors.Is(err, ErrCodeNotFound) {
		return ErrTokenAlreadyUsed
	}
	if err != nil {
		return fmt.Errorf("consuming reset code: %w", err)
	}

	if err := c.users.UpdatePassword(ctx, cred.Email, passwordHash); err != nil {
		c.log.Error("Reset code consumed but password update failed",
			zap.String("email", cred.Email), zap.Error(err))
		return fmt.Errorf("updating password: %w", err)
	}

	return nil
}
