package passwordreset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"moodyme/backend/internal/models"

	"gorm.io/gorm"
)

// GormUserStore implements UserStore on top of the users table.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) UpdatePassword(ctx context.Context, email string, passwordHash string) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// GormCredentialStore implements CredentialStore on top of the
// password_reset_codes table. Uniqueness of codes is enforced by the unique
// index; consumption is a single conditional UPDATE.
type GormCredentialStore struct {
	db *gorm.DB
}

func NewGormCredentialStore(db *gorm.DB) *GormCredentialStore {
	return &GormCredentialStore{db: db}
}

func (s *GormCredentialStore) Create(ctx context.Context, cred *models.PasswordResetCode) error {
	err := s.db.WithContext(ctx).Create(cred).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCodeConflict
	}
	return err
}

func (s *GormCredentialStore) FindByCode(ctx context.Context, code string) (*models.PasswordResetCode, error) {
	var cred models.PasswordResetCode
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (s *GormCredentialStore) ConsumeIfValid(ctx context.Context, code string, now time.Time) error {
	// used=false in the guard makes concurrent redemptions race on a single
	// row version; the loser updates zero rows.
	res := s.db.WithContext(ctx).Model(&models.PasswordResetCode{}).
		Where("code = ? AND used = ? AND expires_at > ?", code, false, now).
		Update("used", true)
	if res.Error != nil {
		return fmt.Errorf("consuming reset code: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyConsumed
	}
	return nil
}
