package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetCode is a single-use credential authorizing one password change
// for the account identified by Email. Rows are never deleted by the reset flow;
// consumed and expired codes stay behind as an audit trail.
type PasswordResetCode struct {
	gorm.Model
	Email     string    `gorm:"size:255;not null;index"`
	Code      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
}

// Usable reports whether the code can still redeem a password change at now.
func (c *PasswordResetCode) Usable(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}
