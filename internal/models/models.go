package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Custom types for Role and ContentType to enforce specific values.
type UserRole string
type ContentType string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"

	ContentAboutUs       ContentType = "ABOUT_US"
	ContentHelpSupport   ContentType = "HELP_SUPPORT"
	ContentPrivacyPolicy ContentType = "PRIVACY_POLICY"
	ContentHomeScreen    ContentType = "HOME_SCREEN"
	ContentSplashScreen  ContentType = "SPLASH_SCREEN"
	ContentSignupMessage ContentType = "SIGNUP_MESSAGE"
	ContentLoginMessage  ContentType = "LOGIN_MESSAGE"
)

// KnownContentTypes lists every content page type the mobile app understands.
var KnownContentTypes = []ContentType{
	ContentAboutUs,
	ContentHelpSupport,
	ContentPrivacyPolicy,
	ContentHomeScreen,
	ContentSplashScreen,
	ContentSignupMessage,
	ContentLoginMessage,
}

// IsKnownContentType reports whether t is one of the supported page types.
func IsKnownContentType(t ContentType) bool {
	for _, known := range KnownContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}

// Banner is a promotional banner shown in the mobile app carousel.
type Banner struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Subtitle     string    `gorm:"size:255" json:"subtitle"`
	ImageURL     string    `gorm:"size:2048;not null" json:"image_url"`
	Link         string    `gorm:"size:2048" json:"link"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (banner *Banner) BeforeCreate(tx *gorm.DB) (err error) {
	if banner.ID == uuid.Nil {
		banner.ID = uuid.New()
	}
	return
}

// Content is a static page (About Us, Privacy Policy, ...) served to the app.
type Content struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;" json:"id"`
	Type      ContentType `gorm:"type:varchar(30);not null;index" json:"type"`
	Title     string      `gorm:"size:255;not null" json:"title"`
	Body      string      `gorm:"type:text;not null" json:"body"`
	IsActive  bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (content *Content) BeforeCreate(tx *gorm.DB) (err error) {
	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}
	return
}
