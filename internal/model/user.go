package model

import (
	"time"
)

const (
	VerificationNone     = "none"
	VerificationPending  = "pending"
	VerificationVerified = "verified"
)

type User struct {
	ID                    int64      `gorm:"primaryKey" json:"id"`
	Username              string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email                 *string    `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	PasswordHash          *string    `gorm:"size:255" json:"-"`
	FullName              string     `gorm:"size:100" json:"full_name"`
	Phone                 string     `gorm:"size:30" json:"phone"`
	Country               string     `gorm:"size:60" json:"country"`
	Bio                   string     `gorm:"type:text" json:"bio"`
	ProfileImageURL       string     `gorm:"size:500" json:"profile_image_url"`
	ProfileImagePublicID  string     `gorm:"size:255" json:"-"`
	VerificationDocURL    string     `gorm:"size:500" json:"-"`
	VerificationStatus    string     `gorm:"size:20;default:none" json:"verification_status"`
	GoogleID              *string    `gorm:"column:google_id;size:50;uniqueIndex" json:"-"`
	EmailVerified         bool       `gorm:"default:false" json:"email_verified"`
	VerificationCode      *string    `gorm:"size:100" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
