package domain

import (
	"context"
	"time"
)

// Role types
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// OTP purposes
const (
	PurposeRegister = "register"
)

// User represents the user entity. Email and Phone are both optional but at
// least one is always present; registrations by phone still carry an email
// because OTP delivery is email-only.
type User struct {
	ID            uint       `json:"userId" gorm:"column:user_id;primaryKey"`
	Email         *string    `json:"email" gorm:"size:255;uniqueIndex"`
	Phone         *string    `json:"phone" gorm:"size:20;uniqueIndex"`
	PasswordHash  string     `json:"-" gorm:"size:255"`
	FullName      string     `json:"fullName" gorm:"size:255"`
	AvatarURL     string     `json:"avatarUrl" gorm:"size:500"`
	Provider      string     `json:"provider" gorm:"size:20;default:'local'"`
	ProviderID    *string    `json:"-" gorm:"size:255"`
	IsVerified    bool       `json:"isVerified" gorm:"default:false"`
	IsActive      bool       `json:"isActive" gorm:"default:true"`
	Role          string     `json:"role" gorm:"size:20;default:'customer';index"`
	LoyaltyPoints int        `json:"loyaltyPoints" gorm:"default:0"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastLoginAt   *time.Time `json:"lastLoginAt"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// OtpVerification is one issued one-time code. A code is consumed by
// setting IsVerified.
type OtpVerification struct {
	ID         uint      `json:"otpId" gorm:"column:otp_id;primaryKey"`
	UserID     *uint     `json:"userId"`
	Email      string    `json:"email" gorm:"size:255;not null;index"`
	OtpCode    string    `json:"-" gorm:"size:10;not null"`
	Purpose    string    `json:"purpose" gorm:"size:20;not null"`
	ExpiresAt  time.Time `json:"expiresAt" gorm:"not null;index"`
	IsVerified bool      `json:"isVerified" gorm:"default:false"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName specifies the table name
func (OtpVerification) TableName() string {
	return "otp_verifications"
}

// Expired reports whether the code is past its expiration time
func (o *OtpVerification) Expired() bool {
	return time.Now().After(o.ExpiresAt)
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// OtpRepository defines the contract for OTP data access
type OtpRepository interface {
	Create(ctx context.Context, otp *OtpVerification) error
	// LatestPending returns the newest unconsumed code for the given email
	// and purpose
	LatestPending(ctx context.Context, email, purpose string) (*OtpVerification, error)
	MarkVerified(ctx context.Context, id uint) error
}
