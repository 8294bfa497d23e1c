package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/anhtn-dev/storefront/internal/user/domain"
)

// GormOtpRepository implements OtpRepository using GORM
type GormOtpRepository struct {
	db *gorm.DB
}

// NewGormOtpRepository creates a new GORM OTP repository
func NewGormOtpRepository(db *gorm.DB) *GormOtpRepository {
	return &GormOtpRepository{db: db}
}

// Create inserts a new OTP record
func (r *GormOtpRepository) Create(ctx context.Context, otp *domain.OtpVerification) error {
	if err := r.db.WithContext(ctx).Create(otp).Error; err != nil {
		return fmt.Errorf("failed to create otp: %w", err)
	}
	return nil
}

// LatestPending returns the newest unconsumed code for the given email and
// purpose
func (r *GormOtpRepository) LatestPending(ctx context.Context, email, purpose string) (*domain.OtpVerification, error) {
	var otp domain.OtpVerification
	err := r.db.WithContext(ctx).
		Where("email = ? AND purpose = ? AND is_verified = ?", email, purpose, false).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// MarkVerified consumes an OTP record
func (r *GormOtpRepository) MarkVerified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&domain.OtpVerification{}).
		Where("otp_id = ?", id).
		Update("is_verified", true).Error
}
