package command

import (
	"context"
	"fmt"

	"github.com/anhtn-dev/storefront/internal/user/domain"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
	"github.com/anhtn-dev/storefront/pkg/auth"
)

// OTPSender delivers a one-time code to an email address
type OTPSender interface {
	SendOTP(to, code, purpose string) error
}

// RegisterEmailCommand represents the command to register with an email
// address
type RegisterEmailCommand struct {
	Email    string
	Password string
	FullName string
}

// RegistrationResult is returned after a successful registration; the
// account stays unverified until the OTP is confirmed
type RegistrationResult struct {
	UserID uint    `json:"userId"`
	Email  *string `json:"email"`
	Phone  *string `json:"phone"`
}

// RegisterEmailHandler handles email registration
type RegisterEmailHandler struct {
	users            domain.UserRepository
	otps             domain.OtpRepository
	sender           OTPSender
	otpExpiryMinutes int
}

// NewRegisterEmailHandler creates a new register-by-email handler
func NewRegisterEmailHandler(users domain.UserRepository, otps domain.OtpRepository, sender OTPSender, otpExpiryMinutes int) *RegisterEmailHandler {
	return &RegisterEmailHandler{users: users, otps: otps, sender: sender, otpExpiryMinutes: otpExpiryMinutes}
}

// Handle executes the register-by-email command
func (h *RegisterEmailHandler) Handle(ctx context.Context, cmd RegisterEmailCommand) (*RegistrationResult, error) {
	if existing, _ := h.users.FindByEmail(ctx, cmd.Email); existing != nil {
		return nil, apperrors.Conflict("EMAIL_ALREADY_EXISTS", "Email already in use")
	}

	passwordHash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        &cmd.Email,
		PasswordHash: passwordHash,
		FullName:     cmd.FullName,
		Provider:     "local",
		IsVerified:   false,
		IsActive:     true,
		Role:         domain.RoleCustomer,
	}
	if err := h.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := issueRegistrationOTP(ctx, h.otps, h.sender, user.ID, cmd.Email, h.otpExpiryMinutes); err != nil {
		return nil, err
	}

	return &RegistrationResult{UserID: user.ID, Email: user.Email, Phone: user.Phone}, nil
}

// issueRegistrationOTP generates, stores, and delivers a registration code
func issueRegistrationOTP(ctx context.Context, otps domain.OtpRepository, sender OTPSender, userID uint, email string, expiryMinutes int) error {
	code, err := auth.GenerateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	otp := &domain.OtpVerification{
		UserID:    &userID,
		Email:     email,
		OtpCode:   code,
		Purpose:   domain.PurposeRegister,
		ExpiresAt: auth.OTPExpiry(expiryMinutes),
	}
	if err := otps.Create(ctx, otp); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := sender.SendOTP(email, code, domain.PurposeRegister); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}
