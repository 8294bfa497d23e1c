package command

import (
	"context"
	"fmt"

	"github.com/anhtn-dev/storefront/internal/user/domain"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
	"github.com/anhtn-dev/storefront/pkg/auth"
)

// RegisterPhoneCommand represents the command to register with a phone
// number. An email is still required because the verification code is
// delivered by email.
type RegisterPhoneCommand struct {
	Phone    string
	Email    string
	Password string
	FullName string
}

// RegisterPhoneHandler handles phone registration
type RegisterPhoneHandler struct {
	users            domain.UserRepository
	otps             domain.OtpRepository
	sender           OTPSender
	otpExpiryMinutes int
}

// NewRegisterPhoneHandler creates a new register-by-phone handler
func NewRegisterPhoneHandler(users domain.UserRepository, otps domain.OtpRepository, sender OTPSender, otpExpiryMinutes int) *RegisterPhoneHandler {
	return &RegisterPhoneHandler{users: users, otps: otps, sender: sender, otpExpiryMinutes: otpExpiryMinutes}
}

// Handle executes the register-by-phone command
func (h *RegisterPhoneHandler) Handle(ctx context.Context, cmd RegisterPhoneCommand) (*RegistrationResult, error) {
	if existing, _ := h.users.FindByPhone(ctx, cmd.Phone); existing != nil {
		return nil, apperrors.Conflict("PHONE_ALREADY_EXISTS", "Phone number already in use")
	}
	if existing, _ := h.users.FindByEmail(ctx, cmd.Email); existing != nil {
		return nil, apperrors.Conflict("EMAIL_ALREADY_EXISTS", "Email already in use")
	}

	passwordHash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Phone:        &cmd.Phone,
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
