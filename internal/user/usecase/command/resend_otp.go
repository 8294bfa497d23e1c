package command

import (
	"context"

	"github.com/anhtn-dev/storefront/internal/user/domain"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
)

// ResendOtpCommand represents the command to re-send a verification code
type ResendOtpCommand struct {
	Email string
}

// ResendOtpHandler handles re-issuing registration codes
type ResendOtpHandler struct {
	users            domain.UserRepository
	otps             domain.OtpRepository
	sender           OTPSender
	otpExpiryMinutes int
}

// NewResendOtpHandler creates a new resend-OTP handler
func NewResendOtpHandler(users domain.UserRepository, otps domain.OtpRepository, sender OTPSender, otpExpiryMinutes int) *ResendOtpHandler {
	return &ResendOtpHandler{users: users, otps: otps, sender: sender, otpExpiryMinutes: otpExpiryMinutes}
}

// Handle executes the resend-OTP command. A fresh code is issued; the
// previous one stays pending but is superseded because verification always
// checks the newest code.
func (h *ResendOtpHandler) Handle(ctx context.Context, cmd ResendOtpCommand) error {
	user, err := h.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return apperrors.NotFound("USER_NOT_FOUND", "User not found")
	}
	if user.IsVerified {
		return apperrors.BadRequest("ALREADY_VERIFIED", "Account is already verified")
	}

	return issueRegistrationOTP(ctx, h.otps, h.sender, user.ID, cmd.Email, h.otpExpiryMinutes)
}
