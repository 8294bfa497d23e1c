package command

import (
	"context"
	"fmt"
	"time"

	"github.com/anhtn-dev/storefront/internal/user/domain"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
	"github.com/anhtn-dev/storefront/pkg/auth"
)

// VerifyOtpCommand represents the command to confirm a one-time code
type VerifyOtpCommand struct {
	Email   string
	OtpCode string
}

// UserInfo is the public view of an authenticated user
type UserInfo struct {
	UserID     uint    `json:"userId"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	FullName   string  `json:"fullName"`
	Role       string  `json:"role"`
	IsVerified bool    `json:"isVerified"`
}

// AuthResult carries the authenticated user together with a token pair
type AuthResult struct {
	User   UserInfo        `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

func newAuthResult(user *domain.User, tokens *auth.TokenPair) *AuthResult {
	return &AuthResult{
		User: UserInfo{
			UserID:     user.ID,
			Email:      user.Email,
			Phone:      user.Phone,
			FullName:   user.FullName,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
		Tokens: tokens,
	}
}

// VerifyOtpHandler handles OTP confirmation and logs the user in
type VerifyOtpHandler struct {
	users  domain.UserRepository
	otps   domain.OtpRepository
	tokens *auth.TokenManager
}

// NewVerifyOtpHandler creates a new verify-OTP handler
func NewVerifyOtpHandler(users domain.UserRepository, otps domain.OtpRepository, tokens *auth.TokenManager) *VerifyOtpHandler {
	return &VerifyOtpHandler{users: users, otps: otps, tokens: tokens}
}

// Handle executes the verify-OTP command
func (h *VerifyOtpHandler) Handle(ctx context.Context, cmd VerifyOtpCommand) (*AuthResult, error) {
	otp, err := h.otps.LatestPending(ctx, cmd.Email, domain.PurposeRegister)
	if err != nil || otp == nil {
		return nil, apperrors.NotFound("OTP_NOT_FOUND", "No pending verification code for this email")
	}
	if otp.Expired() {
		return nil, apperrors.BadRequest("OTP_EXPIRED", "Verification code has expired")
	}
	if otp.OtpCode != cmd.OtpCode {
		return nil, apperrors.BadRequest("OTP_INCORRECT", "Verification code is incorrect")
	}

	user, err := h.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, apperrors.NotFound("USER_NOT_FOUND", "User not found")
	}

	now := time.Now()
	user.IsVerified = true
	user.LastLoginAt = &now
	if err := h.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if err := h.otps.MarkVerified(ctx, otp.ID); err != nil {
		return nil, fmt.Errorf("failed to consume otp: %w", err)
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	phone := ""
	if user.Phone != nil {
		phone = *user.Phone
	}
	pair, err := h.tokens.GeneratePair(user.ID, email, phone, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return newAuthResult(user, pair), nil
}
