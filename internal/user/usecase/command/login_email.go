package command

import (
	"context"
	"fmt"
	"time"

	"github.com/anhtn-dev/storefront/internal/user/domain"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
	"github.com/anhtn-dev/storefront/pkg/auth"
)

// LoginEmailCommand represents the command to log in with an email address
type LoginEmailCommand struct {
	Email    string
	Password string
}

// LoginEmailHandler handles email login
type LoginEmailHandler struct {
	users  domain.UserRepository
	tokens *auth.TokenManager
}

// NewLoginEmailHandler creates a new login-by-email handler
func NewLoginEmailHandler(users domain.UserRepository, tokens *auth.TokenManager) *LoginEmailHandler {
	return &LoginEmailHandler{users: users, tokens: tokens}
}

// Handle executes the login-by-email command
func (h *LoginEmailHandler) Handle(ctx context.Context, cmd LoginEmailCommand) (*AuthResult, error) {
	user, err := h.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, apperrors.Unauthorized("INVALID_CREDENTIALS", "Invalid email or password")
	}
	return authenticate(ctx, h.users, h.tokens, user, cmd.Password)
}

// authenticate checks the password and account state, records the login,
// and issues a token pair
func authenticate(ctx context.Context, users domain.UserRepository, tokens *auth.TokenManager, user *domain.User, password string) (*AuthResult, error) {
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.Unauthorized("INVALID_CREDENTIALS", "Invalid email or password")
	}
	if !user.IsVerified {
		return nil, apperrors.Forbidden("EMAIL_NOT_VERIFIED", "Account email is not verified")
	}
	if !user.IsActive {
		return nil, apperrors.Forbidden("ACCOUNT_DISABLED", "Account has been disabled")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	phone := ""
	if user.Phone != nil {
		phone = *user.Phone
	}
	pair, err := tokens.GeneratePair(user.ID, email, phone, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return newAuthResult(user, pair), nil
}
