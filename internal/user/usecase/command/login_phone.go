package command

import (
	"context"

	"github.com/anhtn-dev/storefront/internal/user/domain"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
	"github.com/anhtn-dev/storefront/pkg/auth"
)

// LoginPhoneCommand represents the command to log in with a phone number
type LoginPhoneCommand struct {
	Phone    string
	Password string
}

// LoginPhoneHandler handles phone login
type LoginPhoneHandler struct {
	users  domain.UserRepository
	tokens *auth.TokenManager
}

// NewLoginPhoneHandler creates a new login-by-phone handler
func NewLoginPhoneHandler(users domain.UserRepository, tokens *auth.TokenManager) *LoginPhoneHandler {
	return &LoginPhoneHandler{users: users, tokens: tokens}
}

// Handle executes the login-by-phone command
func (h *LoginPhoneHandler) Handle(ctx context.Context, cmd LoginPhoneCommand) (*AuthResult, error) {
	user, err := h.users.FindByPhone(ctx, cmd.Phone)
	if err != nil {
		return nil, apperrors.Unauthorized("INVALID_CREDENTIALS", "Invalid phone or password")
	}
	return authenticate(ctx, h.users, h.tokens, user, cmd.Password)
}
