//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/anhtn-dev/storefront/internal/user/delivery/http"
	"github.com/anhtn-dev/storefront/internal/user/domain"
	"github.com/anhtn-dev/storefront/internal/user/repository"
	"github.com/anhtn-dev/storefront/internal/user/usecase/command"
	"github.com/anhtn-dev/storefront/pkg/auth"
	"github.com/anhtn-dev/storefront/pkg/mailer"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// ProvideOtpRepository provides the OTP repository
func ProvideOtpRepository(db *gorm.DB) domain.OtpRepository {
	return repository.NewGormOtpRepository(db)
}

// ProvideOTPSender provides the OTP sender backed by the SMTP mailer
func ProvideOTPSender(m *mailer.Mailer) command.OTPSender {
	return m
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideOtpRepository,
)

// InitializeHTTPHandler initializes the auth HTTP handler with all
// dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	m *mailer.Mailer,
	tokens *auth.TokenManager,
	otpExpiryMinutes int,
	reg prometheus.Registerer,
) (*http.AuthHandler, error) {
	wire.Build(
		RepositorySet,
		ProvideOTPSender,
		http.NewAuthHandler,
	)
	return nil, nil
}
