package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/anhtn-dev/storefront/pkg/logger"
)

// Config holds SMTP settings. An empty Host disables delivery and logs
// outgoing mail instead, which is the development default.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config Config
}

func NewMailer(cfg Config) *Mailer {
	return &Mailer{config: cfg}
}

// SendHTMLEmail delivers a single HTML email over SMTP
func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {
	if m.config.Host == "" || m.config.Username == "" {
		logger.Logger.Info().
			Str("to", to).
			Str("subject", subject).
			Msg("SMTP not configured, skipping email delivery")
		return nil
	}

	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg string
	for k, v := range headers {
		msg += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	msg += "\r\n" + htmlBody

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// SendOTP sends the verification code email used by registration
func (m *Mailer) SendOTP(to, code, purpose string) error {
	subject := "Account verification"
	if purpose == "register" {
		subject = "Account registration verification"
	}

	if m.config.Host == "" || m.config.Username == "" {
		// Development fallback: surface the code in logs instead of mail
		logger.Logger.Info().
			Str("to", to).
			Str("purpose", purpose).
			Str("otp", code).
			Msg("SMTP not configured, OTP logged instead of sent")
		return nil
	}

	return m.SendHTMLEmail(to, subject, BuildOTPEmailBody(code, 5))
}

// BuildOTPEmailBody renders the HTML body for an OTP email
func BuildOTPEmailBody(otpCode string, expiryMinutes int) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
          <h2 style="color: #333;">Your OTP Code</h2>
          <p>Use this code to verify your account:</p>
          <div style="background: #f5f5f5; padding: 20px; border-radius: 5px; text-align: center;">
            <h1 style="color: #4CAF50; font-size: 36px; margin: 0; letter-spacing: 5px;">%s</h1>
          </div>
          <p style="color: #666; margin-top: 20px;">This code will expire in <strong>%d minutes</strong>.</p>
          <p style="color: #999; font-size: 12px; margin-top: 30px;">
            If you did not request this code, please ignore this email.
          </p>
        </div>`, otpCode, expiryMinutes)
}
