package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// OTPLength is the number of digits in a generated OTP code
const OTPLength = 6

// GenerateOTPCode returns a random 6-digit one-time code
func GenerateOTPCode() (string, error) {
	// 100000..999999 so the code never has a leading zero
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// OTPExpiry returns the expiration time for a code issued now
func OTPExpiry(minutes int) time.Time {
	return time.Now().Add(time.Duration(minutes) * time.Minute)
}
