package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenPairRoundtrip(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	pair, err := m.GeneratePair(42, "jo@example.com", "+8490000001", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.Equal(t, "+8490000001", claims.Phone)
	assert.Equal(t, "customer", claims.Role)

	claims, err = m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	pair, err := m.GeneratePair(1, "jo@example.com", "", "customer")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)
	_, err = m.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("one-secret", "refresh", time.Hour, time.Hour)
	verifier := NewTokenManager("other-secret", "refresh", time.Hour, time.Hour)

	pair, err := issuer.GeneratePair(1, "", "", "customer")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	pair, err := m.GeneratePair(1, "", "", "customer")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.Len(t, code, OTPLength)
		assert.GreaterOrEqual(t, code[0], byte('1'))
		assert.LessOrEqual(t, code[0], byte('9'))
	}
}

func TestOTPExpiry(t *testing.T) {
	expiry := OTPExpiry(5)

	assert.True(t, expiry.After(time.Now().Add(4*time.Minute)))
	assert.True(t, expiry.Before(time.Now().Add(6*time.Minute)))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.True(t, CheckPassword(hash, "secret-password"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
}
