package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/anhtn-dev/storefront/internal/user/domain"
	"github.com/anhtn-dev/storefront/pkg/auth"
)

type memoryUserRepo struct {
	users  []*domain.User
	nextID uint
}

func (m *memoryUserRepo) Create(ctx context.Context, user *domain.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users = append(m.users, user)
	return nil
}

func (m *memoryUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Phone != nil && *u.Phone == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) Update(ctx context.Context, user *domain.User) error {
	return nil
}

type memoryOtpRepo struct {
	otps []*domain.OtpVerification
}

func (m *memoryOtpRepo) Create(ctx context.Context, otp *domain.OtpVerification) error {
	otp.ID = uint(len(m.otps) + 1)
	m.otps = append(m.otps, otp)
	return nil
}

func (m *memoryOtpRepo) LatestPending(ctx context.Context, email, purpose string) (*domain.OtpVerification, error) {
	for i := len(m.otps) - 1; i >= 0; i-- {
		if m.otps[i].Email == email && m.otps[i].Purpose == purpose && !m.otps[i].IsVerified {
			return m.otps[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryOtpRepo) MarkVerified(ctx context.Context, id uint) error {
	for _, otp := range m.otps {
		if otp.ID == id {
			otp.IsVerified = true
		}
	}
	return nil
}

type noopSender struct{}

func (noopSender) SendOTP(to, code, purpose string) error { return nil }

type testEnv struct {
	router *mux.Router
	otps   *memoryOtpRepo
}

func newTestEnv() *testEnv {
	tokens := auth.NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	otps := &memoryOtpRepo{}
	handler := NewAuthHandler(&memoryUserRepo{}, otps, noopSender{}, tokens, 5, prometheus.NewRegistry())

	router := mux.NewRouter()
	handler.RegisterRoutes(router.PathPrefix("/api/v1").Subrouter())
	return &testEnv{router: router, otps: otps}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *testEnv) post(t *testing.T, target string, body map[string]string, headers map[string]string) (int, envelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	r := httptest.NewRequest("POST", target, bytes.NewReader(raw))
	r.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestRegisterVerifyLoginFlow(t *testing.T) {
	env := newTestEnv()

	status, resp := env.post(t, "/api/v1/auth/register/email", map[string]string{
		"email":    "jo@example.com",
		"password": "secret-password",
		"fullName": "Jo",
	}, nil)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, resp.Success)

	// Login before verification is rejected
	status, resp = env.post(t, "/api/v1/auth/login/email", map[string]string{
		"email":    "jo@example.com",
		"password": "secret-password",
	}, nil)
	require.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMAIL_NOT_VERIFIED", resp.Error.Code)

	require.Len(t, env.otps.otps, 1)
	status, resp = env.post(t, "/api/v1/auth/verify-otp", map[string]string{
		"email":   "jo@example.com",
		"otpCode": env.otps.otps[0].OtpCode,
	}, nil)
	require.Equal(t, http.StatusOK, status)

	var verified struct {
		Tokens struct {
			AccessToken string `json:"accessToken"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &verified))
	assert.NotEmpty(t, verified.Tokens.AccessToken)

	status, resp = env.post(t, "/api/v1/auth/login/email", map[string]string{
		"email":    "jo@example.com",
		"password": "secret-password",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)

	var login struct {
		User struct {
			Email      string `json:"email"`
			IsVerified bool   `json:"isVerified"`
		} `json:"user"`
		Tokens struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	assert.Equal(t, "jo@example.com", login.User.Email)
	assert.True(t, login.User.IsVerified)
	assert.NotEmpty(t, login.Tokens.RefreshToken)

	// Logout requires the bearer token
	status, resp = env.post(t, "/api/v1/auth/logout", nil, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)

	status, resp = env.post(t, "/api/v1/auth/logout", nil, map[string]string{
		"Authorization": "Bearer " + login.Tokens.AccessToken,
	})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
}

func TestRegisterEmail_DuplicateConflict(t *testing.T) {
	env := newTestEnv()
	body := map[string]string{
		"email":    "jo@example.com",
		"password": "secret-password",
		"fullName": "Jo",
	}

	status, _ := env.post(t, "/api/v1/auth/register/email", body, nil)
	require.Equal(t, http.StatusCreated, status)

	status, resp := env.post(t, "/api/v1/auth/register/email", body, nil)
	require.Equal(t, http.StatusConflict, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", resp.Error.Code)
}

func TestRegisterEmail_ValidationErrors(t *testing.T) {
	env := newTestEnv()

	bodies := []map[string]string{
		{"email": "not-an-email", "password": "secret-password", "fullName": "Jo"},
		{"email": "jo@example.com", "password": "short", "fullName": "Jo"},
		{"email": "jo@example.com", "password": "secret-password"},
	}
	for _, body := range bodies {
		status, resp := env.post(t, "/api/v1/auth/register/email", body, nil)
		require.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	}
}

func TestVerifyOtp_WrongCodeOverHTTP(t *testing.T) {
	env := newTestEnv()

	status, _ := env.post(t, "/api/v1/auth/register/email", map[string]string{
		"email":    "jo@example.com",
		"password": "secret-password",
		"fullName": "Jo",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	wrong := "000000"
	if env.otps.otps[0].OtpCode == wrong {
		wrong = "000001"
	}
	status, resp := env.post(t, "/api/v1/auth/verify-otp", map[string]string{
		"email":   "jo@example.com",
		"otpCode": wrong,
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "OTP_INCORRECT", resp.Error.Code)
}

func TestResendOtp_IssuesNewCode(t *testing.T) {
	env := newTestEnv()

	status, _ := env.post(t, "/api/v1/auth/register/email", map[string]string{
		"email":    "jo@example.com",
		"password": "secret-password",
		"fullName": "Jo",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	status, resp := env.post(t, "/api/v1/auth/resend-otp", map[string]string{
		"email": "jo@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)
	assert.Len(t, env.otps.otps, 2)
}

func TestLogout_MalformedAuthorizationHeader(t *testing.T) {
	env := newTestEnv()

	status, resp := env.post(t, "/api/v1/auth/logout", nil, map[string]string{
		"Authorization": "Token abc",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)

	status, resp = env.post(t, "/api/v1/auth/logout", nil, map[string]string{
		"Authorization": "Bearer not-a-jwt",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}
