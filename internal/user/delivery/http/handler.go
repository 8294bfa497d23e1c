package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/anhtn-dev/storefront/internal/user/domain"
	"github.com/anhtn-dev/storefront/internal/user/usecase/command"
	"github.com/anhtn-dev/storefront/pkg/apperrors"
	"github.com/anhtn-dev/storefront/pkg/auth"
	"github.com/anhtn-dev/storefront/pkg/logger"
)

var validate = validator.New()

// AuthHandler handles HTTP requests for registration and login
type AuthHandler struct {
	registerEmail *command.RegisterEmailHandler
	registerPhone *command.RegisterPhoneHandler
	verifyOtp     *command.VerifyOtpHandler
	resendOtp     *command.ResendOtpHandler
	loginEmail    *command.LoginEmailHandler
	loginPhone    *command.LoginPhoneHandler
	tokens        *auth.TokenManager

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewAuthHandler creates a new auth handler. Metrics are registered on the
// given registerer so tests can use an isolated registry.
func NewAuthHandler(
	users domain.UserRepository,
	otps domain.OtpRepository,
	sender command.OTPSender,
	tokens *auth.TokenManager,
	otpExpiryMinutes int,
	reg prometheus.Registerer,
) *AuthHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total number of requests to the auth endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)
	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_request_duration_seconds",
			Help:    "Duration of auth requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
	reg.MustRegister(requestCounter, requestLatency)

	return &AuthHandler{
		registerEmail:  command.NewRegisterEmailHandler(users, otps, sender, otpExpiryMinutes),
		registerPhone:  command.NewRegisterPhoneHandler(users, otps, sender, otpExpiryMinutes),
		verifyOtp:      command.NewVerifyOtpHandler(users, otps, tokens),
		resendOtp:      command.NewResendOtpHandler(users, otps, sender, otpExpiryMinutes),
		loginEmail:     command.NewLoginEmailHandler(users, tokens),
		loginPhone:     command.NewLoginPhoneHandler(users, tokens),
		tokens:         tokens,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// RegisterRoutes mounts the auth endpoints on the given router
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register/email", h.metricsMiddleware("/auth/register/email", h.RegisterEmail)).Methods("POST")
	router.HandleFunc("/auth/register/phone", h.metricsMiddleware("/auth/register/phone", h.RegisterPhone)).Methods("POST")
	router.HandleFunc("/auth/verify-otp", h.metricsMiddleware("/auth/verify-otp", h.VerifyOtp)).Methods("POST")
	router.HandleFunc("/auth/resend-otp", h.metricsMiddleware("/auth/resend-otp", h.ResendOtp)).Methods("POST")
	router.HandleFunc("/auth/login/email", h.metricsMiddleware("/auth/login/email", h.LoginEmail)).Methods("POST")
	router.HandleFunc("/auth/login/phone", h.metricsMiddleware("/auth/login/phone", h.LoginPhone)).Methods("POST")
	router.Handle("/auth/logout",
		AuthMiddleware(h.tokens)(http.HandlerFunc(h.metricsMiddleware("/auth/logout", h.Logout)))).Methods("POST")
}

// Response is the common envelope for all auth responses
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Error   *apperrors.AppError `json:"error,omitempty"`
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *AuthHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

type registerEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
}

type registerPhoneRequest struct {
	Phone    string `json:"phone" validate:"required,e164"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
}

type verifyOtpRequest struct {
	Email   string `json:"email" validate:"required,email"`
	OtpCode string `json:"otpCode" validate:"required,len=6,numeric"`
}

type resendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginEmailRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginPhoneRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// decodeAndValidate parses the JSON body into dst and runs struct validation
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.BadRequest("VALIDATION_ERROR", "Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.BadRequest("VALIDATION_ERROR", err.Error())
	}
	return nil
}

// RegisterEmail handles POST /auth/register/email
func (h *AuthHandler) RegisterEmail(w http.ResponseWriter, r *http.Request) {
	var req registerEmailRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.registerEmail.Handle(r.Context(), command.RegisterEmailCommand{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Registration successful. Check your email for the verification code.",
		Data:    result,
	})
}

// RegisterPhone handles POST /auth/register/phone
func (h *AuthHandler) RegisterPhone(w http.ResponseWriter, r *http.Request) {
	var req registerPhoneRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.registerPhone.Handle(r.Context(), command.RegisterPhoneCommand{
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Registration successful. Check your email for the verification code.",
		Data:    result,
	})
}

// VerifyOtp handles POST /auth/verify-otp
func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req verifyOtpRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.verifyOtp.Handle(r.Context(), command.VerifyOtpCommand{
		Email:   req.Email,
		OtpCode: req.OtpCode,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Account verified", Data: result})
}

// ResendOtp handles POST /auth/resend-otp
func (h *AuthHandler) ResendOtp(w http.ResponseWriter, r *http.Request) {
	var req resendOtpRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.resendOtp.Handle(r.Context(), command.ResendOtpCommand{Email: req.Email}); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Verification code sent"})
}

// LoginEmail handles POST /auth/login/email
func (h *AuthHandler) LoginEmail(w http.ResponseWriter, r *http.Request) {
	var req loginEmailRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.loginEmail.Handle(r.Context(), command.LoginEmailCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Login successful", Data: result})
}

// LoginPhone handles POST /auth/login/phone
func (h *AuthHandler) LoginPhone(w http.ResponseWriter, r *http.Request) {
	var req loginPhoneRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.loginPhone.Handle(r.Context(), command.LoginPhoneCommand{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Login successful", Data: result})
}

// Logout handles POST /auth/logout. Tokens are stateless, so logout only
// acknowledges; clients drop their token pair.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	logger.Info(r.Context()).Uint("user_id", userID).Msg("User logged out")

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out"})
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		respondJSON(w, appErr.Status, Response{Success: false, Error: appErr})
		return
	}

	logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Request failed")
	respondJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Error:   apperrors.New(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"),
	})
}
