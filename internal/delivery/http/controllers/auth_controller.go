package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	h "eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

// Server-side failure messages for the auth routes.
const (
	msgSignUpFailed = "Server error during registration"
	msgLoginFailed  = "Server error during login"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SignUpRequest is the request body for POST /auth/signup
type SignUpRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
}

// Validate implements Validator. Only the first failing rule is reported.
func (s SignUpRequest) Validate() []string {
	email := strings.TrimSpace(s.Email)
	if email == "" || s.Password == "" {
		return []string{domain.MsgMissingFields}
	}
	if err := domain.ValidatePassword(s.Password); err != nil {
		return []string{err.Error()}
	}
	if err := validate.Var(email, "email"); err != nil {
		return []string{domain.MsgInvalidEmail}
	}
	return nil
}

// LoginRequest is the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"secret1"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	if strings.TrimSpace(l.Email) == "" || l.Password == "" {
		return []string{domain.MsgMissingFields}
	}
	return nil
}

// AuthResponse is the response body for a successful sign-up or login.
type AuthResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    domain.UserSummary `json:"user"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Create a user from email and password and return a session token. Email is trimmed and lower-cased; the password is stored hashed.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} controllers.AuthResponse
// @Failure 400 {object} helpers.MessageResponse "missing fields, short password, invalid email, or duplicate email"
// @Failure 429 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.WriteJSONError(w, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, domain.ErrDuplicateEmail):
			h.WriteJSONError(w, http.StatusBadRequest, "User with this email already exists")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, msgSignUpFailed)
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, AuthResponse{
		Message: "User registered successfully",
		Token:   res.Token,
		User:    res.User.Summary(),
	})
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password and return a session token valid for one hour by default.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} controllers.AuthResponse
// @Failure 400 {object} helpers.MessageResponse "missing fields or invalid credentials"
// @Failure 429 {object} helpers.MessageResponse
// @Failure 500 {object} helpers.MessageResponse
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.WriteJSONError(w, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.WriteJSONError(w, http.StatusBadRequest, "Invalid credentials")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, msgLoginFailed)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, AuthResponse{
		Message: "Logged in successfully",
		Token:   res.Token,
		User:    res.User.Summary(),
	})
}
