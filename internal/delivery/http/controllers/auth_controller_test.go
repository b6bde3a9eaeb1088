package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	result    *domain.AuthResult
	err       error
	lastEmail string
	calls     int
}

func (f *fakeAuthService) SignUp(_ context.Context, email, _ string) (*domain.AuthResult, error) {
	f.calls++
	f.lastEmail = email
	return f.result, f.err
}

func (f *fakeAuthService) Login(_ context.Context, email, _ string) (*domain.AuthResult, error) {
	f.calls++
	f.lastEmail = email
	return f.result, f.err
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body helpers.MessageResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Message
}

func okAuthResult() *domain.AuthResult {
	return &domain.AuthResult{
		Token: "tok",
		User:  &domain.User{ID: "user-1", Email: "alice@example.com", PasswordHash: "secret-hash"},
	}
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svc         *fakeAuthService
		wantStatus  int
		wantMessage string
		wantCalled  bool
	}{
		{
			name:        "success",
			body:        `{"email":"alice@example.com","password":"secret1"}`,
			svc:         &fakeAuthService{result: okAuthResult()},
			wantStatus:  http.StatusCreated,
			wantMessage: "User registered successfully",
			wantCalled:  true,
		},
		{
			name:        "missing password",
			body:        `{"email":"alice@example.com"}`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: domain.MsgMissingFields,
		},
		{
			name:        "short password",
			body:        `{"email":"alice@example.com","password":"12345"}`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: domain.MsgPasswordTooShort,
		},
		{
			name:        "short multibyte password",
			body:        `{"email":"alice@example.com","password":"ééé"}`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: domain.MsgPasswordTooShort,
		},
		{
			name:        "six multibyte characters",
			body:        `{"email":"alice@example.com","password":"éééééé"}`,
			svc:         &fakeAuthService{result: okAuthResult()},
			wantStatus:  http.StatusCreated,
			wantMessage: "User registered successfully",
			wantCalled:  true,
		},
		{
			name:        "password over bcrypt limit",
			body:        `{"email":"alice@example.com","password":"` + strings.Repeat("a", domain.MaxPasswordBytes+1) + `"}`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: domain.MsgPasswordTooLong,
		},
		{
			name:        "invalid email",
			body:        `{"email":"not-an-email","password":"secret1"}`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: domain.MsgInvalidEmail,
		},
		{
			name:        "malformed json",
			body:        `{"email":`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: helpers.MsgInvalidJSON,
		},
		{
			name:        "duplicate email",
			body:        `{"email":"alice@example.com","password":"secret1"}`,
			svc:         &fakeAuthService{err: domain.ErrDuplicateEmail},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "User with this email already exists",
			wantCalled:  true,
		},
		{
			name:        "service failure hides detail",
			body:        `{"email":"alice@example.com","password":"secret1"}`,
			svc:         &fakeAuthService{err: errors.New("pq: connection refused")},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Server error during registration",
			wantCalled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCalled, tt.svc.calls > 0)
			if tt.wantStatus != http.StatusCreated {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, rr))
				return
			}
			var body map[string]any
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.Equal(t, "tok", body["token"])
			assert.Equal(t, map[string]any{"id": "user-1", "email": "alice@example.com"}, body["user"])
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		svc         *fakeAuthService
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "success",
			body:        `{"email":"alice@example.com","password":"secret1"}`,
			svc:         &fakeAuthService{result: okAuthResult()},
			wantStatus:  http.StatusOK,
			wantMessage: "Logged in successfully",
		},
		{
			name:        "missing email",
			body:        `{"password":"secret1"}`,
			svc:         &fakeAuthService{},
			wantStatus:  http.StatusBadRequest,
			wantMessage: domain.MsgMissingFields,
		},
		{
			name:        "invalid credentials",
			body:        `{"email":"alice@example.com","password":"wrong"}`,
			svc:         &fakeAuthService{err: domain.ErrInvalidCredentials},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid credentials",
		},
		{
			name:        "service failure",
			body:        `{"email":"alice@example.com","password":"secret1"}`,
			svc:         &fakeAuthService{err: errors.New("boom")},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Server error during login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, tt.wantMessage, decodeMessage(t, rr))
				return
			}
			raw := rr.Body.String()
			assert.NotContains(t, raw, "secret-hash")
			var body AuthResponse
			require.NoError(t, json.Unmarshal([]byte(raw), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, "tok", body.Token)
			assert.Equal(t, "user-1", body.User.ID)
		})
	}
}
