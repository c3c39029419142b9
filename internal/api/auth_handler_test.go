package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwise/taskwise-api/internal/config"
	"github.com/taskwise/taskwise-api/internal/domain"
	"github.com/taskwise/taskwise-api/internal/service/auth"
	"github.com/taskwise/taskwise-api/internal/store"
)

// MockUserStore is a mock implementation of store.UserStore for testing
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

// MockJWTService is a mock implementation of auth.JWTService for testing
type MockJWTService struct {
	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	return "access-token", nil
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	return nil, auth.ErrInvalidToken
}

func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return "refresh-token", nil
}

func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return nil, auth.ErrInvalidRefreshToken
}

// MockPasswordVerifier is a mock implementation of auth.PasswordVerifier
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error
}

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "thisisatestsecretthatis32charslong!!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	}
}

func newAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	verifier auth.PasswordVerifier,
) *AuthHandler {
	return NewAuthHandler(userStore, jwtService, verifier, testAuthConfig(), newTestLogger())
}

func postJSON(t *testing.T, target string, body interface{}) *http.Request {
	t.Helper()

	var reqBody []byte
	if str, ok := body.(string); ok {
		reqBody = []byte(str)
	} else {
		var err error
		reqBody, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("successful_registration", func(t *testing.T) {
		var createdEmail string
		userStore := &MockUserStore{
			CreateFn: func(ctx context.Context, user *domain.User) error {
				createdEmail = user.Email
				return nil
			},
		}
		handler := newAuthHandler(userStore, &MockJWTService{}, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/register", RegisterRequest{
			Email:    "new@example.com",
			Password: "longenoughpassword",
		})
		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "new@example.com", createdEmail)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
		assert.NotEmpty(t, resp.ExpiresAt)
		assert.NotEqual(t, uuid.Nil, resp.UserID)
	})

	t.Run("duplicate_email_conflicts", func(t *testing.T) {
		userStore := &MockUserStore{
			CreateFn: func(ctx context.Context, user *domain.User) error {
				return store.ErrEmailExists
			},
		}
		handler := newAuthHandler(userStore, &MockJWTService{}, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/register", RegisterRequest{
			Email:    "taken@example.com",
			Password: "longenoughpassword",
		})
		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		resp := decodeErrorResponse(t, rr)
		assert.Equal(t, "Email already exists", resp.Error)
	})

	t.Run("rejects_short_password", func(t *testing.T) {
		handler := newAuthHandler(&MockUserStore{}, &MockJWTService{}, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/register", RegisterRequest{
			Email:    "new@example.com",
			Password: "short",
		})
		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects_invalid_email", func(t *testing.T) {
		handler := newAuthHandler(&MockUserStore{}, &MockJWTService{}, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/register", RegisterRequest{
			Email:    "not-an-email",
			Password: "longenoughpassword",
		})
		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects_malformed_body", func(t *testing.T) {
		handler := newAuthHandler(&MockUserStore{}, &MockJWTService{}, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/register", `{"email": "broken`)
		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	fixedUserID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	existingUser := func() *domain.User {
		return &domain.User{
			ID:             fixedUserID,
			Email:          "user@example.com",
			HashedPassword: "$2a$10$fakehash",
		}
	}

	t.Run("successful_login", func(t *testing.T) {
		userStore := &MockUserStore{
			GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				assert.Equal(t, "user@example.com", email)
				return existingUser(), nil
			},
		}
		handler := newAuthHandler(userStore, &MockJWTService{}, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/login", LoginRequest{
			Email:    "user@example.com",
			Password: "correct-password",
		})
		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, fixedUserID, resp.UserID)
		assert.Equal(t, "access-token", resp.AccessToken)
	})

	t.Run("unknown_email_is_unauthorized", func(t *testing.T) {
		handler := newAuthHandler(&MockUserStore{}, &MockJWTService{}, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/login", LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		resp := decodeErrorResponse(t, rr)
		assert.Equal(t, "Invalid credentials", resp.Error)
	})

	t.Run("wrong_password_is_unauthorized", func(t *testing.T) {
		userStore := &MockUserStore{
			GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return existingUser(), nil
			},
		}
		verifier := &MockPasswordVerifier{
			CompareFn: func(hashedPassword, password string) error {
				return errors.New("mismatch")
			},
		}
		handler := newAuthHandler(userStore, &MockJWTService{}, verifier)

		req := postJSON(t, "/api/auth/login", LoginRequest{
			Email:    "user@example.com",
			Password: "wrong-password",
		})
		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		resp := decodeErrorResponse(t, rr)
		assert.Equal(t, "Invalid credentials", resp.Error)
	})

	t.Run("store_error_is_internal", func(t *testing.T) {
		userStore := &MockUserStore{
			GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, errors.New("connection reset")
			},
		}
		handler := newAuthHandler(userStore, &MockJWTService{}, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/login", LoginRequest{
			Email:    "user@example.com",
			Password: "whatever",
		})
		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	fixedUserID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	t.Run("successful_refresh", func(t *testing.T) {
		jwtService := &MockJWTService{
			ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				assert.Equal(t, "old-refresh-token", tokenString)
				return &auth.Claims{UserID: fixedUserID, TokenType: "refresh"}, nil
			},
		}
		handler := newAuthHandler(&MockUserStore{}, jwtService, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "old-refresh-token",
		})
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp RefreshTokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("expired_refresh_token", func(t *testing.T) {
		jwtService := &MockJWTService{
			ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredRefreshToken
			},
		}
		handler := newAuthHandler(&MockUserStore{}, jwtService, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "stale-token",
		})
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		resp := decodeErrorResponse(t, rr)
		assert.Equal(t, "Invalid refresh token", resp.Error)
	})

	t.Run("missing_refresh_token", func(t *testing.T) {
		handler := newAuthHandler(&MockUserStore{}, &MockJWTService{}, &MockPasswordVerifier{})

		req := postJSON(t, "/api/auth/refresh", RefreshTokenRequest{})
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
