package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/keshster98/cashfly-backend/internal/auth"
	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/keshster98/cashfly-backend/internal/service/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_register(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService)

	input := users.RegisterInput{Name: "Aina", Email: "aina@example.com", Password: "hunter2hunter2"}
	c, w := newTestContext("POST", "/auth/register", input)
	mockService.On("Register", mock.Anything, input).
		Return(&domain.User{ID: "u1", Email: input.Email, Password: "hash", Role: domain.RoleUser}, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestAuthHandler_login(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService)

	input := users.LoginInput{Email: "aina@example.com", Password: "hunter2hunter2"}
	c, w := newTestContext("POST", "/auth/login", input)
	result := &users.LoginResult{
		User:  &domain.User{ID: "u1", Role: domain.RoleUser},
		Token: auth.AccessToken{Token: "jwt", ExpiresAt: time.Date(2026, 10, 18, 2, 0, 0, 0, time.UTC)},
	}
	mockService.On("Login", mock.Anything, input).Return(result, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response users.LoginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "jwt", response.Token.Token)
}

func TestAuthHandler_login_BadCredentials(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService)

	c, w := newTestContext("POST", "/auth/login", users.LoginInput{Email: "a@b.c", Password: "nope"})
	mockService.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_me(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService)

	c, w := newTestContext("GET", "/auth/me", nil)
	c.Set(ctxUserID, "u1")
	mockService.On("Me", mock.Anything, "u1").Return(&domain.User{ID: "u1"}, nil)

	handler.me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
