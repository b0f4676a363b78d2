package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	token, userID := env.register(t, "Ada@Example.com")
	assert.NotEmpty(t, token)

	stored, err := env.db.GetUser(t.Context(), userID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "ada@example.com", stored.Email)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/auth/register", types.CreateUserRequest{
			Name: "Other", Email: "ada@example.com", Password: "correct-horse",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("validation", func(t *testing.T) {
		for _, req := range []types.CreateUserRequest{
			{Name: "", Email: "x@example.com", Password: "correct-horse"},
			{Name: "X", Email: "not-an-email", Password: "correct-horse"},
			{Name: "X", Email: "x@example.com", Password: "short"},
		} {
			w := env.do(t, http.MethodPost, "/auth/register", req, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, req)
			assert.Contains(t, w.Body.String(), "validation error")
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/auth/register", "{", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	_, userID := env.register(t, "login@example.com")

	w := env.do(t, http.MethodPost, "/auth/login", types.LoginRequest{Email: "LOGIN@example.com", Password: "correct-horse"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[types.LoginResponse](t, w)
	assert.Equal(t, userID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)

	for _, req := range []types.LoginRequest{
		{Email: "login@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "correct-horse"},
	} {
		w := env.do(t, http.MethodPost, "/auth/login", req, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"invalid email or password"}`, w.Body.String())
	}
}

func TestUpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "pw@example.com")

	w := env.do(t, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{
		CurrentPassword: "correct-horse", NewPassword: "battery-staple",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "token required")

	w = env.do(t, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{
		CurrentPassword: "wrong-password", NewPassword: "battery-staple",
	}, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPut, "/auth/password", types.UpdatePasswordRequest{
		CurrentPassword: "correct-horse", NewPassword: "battery-staple",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/auth/login", types.LoginRequest{Email: "pw@example.com", Password: "battery-staple"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/auth/login", types.LoginRequest{Email: "pw@example.com", Password: "correct-horse"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserService_PropagatesDBErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := env.server.userService

	_, err := svc.Login(t.Context(), &types.LoginRequest{Email: "x@example.com", Password: "whatever1"})
	var credErr *ErrInvalidCredentials
	assert.True(t, errors.As(err, &credErr))

	err = svc.UpdatePassword(t.Context(), uuid.New(), "a-password", "b-password")
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}
