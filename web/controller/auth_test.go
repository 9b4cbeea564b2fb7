package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, "POST", "/api/auth/register", "", map[string]any{
		"username": "luka",
		"email":    "Luka@Example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	msg := decodeMsg(t, rec)
	assert.True(t, msg.Success)

	data := msg.Data.(map[string]any)
	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	user := data["user"].(map[string]any)
	assert.Equal(t, "luka", user["username"])
	// Stored lowercased regardless of input casing.
	assert.Equal(t, "luka@example.com", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, rec.Body.String(), "secret123")
	assert.NotContains(t, rec.Body.String(), "password")

	rec = srv.request(t, "POST", "/api/auth/login", "", map[string]any{
		"email":    "luka@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.request(t, "POST", "/api/auth/login", "", map[string]any{
		"email":    "luka@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.request(t, "GET", "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"luka"`)

	rec = srv.request(t, "GET", "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"user"`)
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, "POST", "/api/auth/register", "", map[string]any{
		"username": "ab",
		"email":    "not-an-email",
		"password": "123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg := decodeMsg(t, rec)
	assert.False(t, msg.Success)
	assert.Len(t, msg.Errors, 3)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	body := map[string]any{
		"username": "luka",
		"email":    "luka@example.com",
		"password": "secret123",
	}
	rec := srv.request(t, "POST", "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	body["username"] = "other"
	rec = srv.request(t, "POST", "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangePassword(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, "POST", "/api/auth/register", "", map[string]any{
		"username": "luka",
		"email":    "luka@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token := decodeMsg(t, rec).Data.(map[string]any)["token"].(string)

	rec = srv.request(t, "PUT", "/api/auth/change-password", token, map[string]any{
		"currentPassword": "wrong",
		"newPassword":     "next-secret",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.request(t, "PUT", "/api/auth/change-password", token, map[string]any{
		"currentPassword": "secret123",
		"newPassword":     "next-secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.request(t, "POST", "/api/auth/login", "", map[string]any{
		"email":    "luka@example.com",
		"password": "next-secret",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, "GET", "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
