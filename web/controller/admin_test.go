package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminStatsOverview(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.adminToken(t)

	rec := srv.request(t, "POST", "/api/comments", "", map[string]any{
		"name": "Bob",
		"text": "hi",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.request(t, "GET", "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeMsg(t, rec).Data.(map[string]any)
	overview := stats["overview"].(map[string]any)
	assert.EqualValues(t, 1, overview["totalUsers"])
	assert.EqualValues(t, 1, overview["totalComments"])
	assert.EqualValues(t, 1, overview["pendingComments"])
}

func TestAdminStatusFilteredListings(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.adminToken(t)

	rec := srv.request(t, "POST", "/api/comments", "", map[string]any{
		"name": "Bob",
		"text": "first",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int(decodeMsg(t, rec).Data.(map[string]any)["id"].(float64))
	rec = srv.request(t, "POST", "/api/comments", "", map[string]any{
		"name": "Eve",
		"text": "second",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.request(t, "PUT", fmt.Sprintf("/api/admin/comments/%d/approve", id), admin, map[string]any{
		"isApproved": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.request(t, "GET", "/api/admin/comments?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decodeMsg(t, rec).Data.(map[string]any)
	assert.Len(t, listing["comments"], 1)

	rec = srv.request(t, "GET", "/api/admin/comments?status=approved", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing = decodeMsg(t, rec).Data.(map[string]any)
	assert.Len(t, listing["comments"], 1)

	rec = srv.request(t, "GET", "/api/admin/comments", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing = decodeMsg(t, rec).Data.(map[string]any)
	assert.Len(t, listing["comments"], 2)
}

func TestAdminUserManagement(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.adminToken(t)

	rec := srv.request(t, "POST", "/api/auth/register", "", map[string]any{
		"username": "plain",
		"email":    "plain@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeMsg(t, rec).Data.(map[string]any)
	userID := int(data["user"].(map[string]any)["id"].(float64))
	userToken := data["token"].(string)

	rec = srv.request(t, "PUT", fmt.Sprintf("/api/admin/users/%d/role", userID), admin, map[string]any{
		"role": "moderator",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"moderator"`)

	rec = srv.request(t, "PUT", fmt.Sprintf("/api/admin/users/%d/role", userID), admin, map[string]any{
		"role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.request(t, "PUT", fmt.Sprintf("/api/admin/users/%d/status", userID), admin, map[string]any{
		"isActive": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "user blocked")
	assert.Contains(t, rec.Body.String(), `"isActive":false`)

	rec = srv.request(t, "GET", "/api/admin/users?role=moderator", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decodeMsg(t, rec).Data.(map[string]any)
	assert.Len(t, listing["users"], 1)

	// Role changes do not grant admin powers to already-issued tokens here,
	// but a moderator token still cannot reach admin routes.
	rec = srv.request(t, "GET", "/api/admin/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, "GET", "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
