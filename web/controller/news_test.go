package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsLifecycleFlow(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.adminToken(t)

	rec := srv.request(t, "POST", "/api/news", admin, map[string]any{
		"title":   "Launch",
		"content": "We are live.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeMsg(t, rec).Data.(map[string]any)
	id := int(created["id"].(float64))
	assert.Equal(t, false, created["isPublished"])
	assert.Nil(t, created["publishedAt"])

	// Drafts stay out of the public feed.
	rec = srv.request(t, "GET", "/api/news", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decodeMsg(t, rec).Data.(map[string]any)
	assert.Empty(t, feed["news"])

	rec = srv.request(t, "PUT", fmt.Sprintf("/api/news/%d/publish", id), admin, map[string]any{
		"isPublished": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	published := decodeMsg(t, rec).Data.(map[string]any)
	assert.Equal(t, true, published["isPublished"])
	assert.NotNil(t, published["publishedAt"])

	rec = srv.request(t, "GET", "/api/news", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed = decodeMsg(t, rec).Data.(map[string]any)
	assert.Len(t, feed["news"], 1)

	// Reading an article bumps its view counter.
	rec = srv.request(t, "GET", fmt.Sprintf("/api/news/%d", id), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	item := decodeMsg(t, rec).Data.(map[string]any)
	assert.EqualValues(t, 1, item["views"])

	rec = srv.request(t, "POST", fmt.Sprintf("/api/news/%d/like", id), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	likes := decodeMsg(t, rec).Data.(map[string]any)
	assert.EqualValues(t, 1, likes["likes"])

	rec = srv.request(t, "DELETE", fmt.Sprintf("/api/news/%d", id), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.request(t, "GET", fmt.Sprintf("/api/news/%d", id), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewsManagementRequiresAdmin(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.request(t, "POST", "/api/news", "", map[string]any{
		"title":   "t",
		"content": "c",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNewsPublishRequiresExplicitFlag(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.adminToken(t)

	rec := srv.request(t, "POST", "/api/news", admin, map[string]any{
		"title":   "t",
		"content": "c",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int(decodeMsg(t, rec).Data.(map[string]any)["id"].(float64))

	rec = srv.request(t, "PUT", fmt.Sprintf("/api/news/%d/publish", id), admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
