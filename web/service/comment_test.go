package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentStartsPending(t *testing.T) {
	setupDB(t)
	svc := CommentService{}

	comment, err := svc.CreateComment("Bob", "hi", "", "203.0.113.7", "curl/8.0")
	require.NoError(t, err)
	assert.False(t, comment.IsApproved)
	assert.Equal(t, "203.0.113.7", comment.IP)
	assert.Equal(t, "curl/8.0", comment.UserAgent)
}

func TestPublicListingExcludesPending(t *testing.T) {
	setupDB(t)
	svc := CommentService{}

	pending, err := svc.CreateComment("Bob", "hi", "", "", "")
	require.NoError(t, err)

	comments, total, err := svc.ListApproved(1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, comments)

	_, err = svc.SetApproval(pending.Id, true)
	require.NoError(t, err)

	comments, total, err = svc.ListApproved(1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, comments, 1)
	assert.Equal(t, pending.Id, comments[0].Id)
}

func TestCommentModerationTransitions(t *testing.T) {
	setupDB(t)
	svc := CommentService{}

	comment, err := svc.CreateComment("Bob", "hi", "", "", "")
	require.NoError(t, err)

	approved, err := svc.SetApproval(comment.Id, true)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	// approved -> pending is a valid transition.
	rejected, err := svc.SetApproval(comment.Id, false)
	require.NoError(t, err)
	assert.False(t, rejected.IsApproved)

	_, err = svc.SetApproval(999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentDelete(t *testing.T) {
	setupDB(t)
	svc := CommentService{}

	comment, err := svc.CreateComment("Bob", "hi", "", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(comment.Id))
	assert.ErrorIs(t, svc.DeleteComment(comment.Id), ErrNotFound)

	_, err = svc.GetComment(comment.Id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentStatusListing(t *testing.T) {
	setupDB(t)
	svc := CommentService{}

	first, err := svc.CreateComment("Bob", "first", "", "", "")
	require.NoError(t, err)
	_, err = svc.CreateComment("Eve", "second", "", "", "")
	require.NoError(t, err)
	_, err = svc.SetApproval(first.Id, true)
	require.NoError(t, err)

	pending, total, err := svc.ListByStatus(StatusPending, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, pending, 1)
	assert.Equal(t, "second", pending[0].Text)

	approved, total, err := svc.ListByStatus(StatusApproved, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "first", approved[0].Text)

	all, total, err := svc.ListByStatus("", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)
}

func TestCommentCounts(t *testing.T) {
	setupDB(t)
	svc := CommentService{}

	first, err := svc.CreateComment("Bob", "first", "", "", "")
	require.NoError(t, err)
	_, err = svc.CreateComment("Eve", "second", "", "", "")
	require.NoError(t, err)
	_, err = svc.SetApproval(first.Id, true)
	require.NoError(t, err)

	total, pending, recent, err := svc.CountComments(timeAgo(t, 30))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.EqualValues(t, 1, pending)
	assert.EqualValues(t, 2, recent)
}
