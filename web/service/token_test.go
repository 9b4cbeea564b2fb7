package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssueVerify(t *testing.T) {
	tokens := NewTokenService("super-secret", time.Hour)

	tok, err := tokens.Issue(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenVerifyExpired(t *testing.T) {
	tokens := NewTokenService("super-secret", -time.Second)

	tok, err := tokens.Issue(1, "user")
	require.NoError(t, err)

	_, err = tokens.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenVerifyWrongKey(t *testing.T) {
	issuer := NewTokenService("right-secret", time.Hour)
	verifier := NewTokenService("wrong-secret", time.Hour)

	tok, err := issuer.Issue(1, "user")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenSignatureInvalid)
}

func TestTokenVerifyMalformed(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)

	_, err := tokens.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenRoleSnapshot(t *testing.T) {
	// The embedded role is frozen at issuance; a later role change must not
	// alter what an existing token verifies to.
	tokens := NewTokenService("secret", time.Hour)

	tok, err := tokens.Issue(7, "user")
	require.NoError(t, err)

	claims, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)
}
