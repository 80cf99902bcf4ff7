package services

import (
	"testing"
	"time"

	app_errors "chat-animation/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_IssueAndParse(t *testing.T) {
	auth := NewAuthService("s3cret")
	token, err := auth.IssueToken("designer", time.Minute)
	require.NoError(t, err)

	claims, err := auth.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "designer", claims.Editor)
}

func TestAuthService_Rejects(t *testing.T) {
	auth := NewAuthService("s3cret")

	expired, err := auth.IssueToken("designer", -time.Minute)
	require.NoError(t, err)
	_, err = auth.ParseAccessToken(expired)
	assert.ErrorIs(t, err, app_errors.ErrUnauthorized)

	foreign, err := NewAuthService("other").IssueToken("designer", time.Minute)
	require.NoError(t, err)
	_, err = auth.ParseAccessToken(foreign)
	assert.ErrorIs(t, err, app_errors.ErrUnauthorized)

	_, err = auth.ParseAccessToken("")
	assert.ErrorIs(t, err, app_errors.ErrUnauthorized)

	_, err = NewAuthService("").IssueToken("designer", time.Minute)
	assert.Error(t, err)
}
