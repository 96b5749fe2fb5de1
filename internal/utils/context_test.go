package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSessionTokenFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), SessionTokenCtxKey, "tok-1")

	token, ok := GetSessionTokenFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
}

func TestGetSessionTokenFromContext_Absent(t *testing.T) {
	_, ok := GetSessionTokenFromContext(context.Background())
	assert.False(t, ok)
}

// Plain string keys must not collide with the typed context key.
func TestGetSessionTokenFromContext_TypedKeyOnly(t *testing.T) {
	ctx := context.WithValue(context.Background(), "session_token", "tok-1") //nolint:staticcheck

	_, ok := GetSessionTokenFromContext(ctx)
	assert.False(t, ok)
}
