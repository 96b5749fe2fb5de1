package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestSession_Expired pins the boundary: the deadline instant itself already
// counts as expired.
func TestSession_Expired(t *testing.T) {
	deadline := time.Date(2026, 8, 8, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: deadline}

	assert.False(t, s.Expired(deadline.Add(-time.Second)))
	assert.True(t, s.Expired(deadline))
	assert.True(t, s.Expired(deadline.Add(time.Second)))
}
