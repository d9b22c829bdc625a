package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDenylist(t *testing.T) {
	d := NewDenylist()

	assert.False(t, d.Revoked("tok-1"))

	d.Revoke("tok-1", time.Now().Add(time.Hour))
	assert.True(t, d.Revoked("tok-1"))
	assert.False(t, d.Revoked("tok-2"))
}

func TestDenylistIgnoresAlreadyExpired(t *testing.T) {
	d := NewDenylist()

	// a token past its expiry fails verification anyway; no entry is kept
	d.Revoke("tok-1", time.Now().Add(-time.Second))
	assert.False(t, d.Revoked("tok-1"))
}

func TestDenylistEntryLapses(t *testing.T) {
	d := NewDenylist()

	d.Revoke("tok-1", time.Now().Add(20*time.Millisecond))
	assert.True(t, d.Revoked("tok-1"))

	time.Sleep(30 * time.Millisecond)
	assert.False(t, d.Revoked("tok-1"))
}
