// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillboard/quillboard/internal/account"
)

func TestNewSession(t *testing.T) {
	sess, err := account.NewSession()
	require.NoError(t, err)
	assert.Len(t, sess.Token, account.SessionTokenBytes*2) // hex-encoded
	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.AccountID)
}

func TestSession_BindClear(t *testing.T) {
	sess, err := account.NewSession()
	require.NoError(t, err)

	sess.Bind(42)
	assert.True(t, sess.Authenticated())
	require.NotNil(t, sess.AccountID)
	assert.Equal(t, int64(42), *sess.AccountID)

	sess.Clear()
	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.AccountID)
}

func TestGenerateSessionToken_Unique(t *testing.T) {
	first, err := account.GenerateSessionToken()
	require.NoError(t, err)
	second, err := account.GenerateSessionToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestHashSessionToken(t *testing.T) {
	hash := account.HashSessionToken("token")
	assert.Len(t, hash, 64) // hex-encoded SHA256
	assert.NotEqual(t, "token", hash)

	// Deterministic, so stores can key lookups by it.
	assert.Equal(t, hash, account.HashSessionToken("token"))
	assert.NotEqual(t, hash, account.HashSessionToken("other"))
}
