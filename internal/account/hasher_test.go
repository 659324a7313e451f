// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

package account_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillboard/quillboard/internal/account"
	"github.com/quillboard/quillboard/pkg/errutil"
)

func TestArgon2idHasher_Hash(t *testing.T) {
	hasher := account.NewArgon2idHasher()

	t.Run("produces a PHC-format digest", func(t *testing.T) {
		digest, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$m=65536,t=1,p=4$"))
		assert.Len(t, strings.Split(digest, "$"), 6)
	})

	t.Run("salts each digest", func(t *testing.T) {
		first, err := hasher.Hash("same password")
		require.NoError(t, err)
		second, err := hasher.Hash("same password")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		require.ErrorIs(t, err, account.ErrEmptyPassword)
	})
}

func TestArgon2idHasher_Verify(t *testing.T) {
	hasher := account.NewArgon2idHasher()

	digest, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)

	t.Run("matches the original password", func(t *testing.T) {
		ok, err := hasher.Verify("correct horse battery staple", digest)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects a different password", func(t *testing.T) {
		ok, err := hasher.Verify("incorrect horse battery staple", digest)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid digests return an error", func(t *testing.T) {
		tests := []struct {
			name   string
			digest string
		}{
			{"empty", ""},
			{"wrong part count", "$argon2id$v=19$m=65536,t=1,p=4$salt"},
			{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
			{"bad version", "$argon2id$vX$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
			{"bad params", "$argon2id$v=19$nope$c2FsdA$aGFzaA"},
			{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
			{"bad hash encoding", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$!!!"},
			{"threads overflow", "$argon2id$v=19$m=65536,t=1,p=300$c2FsdA$aGFzaA"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				ok, err := hasher.Verify("whatever", tt.digest)
				require.Error(t, err)
				assert.False(t, ok)
				errutil.AssertErrorCode(t, err, "AUTH_INVALID_DIGEST")
			})
		}
	})
}
