// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureToken(t *testing.T) {
	first, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, first, 32) // hex doubles the byte length

	second, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCodeHashRoundTrip(t *testing.T) {
	code, err := GenerateSecureToken(16)
	require.NoError(t, err)

	hash, err := HashCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.True(t, CheckCodeHash(code, hash))
	assert.False(t, CheckCodeHash("wrong-code", hash))
	assert.False(t, CheckCodeHash(code, "not-a-hash"))
}
