package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	require.NoError(t, err)
	b, err := GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	raw, err := base64.URLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("hr@example.com"))
	assert.False(t, IsValidEmail("hr.example.com"))
	assert.False(t, IsValidEmail("hr@example"))
}

func TestIsComplexPassword(t *testing.T) {
	assert.True(t, IsComplexPassword("S3cure!pass"))
	assert.False(t, IsComplexPassword("S3c!p"))
	assert.False(t, IsComplexPassword("s3cure!pass"))
	assert.False(t, IsComplexPassword("Secure!pass"))
	assert.False(t, IsComplexPassword("S3curepass"))
}
