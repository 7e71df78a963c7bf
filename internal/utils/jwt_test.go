package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	ConfigureJWT("test-secret")

	token, err := GenerateJWT("user-1", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestValidateJWTRejectsTampering(t *testing.T) {
	ConfigureJWT("test-secret")

	token, err := GenerateJWT("user-1", "user")
	require.NoError(t, err)

	// Flip the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA"

	_, err = ValidateJWT(tampered)
	assert.Error(t, err)

	_, err = ValidateJWT("garbage")
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	ConfigureJWT("first-secret")
	token, err := GenerateJWT("user-1", "user")
	require.NoError(t, err)

	ConfigureJWT("second-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTRequiresConfiguredSecret(t *testing.T) {
	ConfigureJWT("")

	_, err := GenerateJWT("user-1", "user")
	assert.Error(t, err)

	_, err = ValidateJWT("anything")
	assert.Error(t, err)
}
