// AngelaMos | 2026
// totp_test.go

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTOTPSecret(t *testing.T) {
	secret, err := GenerateTOTPSecret("user@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, secret.Secret)
	assert.True(t, strings.HasPrefix(secret.OtpauthURL, "otpauth://totp/"))
	assert.Contains(t, secret.OtpauthURL, "Ziver")
}

func TestVerifyTOTPCode_ValidCode(t *testing.T) {
	secret, err := GenerateTOTPSecret("user@example.com")
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret.Secret, time.Now().UTC())
	require.NoError(t, err)

	assert.True(t, VerifyTOTPCode(code, secret.Secret))
}

func TestVerifyTOTPCode_WrongCode(t *testing.T) {
	secret, err := GenerateTOTPSecret("user@example.com")
	require.NoError(t, err)

	assert.False(t, VerifyTOTPCode("000000", secret.Secret))
	assert.False(t, VerifyTOTPCode("", secret.Secret))
	assert.False(t, VerifyTOTPCode("not-a-code", secret.Secret))
}

func TestVerifyTOTPCode_DifferentSecret(t *testing.T) {
	first, err := GenerateTOTPSecret("user@example.com")
	require.NoError(t, err)
	second, err := GenerateTOTPSecret("other@example.com")
	require.NoError(t, err)

	code, err := totp.GenerateCode(first.Secret, time.Now().UTC())
	require.NoError(t, err)

	assert.False(t, VerifyTOTPCode(code, second.Secret))
}
