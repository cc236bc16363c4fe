package services

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPIsSixDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)

		n, err := strconv.Atoi(otp)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestResetPasswordEmailContainsOTP(t *testing.T) {
	body := ResetPasswordEmail("123456")
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "15 minutes")
}
