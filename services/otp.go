package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOTP returns a 6-digit one-time code for password resets.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// ResetPasswordEmail renders the body of the reset mail. The 15-minute
// validity is stated to the user only; verification does not check issuance
// time.
func ResetPasswordEmail(otp string) string {
	return fmt.Sprintf(`<h1>Reset Password</h1>
<p>Use the OTP below to reset your password:</p>
<h2>%s</h2>
<p>This OTP is valid for 15 minutes.</p>`, otp)
}
