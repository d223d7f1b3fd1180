// AngelaMos | 2026
// totp.go

package auth

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "Ziver"

type TOTPSecret struct {
	Secret     string
	OtpauthURL string
}

func GenerateTOTPSecret(accountName string) (*TOTPSecret, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: accountName,
	})
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}

	return &TOTPSecret{
		Secret:     key.Secret(),
		OtpauthURL: key.URL(),
	}, nil
}

// VerifyTOTPCode accepts codes one 30s period either side of now to
// absorb client clock drift.
func VerifyTOTPCode(code, secret string) bool {
	valid, err := totp.ValidateCustom(
		code,
		secret,
		time.Now().UTC(),
		totp.ValidateOpts{
			Period:    30,
			Skew:      1,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		},
	)
	return err == nil && valid
}
