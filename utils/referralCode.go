package utils

import (
	"crypto/rand"
	"math/big"
)

// codeAlphabet skips 0/O and 1/I/L so codes survive being read aloud
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const codeLength = 8

// GenerateReferralCode returns a random 8-character referral code. Uniqueness
// is not guaranteed here; the caller relies on the unique index on
// referral_codes.code and retries on collision.
func GenerateReferralCode() (string, error) {
	code := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
