package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// AlphanumericAlphabet is the default alphabet for random strings: A-Z, a-z, 0-9.
const AlphanumericAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomString generates a cryptographically secure random string of the
// given length drawn from the given alphabet. Panics on an empty alphabet
// or if the system source of randomness fails; both are programmer or
// platform errors, not runtime conditions.
func RandomString(length int, alphabet string) string {
	if alphabet == "" {
		panic("crypto: empty alphabet")
	}

	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}

// OtpCodeLength is the number of digits in a one-time password-reset code.
const OtpCodeLength = 6

// OtpCode generates a 6-digit numeric one-time code. The first digit is
// never zero, so the code survives clients that strip leading zeros.
func OtpCode() string {
	// 100000..999999
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
