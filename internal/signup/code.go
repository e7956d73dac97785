package signup

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// generateCode draws a uniformly random 6-digit code in [100000, 999999].
// The range floor keeps the string form at exactly six digits with no
// leading zeros to collapse.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}
