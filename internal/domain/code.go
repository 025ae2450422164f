package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	CodeLength = 5

	codeChars = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var codeCharsLen = big.NewInt(int64(len(codeChars)))

// CodeGenerator produces candidate room codes. Uniqueness against live rooms
// is checked by the registry.
type CodeGenerator func() (string, error)

func GenerateCode() (string, error) {
	var sb strings.Builder
	sb.Grow(CodeLength)

	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, codeCharsLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeChars[n.Int64()])
	}

	return sb.String(), nil
}

func IsValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(codeChars, code[i]) < 0 {
			return false
		}
	}
	return true
}
