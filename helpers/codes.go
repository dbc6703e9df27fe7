package helpers

import (
	"math/rand"
	"time"
)

const (
	digitBytes = "0123456789"
	alnumBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func randomFrom(charset string, n int) string {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[src.Intn(len(charset))]
	}
	return string(b)
}

func RandomDigits(n int) string {
	return randomFrom(digitBytes, n)
}

// GenerateGroupCode returns a 6-digit group code. Callers must
// collision-check against existing groups and retry.
func GenerateGroupCode() string {
	return RandomDigits(6)
}

func GeneratePlayerSecret() string {
	return RandomDigits(6)
}

func GenerateAdminSecret() string {
	return randomFrom(alnumBytes, 8)
}

func GeneratePlayerCode() string {
	return RandomDigits(6)
}

// Entry and history codes are display labels sub-scoped under a group, not
// primary keys, so no collision retry here.
func GenerateBalanceCode() string {
	return RandomDigits(9)
}

func GenerateHistoryCode() string {
	return RandomDigits(9)
}
