// pkg/crypto/randsource.go

package crypto

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
)

// QuotaSource selects the randomness used when patching punctuation into a candidate.
type QuotaSource string

const (
	// QuotaSourceCrypto draws patch positions and symbols from crypto/rand.
	QuotaSourceCrypto QuotaSource = "crypto"
	// QuotaSourceMath uses the process-wide math/rand/v2 generator.
	QuotaSourceMath QuotaSource = "math"
)

// IntN is the subset of *rand.Rand the quota patcher needs.
type IntN interface {
	IntN(n int) int
}

// cryptoSource is a math/rand/v2 Source backed by crypto/rand.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	// crypto/rand.Read never returns an error as of Go 1.24.
	_, _ = cryptorand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

type globalMathRand struct{}

func (globalMathRand) IntN(n int) int {
	return mathrand.IntN(n)
}

func newQuotaRand(src QuotaSource) IntN {
	if src == QuotaSourceMath {
		return globalMathRand{}
	}
	return mathrand.New(cryptoSource{})
}

// ValidQuotaSource reports whether s names a known quota source.
func ValidQuotaSource(s string) bool {
	switch QuotaSource(s) {
	case QuotaSourceCrypto, QuotaSourceMath:
		return true
	}
	return false
}
