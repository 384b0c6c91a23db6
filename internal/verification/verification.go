// Package verification issues and checks the one-time email codes used to
// confirm account ownership.
package verification

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const (
	codeMin  = 100000
	codeSpan = 900000

	// Validity is how long an issued code stays usable.
	Validity = time.Hour
)

// Result of checking a supplied code against stored state.
type Result int

const (
	Verified Result = iota
	Invalid
	Expired
)

func (r Result) String() string {
	switch r {
	case Verified:
		return "verified"
	case Invalid:
		return "invalid"
	case Expired:
		return "expired"
	}
	return "unknown"
}

// Issuer generates codes. The randomness source is injectable so tests can
// supply deterministic sequences.
type Issuer struct {
	intn func(n int) int
}

func NewIssuer() *Issuer {
	return &Issuer{intn: cryptoIntn}
}

func NewIssuerWithRand(intn func(n int) int) *Issuer {
	return &Issuer{intn: intn}
}

// Issue returns a 6-digit code drawn uniformly from 100000-999999 and its
// expiry, exactly one hour after now. Values below 100000 are impossible by
// construction, so no leading-zero handling is needed.
func (i *Issuer) Issue(now time.Time) (string, time.Time) {
	code := codeMin + i.intn(codeSpan)
	return strconv.Itoa(code), now.Add(Validity)
}

// Check validates a supplied code against the stored code and expiry.
// Expiry is checked first: an expired code reports Expired even when the
// digits also mismatch. The boundary is inclusive, a code checked at the
// exact expiry instant is still Verified.
func Check(storedCode string, storedExpiry time.Time, supplied string, now time.Time) Result {
	if now.After(storedExpiry) {
		return Expired
	}
	if storedCode != supplied {
		return Invalid
	}
	return Verified
}

func cryptoIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}
