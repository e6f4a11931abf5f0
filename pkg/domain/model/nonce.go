package model

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/intexura/approvalhub/pkg/domain/types"
)

// DefaultNonceTTL is how long an approval nonce stays valid after the
// proposal message goes out.
const DefaultNonceTTL = 10 * time.Minute

// nonceAlphabet avoids ambiguous characters so codes survive being typed back
const nonceAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

const nonceLength = 8

// NewNonce generates a short single-use approval code
func NewNonce() string {
	buf := make([]byte, nonceLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}

	var sb strings.Builder
	for _, b := range buf {
		sb.WriteByte(nonceAlphabet[int(b)%len(nonceAlphabet)])
	}
	return sb.String()
}

// CheckNonce compares a candidate code against the action's stored nonce.
// Matching is case-insensitive. A missing stored nonce is reported as
// NonceStateMissing so callers can fall back to the natural-language path
// instead of treating it as a mismatch. Expiry wins over a textual match.
func CheckNonce(action *Action, code string, now time.Time) types.NonceState {
	if action.Nonce == "" {
		return types.NonceStateMissing
	}

	if action.NonceExpiresAt != nil && !now.Before(*action.NonceExpiresAt) {
		return types.NonceStateExpired
	}

	if strings.EqualFold(action.Nonce, code) {
		return types.NonceStateMatched
	}

	return types.NonceStateMismatched
}
