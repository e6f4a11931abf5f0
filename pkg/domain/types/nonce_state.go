package types

// NonceState is the result of checking a candidate approval code against an
// action's stored nonce. Missing is distinct from mismatch: it means the
// action was never nonce-protected or the nonce was already cleared, and
// callers fall back to the natural-language path.
type NonceState string

const (
	NonceStateMatched    NonceState = "matched"
	NonceStateMismatched NonceState = "mismatched"
	NonceStateExpired    NonceState = "expired"
	NonceStateMissing    NonceState = "missing"
)

// String returns the string representation of the nonce state
func (s NonceState) String() string {
	return string(s)
}
