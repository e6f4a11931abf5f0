package types

// Intent is the normalized decision extracted from a human reply
type Intent string

const (
	IntentApprove Intent = "approve"
	IntentReject  Intent = "reject"
	IntentUnclear Intent = "unclear"
)

// IsValid checks if the intent is valid
func (i Intent) IsValid() bool {
	switch i {
	case IntentApprove, IntentReject, IntentUnclear:
		return true
	default:
		return false
	}
}

// String returns the string representation of the intent
func (i Intent) String() string {
	return string(i)
}

// IntentSource identifies which resolution path produced an intent
type IntentSource string

const (
	IntentSourceButton    IntentSource = "button"
	IntentSourceTextNonce IntentSource = "text-nonce"
	IntentSourceNLP       IntentSource = "nlp"
)

// String returns the string representation of the intent source
func (s IntentSource) String() string {
	return string(s)
}

// ReplyOutcome is the final result of a resolved reply, reported to the caller
// and used to pick notification copy.
type ReplyOutcome string

const (
	OutcomeApproved             ReplyOutcome = "approved"
	OutcomeRejected             ReplyOutcome = "rejected"
	OutcomeUnclearClarification ReplyOutcome = "unclear_requested_clarification"
)

// String returns the string representation of the reply outcome
func (o ReplyOutcome) String() string {
	return string(o)
}
