package model

import "errors"

// ErrInvalidButtonID indicates a button identifier that does not decode into
// the expected {kind}:{actionID}[:{nonce}] shape. This is a client/protocol
// bug, not ambiguous human input.
var ErrInvalidButtonID = errors.New("Invalid button ID format")
