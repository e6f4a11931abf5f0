package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/types"
)

// buttonDelimiter separates the segments of a button identifier
const buttonDelimiter = ":"

// ButtonID is the decoded form of an interactive button identifier:
// {kind}:{actionID} or {kind}:{actionID}:{nonce}.
type ButtonID struct {
	Kind     types.ButtonKind
	ActionID ActionID
	Nonce    string
	HasNonce bool
}

// ParseButtonID decodes a raw button identifier. A wrong number of segments
// is a format error; the kind is not validated here so that unrecognized
// kinds surface as "Unknown button intent" at the resolver, not as a format
// problem.
func ParseButtonID(raw string) (*ButtonID, error) {
	parts := strings.Split(raw, buttonDelimiter)
	if len(parts) < 2 || len(parts) > 3 {
		return nil, goerr.Wrap(ErrInvalidButtonID, "Invalid button ID format", goerr.V("button_id", raw))
	}

	if parts[0] == "" || parts[1] == "" {
		return nil, goerr.Wrap(ErrInvalidButtonID, "Invalid button ID format", goerr.V("button_id", raw))
	}

	id := &ButtonID{
		Kind:     types.ButtonKind(parts[0]),
		ActionID: ActionID(parts[1]),
	}
	if len(parts) == 3 {
		id.Nonce = parts[2]
		id.HasNonce = true
	}

	return id, nil
}

// FormatButtonID encodes a button identifier for outbound messages
func FormatButtonID(kind types.ButtonKind, actionID ActionID, nonce string) string {
	if nonce == "" {
		return strings.Join([]string{kind.String(), actionID.String()}, buttonDelimiter)
	}
	return strings.Join([]string{kind.String(), actionID.String(), nonce}, buttonDelimiter)
}
