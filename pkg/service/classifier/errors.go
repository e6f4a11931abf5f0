package classifier

import "errors"

// Construction error codes. The reply engine maps these to user-facing
// degradation copy instead of failing the reply.
var (
	ErrNoAPIKey     = errors.New("LLM API key is not configured")
	ErrInvalidModel = errors.New("invalid LLM model")
)
