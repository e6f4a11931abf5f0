package interfaces

import (
	"context"

	"github.com/intexura/approvalhub/pkg/domain/types"
)

// Classification is the structured result of natural-language intent
// classification
type Classification struct {
	Intent     types.Intent
	Confidence float64
	Reasoning  string
}

// IntentClassifier classifies free-text replies into approve/reject/unclear
type IntentClassifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}

// ClassifierFactory builds a classifier bound to a user's LLM configuration.
// Construction failures (missing API key, invalid model) are expected runtime
// conditions, not bugs: the engine maps them to an unclear intent with
// explanatory copy rather than failing the reply.
type ClassifierFactory interface {
	CreateForUser(ctx context.Context, userID string) (IntentClassifier, error)
}
