package classifier

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
	"github.com/intexura/approvalhub/pkg/domain/types"
)

// client classifies free-text replies with a structured-output LLM session
type client struct {
	llmClient gollem.LLMClient
}

// newClassifier wraps an LLM client as an IntentClassifier
func newClassifier(llmClient gollem.LLMClient) interfaces.IntentClassifier {
	return &client{llmClient: llmClient}
}

// llmResponse is the JSON structure returned by the LLM
type llmResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

const systemPrompt = `You classify a short human reply to a proposed action into exactly one intent.

## Instructions:

1. The reply answers the question "should I go ahead with this action?".
2. Classify it as one of:
   - approve: the user agrees (e.g. "yes", "ok", "go ahead", "sounds good")
   - reject: the user declines (e.g. "no", "don't", "cancel that")
   - unclear: the reply is ambiguous, off-topic, or asks a question
3. confidence is your certainty in [0, 1].
4. reasoning is one short sentence explaining the classification.
5. When in doubt, prefer unclear over guessing.`

// Classify resolves a free-text reply into approve, reject, or unclear
func (c *client) Classify(ctx context.Context, text string) (*interfaces.Classification, error) {
	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema()),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text("Reply: "+text))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("LLM returned empty response")
	}

	var llmResp llmResponse
	if err := json.Unmarshal([]byte(resp.Texts[0]), &llmResp); err != nil {
		return nil, goerr.Wrap(err, "failed to parse LLM response", goerr.V("response", resp.Texts[0]))
	}

	intent := types.Intent(strings.ToLower(strings.TrimSpace(llmResp.Intent)))
	if !intent.IsValid() {
		// An off-schema label from the model is ambiguity, not an error
		intent = types.IntentUnclear
	}

	return &interfaces.Classification{
		Intent:     intent,
		Confidence: llmResp.Confidence,
		Reasoning:  llmResp.Reasoning,
	}, nil
}

// buildResponseSchema creates the JSON schema for structured output
func buildResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "IntentClassificationResponse",
		Description: "Normalized intent extracted from a human reply",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"intent": {
				Type:        gollem.TypeString,
				Description: "One of: approve, reject, unclear",
				Enum:        []string{"approve", "reject", "unclear"},
				Required:    true,
			},
			"confidence": {
				Type:        gollem.TypeNumber,
				Description: "Certainty of the classification in [0, 1]",
				Required:    true,
			},
			"reasoning": {
				Type:        gollem.TypeString,
				Description: "One short sentence explaining the classification",
				Required:    true,
			},
		},
	}
}
