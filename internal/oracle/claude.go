package oracle

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/config"
	"github.com/DhaatuTheGamer/dealdigger-ai/pkg/anthropic"
)

// structuredHint is appended to the system prompt for structured requests.
const structuredHint = "Respond with valid JSON only. No surrounding prose, no code fences."

// claudeOracle adapts the Anthropic messages API to the Client interface.
// It has no web-search capability: grounded requests run as plain
// generations and never return grounding metadata.
type claudeOracle struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewClaude builds a Claude-backed oracle from config.
func NewClaude(cfg config.AnthropicConfig) Client {
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &claudeOracle{
		client:    anthropic.NewClient(cfg.Key),
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
}

func (o *claudeOracle) Generate(ctx context.Context, req Request) (*Response, error) {
	system := req.System
	if req.Mode == ModeStructured {
		if system != "" {
			system += "\n\n"
		}
		system += structuredHint
	}

	resp, err := o.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     o.model,
		MaxTokens: o.maxTokens,
		System:    system,
		Messages:  []anthropic.Message{{Role: "user", Content: req.Prompt}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "oracle: claude generate")
	}

	return &Response{Text: resp.Text()}, nil
}
