// Package deals holds the two oracle-backed orchestrators: deal
// generation from user preferences and per-deal trustworthiness
// verification, plus the deterministic placeholder fallback used when no
// credential is configured.
package deals

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/config"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/decode"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/oracle"
)

// defaultInitialCount is used when the configured count is absent.
const defaultInitialCount = 10

// snippetLen bounds response excerpts in warning logs.
const snippetLen = 200

// ClientSource yields the shared oracle client, or reports why one cannot
// be built. *oracle.Gate is the production implementation.
type ClientSource interface {
	Client() (oracle.Client, error)
}

// Service orchestrates oracle calls for deal generation and verification.
type Service struct {
	gate ClientSource
	cfg  config.DealsConfig
}

// NewService creates a Service over the given gate and deal settings.
func NewService(gate ClientSource, cfg config.DealsConfig) *Service {
	if cfg.InitialCount <= 0 {
		cfg.InitialCount = defaultInitialCount
	}
	return &Service{gate: gate, cfg: cfg}
}

// GenerationResult is a freshly generated batch of deals. Each batch fully
// replaces any previous one; there are no merge semantics.
type GenerationResult struct {
	Deals     []model.Deal             `json:"deals"`
	Grounding *model.GroundingMetadata `json:"groundingMetadata,omitempty"`
}

// GenerateDeals builds a generation prompt from the preferences, invokes
// the oracle, and decodes the response into Deal records.
//
// Failure contract: oracle.ErrCredentialsMissing is returned untouched
// when no credential is configured (callers substitute placeholders); any
// other error is an oracle/transport failure the caller should surface. A
// response that cannot be decoded is not an error — it yields zero deals,
// with a diagnostic warning, because "nothing found" is a legitimate
// answer the user already knows how to read.
func (s *Service) GenerateDeals(ctx context.Context, prefs model.UserPreferences, useGrounding bool) (*GenerationResult, error) {
	client, err := s.gate.Client()
	if err != nil {
		return nil, err
	}

	var req oracle.Request
	if useGrounding {
		req = oracle.Request{
			Prompt: buildGroundedPrompt(s.cfg.InitialCount, prefs),
			Mode:   oracle.ModeGrounded,
		}
	} else {
		req = oracle.Request{
			System: searchSystemText,
			Prompt: buildSearchPrompt(s.cfg.InitialCount, prefs),
			Mode:   oracle.ModeStructured,
		}
	}

	resp, err := client.Generate(ctx, req)
	if err != nil {
		return nil, eris.Wrap(err, "deals: generate")
	}

	result := &GenerationResult{Deals: []model.Deal{}, Grounding: resp.Grounding}

	v, derr := decode.Decode(resp.Text, true)
	if derr != nil {
		zap.L().Warn("deals: response did not decode, returning zero deals",
			zap.Bool("grounded", useGrounding),
			zap.String("snippet", snippet(resp.Text)),
		)
		return result, nil
	}

	items, ok := v.([]any)
	if !ok {
		zap.L().Warn("deals: response decoded to a non-array shape, returning zero deals",
			zap.Bool("grounded", useGrounding),
			zap.String("snippet", snippet(resp.Text)),
		)
		return result, nil
	}

	result.Deals = projectDeals(items, s.cfg.ImageBaseURL)
	zap.L().Info("deals: generated",
		zap.Int("count", len(result.Deals)),
		zap.Bool("grounded", useGrounding),
	)
	return result, nil
}

func snippet(s string) string {
	if len(s) <= snippetLen {
		return s
	}
	return s[:snippetLen]
}
