package deals

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/decode"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/oracle"
)

// Degraded-verification notices. Score 0 marks every one of these paths;
// genuine assessments use 1-5.
const (
	verifyUnavailableNotice = "Verification is unavailable because the AI service is not configured."
	verifyConnectionNotice  = "Could not verify this deal: the AI service could not be reached."
	verifyFormatNotice      = "Could not verify this deal: the AI response could not be interpreted."
)

// VerifyDeal asks the oracle to assess one deal's trustworthiness. It is a
// total function: every failure path resolves to a valid, score-0
// verification so the caller never has to handle an error state.
func (s *Service) VerifyDeal(ctx context.Context, deal model.Deal) model.DealVerification {
	client, err := s.gate.Client()
	if err != nil {
		if !errors.Is(err, oracle.ErrCredentialsMissing) {
			zap.L().Warn("deals: verify gate error", zap.Error(err))
		}
		return model.DealVerification{Summary: verifyUnavailableNotice, Score: 0}
	}

	resp, err := client.Generate(ctx, oracle.Request{
		Prompt: buildVerifyPrompt(deal),
		Mode:   oracle.ModeStructured,
	})
	if err != nil {
		zap.L().Warn("deals: verify call failed",
			zap.String("deal_id", deal.ID),
			zap.Error(err),
		)
		return model.DealVerification{Summary: verifyConnectionNotice, Score: 0}
	}

	v, derr := decode.Decode(resp.Text, false)
	obj, ok := v.(map[string]any)
	if derr != nil || !ok {
		zap.L().Warn("deals: verify response did not decode",
			zap.String("deal_id", deal.ID),
			zap.String("snippet", snippet(resp.Text)),
		)
		return model.DealVerification{Summary: verifyFormatNotice, Score: 0}
	}

	// The score is trusted as given; only the failure paths above pin it
	// to the 0 sentinel.
	return model.DealVerification{
		Summary: stringField(obj, "summary"),
		Score:   intField(obj, "score"),
	}
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
