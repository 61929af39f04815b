package deals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/oracle"
)

func sampleDeal() model.Deal {
	return model.Deal{
		ID:              "deal-1",
		Title:           "Wireless Headphones",
		Description:     "Over-ear, 30-hour battery.",
		OriginalPrice:   "$199.99",
		DiscountedPrice: "$129.99",
		Merchant:        "TechBazaar",
		Category:        "Electronics",
	}
}

func TestVerifyDeal(t *testing.T) {
	tests := []struct {
		name        string
		respText    string
		wantScore   int
		wantSummary string
	}{
		{
			name:        "clean object",
			respText:    `{"summary":"Plausible discount from a known merchant.","score":4}`,
			wantScore:   4,
			wantSummary: "Plausible discount from a known merchant.",
		},
		{
			name:        "fenced object",
			respText:    "```json\n{\"summary\":\"Looks fine.\",\"score\":5}\n```",
			wantScore:   5,
			wantSummary: "Looks fine.",
		},
		{
			name:        "object buried in prose",
			respText:    `Sure! Here is my assessment: {"summary":"Too good to be true.","score":1} Hope that helps.`,
			wantScore:   1,
			wantSummary: "Too good to be true.",
		},
		{
			name:        "out-of-range score passes through",
			respText:    `{"summary":"Suspiciously generous.","score":7}`,
			wantScore:   7,
			wantSummary: "Suspiciously generous.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeOracle{resp: &oracle.Response{Text: tt.respText}}
			svc := NewService(&fakeSource{client: client}, testDealsConfig())

			v := svc.VerifyDeal(context.Background(), sampleDeal())
			assert.Equal(t, tt.wantScore, v.Score)
			assert.Equal(t, tt.wantSummary, v.Summary)
			assert.Equal(t, oracle.ModeStructured, client.lastReq.Mode)
		})
	}
}

func TestVerifyDealPromptCarriesDealFields(t *testing.T) {
	client := &fakeOracle{resp: &oracle.Response{Text: `{"summary":"ok","score":3}`}}
	svc := NewService(&fakeSource{client: client}, testDealsConfig())

	svc.VerifyDeal(context.Background(), sampleDeal())
	for _, want := range []string{"Wireless Headphones", "$199.99", "$129.99", "TechBazaar", "Electronics"} {
		assert.Contains(t, client.lastReq.Prompt, want)
	}
}

func TestVerifyDealDegradedPaths(t *testing.T) {
	tests := []struct {
		name        string
		source      ClientSource
		wantSummary string
	}{
		{
			name:        "credentials missing",
			source:      &fakeSource{err: oracle.ErrCredentialsMissing},
			wantSummary: verifyUnavailableNotice,
		},
		{
			name:        "gate construction error",
			source:      &fakeSource{err: errors.New("unknown provider")},
			wantSummary: verifyUnavailableNotice,
		},
		{
			name:        "oracle call fails",
			source:      &fakeSource{client: &fakeOracle{err: errors.New("timeout")}},
			wantSummary: verifyConnectionNotice,
		},
		{
			name:        "response is prose",
			source:      &fakeSource{client: &fakeOracle{resp: &oracle.Response{Text: "I cannot rate this."}}},
			wantSummary: verifyFormatNotice,
		},
		{
			name:        "response is an array not an object",
			source:      &fakeSource{client: &fakeOracle{resp: &oracle.Response{Text: `[{"score":4}]`}}},
			wantSummary: verifyFormatNotice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.source, testDealsConfig())
			v := svc.VerifyDeal(context.Background(), sampleDeal())
			require.Equal(t, 0, v.Score, "every degraded path must score zero")
			assert.Equal(t, tt.wantSummary, v.Summary)
		})
	}
}
