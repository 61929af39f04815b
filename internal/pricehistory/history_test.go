package pricehistory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
)

func historyDeal() model.Deal {
	return model.Deal{
		ID:              "deal-123",
		Title:           "Espresso Machine",
		Merchant:        "RoastHouse",
		OriginalPrice:   "$599.00",
		DiscountedPrice: "$429.00",
	}
}

func TestForIsDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	a := For(historyDeal(), now)
	b := For(historyDeal(), now)
	assert.Equal(t, a, b)
}

func TestForShape(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	h := For(historyDeal(), now)

	assert.Equal(t, "deal-123", h.DealID)
	require.Len(t, h.Points, 30)

	assert.Equal(t, "2026-08-29", h.Points[29].Date)
	assert.Equal(t, "2026-07-31", h.Points[0].Date)
	assert.InDelta(t, 429.00, h.Points[29].Price, 0.001, "series must end on the current price")

	for _, p := range h.Points {
		assert.Greater(t, p.Price, 0.0)
		assert.LessOrEqual(t, p.Price, 599.00*1.1+0.01)
		assert.GreaterOrEqual(t, p.Price, 429.00*0.5-0.01)
	}

	assert.Contains(t, []string{trendFalling, trendRising, trendStable}, h.Prediction.Trend)
	assert.Regexp(t, `^\$\d{1,3}(,\d{3})*\.\d{2}$`, h.Prediction.PredictedPrice)
	assert.GreaterOrEqual(t, h.Prediction.Confidence, 60)
	assert.LessOrEqual(t, h.Prediction.Confidence, 90)
}

func TestForUnparseablePrices(t *testing.T) {
	d := model.Deal{ID: "deal-x", Title: "Mystery Box", OriginalPrice: "call us", DiscountedPrice: "cheap!"}
	h := For(d, time.Now())
	require.Len(t, h.Points, 30)
	for _, p := range h.Points {
		assert.Greater(t, p.Price, 0.0, "fallback anchor keeps prices positive")
	}
}

func TestSeedPrefersTitle(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	a := historyDeal()
	b := historyDeal()
	b.ID = "deal-999" // regenerated batches assign new IDs to the same product
	assert.Equal(t, For(a, now).Points, For(b, now).Points)
}
