// Package pricehistory synthesizes deterministic price timelines and
// trend predictions for deals. The web client renders these as
// sparklines; the same deal always yields the same series so charts stay
// stable across reloads.
package pricehistory

import (
	"hash/fnv"
	"math/rand"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
)

const (
	historyDays = 30

	// Daily drift bounds, as a fraction of the anchor price.
	maxDailySwing = 0.03

	trendFalling = "falling"
	trendRising  = "rising"
	trendStable  = "stable"
)

// PricePoint is one day on a deal's price timeline.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Prediction summarizes where a deal's price is likely headed.
type Prediction struct {
	Trend          string `json:"trend"`
	PredictedPrice string `json:"predictedPrice"`
	Confidence     int    `json:"confidence"`
}

// History is the full synthesized timeline plus its prediction.
type History struct {
	DealID     string       `json:"dealId"`
	Points     []PricePoint `json:"points"`
	Prediction Prediction   `json:"prediction"`
}

// For synthesizes a 30-day history for the deal, anchored on its current
// prices. The series is seeded from the deal's identity, so two requests
// for the same deal agree point for point.
func For(d model.Deal, now time.Time) History {
	anchor, ok := model.ParsePrice(d.DiscountedPrice)
	if !ok || anchor <= 0 {
		if orig, origOK := model.ParsePrice(d.OriginalPrice); origOK && orig > 0 {
			anchor = orig
		} else {
			anchor = 50
		}
	}
	high, _ := model.ParsePrice(d.OriginalPrice)
	if high < anchor {
		high = anchor
	}

	rng := rand.New(rand.NewSource(seedFor(d)))

	// Walk backwards from the current price so the series ends exactly on
	// what the user sees today, drifting toward the original price in the
	// past.
	points := make([]PricePoint, historyDays)
	price := anchor
	for i := historyDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, i-(historyDays-1))
		points[i] = PricePoint{
			Date:  day.Format("2006-01-02"),
			Price: round2(price),
		}
		swing := (rng.Float64()*2 - 1) * maxDailySwing * anchor
		pull := (high - price) * 0.05 // older prices lean toward the pre-discount level
		price += pull + swing
		if price < anchor*0.5 {
			price = anchor * 0.5
		}
		if high > 0 && price > high*1.1 {
			price = high * 1.1
		}
	}

	return History{
		DealID:     d.ID,
		Points:     points,
		Prediction: predict(points, anchor, rng),
	}
}

func predict(points []PricePoint, anchor float64, rng *rand.Rand) Prediction {
	recent := points[len(points)-7:]
	delta := recent[len(recent)-1].Price - recent[0].Price

	trend := trendStable
	next := anchor
	switch {
	case delta < -0.01*anchor:
		trend = trendFalling
		next = anchor * (1 - 0.02 - rng.Float64()*0.03)
	case delta > 0.01*anchor:
		trend = trendRising
		next = anchor * (1 + 0.02 + rng.Float64()*0.03)
	}

	p := message.NewPrinter(language.English)
	return Prediction{
		Trend:          trend,
		PredictedPrice: p.Sprintf("$%.2f", round2(next)),
		Confidence:     60 + rng.Intn(31),
	}
}

// seedFor derives a stable seed from the deal's identity. The title is
// preferred because generated IDs embed a timestamp.
func seedFor(d model.Deal) int64 {
	h := fnv.New64a()
	if d.Title != "" {
		h.Write([]byte(d.Title))
		h.Write([]byte(d.Merchant))
	} else {
		h.Write([]byte(d.ID))
	}
	return int64(h.Sum64())
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
