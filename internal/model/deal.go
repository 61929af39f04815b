package model

import (
	"strconv"
	"strings"
)

// Deal represents a single generated product offer. Prices are kept as the
// currency-formatted strings the oracle produced; numeric interpretation is
// a presentation concern (see DiscountPercent).
type Deal struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	OriginalPrice   string `json:"originalPrice"`
	DiscountedPrice string `json:"discountedPrice"`
	Merchant        string `json:"merchant"`
	Category        string `json:"category"`
	ImageURL        string `json:"imageUrl,omitempty"`
}

// UserPreferences carries the caller's search inputs. Category order is
// irrelevant; the orchestrator never mutates the value.
type UserPreferences struct {
	Keywords   string   `json:"keywords"`
	Categories []string `json:"categories"`
	Location   string   `json:"location"`
}

// DealVerification is the result of a trustworthiness check.
// Score 0 is a reserved sentinel for "verification failed/unavailable";
// 1 (least trustworthy) through 5 (most) is the genuine scale.
type DealVerification struct {
	Summary string `json:"summary"`
	Score   int    `json:"score"`
}

// ParsePrice extracts a numeric amount from a currency-formatted string
// such as "$1,299.99" or "USD 45". Returns false if no digits are present.
func ParsePrice(s string) (float64, bool) {
	var b strings.Builder
	seenDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			b.WriteRune(r)
		case r == '.':
			b.WriteRune(r)
		}
	}
	if !seenDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(b.String(), "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DiscountPercent computes the rounded percentage saved between the deal's
// original and discounted prices. Returns 0 when either price cannot be
// parsed or the original is not greater than the discounted price.
func (d Deal) DiscountPercent() int {
	orig, ok := ParsePrice(d.OriginalPrice)
	if !ok || orig <= 0 {
		return 0
	}
	disc, ok := ParsePrice(d.DiscountedPrice)
	if !ok || disc >= orig {
		return 0
	}
	return int((orig-disc)/orig*100 + 0.5)
}
