package deals

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
)

// projectDeals turns decoded generic items into Deal records. Items that
// are not objects are skipped; string fields are projected leniently
// (numbers are formatted, everything else defaults to empty). Every deal
// gets a fresh identifier, unique within the batch, and a seeded
// placeholder image when the oracle supplied none.
func projectDeals(items []any, imageBase string) []model.Deal {
	batch := time.Now().UnixMilli()
	out := make([]model.Deal, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		d := model.Deal{
			ID:              fmt.Sprintf("deal-%d-%d", batch, i),
			Title:           stringField(obj, "title"),
			Description:     stringField(obj, "description"),
			OriginalPrice:   stringField(obj, "originalPrice"),
			DiscountedPrice: stringField(obj, "discountedPrice"),
			Merchant:        stringField(obj, "merchant"),
			Category:        stringField(obj, "category"),
			ImageURL:        stringField(obj, "imageUrl"),
		}
		if d.ImageURL == "" {
			d.ImageURL = placeholderImage(imageBase, d.Title, d.ID)
		}
		out = append(out, d)
	}
	return out
}

// stringField projects a decoded value to a string. Oracles occasionally
// emit prices as bare numbers; those are formatted rather than dropped.
func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// placeholderImage derives a deterministic image URL so repeated renders
// of the same deal stay visually stable. The seed comes from the title,
// falling back to the identifier for untitled deals.
func placeholderImage(base, title, id string) string {
	seed := slugify(title)
	if seed == "" {
		seed = id
	}
	return fmt.Sprintf("%s/%s/400/300", strings.TrimSuffix(base, "/"), seed)
}

// slugify reduces text to a URL-safe seed: lowercase alphanumerics with
// single dashes, capped at 40 characters.
func slugify(s string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
		if b.Len() >= 40 {
			break
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
