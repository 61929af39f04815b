package deals

import (
	_ "embed"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
)

//go:embed placeholders.yaml
var placeholderCatalog []byte

type placeholderEntry struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Merchant    string  `yaml:"merchant"`
	Original    float64 `yaml:"original"`
	Discounted  float64 `yaml:"discounted"`
}

var (
	placeholderOnce    sync.Once
	placeholderEntries []placeholderEntry
)

func loadPlaceholders() []placeholderEntry {
	placeholderOnce.Do(func() {
		if err := yaml.Unmarshal(placeholderCatalog, &placeholderEntries); err != nil {
			// The catalog is compiled in, so this only fires on a bad edit.
			zap.L().Error("deals: embedded placeholder catalog is invalid", zap.Error(err))
		}
	})
	return placeholderEntries
}

// PlaceholderDeals returns the offline catalog sized to the configured
// initial count, cycling through the catalog and the configured categories
// so every entry carries a plausible category and image.
func (s *Service) PlaceholderDeals() []model.Deal {
	entries := loadPlaceholders()
	if len(entries) == 0 {
		return nil
	}

	count := s.cfg.InitialCount
	if count <= 0 {
		count = defaultInitialCount
	}
	categories := s.cfg.Categories
	if len(categories) == 0 {
		categories = []string{"General"}
	}

	p := message.NewPrinter(language.English)
	out := make([]model.Deal, 0, count)
	for i := 0; i < count; i++ {
		e := entries[i%len(entries)]
		id := fmt.Sprintf("placeholder-%d", i+1)
		out = append(out, model.Deal{
			ID:              id,
			Title:           e.Title,
			Description:     e.Description,
			OriginalPrice:   p.Sprintf("$%.2f", e.Original),
			DiscountedPrice: p.Sprintf("$%.2f", e.Discounted),
			Merchant:        e.Merchant,
			Category:        categories[i%len(categories)],
			ImageURL:        placeholderImage(s.cfg.ImageBaseURL, e.Title, id),
		})
	}
	return out
}
