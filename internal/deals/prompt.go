package deals

import (
	"fmt"
	"strings"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
)

// searchSystemText is the system prompt for structured deal generation.
const searchSystemText = "You are a deal-discovery assistant for an e-commerce aggregator. You invent realistic, plausible product offers."

const searchPrompt = `Generate %d realistic e-commerce deals as a JSON array. Each element must be an object with exactly these string fields: "title", "description", "originalPrice", "discountedPrice", "merchant", "category", and optionally "imageUrl". Prices are currency-formatted strings such as "$129.99", with the discounted price always lower than the original. Do not include an "id" field and do not wrap the array in any other structure.`

const groundedPrompt = `Search the web for %d current e-commerce deals and promotions. From the search results, extract or infer deals and present them as a JSON array. Each element must be an object with these string fields: "title", "description", "originalPrice", "discountedPrice", "merchant", "category", and optionally "imageUrl". Prices are currency-formatted strings such as "$129.99". Do not include an "id" field.`

const verifyPrompt = `Assess the trustworthiness of the following e-commerce deal.

Title: %s
Description: %s
Original price: %s
Discounted price: %s
Merchant: %s
Category: %s

Consider whether the discount is plausible, the merchant reputable, and the pricing internally consistent. Respond with a single JSON object with exactly two fields: "summary" (a brief explanation of your assessment) and "score" (an integer from 1 to 5, where 1 means least trustworthy and 5 means most trustworthy).`

// buildSearchPrompt renders the structured generation prompt, appending a
// clause per non-empty preference.
func buildSearchPrompt(count int, prefs model.UserPreferences) string {
	var b strings.Builder
	fmt.Fprintf(&b, searchPrompt, count)
	appendPreferenceClauses(&b, prefs)
	return b.String()
}

// buildGroundedPrompt renders the web-search-oriented prompt with the same
// preference clauses.
func buildGroundedPrompt(count int, prefs model.UserPreferences) string {
	var b strings.Builder
	fmt.Fprintf(&b, groundedPrompt, count)
	appendPreferenceClauses(&b, prefs)
	return b.String()
}

func appendPreferenceClauses(b *strings.Builder, prefs model.UserPreferences) {
	if kw := strings.TrimSpace(prefs.Keywords); kw != "" {
		fmt.Fprintf(b, " Focus on products matching: %s.", kw)
	}
	if len(prefs.Categories) > 0 {
		fmt.Fprintf(b, " Restrict categories to: %s.", strings.Join(prefs.Categories, ", "))
	}
	if loc := strings.TrimSpace(prefs.Location); loc != "" {
		fmt.Fprintf(b, " Prefer merchants and offers relevant to shoppers in %s.", loc)
	}
}

// buildVerifyPrompt renders the verification prompt for a single deal.
func buildVerifyPrompt(d model.Deal) string {
	return fmt.Sprintf(verifyPrompt,
		d.Title,
		d.Description,
		d.OriginalPrice,
		d.DiscountedPrice,
		d.Merchant,
		d.Category,
	)
}
