package notion

import "strings"

// FallbackCategory is used when the AI suggestion is neither a preferred
// category nor a reasonable new one.
const FallbackCategory = "Cool Tool"

var preferredCategories = []string{
	"VibeCoding Help",
	"Cool AI",
	"Ecommerce",
	"Business Ideas",
	"Cool Tool",
	"App Idea",
	"Ios Development",
}

var categoryKeywords = map[string][]string{
	"VibeCoding Help": {"coding", "programming", "developer", "software", "web development", "html", "css", "javascript", "python", "java"},
	"Cool AI":         {"ai", "artificial intelligence", "machine learning", "deep learning", "nlp", "gpt", "model", "neural", "llm"},
	"Ecommerce":       {"ecommerce", "e-commerce", "shop", "shopping", "marketplace", "retail", "online store", "commerce"},
	"Business Ideas":  {"business", "startup", "entrepreneur", "idea", "venture", "opportunity", "market"},
	"Cool Tool":       {"tool", "utility", "productivity", "automation", "service", "platform"},
	"App Idea":        {"app", "application", "mobile", "concept", "idea"},
	"Ios Development": {"ios", "swift", "apple", "iphone", "ipad", "xcode", "mobile development", "app development"},
}

// MapCategory normalizes an AI-suggested category into one of the preferred
// categories: exact match first, then keyword match, then keep short new
// suggestions as-is, otherwise fall back.
func MapCategory(aiCategory string) string {
	if aiCategory == "" {
		return FallbackCategory
	}

	lower := strings.ToLower(aiCategory)

	for _, category := range preferredCategories {
		if lower == strings.ToLower(category) {
			return category
		}
	}

	for _, category := range preferredCategories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lower, keyword) {
				return category
			}
		}
	}

	if len(aiCategory) < 25 {
		return aiCategory
	}

	return FallbackCategory
}
