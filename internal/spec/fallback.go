package spec

import (
	"fmt"
	"strings"
)

// Ordered so the most specific categories win a tie the same way every run.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"productivity", []string{"todo", "task", "note", "calendar", "reminder"}},
	{"utility", []string{"calculator", "converter", "tool", "scanner"}},
	{"entertainment", []string{"game", "music", "video", "photo"}},
	{"business", []string{"inventory", "sales", "crm", "analytics"}},
	{"education", []string{"quiz", "learn", "study", "dictionary"}},
}

var featureKeywords = []struct {
	feature  string
	keywords []string
}{
	{"authentication", []string{"login", "signup", "auth", "account"}},
	{"data_storage", []string{"save", "store", "database", "persist"}},
	{"networking", []string{"api", "sync", "cloud", "server"}},
	{"camera", []string{"photo", "camera", "picture", "scan"}},
	{"location", []string{"gps", "location", "map", "navigation"}},
	{"notifications", []string{"notify", "alert", "reminder", "push"}},
}

// AnalyzeFallback builds a specification from the prompt by keyword
// matching. Used when every candidate model fails the analysis stage.
func AnalyzeFallback(promptText string, preferences map[string]string) AppSpecification {
	lower := strings.ToLower(promptText)

	category := DefaultCategory
	for _, entry := range categoryKeywords {
		if containsAny(lower, entry.keywords) {
			category = entry.category
			break
		}
	}

	// Without a stated preference the fallback always picks the first
	// declared framework so the choice is stable across runs.
	framework := DefaultFramework
	if pref, ok := preferences["framework"]; ok && validFramework(strings.ToLower(pref)) {
		framework = strings.ToLower(pref)
	}

	return AppSpecification{
		Name:            fmt.Sprintf("Generated %s App", titleCase(category)),
		Description:     promptText,
		Category:        category,
		Framework:       framework,
		Features:        clampFeatures(ExtractFeatures(promptText)),
		UIStyle:         "modern",
		TargetAudience:  "general users",
		ComplexityLevel: 5,
		APIIntegrations: []string{},
		Permissions:     []string{"INTERNET"},
		Monetization:    "free",
	}
}

// ExtractFeatures lists the features whose keywords appear in the prompt.
func ExtractFeatures(promptText string) []string {
	lower := strings.ToLower(promptText)
	var features []string
	for _, entry := range featureKeywords {
		if containsAny(lower, entry.keywords) {
			features = append(features, entry.feature)
		}
	}
	if len(features) == 0 {
		return []string{"basic_ui", "data_display"}
	}
	return features
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
