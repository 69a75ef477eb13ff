package spec

import (
	"encoding/json"
	"strings"
)

const (
	minFeatures = 3
	maxFeatures = 15
)

var paddingFeatures = []string{"basic_ui", "data_display", "settings"}

// Validate coerces an arbitrary decoded model payload into a well-formed
// AppSpecification. It never fails: missing or invalid fields are replaced
// with defaults, enums are coerced, and numeric ranges are clamped.
// originalPrompt backs the description default.
func Validate(raw map[string]any, originalPrompt string) AppSpecification {
	if raw == nil {
		raw = map[string]any{}
	}

	out := AppSpecification{
		Name:            stringField(raw, "name", "Generated App"),
		Description:     stringField(raw, "description", originalPrompt),
		Category:        strings.ToLower(stringField(raw, "category", DefaultCategory)),
		Framework:       strings.ToLower(stringField(raw, "framework", DefaultFramework)),
		Features:        stringSliceField(raw, "features"),
		UIStyle:         stringField(raw, "ui_style", "modern"),
		TargetAudience:  stringField(raw, "target_audience", "general users"),
		ComplexityLevel: intField(raw, "complexity_level", 5),
		APIIntegrations: stringSliceField(raw, "api_integrations"),
		Permissions:     stringSliceField(raw, "permissions"),
		Monetization:    stringField(raw, "monetization", "free"),
	}

	if out.Description == "" {
		out.Description = "A mobile application"
	}
	if !validCategory(out.Category) {
		out.Category = DefaultCategory
	}
	if !validFramework(out.Framework) {
		out.Framework = DefaultFramework
	}
	if out.ComplexityLevel < 1 {
		out.ComplexityLevel = 1
	}
	if out.ComplexityLevel > 10 {
		out.ComplexityLevel = 10
	}
	out.Features = clampFeatures(out.Features)
	if len(out.Permissions) == 0 {
		out.Permissions = []string{"INTERNET"}
	}
	if out.APIIntegrations == nil {
		out.APIIntegrations = []string{}
	}
	return out
}

// ParseAndValidate decodes a model response and validates it. Malformed
// JSON yields the pure-default specification rather than an error.
func ParseAndValidate(content, originalPrompt string) AppSpecification {
	var raw map[string]any
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		raw = nil
	}
	return Validate(raw, originalPrompt)
}

func clampFeatures(features []string) []string {
	if len(features) > maxFeatures {
		return features[:maxFeatures]
	}
	for _, pad := range paddingFeatures {
		if len(features) >= minFeatures {
			break
		}
		if !contains(features, pad) {
			features = append(features, pad)
		}
	}
	return features
}

func stringField(raw map[string]any, key, fallback string) string {
	if v, ok := raw[key].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func intField(raw map[string]any, key string, fallback int) int {
	switch v := raw[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}

func stringSliceField(raw map[string]any, key string) []string {
	items, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
