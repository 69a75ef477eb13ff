package spec

import (
	"reflect"
	"testing"
)

func TestValidateDefaultsOnEmptyPayload(t *testing.T) {
	got := Validate(nil, "a todo list app")
	if got.Name != "Generated App" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Description != "a todo list app" {
		t.Errorf("description = %q", got.Description)
	}
	if got.Category != "utility" || got.Framework != "react_native" {
		t.Errorf("defaults: category=%s framework=%s", got.Category, got.Framework)
	}
	if got.ComplexityLevel != 5 {
		t.Errorf("complexity = %d", got.ComplexityLevel)
	}
	if len(got.Features) < 3 {
		t.Errorf("features below minimum: %v", got.Features)
	}
	if !reflect.DeepEqual(got.Permissions, []string{"INTERNET"}) {
		t.Errorf("permissions = %v", got.Permissions)
	}
}

func TestValidateCoercesInvalidEnums(t *testing.T) {
	got := Validate(map[string]any{
		"category":  "spaceship",
		"framework": "cobol",
	}, "p")
	if got.Category != "utility" {
		t.Errorf("invalid category not coerced: %s", got.Category)
	}
	if got.Framework != "react_native" {
		t.Errorf("invalid framework not coerced: %s", got.Framework)
	}
}

func TestValidateClampsComplexity(t *testing.T) {
	for raw, want := range map[float64]int{-3: 1, 0: 1, 7: 7, 42: 10} {
		got := Validate(map[string]any{"complexity_level": raw}, "p")
		if got.ComplexityLevel != want {
			t.Errorf("complexity %v -> %d, want %d", raw, got.ComplexityLevel, want)
		}
	}
	got := Validate(map[string]any{"complexity_level": "very"}, "p")
	if got.ComplexityLevel != 5 {
		t.Errorf("non-numeric complexity -> %d, want 5", got.ComplexityLevel)
	}
}

func TestValidateClampsFeatureCount(t *testing.T) {
	long := make([]any, 20)
	for i := range long {
		long[i] = "feature"
	}
	got := Validate(map[string]any{"features": long}, "p")
	if len(got.Features) != 15 {
		t.Errorf("feature list not truncated: %d", len(got.Features))
	}

	got = Validate(map[string]any{"features": []any{"camera"}}, "p")
	if len(got.Features) < 3 {
		t.Errorf("feature list not padded: %v", got.Features)
	}
	if got.Features[0] != "camera" {
		t.Errorf("original feature lost: %v", got.Features)
	}
}

func TestParseAndValidateMalformedJSON(t *testing.T) {
	got := ParseAndValidate("definitely not json", "my prompt")
	if got.Name != "Generated App" || got.Category != "utility" {
		t.Errorf("malformed payload should yield defaults, got %+v", got)
	}
}

func TestAnalyzeFallbackCategories(t *testing.T) {
	cases := []struct {
		prompt   string
		category string
	}{
		{"Create a simple calculator app with basic arithmetic operations", "utility"},
		{"a todo list with reminders", "productivity"},
		{"a trivia quiz for students", "education"},
		{"track my sales and inventory", "business"},
		{"something with no known words", "utility"},
	}
	for _, tc := range cases {
		got := AnalyzeFallback(tc.prompt, nil)
		if got.Category != tc.category {
			t.Errorf("%q -> category %s, want %s", tc.prompt, got.Category, tc.category)
		}
	}
}

func TestAnalyzeFallbackFramework(t *testing.T) {
	if got := AnalyzeFallback("a simple basic viewer", nil); got.Framework != "react_native" {
		t.Errorf("default framework -> %s, want react_native", got.Framework)
	}
	got := AnalyzeFallback("a simple viewer", map[string]string{"framework": "kivy"})
	if got.Framework != "kivy" {
		t.Errorf("preference override -> %s, want kivy", got.Framework)
	}
	got = AnalyzeFallback("a simple viewer", map[string]string{"framework": "webOS"})
	if got.Framework != "react_native" {
		t.Errorf("invalid preference -> %s, want react_native", got.Framework)
	}
}

func TestExtractFeatures(t *testing.T) {
	got := ExtractFeatures("login with account, save to database, show map")
	want := []string{"authentication", "data_storage", "location"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("features = %v, want %v", got, want)
	}
	if got := ExtractFeatures("nothing matches here"); !reflect.DeepEqual(got, []string{"basic_ui", "data_display"}) {
		t.Errorf("empty match fallback = %v", got)
	}
}

func TestAugmentArchitecture(t *testing.T) {
	arch := TemplateArchitecture(AppSpecification{Framework: "flutter"})
	arch = AugmentArchitecture(arch, AppSpecification{Framework: "flutter"})
	if !arch.BuildConfig["pubspec_yaml"] {
		t.Errorf("flutter build config missing: %v", arch.BuildConfig)
	}
	arch = AugmentArchitecture(Architecture{}, AppSpecification{Framework: "cordova"})
	if arch.BuildConfig != nil {
		t.Errorf("cordova should not set build config: %v", arch.BuildConfig)
	}
}

func TestParseArchitectureFallsBack(t *testing.T) {
	app := AppSpecification{APIIntegrations: []string{}}
	arch := ParseArchitecture("not json", app)
	if len(arch.Components) != 3 || arch.Screens[0] != "Home" {
		t.Errorf("template architecture not applied: %+v", arch)
	}
	arch = ParseArchitecture(`{"components":["A","B"],"screens":["S"]}`, app)
	if len(arch.Components) != 2 {
		t.Errorf("valid architecture overwritten: %+v", arch)
	}
}
