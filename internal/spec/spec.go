// Package spec holds the application specification model produced by the
// analysis stage and consumed by every stage after it.
package spec

// Categories an application can be classified into.
var Categories = []string{
	"productivity", "utility", "entertainment", "business", "education",
	"social", "health", "finance", "travel", "shopping", "news",
	"photography", "music", "sports", "weather", "food", "lifestyle",
}

// Frameworks are the supported build targets. Each maps to a registered
// builder.
var Frameworks = []string{
	"react_native", "flutter", "kivy", "cordova", "native_android",
}

const (
	DefaultCategory  = "utility"
	DefaultFramework = "react_native"
)

// AppSpecification is the validated output of the analysis stage.
type AppSpecification struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Framework       string   `json:"framework"`
	Features        []string `json:"features"`
	UIStyle         string   `json:"ui_style"`
	TargetAudience  string   `json:"target_audience"`
	ComplexityLevel int      `json:"complexity_level"`
	APIIntegrations []string `json:"api_integrations"`
	Permissions     []string `json:"permissions"`
	Monetization    string   `json:"monetization,omitempty"`
}

// Architecture is the output of the architecture stage. Fields the model
// omits stay nil; BuildConfig is filled by AugmentArchitecture.
type Architecture struct {
	Components       []string        `json:"components"`
	Screens          []string        `json:"screens"`
	Navigation       map[string]any  `json:"navigation"`
	DataFlow         any             `json:"data_flow"`
	ExternalServices []string        `json:"external_services"`
	FileStructure    map[string]any  `json:"file_structure"`
	Dependencies     []string        `json:"dependencies,omitempty"`
	BuildConfig      map[string]bool `json:"build_config,omitempty"`
}

// ValidFramework reports whether f names a supported build target.
func ValidFramework(f string) bool { return contains(Frameworks, f) }

func validCategory(c string) bool  { return contains(Categories, c) }
func validFramework(f string) bool { return contains(Frameworks, f) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
