package spec

import "encoding/json"

// TemplateArchitecture is the deterministic fallback used when every
// candidate model fails the architecture stage.
func TemplateArchitecture(app AppSpecification) Architecture {
	return Architecture{
		Components:       []string{"MainScreen", "NavigationBar", "ContentView"},
		Screens:          []string{"Home", "Settings"},
		Navigation:       map[string]any{"type": "stack", "initial": "Home"},
		DataFlow:         "local_state",
		ExternalServices: app.APIIntegrations,
		FileStructure: map[string]any{
			"src/": []string{"components/", "screens/", "utils/", "assets/"},
		},
	}
}

// ParseArchitecture decodes an architecture model response. Malformed JSON
// or a payload with no components falls back to the template architecture.
func ParseArchitecture(content string, app AppSpecification) Architecture {
	var arch Architecture
	if err := json.Unmarshal([]byte(content), &arch); err != nil || len(arch.Components) == 0 {
		return TemplateArchitecture(app)
	}
	return arch
}

// AugmentArchitecture fills in framework-specific build configuration.
func AugmentArchitecture(arch Architecture, app AppSpecification) Architecture {
	switch app.Framework {
	case "react_native":
		arch.BuildConfig = map[string]bool{
			"metro_config": true,
			"babel_config": true,
			"typescript":   true,
		}
	case "flutter":
		arch.BuildConfig = map[string]bool{
			"pubspec_yaml":    true,
			"dart_analysis":   true,
			"material_design": true,
		}
	case "kivy":
		arch.BuildConfig = map[string]bool{
			"buildozer_spec":      true,
			"python_requirements": true,
			"kv_files":            true,
		}
	}
	return arch
}
