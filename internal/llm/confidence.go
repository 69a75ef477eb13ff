package llm

import (
	"encoding/json"
	"strings"

	"singularity/internal/prompt"
)

var codeMarkers = []string{"function", "class", "import", "export"}

// scoreConfidence rates a model response in [0,1] by template kind.
// Structured (analysis/architecture) responses score on JSON validity and
// required-field presence; code responses on the presence of code markers.
func scoreConfidence(content string, tpl prompt.Template) float64 {
	switch tpl.Kind {
	case prompt.KindAnalysis, prompt.KindArchitecture:
		var obj map[string]any
		if err := json.Unmarshal([]byte(content), &obj); err != nil {
			return 0.3
		}
		confidence := 0.8
		if hasRequiredFields(obj, tpl.Constraints.RequiredFields) {
			confidence += 0.1
		}
		if confidence > 1.0 {
			confidence = 1.0
		}
		return confidence
	case prompt.KindCodeGeneration:
		lower := strings.ToLower(content)
		for _, marker := range codeMarkers {
			if strings.Contains(lower, marker) {
				return 0.7
			}
		}
		return 0.5
	default:
		return 0.6
	}
}

func hasRequiredFields(obj map[string]any, fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if _, ok := obj[f]; !ok {
			return false
		}
	}
	return true
}
