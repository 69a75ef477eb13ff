package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a template by the pipeline stage it serves. Confidence
// scoring and fallback behavior both key off it.
type Kind string

const (
	KindAnalysis       Kind = "analysis"
	KindArchitecture   Kind = "architecture"
	KindCodeGeneration Kind = "code_generation"
)

// Constraints describe output expectations attached to a template. They are
// advisory for the model and used by the confidence scorer.
type Constraints struct {
	RequiredFields  []string
	ValidCategories []string
	ValidFrameworks []string
	MinFeatures     int
	MaxFeatures     int
	MinComponents   int
	MinScreens      int
	MaxScreens      int
	MinFiles        int
	MaxFiles        int
}

// Template is a structured prompt with named {slot} variables, an ordered
// model preference list and sampling parameters.
type Template struct {
	Name        string
	Kind        Kind
	Body        string
	Variables   []string
	Constraints Constraints
	Models      []string
	MaxTokens   int
	Temperature float64
}

var slotPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Render substitutes every declared variable into the template body. A
// declared variable with no binding is an error; unknown bindings are
// ignored.
func (t Template) Render(vars map[string]string) (string, error) {
	for _, name := range t.Variables {
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingVariable, name)
		}
	}
	out := slotPattern.ReplaceAllStringFunc(t.Body, func(m string) string {
		name := strings.Trim(m, "{}")
		if v, ok := vars[name]; ok {
			return v
		}
		return m
	})
	return out, nil
}
