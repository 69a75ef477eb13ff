package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestRenderSubstitutesAllVariables(t *testing.T) {
	tpl := Registry()[AppAnalysis]
	out, err := tpl.Render(map[string]string{
		"prompt":      "a simple calculator",
		"preferences": "{}",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `User Request: "a simple calculator"`) {
		t.Fatalf("prompt variable not substituted: %q", out)
	}
	if strings.Contains(out, "{prompt}") || strings.Contains(out, "{preferences}") {
		t.Fatalf("unsubstituted slots remain")
	}
}

func TestRenderMissingVariable(t *testing.T) {
	tpl := Registry()[AppArchitecture]
	_, err := tpl.Render(map[string]string{"app_spec": "{}", "framework": "flutter"})
	if !errors.Is(err, ErrMissingVariable) {
		t.Fatalf("expected ErrMissingVariable, got %v", err)
	}
}

func TestRenderDeterministic(t *testing.T) {
	tpl := Registry()[CodeGeneration]
	vars := map[string]string{
		"framework":    "react_native",
		"app_spec":     `{"name":"Demo"}`,
		"architecture": `{"components":[]}`,
		"component":    "main_app",
	}
	a, err := tpl.Render(vars)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, _ := tpl.Render(vars)
	if a != b {
		t.Fatalf("same inputs produced different renderings")
	}
}

func TestRegistryTemplatesDeclareModels(t *testing.T) {
	for name, tpl := range Registry() {
		if len(tpl.Models) == 0 {
			t.Errorf("template %s has no candidate models", name)
		}
		if tpl.MaxTokens <= 0 {
			t.Errorf("template %s has no token budget", name)
		}
	}
}
