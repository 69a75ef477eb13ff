package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// FakeCaller returns deterministic canned payloads for offline use and
// testing. With Fail set every call errors, which drives the executor's
// fallback path.
type FakeCaller struct {
	Fail      bool
	Responses map[string]string // model -> canned content
}

var errFakeUnavailable = errors.New("fake model unavailable")

func NewFakeCaller() *FakeCaller {
	return &FakeCaller{}
}

func (f *FakeCaller) Name() string { return "fake" }

func (f *FakeCaller) Call(_ context.Context, model, _ string, _ int, _ float64) (string, error) {
	if f.Fail {
		return "", errFakeUnavailable
	}
	if f.Responses != nil {
		if content, ok := f.Responses[model]; ok {
			return content, nil
		}
	}
	b, _ := json.Marshal(map[string]any{
		"name":        "Fake App",
		"description": "deterministic fake output",
		"category":    "utility",
		"framework":   "react_native",
		"features":    []string{"basic_ui", "data_display", "settings"},
	})
	return string(b), nil
}
