package llm

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrAllModelsExhausted reports that every candidate model in a
	// template's preference list failed for one execution.
	ErrAllModelsExhausted = errors.New("llm: all candidate models exhausted")

	// ErrUnknownModel reports a model id with no registered caller.
	ErrUnknownModel = errors.New("llm: unknown model")
)

// Caller is the single-model call capability. Implementations wrap one
// provider API and return the raw response text.
type Caller interface {
	Name() string
	Call(ctx context.Context, model, prompt string, maxTokens int, temperature float64) (string, error)
}

// Response is the immutable result of one successful model execution.
type Response struct {
	Content    string
	Model      string
	PromptHash string
	TokensUsed int
	Elapsed    time.Duration
	Confidence float64
	Cached     bool
}

// Router dispatches model ids of the form "provider::model" to the caller
// registered for the provider. An id with no registered provider fails with
// ErrUnknownModel, which the executor treats as a failed candidate.
type Router struct {
	callers map[string]Caller
}

var _ Caller = (*Router)(nil)

func NewRouter() *Router {
	return &Router{callers: make(map[string]Caller)}
}

func (r *Router) Name() string { return "router" }

// Register binds a provider prefix to a caller. Last registration wins.
func (r *Router) Register(provider string, c Caller) {
	r.callers[strings.ToLower(strings.TrimSpace(provider))] = c
}

func (r *Router) Call(ctx context.Context, modelID, prompt string, maxTokens int, temperature float64) (string, error) {
	provider, model, ok := splitModelID(modelID)
	if !ok {
		return "", ErrUnknownModel
	}
	c, found := r.callers[provider]
	if !found {
		return "", ErrUnknownModel
	}
	return c.Call(ctx, model, prompt, maxTokens, temperature)
}

func splitModelID(id string) (provider, model string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(id), "::", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return strings.ToLower(parts[0]), parts[1], true
}
