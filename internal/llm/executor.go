package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"singularity/internal/prompt"
)

const defaultCallTimeout = 60 * time.Second

// Executor runs templates against an ordered list of candidate models with
// a per-call timeout and a content-addressed response cache. Each candidate
// gets exactly one attempt; any error advances to the next. Only successful
// responses are cached.
type Executor struct {
	caller      Caller
	cache       *Cache
	callTimeout time.Duration
}

func NewExecutor(caller Caller, cache *Cache, callTimeout time.Duration) *Executor {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	return &Executor{caller: caller, cache: cache, callTimeout: callTimeout}
}

// Execute renders the template, consults the cache, then walks the
// template's model preference list in order. All candidates failing yields
// ErrAllModelsExhausted with nothing cached.
func (e *Executor) Execute(ctx context.Context, tpl prompt.Template, vars map[string]string) (Response, error) {
	rendered, err := tpl.Render(vars)
	if err != nil {
		return Response{}, err
	}
	key := HashPrompt(rendered)

	if e.cache != nil {
		if resp, ok := e.cache.Get(key); ok {
			resp.Cached = true
			return resp, nil
		}
	}

	var lastErr error
	for _, model := range tpl.Models {
		callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
		started := time.Now()
		content, callErr := e.caller.Call(callCtx, model, rendered, tpl.MaxTokens, tpl.Temperature)
		cancel()
		if callErr != nil {
			log.Printf("model %s failed for %s: %v", model, tpl.Name, callErr)
			lastErr = callErr
			continue
		}

		resp := Response{
			Content:    content,
			Model:      model,
			PromptHash: key,
			TokensUsed: estimateTokens(content),
			Elapsed:    time.Since(started),
			Confidence: scoreConfidence(content, tpl),
		}
		if e.cache != nil {
			e.cache.Put(key, resp)
		}
		return resp, nil
	}

	if lastErr != nil {
		return Response{}, fmt.Errorf("%w (%s): %v", ErrAllModelsExhausted, tpl.Name, lastErr)
	}
	return Response{}, fmt.Errorf("%w (%s)", ErrAllModelsExhausted, tpl.Name)
}

func estimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return len(text) / 4
}
