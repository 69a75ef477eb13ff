// Package engine orchestrates generation jobs through the
// analyze/architect/code/build pipeline.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"singularity/internal/artifact"
	"singularity/internal/builder"
	"singularity/internal/job"
	"singularity/internal/llm"
	"singularity/internal/notify"
	"singularity/internal/prompt"
	"singularity/internal/spec"
)

var (
	ErrInvalidRequest  = errors.New("engine: prompt too short (minimum 10 characters)")
	ErrNotFound        = errors.New("engine: job not found")
	ErrNotReady        = errors.New("engine: job not completed")
	ErrArtifactMissing = errors.New("engine: artifact missing")
)

const minPromptLength = 10

// Engine wires the model executor, the builder registry, the job store and
// the event broker into the generation pipeline. One goroutine runs per
// job; stages within a job are strictly sequential.
type Engine struct {
	store     job.Store
	broker    *notify.Broker
	executor  *llm.Executor
	registry  *builder.Registry
	templates map[string]prompt.Template
	artifacts artifact.Store // optional
}

func New(store job.Store, broker *notify.Broker, executor *llm.Executor, registry *builder.Registry, artifacts artifact.Store) *Engine {
	return &Engine{
		store:     store,
		broker:    broker,
		executor:  executor,
		registry:  registry,
		templates: prompt.Registry(),
		artifacts: artifacts,
	}
}

// Submit validates and enqueues a generation request, returning the job id
// immediately. The pipeline runs in its own goroutine.
func (e *Engine) Submit(ctx context.Context, promptText string, preferences map[string]string, userID string) (string, error) {
	if len(strings.TrimSpace(promptText)) < minPromptLength {
		return "", ErrInvalidRequest
	}
	j := job.New(promptText, preferences, userID)
	e.store.Put(j)
	e.broker.Allocate(j.ID)
	log.Printf("job %s queued (user=%s)", j.ID, userID)

	go e.run(context.WithoutCancel(ctx), j.ID)
	return j.ID, nil
}

// Status returns a snapshot of the job.
func (e *Engine) Status(id string) (*job.Job, error) {
	j, ok := e.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return j, nil
}

// Artifact resolves the built package for a completed job.
func (e *Engine) Artifact(id string) (path, name string, err error) {
	j, ok := e.store.Get(id)
	if !ok {
		return "", "", ErrNotFound
	}
	if j.State != job.StateCompleted {
		return "", "", ErrNotReady
	}
	if j.ArtifactPath == "" {
		return "", "", ErrArtifactMissing
	}
	if _, statErr := os.Stat(j.ArtifactPath); statErr != nil {
		return "", "", ErrArtifactMissing
	}
	return j.ArtifactPath, j.ArtifactName, nil
}

// History lists terminal jobs newest-first.
func (e *Engine) History(limit int, userID string) []*job.Job {
	return e.store.History(limit, userID)
}

// Subscribe attaches to a job's event stream. The current status is always
// delivered first; for jobs past their retention window the stream holds
// only that snapshot.
func (e *Engine) Subscribe(id string) (<-chan notify.Event, error) {
	j, ok := e.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	snapshot := statusEvent(j)
	if ch, live := e.broker.Subscribe(id, snapshot); live {
		return ch, nil
	}
	ch := make(chan notify.Event, 1)
	ch <- snapshot
	close(ch)
	return ch, nil
}

// Unsubscribe stops forwarding events for a job without affecting the
// pipeline (best-effort cancellation of the stream only).
func (e *Engine) Unsubscribe(id string) {
	e.broker.Unsubscribe(id)
}

// Frameworks lists the build targets with a registered builder.
func (e *Engine) Frameworks() []string { return e.registry.Frameworks() }

// Categories lists the supported app categories.
func (e *Engine) Categories() []string { return spec.Categories }

// Counts reports active and completed job totals.
func (e *Engine) Counts() (active, history int) {
	return e.store.ActiveCount(), e.store.HistoryCount()
}

// ---------------------------------------------------------------------------
// pipeline
// ---------------------------------------------------------------------------

func (e *Engine) run(ctx context.Context, jobID string) {
	j, ok := e.store.Get(jobID)
	if !ok {
		return
	}

	app := e.analyze(ctx, j)
	e.transition(jobID, func(rec *job.Job) {
		rec.Advance(job.StateArchitecting)
		rec.AppName = app.Name
		rec.Framework = app.Framework
		rec.Category = app.Category
	})

	arch := e.architect(ctx, app)
	e.transition(jobID, func(rec *job.Job) { rec.Advance(job.StateCoding) })

	b, err := e.registry.Lookup(app.Framework)
	if err != nil {
		e.fail(jobID, job.StateCoding, err)
		return
	}
	files := e.draftCode(ctx, app, arch, b.GenerateCode(app, arch))
	if len(files) == 0 {
		e.fail(jobID, job.StateCoding, fmt.Errorf("builder %s produced no files", app.Framework))
		return
	}
	e.transition(jobID, func(rec *job.Job) { rec.Advance(job.StateBuilding) })

	result, err := b.BuildArtifact(ctx, app, files)
	if err != nil {
		// Keep whatever log the backend produced for diagnostics.
		e.store.Update(jobID, func(rec *job.Job) { rec.BuildLog = result.BuildLog })
		e.fail(jobID, job.StateBuilding, err)
		return
	}

	downloadURL := ""
	if e.artifacts != nil {
		if putErr := e.artifacts.Put(ctx, jobID, result.ArtifactPath, result.ArtifactName); putErr != nil {
			log.Printf("job %s artifact upload failed: %v", jobID, putErr)
		} else if url, urlErr := e.artifacts.URL(ctx, jobID, result.ArtifactName); urlErr == nil {
			downloadURL = url
		}
	}

	final, _ := e.store.Update(jobID, func(rec *job.Job) {
		rec.ArtifactPath = result.ArtifactPath
		rec.ArtifactName = result.ArtifactName
		rec.DownloadURL = downloadURL
		rec.BuildLog = result.BuildLog
		rec.Advance(job.StateCompleted)
	})
	log.Printf("job %s completed: %s (%s)", jobID, result.ArtifactName, result.Elapsed)
	e.finish(final)
}

// analyze runs the analysis stage. Model exhaustion falls back to keyword
// analysis, so this stage cannot fail the job.
func (e *Engine) analyze(ctx context.Context, j *job.Job) spec.AppSpecification {
	e.transition(j.ID, func(rec *job.Job) { rec.Advance(job.StateAnalyzing) })

	prefs, _ := json.Marshal(orEmpty(j.Preferences))
	resp, err := e.executor.Execute(ctx, e.templates[prompt.AppAnalysis], map[string]string{
		"prompt":      j.Prompt,
		"preferences": string(prefs),
	})
	if err != nil {
		log.Printf("job %s analysis fell back to keyword matching: %v", j.ID, err)
		return spec.AnalyzeFallback(j.Prompt, j.Preferences)
	}
	app := spec.ParseAndValidate(resp.Content, j.Prompt)
	// An explicit, valid framework preference beats the model's pick.
	if pref := strings.ToLower(strings.TrimSpace(j.Preferences["framework"])); spec.ValidFramework(pref) {
		app.Framework = pref
	}
	return app
}

// architect runs the architecture stage; exhaustion falls back to the
// template architecture.
func (e *Engine) architect(ctx context.Context, app spec.AppSpecification) spec.Architecture {
	appJSON, _ := json.Marshal(app)
	resp, err := e.executor.Execute(ctx, e.templates[prompt.AppArchitecture], map[string]string{
		"app_spec":   string(appJSON),
		"framework":  app.Framework,
		"complexity": strconv.Itoa(app.ComplexityLevel),
	})
	var arch spec.Architecture
	if err != nil {
		arch = spec.TemplateArchitecture(app)
	} else {
		arch = spec.ParseArchitecture(resp.Content, app)
	}
	return spec.AugmentArchitecture(arch, app)
}

// draftCode asks the model layer to flesh out the builder's scaffold with
// app-specific source. Best-effort: on model exhaustion or an unusable
// response the scaffold ships as generated, so this step never fails a job.
func (e *Engine) draftCode(ctx context.Context, app spec.AppSpecification, arch spec.Architecture, files builder.FileSet) builder.FileSet {
	appJSON, _ := json.Marshal(app)
	archJSON, _ := json.Marshal(arch)
	tpl := e.templates[prompt.CodeGeneration]
	resp, err := e.executor.Execute(ctx, tpl, map[string]string{
		"framework":    app.Framework,
		"app_spec":     string(appJSON),
		"architecture": string(archJSON),
		"component":    "application shell",
	})
	if err != nil {
		log.Printf("code drafting skipped for %s, shipping scaffold: %v", app.Name, err)
		return files
	}
	var draft struct {
		Files map[string]string `json:"files"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &draft); err != nil {
		return files
	}
	paths := make([]string, 0, len(draft.Files))
	for p := range draft.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	added := 0
	for _, p := range paths {
		if added >= tpl.Constraints.MaxFiles {
			break
		}
		if draft.Files[p] == "" || !safeRelPath(p) {
			continue
		}
		files[p] = draft.Files[p]
		added++
	}
	return files
}

// safeRelPath rejects paths that could escape the build directory.
func safeRelPath(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return false
	}
	for _, part := range strings.Split(p, "/") {
		if part == "" || part == ".." {
			return false
		}
	}
	return true
}

func (e *Engine) transition(jobID string, update func(*job.Job)) {
	if j, ok := e.store.Update(jobID, update); ok {
		e.broker.Publish(jobID, statusEvent(j))
	}
}

func (e *Engine) fail(jobID string, stage job.State, err error) {
	log.Printf("job %s failed during %s: %v", jobID, stage, err)
	final, _ := e.store.Update(jobID, func(rec *job.Job) { rec.Fail(stage, err) })
	e.finish(final)
}

func (e *Engine) finish(j *job.Job) {
	if j == nil {
		return
	}
	e.broker.Finish(j.ID, statusEvent(j))
	e.store.MoveToHistory(j.ID)
}

// statusEvent types terminal states as completed/error so a stream always
// ends on a terminal event, even when it opened after the job finished.
func statusEvent(j *job.Job) notify.Event {
	typ := notify.EventStatus
	switch j.State {
	case job.StateCompleted:
		typ = notify.EventCompleted
	case job.StateFailed:
		typ = notify.EventError
	}
	return notify.Event{
		Type:     typ,
		JobID:    j.ID,
		Status:   string(j.State),
		Progress: j.Progress,
		Stage:    j.Stage,
		Error:    j.Error,
		At:       j.UpdatedAt,
	}
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
