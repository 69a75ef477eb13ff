package engine

import (
	"archive/zip"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"singularity/internal/artifact"
	"singularity/internal/builder"
	"singularity/internal/job"
	"singularity/internal/llm"
	"singularity/internal/notify"
)

// stageAwareCaller answers the analysis, architecture and code prompts
// with canned JSON, keyed off the template wording.
type stageAwareCaller struct{}

func (stageAwareCaller) Name() string { return "stage-aware" }

func (stageAwareCaller) Call(_ context.Context, _, prompt string, _ int, _ float64) (string, error) {
	if strings.Contains(prompt, "mobile app analyst") {
		return `{
			"name": "Fit Tracker",
			"description": "Track workouts and progress",
			"category": "health",
			"framework": "flutter",
			"features": ["workout_log", "progress_charts", "reminders"],
			"complexity_level": 6
		}`, nil
	}
	if strings.Contains(prompt, "software architect") {
		return `{"components":["Home","Charts","Log","Nav","Store"],"screens":["Home","Log"],"navigation":{"type":"stack"}}`, nil
	}
	if strings.Contains(prompt, "Generate production-ready code") {
		return `{"files":{
			"lib/workout_log.dart": "class WorkoutLog {}",
			"../escape.txt":        "outside the build dir",
			"/tmp/abs.txt":         "outside the build dir"
		}}`, nil
	}
	return "", errors.New("unexpected prompt")
}

func newTestEngine(t *testing.T, caller llm.Caller) (*Engine, *job.MemoryStore) {
	t.Helper()
	cache, err := llm.NewCache(32)
	require.NoError(t, err)
	store := job.NewMemoryStore()
	eng := New(
		store,
		notify.NewBroker(),
		llm.NewExecutor(caller, cache, time.Second),
		builder.NewRegistry(builder.NewLocalBackend(t.TempDir())),
		artifact.NewDiskStore(t.TempDir()),
	)
	return eng, store
}

func waitTerminal(t *testing.T, eng *Engine, id string) *job.Job {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		j, err := eng.Status(id)
		require.NoError(t, err)
		if j.State.Terminal() {
			return j
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state", id)
	return nil
}

func TestSubmitRejectsShortPrompt(t *testing.T) {
	eng, _ := newTestEngine(t, &llm.FakeCaller{Fail: true})
	_, err := eng.Submit(context.Background(), "too short", nil, "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
	_, err = eng.Submit(context.Background(), "         x", nil, "")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCalculatorScenarioWithAllModelsFailing(t *testing.T) {
	eng, _ := newTestEngine(t, &llm.FakeCaller{Fail: true})

	id, err := eng.Submit(context.Background(), "Create a simple calculator app with basic arithmetic operations", nil, "u1")
	require.NoError(t, err)

	j := waitTerminal(t, eng, id)
	require.Equal(t, job.StateCompleted, j.State)
	assert.Equal(t, 100, j.Progress)
	assert.Equal(t, "utility", j.Category)
	// With no stated preference the fallback picks the first declared
	// framework.
	assert.Equal(t, "react_native", j.Framework)
	assert.NotEmpty(t, j.ArtifactName)

	path, name, err := eng.Artifact(id)
	require.NoError(t, err)
	assert.NotEmpty(t, path)
	assert.True(t, strings.HasSuffix(name, ".apk"))
}

func TestModelBackedPipeline(t *testing.T) {
	eng, _ := newTestEngine(t, stageAwareCaller{})

	id, err := eng.Submit(context.Background(), "a fitness tracking app with workout plans", nil, "")
	require.NoError(t, err)

	j := waitTerminal(t, eng, id)
	require.Equal(t, job.StateCompleted, j.State, "error: %s", j.Error)
	assert.Equal(t, "Fit Tracker", j.AppName)
	assert.Equal(t, "flutter", j.Framework)
	assert.Equal(t, "health", j.Category)
	assert.Equal(t, "fit_tracker.apk", j.ArtifactName)
}

func TestModelDraftedFilesLandInArtifact(t *testing.T) {
	eng, _ := newTestEngine(t, stageAwareCaller{})

	id, err := eng.Submit(context.Background(), "a fitness tracking app with workout plans", nil, "")
	require.NoError(t, err)

	j := waitTerminal(t, eng, id)
	require.Equal(t, job.StateCompleted, j.State, "error: %s", j.Error)

	zr, err := zip.OpenReader(j.ArtifactPath)
	require.NoError(t, err)
	defer zr.Close()
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	assert.True(t, names["lib/main.dart"], "scaffold file missing")
	assert.True(t, names["lib/workout_log.dart"], "model-drafted file missing")
	assert.False(t, names["../escape.txt"], "traversal path must be rejected")
	assert.False(t, names["/tmp/abs.txt"], "absolute path must be rejected")
}

func TestFrameworkPreferenceOverride(t *testing.T) {
	eng, _ := newTestEngine(t, stageAwareCaller{})

	id, err := eng.Submit(context.Background(), "a fitness tracking app with workout plans",
		map[string]string{"framework": "kivy"}, "")
	require.NoError(t, err)

	j := waitTerminal(t, eng, id)
	require.Equal(t, job.StateCompleted, j.State)
	assert.Equal(t, "kivy", j.Framework)
}

func TestSubscribeStreamsMonotonicProgress(t *testing.T) {
	eng, _ := newTestEngine(t, &llm.FakeCaller{Fail: true})

	id, err := eng.Submit(context.Background(), "a basic note taking application", nil, "")
	require.NoError(t, err)

	ch, err := eng.Subscribe(id)
	require.NoError(t, err)

	last := -1
	terminal := false
	timeout := time.After(5 * time.Second)
	for !terminal {
		select {
		case ev := <-ch:
			assert.GreaterOrEqual(t, ev.Progress, last, "progress went backwards")
			if ev.Progress > last {
				last = ev.Progress
			}
			if ev.Type == notify.EventCompleted || ev.Type == notify.EventError {
				terminal = true
			}
		case <-timeout:
			t.Fatalf("no terminal event (last progress %d)", last)
		}
	}
	assert.Equal(t, 100, last)
}

func TestSubscribeAfterCompletionDeliversSnapshot(t *testing.T) {
	eng, _ := newTestEngine(t, &llm.FakeCaller{Fail: true})
	id, err := eng.Submit(context.Background(), "a basic note taking application", nil, "")
	require.NoError(t, err)
	waitTerminal(t, eng, id)

	ch, err := eng.Subscribe(id)
	require.NoError(t, err)
	select {
	case ev := <-ch:
		assert.Equal(t, id, ev.JobID)
		assert.Equal(t, string(job.StateCompleted), ev.Status)
		// A stream opened after completion still ends on a terminal event.
		assert.Equal(t, notify.EventCompleted, ev.Type)
	case <-time.After(time.Second):
		t.Fatalf("snapshot not delivered")
	}
}

func TestSubscribeUnknownJob(t *testing.T) {
	eng, _ := newTestEngine(t, &llm.FakeCaller{Fail: true})
	_, err := eng.Subscribe("no-such-job")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArtifactErrors(t *testing.T) {
	eng, store := newTestEngine(t, &llm.FakeCaller{Fail: true})

	_, _, err := eng.Artifact("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	pending := job.New("still working on this one", nil, "")
	pending.Advance(job.StateAnalyzing)
	store.Put(pending)
	_, _, err = eng.Artifact(pending.ID)
	assert.ErrorIs(t, err, ErrNotReady)

	done := job.New("finished but artifact vanished", nil, "")
	done.Advance(job.StateCompleted)
	done.ArtifactPath = "/nonexistent/app.apk"
	done.ArtifactName = "app.apk"
	store.Put(done)
	_, _, err = eng.Artifact(done.ID)
	assert.ErrorIs(t, err, ErrArtifactMissing)
}

func TestHistoryAfterCompletion(t *testing.T) {
	eng, _ := newTestEngine(t, &llm.FakeCaller{Fail: true})

	id, err := eng.Submit(context.Background(), "a basic note taking application", nil, "u9")
	require.NoError(t, err)
	waitTerminal(t, eng, id)

	// MoveToHistory runs in the job goroutine right after the final event.
	require.Eventually(t, func() bool {
		active, history := eng.Counts()
		return active == 0 && history == 1
	}, 2*time.Second, 5*time.Millisecond)

	entries := eng.History(10, "u9")
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
}

func TestConcurrentJobsIsolated(t *testing.T) {
	eng, _ := newTestEngine(t, &llm.FakeCaller{Fail: true})

	prompts := []string{
		"a simple calculator app for everyone",
		"a todo list with reminders please",
		"a trivia quiz for students tonight",
	}
	ids := make([]string, len(prompts))
	for i, p := range prompts {
		id, err := eng.Submit(context.Background(), p, nil, "")
		require.NoError(t, err)
		ids[i] = id
	}
	categories := map[string]string{}
	for i, id := range ids {
		j := waitTerminal(t, eng, id)
		require.Equal(t, job.StateCompleted, j.State)
		categories[prompts[i]] = j.Category
	}
	assert.Equal(t, "utility", categories[prompts[0]])
	assert.Equal(t, "productivity", categories[prompts[1]])
	assert.Equal(t, "education", categories[prompts[2]])
}

func TestFrameworksAndCategories(t *testing.T) {
	eng, _ := newTestEngine(t, &llm.FakeCaller{Fail: true})
	assert.Equal(t, []string{"react_native", "flutter", "kivy", "cordova", "native_android"}, eng.Frameworks())
	assert.Len(t, eng.Categories(), 17)
}
