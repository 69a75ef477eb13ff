// Package job defines the generation job record, its state machine and the
// store that tracks active and completed jobs.
package job

import (
	"time"

	"github.com/google/uuid"
)

// State is a generation job lifecycle state.
type State string

const (
	StateQueued       State = "queued"
	StateAnalyzing    State = "analyzing"
	StateArchitecting State = "architecting"
	StateCoding       State = "coding"
	StateBuilding     State = "building"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

// Progress returns the completion percentage reached when a job enters the
// state. Progress only moves forward.
func (s State) Progress() int {
	switch s {
	case StateAnalyzing:
		return 20
	case StateArchitecting:
		return 40
	case StateCoding:
		return 70
	case StateBuilding:
		return 90
	case StateCompleted:
		return 100
	default:
		return 0
	}
}

// Description is the human-readable stage label published with status
// events.
func (s State) Description() string {
	switch s {
	case StateQueued:
		return "Queued for processing"
	case StateAnalyzing:
		return "Analyzing prompt and extracting requirements"
	case StateArchitecting:
		return "Generating application architecture"
	case StateCoding:
		return "Generating source code"
	case StateBuilding:
		return "Building application package"
	case StateCompleted:
		return "Generation completed"
	case StateFailed:
		return "Generation failed"
	default:
		return string(s)
	}
}

// Terminal reports whether no further transitions are allowed.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Job is one generation request moving through the pipeline.
type Job struct {
	ID          string            `json:"id"`
	Prompt      string            `json:"prompt"`
	Preferences map[string]string `json:"preferences,omitempty"`
	UserID      string            `json:"user_id,omitempty"`

	State       State  `json:"status"`
	Progress    int    `json:"progress"`
	Stage       string `json:"stage"`
	Error       string `json:"error,omitempty"`
	FailedStage string `json:"failed_stage,omitempty"`

	AppName      string   `json:"app_name,omitempty"`
	Framework    string   `json:"framework,omitempty"`
	Category     string   `json:"category,omitempty"`
	ArtifactPath string   `json:"-"`
	ArtifactName string   `json:"artifact_name,omitempty"`
	DownloadURL  string   `json:"download_url,omitempty"`
	BuildLog     []string `json:"build_log,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// New creates a queued job.
func New(prompt string, preferences map[string]string, userID string) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:          uuid.NewString(),
		Prompt:      prompt,
		Preferences: preferences,
		UserID:      userID,
		State:       StateQueued,
		Progress:    0,
		Stage:       StateQueued.Description(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Advance moves the job into the given state, keeping progress monotonic.
func (j *Job) Advance(s State) {
	j.State = s
	if p := s.Progress(); p > j.Progress {
		j.Progress = p
	}
	j.Stage = s.Description()
	j.UpdatedAt = time.Now().UTC()
	if s.Terminal() {
		done := j.UpdatedAt
		j.CompletedAt = &done
	}
}

// Fail marks the job failed, recording the stage it failed in. Progress is
// left at the last completed stage.
func (j *Job) Fail(stage State, err error) {
	j.FailedStage = string(stage)
	if err != nil {
		j.Error = err.Error()
	}
	j.Advance(StateFailed)
}

// Clone returns a copy safe to hand outside the store's lock.
func (j *Job) Clone() *Job {
	cp := *j
	if j.Preferences != nil {
		cp.Preferences = make(map[string]string, len(j.Preferences))
		for k, v := range j.Preferences {
			cp.Preferences[k] = v
		}
	}
	if j.BuildLog != nil {
		cp.BuildLog = append([]string(nil), j.BuildLog...)
	}
	if j.CompletedAt != nil {
		done := *j.CompletedAt
		cp.CompletedAt = &done
	}
	return &cp
}
