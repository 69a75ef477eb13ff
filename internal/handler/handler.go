// Package handler exposes the HTTP boundary. Handlers stay thin: decode,
// call the engine, encode.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"singularity/internal/engine"
)

type API struct {
	engine *engine.Engine
}

func New(eng *engine.Engine) *API {
	return &API{engine: eng}
}

type generateRequest struct {
	Prompt      string            `json:"prompt"`
	Preferences map[string]string `json:"preferences,omitempty"`
	UserID      string            `json:"user_id,omitempty"`
}

type generateResponse struct {
	GenerationID string `json:"generation_id"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}

func (a *API) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	id, err := a.engine.Submit(r.Context(), req.Prompt, req.Preferences, req.UserID)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to start generation")
		return
	}
	writeJSON(w, http.StatusAccepted, generateResponse{
		GenerationID: id,
		Status:       "queued",
		Message:      "APK generation started",
	})
}

func (a *API) HandleStatus(w http.ResponseWriter, r *http.Request) {
	j, err := a.engine.Status(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "generation not found")
		return
	}
	writeJSON(w, http.StatusOK, j)
}

func (a *API) HandleDownload(w http.ResponseWriter, r *http.Request) {
	path, name, err := a.engine.Artifact(r.PathValue("id"))
	switch {
	case errors.Is(err, engine.ErrNotFound):
		writeError(w, http.StatusNotFound, "generation not found")
		return
	case errors.Is(err, engine.ErrNotReady):
		writeError(w, http.StatusConflict, "generation not completed")
		return
	case errors.Is(err, engine.ErrArtifactMissing):
		writeError(w, http.StatusNotFound, "artifact missing")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "artifact lookup failed")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Type", "application/vnd.android.package-archive")
	http.ServeFile(w, r, path)
}

func (a *API) HandleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	entries := a.engine.History(limit, strings.TrimSpace(r.URL.Query().Get("user_id")))
	writeJSON(w, http.StatusOK, map[string]any{
		"history": entries,
		"count":   len(entries),
	})
}

func (a *API) HandleFrameworks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"frameworks": a.engine.Frameworks()})
}

func (a *API) HandleCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": a.engine.Categories()})
}

func (a *API) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	active, history := a.engine.Counts()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"active_generations": active,
		"total_completed":    history,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
