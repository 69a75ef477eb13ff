// Package app wires configuration, stores, the model layer and the HTTP
// server together.
package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"singularity/internal/artifact"
	"singularity/internal/builder"
	"singularity/internal/config"
	"singularity/internal/engine"
	"singularity/internal/handler"
	"singularity/internal/job"
	"singularity/internal/llm"
	"singularity/internal/notify"
	"singularity/internal/server"
)

type App struct {
	server          *server.Server
	shutdownTimeout time.Duration
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	caller, err := buildCaller(cfg.Model)
	if err != nil {
		return nil, err
	}
	cache, err := llm.NewCache(cfg.Model.CacheSize)
	if err != nil {
		return nil, err
	}
	executor := llm.NewExecutor(caller, cache, cfg.Model.CallTimeout)

	store := job.NewMemoryStore()
	if cfg.HistoryDSN != "" {
		archive, err := job.NewPGArchive(cfg.HistoryDSN)
		if err != nil {
			log.Printf("history archive disabled: %v", err)
		} else {
			store.WithArchive(archive)
		}
	}

	artifacts, err := buildArtifactStore(cfg)
	if err != nil {
		return nil, err
	}

	eng := engine.New(
		store,
		notify.NewBroker(),
		executor,
		builder.NewRegistry(builder.NewLocalBackend(cfg.Build.BuildDir)),
		artifacts,
	)

	mux := server.NewMux(handler.New(eng))
	return &App{
		server:          server.New(cfg.Port, mux),
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

func buildCaller(cfg config.ModelConfig) (llm.Caller, error) {
	router := llm.NewRouter()
	if cfg.Offline {
		router.Register("openai", llm.NewFakeCaller())
		router.Register("gemini", llm.NewFakeCaller())
		return router, nil
	}
	if cfg.OpenAIKey != "" {
		router.Register("openai", llm.NewOpenAICaller(cfg.OpenAIKey, cfg.OpenAIBaseURL, &http.Client{}))
	}
	if cfg.GeminiEnabled {
		gemini, err := llm.NewGeminiCaller(context.Background())
		if err != nil {
			return nil, err
		}
		router.Register("gemini", gemini)
	}
	return router, nil
}

func buildArtifactStore(cfg *config.Config) (artifact.Store, error) {
	if !cfg.Artifact.Enabled {
		return artifact.NewDiskStore(cfg.Build.ArtifactDir), nil
	}
	return artifact.NewS3Store(artifact.S3Config{
		Endpoint:  cfg.Artifact.Endpoint,
		Region:    cfg.Artifact.Region,
		AccessKey: cfg.Artifact.AccessKey,
		SecretKey: cfg.Artifact.SecretKey,
		Bucket:    cfg.Artifact.Bucket,
		UseSSL:    cfg.Artifact.UseSSL,
	})
}

func (a *App) Start() error { return a.server.Start() }

func (a *App) Shutdown(ctx context.Context) error { return a.server.Shutdown(ctx) }

// ShutdownTimeout is the configured drain window for graceful shutdown.
func (a *App) ShutdownTimeout() time.Duration { return a.shutdownTimeout }
