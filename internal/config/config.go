package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	Model    ModelConfig
	Build    BuildConfig
	Artifact ArtifactConfig

	// HistoryDSN enables the Postgres archive for completed jobs.
	HistoryDSN string

	// ShutdownTimeout bounds how long in-flight requests may drain on
	// SIGINT/SIGTERM. Generation goroutines are not waited on; jobs past
	// submit survive until their own stages finish or the process exits.
	ShutdownTimeout time.Duration
}

type ModelConfig struct {
	OpenAIKey     string
	OpenAIBaseURL string
	GeminiEnabled bool
	CallTimeout   time.Duration
	CacheSize     int
	// Offline swaps all providers for the deterministic fake caller.
	Offline bool
}

type BuildConfig struct {
	BuildDir    string
	ArtifactDir string
}

type ArtifactConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:            *port,
		Env:             env,
		Model:           loadModelConfig(),
		Build:           loadBuildConfig(),
		Artifact:        loadArtifactConfig(),
		HistoryDSN:      strings.TrimSpace(os.Getenv("HISTORY_PG_DSN")),
		ShutdownTimeout: parseDuration(os.Getenv("SHUTDOWN_TIMEOUT"), 10*time.Second),
	}, nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw = strings.TrimSpace(raw); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func loadModelConfig() ModelConfig {
	timeout := parseDuration(os.Getenv("MODEL_CALL_TIMEOUT"), 60*time.Second)
	cacheSize := 512
	if raw := strings.TrimSpace(os.Getenv("MODEL_CACHE_SIZE")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cacheSize = n
		}
	}
	return ModelConfig{
		OpenAIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		GeminiEnabled: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")) != "",
		CallTimeout:   timeout,
		CacheSize:     cacheSize,
		Offline:       parseBool(os.Getenv("MODEL_OFFLINE"), false),
	}
}

func loadBuildConfig() BuildConfig {
	return BuildConfig{
		BuildDir:    firstNonEmpty(strings.TrimSpace(os.Getenv("BUILD_DIR")), "build_output"),
		ArtifactDir: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_DIR")), "generated_apps"),
	}
}

func loadArtifactConfig() ArtifactConfig {
	endpoint := strings.TrimSpace(os.Getenv("ARTIFACT_S3_ENDPOINT"))
	return ArtifactConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_BUCKET")), "singularity-artifacts"),
		UseSSL:    parseBool(os.Getenv("ARTIFACT_S3_USE_SSL"), true),
	}
}

func parseBool(raw string, fallback bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
