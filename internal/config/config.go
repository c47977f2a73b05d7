package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	Port        string
	GinMode     string
	Logger      LoggerConfig
	Artifacts   ArtifactConfig
	Display     DisplayConfig
	EnableDB    bool
	DatabaseURL string
}

type LoggerConfig struct {
	Level  string
	Format string
}

type ArtifactConfig struct {
	Source        string
	Dir           string
	ModelPath     string
	ScalerPath    string
	RemoteURL     string
	RemoteTimeout time.Duration
}

type DisplayConfig struct {
	ShowConfidence bool
}

// UsesDB reports whether a database connection is needed.
func (c *Config) UsesDB() bool {
	return c.EnableDB || c.Artifacts.Source == SourcePostgres
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ARTIFACT_SOURCE", SourceFile)
	v.SetDefault("ARTIFACT_DIR", ".")
	v.SetDefault("MODEL_PATH", "heart_disease.json")
	v.SetDefault("SCALER_PATH", "scaler.json")
	v.SetDefault("MODEL_REMOTE_URL", "")
	v.SetDefault("MODEL_REMOTE_TIMEOUT", "10s")
	v.SetDefault("SHOW_CONFIDENCE", true)
	v.SetDefault("ENABLE_DB", false)
	v.SetDefault("DATABASE_URL", "")

	// SCALER_PATH= (empty) must turn scaling off rather than fall back
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	timeout, err := time.ParseDuration(v.GetString("MODEL_REMOTE_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("MODEL_REMOTE_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:    v.GetString("PORT"),
		GinMode: v.GetString("GIN_MODE"),
		Logger: LoggerConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Artifacts: ArtifactConfig{
			Source:        strings.ToLower(v.GetString("ARTIFACT_SOURCE")),
			Dir:           v.GetString("ARTIFACT_DIR"),
			ModelPath:     v.GetString("MODEL_PATH"),
			ScalerPath:    v.GetString("SCALER_PATH"),
			RemoteURL:     v.GetString("MODEL_REMOTE_URL"),
			RemoteTimeout: timeout,
		},
		Display: DisplayConfig{
			ShowConfidence: v.GetBool("SHOW_CONFIDENCE"),
		},
		EnableDB:    v.GetBool("ENABLE_DB"),
		DatabaseURL: v.GetString("DATABASE_URL"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("GIN_MODE must be %q, %q or %q, got %q", gin.DebugMode, gin.ReleaseMode, gin.TestMode, c.GinMode)
	}
	if _, err := log.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	switch c.Logger.Format {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"json\" or \"text\", got %q", c.Logger.Format)
	}
	switch c.Artifacts.Source {
	case SourceFile, SourcePostgres:
	default:
		return fmt.Errorf("ARTIFACT_SOURCE must be %q or %q, got %q", SourceFile, SourcePostgres, c.Artifacts.Source)
	}
	if c.Artifacts.RemoteURL == "" && c.Artifacts.ModelPath == "" {
		return fmt.Errorf("MODEL_PATH is required unless MODEL_REMOTE_URL is set")
	}
	if c.EnableDB && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}
	if c.Artifacts.Source == SourcePostgres && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when ARTIFACT_SOURCE=postgres")
	}
	if c.Artifacts.RemoteTimeout <= 0 {
		return fmt.Errorf("MODEL_REMOTE_TIMEOUT must be positive")
	}
	return nil
}
