package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// FileEnv names the environment variable pointing at an optional TOML file.
const FileEnv = "CONTENTKIT_CONFIG"

type Config struct {
	Port string `toml:"port"`

	// Auth
	APIKey string `toml:"api_key"`

	// Content directory (data/ and blog/). Empty disables the content store.
	ContentDir        string `toml:"content_dir"`
	WatchContent      bool   `toml:"watch_content"`
	RenderConcurrency int    `toml:"render_concurrency"`
	ExcerptWords      int    `toml:"excerpt_words"`

	// Tabs
	StrictTabs bool `toml:"strict_tabs"`

	// Worker pool
	WorkerCount  int `toml:"worker_count"`
	MaxQueueSize int `toml:"max_queue_size"`

	// Upload limits
	MaxUploadBytes int64 `toml:"max_upload_bytes"`

	// Job state
	JobTTL time.Duration `toml:"job_ttl"`

	// Render latency window for /api/stats/render
	StatsWindow time.Duration `toml:"stats_window"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Load reads .env (when present), then environment variables, then the TOML
// file named by CONTENTKIT_CONFIG, whose keys win.
func Load() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("CONTENTKIT_API_KEY"),

		ContentDir:        os.Getenv("CONTENT_DIR"),
		WatchContent:      envBool("WATCH_CONTENT", false),
		RenderConcurrency: envInt("RENDER_CONCURRENCY", 4),
		ExcerptWords:      envInt("EXCERPT_WORDS", 50),

		StrictTabs: envBool("STRICT_TABS", false),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 5242880), // 5MB

		JobTTL:      envDuration("JOB_TTL", 1*time.Hour),
		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		LogLevel:  envOr("LOG_LEVEL", "info"),
		LogFormat: envOr("LOG_FORMAT", "json"),
	}

	if path := os.Getenv(FileEnv); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadDotEnv loads variables from the given files (default ".env") without
// overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.WorkerCount <= 0 {
		c.WorkerCount = 4
	}
	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = 100
	}
	if c.RenderConcurrency <= 0 {
		c.RenderConcurrency = 4
	}
	if c.ExcerptWords <= 0 {
		c.ExcerptWords = 50
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 5242880
	}
	if c.JobTTL <= 0 {
		c.JobTTL = 1 * time.Hour
	}
	if c.StatsWindow <= 0 {
		c.StatsWindow = 1 * time.Hour
	}
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("CONTENTKIT_API_KEY is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.ContentDir != "" {
		fi, err := os.Stat(c.ContentDir)
		if err != nil {
			return fmt.Errorf("CONTENT_DIR: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("CONTENT_DIR %s is not a directory", c.ContentDir)
		}
	}
	return nil
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
