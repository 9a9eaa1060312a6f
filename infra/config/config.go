package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL  = "http://localhost:5159/api"
	defaultPageSize = 20
	maxPageSize     = 100
)

// Config holds application-level configuration.
type Config struct {
	BaseURL       string     // API root, e.g. "http://localhost:5159/api"
	StateDir      string     // Directory for persisted session state and logs
	StatePath     string     // Session state file inside StateDir
	PageSize      int        // Feed page size
	OAuthProvider string     // Provider name sent with OAuth logins
	LogFile       string     // slog output file
	LogLevel      slog.Level // Minimum log level
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// without overriding variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", p, err)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading env files: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables.
//
//	SKYPOINT_API_BASE_URL  : API root (default: http://localhost:5159/api)
//	SKYPOINT_STATE_DIR     : state directory (default: ~/.config/skypoint)
//	SKYPOINT_PAGE_SIZE     : feed page size, 1..100 (default: 20)
//	SKYPOINT_OAUTH_PROVIDER: OAuth provider name (default: "Google")
//	SKYPOINT_LOG_FILE      : log file (default: <state dir>/skypoint.log)
//	SKYPOINT_LOG_LEVEL     : debug, info, warn or error (default: info)
func Load() (Config, error) {
	base := strings.TrimSpace(os.Getenv("SKYPOINT_API_BASE_URL"))
	if base == "" {
		base = defaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid SKYPOINT_API_BASE_URL: must be an absolute URL")
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return Config{}, fmt.Errorf("invalid SKYPOINT_API_BASE_URL: scheme must be http or https")
	}
	base = strings.TrimRight(parsed.String(), "/")

	stateDir := strings.TrimSpace(os.Getenv("SKYPOINT_STATE_DIR"))
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		stateDir = filepath.Join(home, ".config", "skypoint")
	}

	pageSize := defaultPageSize
	if raw := strings.TrimSpace(os.Getenv("SKYPOINT_PAGE_SIZE")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			return Config{}, fmt.Errorf("invalid SKYPOINT_PAGE_SIZE: must be between 1 and %d", maxPageSize)
		}
		pageSize = n
	}

	provider := strings.TrimSpace(os.Getenv("SKYPOINT_OAUTH_PROVIDER"))
	if provider == "" {
		provider = "Google"
	}

	logFile := strings.TrimSpace(os.Getenv("SKYPOINT_LOG_FILE"))
	if logFile == "" {
		logFile = filepath.Join(stateDir, "skypoint.log")
	}

	level, err := parseLevel(os.Getenv("SKYPOINT_LOG_LEVEL"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		BaseURL:       base,
		StateDir:      stateDir,
		StatePath:     filepath.Join(stateDir, "session.json"),
		PageSize:      pageSize,
		OAuthProvider: provider,
		LogFile:       logFile,
		LogLevel:      level,
	}, nil
}

func parseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid SKYPOINT_LOG_LEVEL: %q", raw)
}
