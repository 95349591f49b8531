package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// ResourceDir overrides the embedded reference resources when set.
	ResourceDir string
	DBPath      string

	OutputSuffix   string
	OutputFormat   string
	InputEncoding  string
	OutputEncoding string

	AccessionMarker string
	Fields          []string

	LogLevel  string
	LogFormat string
}

var defaultFields = []string{"collection_date", "geographic_location", "serovar", "isolation_source"}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ResourceDir: getEnv("RESOURCE_DIR", ""),
		DBPath:      getEnv("DB_PATH", filepath.Join(cwd, "data", "metastd.db")),

		OutputSuffix:   getEnv("OUTPUT_SUFFIX", "_standardized.csv"),
		OutputFormat:   strings.ToLower(getEnv("OUTPUT_FORMAT", "csv")),
		InputEncoding:  getEnv("INPUT_ENCODING", "utf-8"),
		OutputEncoding: getEnv("OUTPUT_ENCODING", "utf-8"),

		AccessionMarker: getEnv("ACCESSION_MARKER", "RUN"),
		Fields:          getEnvList("FIELDS", defaultFields),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "console")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting in one error.
func (c Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.AccessionMarker) == "" {
		errs = append(errs, "ACCESSION_MARKER must not be empty")
	}
	if strings.TrimSpace(c.OutputSuffix) == "" {
		errs = append(errs, "OUTPUT_SUFFIX must not be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "xlsx" {
		errs = append(errs, fmt.Sprintf("OUTPUT_FORMAT (%q) must be one of: csv, xlsx", c.OutputFormat))
	}
	if len(c.Fields) == 0 {
		errs = append(errs, "FIELDS must list at least one field")
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: trace, debug, info, warn, error", c.LogLevel))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: console, json", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return append([]string(nil), fallback...)
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
