package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level  string    // "trace" .. "error", defaults to info
	Format string    // "console" or "json"
	Output io.Writer // defaults to os.Stderr so stdout stays for progress lines
}

// Canonical field names.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldInput     = "input"
	FieldOutput    = "output"
	FieldStatus    = "status"
)

var (
	once sync.Once
	base = zerolog.Nop()
)

// Configure initialises the global zerolog logger exactly once.
func Configure(cfg Config) {
	once.Do(func() {
		level := zerolog.InfoLevel
		if cfg.Level != "" {
			if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
				level = parsed
			}
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339

		writer := cfg.Output
		if writer == nil {
			writer = os.Stderr
		}
		if cfg.Format != "json" {
			writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen, NoColor: !isTerminal(writer)}
		}

		base = zerolog.New(writer).With().Timestamp().Str("service", "metastd").Logger()
	})
}

// Base returns the configured base logger. Before Configure it discards.
func Base() zerolog.Logger {
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return base.With().Str(FieldComponent, component).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
