package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

const (
	diodeSize         = 1024
	diodePollInterval = 15 * time.Millisecond
)

var (
	global  atomic.Pointer[zerolog.Logger] // global, shared logger.
	once    sync.Once                      // guards global.
	mu      sync.Mutex                     // guards closers.
	closers []io.Closer
)

// Config controls where and how much the logger writes.
type Config struct {
	// Level is one of "trace", "debug", "info", "warn", "error", "fatal", "panic".
	Level string `env:"LEVEL" envDefault:"info"`
	// Dir, when set, receives a log file named "<service>_<timestamp>.log" next to stdout.
	Dir         string `env:"DIR"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"series-unknown"`
	// Output overrides stdout.
	Output io.Writer
}

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

// New builds a logger from cfg. Writes go through a diode so logging never blocks the caller;
// messages are dropped, and reported on the standard logger, if the buffer fills up.
func New(cfg Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	if cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	// the diode closes its writer on Close, so stdout is wrapped to hide its Close method.
	out := io.MultiWriter(os.Stdout)
	if cfg.Output != nil {
		out = cfg.Output
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return zerolog.Nop(), fmt.Errorf("creating log dir: %w", err)
		}
		name := fmt.Sprintf("%s_%s.log", cfg.ServiceName, time.Now().UTC().Format("2006-01-02T15-04-05"))
		f, err := os.Create(filepath.Join(cfg.Dir, name))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("creating log file: %w", err)
		}
		track(f)
		out = io.MultiWriter(f, out)
	}

	dw := diode.NewWriter(out, diodeSize, diodePollInterval, func(missed int) {
		log.Printf("diode: dropped %d log messages", missed)
	})
	track(dw)

	return zerolog.New(dw).
		Level(level).
		With().
		Timestamp().
		Str("instance_id", must(uuid.NewV7()).String()).
		Str("service", cfg.ServiceName).
		Logger(), nil
}

// track registers c to be closed by Close. The diode is appended after the file it
// wraps, and Close runs in reverse order, so buffered lines are flushed before the file closes.
func track(c io.Closer) {
	mu.Lock()
	defer mu.Unlock()
	closers = append(closers, c)
}

// Init replaces the global logger with one built from cfg and dumps build metadata at debug level.
func Init(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	once.Do(func() {})

	dbglogger := l.With().
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Str("goarch", runtime.GOARCH).
		Str("goos", runtime.GOOS).
		Logger()
	if info, ok := debug.ReadBuildInfo(); ok {
		dbglogger.Debug().Str("go_version", info.GoVersion).Str("path", info.Path).Msg("buildinfo")
	}
	dbglogger.Debug().Msg("logger init")

	global.Store(&l)
	return nil
}

// Global returns the global logger. Unless Init was called first, it is built once from
// the SERIES_LOG_LEVEL, SERIES_LOG_DIR and SERIES_LOG_SERVICE_NAME environment variables.
// It is safe to call this function from multiple goroutines.
func Global() *zerolog.Logger {
	once.Do(func() {
		cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "SERIES_LOG_"})
		if err != nil {
			log.Printf("logger: %v, falling back to defaults", err)
			cfg = Config{Level: "info", ServiceName: "series-unknown"}
		}
		l, err := New(cfg)
		if err != nil {
			log.Printf("logger: %v, logging to stdout only", err)
			l = must(New(Config{Level: "info", ServiceName: cfg.ServiceName}))
		}
		global.Store(&l)
	})
	return global.Load()
}

// AddFieldsToGlobal adds fields to the global logger, thread-safe.
func AddFieldsToGlobal(fields map[string]any) {
	for {
		old := Global()
		newentry := old.With()
		for k, v := range fields {
			newentry = newentry.Any(k, v)
		}
		updated := newentry.Logger()

		if global.CompareAndSwap(old, &updated) {
			return
		}
	}
}

// Close flushes buffered log lines and closes any log file opened by New.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	var firstErr error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	closers = nil
	return firstErr
}
