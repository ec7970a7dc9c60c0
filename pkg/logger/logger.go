// Package logger provides the process-wide zerolog wrapper.
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level is a zerolog level.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config controls the global logger.
type Config struct {
	Level      string `json:"level"`
	Format     string `json:"format"` // json/console
	Output     string `json:"output"` // stdout/stderr/file
	FilePath   string `json:"file_path,omitempty"`
	TimeFormat string `json:"time_format,omitempty"`
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init sets up the global logger. Safe to call multiple times; only
// the first call takes effect.
func Init(cfg Config) {
	once.Do(func() {
		level := parseLevel(cfg.Level)
		zerolog.SetGlobalLevel(level)

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			if cfg.FilePath != "" {
				f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err == nil {
					output = f
				} else {
					output = os.Stdout
				}
			} else {
				output = os.Stdout
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger, initializing it with defaults if
// Init was never called.
func Get() *zerolog.Logger {
	// Init only takes effect once, so this is a no-op after any
	// earlier Init call.
	Init(DefaultConfig())
	return &logger
}

// WithContext attaches request-scoped fields found on ctx.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Get().With().Logger()

	if reqID, ok := ctx.Value("request_id").(string); ok {
		l = l.With().Str("request_id", reqID).Logger()
	}

	return &l
}

func Debug() *zerolog.Event {
	return Get().Debug()
}

func Info() *zerolog.Event {
	return Get().Info()
}

func Warn() *zerolog.Event {
	return Get().Warn()
}

func Error() *zerolog.Event {
	return Get().Error()
}

func Fatal() *zerolog.Event {
	return Get().Fatal()
}

func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

func WithField(key string, value interface{}) *zerolog.Logger {
	l := Get().With().Interface(key, value).Logger()
	return &l
}

func WithFields(fields map[string]interface{}) *zerolog.Logger {
	ctx := Get().With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	l := ctx.Logger()
	return &l
}

// SchedulerLogger is a component-tagged logger for the scheduling engine.
type SchedulerLogger struct {
	base *zerolog.Logger
}

// NewSchedulerLogger returns a logger tagged component=scheduler.
func NewSchedulerLogger() *SchedulerLogger {
	l := Get().With().Str("component", "scheduler").Logger()
	return &SchedulerLogger{base: &l}
}

// StartSolve logs the beginning of a solve.
func (l *SchedulerLogger) StartSolve(weekStartDate string, staffCount, requirementCount int) {
	l.base.Info().
		Str("week_start_date", weekStartDate).
		Int("staff_count", staffCount).
		Int("requirement_count", requirementCount).
		Msg("solve started")
}

// UnfilledRequirement logs a requirement that could not reach minStaff.
func (l *SchedulerLogger) UnfilledRequirement(requirementID string, reason string) {
	l.base.Warn().
		Str("requirement_id", requirementID).
		Str("reason", reason).
		Msg("requirement unfilled")
}

// SolveComplete logs the outcome of a solve.
func (l *SchedulerLogger) SolveComplete(duration time.Duration, coveragePercentage, solveScore float64) {
	l.base.Info().
		Dur("duration", duration).
		Float64("coverage_percentage", coveragePercentage).
		Float64("score", solveScore).
		Msg("solve complete")
}
