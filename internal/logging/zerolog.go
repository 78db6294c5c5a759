package logging

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts rs/zerolog to the Logger interface. It is the
// implementation wired by the CLI entry point; library code and tests use
// SlogLogger.
type ZerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger builds a console zerolog logger at the given level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func NewZerologLogger(level string) *ZerologLogger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
	return &ZerologLogger{l: l}
}

// kvFields converts variadic key/value pairs into a zerolog fields map.
// Odd trailing values are dropped; non-string keys are stringified.
func kvFields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	m := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			k = fmt.Sprint(args[i])
		}
		m[k] = args[i+1]
	}
	return m
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.l.Debug().Fields(kvFields(args)).Msg(msg)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.l.Info().Fields(kvFields(args)).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.l.Warn().Fields(kvFields(args)).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.l.Error().Fields(kvFields(args)).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	child := z.l.With().Fields(kvFields(args)).Logger()
	return &ZerologLogger{l: child}
}
