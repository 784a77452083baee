package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/yacobolo/cssjit/internal/report"
)

// newLogger builds the diagnostic logger. It writes to stderr so list
// output on stdout stays machine readable.
func newLogger() zerolog.Logger {
	return newLoggerTo(os.Stderr)
}

func newLoggerTo(w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if getBoolWithFallback("verbose", false) {
		level = zerolog.DebugLevel
	}
	if name := k.String("log-level"); name != "" {
		if parsed, err := zerolog.ParseLevel(name); err == nil {
			level = parsed
		}
	}
	if getBoolWithFallback("quiet", false) {
		level = zerolog.Disabled
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !useColors(),
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func useColors() bool {
	return report.ShouldUseColors(getStringWithFallback("color", "auto"))
}
