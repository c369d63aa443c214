// Package logger provides a configured zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger tagged with the service name. The level is
// taken from STOREFRONT_LOG_LEVEL when it parses, info otherwise.
func New(serviceName string) zerolog.Logger {
	level := zerolog.InfoLevel
	if lv, err := zerolog.ParseLevel(os.Getenv("STOREFRONT_LOG_LEVEL")); err == nil && lv != zerolog.NoLevel {
		level = lv
	}
	return zerolog.New(os.Stdout).Level(level).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
