package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/bpcalc/internal/platform/logger"
)

// setupAppLogger configures and initializes the application logger.
// A nil out writes to stdout.
func setupAppLogger(level string, out io.Writer) (*slog.Logger, error) {
	l, err := logger.Setup(logger.LoggerConfig{
		Level:  level,
		Output: out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}
