package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bantamhq/studiodash/internal/backend"
	"github.com/bantamhq/studiodash/internal/config"
	"github.com/bantamhq/studiodash/internal/dashboard"
)

func zapBackend(cfg *config.Config) zap.Field {
	return zap.String("backend", cfg.Backend.URL)
}

// formatAPIError turns a backend error into a message fit for the terminal.
func formatAPIError(operation string, err error) error {
	var f *dashboard.Failure
	if errors.As(err, &f) {
		if f.Kind == dashboard.FailureUnreachable {
			return fmt.Errorf("%s: backend unreachable (%s)", operation, f.Message)
		}
		return fmt.Errorf("%s: %s", operation, f.Message)
	}
	if se, ok := backend.AsStatusError(err); ok {
		return fmt.Errorf("%s: %s", operation, se.Message())
	}
	if errors.Is(err, backend.ErrUnreachable) {
		return fmt.Errorf("%s: backend unreachable: %w", operation, err)
	}
	return fmt.Errorf("%s: %w", operation, err)
}
