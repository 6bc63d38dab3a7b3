package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"lmdicli/pkg/contracts"
	api "lmdicli/pkg/contracts/api/v1"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthService creates a new health service
func NewHealthService(logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   contracts.Version,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Check reports the service health
func (s *HealthService) Check(ctx context.Context) *api.HealthResponse {
	s.logger.DebugContext(ctx, "health check",
		"goroutines", runtime.NumGoroutine(),
	)
	return &api.HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
	}
}
